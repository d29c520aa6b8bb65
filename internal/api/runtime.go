package api

import (
	"time"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/llmaniac/beacon/internal/config"
	"github.com/llmaniac/beacon/internal/infrastructure"
	"github.com/llmaniac/beacon/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Agent           gaconfig.AgentConfig
	TenantsDir      string
	ClassifyTimeout time.Duration
	Pagination      pagination.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
		},
		Agent:           cfg.Agent,
		TenantsDir:      cfg.Tenants.Dir,
		ClassifyTimeout: cfg.API.ClassifyTimeoutDuration(),
		Pagination:      cfg.API.Pagination,
	}
}
