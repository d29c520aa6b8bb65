package api

import (
	"github.com/llmaniac/beacon/internal/classify"
	"github.com/llmaniac/beacon/internal/conversation"
	"github.com/llmaniac/beacon/internal/decisions"
	"github.com/llmaniac/beacon/internal/tenants"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Tenants   tenants.System
	Classify  classify.System
	Decisions decisions.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	tenantsSystem := tenants.New(runtime.TenantsDir, runtime.Logger)

	classifySystem := classify.New(
		classify.NewAgentCapability(runtime.Agent),
		runtime.ClassifyTimeout,
		tenantsSystem,
		conversation.NewTracker(),
		runtime.Logger,
	)

	decisionsSystem := decisions.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Tenants:   tenantsSystem,
		Classify:  classifySystem,
		Decisions: decisionsSystem,
	}
}
