package main

import (
	"encoding/json"
	"net/http"

	"github.com/llmaniac/beacon/internal/api"
	"github.com/llmaniac/beacon/internal/config"
	"github.com/llmaniac/beacon/internal/infrastructure"
	"github.com/llmaniac/beacon/pkg/lifecycle"
	"github.com/llmaniac/beacon/pkg/module"
)

type Modules struct {
	API    *module.Module
	domain *api.Domain
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		domain: domain,
	}, nil
}

// Start registers lifecycle hooks for domain systems that warm state at
// startup, such as the tenant configuration cache.
func (m *Modules) Start(lc *lifecycle.Coordinator) error {
	return m.domain.Tenants.Start(lc)
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
