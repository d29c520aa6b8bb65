package api

import (
	"net/http"

	"github.com/llmaniac/beacon/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Tenants.Handler().Routes(),
		domain.Classify.Handler().Routes(),
		domain.Decisions.Handler().Routes(),
	)
}
