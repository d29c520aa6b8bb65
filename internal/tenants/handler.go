package tenants

import (
	"log/slog"
	"net/http"

	"github.com/llmaniac/beacon/pkg/handlers"
	"github.com/llmaniac/beacon/pkg/routes"
)

// Handler provides HTTP endpoints for inspecting tenant configuration.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "tenants"),
	}
}

// Routes returns the route group definition for tenant endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/tenants",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}/events", Handler: h.Events},
		},
	}
}

// Events returns the event definitions configured for a container id.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.sys.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, cfg.Events)
}
