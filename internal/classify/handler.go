package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/llmaniac/beacon/pkg/handlers"
	"github.com/llmaniac/beacon/pkg/routes"
)

// Handler provides the HTTP endpoint for classification.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "classify"),
	}
}

// Routes returns the route group definition for the classify endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/classify",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Classify},
		},
	}
}

// Classify decodes a classification request, attaches the transport
// origin, and responds with the decision or a distinct failure status.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var cmd Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := validateCommand(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	cmd.Origin = r.Header.Get("Origin")

	result, err := h.sys.Classify(r.Context(), cmd)
	if err != nil {
		if errors.Is(err, ErrClassifyFailed) {
			// Internal capability detail stays in the log.
			h.logger.Error("classification failed", "error", err)
			handlers.RespondJSON(w, http.StatusBadGateway, handlers.ErrorResponse{
				Error: "classification temporarily unavailable",
			})
			return
		}

		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func validateCommand(cmd *Command) error {
	if cmd.Text == "" {
		return fmt.Errorf("text required")
	}
	if !cmd.Sender.Valid() {
		return fmt.Errorf("sender must be one of: human, ai")
	}
	if cmd.ContainerID == "" {
		return fmt.Errorf("containerId required")
	}
	return nil
}
