package classify

import (
	"context"
	"log/slog"
	"time"

	"github.com/llmaniac/beacon/internal/conversation"
	"github.com/llmaniac/beacon/internal/origins"
	"github.com/llmaniac/beacon/internal/tenants"
)

// System defines the public contract for the classification domain.
type System interface {
	Handler() *Handler

	// Classify authorizes and classifies one message.
	Classify(ctx context.Context, cmd Command) (*Result, error)
}

type service struct {
	rt      *Runtime
	tenants tenants.System
	tracker *conversation.Tracker
	logger  *slog.Logger
}

// New creates the classification service. The capability is injected so
// composition code decides the model provider and tests substitute a fake.
func New(
	capability Capability,
	timeout time.Duration,
	tenantStore tenants.System,
	tracker *conversation.Tracker,
	logger *slog.Logger,
) System {
	return &service{
		rt: &Runtime{
			Capability: capability,
			Logger:     logger.With("workflow", "classify"),
			Timeout:    timeout,
		},
		tenants: tenantStore,
		tracker: tracker,
		logger:  logger.With("system", "classify"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

// Classify composes the request pipeline: resolve tenant config,
// authorize the origin, fetch the previous turn, run the workflow, and
// record the new turn. Authorization failures stop before any
// classification work. The context slot is updated only on success, so
// a failed capability call leaves the previous turn in place.
func (s *service) Classify(ctx context.Context, cmd Command) (*Result, error) {
	cfg, err := s.tenants.Find(ctx, cmd.ContainerID)
	if err != nil {
		return nil, err
	}

	if err := origins.Authorize(cmd.Origin, cfg.AllowedOrigins); err != nil {
		s.logger.Warn("origin denied",
			"container_id", cmd.ContainerID,
			"origin", cmd.Origin,
		)
		return nil, err
	}

	key := conversation.Key(cmd.ContainerID, cmd.SessionID)

	var previous *conversation.Turn
	if turn, ok := s.tracker.Previous(key); ok {
		previous = &turn
	}

	result, err := Execute(ctx, s.rt, cmd, cfg.EventsForSender(cmd.Sender), previous)
	if err != nil {
		return nil, err
	}

	// The slot reflects the true latest turn regardless of outcome, so
	// a no-match message still becomes the next call's context.
	s.tracker.SetLast(key, conversation.Turn{Text: cmd.Text, Sender: cmd.Sender})

	s.logger.Info("message classified",
		"container_id", cmd.ContainerID,
		"sender", cmd.Sender,
		"matched", result.ShouldPush,
	)
	return result, nil
}
