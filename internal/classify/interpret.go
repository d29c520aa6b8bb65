package classify

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/llmaniac/beacon/internal/tenants"
	"github.com/llmaniac/beacon/pkg/formatting"
)

type answer struct {
	Event      *string `json:"event"`
	Confidence float64 `json:"confidence"`
}

// InterpretNode returns a state node that turns the capability's raw
// answer into a Result. When the capability was skipped (no candidate
// events), it produces the no-match result directly. An answer naming
// an event outside the candidate set is treated as no match, not as an
// error: the model is allowed to be wrong, just not to invent events.
func InterpretNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cmd, err := extractCommand(s)
		if err != nil {
			return s, fmt.Errorf("interpret: %w", err)
		}

		raw, ok := rawAnswer(s)
		if !ok {
			s = s.Set(KeyResult, *noMatch(cmd.Sender))
			return s, nil
		}

		candidates, err := extractCandidates(s)
		if err != nil {
			return s, fmt.Errorf("interpret: %w", err)
		}

		parsed, err := formatting.Parse[answer](raw)
		if err != nil {
			return s, fmt.Errorf("interpret: %w: %w", ErrClassifyFailed, err)
		}

		result := interpretAnswer(ctx, rt, cmd, candidates, parsed)
		s = s.Set(KeyResult, *result)
		return s, nil
	})
}

func interpretAnswer(
	ctx context.Context,
	rt *Runtime,
	cmd Command,
	candidates []tenants.EventDefinition,
	parsed answer,
) *Result {
	if parsed.Event == nil || *parsed.Event == "" {
		return noMatch(cmd.Sender)
	}

	if !contains(candidates, *parsed.Event) {
		rt.Logger.WarnContext(ctx, "capability named an unknown event",
			"event", *parsed.Event,
			"container_id", cmd.ContainerID,
		)
		return noMatch(cmd.Sender)
	}

	return &Result{
		Event:      parsed.Event,
		Confidence: clamp(parsed.Confidence),
		ShouldPush: true,
		Sender:     cmd.Sender,
	}
}

func contains(candidates []tenants.EventDefinition, name string) bool {
	for _, candidate := range candidates {
		if candidate.Name == name {
			return true
		}
	}
	return false
}

func clamp(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
