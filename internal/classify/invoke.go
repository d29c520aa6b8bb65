package classify

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// InvokeNode returns a state node that sends the composed prompt to the
// capability, bounded by the runtime timeout. The raw answer is stored
// for the interpret node; any failure surfaces as ErrClassifyFailed.
func InvokeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		prompt, err := extractPrompt(s)
		if err != nil {
			return s, fmt.Errorf("invoke: %w", err)
		}

		callCtx, cancel := context.WithTimeout(ctx, rt.Timeout)
		defer cancel()

		raw, err := rt.Capability.Complete(callCtx, prompt)
		if err != nil {
			return s, fmt.Errorf("invoke: %w: %w", ErrClassifyFailed, err)
		}

		rt.Logger.DebugContext(ctx, "capability answered", "raw", raw)

		s = s.Set(KeyRawAnswer, raw)
		return s, nil
	})
}
