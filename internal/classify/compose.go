package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/llmaniac/beacon/internal/conversation"
	"github.com/llmaniac/beacon/internal/tenants"
)

// ComposeNode returns a state node that builds the classification prompt
// from the candidate events, the previous turn, and the current message.
// When no event is defined for the request's sender, it leaves the
// prompt empty; the graph then skips the capability call entirely.
func ComposeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		cmd, err := extractCommand(s)
		if err != nil {
			return s, fmt.Errorf("compose: %w", err)
		}

		candidates, err := extractCandidates(s)
		if err != nil {
			return s, fmt.Errorf("compose: %w", err)
		}

		if len(candidates) == 0 {
			rt.Logger.InfoContext(ctx, "no events for sender, skipping capability",
				"container_id", cmd.ContainerID,
				"sender", cmd.Sender,
			)
			return s, nil
		}

		previous := extractPrevious(s)
		s = s.Set(KeyPrompt, ComposePrompt(cmd, candidates, previous))
		return s, nil
	})
}

// ComposePrompt renders the instruction prompt sent to the capability.
// It lists each candidate event's name, description, and examples,
// includes the previous turn when present, and asks for a single JSON
// object naming at most one event with a confidence score.
func ComposePrompt(
	cmd Command,
	candidates []tenants.EventDefinition,
	previous *conversation.Turn,
) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You classify chat messages from '%s' against a fixed set of events.\n", cmd.Sender)
	sb.WriteString("Answer ONLY with a JSON object of the form ")
	sb.WriteString(`{"event": "<event name>", "confidence": <number between 0 and 1>}`)
	sb.WriteString(".\n")
	sb.WriteString(`Pick the single event that best matches the LAST message, or use null for "event" when none match.`)
	sb.WriteString("\nDo not add explanations or any other text.\n")
	sb.WriteString("Use the previous message as context when it helps.\n\n")

	fmt.Fprintf(&sb, "Available events for '%s':\n", cmd.Sender)
	for _, event := range candidates {
		fmt.Fprintf(&sb, "- Name: %s\n", event.Name)
		fmt.Fprintf(&sb, "  Description: %s\n", event.Description)
		if len(event.Examples) > 0 {
			sb.WriteString("  Examples:\n")
			for _, example := range event.Examples {
				fmt.Fprintf(&sb, "    - %s\n", example)
			}
		}
	}
	sb.WriteString("\n")

	if previous != nil {
		fmt.Fprintf(&sb, "Previous message in the conversation (%s):\n", previous.Sender)
		sb.WriteString("```\n")
		sb.WriteString(previous.Text)
		sb.WriteString("\n```\n\n")
	}

	fmt.Fprintf(&sb, "Message to classify (%s):\n", cmd.Sender)
	sb.WriteString("```\n")
	sb.WriteString(cmd.Text)
	sb.WriteString("\n```\n")

	return sb.String()
}
