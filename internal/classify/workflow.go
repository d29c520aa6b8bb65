package classify

import (
	"context"
	"fmt"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/llmaniac/beacon/internal/conversation"
	"github.com/llmaniac/beacon/internal/tenants"
)

// State bag keys shared by the workflow nodes.
const (
	KeyCommand    = "command"
	KeyCandidates = "candidates"
	KeyPrevious   = "previous_turn"
	KeyPrompt     = "prompt"
	KeyRawAnswer  = "raw_answer"
	KeyResult     = "result"
)

// Execute runs the classification workflow for a single message:
// compose → invoke → interpret, where invoke is skipped entirely when no
// event is defined for the request's sender.
func Execute(
	ctx context.Context,
	rt *Runtime,
	cmd Command,
	candidates []tenants.EventDefinition,
	previous *conversation.Turn,
) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyCommand, cmd)
	initialState = initialState.Set(KeyCandidates, candidates)
	if previous != nil {
		initialState = initialState.Set(KeyPrevious, *previous)
	}

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, err
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("beacon-classify")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("compose", ComposeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("invoke", InvokeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("interpret", InterpretNode(rt)); err != nil {
		return nil, err
	}

	// compose → invoke (when any event is defined for the sender)
	if err := graph.AddEdge("compose", "invoke", hasPrompt); err != nil {
		return nil, err
	}

	// compose → interpret (no candidates: never call the capability)
	if err := graph.AddEdge("compose", "interpret", state.Not(hasPrompt)); err != nil {
		return nil, err
	}

	// invoke → interpret (unconditional)
	if err := graph.AddEdge("invoke", "interpret", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("compose"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("interpret"); err != nil {
		return nil, err
	}

	return graph, nil
}

func hasPrompt(s state.State) bool {
	_, ok := s.Get(KeyPrompt)
	return ok
}

func extractCommand(s state.State) (Command, error) {
	val, ok := s.Get(KeyCommand)
	if !ok {
		return Command{}, fmt.Errorf("missing %s in state", KeyCommand)
	}

	cmd, ok := val.(Command)
	if !ok {
		return Command{}, fmt.Errorf("%s is not Command", KeyCommand)
	}

	return cmd, nil
}

func extractCandidates(s state.State) ([]tenants.EventDefinition, error) {
	val, ok := s.Get(KeyCandidates)
	if !ok {
		return nil, fmt.Errorf("missing %s in state", KeyCandidates)
	}

	candidates, ok := val.([]tenants.EventDefinition)
	if !ok {
		return nil, fmt.Errorf("%s is not []tenants.EventDefinition", KeyCandidates)
	}

	return candidates, nil
}

func extractPrevious(s state.State) *conversation.Turn {
	val, ok := s.Get(KeyPrevious)
	if !ok {
		return nil
	}

	turn, ok := val.(conversation.Turn)
	if !ok {
		return nil
	}

	return &turn
}

func extractPrompt(s state.State) (string, error) {
	val, ok := s.Get(KeyPrompt)
	if !ok {
		return "", fmt.Errorf("missing %s in state", KeyPrompt)
	}

	prompt, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s is not string", KeyPrompt)
	}

	return prompt, nil
}

func rawAnswer(s state.State) (string, bool) {
	val, ok := s.Get(KeyRawAnswer)
	if !ok {
		return "", false
	}

	raw, ok := val.(string)
	return raw, ok
}

func extractResult(s state.State) (*Result, error) {
	val, ok := s.Get(KeyResult)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyResult)
	}

	result, ok := val.(Result)
	if !ok {
		return nil, fmt.Errorf("%s is not Result", KeyResult)
	}

	return &result, nil
}
