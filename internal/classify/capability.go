package classify

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Capability is the external classification model. A single-operation
// interface keeps the orchestrator decoupled from any provider and
// testable with a deterministic fake.
type Capability interface {
	// Complete sends the prompt and returns the model's raw answer.
	Complete(ctx context.Context, prompt string) (string, error)
}

type agentCapability struct {
	cfg gaconfig.AgentConfig
}

// NewAgentCapability creates a Capability backed by a go-agents chat
// agent. The agent is constructed per call; provider clients are cheap
// and this keeps the capability stateless.
func NewAgentCapability(cfg gaconfig.AgentConfig) Capability {
	return &agentCapability{cfg: cfg}
}

func (c *agentCapability) Complete(ctx context.Context, prompt string) (string, error) {
	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	resp, err := a.Chat(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat call: %w", err)
	}

	return resp.Text(), nil
}
