package agent

import (
	"context"
	"fmt"
	"strings"
)

// Invoker sends one analysis request to the agent and returns the fully
// concatenated reply text. Implementations must not return partial output:
// the caller acts on the complete reply or on an error, never on a prefix.
type Invoker interface {
	Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// NewInvoker builds the invoker selected by cfg.Mode.
func NewInvoker(cfg Config) (Invoker, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("agent mode %q requires AGENT_API_KEY", cfg.Mode)
		}
		return NewOpenAIInvoker(cfg), nil
	case "simulated", "":
		return NewSimulatedInvoker(), nil
	default:
		return nil, fmt.Errorf("unknown agent mode %q", cfg.Mode)
	}
}
