package agent

import (
	"context"
	"fmt"
	"strings"
)

// SimulatedInvoker answers locally with a deterministic, well-formed reply.
// It keeps the demo pipeline runnable without an API key and serves as the
// fallback when no hosted agent is configured.
type SimulatedInvoker struct{}

func NewSimulatedInvoker() *SimulatedInvoker {
	return &SimulatedInvoker{}
}

func (s *SimulatedInvoker) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	action := "hold"
	confidence := 50
	risk := "medium"
	switch {
	case strings.Contains(userPrompt, "Alert Action: buy"):
		action = "buy"
		confidence = 78
		risk = "low"
	case strings.Contains(userPrompt, "Alert Action: sell"):
		action = "sell"
		confidence = 78
		risk = "low"
	}

	return fmt.Sprintf(`Simulated analysis based on the alert conditions.
Sentiment: neutral to slightly directional, following the alert signal.
Technical read: the alert conditions were taken at face value; no live data was consulted.
Risk Level: %s
Recommended Action: %s
Confidence: %d%%
Target and stop levels: derive from recent support/resistance on the alert timeframe.
Position sizing: keep within standard risk limits.
Rationale: simulated agent mirrors the alert direction with moderate conviction.`, risk, action, confidence), nil
}
