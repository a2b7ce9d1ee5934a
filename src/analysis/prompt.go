package analysis

import (
	"fmt"
	"strings"
	"time"

	"alertpilot/src/model"
)

// SystemPrompt frames the agent as a trading analyst. The reply format it
// pins down is what the regex extractor keys on.
const SystemPrompt = `You are a cryptocurrency trading analyst. You review TradingView alerts and produce a concise written assessment. Always include the exact lines "Recommended Action: <buy|sell|hold>", "Confidence: <0-100>%" and "Risk Level: <low|medium|high>" in your answer.`

const (
	notSpecified = "Not specified"
	notAvailable = "Not available"
)

// BuildPrompt renders the canonical alert into the analysis request sent to
// the agent. Missing optional fields render as explicit placeholders so the
// prompt shape is identical for every alert.
func BuildPrompt(a model.CanonicalAlert) string {
	var b strings.Builder

	b.WriteString("A TradingView alert was received. Analyze it and advise.\n\n")
	fmt.Fprintf(&b, "Symbol: %s\n", orPlaceholder(a.Symbol, notSpecified))
	fmt.Fprintf(&b, "Price: %s\n", priceLine(a.Price))
	fmt.Fprintf(&b, "Alert Action: %s\n", orPlaceholder(a.Action, notSpecified))
	fmt.Fprintf(&b, "Strategy: %s\n", orPlaceholder(a.Strategy, notSpecified))
	fmt.Fprintf(&b, "Timeframe: %s\n", orPlaceholder(a.Timeframe, notSpecified))
	fmt.Fprintf(&b, "Exchange: %s\n", orPlaceholder(a.Exchange, notSpecified))
	fmt.Fprintf(&b, "Alert Time: %s\n", timestampLine(a.Timestamp))
	fmt.Fprintf(&b, "Message: %s\n", orPlaceholder(a.Message, notSpecified))
	fmt.Fprintf(&b, "Volume: %s\n", floatLine(a.Volume))
	fmt.Fprintf(&b, "RSI: %s\n", floatLine(a.RSI))
	fmt.Fprintf(&b, "MACD: %s\n", orPlaceholder(a.MACD, notAvailable))

	b.WriteString(`
Provide:
1. Market sentiment for this symbol
2. Technical read of the alert conditions
3. Risk assessment (Risk Level: low, medium or high)
4. Recommended Action (buy, sell or hold) with Confidence as a percentage
5. Target price and stop loss levels
6. Suggested position sizing
7. Rationale for the recommendation
`)

	return b.String()
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

func priceLine(p float64) string {
	if p <= 0 {
		return notAvailable
	}
	return fmt.Sprintf("%g", p)
}

func floatLine(v *float64) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%g", *v)
}

func timestampLine(ts int64) string {
	if ts <= 0 {
		return notSpecified
	}
	return time.UnixMilli(ts).UTC().Format(time.RFC3339)
}
