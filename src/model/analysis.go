package model

// Recommended actions an analysis can carry. Distinct from alert actions:
// the agent may answer hold, an alert never does.
const (
	RecommendBuy  = "buy"
	RecommendSell = "sell"
	RecommendHold = "hold"
)

// Risk levels recognized in agent replies.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Analysis is the structured view of the agent's free-text reply for one
// alert. Confidence is an integer percentage in [0,100].
type Analysis struct {
	Symbol            string   `json:"symbol"`
	CurrentPrice      float64  `json:"currentPrice"`
	RecommendedAction string   `json:"recommendedAction"`
	Confidence        int      `json:"confidence"`
	Reasoning         string   `json:"reasoning"`
	RiskLevel         string   `json:"riskLevel"`
	TargetPrice       *float64 `json:"targetPrice,omitempty"`
	StopLoss          *float64 `json:"stopLoss,omitempty"`
	PositionSize      string   `json:"positionSize,omitempty"`
	Timeframe         string   `json:"timeframe,omitempty"`
}

// ExecutionResult records the outcome of the decision gate for one analysis.
// Executed=false is a normal outcome (hold, low confidence, or a failed
// submission), not an error.
type ExecutionResult struct {
	Executed  bool   `json:"executed"`
	TradeID   string `json:"tradeId,omitempty"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

// LogEntry is the write-once record emitted after every pipeline run. It is
// never read back by the service.
type LogEntry struct {
	ID        string           `json:"id"`
	Timestamp int64            `json:"timestamp"`
	Alert     *CanonicalAlert  `json:"alert,omitempty"`
	Execution *ExecutionResult `json:"execution,omitempty"`
	Analysis  *Analysis        `json:"analysis,omitempty"`

	// DefaultedFields names analysis fields that fell back to their
	// conservative defaults because the agent reply had no matching marker.
	DefaultedFields []string `json:"defaultedFields,omitempty"`
}
