package model

// Action values accepted on an inbound TradingView alert.
const (
	ActionBuy   = "buy"
	ActionSell  = "sell"
	ActionAlert = "alert"
)

// RawAlert is the webhook payload exactly as received. TradingView message
// templates vary per user, so field names and types are only known after
// validation.
type RawAlert map[string]any

// CanonicalAlert is the normalized form of a validated RawAlert. Built once
// per request and never mutated afterwards.
type CanonicalAlert struct {
	Symbol    string   `json:"symbol"`
	Price     float64  `json:"price"`
	Action    string   `json:"action"`
	Strategy  string   `json:"strategy,omitempty"`
	Timeframe string   `json:"timeframe,omitempty"`
	Exchange  string   `json:"exchange,omitempty"`
	Timestamp int64    `json:"timestamp"`
	Message   string   `json:"message,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
	RSI       *float64 `json:"rsi,omitempty"`
	MACD      string   `json:"macd,omitempty"`
}
