package alert

import (
	"fmt"
	"strconv"
	"strings"

	"alertpilot/src/model"
)

// FieldError describes one offending payload field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every field failure found in one payload so the
// caller can return them all at once instead of drip-feeding.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "invalid webhook data: " + strings.Join(parts, ", ")
}

var validActions = map[string]bool{
	model.ActionBuy:   true,
	model.ActionSell:  true,
	model.ActionAlert: true,
}

// optional string fields, type-checked only when present
var optionalStrings = []string{"strategy", "alert_name", "timeframe", "exchange", "message", "macd"}

// optional numeric fields, type-checked only when present
var optionalNumbers = []string{"timestamp", "bar_time", "volume", "volume_24h", "rsi"}

// Validate checks a raw payload against the webhook schema. It returns a
// *ValidationError listing every offending field, or nil when the payload
// can be normalized safely. It never produces a partial result.
func Validate(raw model.RawAlert) error {
	var fields []FieldError

	if s, ok := stringField(raw, "symbol"); !ok || strings.TrimSpace(s) == "" {
		fields = append(fields, FieldError{Field: "symbol", Reason: "must be a non-empty string"})
	}

	_, hasPrice := numberField(raw, "price")
	_, hasClose := numberField(raw, "close")
	if _, present := raw["price"]; present && !hasPrice {
		fields = append(fields, FieldError{Field: "price", Reason: "must be numeric"})
	} else if !hasPrice && !hasClose {
		fields = append(fields, FieldError{Field: "price", Reason: "price or close is required and must be numeric"})
	}
	if _, present := raw["close"]; present && !hasClose {
		fields = append(fields, FieldError{Field: "close", Reason: "must be numeric"})
	}

	action, hasAction := stringField(raw, "action")
	if !hasAction || !validActions[strings.ToLower(action)] {
		fields = append(fields, FieldError{Field: "action", Reason: "must be one of buy, sell, alert"})
	}

	for _, key := range optionalStrings {
		if _, present := raw[key]; !present {
			continue
		}
		if _, ok := stringField(raw, key); !ok {
			fields = append(fields, FieldError{Field: key, Reason: "must be a string"})
		}
	}

	for _, key := range optionalNumbers {
		if _, present := raw[key]; !present {
			continue
		}
		if _, ok := numberField(raw, key); !ok {
			fields = append(fields, FieldError{Field: key, Reason: "must be numeric"})
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func stringField(raw model.RawAlert, key string) (string, bool) {
	v, ok := raw[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// numberField reads a numeric payload field. TradingView message templates
// frequently quote numeric placeholders, so numeric strings count too.
func numberField(raw model.RawAlert, key string) (float64, bool) {
	v, ok := raw[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
