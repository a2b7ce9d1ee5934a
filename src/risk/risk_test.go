package risk

import (
	"testing"

	"github.com/shopspring/decimal"

	"alertpilot/src/model"
)

func TestSuggestPortionPct(t *testing.T) {
	cfg := SizeConfig{
		LowMultiplier:    decimal.RequireFromString("1"),
		MediumMultiplier: decimal.RequireFromString("0.5"),
		HighMultiplier:   decimal.RequireFromString("0.25"),
		BasePortionPct:   decimal.RequireFromString("10"),
	}

	tests := []struct {
		name       string
		riskLevel  string
		confidence int
		want       decimal.Decimal
	}{
		{
			name:       "low risk full confidence",
			riskLevel:  model.RiskLow,
			confidence: 100,
			want:       decimal.RequireFromString("10"),
		},
		{
			name:       "medium risk at threshold confidence",
			riskLevel:  model.RiskMedium,
			confidence: 70,
			want:       decimal.RequireFromString("3.5"),
		},
		{
			name:       "high risk halves again",
			riskLevel:  model.RiskHigh,
			confidence: 80,
			want:       decimal.RequireFromString("2"),
		},
		{
			name:       "unknown risk treated as medium",
			riskLevel:  "extreme",
			confidence: 100,
			want:       decimal.RequireFromString("5"),
		},
		{
			name:       "zero confidence sizes to zero",
			riskLevel:  model.RiskLow,
			confidence: 0,
			want:       decimal.Zero,
		},
		{
			name:       "confidence clamped at 100",
			riskLevel:  model.RiskLow,
			confidence: 250,
			want:       decimal.RequireFromString("10"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestPortionPct(tt.riskLevel, tt.confidence, cfg)
			if !got.Equal(tt.want) {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}
