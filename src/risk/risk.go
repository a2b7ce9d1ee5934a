package risk

import (
	"github.com/shopspring/decimal"

	"alertpilot/src/model"
)

// SizeConfig holds the sizing multipliers applied per extracted risk level.
type SizeConfig struct {
	LowMultiplier    decimal.Decimal
	MediumMultiplier decimal.Decimal
	HighMultiplier   decimal.Decimal

	// BasePortionPct is the nominal portfolio percentage before scaling.
	BasePortionPct decimal.Decimal
}

// DefaultSizeConfig reasonable defaults, tweak as you like
func DefaultSizeConfig() SizeConfig {
	return SizeConfig{
		LowMultiplier:    decimal.NewFromFloat(1.0),
		MediumMultiplier: decimal.NewFromFloat(0.5),
		HighMultiplier:   decimal.NewFromFloat(0.25),
		BasePortionPct:   decimal.NewFromFloat(5.0),
	}
}

// SuggestPortionPct converts the extracted risk level and confidence into a
// suggested portfolio percentage: base * riskMultiplier * confidence/100.
// Pure function; zero confidence sizes to zero.
func SuggestPortionPct(riskLevel string, confidence int, cfg SizeConfig) decimal.Decimal {
	if confidence <= 0 {
		return decimal.Zero
	}
	if confidence > 100 {
		confidence = 100
	}

	mult := multiplierForRisk(riskLevel, cfg)
	scale := decimal.NewFromInt(int64(confidence)).Div(decimal.NewFromInt(100))

	return cfg.BasePortionPct.Mul(mult).Mul(scale)
}

func multiplierForRisk(riskLevel string, cfg SizeConfig) decimal.Decimal {
	switch riskLevel {
	case model.RiskLow:
		return cfg.LowMultiplier
	case model.RiskHigh:
		return cfg.HighMultiplier
	default:
		return cfg.MediumMultiplier
	}
}
