package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"alertpilot/src/execution"
	"alertpilot/src/model"
)

// ConfidenceThreshold is the fixed minimum confidence for execution. Policy
// constant, not derived.
const ConfidenceThreshold = 70

// decide is the decision gate: hold or confidence below threshold skips;
// otherwise the order goes to the execution collaborator. A failed
// submission surfaces as executed=false, never as a pipeline error.
func (p *Pipeline) decide(ctx context.Context, a model.Analysis) model.ExecutionResult {
	now := p.now().UnixMilli()

	if a.RecommendedAction == model.RecommendHold {
		return model.ExecutionResult{
			Executed:  false,
			Message:   "trade skipped: agent recommends hold",
			Timestamp: now,
		}
	}
	if a.Confidence < ConfidenceThreshold {
		return model.ExecutionResult{
			Executed:  false,
			Message:   fmt.Sprintf("trade skipped: confidence %d below threshold %d", a.Confidence, ConfidenceThreshold),
			Timestamp: now,
		}
	}

	tradeID := p.newTradeID()
	order := execution.Order{
		TradeID:    tradeID,
		Symbol:     a.Symbol,
		Side:       a.RecommendedAction,
		Type:       "market",
		Price:      a.CurrentPrice,
		PortionPct: a.PositionSize,
	}

	if err := p.submitter.SubmitOrder(ctx, order); err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"trade_id": tradeID,
			"symbol":   a.Symbol,
		}).Error("order submission failed")

		return model.ExecutionResult{
			Executed:  false,
			Message:   fmt.Sprintf("trade submission failed: %v", err),
			Timestamp: now,
		}
	}

	p.logger.WithFields(logrus.Fields{
		"trade_id":   tradeID,
		"symbol":     a.Symbol,
		"side":       a.RecommendedAction,
		"confidence": a.Confidence,
	}).Info("simulated trade executed")

	return model.ExecutionResult{
		Executed:  true,
		TradeID:   tradeID,
		Message:   fmt.Sprintf("simulated %s order placed for %s", a.RecommendedAction, a.Symbol),
		Timestamp: now,
	}
}
