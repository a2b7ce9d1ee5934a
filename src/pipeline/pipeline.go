package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alertpilot/src/agent"
	"alertpilot/src/alert"
	"alertpilot/src/analysis"
	"alertpilot/src/connectors"
	"alertpilot/src/eventlog"
	"alertpilot/src/execution"
	"alertpilot/src/model"
	"alertpilot/src/risk"
)

// Pipeline runs one alert through validate -> normalize -> prompt -> agent
// -> extract -> gate -> record. Every collaborator is injected; each record
// it produces is request-scoped and discarded after the run.
type Pipeline struct {
	invoker    agent.Invoker
	extractor  analysis.ResponseExtractor
	submitter  execution.Submitter
	prices     connectors.PriceSource // nil disables price enrichment
	recorder   *eventlog.Recorder
	sizing     risk.SizeConfig
	logger     *logrus.Entry
	now        func() time.Time
	newTradeID func() string
}

func New(invoker agent.Invoker, extractor analysis.ResponseExtractor, submitter execution.Submitter, prices connectors.PriceSource, recorder *eventlog.Recorder, logger *logrus.Entry) *Pipeline {
	if extractor == nil {
		extractor = analysis.RegexExtractor{}
	}
	if recorder == nil {
		recorder = eventlog.NewRecorder(nil)
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}

	return &Pipeline{
		invoker:   invoker,
		extractor: extractor,
		submitter: submitter,
		prices:    prices,
		recorder:  recorder,
		sizing:    risk.DefaultSizeConfig(),
		logger:    logger,
		now:       time.Now,
		newTradeID: func() string {
			return "trade_" + uuid.NewString()
		},
	}
}

// Result is the full outcome of one pipeline run.
type Result struct {
	Alert     model.CanonicalAlert
	Analysis  model.Analysis
	Execution model.ExecutionResult
	LogEntry  model.LogEntry
}

// Run executes the pipeline for one raw payload. A *alert.ValidationError
// return means the payload never reached a collaborator; any other error is
// a failed agent call for this request.
func (p *Pipeline) Run(ctx context.Context, raw model.RawAlert) (*Result, error) {
	if err := alert.Validate(raw); err != nil {
		return nil, err
	}

	canonical := alert.Normalize(raw, p.now())

	p.logger.WithFields(logrus.Fields{
		"symbol": canonical.Symbol,
		"action": canonical.Action,
		"price":  canonical.Price,
	}).Info("alert accepted")

	if canonical.Price == 0 && p.prices != nil {
		price, err := p.prices.SpotPrice(ctx, canonical.Symbol)
		if err != nil {
			// enrichment only; the prompt renders "Not available"
			p.logger.WithError(err).WithField("symbol", canonical.Symbol).Warn("price lookup failed")
		} else {
			canonical.Price = price
		}
	}

	prompt := analysis.BuildPrompt(canonical)

	reply, err := p.invoker.Invoke(ctx, analysis.SystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("agent analysis failed: %w", err)
	}

	extracted := p.extractor.Extract(reply)
	result := Result{
		Alert:    canonical,
		Analysis: p.buildAnalysis(canonical, reply, extracted),
	}

	result.Execution = p.decide(ctx, result.Analysis)
	result.LogEntry = p.recorder.Record(&result.Alert, &result.Analysis, &result.Execution, extracted.Defaulted)

	return &result, nil
}

func (p *Pipeline) buildAnalysis(canonical model.CanonicalAlert, reply string, extracted analysis.Extraction) model.Analysis {
	out := model.Analysis{
		Symbol:            canonical.Symbol,
		CurrentPrice:      canonical.Price,
		RecommendedAction: extracted.Action,
		Confidence:        extracted.Confidence,
		Reasoning:         reply,
		RiskLevel:         extracted.RiskLevel,
		Timeframe:         canonical.Timeframe,
	}

	if out.RecommendedAction != model.RecommendHold {
		portion := risk.SuggestPortionPct(out.RiskLevel, out.Confidence, p.sizing)
		out.PositionSize = fmt.Sprintf("%s%% of portfolio", portion.StringFixed(2))
	}

	return out
}
