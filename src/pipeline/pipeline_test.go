package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"alertpilot/src/alert"
	"alertpilot/src/eventlog"
	"alertpilot/src/execution"
	"alertpilot/src/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInvoker struct {
	reply string
	err   error
	calls int
}

func (s *stubInvoker) Invoke(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	s.calls++
	return s.reply, s.err
}

type stubSubmitter struct {
	err    error
	orders []execution.Order
}

func (s *stubSubmitter) SubmitOrder(ctx context.Context, order execution.Order) error {
	s.orders = append(s.orders, order)
	return s.err
}

type stubPrices struct {
	price float64
	err   error
	calls int
}

func (s *stubPrices) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	s.calls++
	return s.price, s.err
}

type nullSink struct{ entries []model.LogEntry }

func (s *nullSink) Emit(entry model.LogEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func newTestPipeline(invoker *stubInvoker, submitter *stubSubmitter, sink *nullSink) *Pipeline {
	p := New(invoker, nil, submitter, nil, eventlog.NewRecorder(sink), logrus.NewEntry(logrus.StandardLogger()))
	p.now = func() time.Time { return time.UnixMilli(1748800000000) }
	p.newTradeID = func() string { return "trade_fixed" }
	return p
}

func buyAlert() model.RawAlert {
	return model.RawAlert{
		"symbol":    "BTCUSDT",
		"price":     45000.0,
		"action":    "buy",
		"timeframe": "1h",
		"exchange":  "binance",
		"message":   "RSI below 30",
	}
}

func TestRun_ExecutesOnConfidentBuy(t *testing.T) {
	invoker := &stubInvoker{reply: "Analysis follows. Recommended Action: buy. Confidence: 85%. Risk Level: low."}
	submitter := &stubSubmitter{}
	sink := &nullSink{}
	p := newTestPipeline(invoker, submitter, sink)

	result, err := p.Run(context.Background(), buyAlert())
	require.NoError(t, err)

	assert.Equal(t, model.RecommendBuy, result.Analysis.RecommendedAction)
	assert.Equal(t, 85, result.Analysis.Confidence)
	assert.Equal(t, model.RiskLow, result.Analysis.RiskLevel)
	assert.Equal(t, "4.25% of portfolio", result.Analysis.PositionSize)

	assert.True(t, result.Execution.Executed)
	assert.Equal(t, "trade_fixed", result.Execution.TradeID)
	require.Len(t, submitter.orders, 1)
	assert.Equal(t, "BTCUSDT", submitter.orders[0].Symbol)

	require.Len(t, sink.entries, 1)
	assert.Empty(t, sink.entries[0].DefaultedFields)
}

func TestRun_DefaultsToHoldOnUnmarkedReply(t *testing.T) {
	invoker := &stubInvoker{reply: "Long prose with no extractable markers at all."}
	submitter := &stubSubmitter{}
	sink := &nullSink{}
	p := newTestPipeline(invoker, submitter, sink)

	result, err := p.Run(context.Background(), buyAlert())
	require.NoError(t, err)

	assert.Equal(t, model.RecommendHold, result.Analysis.RecommendedAction)
	assert.Equal(t, 50, result.Analysis.Confidence)
	assert.Equal(t, model.RiskMedium, result.Analysis.RiskLevel)
	assert.Empty(t, result.Analysis.PositionSize)

	assert.False(t, result.Execution.Executed)
	assert.Empty(t, submitter.orders, "hold must never reach the submitter")

	require.Len(t, sink.entries, 1)
	assert.ElementsMatch(t,
		[]string{"confidence", "recommendedAction", "riskLevel"},
		sink.entries[0].DefaultedFields)
}

// Malformed payloads must short-circuit before any collaborator is touched.
func TestRun_ValidationShortCircuit(t *testing.T) {
	invoker := &stubInvoker{reply: "unused"}
	submitter := &stubSubmitter{}
	p := newTestPipeline(invoker, submitter, &nullSink{})

	_, err := p.Run(context.Background(), model.RawAlert{"symbol": "BTCUSDT"})
	require.Error(t, err)

	var verr *alert.ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Zero(t, invoker.calls)
	assert.Empty(t, submitter.orders)
}

func TestRun_AgentFailureIsFatal(t *testing.T) {
	invoker := &stubInvoker{err: errors.New("quota exceeded")}
	submitter := &stubSubmitter{}
	sink := &nullSink{}
	p := newTestPipeline(invoker, submitter, sink)

	_, err := p.Run(context.Background(), buyAlert())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	assert.Empty(t, submitter.orders)
	assert.Empty(t, sink.entries, "failed runs are not logged as successful")
}

func TestRun_SubmissionFailureIsNotFatal(t *testing.T) {
	invoker := &stubInvoker{reply: "Recommended Action: sell. Confidence: 90%. Risk Level: high."}
	submitter := &stubSubmitter{err: errors.New("exchange simulator down")}
	p := newTestPipeline(invoker, submitter, &nullSink{})

	result, err := p.Run(context.Background(), buyAlert())
	require.NoError(t, err)

	assert.False(t, result.Execution.Executed)
	assert.Contains(t, result.Execution.Message, "exchange simulator down")
}

func TestRun_PriceEnrichment(t *testing.T) {
	invoker := &stubInvoker{reply: "Recommended Action: hold. Confidence: 40%. Risk Level: medium."}
	prices := &stubPrices{price: 45123.5}
	sink := &nullSink{}
	p := New(invoker, nil, &stubSubmitter{}, prices, eventlog.NewRecorder(sink), nil)

	raw := model.RawAlert{"symbol": "BTCUSDT", "price": 0.0, "close": 0.0, "action": "alert"}
	result, err := p.Run(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 1, prices.calls)
	assert.Equal(t, 45123.5, result.Alert.Price)
	assert.Equal(t, 45123.5, result.Analysis.CurrentPrice)
}

func TestRun_PriceLookupFailureIsNonFatal(t *testing.T) {
	invoker := &stubInvoker{reply: "Recommended Action: hold. Confidence: 40%. Risk Level: medium."}
	prices := &stubPrices{err: errors.New("rate limited")}
	p := New(invoker, nil, &stubSubmitter{}, prices, eventlog.NewRecorder(&nullSink{}), nil)

	raw := model.RawAlert{"symbol": "BTCUSDT", "close": 0.0, "action": "alert"}
	result, err := p.Run(context.Background(), raw)
	require.NoError(t, err)
	assert.Zero(t, result.Alert.Price)
}

func TestDecide_GateBoundaries(t *testing.T) {
	tests := []struct {
		name         string
		action       string
		confidence   int
		wantExecuted bool
	}{
		{name: "buy just below threshold", action: model.RecommendBuy, confidence: 69, wantExecuted: false},
		{name: "buy at threshold", action: model.RecommendBuy, confidence: 70, wantExecuted: true},
		{name: "hold at full confidence", action: model.RecommendHold, confidence: 100, wantExecuted: false},
		{name: "sell above threshold", action: model.RecommendSell, confidence: 95, wantExecuted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter := &stubSubmitter{}
			p := newTestPipeline(&stubInvoker{}, submitter, &nullSink{})

			result := p.decide(context.Background(), model.Analysis{
				Symbol:            "BTCUSDT",
				RecommendedAction: tt.action,
				Confidence:        tt.confidence,
			})

			assert.Equal(t, tt.wantExecuted, result.Executed)
			if tt.wantExecuted {
				assert.NotEmpty(t, result.TradeID)
				assert.Len(t, submitter.orders, 1)
			} else {
				assert.Empty(t, result.TradeID)
				assert.Empty(t, submitter.orders)
			}
		})
	}
}
