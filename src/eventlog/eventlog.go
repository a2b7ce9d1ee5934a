package eventlog

import (
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"

	"alertpilot/src/model"
)

// Sink receives finished pipeline records. Implementations must not block
// the request path; emission failures are swallowed by the Recorder.
type Sink interface {
	Emit(entry model.LogEntry) error
}

// LogrusSink writes entries to the process log.
type LogrusSink struct {
	log *logger.Entry
}

func NewLogrusSink(log *logger.Entry) *LogrusSink {
	if log == nil {
		log = logger.NewEntry(logger.StandardLogger())
	}
	return &LogrusSink{log: log}
}

func (s *LogrusSink) Emit(entry model.LogEntry) error {
	fields := logger.Fields{
		"log_id":    entry.ID,
		"timestamp": entry.Timestamp,
	}
	if entry.Alert != nil {
		fields["symbol"] = entry.Alert.Symbol
		fields["alert_action"] = entry.Alert.Action
	}
	if entry.Analysis != nil {
		fields["recommended_action"] = entry.Analysis.RecommendedAction
		fields["confidence"] = entry.Analysis.Confidence
		fields["risk_level"] = entry.Analysis.RiskLevel
	}
	if entry.Execution != nil {
		fields["executed"] = entry.Execution.Executed
		if entry.Execution.TradeID != "" {
			fields["trade_id"] = entry.Execution.TradeID
		}
	}
	if len(entry.DefaultedFields) > 0 {
		fields["extraction_defaults"] = entry.DefaultedFields
	}

	s.log.WithFields(fields).Info("pipeline run recorded")
	return nil
}

// Recorder assembles LogEntry records and hands them to the sink. Logging is
// best effort: a sink failure never reaches the caller.
type Recorder struct {
	sink Sink
	now  func() time.Time
}

func NewRecorder(sink Sink) *Recorder {
	if sink == nil {
		sink = NewLogrusSink(nil)
	}
	return &Recorder{sink: sink, now: time.Now}
}

// Record builds a write-once entry for one pipeline run and emits it.
func (r *Recorder) Record(alert *model.CanonicalAlert, analysis *model.Analysis, execution *model.ExecutionResult, defaulted []string) model.LogEntry {
	now := r.now()
	entry := model.LogEntry{
		ID:              fmt.Sprintf("log_%d", now.UnixMilli()),
		Timestamp:       now.UnixMilli(),
		Alert:           alert,
		Analysis:        analysis,
		Execution:       execution,
		DefaultedFields: defaulted,
	}

	if err := r.sink.Emit(entry); err != nil {
		// non-fatal: the HTTP response must not depend on the sink
		logger.WithError(err).Warn("event log emission failed")
	}

	return entry
}
