package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	logger "github.com/sirupsen/logrus"

	"alertpilot/src/alert"
	"alertpilot/src/model"
	"alertpilot/src/pipeline"
)

// pipelineRunner is what the handlers need from the pipeline.
type pipelineRunner interface {
	Run(ctx context.Context, raw model.RawAlert) (*pipeline.Result, error)
}

type webhookResponse struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	LogID    string          `json:"logId,omitempty"`
	Analysis *model.Analysis `json:"analysis,omitempty"`

	Errors []alert.FieldError `json:"errors,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// WebhookHandler runs the analysis pipeline for an inbound TradingView
// alert. Validation failures map to 400, collaborator failures to 500.
func WebhookHandler(p pipelineRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw model.RawAlert
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			writeJSON(w, http.StatusBadRequest, webhookResponse{
				Success: false,
				Message: "Invalid webhook data",
				Errors:  []alert.FieldError{{Field: "body", Reason: "malformed JSON"}},
			})
			return
		}

		runPipeline(w, r, p, raw)
	}
}

// TriggerAnalysisHandler runs the pipeline against a fixed sample alert so
// the integration can be exercised without TradingView.
func TriggerAnalysisHandler(p pipelineRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sample := model.RawAlert{
			"symbol":    "BTCUSDT",
			"price":     45000.0,
			"action":    "buy",
			"strategy":  "RSI Oversold",
			"timeframe": "1h",
			"exchange":  "binance",
			"message":   "RSI below 30, potential reversal",
		}

		runPipeline(w, r, p, sample)
	}
}

func runPipeline(w http.ResponseWriter, r *http.Request, p pipelineRunner, raw model.RawAlert) {
	result, err := p.Run(r.Context(), raw)
	if err != nil {
		var verr *alert.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, http.StatusBadRequest, webhookResponse{
				Success: false,
				Message: "Invalid webhook data",
				Errors:  verr.Fields,
			})
			return
		}

		logger.WithError(err).Error("pipeline run failed")
		writeJSON(w, http.StatusInternalServerError, webhookResponse{
			Success: false,
			Message: "Failed to process alert",
			Error:   err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, webhookResponse{
		Success:  true,
		Message:  "Alert processed",
		LogID:    result.LogEntry.ID,
		Analysis: &result.Analysis,
	})
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

func HealthHandler(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Service:   serviceName,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.WithError(err).Error("failed to encode response")
	}
}
