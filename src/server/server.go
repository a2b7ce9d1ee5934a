package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	logger "github.com/sirupsen/logrus"
)

// NewRouter wires the public routes onto a chi router.
func NewRouter(cfg *Config, p pipelineRunner) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", HealthHandler(cfg.ServiceName))

	r.Group(func(r chi.Router) {
		r.Use(RequireWebhookToken(cfg.WebhookToken))
		r.Post("/webhook/tradingview", WebhookHandler(p))
		r.Post("/test/trigger-analysis", TriggerAnalysisHandler(p))
	})

	return r
}

// StartServer runs the HTTP server until SIGINT/SIGTERM, then drains for up
// to five seconds.
func StartServer(cfg *Config, p pipelineRunner) {
	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:    addr,
		Handler: NewRouter(cfg, p),
	}

	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
