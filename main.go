package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"

	"alertpilot/src/agent"
	"alertpilot/src/analysis"
	"alertpilot/src/connectors"
	"alertpilot/src/eventlog"
	"alertpilot/src/execution"
	"alertpilot/src/pipeline"
	"alertpilot/src/server"
)

var APP_NAME = os.Getenv("APP_NAME")

func SetupLogger() {
	levelStr := strings.ToLower(os.Getenv("LOG_LEVEL"))

	level, err := logger.ParseLevel(levelStr)
	if err != nil {
		level = logger.InfoLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logger.TextFormatter{
		FullTimestamp: true,
	})
}

func main() {
	SetupLogger()
	defer handlePanic()

	cfg := server.GetConfig()

	invoker, err := agent.NewInvoker(agent.GetConfig())
	if err != nil {
		logger.WithError(err).Fatal("Failed to configure agent invoker")
	}

	var prices connectors.PriceSource
	if connectors.GetConfig().PriceLookupEnabled {
		prices = connectors.NewBinancePriceSource()
	}

	p := pipeline.New(
		invoker,
		analysis.RegexExtractor{},
		execution.NewClient(execution.GetConfig()),
		prices,
		eventlog.NewRecorder(eventlog.NewLogrusSink(nil)),
		logger.WithField("component", "pipeline"),
	)

	server.StartServer(cfg, p)
}

func handlePanic() {
	if r := recover(); r != nil {
		logger.WithError(fmt.Errorf("%+v", r)).Error(fmt.Sprintf("Application %s panic", APP_NAME))
	}
	//nolint
	time.Sleep(time.Second * 5)
}
