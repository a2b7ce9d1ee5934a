package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"alertpilot/src/agent"
	"alertpilot/src/analysis"
	"alertpilot/src/connectors"
	"alertpilot/src/eventlog"
	"alertpilot/src/execution"
	"alertpilot/src/model"
	"alertpilot/src/pipeline"
	"alertpilot/src/server"
)

var Version string

func main() {
	app := cli.NewApp()
	app.Name = "alertpilot"
	app.Usage = "TradingView alert analysis and simulated execution"

	app.Commands = []cli.Command{
		serveCMD,
		analyzeCMD,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var (
	serveCMD = cli.Command{
		Name:        "serve",
		Usage:       "run the webhook server",
		Action:      serveAction,
		ArgsUsage:   "",
		Flags:       []cli.Flag{},
		Description: `Run the TradingView webhook server`,
	}
	analyzeCMD = cli.Command{
		Name:      "analyze",
		Usage:     "run the pipeline once against an alert",
		Action:    analyzeAction,
		ArgsUsage: "",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "symbol", Value: "BTCUSDT"},
			cli.Float64Flag{Name: "price", Value: 0},
			cli.StringFlag{Name: "action", Value: "buy"},
			cli.StringFlag{Name: "timeframe", Value: "1h"},
			cli.StringFlag{Name: "message", Value: ""},
		},
		Description: `Run one alert through the analysis pipeline and print the result`,
	}
)

func buildPipeline() (*pipeline.Pipeline, error) {
	invoker, err := agent.NewInvoker(agent.GetConfig())
	if err != nil {
		return nil, err
	}

	var prices connectors.PriceSource
	if connectors.GetConfig().PriceLookupEnabled {
		prices = connectors.NewBinancePriceSource()
	}

	return pipeline.New(
		invoker,
		analysis.RegexExtractor{},
		execution.NewClient(execution.GetConfig()),
		prices,
		eventlog.NewRecorder(eventlog.NewLogrusSink(nil)),
		logrus.WithField("component", "pipeline"),
	), nil
}

func serveAction(_ *cli.Context) error {
	logrus.Info("Starting webhook server")

	p, err := buildPipeline()
	if err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	server.StartServer(server.GetConfig(), p)
	return nil
}

func analyzeAction(c *cli.Context) error {
	logrus.Info("Running one-shot analysis")

	p, err := buildPipeline()
	if err != nil {
		logrus.WithError(err).Error("Starting cmd")
		return err
	}

	raw := model.RawAlert{
		"symbol":    c.String("symbol"),
		"price":     c.Float64("price"),
		"action":    c.String("action"),
		"timeframe": c.String("timeframe"),
	}
	if msg := c.String("message"); msg != "" {
		raw["message"] = msg
	}

	result, err := p.Run(context.Background(), raw)
	if err != nil {
		logrus.WithError(err).Error("Pipeline run failed")
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))

	return nil
}
