package server

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"5001"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"alertpilot"`

	// WebhookToken, when set, must accompany every webhook request in the
	// X-Webhook-Token header. Empty disables the check.
	WebhookToken string `envconfig:"WEBHOOK_TOKEN"`
}

func GetConfig() *Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return &config
}
