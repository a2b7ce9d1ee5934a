package execution

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// BaseURL of the exchange-simulation API. Empty means dry-run: orders
	// are acknowledged locally and nothing leaves the process.
	BaseURL   string        `envconfig:"EXECUTION_BASE_URL"`
	APIKey    string        `envconfig:"EXECUTION_API_KEY"`
	APISecret string        `envconfig:"EXECUTION_API_SECRET"`
	Timeout   time.Duration `envconfig:"EXECUTION_TIMEOUT" default:"15s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
