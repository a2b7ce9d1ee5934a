package agent

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Mode selects the invoker implementation: "openai" talks to a hosted
	// chat-completions endpoint, "simulated" answers locally.
	Mode    string        `envconfig:"AGENT_MODE" default:"simulated"`
	BaseURL string        `envconfig:"AGENT_BASE_URL" default:"https://api.openai.com/v1"`
	APIKey  string        `envconfig:"AGENT_API_KEY"`
	Model   string        `envconfig:"AGENT_MODEL" default:"gpt-4o-mini"`
	Timeout time.Duration `envconfig:"AGENT_TIMEOUT" default:"30s"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
