package connectors

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// PriceLookupEnabled gates the Binance spot lookup used to enrich
	// prompts for alerts that arrive without a price.
	PriceLookupEnabled bool `envconfig:"PRICE_LOOKUP_ENABLED" default:"true"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
