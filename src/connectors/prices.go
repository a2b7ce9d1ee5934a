package connectors

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/nntaoli-project/goex"
	"github.com/nntaoli-project/goex/binance"
	logger "github.com/sirupsen/logrus"
)

// PriceSource looks up a current market price for a symbol. Used to fill
// the prompt's price line when the alert arrived without one; failures are
// non-fatal to the pipeline.
type PriceSource interface {
	SpotPrice(ctx context.Context, symbol string) (float64, error)
}

// BinancePriceSource reads the spot ticker from Binance public endpoints.
type BinancePriceSource struct {
	exchange goex.API
}

func NewBinancePriceSource() *BinancePriceSource {
	apiConfig := &goex.APIConfig{
		HttpClient: &http.Client{Timeout: 10 * time.Second},
		Endpoint:   binance.GLOBAL_API_BASE_URL,
	}
	return &BinancePriceSource{exchange: binance.NewWithConfig(apiConfig)}
}

func (s *BinancePriceSource) SpotPrice(ctx context.Context, symbol string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pair, err := pairFromSymbol(symbol)
	if err != nil {
		return 0, err
	}

	ticker, err := s.exchange.GetTicker(pair)
	if err != nil {
		return 0, fmt.Errorf("fetch ticker for %s: %w", symbol, err)
	}

	logger.WithFields(logger.Fields{
		"symbol": symbol,
		"last":   ticker.Last,
	}).Debug("spot price fetched")

	return ticker.Last, nil
}

// quote assets recognized when splitting a TradingView style symbol like
// BTCUSDT into a goex currency pair
var knownQuotes = []string{"USDT", "BUSD", "USDC", "USD", "BTC", "ETH", "EUR"}

func pairFromSymbol(symbol string) (goex.CurrencyPair, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	for _, quote := range knownQuotes {
		if strings.HasSuffix(s, quote) && len(s) > len(quote) {
			base := strings.TrimSuffix(s, quote)
			return goex.NewCurrencyPair2(base + "_" + quote), nil
		}
	}
	return goex.UNKNOWN_PAIR, fmt.Errorf("cannot derive currency pair from symbol %q", symbol)
}
