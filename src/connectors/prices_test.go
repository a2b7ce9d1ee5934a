package connectors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairFromSymbol(t *testing.T) {
	tests := []struct {
		symbol  string
		want    string
		wantErr bool
	}{
		{symbol: "BTCUSDT", want: "BTC_USDT"},
		{symbol: "ethusdt", want: "ETH_USDT"},
		{symbol: " SOLUSD ", want: "SOL_USD"},
		{symbol: "ETHBTC", want: "ETH_BTC"},
		{symbol: "USDT", wantErr: true}, // quote only, no base
		{symbol: "BTCXYZ", wantErr: true},
		{symbol: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			pair, err := pairFromSymbol(tt.symbol)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, pair.ToSymbol("_"))
		})
	}
}
