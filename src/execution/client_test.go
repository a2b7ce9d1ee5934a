package execution

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_DryRunAcknowledgesLocally(t *testing.T) {
	c := NewClient(Config{})

	err := c.SubmitOrder(context.Background(), Order{TradeID: "trade_1", Symbol: "BTCUSDT", Side: "buy"})
	assert.NoError(t, err)
}

func TestClient_SubmitOrder(t *testing.T) {
	var gotKey, gotSig string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/orders", r.URL.Path)
		gotKey = r.Header.Get("X-API-KEY")
		gotSig = r.Header.Get("X-SIGNATURE")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"accepted","orderId":"sim-42"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, APIKey: "key", APISecret: "secret", Timeout: 5 * time.Second})

	err := c.SubmitOrder(context.Background(), Order{
		TradeID: "trade_1",
		Symbol:  "BTCUSDT",
		Side:    "buy",
		Type:    "market",
		Price:   45000,
	})
	require.NoError(t, err)

	assert.Equal(t, "key", gotKey)

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write(gotBody)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), gotSig)
	assert.Contains(t, string(gotBody), `"symbol":"BTCUSDT"`)
}

func TestClient_SubmitOrderErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"status":"rejected","message":"insufficient balance"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, Timeout: 5 * time.Second})

	err := c.SubmitOrder(context.Background(), Order{TradeID: "trade_1", Symbol: "BTCUSDT", Side: "buy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}
