// REST client for the exchange-simulation API. One attempt per order, no
// internal retry: the pipeline treats a failed submission as a skipped
// trade, never as something to re-send.
package execution

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	logger "github.com/sirupsen/logrus"
)

// Order is a simulated trade submission.
type Order struct {
	TradeID    string  `json:"tradeId"`
	Symbol     string  `json:"symbol"`
	Side       string  `json:"side"`
	Type       string  `json:"type"`
	Price      float64 `json:"price"`
	PortionPct string  `json:"portionPct,omitempty"`
}

// Submitter hands an order to the execution collaborator.
type Submitter interface {
	SubmitOrder(ctx context.Context, order Order) error
}

type Client struct {
	http      *resty.Client
	apiKey    string
	apiSecret string
	dryRun    bool
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		logger.Info("no execution endpoint configured, orders will be simulated locally")
		return &Client{dryRun: true}
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:      httpClient,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
	}
}

type submitResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"orderId"`
	Message string `json:"message"`
}

// SubmitOrder posts the order to the simulator. In dry-run mode it only
// logs the acknowledgement.
func (c *Client) SubmitOrder(ctx context.Context, order Order) error {
	if c.dryRun {
		logger.WithFields(logger.Fields{
			"trade_id": order.TradeID,
			"symbol":   order.Symbol,
			"side":     order.Side,
			"price":    order.Price,
		}).Info("dry-run order acknowledged")
		return nil
	}

	body, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", c.apiKey).
		SetHeader("X-SIGNATURE", signBody(body, c.apiSecret)).
		SetBody(body).
		SetResult(&submitResponse{}).
		Post("/api/v1/orders")
	if err != nil {
		return fmt.Errorf("submit order: %w", err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("execution api returned status %d: %s", resp.StatusCode(), resp.String())
	}

	ack, _ := resp.Result().(*submitResponse)
	if ack != nil && ack.OrderID != "" {
		logger.WithFields(logger.Fields{
			"trade_id": order.TradeID,
			"order_id": ack.OrderID,
		}).Info("order accepted by execution api")
	}

	return nil
}

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
