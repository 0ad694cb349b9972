// Package paypal is a minimal client for the two PayPal REST calls the
// backend makes: order creation and order capture.
package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"golang.org/x/oauth2/clientcredentials"

	"drivehub-backend/internal/config"
)

// Order is the slice of a PayPal order the backend cares about.
type Order struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Client talks to the PayPal Orders API. The OAuth2 token is acquired and
// refreshed by the underlying client-credentials transport.
type Client struct {
	baseURL  string
	currency string
	http     *http.Client
}

// NewClient creates a PayPal client from configuration.
func NewClient(cfg *config.PayPalConfig) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.BaseURL + "/v1/oauth2/token",
	}

	return &Client{
		baseURL:  cfg.BaseURL,
		currency: cfg.Currency,
		http:     cc.Client(context.Background()),
	}
}

type orderAmount struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type purchaseUnit struct {
	Amount orderAmount `json:"amount"`
}

type createOrderBody struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

// CreateOrder creates a CAPTURE-intent order for the given amount.
func (c *Client) CreateOrder(ctx context.Context, amount float64) (*Order, error) {
	body := createOrderBody{
		Intent: "CAPTURE",
		PurchaseUnits: []purchaseUnit{{
			Amount: orderAmount{
				CurrencyCode: c.currency,
				Value:        strconv.FormatFloat(amount, 'f', 2, 64),
			},
		}},
	}

	return c.post(ctx, c.baseURL+"/v2/checkout/orders", body)
}

// CaptureOrder captures a previously approved order.
func (c *Client) CaptureOrder(ctx context.Context, orderID string) (*Order, error) {
	return c.post(ctx, c.baseURL+"/v2/checkout/orders/"+orderID+"/capture", struct{}{})
}

func (c *Client) post(ctx context.Context, url string, body any) (*Order, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("paypal request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("paypal returned %d: %s", resp.StatusCode, raw)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &order, nil
}
