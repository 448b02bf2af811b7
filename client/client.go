// Package client is the payment-side client of the registration flow: it
// creates orders, resolves the publishable key, verifies payments and owns
// the checkout session lifecycle. It never sees the gateway secret.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 15 * time.Second

// Order is the subset of the gateway order object the client needs
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

// PaymentResult is the triple produced by a successful checkout
type PaymentResult struct {
	PaymentID string `json:"paymentId"`
	OrderID   string `json:"orderId"`
	Signature string `json:"signature"`
}

// Client talks to the payment backend. The publishable key id is cached
// after the first successful resolution; the cache lives on the client, not
// in package state, so its lifetime is explicit.
type Client struct {
	http         *resty.Client
	baseURL      string
	buildTimeKey string

	mu          sync.Mutex
	cachedKeyID string
}

// Option configures a Client
type Option func(*Client)

// WithTimeout overrides the default request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithBuildTimeKey sets the fallback publishable key used when the backend's
// config endpoint is unavailable
func WithBuildTimeKey(key string) Option {
	return func(c *Client) {
		c.buildTimeKey = key
	}
}

// New creates a Client against the given base URL (normally the output of
// ResolveBaseURL).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    resty.New().SetTimeout(defaultTimeout),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateOrder asks the backend for a gateway order. Amount is in whole
// rupees; the backend converts to minor units.
func (c *Client) CreateOrder(ctx context.Context, amount float64) (*Order, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{"amount": amount}).
		Post(c.baseURL + "/razorpay/create-order")
	if err != nil {
		return nil, fmt.Errorf("create-order request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("create-order failed: %d %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	var order Order
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("failed to decode order response: %w", err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("order response missing id")
	}
	return &order, nil
}

// VerifyPayment submits the checkout result triple for server-side signature
// verification.
func (c *Client) VerifyPayment(ctx context.Context, paymentID, orderID, signature string) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"paymentId": paymentID,
			"orderId":   orderID,
			"signature": signature,
		}).
		Post(c.baseURL + "/razorpay/verify-payment")
	if err != nil {
		return false, fmt.Errorf("verify-payment request failed: %w", err)
	}
	if resp.IsError() {
		return false, fmt.Errorf("verify-payment failed: %d %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}

	var result struct {
		Verified bool `json:"verified"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return false, fmt.Errorf("failed to decode verification response: %w", err)
	}
	return result.Verified, nil
}

// CancelPayment reports a payer-initiated cancellation to the backend. The id
// format is guarded client-side so obviously malformed ids never leave the
// process.
func (c *Client) CancelPayment(ctx context.Context, paymentID string) error {
	if paymentID == "" {
		return fmt.Errorf("payment id is required")
	}
	if !strings.HasPrefix(paymentID, "pay_") {
		return fmt.Errorf("invalid payment id format: %q", paymentID)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"paymentId": paymentID}).
		Post(c.baseURL + "/razorpay/cancel")
	if err != nil {
		return fmt.Errorf("cancel request failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("cancel failed: %d %s", resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	return nil
}

// PublicKeyID resolves the gateway's publishable key: the backend's config
// endpoint first (several historical response shapes are accepted), the
// build-time key as fallback. The value is a format-guarded public key, not a
// secret.
func (c *Client) PublicKeyID(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cachedKeyID != "" {
		return c.cachedKeyID, nil
	}

	key := c.fetchKeyID(ctx)
	if key == "" {
		key = c.buildTimeKey
	}
	if key == "" {
		return "", fmt.Errorf("no Razorpay key id available from backend config or build-time environment")
	}
	if !strings.HasPrefix(key, "rzp_test_") && !strings.HasPrefix(key, "rzp_live_") {
		return "", fmt.Errorf("razorpay key id %q has unexpected format", key)
	}

	c.cachedKeyID = key
	return key, nil
}

func (c *Client) fetchKeyID(ctx context.Context) string {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.baseURL + "/razorpay/config")
	if err != nil || resp.IsError() {
		return ""
	}

	var body map[string]interface{}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return ""
	}
	// Field name has drifted across backend versions
	for _, field := range []string{"razorpayKeyId", "key", "publicKey", "razorpay_key_id"} {
		if v, ok := body[field].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
