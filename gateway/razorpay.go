// Package gateway is the sole holder of the Razorpay credentials. Everything
// that touches the secret key lives here: order creation, signature
// verification and the credential probe used by the detailed health check.
package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway abstracts the payment gateway so handlers and tests do not depend
// on the live Razorpay client.
type Gateway interface {
	// CreateOrder creates a gateway order for amountPaise minor units and
	// returns the raw gateway order object (always contains "id").
	CreateOrder(amountPaise int64, receipt string, notes map[string]interface{}) (map[string]interface{}, error)
	// VerifySignature reports whether signature is a valid HMAC over the
	// orderID|paymentID pair.
	VerifySignature(orderID, paymentID, signature string) bool
	// KeyID returns the publishable key id (safe to hand to browsers).
	KeyID() string
	// CheckCredentials performs an authenticated, side-effect-free gateway
	// round trip. Used by health checks instead of creating a real order.
	CheckCredentials() error
}

var active Gateway

// Init wires up the live Razorpay gateway. Must be called once at startup,
// after credentials have been validated.
func Init(keyID, keySecret string) {
	active = &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		client:    razorpay.NewClient(keyID, keySecret),
	}
}

// Active returns the configured gateway
func Active() Gateway {
	return active
}

// SetActive swaps the gateway instance, used by tests
func SetActive(g Gateway) {
	active = g
}

type razorpayGateway struct {
	keyID     string
	keySecret string
	client    *razorpay.Client
}

func (g *razorpayGateway) CreateOrder(amountPaise int64, receipt string, notes map[string]interface{}) (map[string]interface{}, error) {
	orderData := map[string]interface{}{
		"amount":          amountPaise,
		"currency":        "INR",
		"receipt":         receipt,
		"payment_capture": 1,
	}
	if len(notes) > 0 {
		orderData["notes"] = notes
	}

	order, err := g.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("razorpay order create failed: %v", err)
	}
	if _, ok := order["id"]; !ok {
		return nil, fmt.Errorf("razorpay order response missing id")
	}
	return order, nil
}

func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(g.keySecret, orderID, paymentID, signature)
}

func (g *razorpayGateway) KeyID() string {
	return g.keyID
}

// CheckCredentials lists at most one order. A 401 from the gateway means the
// key pair is bad; anything 2xx proves the credentials without creating a
// billable object.
func (g *razorpayGateway) CheckCredentials() error {
	if _, err := g.client.Order.All(map[string]interface{}{"count": 1}, nil); err != nil {
		return fmt.Errorf("razorpay credential check failed: %v", err)
	}
	return nil
}

// ComputeSignature returns the hex HMAC-SHA256 of "orderID|paymentID" keyed
// with the gateway secret. This is the signature Razorpay attaches to a
// successful checkout.
func ComputeSignature(secret, orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature recomputes the expected signature and compares it in
// constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := ComputeSignature(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
