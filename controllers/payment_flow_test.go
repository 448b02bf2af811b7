package controllers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sspl-t10/registration/client"
	"github.com/sspl-t10/registration/gateway"
)

// Drives the backend through the client library the way the checkout flow
// does: create order, simulate the gateway's success callback, verify.
func TestEndToEndHappyPath(t *testing.T) {
	stub := &stubGateway{secret: "test-secret", keyID: "rzp_test_abc"}
	router := setupPaymentRouter(t, stub)
	server := httptest.NewServer(router)
	defer server.Close()

	ctx := context.Background()
	c := client.New(server.URL + "/api")

	order, err := c.CreateOrder(ctx, 699)
	require.NoError(t, err)
	assert.Regexp(t, `^order_`, order.ID)
	assert.Equal(t, int64(69900), order.Amount)

	// The gateway's checkout UI would hand back this triple on success
	signature := gateway.ComputeSignature("test-secret", order.ID, "pay_ABC")

	verified, err := c.VerifyPayment(ctx, "pay_ABC", order.ID, signature)
	require.NoError(t, err)
	assert.True(t, verified)

	key, err := c.PublicKeyID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "rzp_test_abc", key)
}

func TestEndToEndForgedSignatureRejected(t *testing.T) {
	stub := &stubGateway{secret: "test-secret"}
	router := setupPaymentRouter(t, stub)
	server := httptest.NewServer(router)
	defer server.Close()

	ctx := context.Background()
	c := client.New(server.URL + "/api")

	order, err := c.CreateOrder(ctx, 699)
	require.NoError(t, err)

	verified, err := c.VerifyPayment(ctx, "pay_ABC", order.ID, "forged-signature")
	require.Error(t, err)
	assert.False(t, verified)
	assert.Contains(t, err.Error(), "Invalid signature")
}
