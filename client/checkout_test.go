package client

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestControllerClosesPriorSession(t *testing.T) {
	controller := NewController()

	first := controller.Begin("order_ONE", CheckoutCallbacks{})
	require.NoError(t, first.Open())
	require.Equal(t, StateCheckoutOpen, first.State())

	second := controller.Begin("order_TWO", CheckoutCallbacks{})

	// The first session is closed before the second exists: exactly one
	// open checkout per controller, never an orphaned instance.
	assert.True(t, first.Closed())
	assert.False(t, second.Closed())
	assert.Same(t, second, controller.Current())
	assert.Equal(t, StateOrderCreated, second.State())
}

func TestSessionStateMachineHappyPath(t *testing.T) {
	var got PaymentResult
	controller := NewController()
	session := controller.Begin("order_ABC", CheckoutCallbacks{
		OnSuccess: func(r PaymentResult) { got = r },
	})

	require.Equal(t, StateOrderCreated, session.State())
	require.NoError(t, session.Open())
	require.Equal(t, StateCheckoutOpen, session.State())

	session.HandleSuccess(PaymentResult{
		PaymentID: "pay_ABC",
		OrderID:   "order_ABC",
		Signature: "deadbeef",
	})

	assert.Equal(t, StateVerified, session.State())
	assert.Equal(t, "pay_ABC", got.PaymentID)
	assert.Equal(t, "order_ABC", got.OrderID)
}

func TestSessionCannotOpenTwice(t *testing.T) {
	session := NewController().Begin("order_ABC", CheckoutCallbacks{})
	require.NoError(t, session.Open())

	assert.Error(t, session.Open())
}

func TestDismissAlwaysReachesFailureCallback(t *testing.T) {
	var order []string
	session := NewController().Begin("order_ABC", CheckoutCallbacks{
		OnFailure: func(f PaymentFailure) {
			order = append(order, "failure:"+f.Code)
		},
		OnDismiss: func() {
			order = append(order, "dismiss")
		},
	})
	require.NoError(t, session.Open())

	session.Dismiss()

	assert.Equal(t, StateCancelled, session.State())
	require.Equal(t, []string{"failure:PAYMENT_CANCELLED", "dismiss"}, order)
}

func TestDismissWithoutDismissCallbackStillFails(t *testing.T) {
	var failure *PaymentFailure
	session := NewController().Begin("order_ABC", CheckoutCallbacks{
		OnFailure: func(f PaymentFailure) { failure = &f },
	})
	require.NoError(t, session.Open())

	session.Dismiss()

	require.NotNil(t, failure)
	assert.Equal(t, PaymentCancelledCode, failure.Code)
	assert.True(t, failure.Cancelled())
}

func TestTerminalStatesAreExclusive(t *testing.T) {
	successes, failures := 0, 0
	session := NewController().Begin("order_ABC", CheckoutCallbacks{
		OnSuccess: func(PaymentResult) { successes++ },
		OnFailure: func(PaymentFailure) { failures++ },
	})
	require.NoError(t, session.Open())

	session.HandleFailure("card declined")
	session.HandleSuccess(PaymentResult{PaymentID: "pay_ABC"})
	session.Dismiss()

	assert.Equal(t, StateFailed, session.State())
	assert.Equal(t, 0, successes)
	assert.Equal(t, 1, failures)
}

func TestClosedSessionIgnoresEvents(t *testing.T) {
	calls := 0
	session := NewController().Begin("order_ABC", CheckoutCallbacks{
		OnFailure: func(PaymentFailure) { calls++ },
	})
	session.Close()

	session.HandleFailure("too late")
	session.Dismiss()

	assert.Equal(t, 0, calls)
	assert.Error(t, session.Open())
}

func TestNormalizeFailureShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		want    PaymentFailure
	}{
		{
			name: "nested error object",
			payload: map[string]interface{}{
				"error": map[string]interface{}{
					"code":        "BAD_REQUEST_ERROR",
					"description": "Payment failed",
				},
			},
			want: PaymentFailure{Kind: FailureStructured, Code: "BAD_REQUEST_ERROR", Description: "Payment failed"},
		},
		{
			name: "flat error object",
			payload: map[string]interface{}{
				"code":        "GATEWAY_ERROR",
				"description": "upstream timeout",
			},
			want: PaymentFailure{Kind: FailureStructured, Code: "GATEWAY_ERROR", Description: "upstream timeout"},
		},
		{
			name:    "plain string",
			payload: "network error",
			want:    PaymentFailure{Kind: FailureRaw, Raw: "network error"},
		},
		{
			name:    "go error",
			payload: fmt.Errorf("connection reset"),
			want:    PaymentFailure{Kind: FailureRaw, Raw: "connection reset"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFailure(tt.payload))
		})
	}
}
