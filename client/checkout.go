package client

import (
	"fmt"
	"sync"
)

// CheckoutState tracks one checkout attempt:
// idle -> order_created -> checkout_open -> {verified | failed | cancelled}.
// Terminal states are mutually exclusive.
type CheckoutState string

const (
	StateIdle         CheckoutState = "idle"
	StateOrderCreated CheckoutState = "order_created"
	StateCheckoutOpen CheckoutState = "checkout_open"
	StateVerified     CheckoutState = "verified"
	StateFailed       CheckoutState = "failed"
	StateCancelled    CheckoutState = "cancelled"
)

// PaymentCancelledCode is the failure code synthesized when the payer
// dismisses the checkout without paying.
const PaymentCancelledCode = "PAYMENT_CANCELLED"

// FailureKind discriminates the shapes checkout failure payloads arrive in
type FailureKind string

const (
	// FailureStructured carries a code and description from the gateway
	FailureStructured FailureKind = "structured"
	// FailureRaw carries only an opaque message
	FailureRaw FailureKind = "raw"
)

// PaymentFailure is the single failure shape callers handle. Gateway
// callback payloads vary; they are resolved into this tagged form at the
// boundary rather than shape-sniffed downstream.
type PaymentFailure struct {
	Kind        FailureKind
	Code        string
	Description string
	Raw         string
}

// Error implements the error interface
func (f PaymentFailure) Error() string {
	if f.Kind == FailureStructured {
		return fmt.Sprintf("payment failed [%s]: %s", f.Code, f.Description)
	}
	return fmt.Sprintf("payment failed: %s", f.Raw)
}

// Cancelled reports whether the failure represents a payer-initiated
// cancellation rather than a broken payment.
func (f PaymentFailure) Cancelled() bool {
	return f.Code == PaymentCancelledCode
}

// NormalizeFailure resolves the varying payloads the gateway hands to the
// failure callback into a PaymentFailure.
func NormalizeFailure(payload interface{}) PaymentFailure {
	switch v := payload.(type) {
	case PaymentFailure:
		return v
	case map[string]interface{}:
		// Newer payloads nest under "error", older ones are flat
		fields := v
		if inner, ok := v["error"].(map[string]interface{}); ok {
			fields = inner
		}
		code, _ := fields["code"].(string)
		description, _ := fields["description"].(string)
		if code != "" || description != "" {
			return PaymentFailure{Kind: FailureStructured, Code: code, Description: description}
		}
		return PaymentFailure{Kind: FailureRaw, Raw: fmt.Sprintf("%v", v)}
	case string:
		return PaymentFailure{Kind: FailureRaw, Raw: v}
	case error:
		return PaymentFailure{Kind: FailureRaw, Raw: v.Error()}
	default:
		return PaymentFailure{Kind: FailureRaw, Raw: fmt.Sprintf("%v", v)}
	}
}

// CheckoutCallbacks are invoked on the session's terminal transitions.
// "User cancelled" and "payment failed" are different outcomes a caller may
// handle differently, but both must unblock any waiting UI, so dismissal
// always reaches OnFailure (with PaymentCancelledCode) and additionally
// OnDismiss when supplied.
type CheckoutCallbacks struct {
	OnSuccess func(PaymentResult)
	OnFailure func(PaymentFailure)
	OnDismiss func()
}

// CheckoutSession is one checkout attempt with an explicit close contract.
// Sessions are created by a Controller, which guarantees at most one open
// session at a time.
type CheckoutSession struct {
	mu        sync.Mutex
	state     CheckoutState
	orderID   string
	callbacks CheckoutCallbacks
	closed    bool
}

// State returns the session's current state
func (s *CheckoutSession) State() CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OrderID returns the gateway order this session pays for
func (s *CheckoutSession) OrderID() string {
	return s.orderID
}

// Open transitions the session to checkout_open
func (s *CheckoutSession) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("checkout session is closed")
	}
	if s.state != StateOrderCreated {
		return fmt.Errorf("cannot open checkout from state %s", s.state)
	}
	s.state = StateCheckoutOpen
	return nil
}

// HandleSuccess records a successful payment and forwards the result triple
func (s *CheckoutSession) HandleSuccess(result PaymentResult) {
	s.mu.Lock()
	if s.closed || s.isTerminal() {
		s.mu.Unlock()
		return
	}
	s.state = StateVerified
	cb := s.callbacks.OnSuccess
	s.mu.Unlock()

	if cb != nil {
		cb(result)
	}
}

// HandleFailure records a failed payment, normalizing the payload shape at
// the boundary.
func (s *CheckoutSession) HandleFailure(payload interface{}) {
	failure := NormalizeFailure(payload)

	s.mu.Lock()
	if s.closed || s.isTerminal() {
		s.mu.Unlock()
		return
	}
	s.state = StateFailed
	cb := s.callbacks.OnFailure
	s.mu.Unlock()

	if cb != nil {
		cb(failure)
	}
}

// Dismiss records the payer closing the checkout without paying. The
// synthesized cancellation always reaches OnFailure; OnDismiss follows when
// supplied. Never neither.
func (s *CheckoutSession) Dismiss() {
	s.mu.Lock()
	if s.closed || s.isTerminal() {
		s.mu.Unlock()
		return
	}
	s.state = StateCancelled
	onFailure := s.callbacks.OnFailure
	onDismiss := s.callbacks.OnDismiss
	s.mu.Unlock()

	if onFailure != nil {
		onFailure(PaymentFailure{
			Kind:        FailureStructured,
			Code:        PaymentCancelledCode,
			Description: "Payment was cancelled by the user",
		})
	}
	if onDismiss != nil {
		onDismiss()
	}
}

// Close disposes the session. A closed session ignores further events.
func (s *CheckoutSession) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if !s.isTerminal() {
		s.state = StateCancelled
	}
}

// Closed reports whether Close has been called
func (s *CheckoutSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *CheckoutSession) isTerminal() bool {
	return s.state == StateVerified || s.state == StateFailed || s.state == StateCancelled
}

// Controller owns the single in-flight checkout session. Beginning a new
// session always closes the previous one first, so two rapid payment
// attempts can never leave an orphaned open checkout.
type Controller struct {
	mu      sync.Mutex
	current *CheckoutSession
}

// NewController creates a checkout controller
func NewController() *Controller {
	return &Controller{}
}

// Begin closes any prior session and returns a new one in order_created
// state for the given gateway order.
func (c *Controller) Begin(orderID string, callbacks CheckoutCallbacks) *CheckoutSession {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil {
		c.current.Close()
	}
	c.current = &CheckoutSession{
		state:     StateOrderCreated,
		orderID:   orderID,
		callbacks: callbacks,
	}
	return c.current
}

// Current returns the active session, or nil
func (c *Controller) Current() *CheckoutSession {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}
