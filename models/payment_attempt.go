package models

import (
	"time"
)

// Payment attempt statuses
const (
	AttemptStatusPending   = "pending"
	AttemptStatusVerified  = "verified"
	AttemptStatusFailed    = "failed"
	AttemptStatusCancelled = "cancelled"
)

// PaymentAttempt tracks one gateway order from creation through its terminal
// state. A registration row may only be written against a verified attempt.
type PaymentAttempt struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	RazorpayOrderID   string    `gorm:"uniqueIndex" json:"razorpay_order_id"`
	RazorpayPaymentID string    `json:"razorpay_payment_id"`
	Receipt           string    `json:"receipt"`
	AmountPaise       int64     `json:"amount_paise"`
	Status            string    `json:"status"` // pending, verified, failed, cancelled
	IdempotencyKey    string    `gorm:"index" json:"idempotency_key,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
