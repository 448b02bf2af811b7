package models

import (
	"time"
)

// PlayerRegistration is the durable record written once per successful
// payment. It is never mutated by the payment flow after creation;
// administrative edits happen through the admin surface.
type PlayerRegistration struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	PlayerName        string    `gorm:"not null" json:"player_name"`
	Email             string    `gorm:"not null" json:"email"`
	Phone             string    `gorm:"not null" json:"phone"`
	DateOfBirth       string    `json:"date_of_birth"`
	PlayingRole       string    `json:"playing_role"` // batsman, bowler, all-rounder, wicket-keeper
	City              string    `json:"city"`
	RazorpayOrderID   string    `gorm:"uniqueIndex;not null" json:"razorpay_order_id"`
	RazorpayPaymentID string    `gorm:"not null" json:"razorpay_payment_id"`
	PaymentStatus     string    `gorm:"not null" json:"payment_status"` // always "completed" on insert
	PaymentAmount     float64   `json:"payment_amount"`                 // whole rupees
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
