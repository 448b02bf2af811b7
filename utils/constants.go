package utils

// Application constants
const (
	// Application name
	AppName = "SSPL T10 Registration"

	// Version reported by the health endpoints
	Version = "1.0.0"

	// Default backend port
	DefaultPort = "3001"

	// Default proxy port
	DefaultProxyPort = "8080"

	// Currency used for all gateway orders
	Currency = "INR"

	// Registration fee in whole rupees
	DefaultRegistrationFee = 699

	// Payment status values persisted on registrations
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
	PaymentStatusCancelled = "cancelled"

	// Failure code surfaced when the payer dismisses the checkout UI
	PaymentCancelledCode = "PAYMENT_CANCELLED"
)
