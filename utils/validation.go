package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	nameRegex  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z .'-]{1,79}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{9,14}$`)
	// Razorpay id formats, used as format guards only (the ids are opaque)
	orderIDRegex   = regexp.MustCompile(`^order_[A-Za-z0-9]+$`)
	paymentIDRegex = regexp.MustCompile(`^pay_[A-Za-z0-9]+$`)
)

// SanitizeString escapes HTML and strips tags from free-text input
func SanitizeString(input string) string {
	sanitized := html.EscapeString(strings.TrimSpace(input))
	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	return htmlTagRegex.ReplaceAllString(sanitized, "")
}

// ValidatePlayerName checks a registrant's name
func ValidatePlayerName(name string) (bool, string) {
	name = strings.TrimSpace(name)
	if len(name) < 2 {
		return false, "Name must be at least 2 characters long"
	}
	if len(name) > 80 {
		return false, "Name must not exceed 80 characters"
	}
	if !nameRegex.MatchString(name) {
		return false, "Name contains invalid characters"
	}
	return true, ""
}

// ValidateEmail checks email format
func ValidateEmail(email string) (bool, string) {
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidatePhone checks phone number format (E.164-ish, 10-15 digits)
func ValidatePhone(phone string) (bool, string) {
	if !phoneRegex.MatchString(phone) {
		return false, "Invalid phone number format"
	}
	return true, ""
}

// ValidateOrderID checks the Razorpay order id format
func ValidateOrderID(orderID string) (bool, string) {
	if !orderIDRegex.MatchString(orderID) {
		return false, "Invalid order id format"
	}
	return true, ""
}

// ValidatePaymentID checks the Razorpay payment id format
func ValidatePaymentID(paymentID string) (bool, string) {
	if !paymentIDRegex.MatchString(paymentID) {
		return false, "Invalid payment id format"
	}
	return true, ""
}
