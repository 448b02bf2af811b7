package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlayerName(t *testing.T) {
	for _, name := range []string{"Virat Kohli", "M. S. Dhoni", "O'Brien", "Jo"} {
		valid, msg := ValidatePlayerName(name)
		assert.True(t, valid, "%s: %s", name, msg)
	}
	for _, name := range []string{"", "A", "<script>alert(1)</script>", "name@with#symbols"} {
		valid, _ := ValidatePlayerName(name)
		assert.False(t, valid, "expected %q to be rejected", name)
	}
}

func TestValidatePhone(t *testing.T) {
	for _, phone := range []string{"+919876543210", "9876543210"} {
		valid, msg := ValidatePhone(phone)
		assert.True(t, valid, "%s: %s", phone, msg)
	}
	for _, phone := range []string{"", "12345", "not-a-phone", "0123456789"} {
		valid, _ := ValidatePhone(phone)
		assert.False(t, valid, "expected %q to be rejected", phone)
	}
}

func TestValidateGatewayIDFormats(t *testing.T) {
	valid, _ := ValidateOrderID("order_Nf29Xp1q")
	assert.True(t, valid)
	valid, _ = ValidateOrderID("pay_Nf29Xp1q")
	assert.False(t, valid)

	valid, _ = ValidatePaymentID("pay_Nf29Xp1q")
	assert.True(t, valid)
	valid, _ = ValidatePaymentID("order_Nf29Xp1q")
	assert.False(t, valid)
	valid, _ = ValidatePaymentID("pay_")
	assert.False(t, valid)
}

func TestSanitizeStringStripsMarkup(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.NotContains(t, SanitizeString("<b>bold</b>"), "<b>")
}
