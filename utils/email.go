package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendRegistrationConfirmation sends the post-payment confirmation email to a
// registered player. Best effort: callers log failures, the registration is
// already committed.
func SendRegistrationConfirmation(to, playerName, orderID, paymentID string, amount float64) error {
	config := emailConfigFromEnv()
	if config.Host == "" {
		return fmt.Errorf("SMTP not configured")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "SSPL T10 Registration Confirmed")

	body := fmt.Sprintf(`
		<h2>Welcome to SSPL T10, %s!</h2>
		<p>Your player registration is confirmed. Keep this email for your records.</p>
		<ul>
			<li>Order ID: %s</li>
			<li>Payment ID: %s</li>
			<li>Amount Paid: ₹%.2f</li>
		</ul>
		<p>You can download your payment receipt from the registration page at any time.</p>
		<p>See you on the pitch!</p>
	`, playerName, orderID, paymentID, amount)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}
