package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	Port           string
	Env            string
	RazorpayKey    string
	RazorpaySecret string
	RedisHost      string
	RedisPort      string
}

// LoadConfig loads configuration from environment variables. A .env file is
// optional; real deployments inject the environment directly.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		Port:           os.Getenv("PORT"),
		Env:            os.Getenv("ENV"),
		RazorpayKey:    os.Getenv("RAZORPAY_KEY"),
		RazorpaySecret: os.Getenv("RAZORPAY_SECRET"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPort:      os.Getenv("REDIS_PORT"),
	}

	return config, nil
}

// ValidateGatewayCredentials enforces the fail-fast startup contract: the
// backend refuses to start without the Razorpay key pair. Missing credentials
// are a deployment error, not a runtime condition to limp through.
func (c *Config) ValidateGatewayCredentials() error {
	if c.RazorpayKey == "" || c.RazorpaySecret == "" {
		return fmt.Errorf("RAZORPAY_KEY and RAZORPAY_SECRET must be set")
	}
	return nil
}
