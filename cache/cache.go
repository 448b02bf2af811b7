// Package cache wraps the optional Redis connection. The payment flow uses it
// to replay create-order responses for duplicate idempotency keys; when Redis
// is not configured the flow still works, minus replay protection across
// processes.
package cache

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sspl-t10/registration/utils"
)

var (
	client *redis.Client
	ctx    = context.Background()
)

// Setup initializes the Redis connection if REDIS_HOST is set. Connection
// failure is a warning, not a fatal error.
func Setup() {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		utils.LogInfo("Redis not configured, idempotency replay disabled")
		return
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if _, err := client.Ping(ctx).Result(); err != nil {
		utils.LogError("Could not connect to Redis at %s:%s: %v", host, port, err)
		client = nil
		return
	}
	utils.LogInfo("Connected to Redis at %s:%s", host, port)
}

// Enabled reports whether a Redis connection is available
func Enabled() bool {
	return client != nil
}

// Set stores a value with the given expiration
func Set(key string, value interface{}, expiration time.Duration) error {
	if client == nil {
		return fmt.Errorf("cache not configured")
	}
	return client.Set(ctx, key, value, expiration).Err()
}

// SetNX stores a value only if the key does not exist yet. Returns true when
// this call claimed the key.
func SetNX(key string, value interface{}, expiration time.Duration) (bool, error) {
	if client == nil {
		return false, fmt.Errorf("cache not configured")
	}
	return client.SetNX(ctx, key, value, expiration).Result()
}

// Get retrieves a value by key
func Get(key string) (string, error) {
	if client == nil {
		return "", fmt.Errorf("cache not configured")
	}
	return client.Get(ctx, key).Result()
}

// Delete removes a key
func Delete(key string) error {
	if client == nil {
		return fmt.Errorf("cache not configured")
	}
	return client.Del(ctx, key).Err()
}

// Ping checks connectivity for health reporting
func Ping() error {
	if client == nil {
		return fmt.Errorf("cache not configured")
	}
	return client.Ping(ctx).Err()
}
