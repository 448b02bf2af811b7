package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sspl-t10/registration/cache"
	"github.com/sspl-t10/registration/config"
	"github.com/sspl-t10/registration/gateway"
	"github.com/sspl-t10/registration/utils"
)

var startTime = time.Now()

// GET /health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"uptime":  time.Since(startTime).Seconds(),
		"version": utils.Version,
		"service": "payment-backend",
	})
}

type serviceStatus struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// GET /health/detailed
//
// Probes the gateway credentials, the database and Redis. The gateway probe
// is a list call, never an order creation, so repeated health checks cost
// nothing upstream. Aggregate status maps ok/degraded/error to 200/206/503.
func HealthDetailed(c *gin.Context) {
	started := time.Now()
	services := gin.H{}
	status := "ok"
	degrade := func() {
		if status == "ok" {
			status = "degraded"
		}
	}

	// Gateway credentials are load-bearing: without them no payment works.
	gw := probe(func() error { return gateway.Active().CheckCredentials() })
	if gw.Status != "ok" {
		status = "error"
	}
	services["razorpay"] = gw

	if config.DB != nil {
		db := probe(func() error {
			return config.DB.Exec("SELECT 1").Error
		})
		if db.Status != "ok" {
			degrade()
		}
		services["database"] = db
	}

	if cache.Enabled() {
		redis := probe(func() error { return cache.Ping() })
		if redis.Status != "ok" {
			degrade()
		}
		services["redis"] = redis
	}

	httpStatus := http.StatusOK
	switch status {
	case "degraded":
		httpStatus = http.StatusPartialContent
	case "error":
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":       status,
		"uptime":       time.Since(startTime).Seconds(),
		"version":      utils.Version,
		"services":     services,
		"responseTime": time.Since(started).Milliseconds(),
	})
}

func probe(check func() error) serviceStatus {
	started := time.Now()
	err := check()
	s := serviceStatus{Status: "ok", LatencyMS: time.Since(started).Milliseconds()}
	if err != nil {
		s.Status = "error"
		s.Error = err.Error()
		utils.LogError("Health probe failed: %v", err)
	}
	return s
}
