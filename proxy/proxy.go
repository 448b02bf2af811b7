// Package proxy implements the edge server: it serves the built SPA and
// forwards /api/* to the payment backend so the browser sees a single origin.
package proxy

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sspl-t10/registration/utils"
)

// Unavailable is the only message the browser sees when the backend cannot be
// reached. Internal detail stays in the logs.
const unavailableMessage = "payment service is currently unavailable"

// Hop-by-hop and recomputed headers that must not be copied through
var skipHeaders = map[string]bool{
	"Host":           true,
	"Content-Length": true,
	"Connection":     true,
}

// Config holds the proxy settings
type Config struct {
	// BackendURL is the payment backend base, e.g. http://localhost:3001
	BackendURL string
	// DistDir is the built SPA directory
	DistDir string
	// Client is the HTTP client used for forwarding; a default with a 30s
	// timeout is used when nil
	Client *http.Client
}

// NewRouter builds the proxy router. API routes are registered before the SPA
// fallback so client-side routes can never shadow them.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.Client == nil {
		cfg.Client = &http.Client{Timeout: 30 * time.Second}
	}

	router := gin.New()
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "edge-proxy"})
	})

	api := router.Group("/api")
	{
		api.OPTIONS("/*path", preflight)
		handler := func(c *gin.Context) { forward(c, cfg) }
		for _, method := range []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodHead,
		} {
			api.Handle(method, "/*path", handler)
		}
	}

	// SPA fallback: unmatched GETs return index.html so client-side routing
	// keeps working after a reload; everything else is a JSON 404.
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		serveSPA(c, cfg.DistDir)
	})

	return router
}

// preflight answers CORS preflight directly at the edge, echoing the
// requested headers and caching the result for a day.
func preflight(c *gin.Context) {
	headers := c.GetHeader("Access-Control-Request-Headers")
	if headers == "" {
		headers = "Content-Type, Authorization, X-Idempotency-Key"
	}
	c.Header("Access-Control-Allow-Origin", c.GetHeader("Origin"))
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", headers)
	c.Header("Access-Control-Allow-Credentials", "true")
	c.Header("Access-Control-Max-Age", "86400")
	c.Status(http.StatusNoContent)
}

// forward relays the request to the backend, preserving method, body and
// headers minus the hop-by-hop ones.
func forward(c *gin.Context, cfg Config) {
	target := strings.TrimSuffix(cfg.BackendURL, "/") + c.Request.URL.Path
	if c.Request.URL.RawQuery != "" {
		target += "?" + c.Request.URL.RawQuery
	}

	var body io.Reader
	hasBody := c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead
	if hasBody && c.Request.Body != nil {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			utils.LogError("Failed to read request body for %s: %v", target, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": unavailableMessage})
			return
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), c.Request.Method, target, body)
	if err != nil {
		utils.LogError("Failed to build upstream request for %s: %v", target, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": unavailableMessage})
		return
	}

	for name, values := range c.Request.Header {
		if skipHeaders[http.CanonicalHeaderKey(name)] {
			continue
		}
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}
	if hasBody && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := cfg.Client.Do(req)
	if err != nil {
		utils.LogError("Backend unreachable for %s: %v", target, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": unavailableMessage})
		return
	}
	defer resp.Body.Close()

	for name, values := range resp.Header {
		for _, value := range values {
			c.Writer.Header().Add(name, value)
		}
	}
	c.Status(resp.StatusCode)
	if _, err := io.Copy(c.Writer, resp.Body); err != nil {
		utils.LogError("Failed to relay response body for %s: %v", target, err)
	}
}

// serveSPA serves a real file when one exists under the dist dir, otherwise
// index.html.
func serveSPA(c *gin.Context, distDir string) {
	requested := filepath.Join(distDir, filepath.Clean("/"+c.Request.URL.Path))
	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		c.File(requested)
		return
	}

	index := filepath.Join(distDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		utils.LogError("SPA index not found at %s", index)
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	c.File(index)
}
