package proxy

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func writeDist(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>spa</html>"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0644))
	return dir
}

func TestForwardStripsHopByHopHeaders(t *testing.T) {
	var got http.Header
	var gotHost string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotHost = r.Host
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	router := NewRouter(Config{BackendURL: backend.URL, DistDir: writeDist(t)})

	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/create-order", bytes.NewBufferString(`{"amount":699}`))
	req.Host = "edge.example.com"
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	// Host is recomputed for the backend, never copied through
	assert.NotEqual(t, "edge.example.com", gotHost)
	assert.Empty(t, got.Get("Host"))
	assert.Equal(t, "Bearer token", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestForwardDefaultsContentType(t *testing.T) {
	var got http.Header
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	router := NewRouter(Config{BackendURL: backend.URL, DistDir: writeDist(t)})

	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/create-order", bytes.NewBufferString(`{"amount":699}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "application/json", got.Get("Content-Type"))
}

func TestForwardRelaysStatusAndBody(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Invalid signature"}`))
	}))
	defer backend.Close()

	router := NewRouter(Config{BackendURL: backend.URL, DistDir: writeDist(t)})

	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/verify-payment", bytes.NewBufferString(`{}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid signature"}`, w.Body.String())
}

func TestForwardPreservesQueryString(t *testing.T) {
	var gotQuery string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	router := NewRouter(Config{BackendURL: backend.URL, DistDir: writeDist(t)})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/registrations?page=2&search=kohli", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "page=2&search=kohli", gotQuery)
}

func TestBackendUnreachableIsOpaque500(t *testing.T) {
	// A port nothing listens on
	router := NewRouter(Config{BackendURL: "http://127.0.0.1:1", DistDir: writeDist(t)})

	req := httptest.NewRequest(http.MethodPost, "/api/razorpay/create-order", bytes.NewBufferString(`{"amount":699}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "payment service is currently unavailable", body.Error)
	// No internal detail leaks
	assert.NotContains(t, w.Body.String(), "127.0.0.1")
}

func TestPreflightAnsweredAtEdge(t *testing.T) {
	// The backend must never see the preflight
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("preflight reached backend")
	}))
	defer backend.Close()

	router := NewRouter(Config{BackendURL: backend.URL, DistDir: writeDist(t)})

	req := httptest.NewRequest(http.MethodOptions, "/api/razorpay/create-order", nil)
	req.Header.Set("Origin", "https://sspl-t10.example.com")
	req.Header.Set("Access-Control-Request-Headers", "content-type, x-idempotency-key")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "content-type, x-idempotency-key", w.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "86400", w.Header().Get("Access-Control-Max-Age"))
}

func TestSPAFallbackServesIndex(t *testing.T) {
	router := NewRouter(Config{BackendURL: "http://127.0.0.1:1", DistDir: writeDist(t)})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/register/step-2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "spa")
}

func TestSPAServesRealFiles(t *testing.T) {
	router := NewRouter(Config{BackendURL: "http://127.0.0.1:1", DistDir: writeDist(t)})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app.js", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "console.log")
}

func TestUnmatchedNonGetIs404(t *testing.T) {
	router := NewRouter(Config{BackendURL: "http://127.0.0.1:1", DistDir: writeDist(t)})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/register/step-2", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
