package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/formywor/join-gateway/app"
	"github.com/formywor/join-gateway/config"
)

func newTestRouter(t *testing.T, upstream config.UpstreamConfig) http.Handler {
	t.Helper()
	if upstream.Timeout == 0 {
		upstream.Timeout = time.Second
	}
	cfg := &config.Config{
		Upstream: upstream,
		CORS:     config.CORSConfig{AllowOrigin: "*"},
		Observability: config.ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "json",
		},
	}
	return SetupRoutes(app.NewDependencies(cfg, zap.NewNop()))
}

func TestRoutes_MethodNotAllowedOnJoin(t *testing.T) {
	router := newTestRouter(t, config.UpstreamConfig{Targets: []string{"https://a.test"}})

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, "/api/v1/join", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "method %s", method)
		assert.Contains(t, rec.Body.String(), "method_not_allowed")
	}
}

func TestRoutes_PreflightHandledBeforeJoin(t *testing.T) {
	router := newTestRouter(t, config.UpstreamConfig{Targets: []string{"https://a.test"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/join", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRoutes_NotFound(t *testing.T) {
	router := newTestRouter(t, config.UpstreamConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not_found")
}

func TestRoutes_Health(t *testing.T) {
	router := newTestRouter(t, config.UpstreamConfig{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoutes_JoinEndToEnd(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"room":"x"}`))
	}))
	t.Cleanup(upstream.Close)

	router := newTestRouter(t, config.UpstreamConfig{
		Targets:     []string{upstream.URL},
		PostHeaders: map[string]string{"Content-Type": "application/json"},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/join", strings.NewReader(`{"code":"1234","name":"alice"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"joined":true`)
	assert.Contains(t, rec.Body.String(), `"via":"POST `+upstream.URL+`"`)
	assert.Contains(t, rec.Body.String(), `"room":"x"`)
}

func TestRoutes_MetricsGatedByConfig(t *testing.T) {
	cfg := &config.Config{
		Upstream: config.UpstreamConfig{Timeout: time.Second},
		CORS:     config.CORSConfig{AllowOrigin: "*"},
		Observability: config.ObservabilityConfig{
			LogLevel:       "info",
			MetricsEnabled: true,
		},
	}
	router := SetupRoutes(app.NewDependencies(cfg, zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	cfg.Observability.MetricsEnabled = false
	router = SetupRoutes(app.NewDependencies(cfg, zap.NewNop()))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
