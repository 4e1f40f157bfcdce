package handlers

import (
	"net/http"
	"time"

	"github.com/formywor/join-gateway/config"
	"github.com/formywor/join-gateway/utils"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// HealthHandler handles health-related HTTP requests
type HealthHandler struct {
	upstream config.UpstreamConfig
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(upstream config.UpstreamConfig) *HealthHandler {
	return &HealthHandler{upstream: upstream}
}

// HandleHealth handles GET /healthz.
// Basic liveness check - always returns 200 if the service is running.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleReadiness handles GET /readyz. The service is ready when at least
// one upstream candidate can be built; upstream reachability itself is
// probed per request, not health-checked here.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	if !h.upstream.Configured() {
		_ = utils.WriteServiceUnavailable(w, "no upstream targets configured")
		return
	}
	_ = utils.WriteOK(w, HealthResponse{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
