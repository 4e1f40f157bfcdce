package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/formywor/join-gateway/metrics"
	"github.com/formywor/join-gateway/services/relay"
	"github.com/formywor/join-gateway/utils"
)

// JoinRequest represents an inbound join request
type JoinRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// JoinSuccessResponse is the caller-facing shape when a candidate succeeded
type JoinSuccessResponse struct {
	Joined         bool        `json:"joined"`
	UpstreamStatus int         `json:"upstreamStatus"`
	Via            string      `json:"via"`
	Data           interface{} `json:"data"`
}

// JoinFailureResponse is the caller-facing shape when every candidate failed
type JoinFailureResponse struct {
	Joined       bool        `json:"joined"`
	Error        string      `json:"error"`
	UpstreamData interface{} `json:"upstreamData"`
}

// JoinService defines the relay operation the handler depends on
type JoinService interface {
	Join(ctx context.Context, code, name string) relay.FallbackResult
}

// JoinHandler handles inbound join requests
type JoinHandler struct {
	service JoinService
	logger  *zap.Logger
}

// NewJoinHandler creates a new JoinHandler
func NewJoinHandler(service JoinService, logger *zap.Logger) *JoinHandler {
	return &JoinHandler{
		service: service,
		logger:  logger,
	}
}

// HandleJoin handles POST /api/v1/join. Input errors short-circuit before
// any upstream candidate is built; no network call happens for them.
func (h *JoinHandler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := chimw.GetReqID(ctx)

	var req JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("failed to parse request body",
			zap.String("request_id", requestID),
			zap.Error(err))
		metrics.JoinRequestsTotal.WithLabelValues("invalid").Inc()
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(&req); err != nil {
		h.logger.Warn("request validation failed",
			zap.String("request_id", requestID),
			zap.Error(err))
		metrics.JoinRequestsTotal.WithLabelValues("invalid").Inc()
		var vErr *utils.ValidationError
		if errors.As(err, &vErr) {
			_ = utils.WriteBadRequest(w, vErr.Message, vErr.Details())
			return
		}
		_ = utils.WriteBadRequest(w, err.Error(), nil)
		return
	}

	result := h.service.Join(ctx, req.Code, req.Name)
	writeJoinResult(w, result)

	if result.Joined {
		metrics.JoinRequestsTotal.WithLabelValues("joined").Inc()
		h.logger.Info("join relayed",
			zap.String("request_id", requestID),
			zap.String("via", result.Via),
			zap.Int("upstream_status", result.Status))
		return
	}
	metrics.JoinRequestsTotal.WithLabelValues("failed").Inc()
	h.logger.Warn("join failed",
		zap.String("request_id", requestID),
		zap.Int("status", result.Status),
		zap.String("error", result.ErrorMessage))
}

// writeJoinResult translates the terminal FallbackResult into the
// caller-facing response. It always produces a well-formed JSON object,
// whatever the upstream did.
func writeJoinResult(w http.ResponseWriter, result relay.FallbackResult) {
	if result.Joined {
		_ = utils.WriteOK(w, JoinSuccessResponse{
			Joined:         true,
			UpstreamStatus: result.Status,
			Via:            result.Via,
			Data:           result.Data,
		})
		return
	}
	_ = utils.WriteJSON(w, result.Status, JoinFailureResponse{
		Joined:       false,
		Error:        result.ErrorMessage,
		UpstreamData: result.Data,
	})
}
