package relay

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/formywor/join-gateway/config"
	"github.com/formywor/join-gateway/metrics"
)

// Service coordinates the ordered fallback across upstream candidates.
type Service struct {
	upstream config.UpstreamConfig
	executor *Executor
	logger   *zap.Logger
}

// NewService creates a new relay service from the process configuration.
// The configuration is read once here and never mutated afterwards.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	return &Service{
		upstream: cfg.Upstream,
		executor: NewExecutor(cfg.Upstream.PostHeaders),
		logger:   logger,
	}
}

// Join builds the candidate sequence for (code, name) and dispatches it.
func (s *Service) Join(ctx context.Context, code, name string) FallbackResult {
	return s.Dispatch(ctx, BuildCandidates(s.upstream, code, name))
}

// Dispatch tries descriptors strictly in order, short-circuiting on the
// first success. Order encodes priority: a later candidate is never
// attempted before an earlier one's outcome is known, so candidates are
// never raced concurrently. Worst-case latency is bounded by the configured
// per-attempt timeout multiplied by the number of descriptors.
func (s *Service) Dispatch(ctx context.Context, descriptors []AttemptDescriptor) FallbackResult {
	if len(descriptors) == 0 {
		s.logger.Warn("no upstream candidates configured")
		return FallbackResult{
			Status:       http.StatusInternalServerError,
			ErrorMessage: "no upstream candidates configured",
		}
	}

	dispatchID := uuid.New().String()
	var lastFailure AttemptOutcome

	for _, d := range descriptors {
		start := time.Now()
		outcome := s.executor.Execute(ctx, d, s.upstream.Timeout)

		if outcome.Succeeded {
			metrics.UpstreamAttemptsTotal.WithLabelValues(d.Method, "success").Inc()
			s.logger.Info("upstream attempt succeeded",
				zap.String("dispatch_id", dispatchID),
				zap.String("attempt", outcome.Label),
				zap.Int("upstream_status", outcome.HTTPStatus),
				zap.Duration("elapsed", time.Since(start)))
			return FallbackResult{
				Joined: true,
				Status: outcome.HTTPStatus,
				Via:    outcome.Label,
				Data:   outcome.Body,
			}
		}

		metrics.UpstreamAttemptsTotal.WithLabelValues(d.Method, attemptOutcomeLabel(outcome)).Inc()
		s.logger.Warn("upstream attempt failed",
			zap.String("dispatch_id", dispatchID),
			zap.String("attempt", outcome.Label),
			zap.Int("upstream_status", outcome.HTTPStatus),
			zap.String("reason", failureText(outcome)),
			zap.Duration("elapsed", time.Since(start)))
		lastFailure = outcome
	}

	// Exhaustion: every candidate failed. Surface the last failure rather
	// than an opaque error so callers can see what was tried last.
	status := http.StatusBadGateway
	if lastFailure.HTTPStatus != 0 {
		status = lastFailure.HTTPStatus
	}
	s.logger.Error("all upstream candidates failed",
		zap.String("dispatch_id", dispatchID),
		zap.Int("candidates", len(descriptors)),
		zap.String("last_attempt", lastFailure.Label))
	return FallbackResult{
		Status: status,
		Data:   lastFailure.Body,
		ErrorMessage: fmt.Sprintf("all %d upstream candidates failed; last attempt %s: %s",
			len(descriptors), lastFailure.Label, failureText(lastFailure)),
	}
}

// failureText renders why an attempt failed: the network-level reason when
// no response arrived, otherwise the upstream rejection status.
func failureText(o AttemptOutcome) string {
	if o.FailureReason != "" {
		return o.FailureReason
	}
	return fmt.Sprintf("upstream returned status %d", o.HTTPStatus)
}

func attemptOutcomeLabel(o AttemptOutcome) string {
	if o.FailureReason != "" {
		return "unreachable"
	}
	return "rejected"
}
