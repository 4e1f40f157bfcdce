package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JoinRequestsTotal counts inbound join requests by terminal outcome
	// (joined, failed, invalid).
	JoinRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "join_gateway_requests_total",
		Help: "Total join requests handled, labeled by terminal outcome",
	}, []string{"outcome"})

	// UpstreamAttemptsTotal counts individual upstream attempts by method
	// and outcome (success, rejected, unreachable).
	UpstreamAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "join_gateway_upstream_attempts_total",
		Help: "Total upstream join attempts, labeled by method and outcome",
	}, []string{"method", "outcome"})
)
