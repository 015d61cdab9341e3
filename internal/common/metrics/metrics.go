// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ChatRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_requests_total",
			Help: "Total number of chat requests by outcome",
		},
		[]string{"status"},
	)

	ChatRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "chat_request_duration_seconds",
			Help: "Duration of chat request processing in seconds",
		},
		[]string{"status"},
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "completion_call_duration_seconds",
			Help: "Duration of upstream completion calls in seconds",
		},
	)

	RecommendationsBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_built_total",
			Help: "Total number of recommendation payloads built by type",
		},
		[]string{"type"},
	)

	DegradedLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "degraded_lookups_total",
			Help: "Parts/profile lookups that failed and were absorbed",
		},
		[]string{"store"},
	)
)
