// Package metrics exposes Prometheus collectors for the advisory API and
// its upstream data providers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts API requests by route and status class.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropadvisor_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"route", "status"},
	)

	// RequestDuration tracks API handler latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cropadvisor_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)

	// UpstreamRequestsTotal counts calls to external data providers.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropadvisor_upstream_requests_total",
			Help: "Total number of upstream provider requests",
		},
		[]string{"provider", "outcome"},
	)

	// FallbacksTotal counts responses served from deterministic fallbacks
	// after an upstream failure.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropadvisor_fallbacks_total",
			Help: "Total number of responses served from fallback generators",
		},
		[]string{"provider"},
	)

	// PredictionsTotal counts classifier invocations by outcome.
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cropadvisor_predictions_total",
			Help: "Total number of classifier predictions",
		},
		[]string{"outcome"},
	)
)
