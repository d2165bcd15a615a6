package models

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instruments for the backend client, the search controller
// and the web front end. They register with the default registry.
var (
	BackendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_backend_requests_total",
			Help: "Requests made to the recommendation backend",
		},
		[]string{"endpoint", "outcome"}, // outcome: "ok", "error", "rejected"
	)

	BackendLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cinematch_backend_request_duration_seconds",
			Help:    "Latency of recommendation backend requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	StaleResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_stale_responses_total",
			Help: "Backend responses discarded because a newer request was issued",
		},
		[]string{"flow"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cinematch_circuit_breaker_state",
			Help: "Backend circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cinematch_active_sessions",
			Help: "Browser sessions holding a search controller",
		},
	)

	LookupCacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cinematch_lookup_cache_total",
			Help: "Lookup cache results by endpoint",
		},
		[]string{"endpoint", "result"}, // result: "hit", "miss"
	)

	RateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cinematch_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)
