package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Movie-API metrics
var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movision",
			Subsystem: "movie_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "movision",
			Subsystem: "movie_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movision",
			Subsystem: "movie_api",
			Name:      "provider_errors_total",
			Help:      "Total upstream provider call failures",
		},
		[]string{"provider", "error_type"},
	)

	RateLimitRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movision",
			Subsystem: "movie_api",
			Name:      "rate_limit_rejections_total",
			Help:      "Requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	EnrichmentFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "movision",
			Subsystem: "movie_api",
			Name:      "enrichment_failures_total",
			Help:      "Metadata lookups that degraded to an unenriched candidate",
		},
	)

	RecommendationTurnsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "movision",
			Subsystem: "movie_api",
			Name:      "recommendation_turns_total",
			Help:      "Completed recommendation turns",
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "movision",
			Subsystem: "movie_api",
			Name:      "active_sessions",
			Help:      "Sessions currently tracked by the in-memory store",
		},
	)
)

// RecordRequest records one completed HTTP request.
func RecordRequest(method, endpoint, status string, duration float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(duration)
}

// RecordProviderError counts an upstream failure by provider name.
func RecordProviderError(provider, errorType string) {
	ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
}
