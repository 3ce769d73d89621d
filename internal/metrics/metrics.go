// Package metrics defines the Prometheus collectors for query processing,
// engine calls, and embedding, plus the HTTP middleware.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QueriesProcessedTotal counts processed queries by intent and role.
	QueriesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediquery",
			Name:      "queries_processed_total",
			Help:      "Total number of processed search queries",
		},
		[]string{"intent", "role"},
	)

	// EngineRequestDuration tracks engine round-trip latency.
	EngineRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "mediquery",
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	// EngineErrorsTotal counts failed engine calls.
	EngineErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "mediquery",
			Name:      "engine_errors_total",
			Help:      "Total number of failed search engine calls",
		},
	)

	// EmbeddingRequestsTotal counts embedding provider calls.
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediquery",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	// EmbeddingCacheTotal counts embedding cache hits and misses.
	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mediquery",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"},
	)
)

// Register registers the domain collectors. Called once from the
// composition root; HTTP middleware collectors register separately.
func Register() {
	prometheus.MustRegister(
		QueriesProcessedTotal,
		EngineRequestDuration,
		EngineErrorsTotal,
		EmbeddingRequestsTotal,
		EmbeddingCacheTotal,
	)
}

// CountQuery records one processed query.
func CountQuery(intent, role string) {
	QueriesProcessedTotal.WithLabelValues(intent, role).Inc()
}

// ObserveEngineRequest records one engine round trip.
func ObserveEngineRequest(d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		EngineErrorsTotal.Inc()
	}
	EngineRequestDuration.WithLabelValues(status).Observe(d.Seconds())
}
