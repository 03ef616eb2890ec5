// Package metrics holds the Prometheus collectors of the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// EmbeddingBuckets cover provider latencies from 50ms to 30s.
var EmbeddingBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30}

var (
	// RequestsTotal counts HTTP requests by method, route and status code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlife_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finlife_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// EmbeddingRequestsTotal counts calls to the embedding provider by outcome
	// ("ok", "error", "cache_hit").
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlife_embedding_requests_total",
			Help: "Embedding provider requests",
		},
		[]string{"model", "outcome"},
	)

	EmbeddingLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finlife_embedding_latency_seconds",
			Help:    "Embedding provider latency",
			Buckets: EmbeddingBuckets,
		},
		[]string{"model"},
	)

	// RecommendationsTotal counts recommendation calls by outcome.
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlife_recommendations_total",
			Help: "Recommendation requests",
		},
		[]string{"outcome"},
	)

	// LedgerChangesTotal counts join/unjoin operations.
	LedgerChangesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlife_ledger_changes_total",
			Help: "Membership ledger changes",
		},
		[]string{"op"},
	)

	// EmbeddingBackfillTotal counts products processed by the backfill job.
	EmbeddingBackfillTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finlife_embedding_backfill_total",
			Help: "Products processed by the embedding backfill",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		EmbeddingRequestsTotal,
		EmbeddingLatency,
		RecommendationsTotal,
		LedgerChangesTotal,
		EmbeddingBackfillTotal,
	)
}
