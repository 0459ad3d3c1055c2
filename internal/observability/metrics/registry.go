// Package metrics holds the process-wide Prometheus collectors. They are
// registered with the default registry at init and served on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sizeBuckets = prometheus.ExponentialBuckets(100, 10, 8)

// HTTP. path is always a route template from pathutil.NormalizePath.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	// CSV export and ingest triggers are the slow tail.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 120},
	}, []string{"method", "path", "status"})

	HTTPRequestSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_size_bytes",
		Help:    "Declared request body size.",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	HTTPResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "Response body size.",
		Buckets: sizeBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Requests currently being served.",
	})
)

// Ingestion runs.
var (
	IngestRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_runs_total",
		Help: "Ingestion runs by kind and status.",
	}, []string{"kind", "status"})

	IngestRunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ingest_run_duration_seconds",
		Help:    "Wall-clock time of one ingestion run.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"kind"})

	// outcome: ingested, skipped, classify_error, persist_error
	IngestItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_items_total",
		Help: "Fetched items by kind and outcome.",
	}, []string{"kind", "outcome"})

	FeedFetchErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_fetch_errors_total",
		Help: "Sources that produced no items because the fetch failed.",
	}, []string{"kind"})

	// origin: mention, accelerator, star. result: created, updated, discarded, error
	StartupMergesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "startup_merges_total",
		Help: "Startup resolutions against the store.",
	}, []string{"origin", "result"})
)

// LLM classification and content enhancement.
var (
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "classifications_total",
		Help: "Classifier calls by classifier and status.",
	}, []string{"classifier", "status"})

	ClassificationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "classification_duration_seconds",
		Help:    "Latency of one classifier call.",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
	}, []string{"classifier"})

	// result: success, failure, skipped
	ContentFetchAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "content_fetch_attempts_total",
		Help: "Full-page content fetches by result.",
	}, []string{"result"})

	ContentFetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "content_fetch_duration_seconds",
		Help:    "Latency of full-page content fetches.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
	})
)

// Database pool, refreshed by the health checks.
var (
	DBConnectionsInUse = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_in_use",
		Help: "Database connections in use.",
	})
	DBConnectionsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "db_connections_idle",
		Help: "Idle database connections.",
	})
)
