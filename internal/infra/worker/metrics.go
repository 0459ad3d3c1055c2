package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"venture-feed/internal/pkg/config"
)

// Job outcomes used as the status label.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusSkipped = "skipped"
)

// WorkerMetrics are the scheduled job metrics plus the worker's config metrics.
type WorkerMetrics struct {
	*config.ConfigMetrics

	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   *prometheus.HistogramVec
	ItemsIngestedTotal   *prometheus.CounterVec
	LastSuccessTimestamp *prometheus.GaugeVec
}

// NewWorkerMetrics registers the worker metrics with reg, or with the default
// registerer when reg is nil.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics(reg, "worker"),

		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_job_runs_total",
			Help: "Scheduled ingestion runs by kind and status (success, failure, skipped).",
		}, []string{"kind", "status"}),

		JobDurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worker_job_duration_seconds",
			Help:    "Wall time of scheduled ingestion runs.",
			Buckets: []float64{1, 5, 30, 60, 300, 900, 1800, 3600},
		}, []string{"kind"}),

		ItemsIngestedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_items_ingested_total",
			Help: "Items stored by scheduled runs.",
		}, []string{"kind"}),

		LastSuccessTimestamp: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worker_job_last_success_timestamp",
			Help: "Unix time of the last successful run per kind.",
		}, []string{"kind"}),
	}
}

func (m *WorkerMetrics) RecordJobRun(kind, status string) {
	m.JobRunsTotal.WithLabelValues(kind, status).Inc()
}

func (m *WorkerMetrics) RecordJobDuration(kind string, seconds float64) {
	m.JobDurationSeconds.WithLabelValues(kind).Observe(seconds)
}

func (m *WorkerMetrics) RecordItemsIngested(kind string, n int) {
	if n > 0 {
		m.ItemsIngestedTotal.WithLabelValues(kind).Add(float64(n))
	}
}

func (m *WorkerMetrics) RecordLastSuccess(kind string) {
	m.LastSuccessTimestamp.WithLabelValues(kind).SetToCurrentTime()
}
