package notify

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons for alert_dropped_total.
const (
	dropPoolFull    = "pool_full"
	dropCircuitOpen = "circuit_open"
	dropShutdown    = "shutdown"
)

const alertSubsystem = "startup_alert"

var (
	alertOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: alertSubsystem,
		Name:      "outcomes_total",
		Help:      "Startup alerts by channel and outcome (dispatched, success, failure).",
	}, []string{"channel", "outcome"})

	alertLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: alertSubsystem,
		Name:      "send_duration_seconds",
		Help:      "Webhook send latency per channel.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"channel"})

	alertDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: alertSubsystem,
		Name:      "dropped_total",
		Help:      "Startup alerts dropped before sending, by reason.",
	}, []string{"channel", "reason"})

	alertsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: alertSubsystem,
		Name:      "in_flight",
		Help:      "Alert sends currently running or waiting for a slot.",
	})

	alertChannels = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: alertSubsystem,
		Name:      "channels_enabled",
		Help:      "Alert channels enabled at startup.",
	})
)

func recordDispatch(channel string) {
	alertOutcomes.WithLabelValues(channel, "dispatched").Inc()
}

func recordResult(channel string, err error, d time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	alertOutcomes.WithLabelValues(channel, outcome).Inc()
	alertLatency.WithLabelValues(channel).Observe(d.Seconds())
}

func recordDropped(channel, reason string) {
	alertDrops.WithLabelValues(channel, reason).Inc()
}
