package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of LLM completion requests",
		},
		[]string{"provider", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_request_duration_seconds",
			Help:    "LLM completion latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	tokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_tokens_total",
			Help: "Total number of tokens reported by the LLM provider",
		},
		[]string{"provider", "direction"},
	)
)

func recordRequest(provider Provider, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	requestsTotal.WithLabelValues(string(provider), status).Inc()
	requestDuration.WithLabelValues(string(provider)).Observe(duration.Seconds())
}

func recordTokens(provider Provider, input, output int64) {
	tokensTotal.WithLabelValues(string(provider), "input").Add(float64(input))
	tokensTotal.WithLabelValues(string(provider), "output").Add(float64(output))
}
