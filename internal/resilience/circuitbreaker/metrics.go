package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sony/gobreaker"
)

var (
	// 0=closed 1=half-open 2=open
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=half-open, 2=open).",
	}, []string{"name"})

	breakerTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "circuit_breaker_transitions_total",
		Help: "Circuit breaker state changes by destination state.",
	}, []string{"name", "to"})
)

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func recordState(name string, s gobreaker.State) {
	breakerState.WithLabelValues(name).Set(stateValue(s))
}

func recordTransition(name string, _, to gobreaker.State) {
	recordState(name, to)
	breakerTransitions.WithLabelValues(name, to.String()).Inc()
}
