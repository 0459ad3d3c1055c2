// Package http holds the API's shared middleware, health probes and metrics
// endpoint. Resource handlers live in the signal, ingest and overlay subpackages.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"venture-feed/internal/handler/http/respond"
	"venture-feed/internal/observability/metrics"
	"venture-feed/internal/resilience/circuitbreaker"
	"venture-feed/internal/usecase/notify"
)

const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"

	poolUtilizationWarn = 80.0
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"` // healthy, degraded or unhealthy
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// AlertHealth reports per-channel alert state. *notify.Service satisfies it.
type AlertHealth interface {
	GetChannelHealth() []notify.ChannelHealthStatus
}

// HealthHandler reports database and alert channel health. The overall
// status is the worst check; only "unhealthy" answers 503, so a busy pool or
// an open alert breaker never takes the API out of rotation.
type HealthHandler struct {
	DB      circuitbreaker.Pinger
	Alerts  AlertHealth
	Version string
	Now     func() time.Time
}

var statusRank = map[string]int{statusHealthy: 0, statusDegraded: 1, statusUnhealthy: 2}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := map[string]CheckStatus{
		"database": {Status: statusUnhealthy, Message: "not configured"},
	}
	if h.DB != nil {
		checks["database"] = checkDatabase(ctx, h.DB)
	}
	if h.Alerts != nil {
		checks["alerts"] = checkAlerts(h.Alerts)
	}

	overall := statusHealthy
	for _, c := range checks {
		if statusRank[c.Status] > statusRank[overall] {
			overall = c.Status
		}
	}
	code := http.StatusOK
	if overall == statusUnhealthy {
		code = http.StatusServiceUnavailable
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	w.Header().Set("Cache-Control", "no-store")
	respond.JSON(w, code, HealthResponse{
		Status:    overall,
		Timestamp: now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func checkDatabase(ctx context.Context, db circuitbreaker.Pinger) CheckStatus {
	if err := db.PingContext(ctx); err != nil {
		return CheckStatus{Status: statusUnhealthy, Message: respond.SanitizeError(err)}
	}

	stats := db.Stats()
	metrics.UpdateDBConnectionStats(stats.InUse, stats.Idle)
	details := map[string]any{
		"max_open_connections": stats.MaxOpenConnections,
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
	}

	// MaxOpenConnections 0 は無制限
	if stats.MaxOpenConnections == 0 {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool max connections not configured",
			Details: details,
		}
	}

	utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
	details["utilization_percent"] = utilization
	if utilization >= poolUtilizationWarn {
		return CheckStatus{
			Status:  statusDegraded,
			Message: "connection pool utilization above 80%",
			Details: details,
		}
	}
	return CheckStatus{Status: statusHealthy, Details: details}
}

func checkAlerts(a AlertHealth) CheckStatus {
	channels := a.GetChannelHealth()
	status := statusHealthy
	for _, ch := range channels {
		if ch.Enabled && ch.CircuitBreakerOpen {
			status = statusDegraded
		}
	}
	return CheckStatus{Status: status, Details: map[string]any{"channels": channels}}
}

// ReadyHandler handles readiness probes: 200 once the database answers.
type ReadyHandler struct {
	DB circuitbreaker.Pinger
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.DB == nil {
		http.Error(w, "database not configured", http.StatusServiceUnavailable)
		return
	}
	if err := h.DB.PingContext(ctx); err != nil {
		http.Error(w, "database not ready", http.StatusServiceUnavailable)
		return
	}
	writeText(w, "ready")
}

// LiveHandler handles liveness probes. It never touches dependencies.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	writeText(w, "alive")
}

func writeText(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Default().Warn("failed to write probe response", slog.Any("error", err))
	}
}
