package worker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"venture-feed/internal/handler/http/respond"
)

// HealthServer serves liveness and readiness for the worker process.
// Readiness flips once the scheduler is running and also reports the last
// outcome of every kind.
type HealthServer struct {
	addr   string
	logger *slog.Logger
	ready  atomic.Bool
	server *http.Server

	mu   sync.Mutex
	runs map[string]RunRecord
}

// RunRecord is the last outcome of one kind.
type RunRecord struct {
	Status     string    `json:"status"`
	Ingested   int       `json:"ingested"`
	FinishedAt time.Time `json:"finished_at"`
}

type healthResponse struct {
	Status   string               `json:"status"`
	LastRuns map[string]RunRecord `json:"last_runs,omitempty"`
}

func NewHealthServer(addr string, logger *slog.Logger) *HealthServer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthServer{addr: addr, logger: logger, runs: make(map[string]RunRecord)}
}

// Handler exposes GET /health and GET /health/ready.
func (h *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.handleLiveness)
	mux.HandleFunc("GET /health/ready", h.handleReadiness)
	return mux
}

// Start serves until ctx is cancelled, then shuts down within 5s.
// It returns http.ErrServerClosed after a clean shutdown.
func (h *HealthServer) Start(ctx context.Context) error {
	h.server = &http.Server{
		Addr:              h.addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.logger.Info("health server starting", slog.String("addr", h.addr))
		errCh <- h.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.server.Shutdown(shutdownCtx); err != nil {
			h.logger.Error("health server shutdown failed", slog.Any("error", err))
			return err
		}
		h.logger.Info("health server stopped")
		return http.ErrServerClosed
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			h.logger.Error("health server failed", slog.Any("error", err))
		}
		return err
	}
}

func (h *HealthServer) SetReady(ready bool) {
	h.ready.Store(ready)
	h.logger.Info("worker readiness changed", slog.Bool("ready", ready))
}

// RecordRun stores the outcome of one kind.
func (h *HealthServer) RecordRun(kind string, rec RunRecord) {
	h.mu.Lock()
	h.runs[kind] = rec
	h.mu.Unlock()
}

func (h *HealthServer) lastRuns() map[string]RunRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]RunRecord, len(h.runs))
	for k, v := range h.runs {
		out[k] = v
	}
	return out
}

func (h *HealthServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func (h *HealthServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if !h.ready.Load() {
		respond.JSON(w, http.StatusServiceUnavailable, healthResponse{Status: "not ready"})
		return
	}
	respond.JSON(w, http.StatusOK, healthResponse{Status: "ok", LastRuns: h.lastRuns()})
}
