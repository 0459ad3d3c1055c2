package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	hhttp "venture-feed/internal/handler/http"
	"venture-feed/internal/handler/http/respond"
	"venture-feed/internal/usecase/notify"
)

// ChannelHealthResponse is served at /health/channels.
type ChannelHealthResponse struct {
	Healthy  bool                         `json:"healthy"`
	Channels []notify.ChannelHealthStatus `json:"channels"`
}

// metricsMux exposes /metrics and /health/channels. alerts may be nil.
func metricsMux(alerts *notify.Service) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.HandleFunc("GET /health/channels", func(w http.ResponseWriter, _ *http.Request) {
		resp := ChannelHealthResponse{Healthy: true, Channels: []notify.ChannelHealthStatus{}}
		if alerts != nil {
			resp.Channels = alerts.GetChannelHealth()
		}
		for _, ch := range resp.Channels {
			if ch.Enabled && ch.CircuitBreakerOpen {
				resp.Healthy = false
			}
		}
		status := http.StatusOK
		if !resp.Healthy {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(w, status, resp)
	})
	return mux
}

// runMetricsServer serves until ctx is cancelled and shuts down within 5s.
func runMetricsServer(ctx context.Context, logger *slog.Logger, addr string, alerts *notify.Service) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           metricsMux(alerts),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics server starting", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
