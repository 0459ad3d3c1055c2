package notify

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/handler/http/requestid"
	"venture-feed/internal/observability/logging"
)

const (
	workerPoolTimeout   = 5 * time.Second  // wait for a free slot before dropping
	notificationTimeout = 30 * time.Second // per channel send
)

// ChannelHealthStatus is the health of one channel for the health endpoints.
type ChannelHealthStatus struct {
	Name               string `json:"name"`
	Enabled            bool   `json:"enabled"`
	CircuitBreakerOpen bool   `json:"circuit_breaker_open"`
}

// Service dispatches new-startup alerts to every enabled channel.
// NotifyNewStartup never blocks on delivery; failures are logged and counted.
type Service struct {
	channels       []Channel
	sem            *semaphore.Weighted
	wg             sync.WaitGroup
	shutdownCtx    context.Context
	shutdownCancel context.CancelFunc
}

// NewService creates a Service that runs at most maxConcurrent sends at once.
func NewService(channels []Channel, maxConcurrent int) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	enabled := 0
	for _, ch := range channels {
		if ch.IsEnabled() {
			enabled++
		}
	}
	alertChannels.Set(float64(enabled))

	return &Service{
		channels:       channels,
		sem:            semaphore.NewWeighted(int64(maxConcurrent)),
		shutdownCtx:    shutdownCtx,
		shutdownCancel: shutdownCancel,
	}
}

// NotifyNewStartup implements ingest.Alerter. It schedules one send per
// enabled channel and returns immediately. Sends log through the logger in
// ctx, so alerts raised during a run carry its run_id.
func (s *Service) NotifyNewStartup(ctx context.Context, startup *entity.Startup, article *entity.Article) error {
	if startup == nil {
		logging.FromContext(ctx).Warn("startup alert skipped: nil startup")
		return nil
	}
	closing := s.shutdownCtx.Err() != nil

	_, requestID := requestid.Ensure(ctx)
	logger := logging.FromContext(ctx).With(
		slog.String("request_id", requestID),
		slog.Int64("startup_id", startup.ID),
		slog.String("startup", startup.Name))

	for _, ch := range s.channels {
		if !ch.IsEnabled() {
			continue
		}
		if closing {
			recordDropped(ch.Name(), dropShutdown)
			continue
		}
		s.wg.Go(func() {
			s.deliver(logger.With(slog.String("channel", ch.Name())), requestID, ch, startup, article)
		})
	}
	return nil
}

// deliver waits for a pool slot, then sends once. It never panics out.
func (s *Service) deliver(logger *slog.Logger, requestID string, ch Channel, startup *entity.Startup, article *entity.Article) {
	alertsInFlight.Inc()
	defer alertsInFlight.Dec()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in alert channel",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
		}
	}()

	if err := s.acquire(); err != nil {
		logger.Warn("startup alert dropped: worker pool full")
		recordDropped(ch.Name(), dropPoolFull)
		return
	}
	defer s.sem.Release(1)

	if ch.CircuitOpen() {
		logger.Warn("startup alert dropped: circuit breaker open")
		recordDropped(ch.Name(), dropCircuitOpen)
		return
	}

	ctx, cancel := context.WithTimeout(s.shutdownCtx, notificationTimeout)
	defer cancel()

	recordDispatch(ch.Name())
	start := time.Now()
	err := ch.Send(requestid.NewContext(ctx, requestID), startup, article)
	took := time.Since(start)
	recordResult(ch.Name(), err, took)

	if err != nil {
		logger.Warn("startup alert failed", slog.Duration("send_duration", took), slog.Any("error", err))
		return
	}
	logger.Info("startup alert sent", slog.Duration("send_duration", took))
}

func (s *Service) acquire() error {
	ctx, cancel := context.WithTimeout(s.shutdownCtx, workerPoolTimeout)
	defer cancel()
	return s.sem.Acquire(ctx, 1)
}

// GetChannelHealth reports each channel's enabled and breaker state.
func (s *Service) GetChannelHealth() []ChannelHealthStatus {
	statuses := make([]ChannelHealthStatus, 0, len(s.channels))
	for _, ch := range s.channels {
		statuses = append(statuses, ChannelHealthStatus{
			Name:               ch.Name(),
			Enabled:            ch.IsEnabled(),
			CircuitBreakerOpen: ch.CircuitOpen(),
		})
	}
	return statuses
}

// Shutdown cancels in-flight sends and waits for them, bounded by ctx.
func (s *Service) Shutdown(ctx context.Context) error {
	slog.Info("shutting down alert service")
	s.shutdownCancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("alert service shutdown complete")
		return nil
	case <-ctx.Done():
		slog.Warn("alert service shutdown timeout")
		return ctx.Err()
	}
}
