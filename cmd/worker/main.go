package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"venture-feed/internal/app"
	"venture-feed/internal/infra/adapter/persistence"
	"venture-feed/internal/infra/db"
	workerPkg "venture-feed/internal/infra/worker"
	"venture-feed/internal/observability/logging"
	"venture-feed/pkg/config"
)

func main() {
	logger := initLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 設定は fail-open: 不正値は既定値に置き換える
	workerMetrics := workerPkg.NewWorkerMetrics(nil)
	cfg := workerPkg.LoadConfigFromEnv(logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", cfg.CronSchedule),
		slog.String("timezone", cfg.Timezone),
		slog.Any("kinds", cfg.Kinds),
		slog.Int("notify_max_concurrent", cfg.NotifyMaxConcurrent),
		slog.Duration("crawl_timeout", cfg.CrawlTimeout),
		slog.Int("health_port", cfg.HealthPort),
		slog.Int("metrics_port", cfg.MetricsPort))

	conn, repos := initDatabase(ctx, logger)
	defer func() {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	ingestion, err := app.NewIngestion(logger, repos, app.Options{
		NotifyMaxConcurrent: cfg.NotifyMaxConcurrent,
		RunTimeout:          cfg.CrawlTimeout,
	})
	if err != nil {
		logger.Error("failed to build ingestion", slog.Any("error", err))
		os.Exit(1)
	}

	healthServer := workerPkg.NewHealthServer(fmt.Sprintf(":%d", cfg.HealthPort), logger)
	job := &workerPkg.Job{
		Runner:  ingestion.Runner,
		Kinds:   cfg.Kinds,
		Metrics: workerMetrics,
		Logger:  logger,
		Health:  healthServer,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := healthServer.Start(gctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return runMetricsServer(gctx, logger, fmt.Sprintf(":%d", cfg.MetricsPort), ingestion.Notify)
	})
	g.Go(func() error {
		return runScheduler(gctx, logger, cfg, job, healthServer)
	})

	err = g.Wait()

	drainCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if drainErr := ingestion.Shutdown(drainCtx); drainErr != nil {
		logger.Warn("alert drain incomplete", slog.Any("error", drainErr))
	}
	if err != nil {
		logger.Error("worker stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

func initDatabase(ctx context.Context, logger *slog.Logger) (*sql.DB, *persistence.Repositories) {
	conn, dialect, err := db.Open(ctx)
	if err != nil {
		logger.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}
	if err := db.Migrate(conn, dialect); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	repos, err := persistence.New(conn, dialect)
	if err != nil {
		logger.Error("failed to build repositories", slog.Any("error", err))
		os.Exit(1)
	}
	return conn, repos
}

// runScheduler fires job on cfg.CronSchedule until ctx is cancelled, then
// waits for a tick in progress to notice the cancellation and return.
// A tick that is still running when the next one fires is skipped.
func runScheduler(ctx context.Context, logger *slog.Logger, cfg *workerPkg.WorkerConfig, job *workerPkg.Job, health *workerPkg.HealthServer) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), slog.Any("error", err))
		loc = time.UTC
	}

	cronLogger := slogCronLogger{logger: logger}
	c := cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	if _, err := c.AddFunc(cfg.CronSchedule, func() { job.Run(ctx) }); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}

	if config.GetEnvBool("WORKER_RUN_ON_START", false) {
		logger.Info("running scheduled kinds once at startup")
		go job.Run(ctx)
	}

	c.Start()
	health.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", loc.String()))

	<-ctx.Done()
	health.SetReady(false)
	<-c.Stop().Done()
	return nil
}

// slogCronLogger routes cron's own messages through slog.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}
