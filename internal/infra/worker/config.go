// Package worker holds the scheduled ingestion worker's configuration,
// metrics, health server and job loop.
package worker

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"venture-feed/internal/pkg/config"
	"venture-feed/internal/usecase/ingest"
)

// WorkerConfig controls the scheduled ingestion worker.
//
//	CRON_SCHEDULE          five-field cron expression   (default "0 */6 * * *")
//	WORKER_TIMEZONE        IANA zone for the schedule   (default "UTC")
//	NOTIFY_MAX_CONCURRENT  alert sends in flight, 1-50  (default 10)
//	CRAWL_TIMEOUT          per-run ceiling, 1m-4h       (default 30m)
//	WORKER_HEALTH_PORT     health server port           (default 9091)
//	METRICS_PORT           metrics server port          (default 9090)
//	INGEST_KINDS           comma separated kinds        (default news,research,accelerators,events)
type WorkerConfig struct {
	CronSchedule        string
	Timezone            string
	NotifyMaxConcurrent int
	CrawlTimeout        time.Duration
	HealthPort          int
	MetricsPort         int
	// Kinds run in order on every tick.
	Kinds []ingest.Kind
}

// DefaultConfig runs every scheduled pipeline four times a day.
// The startup backfill is left to manual triggers.
func DefaultConfig() WorkerConfig {
	return WorkerConfig{
		CronSchedule:        "0 */6 * * *",
		Timezone:            "UTC",
		NotifyMaxConcurrent: 10,
		CrawlTimeout:        30 * time.Minute,
		HealthPort:          9091,
		MetricsPort:         9090,
		Kinds: []ingest.Kind{
			ingest.KindNews,
			ingest.KindResearch,
			ingest.KindAccelerators,
			ingest.KindEvents,
		},
	}
}

func validateKind(s string) error {
	_, err := ingest.ParseKind(s)
	return err
}

func validatePort(v int) error { return config.ValidateIntRange(v, 1024, 65535) }

// Validate reports every invalid field at once.
func (c *WorkerConfig) Validate() error {
	var errs []error
	if err := config.ValidateCronSchedule(c.CronSchedule); err != nil {
		errs = append(errs, fmt.Errorf("cron schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateIntRange(c.NotifyMaxConcurrent, 1, 50); err != nil {
		errs = append(errs, fmt.Errorf("notify max concurrent: %w", err))
	}
	if err := config.ValidatePositiveDuration(c.CrawlTimeout); err != nil {
		errs = append(errs, fmt.Errorf("crawl timeout: %w", err))
	}
	if err := validatePort(c.HealthPort); err != nil {
		errs = append(errs, fmt.Errorf("health port: %w", err))
	}
	if err := validatePort(c.MetricsPort); err != nil {
		errs = append(errs, fmt.Errorf("metrics port: %w", err))
	}
	if c.HealthPort == c.MetricsPort {
		errs = append(errs, fmt.Errorf("health and metrics ports collide on %d", c.HealthPort))
	}
	if len(c.Kinds) == 0 {
		errs = append(errs, errors.New("kinds: none configured"))
	}
	for _, k := range c.Kinds {
		if err := validateKind(string(k)); err != nil {
			errs = append(errs, fmt.Errorf("kinds: %w", err))
		}
	}
	return errors.Join(errs...)
}

// LoadConfigFromEnv never fails: each rejected value is replaced by its
// default, logged and counted on metrics.
func LoadConfigFromEnv(logger *slog.Logger, metrics *WorkerMetrics) *WorkerConfig {
	cfg := DefaultConfig()
	active := false

	note := func(field string, applied bool, warning string) {
		if !applied {
			return
		}
		active = true
		metrics.RecordFallback(field)
		logger.Warn("configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}

	s := config.LoadEnvWithFallback("CRON_SCHEDULE", cfg.CronSchedule, config.ValidateCronSchedule)
	cfg.CronSchedule = s.Value
	note("cron_schedule", s.FallbackApplied, s.Warning)

	s = config.LoadEnvWithFallback("WORKER_TIMEZONE", cfg.Timezone, config.ValidateTimezone)
	cfg.Timezone = s.Value
	note("timezone", s.FallbackApplied, s.Warning)

	n := config.LoadEnvInt("NOTIFY_MAX_CONCURRENT", cfg.NotifyMaxConcurrent, func(v int) error {
		return config.ValidateIntRange(v, 1, 50)
	})
	cfg.NotifyMaxConcurrent = n.Value
	note("notify_max_concurrent", n.FallbackApplied, n.Warning)

	d := config.LoadEnvDuration("CRAWL_TIMEOUT", cfg.CrawlTimeout, func(v time.Duration) error {
		return config.ValidateDuration(v, time.Minute, 4*time.Hour)
	})
	cfg.CrawlTimeout = d.Value
	note("crawl_timeout", d.FallbackApplied, d.Warning)

	n = config.LoadEnvInt("WORKER_HEALTH_PORT", cfg.HealthPort, validatePort)
	cfg.HealthPort = n.Value
	note("health_port", n.FallbackApplied, n.Warning)

	n = config.LoadEnvInt("METRICS_PORT", cfg.MetricsPort, validatePort)
	cfg.MetricsPort = n.Value
	note("metrics_port", n.FallbackApplied, n.Warning)

	defKinds := make([]string, len(cfg.Kinds))
	for i, k := range cfg.Kinds {
		defKinds[i] = string(k)
	}
	l := config.LoadEnvList("INGEST_KINDS", defKinds, validateKind)
	cfg.Kinds = make([]ingest.Kind, len(l.Value))
	for i, k := range l.Value {
		cfg.Kinds[i] = ingest.Kind(k)
	}
	note("ingest_kinds", l.FallbackApplied, l.Warning)

	metrics.SetFallbackActive(active)
	metrics.RecordLoadTimestamp()
	return &cfg
}
