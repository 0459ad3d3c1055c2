package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"venture-feed/internal/handler/http/respond"
	"venture-feed/internal/usecase/ingest"
)

// IngestRunner runs one pipeline. *ingest.Runner satisfies it.
type IngestRunner interface {
	Run(ctx context.Context, kind ingest.Kind) (*ingest.RunStats, error)
}

// Job is one scheduler tick: every configured kind, one after another.
type Job struct {
	Runner  IngestRunner
	Kinds   []ingest.Kind
	Metrics *WorkerMetrics
	Logger  *slog.Logger
	// Health receives each outcome when set.
	Health *HealthServer
	// Now defaults to time.Now.
	Now func() time.Time
}

func (j *Job) now() time.Time {
	if j.Now != nil {
		return j.Now()
	}
	return time.Now()
}

// Run executes the kinds in order. A failed kind does not stop the next one;
// a cancelled ctx does.
func (j *Job) Run(ctx context.Context) {
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, kind := range j.Kinds {
		if ctx.Err() != nil {
			logger.Info("scheduled run cancelled", slog.String("kind", string(kind)))
			return
		}
		j.runOne(ctx, logger, kind)
	}
}

func (j *Job) runOne(ctx context.Context, logger *slog.Logger, kind ingest.Kind) {
	start := time.Now()
	stats, err := j.Runner.Run(ctx, kind)
	elapsed := time.Since(start)

	status := StatusSuccess
	switch {
	case errors.Is(err, ingest.ErrRunInProgress):
		status = StatusSkipped
		logger.Warn("scheduled run skipped, another run is active", slog.String("kind", string(kind)))
	case err != nil:
		status = StatusFailure
		logger.Error("scheduled run failed",
			slog.String("kind", string(kind)),
			slog.Any("error", respond.SanitizeError(err)))
	}

	ingested := 0
	if stats != nil {
		ingested = stats.Ingested
	}

	if j.Metrics != nil {
		j.Metrics.RecordJobRun(string(kind), status)
		if status != StatusSkipped {
			j.Metrics.RecordJobDuration(string(kind), elapsed.Seconds())
		}
		j.Metrics.RecordItemsIngested(string(kind), ingested)
		if status == StatusSuccess {
			j.Metrics.RecordLastSuccess(string(kind))
		}
	}
	if j.Health != nil {
		j.Health.RecordRun(string(kind), RunRecord{Status: status, Ingested: ingested, FinishedAt: j.now()})
	}
	if status == StatusSuccess {
		logger.Info("scheduled run completed",
			slog.String("kind", string(kind)),
			slog.Int("ingested", ingested),
			slog.Duration("duration", elapsed))
	}
}
