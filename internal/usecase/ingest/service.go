package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"venture-feed/internal/config"
	"venture-feed/internal/observability/logging"
	"venture-feed/internal/observability/metrics"
	"venture-feed/internal/observability/tracing"
	"venture-feed/internal/repository"
)

// Kind names one ingestion pipeline.
type Kind string

const (
	KindNews         Kind = "news"
	KindResearch     Kind = "research"
	KindAccelerators Kind = "accelerators"
	KindEvents       Kind = "events"
	KindBackfill     Kind = "backfill-startups"
)

// Kinds lists every pipeline in scheduling order.
func Kinds() []Kind {
	return []Kind{KindNews, KindResearch, KindAccelerators, KindEvents, KindBackfill}
}

// ParseKind returns the Kind named s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Defaults.
const (
	DefaultContentThreshold = 1500
	DefaultBackfillLimit    = 200
)

// Service provides the ingestion use cases.
// Content, Alerter and Directory may be nil to disable those features.
type Service struct {
	Articles   repository.ArticleRepository
	Papers     repository.ResearchRepository
	Events     repository.EventRepository
	Classifier Classifier
	Resolver   StartupResolver
	Feeds      FeedFetcher
	Directory  DirectoryFetcher
	Content    ContentFetcher
	Alerter    Alerter
	Sources    *config.Sources

	// ContentThreshold is the feed text length below which the full page is fetched.
	ContentThreshold int
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// RunStats contains statistics about one ingestion run.
type RunStats struct {
	Kind              Kind          `json:"kind"`
	Sources           int           `json:"sources"`
	Fetched           int           `json:"fetched"`
	Skipped           int           `json:"skipped"`
	Ingested          int           `json:"ingested"`
	ClassifyErrors    int           `json:"classify_errors"`
	PersistErrors     int           `json:"persist_errors"`
	FetchErrors       int           `json:"fetch_errors"`
	StartupsCreated   int           `json:"startups_created"`
	StartupsUpdated   int           `json:"startups_updated"`
	MentionsDiscarded int           `json:"mentions_discarded"`
	Duration          time.Duration `json:"-"`
	DurationMS        int64         `json:"duration_ms"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// run wraps one pipeline with a span, a run-scoped logger and run metrics.
// fn returns only errors that should end the run.
func (s *Service) run(ctx context.Context, kind Kind, fn func(context.Context, *RunStats) error) (*RunStats, error) {
	if s.Sources == nil {
		return nil, errors.New("ingest: sources not configured")
	}

	runID := uuid.NewString()
	ctx, span := tracing.Start(ctx, "ingest."+string(kind),
		attribute.String("run_kind", string(kind)),
		attribute.String("run_id", runID),
	)
	defer span.End()

	logger := logging.WithRun(logging.FromContext(ctx), string(kind), runID)
	ctx = logging.WithLogger(ctx, logger)

	start := time.Now()
	stats := &RunStats{Kind: kind}
	logger.InfoContext(ctx, "ingestion run started")

	err := fn(ctx, stats)

	stats.Duration = time.Since(start)
	stats.DurationMS = stats.Duration.Milliseconds()
	metrics.RecordIngestRun(string(kind), err == nil, stats.Duration)
	span.SetAttributes(
		attribute.Int("fetched", stats.Fetched),
		attribute.Int("ingested", stats.Ingested),
	)

	attrs := []any{
		slog.Int("sources", stats.Sources),
		slog.Int("fetched", stats.Fetched),
		slog.Int("skipped", stats.Skipped),
		slog.Int("ingested", stats.Ingested),
		slog.Int("classify_errors", stats.ClassifyErrors),
		slog.Int("persist_errors", stats.PersistErrors),
		slog.Int("fetch_errors", stats.FetchErrors),
		slog.Int("startups_created", stats.StartupsCreated),
		slog.Int("startups_updated", stats.StartupsUpdated),
		slog.Duration("duration", stats.Duration),
	}
	if err != nil {
		tracing.Fail(span, err, "ingestion run aborted")
		logger.WarnContext(ctx, "ingestion run aborted", append(attrs, slog.Any("error", err))...)
		return stats, err
	}
	logger.InfoContext(ctx, "ingestion run completed", attrs...)
	return stats, nil
}

// fetchFailed records a source that yielded nothing.
func fetchFailed(ctx context.Context, kind Kind, stats *RunStats, err *FetchError) {
	stats.FetchErrors++
	metrics.RecordFeedFetchError(string(kind))
	logging.FromContext(ctx).WarnContext(ctx, "failed to fetch source",
		slog.String("source", err.Source),
		slog.Any("error", err.Err))
}

// persistFailed records a store failure for one item.
func persistFailed(ctx context.Context, kind Kind, stats *RunStats, err *PersistenceError, url string) {
	stats.PersistErrors++
	metrics.RecordIngestItem(string(kind), "persist_error")
	logging.FromContext(ctx).WarnContext(ctx, "persistence failed, skipping item",
		slog.String("url", url),
		slog.Any("error", err))
}

// seenSet dedups urls within one run.
type seenSet map[string]struct{}

func newSeenSet() seenSet { return make(seenSet) }

// add reports whether url was not seen before.
func (s seenSet) add(url string) bool {
	if _, ok := s[url]; ok {
		return false
	}
	s[url] = struct{}{}
	return true
}
