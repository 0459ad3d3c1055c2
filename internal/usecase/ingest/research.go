package ingest

import (
	"context"
	"log/slog"
	"strings"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/observability/logging"
	"venture-feed/internal/observability/metrics"
)

// RunResearch ingests the research feed. Papers need both a title and a url.
func (s *Service) RunResearch(ctx context.Context) (*RunStats, error) {
	return s.run(ctx, KindResearch, func(ctx context.Context, stats *RunStats) error {
		feed := s.Sources.Research
		if feed.URL == "" {
			return nil
		}
		stats.Sources = 1

		items, err := s.Feeds.Fetch(ctx, feed.URL)
		if err != nil {
			fetchFailed(ctx, KindResearch, stats, &FetchError{Source: feed.Name, Err: err})
			return nil
		}

		seen := newSeenSet()
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats.Fetched++
			if item.URL == "" || strings.TrimSpace(item.Title) == "" || !seen.add(item.URL) {
				stats.Skipped++
				metrics.RecordIngestItem(string(KindResearch), "skipped")
				continue
			}
			if err := s.ingestPaper(ctx, feed.Name, item, stats); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) ingestPaper(ctx context.Context, source string, item FeedItem, stats *RunStats) error {
	exists, err := s.Papers.ExistsByURL(ctx, item.URL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		persistFailed(ctx, KindResearch, stats, &PersistenceError{Op: "check paper", Err: err}, item.URL)
		return nil
	}
	if exists {
		stats.Skipped++
		metrics.RecordIngestItem(string(KindResearch), "skipped")
		return nil
	}

	abstract := collapseSpace(item.Content)
	cls, err := s.Classifier.ClassifyResearch(ctx, item.Title, abstract)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stats.ClassifyErrors++
		metrics.RecordIngestItem(string(KindResearch), "classify_error")
		logging.FromContext(ctx).WarnContext(ctx, "classification failed, skipping paper",
			slog.String("url", item.URL),
			slog.Any("error", err))
		return nil
	}

	paper := &entity.ResearchPaper{
		Title:          item.Title,
		Source:         source,
		URL:            item.URL,
		PublishedAt:    item.PublishedAt,
		Abstract:       abstract,
		SectorTags:     cls.SectorTags,
		Summary:        cls.Summary,
		RelevanceScore: cls.RelevanceScore,
	}
	if err := s.Papers.Create(ctx, paper); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		persistFailed(ctx, KindResearch, stats, &PersistenceError{Op: "create paper", Err: err}, item.URL)
		return nil
	}
	stats.Ingested++
	metrics.RecordIngestItem(string(KindResearch), "ingested")
	return nil
}

// collapseSpace joins whitespace runs into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
