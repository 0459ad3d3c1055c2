package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/observability/logging"
	"venture-feed/internal/observability/metrics"
	"venture-feed/internal/usecase/merge"
	"venture-feed/internal/usecase/scoring"
)

// sourceLinkLabel labels the link added to a startup for the article that mentioned it.
const sourceLinkLabel = "Source"

// RunNews ingests every configured news feed.
// For each new item it classifies the article, stores it and merges the
// startups it mentions. A failing source or item is counted and skipped;
// only context cancellation ends the run early.
func (s *Service) RunNews(ctx context.Context) (*RunStats, error) {
	return s.run(ctx, KindNews, func(ctx context.Context, stats *RunStats) error {
		seen := newSeenSet()
		for _, feed := range s.Sources.NewsFeeds {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats.Sources++

			items, err := s.Feeds.Fetch(ctx, feed.URL)
			if err != nil {
				fetchFailed(ctx, KindNews, stats, &FetchError{Source: feed.Name, Err: err})
				continue
			}

			for _, item := range items {
				if err := ctx.Err(); err != nil {
					return err
				}
				stats.Fetched++
				if item.URL == "" || !seen.add(item.URL) {
					stats.Skipped++
					metrics.RecordIngestItem(string(KindNews), "skipped")
					continue
				}
				if err := s.ingestArticle(ctx, feed.Name, item, stats); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ingestArticle handles one feed item. It returns an error only when the
// context is done.
func (s *Service) ingestArticle(ctx context.Context, source string, item FeedItem, stats *RunStats) error {
	logger := logging.FromContext(ctx)

	exists, err := s.Articles.ExistsByURL(ctx, item.URL)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		persistFailed(ctx, KindNews, stats, &PersistenceError{Op: "check article", Err: err}, item.URL)
		return nil
	}
	if exists {
		stats.Skipped++
		metrics.RecordIngestItem(string(KindNews), "skipped")
		return nil
	}

	content := s.enhanceContent(ctx, item)

	cls, err := s.Classifier.ClassifyArticle(ctx, item.Title, content, "")
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stats.ClassifyErrors++
		metrics.RecordIngestItem(string(KindNews), "classify_error")
		logger.WarnContext(ctx, "classification failed, skipping article",
			slog.String("url", item.URL),
			slog.String("title", item.Title),
			slog.Any("error", err))
		return nil
	}

	article := &entity.Article{
		Title:          item.Title,
		Source:         source,
		URL:            item.URL,
		PublishedAt:    item.PublishedAt,
		RawContent:     content,
		SectorTags:     cls.SectorTags,
		EventType:      cls.EventType,
		Stage:          cls.Stage,
		Summary:        cls.Summary,
		StrategicNote:  cls.StrategicNote,
		RelevanceScore: cls.RelevanceScore,
	}
	if err := s.Articles.Create(ctx, article); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		persistFailed(ctx, KindNews, stats, &PersistenceError{Op: "create article", Err: err}, item.URL)
		return nil
	}
	stats.Ingested++
	metrics.RecordIngestItem(string(KindNews), "ingested")
	logger.DebugContext(ctx, "article ingested",
		slog.Int64("article_id", article.ID),
		slog.String("url", article.URL),
		slog.Int("relevance_score", article.RelevanceScore))

	return s.resolveMentions(ctx, article, stats)
}

// resolveMentions extracts the startups an article talks about and merges
// each scored mention. Extraction never fails; merge failures are counted.
func (s *Service) resolveMentions(ctx context.Context, article *entity.Article, stats *RunStats) error {
	logger := logging.FromContext(ctx)

	mentions := s.Classifier.ExtractStartups(ctx, article.Title, article.RawContent)
	for _, m := range mentions {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := strings.TrimSpace(m.Name)
		if name == "" {
			stats.MentionsDiscarded++
			continue
		}

		tags := m.SectorRelevance
		if len(tags) == 0 {
			tags = article.SectorTags
		}
		signals := entity.Signals{
			SignedCustomers: m.SignedCustomers,
			TeamGrew:        m.TeamGrew,
			RaisedFunding:   m.RaisedFunding,
		}
		points := scoring.ArticleScoreForStartup(scoring.Observation{
			SectorTags:      tags,
			EventType:       article.EventType,
			SignedCustomers: signals.SignedCustomers,
			TeamGrew:        signals.TeamGrew,
			RaisedFunding:   signals.RaisedFunding,
			InIngestedNews:  true,
		})

		startup, outcome, err := s.Resolver.ResolveMention(ctx, merge.Mention{
			Name:               name,
			SectorTags:         tags,
			WhyInteresting:     m.WhyInteresting,
			MoatNote:           m.MoatNote,
			Signals:            signals,
			Link:               entity.Link{Label: sourceLinkLabel, URL: article.URL},
			Points:             points,
			Accelerator:        m.Accelerator,
			University:         m.University,
			CofounderLinkedIns: m.CofounderLinkedIns,
		})
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			stats.PersistErrors++
			logger.WarnContext(ctx, "startup merge failed",
				slog.String("name", name),
				slog.String("url", article.URL),
				slog.Any("error", &PersistenceError{Op: "merge startup", Err: err}))
			continue
		}

		switch outcome {
		case merge.Created:
			stats.StartupsCreated++
			s.alert(ctx, startup, article)
		case merge.Updated:
			stats.StartupsUpdated++
		default:
			stats.MentionsDiscarded++
		}
	}
	return nil
}

func (s *Service) alert(ctx context.Context, startup *entity.Startup, article *entity.Article) {
	if s.Alerter == nil || startup == nil {
		return
	}
	// NotifyNewStartup is fire-and-forget; the run context may end before delivery.
	if err := s.Alerter.NotifyNewStartup(context.WithoutCancel(ctx), startup, article); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "failed to dispatch startup alert",
			slog.String("startup", startup.Name),
			slog.Any("error", err))
	}
}

// enhanceContent returns the full page text when the feed text is shorter
// than the threshold and the fetched text is longer. It never fails.
func (s *Service) enhanceContent(ctx context.Context, item FeedItem) string {
	if s.Content == nil {
		return item.Content
	}
	logger := logging.FromContext(ctx)

	threshold := s.ContentThreshold
	if threshold <= 0 {
		threshold = DefaultContentThreshold
	}
	rssLength := len(item.Content)
	if rssLength >= threshold {
		metrics.RecordContentFetch(metrics.FetchSkipped, 0)
		return item.Content
	}

	fetchStart := time.Now()
	fullContent, err := s.Content.FetchContent(ctx, item.URL)
	fetchDuration := time.Since(fetchStart)
	if err != nil {
		logger.DebugContext(ctx, "content fetch failed, using feed text",
			slog.String("url", item.URL),
			slog.Any("error", err),
			slog.Duration("fetch_duration", fetchDuration))
		metrics.RecordContentFetch(metrics.FetchFailure, fetchDuration)
		return item.Content
	}
	metrics.RecordContentFetch(metrics.FetchSuccess, fetchDuration)

	// 取得本文がフィードより短い場合はフィードを採用
	if len(fullContent) > rssLength {
		return fullContent
	}
	return item.Content
}
