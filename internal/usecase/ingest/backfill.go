package ingest

import (
	"context"
	"fmt"
)

// BackfillStartups re-runs startup extraction over the most recently stored
// articles. Articles are not re-inserted or reclassified; only the startup
// store changes. A non-positive limit uses DefaultBackfillLimit.
func (s *Service) BackfillStartups(ctx context.Context, limit int) (*RunStats, error) {
	if limit <= 0 {
		limit = DefaultBackfillLimit
	}
	return s.run(ctx, KindBackfill, func(ctx context.Context, stats *RunStats) error {
		articles, err := s.Articles.ListRecent(ctx, limit)
		if err != nil {
			return fmt.Errorf("list recent articles: %w", &PersistenceError{Op: "ListRecent", Err: err})
		}
		stats.Sources = 1

		for _, a := range articles {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats.Fetched++
			if err := s.resolveMentions(ctx, a, stats); err != nil {
				return err
			}
			stats.Ingested++
		}
		return nil
	})
}
