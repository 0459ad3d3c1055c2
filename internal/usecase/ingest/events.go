package ingest

import (
	"context"
	"time"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/observability/metrics"
)

// NextOccurrence returns the next month/day on or after the calendar day of
// now, as a UTC midnight. A date already past this year rolls to next year.
func NextOccurrence(month, day int, now time.Time) time.Time {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	next := time.Date(y, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if next.Before(today) {
		next = time.Date(y+1, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	}
	return next
}

// RunEvents removes retired events and upserts every template with its next
// occurrence. Upserting is keyed by url, so repeated runs leave one row per
// template.
func (s *Service) RunEvents(ctx context.Context) (*RunStats, error) {
	return s.run(ctx, KindEvents, func(ctx context.Context, stats *RunStats) error {
		stats.Sources = 1

		if len(s.Sources.RetiredEventURLs) > 0 {
			if _, err := s.Events.DeleteByURLs(ctx, s.Sources.RetiredEventURLs); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				persistFailed(ctx, KindEvents, stats, &PersistenceError{Op: "delete retired events", Err: err}, "")
			}
		}

		now := s.now()
		for _, tpl := range s.Sources.Events {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats.Fetched++
			ev := &entity.Event{
				Title:           tpl.Title,
				Date:            NextOccurrence(tpl.Month, tpl.Day, now),
				City:            tpl.City,
				URL:             tpl.URL,
				RegistrationURL: tpl.RegistrationURL,
				Source:          tpl.Source,
				EventType:       tpl.EventType,
				SectorTags:      entity.NormalizeSectorTags(tpl.SectorTags),
			}
			if err := s.Events.Upsert(ctx, ev); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				persistFailed(ctx, KindEvents, stats, &PersistenceError{Op: "upsert event", Err: err}, tpl.URL)
				continue
			}
			stats.Ingested++
			metrics.RecordIngestItem(string(KindEvents), "ingested")
		}
		return nil
	})
}
