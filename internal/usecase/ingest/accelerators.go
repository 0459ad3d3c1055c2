package ingest

import (
	"context"
	"log/slog"
	"strings"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/observability/logging"
	"venture-feed/internal/observability/metrics"
	"venture-feed/internal/usecase/merge"
)

// directoryTagSectors maps directory tags onto sector tags.
var directoryTagSectors = map[string]entity.SectorTag{
	"AI":                      entity.SectorAINative,
	"Artificial Intelligence": entity.SectorAINative,
	"Generative AI":           entity.SectorAINative,
	"Fintech":                 entity.SectorFintech,
	"Robotics":                entity.SectorRobotics,
	"SaaS":                    entity.SectorVerticalSaaS,
}

// MapDirectoryTags returns the distinct sector tags for a company's directory
// tags, in first-seen order. Unmapped tags are dropped.
func MapDirectoryTags(tags []string) []entity.SectorTag {
	out := make([]entity.SectorTag, 0, len(tags))
	seen := make(map[entity.SectorTag]struct{}, len(tags))
	for _, t := range tags {
		sector, ok := directoryTagSectors[t]
		if !ok {
			continue
		}
		if _, dup := seen[sector]; dup {
			continue
		}
		seen[sector] = struct{}{}
		out = append(out, sector)
	}
	return out
}

// RunAccelerators upserts every company of the accelerator directory.
// A failed page yields no companies for the run.
func (s *Service) RunAccelerators(ctx context.Context) (*RunStats, error) {
	return s.run(ctx, KindAccelerators, func(ctx context.Context, stats *RunStats) error {
		dir := s.Sources.Accelerator
		if dir.URL == "" || s.Directory == nil {
			return nil
		}
		stats.Sources = 1

		companies, err := s.Directory.FetchCompanies(ctx, dir.URL)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fetchFailed(ctx, KindAccelerators, stats, &FetchError{Source: dir.Name, Err: err})
			return nil
		}

		logger := logging.FromContext(ctx)
		for _, c := range companies {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats.Fetched++
			if strings.TrimSpace(c.Name) == "" {
				stats.Skipped++
				metrics.RecordIngestItem(string(KindAccelerators), "skipped")
				continue
			}

			_, outcome, err := s.Resolver.ResolveAccelerator(ctx, merge.AcceleratorEntry{
				Accelerator:     dir.Name,
				Name:            c.Name,
				Website:         c.Website,
				OneLiner:        c.OneLiner,
				LongDescription: c.LongDescription,
				ProfileURL:      c.URL,
				Batch:           c.Batch,
				SectorTags:      MapDirectoryTags(c.Tags),
			})
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				stats.PersistErrors++
				metrics.RecordIngestItem(string(KindAccelerators), "persist_error")
				logger.WarnContext(ctx, "accelerator merge failed",
					slog.String("name", c.Name),
					slog.Any("error", &PersistenceError{Op: "merge startup", Err: err}))
				continue
			}

			stats.Ingested++
			metrics.RecordIngestItem(string(KindAccelerators), "ingested")
			if outcome == merge.Created {
				stats.StartupsCreated++
			} else {
				stats.StartupsUpdated++
			}
		}
		return nil
	})
}
