package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/observability/metrics"
	"venture-feed/internal/repository"
)

// Outcome says what a resolution did to the store.
type Outcome int

const (
	// Discarded means nothing was written.
	Discarded Outcome = iota
	// Created means a new startup row was inserted.
	Created
	// Updated means an existing row was merged into.
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Created:
		return "created"
	case Updated:
		return "updated"
	default:
		return "discarded"
	}
}

// Resolver matches observations to startup rows and persists the merge.
type Resolver struct {
	repo   repository.StartupRepository
	logger *slog.Logger
}

// NewResolver creates a Resolver backed by repo.
func NewResolver(repo repository.StartupRepository, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{repo: repo, logger: logger}
}

// ResolveMention merges a scored mention. Mentions with no points or no name
// are discarded without touching the store.
func (r *Resolver) ResolveMention(ctx context.Context, m Mention) (*entity.Startup, Outcome, error) {
	name := strings.TrimSpace(m.Name)
	if name == "" || m.Points <= 0 {
		metrics.RecordStartupMerge("mention", Discarded.String())
		return nil, Discarded, nil
	}
	m.Name = name

	s, created, err := r.repo.Merge(ctx, name, func(existing *entity.Startup) (*entity.Startup, error) {
		if existing == nil {
			n := NewFromMention(m)
			return &n, nil
		}
		u := MergeMention(*existing, m)
		return &u, nil
	})
	if err != nil {
		metrics.RecordStartupMerge("mention", "error")
		return nil, Discarded, fmt.Errorf("ResolveMention %q: %w", name, err)
	}
	outcome := outcomeOf(created)
	metrics.RecordStartupMerge("mention", outcome.String())
	r.logger.DebugContext(ctx, "startup mention merged",
		slog.String("name", name),
		slog.Int("points", m.Points),
		slog.Int("overall_score", s.OverallScore),
		slog.String("outcome", outcome.String()))
	return s, outcome, nil
}

// ResolveAccelerator upserts one directory company.
func (r *Resolver) ResolveAccelerator(ctx context.Context, e AcceleratorEntry) (*entity.Startup, Outcome, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		metrics.RecordStartupMerge("accelerator", Discarded.String())
		return nil, Discarded, nil
	}
	e.Name = name

	s, created, err := r.repo.Merge(ctx, name, func(existing *entity.Startup) (*entity.Startup, error) {
		if existing == nil {
			n := NewFromAccelerator(e)
			return &n, nil
		}
		u := MergeAccelerator(*existing, e)
		return &u, nil
	})
	if err != nil {
		metrics.RecordStartupMerge("accelerator", "error")
		return nil, Discarded, fmt.Errorf("ResolveAccelerator %q: %w", name, err)
	}
	outcome := outcomeOf(created)
	metrics.RecordStartupMerge("accelerator", outcome.String())
	return s, outcome, nil
}

// EnsureStartup returns the startup named name, inserting a bare row with
// zero score when none exists. An existing row is never modified.
func (r *Resolver) EnsureStartup(ctx context.Context, name, website string, tags []entity.SectorTag) (*entity.Startup, Outcome, error) {
	name = strings.TrimSpace(name)
	if err := entity.ValidateStartupName(name); err != nil {
		return nil, Discarded, err
	}

	s, created, err := r.repo.Merge(ctx, name, func(existing *entity.Startup) (*entity.Startup, error) {
		if existing != nil {
			return nil, nil
		}
		return &entity.Startup{
			Name:       name,
			Website:    strings.TrimSpace(website),
			SectorTags: cloneTags(tags),
		}, nil
	})
	if err != nil {
		metrics.RecordStartupMerge("star", "error")
		return nil, Discarded, fmt.Errorf("EnsureStartup %q: %w", name, err)
	}
	if !created {
		return s, Discarded, nil
	}
	metrics.RecordStartupMerge("star", Created.String())
	return s, Created, nil
}

// CofounderUpdate replaces the cofounder list of one startup, addressed by
// id or, when the id is zero, by case-insensitive name.
type CofounderUpdate struct {
	StartupID   int64                      `json:"startup_id,omitempty"`
	StartupName string                     `json:"startup_name,omitempty"`
	LinkedIns   []entity.CofounderLinkedIn `json:"cofounder_linkedins"`
}

// SetCofounderLinkedIns applies the updates and returns how many rows changed.
// Updates without a usable target or without valid entries are skipped.
func (r *Resolver) SetCofounderLinkedIns(ctx context.Context, updates []CofounderUpdate) (int, error) {
	updated := 0
	var errs []error
	for _, u := range updates {
		if err := ctx.Err(); err != nil {
			return updated, err
		}
		links := validCofounders(u.LinkedIns)
		if len(links) == 0 {
			continue
		}

		var target *entity.Startup
		var err error
		switch {
		case u.StartupID > 0:
			target, err = r.repo.Get(ctx, u.StartupID)
		case strings.TrimSpace(u.StartupName) != "":
			target, err = r.repo.FindByName(ctx, strings.TrimSpace(u.StartupName))
		default:
			continue
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if target == nil {
			continue
		}

		if err := r.repo.UpdateCofounderLinkedIns(ctx, target.ID, links); err != nil {
			errs = append(errs, err)
			continue
		}
		updated++
	}
	if len(errs) > 0 {
		return updated, fmt.Errorf("SetCofounderLinkedIns: %w", errors.Join(errs...))
	}
	return updated, nil
}

func validCofounders(in []entity.CofounderLinkedIn) []entity.CofounderLinkedIn {
	out := make([]entity.CofounderLinkedIn, 0, len(in))
	for _, c := range in {
		c.Name = strings.TrimSpace(c.Name)
		c.URL = strings.TrimSpace(c.URL)
		if c.Name == "" || c.URL == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func outcomeOf(created bool) Outcome {
	if created {
		return Created
	}
	return Updated
}
