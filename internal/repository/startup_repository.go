package repository

import (
	"context"

	"venture-feed/internal/domain/entity"
)

// MergeFunc receives the current row for a name (nil when none exists) and
// returns the row to write. Returning nil leaves the store untouched.
type MergeFunc func(existing *entity.Startup) (*entity.Startup, error)

// StartupRepository persists aggregated startups.
type StartupRepository interface {
	// Merge runs a read-modify-write for the startup named name inside a
	// single transaction. Lookup is case-insensitive; the lowest id wins
	// when several rows share a name. It returns the written row and whether
	// it was newly created.
	Merge(ctx context.Context, name string, fn MergeFunc) (*entity.Startup, bool, error)
	Get(ctx context.Context, id int64) (*entity.Startup, error)
	// FindByName performs the case-insensitive lookup used by Merge.
	FindByName(ctx context.Context, name string) (*entity.Startup, error)
	// List returns startups ordered by overall score descending.
	List(ctx context.Context, f StartupFilter) ([]*entity.Startup, error)
	// UpdateCofounderLinkedIns replaces the cofounder list of one row.
	UpdateCofounderLinkedIns(ctx context.Context, id int64, links []entity.CofounderLinkedIn) error
}
