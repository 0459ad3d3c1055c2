// Package sqlite provides SQLite implementations of repository interfaces.
// Timestamps are stored as unix seconds and JSON columns as text.
package sqlite

import (
	"strings"
	"time"

	"venture-feed/internal/repository"
)

// SignalQueryBuilder builds WHERE clauses for article, research and startup listings.
type SignalQueryBuilder struct{}

// NewSignalQueryBuilder creates a new query builder instance.
func NewSignalQueryBuilder() *SignalQueryBuilder {
	return &SignalQueryBuilder{}
}

// tagCondition matches rows whose sector_tags array contains the bound value.
const tagCondition = "EXISTS (SELECT 1 FROM json_each(sector_tags) WHERE json_each.value = ?)"

// BuildWhereClause returns the clause and its arguments. Stage is only
// applied when withStage is set.
func (qb *SignalQueryBuilder) BuildWhereClause(f repository.SignalFilter, withStage bool) (clause string, args []any) {
	var conditions []string

	if f.Sector != nil {
		conditions = append(conditions, tagCondition)
		args = append(args, string(*f.Sector))
	}
	if f.Since != nil {
		conditions = append(conditions, "COALESCE(published_at, created_at) >= ?")
		args = append(args, f.Since.Unix())
	}
	if f.Until != nil {
		conditions = append(conditions, "COALESCE(published_at, created_at) < ?")
		args = append(args, f.Until.Unix())
	}
	if withStage && f.Stage != nil {
		conditions = append(conditions, "stage = ?")
		args = append(args, string(*f.Stage))
	}
	return where(conditions), args
}

// BuildStartupWhereClause returns the clause and arguments for a startup listing.
func (qb *SignalQueryBuilder) BuildStartupWhereClause(f repository.StartupFilter) (clause string, args []any) {
	var conditions []string

	if f.Sector != nil {
		conditions = append(conditions, tagCondition)
		args = append(args, string(*f.Sector))
	}
	switch f.View {
	case repository.ViewNews:
		conditions = append(conditions, "accelerator = '' AND university = ''")
	case repository.ViewAccelerators:
		conditions = append(conditions, "accelerator <> ''")
	case repository.ViewAcademic:
		conditions = append(conditions, "university <> ''")
	}
	if f.Accelerator != "" {
		conditions = append(conditions, "accelerator = ?")
		args = append(args, f.Accelerator)
	}
	if f.University != "" {
		conditions = append(conditions, "university = ?")
		args = append(args, f.University)
	}
	if f.FeaturedOnly {
		conditions = append(conditions, "featured = 1")
	}
	return where(conditions), args
}

func where(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}

type rowScanner interface {
	Scan(dest ...any) error
}

// clock is overridden in tests.
var clock = func() time.Time { return time.Now().UTC() }

// nowUnix returns the current second and the time value it round-trips to.
func nowUnix() (int64, time.Time) {
	sec := clock().Unix()
	return sec, time.Unix(sec, 0).UTC()
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func nullUnix(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}
