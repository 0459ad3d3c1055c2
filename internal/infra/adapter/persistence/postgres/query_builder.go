// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"venture-feed/internal/infra/adapter/persistence/jsoncol"
	"venture-feed/internal/repository"
)

// whereBuilder accumulates AND-ed conditions with numbered placeholders.
type whereBuilder struct {
	conditions []string
	args       []any
}

// add appends a condition; each %d in cond is replaced by the next placeholder index.
func (b *whereBuilder) add(cond string, arg any) {
	b.args = append(b.args, arg)
	b.conditions = append(b.conditions, fmt.Sprintf(cond, len(b.args)))
}

func (b *whereBuilder) raw(cond string) {
	b.conditions = append(b.conditions, cond)
}

// next returns the placeholder for an argument appended after the clause.
func (b *whereBuilder) next(arg any) string {
	b.args = append(b.args, arg)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) clause() string {
	if len(b.conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(b.conditions, " AND ")
}

// SignalQueryBuilder builds WHERE clauses for article and research listings.
type SignalQueryBuilder struct{}

// NewSignalQueryBuilder creates a new query builder instance.
func NewSignalQueryBuilder() *SignalQueryBuilder {
	return &SignalQueryBuilder{}
}

// BuildWhereClause returns the clause and its arguments. Time bounds apply to
// the publication date, falling back to the ingestion time. Stage is only
// applied when withStage is set.
func (qb *SignalQueryBuilder) BuildWhereClause(f repository.SignalFilter, withStage bool) (string, []any) {
	b := qb.build(f, withStage)
	return b.clause(), b.args
}

func (qb *SignalQueryBuilder) build(f repository.SignalFilter, withStage bool) *whereBuilder {
	b := &whereBuilder{}
	if f.Sector != nil {
		b.add("sector_tags @> $%d::jsonb", jsoncol.TagValue(*f.Sector))
	}
	if f.Since != nil {
		b.add("COALESCE(published_at, created_at) >= $%d", *f.Since)
	}
	if f.Until != nil {
		b.add("COALESCE(published_at, created_at) < $%d", *f.Until)
	}
	if withStage && f.Stage != nil {
		b.add("stage = $%d", string(*f.Stage))
	}
	return b
}

// BuildStartupWhereClause returns the clause and arguments for a startup listing.
func (qb *SignalQueryBuilder) BuildStartupWhereClause(f repository.StartupFilter) (string, []any) {
	b := qb.buildStartup(f)
	return b.clause(), b.args
}

func (qb *SignalQueryBuilder) buildStartup(f repository.StartupFilter) *whereBuilder {
	b := &whereBuilder{}
	if f.Sector != nil {
		b.add("sector_tags @> $%d::jsonb", jsoncol.TagValue(*f.Sector))
	}
	switch f.View {
	case repository.ViewNews:
		b.raw("accelerator = '' AND university = ''")
	case repository.ViewAccelerators:
		b.raw("accelerator <> ''")
	case repository.ViewAcademic:
		b.raw("university <> ''")
	}
	if f.Accelerator != "" {
		b.add("accelerator = $%d", f.Accelerator)
	}
	if f.University != "" {
		b.add("university = $%d", f.University)
	}
	if f.FeaturedOnly {
		b.raw("featured")
	}
	return b
}
