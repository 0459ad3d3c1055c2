// Package persistence selects the repository implementations for a dialect.
package persistence

import (
	"database/sql"
	"fmt"

	"venture-feed/internal/infra/adapter/persistence/postgres"
	"venture-feed/internal/infra/adapter/persistence/sqlite"
	"venture-feed/internal/infra/db"
	"venture-feed/internal/repository"
)

// Repositories bundles every store the binaries depend on.
type Repositories struct {
	Articles      repository.ArticleRepository
	Papers        repository.ResearchRepository
	Events        repository.EventRepository
	Startups      repository.StartupRepository
	Pins          repository.ItemRefRepository
	Dismissals    repository.ItemRefRepository
	Stars         repository.StarRepository
	Subscriptions repository.SubscriptionRepository
	Preferences   repository.PreferenceRepository
}

// New builds the repositories for dialect on top of conn.
func New(conn *sql.DB, dialect db.Dialect) (*Repositories, error) {
	switch dialect {
	case db.Postgres:
		return &Repositories{
			Articles:      postgres.NewArticleRepo(conn),
			Papers:        postgres.NewResearchRepo(conn),
			Events:        postgres.NewEventRepo(conn),
			Startups:      postgres.NewStartupRepo(conn),
			Pins:          postgres.NewPinRepo(conn),
			Dismissals:    postgres.NewDismissedRepo(conn),
			Stars:         postgres.NewStarRepo(conn),
			Subscriptions: postgres.NewSubscriptionRepo(conn),
			Preferences:   postgres.NewPreferenceRepo(conn),
		}, nil
	case db.SQLite:
		return &Repositories{
			Articles:      sqlite.NewArticleRepo(conn),
			Papers:        sqlite.NewResearchRepo(conn),
			Events:        sqlite.NewEventRepo(conn),
			Startups:      sqlite.NewStartupRepo(conn),
			Pins:          sqlite.NewPinRepo(conn),
			Dismissals:    sqlite.NewDismissedRepo(conn),
			Stars:         sqlite.NewStarRepo(conn),
			Subscriptions: sqlite.NewSubscriptionRepo(conn),
			Preferences:   sqlite.NewPreferenceRepo(conn),
		}, nil
	default:
		return nil, fmt.Errorf("persistence: unknown dialect %q", dialect)
	}
}
