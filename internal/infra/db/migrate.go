package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies the schema for the given dialect.
func Migrate(db *sql.DB, dialect Dialect) error {
	switch dialect {
	case SQLite:
		return MigrateUpSQLite(db)
	case Postgres:
		return MigrateUp(db)
	default:
		return fmt.Errorf("unknown dialect %q", dialect)
	}
}

// postgresTables are created in order; later tables reference earlier ones.
var postgresTables = []string{
	`
CREATE TABLE IF NOT EXISTS articles (
    id              BIGSERIAL PRIMARY KEY,
    title           TEXT NOT NULL,
    source          TEXT NOT NULL DEFAULT '',
    url             TEXT NOT NULL UNIQUE,
    published_at    TIMESTAMPTZ,
    raw_content     TEXT NOT NULL DEFAULT '',
    sector_tags     JSONB NOT NULL DEFAULT '[]',
    event_type      TEXT NOT NULL DEFAULT 'General News',
    stage           TEXT NOT NULL DEFAULT 'growth_late_stage',
    summary         TEXT NOT NULL DEFAULT '',
    strategic_note  TEXT NOT NULL DEFAULT '',
    relevance_score INTEGER NOT NULL DEFAULT 1,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS research_papers (
    id              BIGSERIAL PRIMARY KEY,
    title           TEXT NOT NULL,
    source          TEXT NOT NULL DEFAULT '',
    url             TEXT NOT NULL UNIQUE,
    published_at    TIMESTAMPTZ,
    abstract        TEXT NOT NULL DEFAULT '',
    sector_tags     JSONB NOT NULL DEFAULT '[]',
    summary         TEXT NOT NULL DEFAULT '',
    relevance_score INTEGER NOT NULL DEFAULT 1,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	// name is deliberately not unique; lookups take the lowest id
	`
CREATE TABLE IF NOT EXISTS startups (
    id                  BIGSERIAL PRIMARY KEY,
    name                TEXT NOT NULL,
    website             TEXT NOT NULL DEFAULT '',
    sector_tags         JSONB NOT NULL DEFAULT '[]',
    founding_team       TEXT NOT NULL DEFAULT '',
    why_interesting     TEXT NOT NULL DEFAULT '',
    moat_note           TEXT NOT NULL DEFAULT '',
    featured            BOOLEAN NOT NULL DEFAULT FALSE,
    overall_score       INTEGER NOT NULL DEFAULT 0,
    signals             JSONB NOT NULL DEFAULT '{}',
    links               JSONB NOT NULL DEFAULT '[]',
    accelerator         TEXT NOT NULL DEFAULT '',
    batch               TEXT NOT NULL DEFAULT '',
    university          TEXT NOT NULL DEFAULT '',
    cofounder_linkedins JSONB NOT NULL DEFAULT '[]',
    created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at          TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS events (
    id               BIGSERIAL PRIMARY KEY,
    title            TEXT NOT NULL,
    date             DATE NOT NULL,
    city             TEXT NOT NULL DEFAULT '',
    url              TEXT NOT NULL UNIQUE,
    registration_url TEXT NOT NULL DEFAULT '',
    source           TEXT NOT NULL DEFAULT '',
    event_type       TEXT NOT NULL DEFAULT '',
    sector_tags      JSONB NOT NULL DEFAULT '[]',
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`
CREATE TABLE IF NOT EXISTS pins (
    user_id    TEXT NOT NULL,
    item_type  TEXT NOT NULL CHECK (item_type IN ('article', 'event', 'research', 'startup')),
    item_id    BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, item_type, item_id)
)`,
	`
CREATE TABLE IF NOT EXISTS dismissed_items (
    user_id    TEXT NOT NULL,
    item_type  TEXT NOT NULL CHECK (item_type IN ('article', 'event', 'research', 'startup')),
    item_id    BIGINT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, item_type, item_id)
)`,
	`
CREATE TABLE IF NOT EXISTS starred_startups (
    user_id    TEXT NOT NULL,
    startup_id BIGINT NOT NULL REFERENCES startups(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, startup_id)
)`,
	`
CREATE TABLE IF NOT EXISTS startup_subscriptions (
    user_id    TEXT NOT NULL,
    startup_id BIGINT NOT NULL REFERENCES startups(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (user_id, startup_id)
)`,
	`
CREATE TABLE IF NOT EXISTS notification_preferences (
    user_id        TEXT PRIMARY KEY,
    email          TEXT NOT NULL DEFAULT '',
    digest_enabled BOOLEAN NOT NULL DEFAULT FALSE,
    frequency      TEXT NOT NULL DEFAULT 'daily',
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
}

var postgresIndexes = []string{
	// 一覧の並び順 (recency → relevance)
	`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC NULLS LAST)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_relevance ON articles(relevance_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_research_published_at ON research_papers(published_at DESC NULLS LAST)`,
	// 大文字小文字を区別しない名前検索
	`CREATE INDEX IF NOT EXISTS idx_startups_lower_name ON startups(lower(name))`,
	`CREATE INDEX IF NOT EXISTS idx_startups_overall_score ON startups(overall_score DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,
	`CREATE INDEX IF NOT EXISTS idx_startup_subscriptions_startup ON startup_subscriptions(startup_id)`,
}

// MigrateUp creates the PostgreSQL schema. Every statement is idempotent.
func MigrateUp(db *sql.DB) error {
	for _, stmt := range postgresTables {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	// タグ検索用GINインデックス (権限不足などは無視)
	_, _ = db.Exec(`CREATE INDEX IF NOT EXISTS idx_articles_sector_tags ON articles USING gin(sector_tags)`)

	for _, idx := range postgresIndexes {
		if _, err := db.Exec(idx); err != nil {
			return err
		}
	}
	return nil
}

// MigrateDown drops every table. Use with caution: all data is lost.
func MigrateDown(db *sql.DB) error {
	dropStatements := []string{
		`DROP TABLE IF EXISTS notification_preferences`,
		`DROP TABLE IF EXISTS startup_subscriptions`,
		`DROP TABLE IF EXISTS starred_startups`,
		`DROP TABLE IF EXISTS dismissed_items`,
		`DROP TABLE IF EXISTS pins`,
		`DROP TABLE IF EXISTS events`,
		`DROP TABLE IF EXISTS startups`,
		`DROP TABLE IF EXISTS research_papers`,
		`DROP TABLE IF EXISTS articles`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
