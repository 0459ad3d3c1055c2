package db

import "database/sql"

// SQLite stores timestamps as unix seconds, event dates as YYYY-MM-DD text
// and JSON columns as text.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS articles (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    title           TEXT NOT NULL,
    source          TEXT NOT NULL DEFAULT '',
    url             TEXT NOT NULL UNIQUE,
    published_at    INTEGER,
    raw_content     TEXT NOT NULL DEFAULT '',
    sector_tags     TEXT NOT NULL DEFAULT '[]',
    event_type      TEXT NOT NULL DEFAULT 'General News',
    stage           TEXT NOT NULL DEFAULT 'growth_late_stage',
    summary         TEXT NOT NULL DEFAULT '',
    strategic_note  TEXT NOT NULL DEFAULT '',
    relevance_score INTEGER NOT NULL DEFAULT 1,
    created_at      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS research_papers (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    title           TEXT NOT NULL,
    source          TEXT NOT NULL DEFAULT '',
    url             TEXT NOT NULL UNIQUE,
    published_at    INTEGER,
    abstract        TEXT NOT NULL DEFAULT '',
    sector_tags     TEXT NOT NULL DEFAULT '[]',
    summary         TEXT NOT NULL DEFAULT '',
    relevance_score INTEGER NOT NULL DEFAULT 1,
    created_at      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS startups (
    id                  INTEGER PRIMARY KEY AUTOINCREMENT,
    name                TEXT NOT NULL,
    website             TEXT NOT NULL DEFAULT '',
    sector_tags         TEXT NOT NULL DEFAULT '[]',
    founding_team       TEXT NOT NULL DEFAULT '',
    why_interesting     TEXT NOT NULL DEFAULT '',
    moat_note           TEXT NOT NULL DEFAULT '',
    featured            INTEGER NOT NULL DEFAULT 0,
    overall_score       INTEGER NOT NULL DEFAULT 0,
    signals             TEXT NOT NULL DEFAULT '{}',
    links               TEXT NOT NULL DEFAULT '[]',
    accelerator         TEXT NOT NULL DEFAULT '',
    batch               TEXT NOT NULL DEFAULT '',
    university          TEXT NOT NULL DEFAULT '',
    cofounder_linkedins TEXT NOT NULL DEFAULT '[]',
    created_at          INTEGER NOT NULL,
    updated_at          INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS events (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    title            TEXT NOT NULL,
    date             TEXT NOT NULL,
    city             TEXT NOT NULL DEFAULT '',
    url              TEXT NOT NULL UNIQUE,
    registration_url TEXT NOT NULL DEFAULT '',
    source           TEXT NOT NULL DEFAULT '',
    event_type       TEXT NOT NULL DEFAULT '',
    sector_tags      TEXT NOT NULL DEFAULT '[]',
    created_at       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS pins (
    user_id    TEXT NOT NULL,
    item_type  TEXT NOT NULL CHECK (item_type IN ('article', 'event', 'research', 'startup')),
    item_id    INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (user_id, item_type, item_id)
);

CREATE TABLE IF NOT EXISTS dismissed_items (
    user_id    TEXT NOT NULL,
    item_type  TEXT NOT NULL CHECK (item_type IN ('article', 'event', 'research', 'startup')),
    item_id    INTEGER NOT NULL,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (user_id, item_type, item_id)
);

CREATE TABLE IF NOT EXISTS starred_startups (
    user_id    TEXT NOT NULL,
    startup_id INTEGER NOT NULL REFERENCES startups(id) ON DELETE CASCADE,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (user_id, startup_id)
);

CREATE TABLE IF NOT EXISTS startup_subscriptions (
    user_id    TEXT NOT NULL,
    startup_id INTEGER NOT NULL REFERENCES startups(id) ON DELETE CASCADE,
    created_at INTEGER NOT NULL,
    PRIMARY KEY (user_id, startup_id)
);

CREATE TABLE IF NOT EXISTS notification_preferences (
    user_id        TEXT PRIMARY KEY,
    email          TEXT NOT NULL DEFAULT '',
    digest_enabled INTEGER NOT NULL DEFAULT 0,
    frequency      TEXT NOT NULL DEFAULT 'daily',
    updated_at     INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at DESC);
CREATE INDEX IF NOT EXISTS idx_research_published_at ON research_papers(published_at DESC);
CREATE INDEX IF NOT EXISTS idx_startups_lower_name ON startups(lower(name));
CREATE INDEX IF NOT EXISTS idx_startups_overall_score ON startups(overall_score DESC);
CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);
`

// MigrateUpSQLite creates the SQLite schema.
func MigrateUpSQLite(db *sql.DB) error {
	_, err := db.Exec(sqliteSchema)
	return err
}
