package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	dbpkg "venture-feed/internal/infra/db"
)

/* ────────────────────────────  ヘルパ  ──────────────────────────── */

// newTestDB opens a migrated SQLite file under t.TempDir.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, dialect, err := dbpkg.OpenDSN(context.Background(),
		"sqlite:"+filepath.Join(t.TempDir(), "test.db"), dbpkg.DefaultConnectionConfig())
	if err != nil {
		t.Fatalf("OpenDSN err=%v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := dbpkg.Migrate(db, dialect); err != nil {
		t.Fatalf("Migrate err=%v", err)
	}
	return db
}
