package persistence_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence"
	dbpkg "venture-feed/internal/infra/db"
)

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, dialect, err := dbpkg.OpenDSN(ctx, "sqlite:"+filepath.Join(t.TempDir(), "repos.db"), dbpkg.DefaultConnectionConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, dbpkg.Migrate(conn, dialect))

	repos, err := persistence.New(conn, dialect)
	require.NoError(t, err)

	article := &entity.Article{Title: "t", URL: "https://example.com/a", Stage: entity.StageEarly, EventType: entity.EventGeneralNews}
	require.NoError(t, repos.Articles.Create(ctx, article))
	exists, err := repos.Articles.ExistsByURL(ctx, article.URL)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repos.Pins.Add(ctx, entity.ItemRef{UserID: "u", ItemType: entity.ItemArticle, ItemID: article.ID}))
	pins, err := repos.Pins.List(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, pins, 1)

	dismissed, err := repos.Dismissals.List(ctx, "u")
	require.NoError(t, err)
	assert.Empty(t, dismissed)
}

func TestNew_UnknownDialect(t *testing.T) {
	_, err := persistence.New(nil, dbpkg.Dialect("oracle"))
	assert.Error(t, err)
}

func TestNew_Postgres(t *testing.T) {
	repos, err := persistence.New(nil, dbpkg.Postgres)
	require.NoError(t, err)
	assert.NotNil(t, repos.Startups)
	assert.NotNil(t, repos.Preferences)
}
