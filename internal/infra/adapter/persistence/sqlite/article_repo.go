package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/jsoncol"
	"venture-feed/internal/repository"
)

const articleColumns = `id, title, source, url, published_at, raw_content, sector_tags,
event_type, stage, summary, strategic_note, relevance_score, created_at`

// ArticleRepo implements the ArticleRepository interface using SQLite.
type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *SignalQueryBuilder
}

// NewArticleRepo creates a new SQLite-backed article repository.
func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{db: db, queryBuilder: NewSignalQueryBuilder()}
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		a                    entity.Article
		published            sql.NullInt64
		created              int64
		tags, eventType, stg string
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Source, &a.URL, &published, &a.RawContent, &tags,
		&eventType, &stg, &a.Summary, &a.StrategicNote, &a.RelevanceScore, &created); err != nil {
		return nil, err
	}
	if published.Valid {
		t := fromUnix(published.Int64)
		a.PublishedAt = &t
	}
	a.CreatedAt = fromUnix(created)
	var err error
	if a.SectorTags, err = jsoncol.Tags(tags); err != nil {
		return nil, err
	}
	a.EventType = entity.EventType(eventType)
	a.Stage = entity.Stage(stg)
	return &a, nil
}

// ExistsByURL reports whether the url was already ingested.
func (repo *ArticleRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM articles WHERE url = ?)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, url).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByURL: QueryRowContext: %w", err)
	}
	return exists, nil
}

// Create inserts a new article.
func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, source, url, published_at, raw_content, sector_tags,
                      event_type, stage, summary, strategic_note, relevance_score, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	tags, err := jsoncol.Encode(article.SectorTags)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	sec, now := nowUnix()
	res, err := repo.db.ExecContext(ctx, query,
		article.Title, article.Source, article.URL, nullUnix(article.PublishedAt),
		entity.Truncate(article.RawContent, entity.MaxRawContentLength), tags,
		string(article.EventType), string(article.Stage), article.Summary,
		article.StrategicNote, article.RelevanceScore, sec)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("Create: LastInsertId: %w", err)
	}
	article.ID = id
	article.CreatedAt = now
	return nil
}

// Get retrieves an article by ID. Returns nil if not found.
func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE id = ? LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return article, nil
}

// List returns filtered articles, newest first.
func (repo *ArticleRepo) List(ctx context.Context, f repository.SignalFilter) ([]*entity.Article, error) {
	clause, args := repo.queryBuilder.BuildWhereClause(f, true)
	// NULL published_at sorts last
	query := `SELECT ` + articleColumns + `
FROM articles
` + clause + `
ORDER BY published_at IS NULL, published_at DESC, relevance_score DESC, id DESC
LIMIT ?`
	args = append(args, repository.LimitOr(f.Limit))
	return repo.query(ctx, "List", query, args...)
}

// ListTopByRelevance returns the highest scoring articles.
func (repo *ArticleRepo) ListTopByRelevance(ctx context.Context, limit int) ([]*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
ORDER BY relevance_score DESC, published_at IS NULL, published_at DESC, id DESC
LIMIT ?`
	return repo.query(ctx, "ListTopByRelevance", query, repository.LimitOr(limit))
}

// ListRecent returns the most recently ingested articles.
func (repo *ArticleRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
ORDER BY created_at DESC, id DESC
LIMIT ?`
	return repo.query(ctx, "ListRecent", query, repository.LimitOr(limit))
}

func (repo *ArticleRepo) query(ctx context.Context, op, query string, args ...any) ([]*entity.Article, error) {
	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: QueryContext: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	// パフォーマンス最適化: メモリ再割り当てを削減するため事前割り当て
	articles := make([]*entity.Article, 0, 100)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: Scan: %w", op, err)
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows.Err: %w", op, err)
	}
	return articles, nil
}
