package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/jsoncol"
	"venture-feed/internal/repository"
)

const articleColumns = `id, title, source, url, published_at, raw_content, sector_tags,
event_type, stage, summary, strategic_note, relevance_score, created_at`

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *SignalQueryBuilder
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewSignalQueryBuilder(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		a         entity.Article
		published sql.NullTime
		tags      string
		eventType string
		stage     string
	)
	if err := row.Scan(&a.ID, &a.Title, &a.Source, &a.URL, &published, &a.RawContent, &tags,
		&eventType, &stage, &a.Summary, &a.StrategicNote, &a.RelevanceScore, &a.CreatedAt); err != nil {
		return nil, err
	}
	if published.Valid {
		t := published.Time
		a.PublishedAt = &t
	}
	var err error
	if a.SectorTags, err = jsoncol.Tags(tags); err != nil {
		return nil, err
	}
	a.EventType = entity.EventType(eventType)
	a.Stage = entity.Stage(stage)
	return &a, nil
}

func (repo *ArticleRepo) ExistsByURL(ctx context.Context, url string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM articles WHERE url = $1)`
	var exists bool
	if err := repo.db.QueryRowContext(ctx, query, url).Scan(&exists); err != nil {
		return false, fmt.Errorf("ExistsByURL: %w", err)
	}
	return exists, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, article *entity.Article) error {
	const query = `
INSERT INTO articles (title, source, url, published_at, raw_content, sector_tags,
                      event_type, stage, summary, strategic_note, relevance_score)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7, $8, $9, $10, $11)
RETURNING id, created_at`
	tags, err := jsoncol.Encode(article.SectorTags)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	err = repo.db.QueryRowContext(ctx, query,
		article.Title, article.Source, article.URL, nullTime(article.PublishedAt),
		entity.Truncate(article.RawContent, entity.MaxRawContentLength), tags,
		string(article.EventType), string(article.Stage), article.Summary,
		article.StrategicNote, article.RelevanceScore,
	).Scan(&article.ID, &article.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ArticleRepo) Get(ctx context.Context, id int64) (*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
WHERE id = $1
LIMIT 1`
	article, err := scanArticle(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return article, nil
}

func (repo *ArticleRepo) List(ctx context.Context, f repository.SignalFilter) ([]*entity.Article, error) {
	b := repo.queryBuilder.build(f, true)
	limit := b.next(repository.LimitOr(f.Limit))
	query := `SELECT ` + articleColumns + `
FROM articles
` + b.clause() + `
ORDER BY published_at DESC NULLS LAST, relevance_score DESC, id DESC
LIMIT ` + limit
	return repo.query(ctx, "List", query, b.args...)
}

func (repo *ArticleRepo) ListTopByRelevance(ctx context.Context, limit int) ([]*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
ORDER BY relevance_score DESC, published_at DESC NULLS LAST, id DESC
LIMIT $1`
	return repo.query(ctx, "ListTopByRelevance", query, repository.LimitOr(limit))
}

func (repo *ArticleRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Article, error) {
	const query = `SELECT ` + articleColumns + `
FROM articles
ORDER BY created_at DESC, id DESC
LIMIT $1`
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

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
