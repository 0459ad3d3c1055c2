package repository

import (
	"context"

	"venture-feed/internal/domain/entity"
)

// ArticleRepository persists classified news articles.
type ArticleRepository interface {
	// ExistsByURL reports whether an article with the url was already ingested.
	ExistsByURL(ctx context.Context, url string) (bool, error)
	// Create inserts the article and sets its ID and CreatedAt.
	Create(ctx context.Context, article *entity.Article) error
	Get(ctx context.Context, id int64) (*entity.Article, error)
	// List returns articles newest first, ties broken by relevance score.
	List(ctx context.Context, f SignalFilter) ([]*entity.Article, error)
	// ListTopByRelevance returns the highest scoring articles.
	ListTopByRelevance(ctx context.Context, limit int) ([]*entity.Article, error)
	// ListRecent returns the most recently ingested articles.
	ListRecent(ctx context.Context, limit int) ([]*entity.Article, error)
}
