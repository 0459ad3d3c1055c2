package repository

import (
	"context"

	"venture-feed/internal/domain/entity"
)

// ResearchRepository persists classified research papers.
type ResearchRepository interface {
	ExistsByURL(ctx context.Context, url string) (bool, error)
	Create(ctx context.Context, paper *entity.ResearchPaper) error
	List(ctx context.Context, f SignalFilter) ([]*entity.ResearchPaper, error)
}
