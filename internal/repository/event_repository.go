package repository

import (
	"context"

	"venture-feed/internal/domain/entity"
)

// EventRepository persists curated events keyed by url.
type EventRepository interface {
	// Upsert inserts the event or replaces every field of the row with the same url.
	Upsert(ctx context.Context, event *entity.Event) error
	// DeleteByURLs removes rows whose url is listed and reports how many went.
	DeleteByURLs(ctx context.Context, urls []string) (int64, error)
	List(ctx context.Context, f EventFilter) ([]*entity.Event, error)
}
