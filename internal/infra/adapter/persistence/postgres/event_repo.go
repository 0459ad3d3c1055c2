package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/jsoncol"
	"venture-feed/internal/repository"
)

const dateLayout = "2006-01-02"

type EventRepo struct{ db *sql.DB }

func NewEventRepo(db *sql.DB) repository.EventRepository {
	return &EventRepo{db: db}
}

func (repo *EventRepo) Upsert(ctx context.Context, event *entity.Event) error {
	const query = `
INSERT INTO events (title, date, city, url, registration_url, source, event_type, sector_tags)
VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8::jsonb)
ON CONFLICT (url) DO UPDATE
SET title = EXCLUDED.title,
    date = EXCLUDED.date,
    city = EXCLUDED.city,
    registration_url = EXCLUDED.registration_url,
    source = EXCLUDED.source,
    event_type = EXCLUDED.event_type,
    sector_tags = EXCLUDED.sector_tags
RETURNING id, created_at`
	tags, err := jsoncol.Encode(event.SectorTags)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	err = repo.db.QueryRowContext(ctx, query,
		event.Title, event.Date.Format(dateLayout), event.City, event.URL,
		event.RegistrationURL, event.Source, event.EventType, tags,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}

func (repo *EventRepo) DeleteByURLs(ctx context.Context, urls []string) (int64, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(urls))
	args := make([]any, len(urls))
	for i, u := range urls {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = u
	}
	query := `DELETE FROM events WHERE url IN (` + strings.Join(placeholders, ", ") + `)`
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("DeleteByURLs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByURLs: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *EventRepo) List(ctx context.Context, f repository.EventFilter) ([]*entity.Event, error) {
	b := &whereBuilder{}
	if f.City != "" {
		b.add("lower(city) = lower($%d)", f.City)
	}
	if f.Since != nil {
		b.add("date >= $%d::date", f.Since.Format(dateLayout))
	}
	if f.Until != nil {
		b.add("date < $%d::date", f.Until.Format(dateLayout))
	}
	order := "date ASC, id"
	if f.Past {
		order = "date DESC, id"
	}
	limit := b.next(repository.LimitOr(f.Limit))
	query := `
SELECT id, title, date, city, url, registration_url, source, event_type, sector_tags, created_at
FROM events
` + b.clause() + `
ORDER BY ` + order + `
LIMIT ` + limit

	rows, err := repo.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]*entity.Event, 0, 16)
	for rows.Next() {
		var (
			e    entity.Event
			tags string
		)
		if err := rows.Scan(&e.ID, &e.Title, &e.Date, &e.City, &e.URL, &e.RegistrationURL,
			&e.Source, &e.EventType, &tags, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		if e.SectorTags, err = jsoncol.Tags(tags); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return events, nil
}
