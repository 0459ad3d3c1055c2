package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/adapter/persistence/jsoncol"
	"venture-feed/internal/repository"
)

const dateLayout = "2006-01-02"

// EventRepo implements the EventRepository interface using SQLite.
type EventRepo struct{ db *sql.DB }

// NewEventRepo creates a new SQLite-backed event repository.
func NewEventRepo(db *sql.DB) repository.EventRepository {
	return &EventRepo{db: db}
}

func (repo *EventRepo) Upsert(ctx context.Context, event *entity.Event) error {
	const query = `
INSERT INTO events (title, date, city, url, registration_url, source, event_type, sector_tags, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (url) DO UPDATE
SET title = excluded.title,
    date = excluded.date,
    city = excluded.city,
    registration_url = excluded.registration_url,
    source = excluded.source,
    event_type = excluded.event_type,
    sector_tags = excluded.sector_tags
RETURNING id, created_at`
	tags, err := jsoncol.Encode(event.SectorTags)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	sec, _ := nowUnix()
	var created int64
	err = repo.db.QueryRowContext(ctx, query,
		event.Title, event.Date.Format(dateLayout), event.City, event.URL,
		event.RegistrationURL, event.Source, event.EventType, tags, sec,
	).Scan(&event.ID, &created)
	if err != nil {
		return fmt.Errorf("Upsert: QueryRowContext: %w", err)
	}
	event.CreatedAt = fromUnix(created)
	return nil
}

func (repo *EventRepo) DeleteByURLs(ctx context.Context, urls []string) (int64, error) {
	if len(urls) == 0 {
		return 0, nil
	}
	args := make([]any, len(urls))
	for i, u := range urls {
		args[i] = u
	}
	query := `DELETE FROM events WHERE url IN (?` + strings.Repeat(", ?", len(urls)-1) + `)`
	res, err := repo.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("DeleteByURLs: ExecContext: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteByURLs: RowsAffected: %w", err)
	}
	return n, nil
}

func (repo *EventRepo) List(ctx context.Context, f repository.EventFilter) ([]*entity.Event, error) {
	var (
		conditions []string
		args       []any
	)
	if f.City != "" {
		conditions = append(conditions, "lower(city) = lower(?)")
		args = append(args, f.City)
	}
	// ISO dates compare correctly as text
	if f.Since != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, f.Since.Format(dateLayout))
	}
	if f.Until != nil {
		conditions = append(conditions, "date < ?")
		args = append(args, f.Until.Format(dateLayout))
	}
	order := "date ASC, id"
	if f.Past {
		order = "date DESC, id"
	}
	query := `
SELECT id, title, date, city, url, registration_url, source, event_type, sector_tags, created_at
FROM events
` + where(conditions) + `
ORDER BY ` + order + `
LIMIT ?`
	args = append(args, repository.LimitOr(f.Limit))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	events := make([]*entity.Event, 0, 16)
	for rows.Next() {
		var (
			e          entity.Event
			date, tags string
			created    int64
		)
		if err := rows.Scan(&e.ID, &e.Title, &date, &e.City, &e.URL, &e.RegistrationURL,
			&e.Source, &e.EventType, &tags, &created); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		if e.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("List: date %q: %w", date, err)
		}
		if e.SectorTags, err = jsoncol.Tags(tags); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		e.CreatedAt = fromUnix(created)
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return events, nil
}
