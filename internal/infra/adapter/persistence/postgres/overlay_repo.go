package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/repository"
)

// ItemRefRepo backs both pins and dismissals; the two tables share a shape.
type ItemRefRepo struct {
	db    *sql.DB
	table string
}

func NewPinRepo(db *sql.DB) repository.ItemRefRepository {
	return &ItemRefRepo{db: db, table: "pins"}
}

func NewDismissedRepo(db *sql.DB) repository.ItemRefRepository {
	return &ItemRefRepo{db: db, table: "dismissed_items"}
}

func (repo *ItemRefRepo) List(ctx context.Context, userID string) ([]entity.ItemRef, error) {
	query := `
SELECT user_id, item_type, item_id, created_at
FROM ` + repo.table + `
WHERE user_id = $1
ORDER BY created_at DESC, item_type, item_id`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("List %s: QueryContext: %w", repo.table, err)
	}
	defer func() { _ = rows.Close() }()

	refs := make([]entity.ItemRef, 0, 16)
	for rows.Next() {
		var (
			ref      entity.ItemRef
			itemType string
		)
		if err := rows.Scan(&ref.UserID, &itemType, &ref.ItemID, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("List %s: Scan: %w", repo.table, err)
		}
		ref.ItemType = entity.ItemType(itemType)
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List %s: rows.Err: %w", repo.table, err)
	}
	return refs, nil
}

func (repo *ItemRefRepo) Add(ctx context.Context, ref entity.ItemRef) error {
	query := `
INSERT INTO ` + repo.table + ` (user_id, item_type, item_id)
VALUES ($1, $2, $3)
ON CONFLICT (user_id, item_type, item_id) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, ref.UserID, string(ref.ItemType), ref.ItemID); err != nil {
		return fmt.Errorf("Add %s: %w", repo.table, err)
	}
	return nil
}

func (repo *ItemRefRepo) Remove(ctx context.Context, ref entity.ItemRef) error {
	query := `DELETE FROM ` + repo.table + ` WHERE user_id = $1 AND item_type = $2 AND item_id = $3`
	if _, err := repo.db.ExecContext(ctx, query, ref.UserID, string(ref.ItemType), ref.ItemID); err != nil {
		return fmt.Errorf("Remove %s: %w", repo.table, err)
	}
	return nil
}

/* ───────── stars ───────── */

type StarRepo struct{ db *sql.DB }

func NewStarRepo(db *sql.DB) repository.StarRepository {
	return &StarRepo{db: db}
}

func (repo *StarRepo) ListStartups(ctx context.Context, userID string) ([]*entity.Startup, error) {
	const query = `
SELECT s.id, s.name, s.website, s.sector_tags, s.founding_team, s.why_interesting, s.moat_note,
       s.featured, s.overall_score, s.signals, s.links, s.accelerator, s.batch, s.university,
       s.cofounder_linkedins, s.created_at, s.updated_at
FROM starred_startups ss
INNER JOIN startups s ON s.id = ss.startup_id
WHERE ss.user_id = $1
ORDER BY ss.created_at DESC, s.id`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("ListStartups: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	startups := make([]*entity.Startup, 0, 16)
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("ListStartups: Scan: %w", err)
		}
		startups = append(startups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStartups: rows.Err: %w", err)
	}
	return startups, nil
}

func (repo *StarRepo) Add(ctx context.Context, userID string, startupID int64) error {
	const query = `
INSERT INTO starred_startups (user_id, startup_id)
VALUES ($1, $2)
ON CONFLICT (user_id, startup_id) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, userID, startupID); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (repo *StarRepo) Remove(ctx context.Context, userID string, startupID int64) error {
	const query = `DELETE FROM starred_startups WHERE user_id = $1 AND startup_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, userID, startupID); err != nil {
		return fmt.Errorf("Remove: %w", err)
	}
	return nil
}

/* ───────── subscriptions ───────── */

type SubscriptionRepo struct{ db *sql.DB }

func NewSubscriptionRepo(db *sql.DB) repository.SubscriptionRepository {
	return &SubscriptionRepo{db: db}
}

func (repo *SubscriptionRepo) List(ctx context.Context, userID string) ([]entity.Subscription, error) {
	const query = `
SELECT user_id, startup_id, created_at
FROM startup_subscriptions
WHERE user_id = $1
ORDER BY created_at DESC, startup_id`
	rows, err := repo.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("List: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	subs := make([]entity.Subscription, 0, 16)
	for rows.Next() {
		var s entity.Subscription
		if err := rows.Scan(&s.UserID, &s.StartupID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("List: Scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: rows.Err: %w", err)
	}
	return subs, nil
}

func (repo *SubscriptionRepo) Add(ctx context.Context, userID string, startupID int64) error {
	const query = `
INSERT INTO startup_subscriptions (user_id, startup_id)
VALUES ($1, $2)
ON CONFLICT (user_id, startup_id) DO NOTHING`
	if _, err := repo.db.ExecContext(ctx, query, userID, startupID); err != nil {
		return fmt.Errorf("Add: %w", err)
	}
	return nil
}

func (repo *SubscriptionRepo) Remove(ctx context.Context, userID string, startupID int64) error {
	const query = `DELETE FROM startup_subscriptions WHERE user_id = $1 AND startup_id = $2`
	if _, err := repo.db.ExecContext(ctx, query, userID, startupID); err != nil {
		return fmt.Errorf("Remove: %w", err)
	}
	return nil
}

func (repo *SubscriptionRepo) Subscribers(ctx context.Context, startupID int64) ([]string, error) {
	const query = `SELECT user_id FROM startup_subscriptions WHERE startup_id = $1 ORDER BY user_id`
	rows, err := repo.db.QueryContext(ctx, query, startupID)
	if err != nil {
		return nil, fmt.Errorf("Subscribers: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("Subscribers: Scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

/* ───────── preferences ───────── */

type PreferenceRepo struct{ db *sql.DB }

func NewPreferenceRepo(db *sql.DB) repository.PreferenceRepository {
	return &PreferenceRepo{db: db}
}

func (repo *PreferenceRepo) Get(ctx context.Context, userID string) (*entity.NotificationPreference, error) {
	const query = `
SELECT user_id, email, digest_enabled, frequency, updated_at
FROM notification_preferences
WHERE user_id = $1`
	var (
		p    entity.NotificationPreference
		freq string
	)
	err := repo.db.QueryRowContext(ctx, query, userID).
		Scan(&p.UserID, &p.Email, &p.DigestEnabled, &freq, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	p.Frequency = entity.DigestFrequency(freq)
	return &p, nil
}

func (repo *PreferenceRepo) Upsert(ctx context.Context, pref *entity.NotificationPreference) error {
	const query = `
INSERT INTO notification_preferences (user_id, email, digest_enabled, frequency, updated_at)
VALUES ($1, $2, $3, $4, now())
ON CONFLICT (user_id) DO UPDATE
SET email = EXCLUDED.email,
    digest_enabled = EXCLUDED.digest_enabled,
    frequency = EXCLUDED.frequency,
    updated_at = now()
RETURNING updated_at`
	err := repo.db.QueryRowContext(ctx, query,
		pref.UserID, pref.Email, pref.DigestEnabled, string(pref.Frequency),
	).Scan(&pref.UpdatedAt)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	return nil
}
