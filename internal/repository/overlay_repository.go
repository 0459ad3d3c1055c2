package repository

import (
	"context"

	"venture-feed/internal/domain/entity"
)

// ItemRefRepository stores per-user (type, id) toggles such as pins and dismissals.
type ItemRefRepository interface {
	List(ctx context.Context, userID string) ([]entity.ItemRef, error)
	// Add is idempotent on (user, type, id).
	Add(ctx context.Context, ref entity.ItemRef) error
	Remove(ctx context.Context, ref entity.ItemRef) error
}

// StarRepository stores starred startups per user.
type StarRepository interface {
	ListStartups(ctx context.Context, userID string) ([]*entity.Startup, error)
	Add(ctx context.Context, userID string, startupID int64) error
	Remove(ctx context.Context, userID string, startupID int64) error
}

// SubscriptionRepository stores per-startup alert subscriptions.
type SubscriptionRepository interface {
	List(ctx context.Context, userID string) ([]entity.Subscription, error)
	Add(ctx context.Context, userID string, startupID int64) error
	Remove(ctx context.Context, userID string, startupID int64) error
	// Subscribers returns the users subscribed to the startup.
	Subscribers(ctx context.Context, startupID int64) ([]string, error)
}

// PreferenceRepository stores notification preferences.
type PreferenceRepository interface {
	// Get returns nil, nil when the user has no stored preferences.
	Get(ctx context.Context, userID string) (*entity.NotificationPreference, error)
	Upsert(ctx context.Context, pref *entity.NotificationPreference) error
}
