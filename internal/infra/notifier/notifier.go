// Package notifier posts new-startup alerts to chat webhooks (Slack, Discord).
package notifier

import (
	"context"

	"venture-feed/internal/domain/entity"
)

// Notifier delivers one new-startup alert. article is the piece of news that
// surfaced the startup and may be nil.
type Notifier interface {
	NotifyStartup(ctx context.Context, startup *entity.Startup, article *entity.Article) error
}
