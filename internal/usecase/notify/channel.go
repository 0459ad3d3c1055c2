// Package notify fans new-startup alerts out to the enabled chat channels
// without blocking the ingestion run that discovered the startup.
package notify

import (
	"context"
	"errors"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/infra/notifier"
)

var (
	ErrChannelDisabled = errors.New("channel is disabled")
	// ErrInvalidStartup rejects a nil startup or one without a name.
	ErrInvalidStartup = errors.New("invalid startup data")
)

// Channel is one alert destination.
// Implementations must be safe for concurrent use and must not retry.
type Channel interface {
	// Name is the lowercase channel id used in logs and metric labels.
	Name() string
	IsEnabled() bool
	// CircuitOpen reports whether the channel is currently rejecting sends.
	CircuitOpen() bool
	Send(ctx context.Context, startup *entity.Startup, article *entity.Article) error
}

// webhookNotifier is satisfied by the Slack and Discord notifiers.
type webhookNotifier interface {
	notifier.Notifier
	CircuitOpen() bool
}

// WebhookChannel adapts a webhook notifier to Channel.
type WebhookChannel struct {
	name     string
	notifier notifier.Notifier
	enabled  bool
}

// NewSlackChannel creates the Slack channel. A disabled config yields a channel that refuses every send.
func NewSlackChannel(config notifier.SlackConfig) *WebhookChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewSlackNotifier(config)
	}
	return &WebhookChannel{name: "slack", notifier: n, enabled: config.Enabled}
}

// NewDiscordChannel creates the Discord channel. A disabled config yields a channel that refuses every send.
func NewDiscordChannel(config notifier.DiscordConfig) *WebhookChannel {
	var n notifier.Notifier
	if config.Enabled {
		n = notifier.NewDiscordNotifier(config)
	}
	return &WebhookChannel{name: "discord", notifier: n, enabled: config.Enabled}
}

func (c *WebhookChannel) Name() string { return c.name }

func (c *WebhookChannel) IsEnabled() bool { return c.enabled }

func (c *WebhookChannel) CircuitOpen() bool {
	if w, ok := c.notifier.(webhookNotifier); ok {
		return w.CircuitOpen()
	}
	return false
}

// Send validates the input and delegates to the notifier.
func (c *WebhookChannel) Send(ctx context.Context, startup *entity.Startup, article *entity.Article) error {
	if !c.enabled {
		return ErrChannelDisabled
	}
	if startup == nil || startup.Name == "" {
		return ErrInvalidStartup
	}
	return c.notifier.NotifyStartup(ctx, startup, article)
}
