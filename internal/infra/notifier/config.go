package notifier

import (
	"log/slog"
	"net/url"
	"strings"
	"time"

	pkgconfig "venture-feed/pkg/config"
)

const defaultWebhookTimeout = 30 * time.Second

// webhookURLError explains why a webhook URL was refused. Empty means valid.
func webhookURLError(raw, host, pathPrefix string) string {
	if raw == "" {
		return "webhook URL is empty"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "webhook URL is malformed"
	}
	switch {
	case u.Scheme != "https":
		return "webhook URL must use https"
	case u.Host != host:
		return "webhook host must be " + host
	case !strings.HasPrefix(u.Path, pathPrefix):
		return "webhook path must start with " + pathPrefix
	}
	return ""
}

// LoadSlackConfig reads SLACK_ENABLED and SLACK_WEBHOOK_URL. An enabled
// channel with an unusable URL is disabled with a warning instead of failing
// startup. The URL itself is never logged.
func LoadSlackConfig(logger *slog.Logger) SlackConfig {
	if !pkgconfig.GetEnvBool("SLACK_ENABLED", false) {
		return SlackConfig{}
	}
	raw := strings.TrimSpace(pkgconfig.GetEnvString("SLACK_WEBHOOK_URL", ""))
	if msg := webhookURLError(raw, "hooks.slack.com", "/services/"); msg != "" {
		logger.Warn("slack alerts disabled", slog.String("reason", msg))
		return SlackConfig{}
	}
	return SlackConfig{Enabled: true, WebhookURL: raw, Timeout: defaultWebhookTimeout}
}

// LoadDiscordConfig reads DISCORD_ENABLED and DISCORD_WEBHOOK_URL with the
// same rules as LoadSlackConfig.
func LoadDiscordConfig(logger *slog.Logger) DiscordConfig {
	if !pkgconfig.GetEnvBool("DISCORD_ENABLED", false) {
		return DiscordConfig{}
	}
	raw := strings.TrimSpace(pkgconfig.GetEnvString("DISCORD_WEBHOOK_URL", ""))
	if msg := webhookURLError(raw, "discord.com", "/api/webhooks/"); msg != "" {
		logger.Warn("discord alerts disabled", slog.String("reason", msg))
		return DiscordConfig{}
	}
	return DiscordConfig{Enabled: true, WebhookURL: raw, Timeout: defaultWebhookTimeout}
}
