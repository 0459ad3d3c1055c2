package notifier

import (
	"context"
	"strconv"
	"strings"
	"time"

	"venture-feed/internal/domain/entity"
)

// DiscordConfig contains configuration for Discord webhook notifications.
type DiscordConfig struct {
	Enabled bool
	// WebhookURL includes the authentication token. Never log it.
	WebhookURL string
	Timeout    time.Duration
}

// DiscordNotifier posts alerts as Discord embeds.
// Discord allows 30 webhook requests per minute, so it is paced at 0.5 req/s with a burst of 3.
type DiscordNotifier struct {
	*webhook
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(config DiscordConfig) *DiscordNotifier {
	return &DiscordNotifier{
		webhook: newWebhook("discord", config.WebhookURL, config.Timeout, 0.5, 3),
	}
}

// DiscordWebhookPayload represents the JSON payload sent to Discord webhook.
type DiscordWebhookPayload struct {
	Embeds []DiscordEmbed `json:"embeds"`
}

// DiscordEmbed represents a Discord embed message.
type DiscordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description,omitempty"`
	URL         string              `json:"url,omitempty"`
	Color       int                 `json:"color"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
	Footer      *DiscordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

// DiscordEmbedField is one name/value row of an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// DiscordEmbedFooter represents the footer of a Discord embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"`
}

const (
	maxTitleLength       = 256
	maxDescriptionLength = 4096
	maxFieldValueLength  = 1024
	maxFooterLength      = 2048
	truncationSuffix     = "..."

	// Discord blue (#5865F2)
	discordBlueColor = 5793266
)

// BuildDiscordPayload renders a new-startup alert as a single embed.
func BuildDiscordPayload(startup *entity.Startup, article *entity.Article) DiscordWebhookPayload {
	embed := DiscordEmbed{
		Title:       truncate(startup.Name, maxTitleLength, truncationSuffix),
		Description: truncate(startup.WhyInteresting, maxDescriptionLength, truncationSuffix),
		URL:         startupURL(startup),
		Color:       discordBlueColor,
		Fields: []DiscordEmbedField{
			{Name: "Score", Value: strconv.Itoa(startup.OverallScore), Inline: true},
		},
	}
	if len(startup.SectorTags) > 0 {
		embed.Fields = append(embed.Fields, DiscordEmbedField{
			Name:   "Sectors",
			Value:  truncate(strings.Join(entity.SectorStrings(startup.SectorTags), ", "), maxFieldValueLength, truncationSuffix),
			Inline: true,
		})
	}
	if startup.Accelerator != "" {
		embed.Fields = append(embed.Fields, DiscordEmbedField{
			Name:   "Accelerator",
			Value:  strings.TrimSpace(startup.Accelerator + " " + startup.Batch),
			Inline: true,
		})
	}
	if startup.University != "" {
		embed.Fields = append(embed.Fields, DiscordEmbedField{Name: "University", Value: startup.University, Inline: true})
	}
	if article != nil && article.Title != "" {
		footer := article.Title
		if article.Source != "" {
			footer = article.Source + ": " + footer
		}
		embed.Footer = &DiscordEmbedFooter{Text: truncate(footer, maxFooterLength, truncationSuffix)}
	}
	if !startup.CreatedAt.IsZero() {
		embed.Timestamp = startup.CreatedAt.UTC().Format(time.RFC3339)
	}
	return DiscordWebhookPayload{Embeds: []DiscordEmbed{embed}}
}

// NotifyStartup sends one alert. Failures are returned, never retried.
func (d *DiscordNotifier) NotifyStartup(ctx context.Context, startup *entity.Startup, article *entity.Article) error {
	return d.post(ctx, startup, BuildDiscordPayload(startup, article))
}
