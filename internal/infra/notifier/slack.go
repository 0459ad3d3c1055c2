package notifier

import (
	"context"
	"fmt"
	"time"

	"venture-feed/internal/domain/entity"
)

// SlackConfig contains configuration for Slack webhook notifications.
type SlackConfig struct {
	Enabled bool
	// WebhookURL includes the authentication token. Never log it.
	WebhookURL string
	Timeout    time.Duration
}

// SlackNotifier posts alerts to a Slack Incoming Webhook using Block Kit.
// It is paced at 1 req/s, Slack's documented webhook limit.
type SlackNotifier struct {
	*webhook
}

// NewSlackNotifier creates a new SlackNotifier.
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	return &SlackNotifier{
		webhook: newWebhook("slack", config.WebhookURL, config.Timeout, 1.0, 1),
	}
}

// SlackWebhookPayload is the JSON body sent to the webhook.
type SlackWebhookPayload struct {
	Text   string       `json:"text"` // fallback for notifications
	Blocks []SlackBlock `json:"blocks"`
}

// SlackBlock represents a Slack Block Kit block.
type SlackBlock struct {
	Type     string            `json:"type"`
	Text     *SlackTextObject  `json:"text,omitempty"`
	Elements []SlackTextObject `json:"elements,omitempty"`
}

// SlackTextObject represents a text object in Slack Block Kit.
type SlackTextObject struct {
	Type string `json:"type"` // "mrkdwn" or "plain_text"
	Text string `json:"text"`
}

// Block Kit limits
const (
	maxSectionTextLength = 3000
	maxContextTextLength = 2000
	maxFallbackLength    = 150

	slackTruncationSuffix = "..."
)

// BuildSlackPayload renders a new-startup alert.
//
//	section: *<website|Name>* + why interesting
//	context: sectors • accelerator batch • score, then the source article
func BuildSlackPayload(startup *entity.Startup, article *entity.Article) SlackWebhookPayload {
	fallback := truncate("New startup: "+startup.Name, maxFallbackLength, slackTruncationSuffix)

	title := "*" + startup.Name + "*"
	if u := startupURL(startup); u != "" {
		title = fmt.Sprintf("*<%s|%s>*", u, startup.Name)
	}
	sectionText := title
	if startup.WhyInteresting != "" {
		sectionText += "\n\n" + startup.WhyInteresting
	}
	sectionText = truncate(sectionText, maxSectionTextLength, slackTruncationSuffix)

	elements := []SlackTextObject{{Type: "mrkdwn", Text: truncate(startupFacts(startup), maxContextTextLength, slackTruncationSuffix)}}
	if article != nil && article.URL != "" {
		via := fmt.Sprintf("via <%s|%s>", article.URL, article.Title)
		if article.Source != "" {
			via += " (" + article.Source + ")"
		}
		elements = append(elements, SlackTextObject{Type: "mrkdwn", Text: truncate(via, maxContextTextLength, slackTruncationSuffix)})
	}

	return SlackWebhookPayload{
		Text: fallback,
		Blocks: []SlackBlock{
			{Type: "section", Text: &SlackTextObject{Type: "mrkdwn", Text: sectionText}},
			{Type: "context", Elements: elements},
		},
	}
}

// NotifyStartup sends one alert. Failures are returned, never retried.
func (s *SlackNotifier) NotifyStartup(ctx context.Context, startup *entity.Startup, article *entity.Article) error {
	return s.post(ctx, startup, BuildSlackPayload(startup, article))
}
