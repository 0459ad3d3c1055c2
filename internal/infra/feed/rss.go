// Package feed fetches the external inputs of the ingestion runs: RSS/Atom
// feeds via gofeed and the paginated accelerator directory API.
package feed

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"venture-feed/internal/resilience/circuitbreaker"
	"venture-feed/internal/usecase/ingest"
)

// UserAgent identifies the crawler to upstream servers.
const UserAgent = "VentureFeedBot/1.0"

// RSSFetcher implements ingest.FeedFetcher using the gofeed library.
// Failures are not retried; the circuit breaker only fails fast once a
// run of sources keeps failing.
type RSSFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewRSSFetcher creates a new RSSFetcher with the given HTTP client.
func NewRSSFetcher(client *http.Client) *RSSFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &RSSFetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
	}
}

// Fetch retrieves and parses an RSS/Atom feed from the given URL.
func (f *RSSFetcher) Fetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	items, err := circuitbreaker.Do(f.circuitBreaker, func() ([]ingest.FeedItem, error) {
		return f.doFetch(ctx, feedURL)
	})
	if circuitbreaker.Rejected(err) {
		slog.Warn("feed fetch circuit breaker open, request rejected",
			slog.String("service", "feed-fetch"),
			slog.String("url", feedURL),
			slog.String("state", f.circuitBreaker.State().String()))
	}
	return items, err
}

// doFetch performs the actual feed fetch without the circuit breaker.
func (f *RSSFetcher) doFetch(ctx context.Context, feedURL string) ([]ingest.FeedItem, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = UserAgent
	fp.Client = f.client

	parsed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]ingest.FeedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		items = append(items, toFeedItem(it))
	}
	return items, nil
}

func toFeedItem(it *gofeed.Item) ingest.FeedItem {
	link := strings.TrimSpace(it.Link)
	if link == "" && len(it.Links) > 0 {
		link = strings.TrimSpace(it.Links[0])
	}
	if link == "" {
		link = strings.TrimSpace(it.GUID)
	}

	// Content優先、なければDescriptionを使用
	content := it.Content
	if content == "" {
		content = it.Description
	}

	var published *time.Time
	switch {
	case it.PublishedParsed != nil:
		t := it.PublishedParsed.UTC()
		published = &t
	case it.UpdatedParsed != nil:
		t := it.UpdatedParsed.UTC()
		published = &t
	}

	return ingest.FeedItem{
		Title:       strings.TrimSpace(it.Title),
		URL:         link,
		Content:     PlainText(content),
		PublishedAt: published,
	}
}
