package ingest

import (
	"context"
	"time"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/usecase/classify"
	"venture-feed/internal/usecase/merge"
)

// FeedItem is one normalized entry of an RSS/Atom feed.
type FeedItem struct {
	Title       string
	URL         string
	Content     string
	PublishedAt *time.Time
}

// Company is one entry of an accelerator directory.
type Company struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Slug            string   `json:"slug"`
	Website         string   `json:"website"`
	OneLiner        string   `json:"oneLiner"`
	LongDescription string   `json:"longDescription"`
	URL             string   `json:"url"`
	Batch           string   `json:"batch"`
	Tags            []string `json:"tags"`
}

// FeedFetcher is an interface for fetching RSS/Atom feeds from a URL.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string) ([]FeedItem, error)
}

// DirectoryFetcher lists every company of a paginated accelerator directory.
type DirectoryFetcher interface {
	FetchCompanies(ctx context.Context, url string) ([]Company, error)
}

// ContentFetcher fetches the readable text of an article page. Any error
// makes the pipeline keep the feed text.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

// Classifier is the subset of the classifier gateway the pipelines use.
type Classifier interface {
	ClassifyArticle(ctx context.Context, title, content, trackedStartup string) (*classify.ArticleClassification, error)
	ClassifyResearch(ctx context.Context, title, abstract string) (*classify.ResearchClassification, error)
	ExtractStartups(ctx context.Context, title, content string) []classify.StartupMention
}

// StartupResolver folds observations into the startup store.
type StartupResolver interface {
	ResolveMention(ctx context.Context, m merge.Mention) (*entity.Startup, merge.Outcome, error)
	ResolveAccelerator(ctx context.Context, e merge.AcceleratorEntry) (*entity.Startup, merge.Outcome, error)
}

// Alerter is told about startups discovered for the first time.
// Implementations must not block the run.
type Alerter interface {
	NotifyNewStartup(ctx context.Context, startup *entity.Startup, article *entity.Article) error
}

var (
	_ Classifier      = (*classify.Classifier)(nil)
	_ StartupResolver = (*merge.Resolver)(nil)
)
