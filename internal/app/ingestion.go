// Package app assembles the ingestion stack shared by the API server, the
// scheduled worker and the one-shot CLI.
package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"venture-feed/internal/config"
	"venture-feed/internal/infra/adapter/persistence"
	"venture-feed/internal/infra/feed"
	"venture-feed/internal/infra/fetcher"
	"venture-feed/internal/infra/llm"
	"venture-feed/internal/infra/notifier"
	"venture-feed/internal/usecase/classify"
	"venture-feed/internal/usecase/ingest"
	"venture-feed/internal/usecase/merge"
	"venture-feed/internal/usecase/notify"
)

// Options tunes the parts of the stack the binaries configure differently.
type Options struct {
	NotifyMaxConcurrent int
	// RunTimeout bounds each ingestion run. Zero means no bound.
	RunTimeout time.Duration
}

// Ingestion is the assembled pipeline.
type Ingestion struct {
	Service    *ingest.Service
	Runner     *ingest.Runner
	Resolver   *merge.Resolver
	Classifier *classify.Classifier
	Notify     *notify.Service
}

// NewIngestion builds the pipeline from the environment. A missing LLM key
// or a bad content fetch config degrades the pipeline instead of failing;
// unreadable sources or an unknown LLM provider are errors.
func NewIngestion(logger *slog.Logger, repos *persistence.Repositories, opts Options) (*Ingestion, error) {
	sources, err := config.LoadSourcesFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}

	llmCfg, err := llm.LoadConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("load LLM config: %w", err)
	}
	classifier := llm.NewClassifier(llmCfg)
	if !classifier.Enabled() {
		logger.Warn("classifier disabled, items will be stored with defaults")
	}

	resolver := merge.NewResolver(repos.Startups, logger)
	alerts := NewNotifyService(logger, opts.NotifyMaxConcurrent)
	client := NewHTTPClient(30 * time.Second)

	svc := &ingest.Service{
		Articles:         repos.Articles,
		Papers:           repos.Papers,
		Events:           repos.Events,
		Classifier:       classifier,
		Resolver:         resolver,
		Feeds:            feed.NewRSSFetcher(client),
		Directory:        feed.NewDirectoryClient(client, sources.Accelerator.RequestsPerSecond, sources.Accelerator.MaxPages),
		Alerter:          alerts,
		Sources:          sources,
		ContentThreshold: ingest.DefaultContentThreshold,
	}

	contentCfg, err := fetcher.LoadConfigFromEnv()
	switch {
	case err != nil:
		logger.Warn("content fetching disabled, invalid configuration", slog.Any("error", err))
	case !contentCfg.Enabled:
		logger.Info("content fetching disabled")
	default:
		svc.Content = fetcher.NewReadabilityFetcher(contentCfg)
		svc.ContentThreshold = contentCfg.Threshold
		logger.Info("content fetching enabled",
			slog.Int("threshold", contentCfg.Threshold),
			slog.Duration("timeout", contentCfg.Timeout))
	}

	logger.Info("ingestion configured",
		slog.Int("news_feeds", len(sources.NewsFeeds)),
		slog.Int("event_templates", len(sources.Events)),
		slog.Bool("classifier_enabled", classifier.Enabled()),
		slog.Duration("run_timeout", opts.RunTimeout))

	return &Ingestion{
		Service:    svc,
		Runner:     ingest.NewRunner(svc, opts.RunTimeout),
		Resolver:   resolver,
		Classifier: classifier,
		Notify:     alerts,
	}, nil
}

// Shutdown drains in-flight alerts.
func (i *Ingestion) Shutdown(ctx context.Context) error {
	return i.Notify.Shutdown(ctx)
}

// NewNotifyService builds the alert fan-out over the enabled webhook channels.
func NewNotifyService(logger *slog.Logger, maxConcurrent int) *notify.Service {
	var channels []notify.Channel
	if cfg := notifier.LoadSlackConfig(logger); cfg.Enabled {
		channels = append(channels, notify.NewSlackChannel(cfg))
	}
	if cfg := notifier.LoadDiscordConfig(logger); cfg.Enabled {
		channels = append(channels, notify.NewDiscordChannel(cfg))
	}
	logger.Info("startup alerts configured",
		slog.Int("channels", len(channels)),
		slog.Int("max_concurrent", maxConcurrent))
	return notify.NewService(channels, maxConcurrent)
}

// NewHTTPClient returns a pooled client that requires TLS 1.2 or newer.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
		},
	}
}
