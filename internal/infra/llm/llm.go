package llm

import (
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go/option"
	"golang.org/x/time/rate"

	"venture-feed/internal/usecase/classify"
)

// NewCompleter builds the completer for cfg.Provider. It returns nil when the
// provider's API key is missing, which leaves classification disabled.
func NewCompleter(cfg Config) classify.Completer {
	key := cfg.APIKey()
	if key == "" {
		slog.Warn("no LLM API key configured, classification disabled",
			slog.String("provider", string(cfg.Provider)))
		return nil
	}

	model := cfg.ModelName()
	slog.Info("LLM completer initialized",
		slog.String("provider", string(cfg.Provider)),
		slog.String("model", model),
		slog.Duration("timeout", cfg.Timeout))

	if cfg.Provider == ProviderOpenAI {
		return NewOpenAI(key, model, cfg.Timeout, cfg.BaseURL)
	}
	var opts []option.RequestOption
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return NewClaude(key, model, cfg.Timeout, opts...)
}

// NewClassifier wires a classifier gateway from cfg, paced by RatePerSec.
func NewClassifier(cfg Config) *classify.Classifier {
	var opts []classify.Option
	if cfg.RatePerSec > 0 {
		opts = append(opts, classify.WithLimiter(rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1)))
	}
	return classify.NewClassifier(NewCompleter(cfg), opts...)
}
