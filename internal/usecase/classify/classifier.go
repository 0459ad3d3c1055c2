// Package classify turns raw feed text into structured, clamped
// classifications by prompting an LLM and validating its JSON answer.
package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/observability/metrics"
	"venture-feed/internal/observability/tracing"
)

// Completer sends one system prompt and one user message to a language model
// and returns the text of the reply.
type Completer interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}

// Per-classifier budgets.
const (
	articleContentBudget  = 12000
	articleMaxTokens      = 1024
	researchContentBudget = 4000
	researchMaxTokens     = 512
	startupContentBudget  = 8000
	startupMaxTokens      = 1024
)

// Classifier is the gateway to the three LLM-backed classifiers.
// A nil completer makes every call fail with ErrNoCompleter.
type Classifier struct {
	completer Completer
	limiter   *rate.Limiter
	logger    *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithLimiter paces classifier calls.
func WithLimiter(l *rate.Limiter) Option {
	return func(c *Classifier) { c.limiter = l }
}

// WithLogger sets the logger used for call diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Classifier) { c.logger = l }
}

// NewClassifier builds a gateway over completer.
func NewClassifier(completer Completer, opts ...Option) *Classifier {
	c := &Classifier{completer: completer, logger: slog.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Enabled reports whether a completer is configured.
func (c *Classifier) Enabled() bool {
	return c != nil && c.completer != nil
}

// complete runs a single model call and returns the fence-stripped text.
func (c *Classifier) complete(ctx context.Context, op, system, user string, maxTokens int) (string, error) {
	if !c.Enabled() {
		return "", &ClassificationError{Op: op, Err: ErrNoCompleter}
	}

	requestID := uuid.NewString()
	ctx, span := tracing.Start(ctx, "classify."+op,
		attribute.String("classifier", op),
		attribute.String("request_id", requestID),
		attribute.Int("input_chars", len(user)),
	)
	defer span.End()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			tracing.Fail(span, err, "rate limiter")
			return "", &ClassificationError{Op: op, Err: fmt.Errorf("rate limiter: %w", err)}
		}
	}

	start := time.Now()
	text, err := c.completer.Complete(ctx, system, user, maxTokens)
	duration := time.Since(start)
	if err == nil && strings.TrimSpace(text) == "" {
		err = ErrEmptyResponse
	}
	metrics.RecordClassification(op, err == nil, duration)

	if err != nil {
		tracing.Fail(span, err, "completion failed")
		c.logger.WarnContext(ctx, "classifier call failed",
			slog.String("classifier", op),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", &ClassificationError{Op: op, Err: err}
	}

	c.logger.DebugContext(ctx, "classifier call completed",
		slog.String("classifier", op),
		slog.String("request_id", requestID),
		slog.Duration("duration", duration),
		slog.Int("response_chars", len(text)))
	return StripFence(text), nil
}

func userMessage(title, label, body string, budget int) string {
	return "Title: " + title + "\n\n" + label + ": " + entity.Truncate(body, budget)
}
