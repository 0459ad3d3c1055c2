package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"venture-feed/internal/resilience/circuitbreaker"
)

// ErrEmptyResponse indicates the provider returned no text content.
var ErrEmptyResponse = errors.New("llm returned empty response")

// Claude implements classify.Completer using Anthropic's Messages API.
// Calls go through a circuit breaker and are never retried.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	model          string
	timeout        time.Duration
}

// NewClaude creates a Claude completer. Extra request options are appended
// after the defaults.
func NewClaude(apiKey, model string, timeout time.Duration, opts ...option.RequestOption) *Claude {
	base := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	return &Claude{
		client:         anthropic.NewClient(append(base, opts...)...),
		circuitBreaker: circuitbreaker.New(circuitbreaker.LLMConfig("claude")),
		model:          model,
		timeout:        timeout,
	}
}

// Complete sends system and user to the model and returns the concatenated text blocks.
func (c *Claude) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	text, err := circuitbreaker.Do(c.circuitBreaker, func() (string, error) {
		return c.doComplete(ctx, system, user, maxTokens)
	})
	if circuitbreaker.Rejected(err) {
		slog.Warn("claude api circuit breaker open, request rejected",
			slog.String("service", c.circuitBreaker.Name()),
			slog.String("state", c.circuitBreaker.State().String()))
		return "", fmt.Errorf("claude api unavailable: %w", err)
	}
	return text, err
}

func (c *Claude) doComplete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	requestID := uuid.New().String()
	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	duration := time.Since(start)
	if err != nil {
		recordRequest(ProviderClaude, false, duration)
		slog.ErrorContext(ctx, "claude completion failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	var b strings.Builder
	for _, block := range message.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	recordRequest(ProviderClaude, true, duration)
	recordTokens(ProviderClaude, message.Usage.InputTokens, message.Usage.OutputTokens)

	if b.Len() == 0 {
		return "", fmt.Errorf("claude: %w", ErrEmptyResponse)
	}
	slog.DebugContext(ctx, "claude completion succeeded",
		slog.String("request_id", requestID),
		slog.String("model", c.model),
		slog.Int64("output_tokens", message.Usage.OutputTokens),
		slog.Duration("duration", duration))
	return b.String(), nil
}
