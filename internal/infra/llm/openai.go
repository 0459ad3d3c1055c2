package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"venture-feed/internal/resilience/circuitbreaker"
)

// OpenAI implements classify.Completer using the Chat Completions API.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	model          string
}

// NewOpenAI creates an OpenAI completer. An empty baseURL uses the public API.
func NewOpenAI(apiKey, model string, timeout time.Duration, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &OpenAI{
		client:         openai.NewClientWithConfig(cfg),
		circuitBreaker: circuitbreaker.New(circuitbreaker.LLMConfig("openai")),
		model:          model,
	}
}

// Complete sends system and user to the model and returns the first choice.
func (o *OpenAI) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	text, err := circuitbreaker.Do(o.circuitBreaker, func() (string, error) {
		return o.doComplete(ctx, system, user, maxTokens)
	})
	if circuitbreaker.Rejected(err) {
		slog.Warn("openai api circuit breaker open, request rejected",
			slog.String("service", o.circuitBreaker.Name()),
			slog.String("state", o.circuitBreaker.State().String()))
		return "", fmt.Errorf("openai api unavailable: %w", err)
	}
	return text, err
}

func (o *OpenAI) doComplete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	requestID := uuid.New().String()
	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	duration := time.Since(start)
	if err != nil {
		recordRequest(ProviderOpenAI, false, duration)
		slog.ErrorContext(ctx, "openai completion failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}
	recordRequest(ProviderOpenAI, true, duration)
	recordTokens(ProviderOpenAI, int64(resp.Usage.PromptTokens), int64(resp.Usage.CompletionTokens))

	// choices が空だと添字アクセスで panic する
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyResponse)
	}
	slog.DebugContext(ctx, "openai completion succeeded",
		slog.String("request_id", requestID),
		slog.String("model", o.model),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
		slog.Duration("duration", duration))
	return resp.Choices[0].Message.Content, nil
}
