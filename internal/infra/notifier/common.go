package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"venture-feed/internal/domain/entity"
	"venture-feed/internal/resilience/circuitbreaker"
)

// RateLimitError represents a 429 from a webhook service.
// Alerts are not retried; the caller sees the error and moves on.
type RateLimitError struct {
	RetryAfter time.Duration
	Message    string
}

func (e *RateLimitError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s (retry after %v)", e.Message, e.RetryAfter)
	}
	return fmt.Sprintf("rate limit exceeded (retry after %v)", e.RetryAfter)
}

// ClientError represents a 4xx client error from a webhook service.
type ClientError struct {
	StatusCode int
	Message    string
}

func (e *ClientError) Error() string {
	return e.Message
}

// ServerError represents a 5xx server error from a webhook service.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return e.Message
}

// ErrCircuitOpen indicates the webhook's circuit breaker is rejecting requests.
var ErrCircuitOpen = errors.New("webhook circuit breaker open")

// webhook is the transport shared by the Slack and Discord notifiers.
type webhook struct {
	service        string
	url            string
	client         *http.Client
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// newWebhook paces sends at perSecond with the given burst.
func newWebhook(service, url string, timeout time.Duration, perSecond float64, burst int) *webhook {
	return &webhook{
		service:        service,
		url:            url,
		client:         &http.Client{Timeout: timeout},
		limiter:        rate.NewLimiter(rate.Limit(perSecond), burst),
		circuitBreaker: circuitbreaker.New(circuitbreaker.WebhookConfig(service)),
	}
}

// CircuitOpen reports whether the breaker currently rejects requests.
func (w *webhook) CircuitOpen() bool {
	return w.circuitBreaker.IsOpen()
}

// post paces, then sends payload once through the breaker.
func (w *webhook) post(ctx context.Context, startup *entity.Startup, payload any) error {
	requestID := uuid.New().String()
	logger := slog.With(
		slog.String("request_id", requestID),
		slog.String("service", w.service),
		slog.Int64("startup_id", startup.ID),
		slog.String("startup", startup.Name))

	if err := w.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	_, err := circuitbreaker.Do(w.circuitBreaker, func() (struct{}, error) {
		return struct{}{}, w.send(ctx, payload)
	})
	if err != nil {
		if circuitbreaker.Rejected(err) {
			logger.Warn("webhook circuit breaker open, alert dropped")
			return fmt.Errorf("%s: %w", w.service, ErrCircuitOpen)
		}
		logger.Warn("webhook alert failed", slog.Any("error", err))
		return err
	}
	logger.Info("webhook alert sent")
	return nil
}

func (w *webhook) send(ctx context.Context, payload any) error {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("create http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		// webhook URL にはトークンが含まれるため url.Error の URL を出さない
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return fmt.Errorf("execute http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{
			Message:    w.service + " rate limit exceeded",
			RetryAfter: extractRetryAfter(resp, body),
		}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return &ClientError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API client error: %s", w.service, string(body)),
		}
	case resp.StatusCode >= 500:
		return &ServerError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("%s API server error: %s", w.service, string(body)),
		}
	}
	return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
}

// extractRetryAfter reads retry_after from a JSON body (Discord) or the
// Retry-After header (Slack). Defaults to 5s.
func extractRetryAfter(resp *http.Response, body []byte) time.Duration {
	var payload struct {
		RetryAfter float64 `json:"retry_after"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.RetryAfter > 0 {
		return time.Duration(payload.RetryAfter * float64(time.Second))
	}
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
			return time.Duration(seconds) * time.Second
		}
	}
	return 5 * time.Second
}

// truncate shortens text to maxLength bytes on a rune boundary, appending suffix.
func truncate(text string, maxLength int, suffix string) string {
	if len(text) <= maxLength {
		return text
	}
	cut := maxLength - len(suffix)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + suffix
}

// startupURL is the best page to link for a startup.
func startupURL(s *entity.Startup) string {
	if s.Website != "" {
		return s.Website
	}
	if len(s.Links) > 0 {
		return s.Links[0].URL
	}
	return ""
}

// startupFacts renders sectors, accelerator/batch and university on one line.
func startupFacts(s *entity.Startup) string {
	var parts []string
	if len(s.SectorTags) > 0 {
		parts = append(parts, strings.Join(entity.SectorStrings(s.SectorTags), ", "))
	}
	if s.Accelerator != "" {
		acc := s.Accelerator
		if s.Batch != "" {
			acc += " " + s.Batch
		}
		parts = append(parts, acc)
	}
	if s.University != "" {
		parts = append(parts, s.University)
	}
	parts = append(parts, fmt.Sprintf("score %d", s.OverallScore))
	return strings.Join(parts, " • ")
}
