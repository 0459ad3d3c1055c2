package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"venture-feed/internal/resilience/circuitbreaker"
	"venture-feed/internal/usecase/ingest"
)

const (
	maxDirectoryBodySize = 10 * 1024 * 1024
	defaultMaxPages      = 200
)

// StatusError is returned for a non-200 response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// ErrBodyTooLarge indicates a directory page exceeded the size limit.
var ErrBodyTooLarge = errors.New("directory page too large")

type directoryPage struct {
	Companies []ingest.Company `json:"companies"`
	NextPage  string           `json:"nextPage"`
}

// DirectoryClient implements ingest.DirectoryFetcher for a JSON directory
// returning {companies, nextPage}. Pages are requested sequentially and
// paced by a token bucket.
type DirectoryClient struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	limiter        *rate.Limiter
	maxPages       int
}

// NewDirectoryClient creates a client. A non-positive rps disables pacing and
// a non-positive maxPages uses the default cap.
func NewDirectoryClient(client *http.Client, rps float64, maxPages int) *DirectoryClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return &DirectoryClient{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.DirectoryConfig()),
		limiter:        limiter,
		maxPages:       maxPages,
	}
}

// FetchCompanies follows nextPage from startURL until it is absent or the
// page cap is reached. Any failed page fails the whole listing.
func (c *DirectoryClient) FetchCompanies(ctx context.Context, startURL string) ([]ingest.Company, error) {
	var companies []ingest.Company
	next := startURL

	for pages := 0; next != ""; pages++ {
		if pages >= c.maxPages {
			slog.Warn("directory page cap reached, stopping",
				slog.String("url", startURL),
				slog.Int("max_pages", c.maxPages),
				slog.Int("companies", len(companies)))
			break
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("FetchCompanies: rate limiter: %w", err)
		}

		page, err := circuitbreaker.Do(c.circuitBreaker, func() (*directoryPage, error) {
			return c.fetchPage(ctx, next)
		})
		if err != nil {
			if circuitbreaker.Rejected(err) {
				slog.Warn("directory circuit breaker open, request rejected",
					slog.String("service", "accelerator-directory"),
					slog.String("url", next))
			}
			return nil, fmt.Errorf("FetchCompanies: page %d: %w", pages+1, err)
		}

		companies = append(companies, page.Companies...)

		next, err = resolveNext(next, page.NextPage)
		if err != nil {
			return nil, fmt.Errorf("FetchCompanies: %w", err)
		}
	}
	return companies, nil
}

func (c *DirectoryClient) fetchPage(ctx context.Context, pageURL string) (*directoryPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: pageURL}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxDirectoryBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if len(body) > maxDirectoryBodySize {
		return nil, ErrBodyTooLarge
	}

	var page directoryPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("decode page: %w", err)
	}
	return &page, nil
}

// resolveNext turns a possibly relative nextPage into an absolute url.
func resolveNext(current, next string) (string, error) {
	if next == "" {
		return "", nil
	}
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("parse nextPage %q: %w", next, err)
	}
	return base.ResolveReference(ref).String(), nil
}
