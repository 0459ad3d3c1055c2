package fetcher

import (
	"errors"
	"fmt"
	"time"

	"venture-feed/internal/pkg/config"
	"venture-feed/internal/usecase/ingest"
	pkgconfig "venture-feed/pkg/config"
)

// ContentFetchConfig controls content enhancement of short feed items.
type ContentFetchConfig struct {
	// Enabled false keeps the feed text as is.
	Enabled bool
	// Threshold is the feed text length at or above which no fetch happens.
	Threshold   int
	Timeout     time.Duration
	MaxBodySize int64 // enforced while reading, not from Content-Length
	// MaxRedirects caps the chain; every hop is checked like the first URL.
	MaxRedirects   int
	DenyPrivateIPs bool
}

const (
	minBodySize  = 1 << 10
	maxBodySize  = 100 << 20
	maxRedirects = 10
)

func DefaultConfig() ContentFetchConfig {
	return ContentFetchConfig{
		Enabled:        true,
		Threshold:      ingest.DefaultContentThreshold,
		Timeout:        10 * time.Second,
		MaxBodySize:    10 << 20,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate reports every out-of-range field at once.
func (c *ContentFetchConfig) Validate() error {
	var errs []error
	if c.Threshold < 0 {
		errs = append(errs, fmt.Errorf("threshold must be non-negative, got %d", c.Threshold))
	}
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		errs = append(errs, fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize))
	}
	if err := config.ValidateIntRange(c.MaxRedirects, 0, maxRedirects); err != nil {
		errs = append(errs, fmt.Errorf("max redirects: %w", err))
	}
	return errors.Join(errs...)
}

// LoadConfigFromEnv reads CONTENT_FETCH_* variables over the defaults.
// Unparseable values fall back to the default; out-of-range values fail validation.
//
//	CONTENT_FETCH_ENABLED          (default: true)
//	CONTENT_FETCH_THRESHOLD        (default: 1500)
//	CONTENT_FETCH_TIMEOUT          (default: 10s)
//	CONTENT_FETCH_MAX_BODY_SIZE    (default: 10485760)
//	CONTENT_FETCH_MAX_REDIRECTS    (default: 5)
//	CONTENT_FETCH_DENY_PRIVATE_IPS (default: true)
func LoadConfigFromEnv() (ContentFetchConfig, error) {
	def := DefaultConfig()
	cfg := ContentFetchConfig{
		Enabled:        pkgconfig.GetEnvBool("CONTENT_FETCH_ENABLED", def.Enabled),
		Threshold:      pkgconfig.GetEnvInt("CONTENT_FETCH_THRESHOLD", def.Threshold),
		Timeout:        pkgconfig.GetEnvDuration("CONTENT_FETCH_TIMEOUT", def.Timeout),
		MaxBodySize:    int64(pkgconfig.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(def.MaxBodySize))),
		MaxRedirects:   pkgconfig.GetEnvInt("CONTENT_FETCH_MAX_REDIRECTS", def.MaxRedirects),
		DenyPrivateIPs: pkgconfig.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", def.DenyPrivateIPs),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("content fetch config: %w", err)
	}
	return cfg, nil
}
