// Package llm adapts the Anthropic and OpenAI chat APIs to the single
// Complete call the classifier gateway needs.
package llm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"

	pkgconfig "venture-feed/pkg/config"
)

// Provider names a completion backend.
type Provider string

const (
	ProviderClaude Provider = "claude"
	ProviderOpenAI Provider = "openai"
)

// ErrUnknownProvider is returned for an unsupported LLM_PROVIDER value.
var ErrUnknownProvider = errors.New("unknown LLM provider")

// Config selects and tunes the completion backend.
type Config struct {
	Provider        Provider
	AnthropicAPIKey string
	OpenAIAPIKey    string
	// Model overrides the provider default when set.
	Model string
	// Timeout bounds a single completion call.
	Timeout time.Duration
	// RatePerSec paces classifier calls. Zero disables pacing.
	RatePerSec float64
	// BaseURL points the client at a different API host (proxies, tests).
	BaseURL string
}

// DefaultConfig returns the Claude defaults with no keys.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderClaude,
		Timeout:  60 * time.Second,
	}
}

// LoadConfigFromEnv reads LLM_PROVIDER, ANTHROPIC_API_KEY, OPENAI_API_KEY,
// LLM_MODEL, LLM_TIMEOUT, LLM_RATE_PER_SEC and LLM_BASE_URL.
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		Provider:        Provider(strings.ToLower(strings.TrimSpace(pkgconfig.GetEnvString("LLM_PROVIDER", string(def.Provider))))),
		AnthropicAPIKey: strings.TrimSpace(pkgconfig.GetEnvString("ANTHROPIC_API_KEY", "")),
		OpenAIAPIKey:    strings.TrimSpace(pkgconfig.GetEnvString("OPENAI_API_KEY", "")),
		Model:           strings.TrimSpace(pkgconfig.GetEnvString("LLM_MODEL", "")),
		Timeout:         pkgconfig.GetEnvDuration("LLM_TIMEOUT", def.Timeout),
		BaseURL:         strings.TrimSpace(pkgconfig.GetEnvString("LLM_BASE_URL", "")),
	}
	rate, err := parseRate(pkgconfig.GetEnvString("LLM_RATE_PER_SEC", ""))
	if err != nil {
		return cfg, err
	}
	cfg.RatePerSec = rate

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the provider name and numeric settings.
// Missing keys are not an error: classification is simply disabled.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderClaude, ProviderOpenAI:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.Timeout)
	}
	if c.RatePerSec < 0 {
		return fmt.Errorf("LLM_RATE_PER_SEC must not be negative, got %v", c.RatePerSec)
	}
	return nil
}

// APIKey returns the key for the selected provider.
func (c Config) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.AnthropicAPIKey
}

// ModelName returns the configured model or the provider default.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderOpenAI {
		return openai.GPT4oMini
	}
	return string(anthropic.ModelClaudeSonnet4_5_20250929)
}

func parseRate(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid LLM_RATE_PER_SEC %q: %w", raw, err)
	}
	return v, nil
}
