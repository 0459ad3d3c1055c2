// Package config loads the curated ingestion sources: news feeds, the
// research feed, the accelerator directory and the event templates.
package config

import (
	_ "embed"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed sources.yaml
var defaultSources []byte

// SourcesFileEnv names the environment variable that overrides the embedded sources.
const SourcesFileEnv = "SOURCES_FILE"

// Feed is one RSS/Atom endpoint and the source label stored on its items.
type Feed struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Directory is a paginated accelerator company listing.
type Directory struct {
	Name              string  `yaml:"name"`
	URL               string  `yaml:"url"`
	MaxPages          int     `yaml:"max_pages"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// EventTemplate is a recurring event. Its date is the next occurrence of Month/Day.
type EventTemplate struct {
	Title           string   `yaml:"title"`
	City            string   `yaml:"city"`
	Month           int      `yaml:"month"`
	Day             int      `yaml:"day"`
	URL             string   `yaml:"url"`
	RegistrationURL string   `yaml:"registration_url"`
	Source          string   `yaml:"source"`
	EventType       string   `yaml:"event_type"`
	SectorTags      []string `yaml:"sector_tags"`
}

// Sources is the full set of curated ingestion inputs.
type Sources struct {
	NewsFeeds        []Feed          `yaml:"news_feeds"`
	Research         Feed            `yaml:"research"`
	Accelerator      Directory       `yaml:"accelerator"`
	Events           []EventTemplate `yaml:"events"`
	RetiredEventURLs []string        `yaml:"retired_event_urls"`
}

// DefaultSources returns the embedded source list.
func DefaultSources() (*Sources, error) {
	return ParseSources(defaultSources)
}

// LoadSources reads sources from path, or the embedded list when path is empty.
// The path parameter is expected to come from a trusted source (environment or CLI flag).
func LoadSources(path string) (*Sources, error) {
	if path == "" {
		return DefaultSources()
	}
	// #nosec G304 -- path is provided by the operator, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}
	return ParseSources(data)
}

// LoadSourcesFromEnv honours SOURCES_FILE.
func LoadSourcesFromEnv() (*Sources, error) {
	return LoadSources(strings.TrimSpace(os.Getenv(SourcesFileEnv)))
}

// ParseSources decodes and validates a YAML document.
func ParseSources(data []byte) (*Sources, error) {
	var s Sources
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse sources: %w", err)
	}
	if s.Accelerator.MaxPages <= 0 {
		s.Accelerator.MaxPages = 200
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("sources validation failed: %w", err)
	}
	return &s, nil
}

// Validate checks that every configured endpoint is an absolute http(s) url
// and every event template names a real calendar day.
func (s *Sources) Validate() error {
	for i, f := range s.NewsFeeds {
		if f.Name == "" {
			return fmt.Errorf("news_feeds[%d]: name is required", i)
		}
		if err := checkURL(f.URL); err != nil {
			return fmt.Errorf("news_feeds[%d]: %w", i, err)
		}
	}
	if s.Research.URL != "" {
		if err := checkURL(s.Research.URL); err != nil {
			return fmt.Errorf("research: %w", err)
		}
	}
	if s.Accelerator.URL != "" {
		if err := checkURL(s.Accelerator.URL); err != nil {
			return fmt.Errorf("accelerator: %w", err)
		}
		if s.Accelerator.Name == "" {
			return fmt.Errorf("accelerator: name is required")
		}
	}
	if s.Accelerator.RequestsPerSecond < 0 {
		return fmt.Errorf("accelerator: requests_per_second must not be negative")
	}

	seen := make(map[string]struct{}, len(s.Events))
	for i, e := range s.Events {
		if e.Title == "" {
			return fmt.Errorf("events[%d]: title is required", i)
		}
		if err := checkURL(e.URL); err != nil {
			return fmt.Errorf("events[%d]: %w", i, err)
		}
		if _, dup := seen[e.URL]; dup {
			return fmt.Errorf("events[%d]: duplicate url %s", i, e.URL)
		}
		seen[e.URL] = struct{}{}
		if e.Month < 1 || e.Month > 12 {
			return fmt.Errorf("events[%d]: month must be 1-12, got %d", i, e.Month)
		}
		// 2/29 は許可する。平年では 3/1 に正規化される
		if e.Day < 1 || e.Day > daysIn(e.Month) {
			return fmt.Errorf("events[%d]: day %d out of range for month %d", i, e.Day, e.Month)
		}
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url %q: must be absolute http(s)", raw)
	}
	return nil
}

func daysIn(month int) int {
	switch month {
	case 2:
		return 29
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
