// Package config implements fail-open configuration loading: a value that is
// unparseable or fails validation is replaced by its default, and the caller
// is told so it can log the warning and count the fallback.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of loading one setting.
type Result[T any] struct {
	Value T
	// FallbackApplied is set when the environment held a value that was rejected.
	FallbackApplied bool
	// Warning describes the rejected value. Empty unless FallbackApplied.
	Warning string
}

func fallback[T any](key, raw string, def T, err error) Result[T] {
	return Result[T]{
		Value:           def,
		FallbackApplied: true,
		Warning:         fmt.Sprintf("%s=%q rejected (%v), using default %v", key, raw, err, def),
	}
}

// load reads key, parses it and validates it. An unset or blank key yields def
// without a fallback.
func load[T any](key string, def T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return Result[T]{Value: def}
	}
	v, err := parse(raw)
	if err != nil {
		return fallback(key, raw, def, err)
	}
	if validate != nil {
		if err := validate(v); err != nil {
			return fallback(key, raw, def, err)
		}
	}
	return Result[T]{Value: v}
}

// LoadEnvString returns the trimmed value of key, or def when unset.
func LoadEnvString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// LoadEnvWithFallback loads a string setting. validate may be nil.
func LoadEnvWithFallback(key, def string, validate func(string) error) Result[string] {
	return load(key, def, func(s string) (string, error) { return s, nil }, validate)
}

// LoadEnvDuration loads a time.ParseDuration setting. validate may be nil.
func LoadEnvDuration(key string, def time.Duration, validate func(time.Duration) error) Result[time.Duration] {
	return load(key, def, time.ParseDuration, validate)
}

// LoadEnvInt loads a base-10 integer setting. validate may be nil.
func LoadEnvInt(key string, def int, validate func(int) error) Result[int] {
	return load(key, def, strconv.Atoi, validate)
}

// LoadEnvBool loads a strconv.ParseBool setting.
func LoadEnvBool(key string, def bool) Result[bool] {
	return load(key, def, strconv.ParseBool, nil)
}

// LoadEnvList loads a comma separated list. Blank elements are dropped and
// validate is applied to each remaining element; one bad element rejects the
// whole list. An empty list after trimming also falls back.
func LoadEnvList(key string, def []string, validate func(string) error) Result[[]string] {
	parse := func(s string) ([]string, error) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if validate != nil {
				if err := validate(part); err != nil {
					return nil, err
				}
			}
			out = append(out, part)
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("no elements")
		}
		return out, nil
	}
	return load(key, def, parse, nil)
}
