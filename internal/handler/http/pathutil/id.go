package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when an identifier is not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a positive int64 identifier.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

// ErrInvalidLimit is returned when a limit is not a non-negative integer.
var ErrInvalidLimit = errors.New("limit must be a non-negative integer")

// ParseLimit parses an optional limit. Empty means 0, which callers treat
// as their default.
func ParseLimit(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, ErrInvalidLimit
	}
	return n, nil
}
