package entity

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput marks malformed caller input that is not tied to one field.
	ErrInvalidInput     = errors.New("invalid input")
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError names the offending field of caller input. Message is
// shown to API callers as-is, so it already names the field. It matches
// ErrValidationFailed under errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Field + " is invalid"
	}
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

const (
	maxURLLength    = 2048
	maxUserIDLength = 128
	maxNameLength   = 200
)

// ValidateURL checks that rawURL is a well-formed absolute http(s) URL.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "URL is malformed"}
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Host == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	return nil
}

// ValidateUserID rejects empty or oversized user identifiers.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return &ValidationError{Field: "userId", Message: "userId is required"}
	}
	if len(userID) > maxUserIDLength {
		return &ValidationError{
			Field:   "userId",
			Message: fmt.Sprintf("userId must not exceed %d characters", maxUserIDLength),
		}
	}
	return nil
}

// Validate checks an overlay reference before it is stored.
func (r ItemRef) Validate() error {
	if err := ValidateUserID(r.UserID); err != nil {
		return err
	}
	if _, ok := ParseItemType(string(r.ItemType)); !ok {
		return &ValidationError{Field: "itemType", Message: "itemType must be one of article, event, research, startup"}
	}
	if r.ItemID <= 0 {
		return &ValidationError{Field: "itemId", Message: "itemId must be positive"}
	}
	return nil
}

// ValidateStartupName rejects blank or oversized startup names.
func ValidateStartupName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len([]rune(name)) > maxNameLength {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name must not exceed %d characters", maxNameLength),
		}
	}
	return nil
}

// Validate checks user-supplied notification preferences.
func (p NotificationPreference) Validate() error {
	if err := ValidateUserID(p.UserID); err != nil {
		return err
	}
	if p.Email != "" && !strings.Contains(p.Email, "@") {
		return &ValidationError{Field: "email", Message: "email is malformed"}
	}
	switch p.Frequency {
	case DigestDaily, DigestWeekly:
	default:
		return &ValidationError{Field: "frequency", Message: "frequency must be daily or weekly"}
	}
	return nil
}
