package classify

import (
	"errors"
	"fmt"
)

var (
	// ErrClassification matches every *ClassificationError.
	ErrClassification = errors.New("classification failed")

	// ErrNoCompleter indicates that no LLM provider or API key is configured.
	ErrNoCompleter = errors.New("no LLM completer configured")

	// ErrEmptyResponse indicates the model returned no text.
	ErrEmptyResponse = errors.New("empty model response")
)

// ClassificationError wraps a failed classifier call. Op names the classifier.
type ClassificationError struct {
	Op  string
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classify %s: %v", e.Op, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrClassification) true for any ClassificationError.
func (e *ClassificationError) Is(target error) bool {
	return target == ErrClassification
}
