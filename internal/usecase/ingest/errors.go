// Package ingest runs the ingestion pipelines: news feeds, research papers,
// the accelerator directory and curated events. Each run fetches one source
// at a time, classifies each item, persists it and folds startup mentions
// into the startup store.
package ingest

import (
	"errors"
	"fmt"
)

// Sentinel errors for ingestion runs.
var (
	// ErrRunInProgress is returned when a run is triggered while another is active.
	ErrRunInProgress = errors.New("ingestion run already in progress")

	// ErrUnknownKind indicates an unsupported run kind.
	ErrUnknownKind = errors.New("unknown ingestion kind")

	// ErrFetchFailed matches every *FetchError.
	ErrFetchFailed = errors.New("source fetch failed")

	// ErrPersistenceFailed matches every *PersistenceError.
	ErrPersistenceFailed = errors.New("persistence failed")
)

// FetchError reports a source that produced no items. The run skips the
// source and continues.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrFetchFailed) match any FetchError.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailed
}

// PersistenceError reports a failed store read or write for one item.
// The item is skipped and not counted as ingested.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrPersistenceFailed) match any PersistenceError.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistenceFailed
}
