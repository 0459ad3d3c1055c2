package ingest

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

// Runner serializes ingestion runs within one process. A trigger that arrives
// while a run is active fails with ErrRunInProgress instead of queueing.
type Runner struct {
	svc     *Service
	timeout time.Duration
	running atomic.Bool
}

// NewRunner creates a Runner. A positive timeout bounds every run.
func NewRunner(svc *Service, timeout time.Duration) *Runner {
	return &Runner{svc: svc, timeout: timeout}
}

// Running reports whether a run is active.
func (r *Runner) Running() bool {
	return r.running.Load()
}

// Run executes one pipeline. Partial stats are returned alongside an error
// when the run was cut short.
func (r *Runner) Run(ctx context.Context, kind Kind) (*RunStats, error) {
	fn, err := r.pipeline(kind)
	if err != nil {
		return nil, err
	}
	if !r.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer r.running.Store(false)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	return fn(ctx)
}

func (r *Runner) pipeline(kind Kind) (func(context.Context) (*RunStats, error), error) {
	switch kind {
	case KindNews:
		return r.svc.RunNews, nil
	case KindResearch:
		return r.svc.RunResearch, nil
	case KindAccelerators:
		return r.svc.RunAccelerators, nil
	case KindEvents:
		return r.svc.RunEvents, nil
	case KindBackfill:
		return func(ctx context.Context) (*RunStats, error) {
			return r.svc.BackfillStartups(ctx, DefaultBackfillLimit)
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
