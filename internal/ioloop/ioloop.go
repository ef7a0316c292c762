// Package ioloop implements the cooperative event loop primitives the
// interpreter suspends onto for `wait for`, `await`, and `wait for
// duration` (spec.md §5 "Scheduling"). The teacher (DWScript) has no
// async model of its own; this is grounded on `Tangerg-lynx/flow`'s
// pattern of running suspendable work as errgroup-supervised goroutines
// while the caller blocks on a channel, which gives the interpreter a
// single place to drain or cancel in-flight I/O on exit.
package ioloop

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Loop supervises every in-flight suspendable operation a running
// program has started. It is not a scheduler in the preemptive sense —
// WFL code only ever suspends at an explicit `wait for`/`await`/`wait
// for duration` point, and resumes in the same goroutine once the
// operation's result is ready.
type Loop struct {
	group  *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Loop bound to the given parent context.
func New(parent context.Context) *Loop {
	ctx, cancel := context.WithCancel(parent)
	group, ctx := errgroup.WithContext(ctx)
	return &Loop{group: group, ctx: ctx, cancel: cancel}
}

// Run executes fn as a supervised suspension point: it starts fn in its
// own goroutine and blocks the calling goroutine until fn returns or the
// loop is cancelled, returning fn's result synchronously to the caller —
// this is what gives the interpreter its "suspend here, resume here"
// semantics without a continuation-passing rewrite of the evaluator.
func Run[T any](l *Loop, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	resultCh := make(chan T, 1)
	errCh := make(chan error, 1)
	l.group.Go(func() error {
		v, err := fn(l.ctx)
		if err != nil {
			errCh <- err
			return err
		}
		resultCh <- v
		return nil
	})
	select {
	case v := <-resultCh:
		return v, nil
	case err := <-errCh:
		return zero, err
	case <-l.ctx.Done():
		return zero, l.ctx.Err()
	}
}

// Sleep suspends for d, honoring cancellation (`wait for duration`).
func (l *Loop) Sleep(d time.Duration) error {
	_, err := Run(l, func(ctx context.Context) (struct{}, error) {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return struct{}{}, nil
		case <-ctx.Done():
			return struct{}{}, ctx.Err()
		}
	})
	return err
}

// Cancel unwinds every in-flight supervised operation (spec.md §5
// "Cancellation" — an `exit` or unhandled error drains pending futures).
func (l *Loop) Cancel() {
	l.cancel()
}

// Drain blocks until every supervised goroutine has returned, after a
// Cancel, so callers can assert no leaked goroutines remain (this is
// what the interpreter's async tests check with goleak).
func (l *Loop) Drain() error {
	return l.group.Wait()
}
