// Package runctl runs a search to completion, a deadline, or an early
// interrupt signal: the CLI wraps a single Oneshot.Run invocation in a
// wall-clock timeout. The source's Timeout class was a `signal.alarm`-based
// context manager; this keeps the same "outer bound plus operator-triggered
// early exit" shape idiomatically, returning context.DeadlineExceeded or the
// interrupting signal's error instead of raising inside the worker.
package runctl

import (
	"context"
	"errors"
	"time"
)

// ErrInterrupted is returned when the run was cancelled by an interrupt
// signal rather than by timing out.
var ErrInterrupted = errors.New("runctl: interrupted")

// Run calls fn with a context bounded by timeout and by signalCh: whichever
// fires first (deadline, signal, or fn returning on its own) determines how
// Run returns. signalCh is typically backed by NotifySignals from the
// platform-specific file in this package; it may be nil, in which case only
// the timeout bounds fn.
func Run(ctx context.Context, timeout time.Duration, signalCh <-chan struct{}, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		<-done
		return ctx.Err()
	case <-signalCh:
		cancel()
		<-done
		return ErrInterrupted
	}
}
