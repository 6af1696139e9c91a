package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SignalContext returns a context canceled on SIGINT or SIGTERM. The stop
// function must be called to release the signal handler.
func SignalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// Lifecycle bounds a run by a timeout and by termination signals.
type Lifecycle struct {
	cancelTimeout context.CancelFunc
	stopSignals   context.CancelFunc
}

// NewLifecycle derives a context that is canceled when timeout elapses or a
// termination signal arrives, whichever comes first. A non-positive timeout
// disables the deadline.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration of the run.
//
// Returns:
//   - context.Context: The bounded context.
//   - *Lifecycle: Call Stop (typically deferred) to release resources.
func NewLifecycle(ctx context.Context, timeout time.Duration) (context.Context, *Lifecycle) {
	lc := &Lifecycle{}
	if timeout > 0 {
		ctx, lc.cancelTimeout = context.WithTimeout(ctx, timeout)
	}
	ctx, lc.stopSignals = SignalContext(ctx)
	return ctx, lc
}

// Stop releases the signal handler and the timer.
func (lc *Lifecycle) Stop() {
	if lc.stopSignals != nil {
		lc.stopSignals()
	}
	if lc.cancelTimeout != nil {
		lc.cancelTimeout()
	}
}
