package search

import (
	"context"
	"time"
)

// Delayer introduces the latency of one page fetch.
// Delay must return promptly with a non-nil error once ctx is cancelled.
type Delayer interface {
	Delay(ctx context.Context) error
}

// DelayFunc adapts a function to the Delayer interface.
type DelayFunc func(ctx context.Context) error

// Delay calls f(ctx).
func (f DelayFunc) Delay(ctx context.Context) error {
	return f(ctx)
}

// TimerDelay waits a fixed duration per page.
type TimerDelay time.Duration

// Delay waits for the duration or until ctx is done. The timer is stopped on
// cancellation so no wakeup stays pending.
func (d TimerDelay) Delay(ctx context.Context) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(time.Duration(d))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NoDelay performs no waiting. It still reports cancellation.
var NoDelay Delayer = DelayFunc(func(ctx context.Context) error {
	return ctx.Err()
})
