package itinerary

import (
	"context"
	"time"
)

const (
	DefaultMaxAttempts    = 5
	DefaultPauseDelay     = 60 * time.Second
	DefaultRequestTimeout = 5 * time.Second
)

// RetryPolicy bounds the paused-turn continuation loop.
type RetryPolicy struct {
	// MaxAttempts is the total number of completion calls per generation.
	MaxAttempts int
	// PauseDelay is waited between a paused response and its continuation.
	PauseDelay time.Duration
	// RequestTimeout bounds each single call unless the caller bypasses it. Zero disables it.
	RequestTimeout time.Duration
	// Sleep waits for d or until ctx is done. Nil uses SleepContext.
	Sleep func(ctx context.Context, d time.Duration) error
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:    DefaultMaxAttempts,
		PauseDelay:     DefaultPauseDelay,
		RequestTimeout: DefaultRequestTimeout,
		Sleep:          SleepContext,
	}
}

// SleepContext blocks for d, returning early with ctx.Err() on cancellation.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

func (p RetryPolicy) wait(ctx context.Context) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = SleepContext
	}
	return sleep(ctx, p.PauseDelay)
}

// callContext applies the per-call timeout unless bypassed.
func (p RetryPolicy) callContext(ctx context.Context, bypass bool) (context.Context, context.CancelFunc) {
	if bypass || p.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.RequestTimeout)
}
