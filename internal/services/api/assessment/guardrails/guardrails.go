// Package guardrails bounds how long an assessment waits on the model
package guardrails

import (
	"context"
	"time"

	perr "creditrisk/internal/platform/errors"
	"creditrisk/internal/platform/logger"
	"creditrisk/internal/services/api/assessment/domain"
)

// DefaultDeadline is the total time an assessment waits for the AI path
const DefaultDeadline = 9500 * time.Millisecond

type outcome struct {
	adj domain.AIAdjustment
	err error
}

// Race runs fn against budget. If fn has not answered when the budget expires the caller gets the
// timeout fallback, and fn's context is cancelled so it stops queueing and sleeping; a model call
// already on the wire finishes on its own timer and its result is dropped.
func Race(ctx context.Context, budget time.Duration, fn func(context.Context) (domain.AIAdjustment, error)) (domain.AIAdjustment, error) {
	if budget <= 0 {
		budget = DefaultDeadline
	}
	sig, cancel := context.WithCancel(ctx)

	// buffered so the loser can always deliver and exit
	done := make(chan outcome, 1)
	go func() {
		adj, err := fn(sig)
		done <- outcome{adj: adj, err: err}
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case o := <-done:
		cancel()
		return o.adj, o.err
	case <-timer.C:
		cancel()
		logger.C(ctx).Warn().Dur("budget", budget).Msg("ai adjustment deadline reached, using fallback")
		return domain.TimeoutFallback(), nil
	case <-ctx.Done():
		cancel()
		return domain.AIAdjustment{}, perr.Wrap(ctx.Err(), perr.ErrorCodeUnavailable, "assessment cancelled")
	}
}

// Detached returns a context that outlives parent's cancellation but is bounded by d
func Detached(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(context.WithoutCancel(parent))
	}
	return context.WithTimeout(context.WithoutCancel(parent), d)
}
