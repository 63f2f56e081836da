// Package limiter bounds how many model calls are in flight at once.
// Waiters are granted slots in arrival order.
package limiter

import (
	"context"
	"sync/atomic"

	perr "creditrisk/internal/platform/errors"

	"golang.org/x/sync/semaphore"
)

// Limiter is a FIFO counting semaphore
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int
	inFlight atomic.Int64

	// observe is called with the in-flight count after every change
	observe func(int)
}

// Option tunes a Limiter
type Option func(*Limiter)

// WithObserver reports in-flight changes, e.g. to a gauge
func WithObserver(fn func(inFlight int)) Option {
	return func(l *Limiter) { l.observe = fn }
}

// New returns a limiter with the given capacity, which must be at least 1
func New(capacity int, opts ...Option) (*Limiter, error) {
	if capacity < 1 {
		return nil, perr.Newf(perr.ErrorCodeConfig, "limiter capacity must be >= 1, got %d", capacity)
	}
	l := &Limiter{sem: semaphore.NewWeighted(int64(capacity)), capacity: capacity}
	for _, o := range opts {
		o(l)
	}
	return l, nil
}

// Acquire blocks until a slot is free or ctx is done
func (l *Limiter) Acquire(ctx context.Context) error {
	if err := l.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	l.changed(l.inFlight.Add(1))
	return nil
}

// Release returns a slot and wakes the longest waiting caller
func (l *Limiter) Release() {
	l.changed(l.inFlight.Add(-1))
	l.sem.Release(1)
}

// Do runs fn while holding a slot; the slot is released on every exit path
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	if err := l.Acquire(ctx); err != nil {
		return err
	}
	defer l.Release()
	return fn()
}

// InFlight is the number of slots currently held
func (l *Limiter) InFlight() int { return int(l.inFlight.Load()) }

// Capacity is the configured ceiling
func (l *Limiter) Capacity() int { return l.capacity }

func (l *Limiter) changed(n int64) {
	if l.observe != nil {
		l.observe(int(n))
	}
}
