package limiter

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	perr "creditrisk/internal/platform/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsZeroCapacity(t *testing.T) {
	t.Parallel()

	_, err := New(0)
	require.Error(t, err)
	assert.True(t, perr.IsCode(err, perr.ErrorCodeConfig))
}

func TestDo_NeverExceedsCapacity(t *testing.T) {
	t.Parallel()

	l, err := New(2)
	require.NoError(t, err)

	var cur, peak atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Do(context.Background(), func() error {
				n := cur.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				cur.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int64(2))
	assert.Zero(t, l.InFlight())
}

func TestDo_FIFOOrder(t *testing.T) {
	t.Parallel()

	l, err := New(1)
	require.NoError(t, err)
	require.NoError(t, l.Acquire(context.Background()))

	var mu sync.Mutex
	var order []int
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = l.Do(context.Background(), func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}(i)
		// let waiter i queue before i+1
		time.Sleep(10 * time.Millisecond)
	}

	l.Release()
	wg.Wait()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestDo_ReleasesOnErrorAndPanic(t *testing.T) {
	t.Parallel()

	l, err := New(1)
	require.NoError(t, err)

	boom := errors.New("boom")
	assert.ErrorIs(t, l.Do(context.Background(), func() error { return boom }), boom)
	assert.Zero(t, l.InFlight())

	func() {
		defer func() { _ = recover() }()
		_ = l.Do(context.Background(), func() error { panic("x") })
	}()
	assert.Zero(t, l.InFlight())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, l.Do(ctx, func() error { return nil }))
}

func TestAcquire_HonoursCancellation(t *testing.T) {
	t.Parallel()

	l, err := New(1)
	require.NoError(t, err)
	require.NoError(t, l.Acquire(context.Background()))
	defer l.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = l.Do(ctx, func() error { t.Fatal("must not run"); return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, l.InFlight())
}

func TestObserver(t *testing.T) {
	t.Parallel()

	var seen []int
	l, err := New(3, WithObserver(func(n int) { seen = append(seen, n) }))
	require.NoError(t, err)
	require.NoError(t, l.Do(context.Background(), func() error { return nil }))
	assert.Equal(t, []int{1, 0}, seen)
	assert.Equal(t, 3, l.Capacity())
}
