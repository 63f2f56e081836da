package gemini

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"creditrisk/internal/platform/logger"
	"creditrisk/internal/platform/metrics"
)

const (
	hintJitter    = 250 * time.Millisecond
	backoffJitter = 200 * time.Millisecond
)

// RetryPolicy bounds the retry loop
type RetryPolicy struct {
	MaxAttempts   int
	CallTimeout   time.Duration
	MaxRetryDelay time.Duration
	BackoffBase   time.Duration
}

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = DefaultMaxAttempts
	}
	if p.CallTimeout <= 0 {
		p.CallTimeout = DefaultCallTimeout
	}
	if p.MaxRetryDelay <= 0 {
		p.MaxRetryDelay = DefaultMaxRetryDelay
	}
	if p.BackoffBase <= 0 {
		p.BackoffBase = DefaultBackoffBase
	}
	return p
}

// RetryState is the per-call bookkeeping of one Caller.Generate
type RetryState struct {
	Attempt int
	LastErr error
	Delay   time.Duration
}

// Slots bounds concurrent attempts
type Slots interface {
	Do(ctx context.Context, fn func() error) error
}

// Caller wraps a Generator with a concurrency limit, per-call timeouts and classified retries
type Caller struct {
	gen    Generator
	slots  Slots
	policy RetryPolicy
	log    logger.Logger

	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func(limit time.Duration) time.Duration
}

// NewCaller wires gen behind slots with the given policy
func NewCaller(gen Generator, slots Slots, p RetryPolicy) *Caller {
	return &Caller{
		gen:    gen,
		slots:  slots,
		policy: p.withDefaults(),
		log:    *logger.Named("gemini"),
		now:    time.Now,
		sleep:  sleepCtx,
		jitter: randJitter,
	}
}

// Policy returns the effective policy
func (c *Caller) Policy() RetryPolicy { return c.policy }

// Generate calls the model until it succeeds, fails permanently, or runs out of attempts.
// ctx bounds slot waits and backoff sleeps; an attempt already on the wire runs under its own
// timer and is not cut short by ctx.
func (c *Caller) Generate(ctx context.Context, model, prompt string) (string, error) {
	var st RetryState
	for st.Attempt = 1; st.Attempt <= c.policy.MaxAttempts; st.Attempt++ {
		out, err := c.attempt(ctx, model, prompt)
		if err == nil {
			return out, nil
		}
		st.LastErr = err
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return "", err
		}

		v := Classify(err)
		if !v.Retryable || st.Attempt == c.policy.MaxAttempts {
			return "", err
		}

		if v.HasDelay {
			if v.Delay > c.policy.MaxRetryDelay {
				metrics.ModelAttempts.WithLabelValues(metrics.OutcomeRateLimit).Inc()
				c.log.Warn().Int("attempt", st.Attempt).Dur("hint", v.Delay).Msg("retry hint exceeds budget, failing fast")
				return "", rateLimitedError(statusOf(err), v.Delay)
			}
			st.Delay = v.Delay + c.jitter(hintJitter)
		} else {
			st.Delay = c.policy.BackoffBase<<(st.Attempt-1) + c.jitter(backoffJitter)
		}
		st.Delay = min(st.Delay, c.policy.MaxRetryDelay)

		logger.C(ctx).Warn().
			Err(err).
			Int("attempt", st.Attempt).
			Int("status", statusOf(err)).
			Dur("delay", st.Delay).
			Msg("model call failed, retrying")

		if err := c.sleep(ctx, st.Delay); err != nil {
			return "", err
		}
	}
	return "", st.LastErr
}

func (c *Caller) attempt(ctx context.Context, model, prompt string) (string, error) {
	var out string
	err := c.slots.Do(ctx, func() error {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.policy.CallTimeout)
		defer cancel()

		start := c.now()
		text, err := c.gen.Generate(callCtx, model, prompt)
		took := c.now().Sub(start)

		if err != nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			err = timeoutError(c.policy.CallTimeout, err)
		}
		switch {
		case err == nil:
			metrics.ObserveAttempt(metrics.OutcomeOK, took)
		case Classify(err).Retryable:
			metrics.ObserveAttempt(metrics.OutcomeRetry, took)
		default:
			metrics.ObserveAttempt(metrics.OutcomeFailed, took)
		}
		out = text
		return err
	})
	return out, err
}

func statusOf(err error) int {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Status
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func randJitter(limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return rand.N(limit)
}
