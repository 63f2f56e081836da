package gemini

import (
	"context"

	"creditrisk/internal/platform/limiter"
	"creditrisk/internal/platform/metrics"
)

// Stack is the process-wide model plumbing: one registry, one limiter, one resilient caller
type Stack struct {
	Registry *Registry
	Limiter  *limiter.Limiter
	Caller   *Caller
}

// Open builds the Stack from c; the limiter gauge is reported to metrics
func Open(ctx context.Context, c Config) (*Stack, error) {
	reg := RegistryFromConfig(c)
	client, err := NewClient(ctx, c.APIKey, reg)
	if err != nil {
		return nil, err
	}
	lim, err := limiter.New(max(c.MaxConcurrent, 1), limiter.WithObserver(metrics.SetInFlight))
	if err != nil {
		return nil, err
	}
	return &Stack{Registry: reg, Limiter: lim, Caller: NewCaller(client, lim, c.Retry)}, nil
}
