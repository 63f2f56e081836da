package store

import (
	"context"
	"fmt"
	"time"

	"creditrisk/internal/platform/store/pg"

	"github.com/redis/go-redis/v9"
)

// sleep is a seam for tests
var sleep = func(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// openPG opens the pool, waits until it answers a ping, then wraps it with the sql adapter
func openPG(ctx context.Context, cfg PGConfig, s *Store) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(s.Log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:              cfg.URL,
		MaxConns:         cfg.MaxConns,
		SlowMs:           cfg.SlowQueryMs,
		AppName:          cfg.AppName,
		StatementTimeout: cfg.StatementTimeout,
	}, tracer)
	if err != nil {
		return nil, err
	}

	attempts := max(cfg.ConnectAttempts, 1)
	pingTimeout := cfg.PingTimeout
	if pingTimeout <= 0 {
		pingTimeout = 3 * time.Second
	}
	const backoffCeiling = 2 * time.Second
	backoff := 150 * time.Millisecond

	var lastErr error
	for i := 1; i <= attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = p.Pool.Ping(pctx)
		cancel()
		if lastErr == nil {
			return newPGAdapter(p), nil
		}
		s.Log.Warn().Err(lastErr).Int("attempt", i).Int("max", attempts).Msg("postgres not ready")
		if i == attempts {
			break
		}
		if err := sleep(ctx, backoff); err != nil {
			p.Close()
			return nil, err
		}
		backoff = min(backoff*2, backoffCeiling)
	}
	p.Close()
	return nil, fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, lastErr)
}

// newRedis is a seam so tests can point the client at miniredis
var newRedis = func(cfg RedisConfig) redis.UniversalClient {
	return redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})
}

func openRedis(ctx context.Context, cfg RedisConfig) (redis.UniversalClient, error) {
	rc := newRedis(cfg)
	if err := rc.Ping(ctx).Err(); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return rc, nil
}
