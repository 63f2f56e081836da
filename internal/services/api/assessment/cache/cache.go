// Package cache memoises model adjustments in redis, keyed by the prompt
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"creditrisk/internal/platform/logger"
	"creditrisk/internal/services/api/assessment/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "creditrisk:ai:v1:"

// Cache stores model-sourced adjustments; misses and backend errors look the same to callers
type Cache interface {
	Get(ctx context.Context, prompt string) (domain.AIAdjustment, bool)
	Put(ctx context.Context, prompt string, adj domain.AIAdjustment)
}

// Redis is a Cache over go-redis
type Redis struct {
	rdb redis.UniversalClient
	ttl time.Duration
}

// NewRedis returns nil when rdb is nil or ttl is not positive, which callers treat as disabled
func NewRedis(rdb redis.UniversalClient, ttl time.Duration) *Redis {
	if rdb == nil || ttl <= 0 {
		return nil
	}
	return &Redis{rdb: rdb, ttl: ttl}
}

// Key is the redis key for a prompt
func Key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// Get returns a cached adjustment
func (c *Redis) Get(ctx context.Context, prompt string) (domain.AIAdjustment, bool) {
	var adj domain.AIAdjustment
	b, err := c.rdb.Get(ctx, Key(prompt)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.C(ctx).Warn().Err(err).Msg("ai cache read failed")
		}
		return adj, false
	}
	if err := json.Unmarshal(b, &adj); err != nil || adj.Source != domain.SourceModel {
		return domain.AIAdjustment{}, false
	}
	return adj, true
}

// Put stores adj when it came from the model; fallbacks are never cached
func (c *Redis) Put(ctx context.Context, prompt string, adj domain.AIAdjustment) {
	if adj.Source != domain.SourceModel {
		return
	}
	b, err := json.Marshal(adj)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, Key(prompt), b, c.ttl).Err(); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("ai cache write failed")
	}
}
