package store

import (
	"errors"

	"creditrisk/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Option mutates Store during Open
type Option func(*Store) error

// WithLogger sets the logger used by subclients
func WithLogger(log logger.Logger) Option {
	return func(s *Store) error {
		s.Log = log
		return nil
	}
}

// WithRedisClient adopts an existing client instead of dialing RedisConfig.Addr.
// The client is still pinged and Store.Close closes it.
func WithRedisClient(rc redis.UniversalClient) Option {
	return func(s *Store) error {
		if rc == nil {
			return errors.New("store: nil redis client")
		}
		s.Redis = rc
		return nil
	}
}
