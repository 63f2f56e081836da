// Package modkit provides module wiring and core deps
package modkit

import (
	"context"

	"creditrisk/internal/modkit/repokit"
	"creditrisk/internal/platform/config"
	"creditrisk/internal/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is nil when persistence is disabled
	PG repokit.TxRunner

	// Redis is nil when the adjustment cache is disabled
	Redis redis.UniversalClient

	// Ready reports backend readiness, nil means always ready
	Ready func(context.Context) error
}

// CheckReady runs Ready when set
func (d Deps) CheckReady(ctx context.Context) error {
	if d.Ready == nil {
		return nil
	}
	return d.Ready(ctx)
}
