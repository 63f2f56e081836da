package service

import (
	"time"

	"creditrisk/internal/platform/config"
	"creditrisk/internal/services/api/assessment/guardrails"
)

// DefaultPersistTimeout bounds the best-effort record insert
const DefaultPersistTimeout = 2 * time.Second

// Options tunes an assessment run
type Options struct {
	// Deadline is the total wait for the AI adjustment
	Deadline time.Duration

	// PersistTimeout bounds the record insert, which runs detached from the request
	PersistTimeout time.Duration

	// CacheTTL enables the adjustment cache when positive and a redis client is available
	CacheTTL time.Duration

	// Model selects the registry entry, "" is the default model
	Model string

	// DisableAI skips the model and scores with a zero adjustment
	DisableAI bool
}

// OptionsFromEnv reads CORE_ASSESS_* from cfg
func OptionsFromEnv(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_ASSESS_")
	return Options{
		Deadline:       c.MayDuration("DEADLINE", guardrails.DefaultDeadline),
		PersistTimeout: c.MayDuration("PERSIST_TIMEOUT", DefaultPersistTimeout),
		CacheTTL:       c.MayDuration("CACHE_TTL", 0),
	}
}

func (o Options) withDefaults() Options {
	if o.Deadline <= 0 {
		o.Deadline = guardrails.DefaultDeadline
	}
	if o.PersistTimeout <= 0 {
		o.PersistTimeout = DefaultPersistTimeout
	}
	return o
}
