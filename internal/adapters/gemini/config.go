// Package gemini is the resilient adapter around the Gemini generate content API:
// a model registry, a thin client, an error classifier, and a retrying caller
package gemini

import (
	"time"

	"creditrisk/internal/platform/config"
)

// Defaults
const (
	DefaultModel           = "gemini-2.5-flash"
	DefaultTemperature     = 0.2
	DefaultMaxOutputTokens = 512
	DefaultMaxConcurrent   = 1
	DefaultCallTimeout     = 8 * time.Second
	DefaultMaxAttempts     = 3
	DefaultMaxRetryDelay   = 8 * time.Second
	DefaultBackoffBase     = 400 * time.Millisecond
)

// Config is the GEMINI_* environment
type Config struct {
	APIKey          string
	Model           string
	Temperature     float32
	MaxOutputTokens int32
	MaxConcurrent   int
	Retry           RetryPolicy
}

// ConfigFromEnv reads GEMINI_* from cfg; a missing key is reported at call time, not here
func ConfigFromEnv(cfg config.Conf) Config {
	c := cfg.Prefix("GEMINI_")
	return Config{
		APIKey:          c.MayString("API_KEY", ""),
		Model:           c.MayString("MODEL", DefaultModel),
		Temperature:     float32(c.MayFloat64("TEMPERATURE", DefaultTemperature)),
		MaxOutputTokens: int32(c.MayInt("MAX_OUTPUT_TOKENS", DefaultMaxOutputTokens)),
		MaxConcurrent:   c.MayInt("MAX_CONCURRENT", DefaultMaxConcurrent),
		Retry: RetryPolicy{
			MaxAttempts:   c.MayInt("MAX_ATTEMPTS", DefaultMaxAttempts),
			CallTimeout:   c.MayDuration("CALL_TIMEOUT", DefaultCallTimeout),
			MaxRetryDelay: c.MayDuration("MAX_RETRY_DELAY", DefaultMaxRetryDelay),
			BackoffBase:   c.MayDuration("BACKOFF_BASE", DefaultBackoffBase),
		},
	}
}
