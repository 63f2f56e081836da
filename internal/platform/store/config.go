package store

import (
	"time"

	"creditrisk/internal/platform/config"
)

// Config aggregates per backend configuration
type Config struct {
	PG    PGConfig
	Redis RedisConfig
}

// PGConfig configures postgres connectivity and tracing
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectAttempts int           // default 20
	PingTimeout     time.Duration // default 3s

	AppName          string
	StatementTimeout time.Duration
}

// RedisConfig configures redis connectivity
type RedisConfig struct {
	Enabled     bool
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_REDIS_* style keys below cfg
func ConfigFromEnv(cfg config.Conf) Config {
	pg := cfg.Prefix("PGSQL_")
	rd := cfg.Prefix("REDIS_")
	return Config{
		PG: PGConfig{
			Enabled:         pg.MayBool("ENABLED", false),
			URL:             pg.MayString("URL", ""),
			MaxConns:        int32(pg.MayInt("MAX_CONNS", 8)),
			LogSQL:          pg.MayBool("LOG_SQL", false),
			SlowQueryMs:     pg.MayInt("SLOW_MS", 250),
			ConnectAttempts: pg.MayInt("CONNECT_ATTEMPTS", 20),
			PingTimeout:     pg.MayDuration("PING_TIMEOUT", 3*time.Second),

			AppName:          pg.MayString("APP_NAME", "creditrisk"),
			StatementTimeout: pg.MayDuration("STATEMENT_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Enabled:     rd.MayBool("ENABLED", false),
			Addr:        rd.MayString("ADDR", "127.0.0.1:6379"),
			Password:    rd.MayString("PASSWORD", ""),
			DB:          rd.MayInt("DB", 0),
			DialTimeout: rd.MayDuration("DIAL_TIMEOUT", 2*time.Second),
		},
	}
}
