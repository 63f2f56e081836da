package pg

import (
	"context"
	"strings"

	"creditrisk/internal/platform/logger"
	"creditrisk/internal/platform/metrics"

	"github.com/rs/zerolog"
)

// QueryEvent describes one executed statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives an event per executed statement
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// maxLoggedSQL caps the statement text in log lines
const maxLoggedSQL = 240

// Tracer logs every statement at its own debug floor and counts it by verb.
// Args are never logged: assessment payloads carry applicant financials.
func Tracer(root logger.Logger) QueryTracer {
	return &zlTracer{log: root.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	verb := verbOf(ev.SQL)
	metrics.ObserveQuery(verb, ev.Err != nil)

	evt := z.log.Debug()
	switch {
	case ev.Err != nil:
		evt = z.log.Warn().Err(ev.Err)
	case ev.Slow:
		evt = z.log.Warn()
	}
	evt.Str("verb", verb).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", clip(compact(ev.SQL), maxLoggedSQL)).
		Msg("pg query")
}

func compact(s string) string { return strings.Join(strings.Fields(s), " ") }

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// verbOf returns the lowercased first keyword, "other" for blank input
func verbOf(sql string) string {
	f := strings.Fields(sql)
	if len(f) == 0 {
		return "other"
	}
	return strings.ToLower(f[0])
}
