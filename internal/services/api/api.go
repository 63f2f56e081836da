// Package api provides the HTTP API for the application
package api

import (
	"context"
	"net/http"
	"time"

	"creditrisk/internal/modkit"
	"creditrisk/internal/modkit/httpkit"
	"creditrisk/internal/platform/config"
	"creditrisk/internal/platform/logger"
	"creditrisk/internal/platform/metrics"
	phttp "creditrisk/internal/platform/net/http"
	"creditrisk/internal/platform/net/middleware"
	"creditrisk/internal/platform/store"

	aimod "creditrisk/internal/services/api/ai/module"
	"creditrisk/internal/services/api/assessment/guardrails"
	assessmod "creditrisk/internal/services/api/assessment/module"
	asssvc "creditrisk/internal/services/api/assessment/service"
	metamod "creditrisk/internal/services/api/meta/module"
)

// Banner is the plain text served on GET /
const Banner = "API is running... Try GET /health"

// Options are the API options
type Options struct {
	Config config.Conf
	Store  *store.Store
	Logger *logger.Logger

	// Gen is the resilient model caller shared by the assessment and ai modules
	Gen asssvc.Generator

	// Model is the registry name used by the ping endpoint
	Model string

	Assess asssvc.Options

	// RequestTimeout bounds /api/v1 requests; keep it above Assess.Deadline
	RequestTimeout time.Duration
	CORS           middleware.CORSOptions
}

// OptionsFromEnv fills the HTTP scoped fields from CORE_API_* below cfg
func OptionsFromEnv(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_API_")
	o := Options{
		Config:         cfg,
		RequestTimeout: c.MayDuration("REQUEST_TIMEOUT", 15*time.Second),
		CORS:           middleware.CORSOptions{MaxAge: c.MayInt("CORS_MAX_AGE", 300)},
		Assess:         asssvc.OptionsFromEnv(cfg),
	}
	if origin := c.MayString("CORS_ORIGIN", ""); origin != "" {
		o.CORS.AllowedOrigins = []string{origin}
	}
	return o
}

// Deps derives module deps from the opened store
func (o Options) Deps() modkit.Deps {
	d := modkit.Deps{Cfg: o.Config}
	if o.Logger != nil {
		d.Log = *o.Logger
	}
	if o.Store != nil {
		d.PG = o.Store.PG
		d.Redis = o.Store.Redis
		d.Ready = o.Store.Guard
	}
	return d
}

// Migrate applies the schemas the mounted modules need
func Migrate(ctx context.Context, opt Options) error {
	return assessmod.Migrate(ctx, opt.Deps())
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := opt.Deps()

	mods := []modkit.Module{
		metamod.New(deps),
		assessmod.New(deps, opt.Gen, opt.Assess),
	}
	if opt.Gen != nil {
		// ping shares the model budget, so it gets no longer than an assessment
		mods = append(mods, aimod.New(opt.Gen, opt.Model,
			modkit.WithMiddlewares(middleware.Timeout(pingTimeout(opt.Assess.Deadline)))))
	}

	r.Get("/", httpkit.Handle(func(*http.Request) httpkit.Response { return httpkit.Text(Banner) }))
	r.Get("/health", httpkit.Handle(func(*http.Request) httpkit.Response {
		return httpkit.RawJSON(map[string]string{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	}))
	r.Handle("/metrics", metrics.Handler())

	// versioned API with a common middleware stack
	stack := httpkit.CommonStack(httpkit.StackOptions{Timeout: opt.RequestTimeout, CORS: opt.CORS})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		modkit.MountAll(api, mods...)
	})
}

func pingTimeout(deadline time.Duration) time.Duration {
	if deadline <= 0 {
		return guardrails.DefaultDeadline
	}
	return deadline
}
