package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"creditrisk/internal/adapters/gemini"
	"creditrisk/internal/core/version"
	"creditrisk/internal/platform/config"
	"creditrisk/internal/platform/logger"
	phttp "creditrisk/internal/platform/net/http"
	"creditrisk/internal/platform/net/middleware"
	"creditrisk/internal/platform/store"
	"creditrisk/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	if err := config.LoadDotenv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("load .env")
	}
	lopt := logger.FromEnv()
	lopt.Static = map[string]string{"version": version.Info().Version}
	logger.Init(lopt)
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := config.New()

	// optional backends under SERVICE_PGSQL_* and SERVICE_REDIS_*
	st, err := store.Open(ctx, store.ConfigFromEnv(root.Prefix("SERVICE_")), store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	gcfg := gemini.ConfigFromEnv(root)
	if gcfg.APIKey == "" {
		l.Warn().Msg("GEMINI_API_KEY is not set; assessments will fail until it is")
	}
	model, err := gemini.Open(ctx, gcfg)
	if err != nil {
		l.Fatal().Err(err).Msg("gemini.Open failed")
	}

	opt := api.OptionsFromEnv(root)
	opt.Store = st
	opt.Logger = l
	opt.Gen = model.Caller
	opt.Model = model.Registry.Default()

	if err := api.Migrate(ctx, opt); err != nil {
		l.Fatal().Err(err).Msg("schema migration failed")
	}

	// http server (reads CORE_API_PORT, CORE_API_WRITE_TIMEOUT, CORE_API_SHUTDOWN_TIMEOUT)
	srv := phttp.NewServer(root.Prefix("CORE_API_"), func(m *chi.Mux) {
		m.Use(middleware.Defaults()...)
	})
	api.Mount(srv.Router(), opt)

	l.Info().
		Str("model", opt.Model).
		Int("max_concurrent", model.Limiter.Capacity()).
		Dur("deadline", opt.Assess.Deadline).
		Bool("persist", st.PG != nil).
		Bool("cache", st.Redis != nil && opt.Assess.CacheTTL > 0).
		Msg("creditrisk api starting")

	if err := srv.Run(ctx); err != nil {
		l.Fatal().Err(err).Msg("http server stopped")
	}
}
