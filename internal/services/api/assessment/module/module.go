// Package module wires assessments into the API using modkit
package module

import (
	"context"

	modkit "creditrisk/internal/modkit"
	"creditrisk/internal/modkit/httpkit"
	"creditrisk/internal/modkit/repokit"
	"creditrisk/internal/services/api/assessment/cache"
	asshttp "creditrisk/internal/services/api/assessment/http"
	assrepo "creditrisk/internal/services/api/assessment/repo"
	asssvc "creditrisk/internal/services/api/assessment/service"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
	svc   asssvc.Service
}

// New constructs the assessment module; persistence and caching switch on when deps carry the backends
func New(deps modkit.Deps, gen asssvc.Generator, o asssvc.Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("assessments"), modkit.WithPrefix("/assessments")}, opts...)...)

	var extra []asssvc.Option
	if deps.PG != nil {
		extra = append(extra, asssvc.WithRepo(deps.PG, assrepo.NewPG()))
	}
	if c := cache.NewRedis(deps.Redis, o.CacheTTL); c != nil {
		extra = append(extra, asssvc.WithCache(c))
	}
	m := &Module{svc: asssvc.New(gen, o, extra...)}

	external := b.Register
	b.Register = func(r httpkit.Router) {
		asshttp.Register(r, m.svc)
		external(r)
	}
	m.built = b
	return m
}

// Migrate creates the assessments table when persistence is enabled
func Migrate(ctx context.Context, deps modkit.Deps) error {
	if deps.PG == nil {
		return nil
	}
	return repokit.WithTx(ctx, deps.PG, func(q repokit.Queryer) error {
		return assrepo.EnsureSchema(ctx, q)
	})
}

// Service exposes the assessment service for non-HTTP entry points
func (m *Module) Service() asssvc.Service { return m.svc }

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }
