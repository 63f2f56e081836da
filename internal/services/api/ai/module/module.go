// Package module wires the model ping endpoint into the API
package module

import (
	modkit "creditrisk/internal/modkit"
	"creditrisk/internal/modkit/httpkit"
	aihttp "creditrisk/internal/services/api/ai/http"
	aisvc "creditrisk/internal/services/api/ai/service"
)

// Module implements the modkit.Module interface
type Module struct {
	built modkit.Built
}

// New constructs the ai module; model is the registry name pings are sent to
func New(gen aisvc.Generator, model string, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ai"), modkit.WithPrefix("/ai")}, opts...)...)
	s := aisvc.New(gen, model)

	external := b.Register
	b.Register = func(r httpkit.Router) {
		aihttp.Register(r, s)
		external(r)
	}
	return &Module{built: b}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { m.built.Mount(r) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return m.built.Name }
