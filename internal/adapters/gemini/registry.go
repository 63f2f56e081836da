package gemini

import (
	"sort"
	"strings"

	perr "creditrisk/internal/platform/errors"
)

// Handle is a prepared model: its name and generation settings
type Handle struct {
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// Registry maps model names to handles. It is filled once by NewRegistry and only read afterwards,
// so concurrent lookups need no locking.
type Registry struct {
	handles map[string]Handle
	def     string
}

// NewRegistry registers the default handle plus any extra ones; the first handle is the default
func NewRegistry(def Handle, extra ...Handle) *Registry {
	r := &Registry{handles: make(map[string]Handle, 1+len(extra)), def: def.Model}
	for _, h := range append([]Handle{def}, extra...) {
		h.Model = strings.TrimSpace(h.Model)
		if h.Model == "" {
			continue
		}
		r.handles[h.Model] = h
	}
	return r
}

// RegistryFromConfig builds the registry for the configured model
func RegistryFromConfig(c Config) *Registry {
	return NewRegistry(Handle{Model: c.Model, Temperature: c.Temperature, MaxOutputTokens: c.MaxOutputTokens})
}

// Lookup returns the handle for name; an empty name selects the default model
func (r *Registry) Lookup(name string) (Handle, error) {
	if r == nil {
		return Handle{}, perr.Configf("gemini: no model registry configured")
	}
	if name = strings.TrimSpace(name); name == "" {
		name = r.def
	}
	h, ok := r.handles[name]
	if !ok {
		return Handle{}, perr.WithField(perr.Configf("gemini: unknown model %q", name), "model")
	}
	return h, nil
}

// Default is the default model name
func (r *Registry) Default() string { return r.def }

// Models lists registered model names in order
func (r *Registry) Models() []string {
	out := make([]string, 0, len(r.handles))
	for k := range r.handles {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
