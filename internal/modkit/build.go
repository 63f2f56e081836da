package modkit

import (
	"net/http"
	"strings"

	"creditrisk/internal/modkit/httpkit"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Register func(httpkit.Router)
}

// Build applies Option funcs and returns a plain struct; the prefix is normalised to a leading slash
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:     c.name,
		Prefix:   normalizePrefix(c.prefix),
		Mw:       append([]func(http.Handler) http.Handler(nil), c.mw...),
		Register: c.register,
	}
}

// Mount attaches the module's routes under its prefix, or directly on r when there is none
func (b Built) Mount(r httpkit.Router) {
	if b.Prefix == "" {
		if len(b.Mw) > 0 {
			r.Group(func(g httpkit.Router) {
				g.Use(b.Mw...)
				b.Register(g)
			})
			return
		}
		b.Register(r)
		return
	}
	httpkit.MountUnder(r, b.Prefix, b.Mw, b.Register)
}

func normalizePrefix(p string) string {
	p = strings.TrimSpace(p)
	if p == "" || p == "/" {
		return ""
	}
	return "/" + strings.Trim(p, "/")
}
