// Package http provides meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"creditrisk/internal/core/version"
	"creditrisk/internal/modkit/httpkit"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time

	// Ready pings the configured backends, nil means nothing to check
	Ready func(context.Context) error

	// ReadyTimeout bounds Ready, default 2s
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
	now  func() time.Time
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.ReadyTimeout <= 0 {
		d.ReadyTimeout = 2 * time.Second
	}
	h := &handlers{deps: d, now: time.Now}

	httpkit.Get(r, "/health", h.health)
	r.Get("/ready", httpkit.Handle(h.ready))
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Started string `json:"started"`
	Uptime  int64  `json:"uptime"`
	Now     string `json:"now"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string `json:"status"` // ok fail
	Error  string `json:"error,omitempty"`
	Now    string `json:"now"`
}

func (h *handlers) health(_ *http.Request) (any, error) {
	now := h.now()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
		Now:     now.UTC().Format(time.RFC3339),
	}, nil
}

// ready answers 503 with the joined backend errors so probes can key off the status alone
func (h *handlers) ready(r *http.Request) httpkit.Response {
	out := ReadyResponse{Status: "ok", Now: h.now().UTC().Format(time.RFC3339)}
	if h.deps.Ready == nil {
		return httpkit.OK(out)
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.deps.ReadyTimeout)
	defer cancel()
	if err := h.deps.Ready(ctx); err != nil {
		out.Status = "fail"
		out.Error = err.Error()
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: out}
	}
	return httpkit.OK(out)
}

func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}
