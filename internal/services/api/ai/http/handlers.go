// Package http provides the model ping endpoint
package http

import (
	stdhttp "net/http"

	"creditrisk/internal/modkit/httpkit"
	svc "creditrisk/internal/services/api/ai/service"
)

// PingInput is the optional ping body
type PingInput struct {
	Text string `json:"text" validate:"max=2000"`
}

// Register mounts the ai endpoints
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[PingInput](r, "/ping", h.ping, httpkit.JSONOptions{
		MaxBytes:        16 << 10,
		DisallowUnknown: true,
		AllowEmptyBody:  true,
	})
}

type handlers struct{ svc svc.Service }

func (h *handlers) ping(r *stdhttp.Request, in PingInput) (any, error) {
	return h.svc.Ping(r.Context(), in.Text)
}
