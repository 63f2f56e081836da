// Package http provides http transport for assessments
package http

import (
	stdhttp "net/http"

	"creditrisk/internal/modkit/httpkit"
	"creditrisk/internal/services/api/assessment/domain"
)

// Register mounts assessment endpoints on the given router
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}
	// unknown fields are kept as applicant context, not rejected
	httpkit.PostJSON[domain.ApplicantInput](r, "/", h.assess, httpkit.JSONOptions{MaxBytes: 1 << 20})
}

type handlers struct{ svc domain.ServicePort }

// assess scores one applicant; model trouble degrades inside the service, so errors here are 400 or 500
func (h *handlers) assess(r *stdhttp.Request, in domain.ApplicantInput) (any, error) {
	return h.svc.Assess(r.Context(), in)
}
