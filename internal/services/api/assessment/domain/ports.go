package domain

import "context"

// ServicePort defines the service contract for assessments
type ServicePort interface {
	Assess(ctx context.Context, in ApplicantInput) (Assessment, error)
}
