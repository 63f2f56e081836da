// Package service contains the assessment workflow
package service

import (
	"context"
	"errors"
	"time"

	"creditrisk/internal/adapters/gemini"
	"creditrisk/internal/core/scoring"
	"creditrisk/internal/core/terms"
	"creditrisk/internal/modkit/repokit"
	perr "creditrisk/internal/platform/errors"
	"creditrisk/internal/platform/logger"
	"creditrisk/internal/platform/metrics"
	"creditrisk/internal/platform/net/http/bind"
	"creditrisk/internal/services/api/assessment/cache"
	"creditrisk/internal/services/api/assessment/domain"
	"creditrisk/internal/services/api/assessment/extract"
	"creditrisk/internal/services/api/assessment/guardrails"
	"creditrisk/internal/services/api/assessment/repo"

	"github.com/google/uuid"
)

const cacheWriteTimeout = time.Second

// Service defines the service contract for assessments
type Service interface{ domain.ServicePort }

// Generator is the model seam, satisfied by *gemini.Caller
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// Option wires an optional collaborator
type Option func(*Svc)

// WithRepo persists every assessment through binder bound to db
func WithRepo(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) Option {
	return func(s *Svc) { s.repo = repokit.MustBind(binder, db) }
}

// WithCache memoises model adjustments
func WithCache(c cache.Cache) Option {
	return func(s *Svc) { s.cache = c }
}

// Svc implements the Service interface
type Svc struct {
	gen   Generator
	repo  repo.Repo
	cache cache.Cache
	opts  Options

	now   func() time.Time
	newID func() string
}

// New creates an assessment service; gen may be nil only when opts.DisableAI is set
func New(gen Generator, opts Options, extra ...Option) *Svc {
	if gen == nil && !opts.DisableAI {
		panic("assessment.Service requires a non nil Generator")
	}
	s := &Svc{gen: gen, opts: opts.withDefaults(), now: time.Now, newID: uuid.NewString}
	for _, o := range extra {
		o(s)
	}
	return s
}

// Assess scores one applicant. Only validation and configuration failures surface as errors;
// every model problem degrades to a zero adjustment with the matching source flag.
func (s *Svc) Assess(ctx context.Context, in domain.ApplicantInput) (domain.Assessment, error) {
	if err := bind.Validate(in); err != nil {
		return domain.Assessment{}, err
	}
	start := s.now()
	a := in.Applicant()
	base := scoring.Base(a)

	adj := domain.DisabledFallback()
	if !s.opts.DisableAI {
		prompt := extract.Prompt(in, base)
		var err error
		adj, err = guardrails.Race(ctx, s.opts.Deadline, func(sig context.Context) (domain.AIAdjustment, error) {
			return s.adjust(sig, prompt)
		})
		if err != nil {
			return domain.Assessment{}, err
		}
	}

	res := scoring.Compose(base, adj.Adjustment, a)
	lt := terms.Calculate(terms.Input{
		MonthlyIncome:      a.MonthlyIncome,
		MonthlyDebtPayment: a.MonthlyDebtPayment,
		IsFPOMember:        a.IsFPOMember,
		FPOTrackRecord:     a.FPOTrackRecord,
		FinalScore:         res.FinalScore,
	})
	took := s.now().Sub(start)
	out := domain.NewAssessment(res, adj, lt, took.Milliseconds())
	out.AssessmentID = s.persist(ctx, in, out)

	metrics.ObserveAssessment(string(adj.Source), took)
	logger.C(logger.WithAssessment(ctx, out.AssessmentID)).Info().
		Int("base", res.BaseScore).
		Int("ai", res.AIAdjustment).
		Int("fpo", res.FPOBoost).
		Int("final", res.FinalScore).
		Str("category", res.RiskCategory).
		Str("ai_source", string(adj.Source)).
		Dur("took", took).
		Msg("assessment scored")
	return out, nil
}

// adjust is the AI path raced against the deadline; sig is cancelled when the race is lost
func (s *Svc) adjust(sig context.Context, prompt string) (domain.AIAdjustment, error) {
	if s.cache != nil {
		if adj, ok := s.cache.Get(sig, prompt); ok {
			return adj, nil
		}
	}
	text, err := s.gen.Generate(sig, s.opts.Model, prompt)
	if err != nil {
		return s.degrade(sig, err)
	}
	adj := extract.Parse(text)
	if adj.Source == domain.SourceParse {
		logger.C(sig).Warn().Int("raw_len", len(text)).Msg("model output not parseable, using fallback")
	}
	if s.cache != nil {
		cctx, cancel := guardrails.Detached(sig, cacheWriteTimeout)
		s.cache.Put(cctx, prompt, adj)
		cancel()
	}
	return adj, nil
}

func (s *Svc) degrade(sig context.Context, err error) (domain.AIAdjustment, error) {
	switch {
	case gemini.IsTransient(err):
		logger.C(sig).Warn().Err(err).Msg("model unavailable, using fallback")
		return domain.UnavailableFallback(), nil
	case sig.Err() != nil && errors.Is(err, sig.Err()):
		// race already decided, nobody reads this
		return domain.AIAdjustment{}, err
	case perr.IsCode(err, perr.ErrorCodeConfig):
		return domain.AIAdjustment{}, err
	default:
		return domain.AIAdjustment{}, perr.Wrap(err, perr.ErrorCodeConfig, "model request rejected")
	}
}

func (s *Svc) persist(ctx context.Context, in domain.ApplicantInput, out domain.Assessment) string {
	if s.repo == nil {
		return ""
	}
	id := s.newID()
	pctx, cancel := guardrails.Detached(ctx, s.opts.PersistTimeout)
	defer cancel()
	if err := s.repo.Insert(pctx, domain.NewRecord(id, in, out, s.now())); err != nil {
		logger.C(ctx).Warn().Err(err).Msg("assessment not persisted")
		return ""
	}
	return id
}
