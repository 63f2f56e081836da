package domain

import (
	"creditrisk/internal/core/scoring"
	"creditrisk/internal/core/terms"
)

// Explanations returned with every assessment
const (
	ExplainBase    = "Base score computed from 5 transparent factors."
	ExplainFormula = "final = base + aiAdjustment + fpoBoost (capped 0..100)"
)

// Signals groups the model's risk and positive signals
type Signals struct {
	RiskSignals     []string `json:"riskSignals"`
	PositiveSignals []string `json:"positiveSignals"`
}

// Meta flags degraded results
type Meta struct {
	AIFallback      bool   `json:"aiFallback"`
	TimeoutFallback bool   `json:"timeoutFallback"`
	AISource        Source `json:"aiSource"`
	LatencyMs       int64  `json:"latencyMs"`
}

// Explainable spells out how the final score was built
type Explainable struct {
	Base         string `json:"base"`
	FinalFormula string `json:"finalFormula"`
}

// Assessment is the full risk assessment response
type Assessment struct {
	OK bool `json:"ok"`
	scoring.Result
	AIReasoning  []string        `json:"aiReasoning"`
	AISignals    Signals         `json:"aiSignals"`
	Meta         Meta            `json:"meta"`
	LoanTerms    terms.LoanTerms `json:"loanTerms"`
	Explainable  Explainable     `json:"explainable"`
	AssessmentID string          `json:"assessmentId,omitempty"`
}

// NewAssessment assembles the response from its parts
func NewAssessment(res scoring.Result, ai AIAdjustment, lt terms.LoanTerms, latencyMs int64) Assessment {
	return Assessment{
		OK:          true,
		Result:      res,
		AIReasoning: ai.Reasoning,
		AISignals:   Signals{RiskSignals: ai.RiskSignals, PositiveSignals: ai.PositiveSignals},
		Meta: Meta{
			AIFallback:      ai.Fallback(),
			TimeoutFallback: ai.Source == SourceTimeout,
			AISource:        ai.Source,
			LatencyMs:       latencyMs,
		},
		LoanTerms:   lt,
		Explainable: Explainable{Base: ExplainBase, FinalFormula: ExplainFormula},
	}
}
