package domain

import (
	"time"

	"creditrisk/internal/core/scoring"
	"creditrisk/internal/core/terms"
)

// RecordVersion is bumped when the stored document shape changes
const RecordVersion = 1

// Scores is the stored score block
type Scores struct {
	BaseScore     int               `json:"baseScore"`
	AIAdjustment  int               `json:"aiAdjustment"`
	FPOBoost      int               `json:"fpoBoost"`
	RawFinalScore int               `json:"rawFinalScore"`
	FinalScore    int               `json:"finalScore"`
	RiskCategory  string            `json:"riskCategory"`
	BaseBreakdown scoring.Breakdown `json:"baseBreakdown"`
}

// Reasoning is the stored explanation block
type Reasoning struct {
	AIReasoning []string `json:"aiReasoning"`
	AISignals   Signals  `json:"aiSignals"`
}

// RecordMeta is the stored flag block
type RecordMeta struct {
	LatencyMs       int64 `json:"latencyMs"`
	AIFallback      bool  `json:"aiFallback"`
	TimeoutFallback bool  `json:"timeoutFallback"`
}

// Record is one persisted assessment
type Record struct {
	ID         string          `json:"id"`
	FarmerData ApplicantInput  `json:"farmerData"`
	Scores     Scores          `json:"scores"`
	Reasoning  Reasoning       `json:"reasoning"`
	LoanTerms  terms.LoanTerms `json:"loanTerms"`
	Location   string          `json:"location,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
	Meta       RecordMeta      `json:"meta"`
	Version    int             `json:"version"`
}

// NewRecord derives the stored document from an assessment
func NewRecord(id string, in ApplicantInput, a Assessment, at time.Time) Record {
	return Record{
		ID:         id,
		FarmerData: in,
		Scores: Scores{
			BaseScore:     a.BaseScore,
			AIAdjustment:  a.AIAdjustment,
			FPOBoost:      a.FPOBoost,
			RawFinalScore: a.RawFinalScore,
			FinalScore:    a.FinalScore,
			RiskCategory:  a.RiskCategory,
			BaseBreakdown: a.BaseBreakdown,
		},
		Reasoning: Reasoning{AIReasoning: a.AIReasoning, AISignals: a.AISignals},
		LoanTerms: a.LoanTerms,
		Location:  in.Location,
		CreatedAt: at.UTC(),
		Meta: RecordMeta{
			LatencyMs:       a.Meta.LatencyMs,
			AIFallback:      a.Meta.AIFallback,
			TimeoutFallback: a.Meta.TimeoutFallback,
		},
		Version: RecordVersion,
	}
}
