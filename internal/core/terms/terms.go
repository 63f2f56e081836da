// Package terms turns a final score and repayment capacity into indicative loan terms
package terms

import (
	"math"

	"creditrisk/internal/core/scoring"
)

// Decisions
const (
	DecisionApprove = "approve"
	DecisionReview  = "review"
	DecisionReject  = "reject"
)

// Notes attached to every offer
var Notes = []string{
	"MVP terms: based on score + repayment capacity cap.",
	"Final decision can be overridden by loan officer in Phase 2.",
}

const (
	incomeShare     = 0.30
	disposableShare = 0.80
	minRate         = 10.0
)

// Input is what the calculator reads
type Input struct {
	MonthlyIncome      float64
	MonthlyDebtPayment float64
	IsFPOMember        bool
	FPOTrackRecord     string
	FinalScore         int
}

// LoanTerms is the indicative offer
type LoanTerms struct {
	Decision                string   `json:"decision"`
	RecommendedAmount       float64  `json:"recommendedAmount"`
	InterestRateAnnual      float64  `json:"interestRateAnnual"`
	TenureMonths            int      `json:"tenureMonths"`
	EstimatedMonthlyPayment float64  `json:"estimatedMonthlyPayment"`
	PaymentCap              float64  `json:"paymentCap"`
	Notes                   []string `json:"notes"`
}

// Calculate derives terms from the score and the monthly payment the applicant can carry
func Calculate(in Input) LoanTerms {
	income := finite(in.MonthlyIncome)
	disposable := income - finite(in.MonthlyDebtPayment)
	paymentCap := max(0, min(income*incomeShare, disposable*disposableShare))

	decision, rate, months := DecisionReject, 0.0, 0
	switch {
	case in.FinalScore >= 75:
		decision, rate, months = DecisionApprove, 12, 18
	case in.FinalScore >= 50:
		decision, rate, months = DecisionReview, 16, 12
	}

	if decision != DecisionReject && scoring.GoodStanding(in.IsFPOMember, in.FPOTrackRecord) {
		rate = math.Max(minRate, rate-1)
	}

	out := LoanTerms{
		Decision:           decision,
		InterestRateAnnual: rate,
		TenureMonths:       months,
		PaymentCap:         math.Round(paymentCap),
		Notes:              append([]string(nil), Notes...),
	}
	if decision != DecisionReject && paymentCap > 0 {
		out.RecommendedAmount = math.Floor(Principal(paymentCap, rate, months)/10) * 10
		out.EstimatedMonthlyPayment = math.Round(paymentCap)
	}
	return out
}

// Principal is the annuity present value of paying payment monthly for months at annualRate percent
func Principal(payment, annualRate float64, months int) float64 {
	if payment <= 0 || months <= 0 || !isFinite(payment) {
		return 0
	}
	r := annualRate / 100 / 12
	if r <= 0 || !isFinite(r) {
		return payment * float64(months)
	}
	return payment * (1 - math.Pow(1+r, -float64(months))) / r
}

func finite(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return f
}

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
