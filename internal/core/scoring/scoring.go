// Package scoring computes the transparent base score, the FPO boost and the final risk category.
// Everything here is pure: the same input always yields the same result.
package scoring

import (
	"creditrisk/internal/core/normalize"
)

// Repayment history levels
const (
	RepaymentExcellent = "excellent"
	RepaymentGood      = "good"
	RepaymentFair      = "fair"
	RepaymentPoor      = "poor"
	RepaymentNone      = "none"
)

// FPO track records
const (
	TrackGood        = "good"
	TrackNew         = "new"
	TrackBad         = "bad"
	TrackUnspecified = "unspecified"
)

// Risk categories
const (
	CategoryLow    = "Low Risk"
	CategoryMedium = "Medium Risk"
	CategoryHigh   = "High Risk"
)

// MinScore and MaxScore bound every clamped score
const (
	MinScore = 0
	MaxScore = 100
)

// Applicant is the subset of applicant data the formula reads
type Applicant struct {
	RepaymentHistory   string
	MonthlyIncome      float64
	MonthlyDebtPayment float64
	BusinessYears      float64
	HasCollateral      bool
	Crops              []string
	MultipleCrops      bool // read only when Crops is nil
	IsFPOMember        bool
	FPOTrackRecord     string
}

// Breakdown holds the five named sub-scores
type Breakdown struct {
	RepaymentHistory int `json:"repaymentHistory"`
	DebtToIncome     int `json:"debtToIncome"`
	BusinessHistory  int `json:"businessHistory"`
	Collateral       int `json:"collateral"`
	Diversification  int `json:"diversification"`
}

// Sum adds the sub-scores without clamping
func (b Breakdown) Sum() int {
	return b.RepaymentHistory + b.DebtToIncome + b.BusinessHistory + b.Collateral + b.Diversification
}

// BaseMeta carries derived figures shown next to the base score
type BaseMeta struct {
	// DebtToIncomeRatio is debt/income, nil when income is not positive
	DebtToIncomeRatio *float64 `json:"debtToIncomeRatio"`
}

// BaseResult is the deterministic score before any AI adjustment
type BaseResult struct {
	Total     int       `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
	Meta      BaseMeta  `json:"meta"`
}

// Base scores an applicant on the five transparent factors
func Base(a Applicant) BaseResult {
	b := Breakdown{
		RepaymentHistory: RepaymentScore(a.RepaymentHistory),
		DebtToIncome:     DTIScore(a.MonthlyDebtPayment, a.MonthlyIncome),
		BusinessHistory:  BusinessScore(a.BusinessYears),
		Collateral:       CollateralScore(a.HasCollateral),
		Diversification:  diversification(a),
	}
	var meta BaseMeta
	if a.MonthlyIncome > 0 {
		r := a.MonthlyDebtPayment / a.MonthlyIncome
		meta.DebtToIncomeRatio = &r
	}
	return BaseResult{Total: Clamp(b.Sum()), Breakdown: b, Meta: meta}
}

// RepaymentScore maps a repayment level; unknown levels score like "none"
func RepaymentScore(level string) int {
	switch normalize.Fold(level) {
	case RepaymentExcellent:
		return 35
	case RepaymentGood:
		return 28
	case RepaymentFair:
		return 20
	case RepaymentPoor:
		return 10
	default:
		return 18
	}
}

// DTIScore scores the debt to income percentage; a non-positive income is treated as 999%
func DTIScore(debt, income float64) int {
	ratio := 999.0
	if income > 0 {
		ratio = debt / income * 100
	}
	switch {
	case ratio < 30:
		return 30
	case ratio < 40:
		return 26
	case ratio < 50:
		return 22
	case ratio < 60:
		return 18
	case ratio < 70:
		return 14
	default:
		return 8
	}
}

// BusinessScore rewards operating history
func BusinessScore(years float64) int {
	switch {
	case years > 10:
		return 15
	case years >= 5:
		return 12
	case years >= 3:
		return 9
	case years >= 1:
		return 6
	default:
		return 3
	}
}

// CollateralScore is 10 with collateral
func CollateralScore(has bool) int {
	if has {
		return 10
	}
	return 0
}

// DiversificationScore rewards growing two or more crops
func DiversificationScore(crops int) int {
	if crops >= 2 {
		return 10
	}
	return 5
}

// diversification counts the crop list when one was given, otherwise trusts the flag
func diversification(a Applicant) int {
	if a.Crops == nil && a.MultipleCrops {
		return DiversificationScore(2)
	}
	return DiversificationScore(len(a.Crops))
}

// FPOBoost is the farmer producer organisation bonus
func FPOBoost(member bool, track string) int {
	if !member {
		return 0
	}
	switch normalize.Fold(track) {
	case TrackGood:
		return 10
	case TrackBad:
		return 0
	default:
		return 5
	}
}

// GoodStanding reports membership with a good track record
func GoodStanding(member bool, track string) bool {
	return member && normalize.Fold(track) == TrackGood
}

// Category buckets a final score
func Category(final int) string {
	switch {
	case final >= 75:
		return CategoryLow
	case final >= 50:
		return CategoryMedium
	default:
		return CategoryHigh
	}
}

// Clamp bounds n to [MinScore, MaxScore]
func Clamp(n int) int {
	return max(MinScore, min(MaxScore, n))
}

// Result is the composed score
type Result struct {
	BaseScore     int       `json:"baseScore"`
	BaseBreakdown Breakdown `json:"baseBreakdown"`
	AIAdjustment  int       `json:"aiAdjustment"`
	FPOBoost      int       `json:"fpoBoost"`
	RawFinalScore int       `json:"rawFinalScore"`
	FinalScore    int       `json:"finalScore"`
	RiskCategory  string    `json:"riskCategory"`
}

// Compose adds the AI adjustment and FPO boost to the base score and clamps the sum
func Compose(base BaseResult, aiAdjustment int, a Applicant) Result {
	boost := FPOBoost(a.IsFPOMember, a.FPOTrackRecord)
	raw := base.Total + aiAdjustment + boost
	final := Clamp(raw)
	return Result{
		BaseScore:     base.Total,
		BaseBreakdown: base.Breakdown,
		AIAdjustment:  aiAdjustment,
		FPOBoost:      boost,
		RawFinalScore: raw,
		FinalScore:    final,
		RiskCategory:  Category(final),
	}
}
