package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func farmer() Applicant {
	return Applicant{
		RepaymentHistory:   "good",
		MonthlyIncome:      1200,
		MonthlyDebtPayment: 300,
		BusinessYears:      4,
		HasCollateral:      true,
		Crops:              []string{"rice", "vegetables"},
		IsFPOMember:        true,
		FPOTrackRecord:     "good",
	}
}

func TestBase_ReferenceFarmer(t *testing.T) {
	t.Parallel()

	got := Base(farmer())
	assert.Equal(t, Breakdown{
		RepaymentHistory: 28,
		DebtToIncome:     30,
		BusinessHistory:  9,
		Collateral:       10,
		Diversification:  10,
	}, got.Breakdown)
	assert.Equal(t, 87, got.Total)
	require.NotNil(t, got.Meta.DebtToIncomeRatio)
	assert.InDelta(t, 0.25, *got.Meta.DebtToIncomeRatio, 1e-9)
}

func TestCompose_ReferenceFarmer(t *testing.T) {
	t.Parallel()

	a := farmer()
	res := Compose(Base(a), 0, a)
	assert.Equal(t, 10, res.FPOBoost)
	assert.Equal(t, 97, res.RawFinalScore)
	assert.Equal(t, 97, res.FinalScore)
	assert.Equal(t, CategoryLow, res.RiskCategory)
}

func TestBase_ZeroIncome(t *testing.T) {
	t.Parallel()

	a := farmer()
	a.MonthlyIncome = 0
	got := Base(a)
	assert.Equal(t, 8, got.Breakdown.DebtToIncome)
	assert.Nil(t, got.Meta.DebtToIncomeRatio)
}

func TestRepaymentScore(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		"excellent": 35,
		"GOOD":      28,
		" fair ":    20,
		"poor":      10,
		"none":      18,
		"stellar":   18,
		"":          18,
	}
	for in, want := range cases {
		assert.Equal(t, want, RepaymentScore(in), "level %q", in)
	}
}

func TestDTIScore_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		debt, income float64
		want         int
	}{
		{0, 100, 30},
		{29.9, 100, 30},
		{30, 100, 26},
		{40, 100, 22},
		{50, 100, 18},
		{60, 100, 14},
		{70, 100, 8},
		{150, 100, 8},
		{10, -5, 8},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DTIScore(c.debt, c.income), "debt=%v income=%v", c.debt, c.income)
	}
}

func TestBusinessScore_Boundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		years float64
		want  int
	}{
		{0, 3}, {0.9, 3}, {1, 6}, {3, 9}, {4.5, 9}, {5, 12}, {10, 12}, {10.5, 15},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BusinessScore(c.years), "years=%v", c.years)
	}
}

func TestDiversificationAndCollateral(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5, DiversificationScore(0))
	assert.Equal(t, 5, DiversificationScore(1))
	assert.Equal(t, 10, DiversificationScore(2))

	flagged := Applicant{MultipleCrops: true}
	assert.Equal(t, 10, Base(flagged).Breakdown.Diversification)
	flagged.Crops = []string{}
	assert.Equal(t, 5, Base(flagged).Breakdown.Diversification, "an explicit list wins over the flag")

	assert.Equal(t, 10, CollateralScore(true))
	assert.Equal(t, 0, CollateralScore(false))
}

func TestFPOBoost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, FPOBoost(false, "good"))
	assert.Equal(t, 10, FPOBoost(true, "Good"))
	assert.Equal(t, 5, FPOBoost(true, "new"))
	assert.Equal(t, 0, FPOBoost(true, "BAD"))
	assert.Equal(t, 5, FPOBoost(true, ""))
	assert.Equal(t, 5, FPOBoost(true, "unspecified"))
	assert.True(t, GoodStanding(true, " good"))
	assert.False(t, GoodStanding(false, "good"))
}

func TestCategory_Thresholds(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CategoryHigh, Category(0))
	assert.Equal(t, CategoryHigh, Category(49))
	assert.Equal(t, CategoryMedium, Category(50))
	assert.Equal(t, CategoryMedium, Category(74))
	assert.Equal(t, CategoryLow, Category(75))
	assert.Equal(t, CategoryLow, Category(100))
}

func TestCompose_ClampsAndStaysPure(t *testing.T) {
	t.Parallel()

	a := Applicant{RepaymentHistory: "excellent", MonthlyIncome: 1000, BusinessYears: 20, HasCollateral: true,
		Crops: []string{"a", "b"}, IsFPOMember: true, FPOTrackRecord: "good"}
	base := Base(a)
	require.Equal(t, 100, base.Total)

	high := Compose(base, 15, a)
	assert.Equal(t, 125, high.RawFinalScore)
	assert.Equal(t, 100, high.FinalScore)

	again := Compose(base, 15, a)
	assert.Equal(t, high, again)

	poor := Applicant{RepaymentHistory: "poor", MonthlyIncome: 0}
	low := Compose(Base(poor), -5, poor)
	assert.GreaterOrEqual(t, low.FinalScore, MinScore)
	assert.Equal(t, CategoryHigh, low.RiskCategory)
}

func TestCompose_BoundsOverGrid(t *testing.T) {
	t.Parallel()

	levels := []string{"excellent", "good", "fair", "poor", "none"}
	tracks := []string{"good", "new", "bad", ""}
	for _, lvl := range levels {
		for _, tr := range tracks {
			for adj := -5; adj <= 15; adj += 5 {
				a := Applicant{RepaymentHistory: lvl, MonthlyIncome: 500, MonthlyDebtPayment: 450,
					IsFPOMember: tr != "", FPOTrackRecord: tr}
				r := Compose(Base(a), adj, a)
				assert.True(t, r.FinalScore >= 0 && r.FinalScore <= 100, "final %d out of range", r.FinalScore)
				assert.Equal(t, Category(r.FinalScore), r.RiskCategory)
			}
		}
	}
}
