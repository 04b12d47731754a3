package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shivbijlani/lifetime/internal/domain"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// testScenario is a mid-career household with one mortgage and no supports.
func testScenario() domain.ScenarioParams {
	return domain.ScenarioParams{
		StartYear:          2025,
		CurrentAge:         40,
		SpouseAge:          39,
		RetirementAge:      60,
		MaxAge:             90,
		Stocks0:            d("1000000"),
		Cash0:              d("200000"),
		RealEstate0:        d("800000"),
		StockReturn:        d("0.07"),
		CashReturn:         d("0.02"),
		RealEstateReturn:   d("0.03"),
		Inflation:          d("0.03"),
		UseGlidepath:       true,
		GPRetMinus20:       d("0.1"),
		GPRetMinus10:       d("0.085"),
		GPRetMinus5:        d("0.065"),
		GPRet0:             d("0.05"),
		GPPostRet:          d("0.04"),
		Contribution0:      d("50000"),
		ContributionGrowth: d("0.03"),
		BaseMonthly:        d("6000"),
		VacationMonthly:    d("1000"),
		HomeUpgradesAnnual: d("12000"),
		SpendFromStocks:    true,
		Mortgages: []domain.MortgagePlan{{
			Name:           "Mortgage 1",
			Principal:      d("300000"),
			Rate:           d("0.06"),
			PaymentMonthly: d("1799"),
			StartYear:      2025,
			StartMonth:     1,
			EndYear:        2054,
			EndMonth:       12,
		}},
		Supports: []domain.SupportPlan{},
	}
}

func assertDecimalEqual(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s got %s", want, got.String())
}

func assertDecimalNear(t *testing.T, want float64, got decimal.Decimal, delta float64) {
	t.Helper()
	f, _ := got.Float64()
	assert.InDelta(t, want, f, delta)
}
