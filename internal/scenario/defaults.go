package scenario

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/pkg/dateutil"
	"github.com/shivbijlani/lifetime/pkg/rng"
)

// Fixed assumptions shared by every generated scenario.
var (
	defaultStockReturn = decimal.RequireFromString("0.07")
	defaultCashReturn  = decimal.RequireFromString("0.02")
	defaultInflation   = decimal.RequireFromString("0.028")

	defaultGPRetMinus20 = decimal.RequireFromString("0.1")
	defaultGPRetMinus10 = decimal.RequireFromString("0.085")
	defaultGPRetMinus5  = decimal.RequireFromString("0.065")
	defaultGPRet0       = decimal.RequireFromString("0.05")
	defaultGPPostRet    = decimal.RequireFromString("0.04")
)

// Defaults generates the default scenario for the current hour.
func Defaults() domain.ScenarioParams {
	return DefaultsAt(nowFunc())
}

// DefaultsAt generates the default scenario that would be produced at now.
// Two calls within the same UTC hour return identical scenarios.
func DefaultsAt(now time.Time) domain.ScenarioParams {
	return generate(rng.NewSource(rng.SeedFromTime(now)), dateutil.NextProjectionYear(now))
}

func generate(src *rng.Source, startYear int) domain.ScenarioParams {
	// The draw order below is part of the output contract; reordering changes
	// every generated scenario.
	currentAge := src.Int(32, 46)
	spouseAge := clampInt(currentAge+src.Int(-3, 3), 30, 60)
	retirementAge := clampInt(currentAge+src.Int(18, 24), currentAge+15, 68)
	maxAge := retirementAge + src.Int(25, 33)

	stocks0 := src.Rounded(900_000, 2_200_000, 25_000)
	cash0 := src.Rounded(120_000, 260_000, 10_000)
	realEstate0 := src.Rounded(850_000, 1_350_000, 25_000)

	principal := src.Rounded(rng.RoundHalfUp(realEstate0*0.35), rng.RoundHalfUp(realEstate0*0.6), 10_000)
	rate := src.Rounded(0.0375, 0.055, 0.0005)
	termYears := src.Int(15, 25)
	endMonth := src.Int(1, 12)

	realEstateReturn := src.Rounded(0.025, 0.04, 0.0005)

	baseMonthly := src.Rounded(6_000, 8_500, 250)
	vacationMonthly := src.Rounded(900, 1_400, 50)
	homeUpgrades := src.Rounded(10_000, 18_000, 1_000)

	contribution0 := src.Rounded(40_000, 70_000, 2_500)
	contributionGrowth := src.Rounded(0.025, 0.04, 0.0005)

	principalDec := money(principal)
	rateDec := rateValue(rate)

	return domain.ScenarioParams{
		StartYear:     startYear,
		CurrentAge:    currentAge,
		SpouseAge:     spouseAge,
		RetirementAge: retirementAge,
		MaxAge:        maxAge,

		Stocks0:     money(stocks0),
		Cash0:       money(cash0),
		RealEstate0: money(realEstate0),

		StockReturn:      defaultStockReturn,
		CashReturn:       defaultCashReturn,
		RealEstateReturn: rateValue(realEstateReturn),
		Inflation:        defaultInflation,

		UseGlidepath: true,
		GPRetMinus20: defaultGPRetMinus20,
		GPRetMinus10: defaultGPRetMinus10,
		GPRetMinus5:  defaultGPRetMinus5,
		GPRet0:       defaultGPRet0,
		GPPostRet:    defaultGPPostRet,

		Contribution0:      money(contribution0),
		ContributionGrowth: rateValue(contributionGrowth),

		BaseMonthly:        money(baseMonthly),
		VacationMonthly:    money(vacationMonthly),
		HomeUpgradesAnnual: money(homeUpgrades),

		SpendFromStocks: true,

		Mortgages: []domain.MortgagePlan{{
			Name:           mortgageName(1),
			Principal:      principalDec,
			Rate:           rateDec,
			PaymentMonthly: MortgagePayment(principalDec, rateDec, termYears),
			StartYear:      startYear,
			StartMonth:     1,
			EndYear:        startYear + termYears,
			EndMonth:       endMonth,
		}},
		Supports: []domain.SupportPlan{},
	}
}

// MortgagePayment is the level monthly payment, rounded to whole dollars, that
// retires principal over termYears at annualRate.
func MortgagePayment(principal, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	p, _ := principal.Float64()
	r, _ := annualRate.Float64()
	monthlyRate := r / 12
	n := float64(termYears * 12)
	if n <= 0 {
		return decimal.Zero
	}
	if monthlyRate == 0 {
		return decimal.NewFromFloat(rng.RoundHalfUp(p / n))
	}
	payment := p * monthlyRate / (1 - math.Pow(1+monthlyRate, -n))
	return decimal.NewFromFloat(rng.RoundHalfUp(payment))
}

// money converts a generated whole-dollar amount.
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(math.Round(v))
}

// rateValue converts a generated rate, dropping float noise from step rounding
// (0.0005 multiples need at most four places).
func rateValue(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(4)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
