package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
	pkgdecimal "github.com/shivbijlani/lifetime/pkg/decimal"
)

// carryPrecision bounds the decimal places kept on balances carried from one
// period to the next.
const carryPrecision = 10

var one = decimal.NewFromInt(1)

// yearState is everything carried from one simulated year into the next.
type yearState struct {
	stocks     decimal.Decimal
	cash       decimal.Decimal
	realEstate decimal.Decimal
	mortgages  []MortgageState

	inflationFactor    decimal.Decimal
	contributionFactor decimal.Decimal
}

func initialState(p domain.ScenarioParams) yearState {
	mortgages := make([]MortgageState, len(p.Mortgages))
	for i, m := range p.Mortgages {
		mortgages[i] = NewMortgageState(m)
	}
	return yearState{
		stocks:             p.Stocks0,
		cash:               p.Cash0,
		realEstate:         p.RealEstate0,
		mortgages:          mortgages,
		inflationFactor:    one,
		contributionFactor: one,
	}
}

// Project simulates p year by year and returns one row per year from
// StartYear through StartYear+(MaxAge-CurrentAge). p is not modified.
func Project(p domain.ScenarioParams) []domain.Row {
	years := p.ProjectionYears()
	rows := make([]domain.Row, 0, years)
	state := initialState(p.Clone())
	for i := 0; i < years; i++ {
		var row domain.Row
		state, row = step(p, state, i)
		rows = append(rows, row)
	}
	return rows
}

// step runs year index i and returns the state for year i+1.
func step(p domain.ScenarioParams, s yearState, i int) (yearState, domain.Row) {
	year := p.StartYear + i
	age := p.CurrentAge + i
	working := age < p.RetirementAge

	contribution := decimal.Zero
	if working {
		contribution = p.Contribution0.Mul(s.contributionFactor)
	}

	expenses := domain.ExpenseBreakdown{
		Base:     pkgdecimal.Annual(p.BaseMonthly).Mul(s.inflationFactor),
		Vacation: pkgdecimal.Annual(p.VacationMonthly).Mul(s.inflationFactor),
		Upgrades: p.HomeUpgradesAnnual.Mul(s.inflationFactor),
	}

	mortgages, mortgageYear, mortgageBalance := AmortizeAll(s.mortgages, year)
	expenses.Mortgage = mortgageYear.Expense()

	support := SupportForYear(p.Supports, year)
	expenses.ElderCare = support.ElderCare
	expenses.ChildSupport = support.ChildSupport
	expenses.SupportTotal = support.Total()

	incomeFunded := expenses.IncomeFunded()
	totalExpenses := incomeFunded.Add(expenses.SupportTotal)
	income := decimal.Zero
	if working {
		income = incomeFunded
	}
	savingsFunded := pkgdecimal.NonNegative(totalExpenses.Sub(income))

	stockReturn := StockReturnFor(p, age)
	stocks := s.stocks.Mul(one.Add(stockReturn)).Add(contribution)
	cash := s.cash.Mul(one.Add(p.CashReturn))
	realEstate := s.realEstate.Mul(one.Add(p.RealEstateReturn))

	w := ApplyWaterfall(stocks, cash, savingsFunded, p.SpendFromStocks)

	netWorth := decimal.Zero
	if !w.Shortfall {
		netWorth = w.Stocks.Add(w.Cash).Add(realEstate.Sub(mortgageBalance))
	}

	row := domain.Row{
		Year:               year,
		Age:                age,
		Working:            working,
		StockReturnApplied: stockReturn,
		Contribution:       contribution,
		Income:             income,
		Expenses:           expenses,
		Totals: domain.YearTotals{
			TotalExpenses:         totalExpenses,
			SavingsFundedExpenses: savingsFunded,
			DrawnFromStocks:       w.DrawnFromStocks,
			DrawnFromCash:         w.DrawnFromCash,
			StocksEnd:             w.Stocks,
			CashEnd:               w.Cash,
			RealEstateEnd:         realEstate,
			MortgageBalance:       mortgageBalance,
			NetWorth:              netWorth,
			Shortfall:             w.Shortfall,
		},
	}

	next := yearState{
		stocks:             w.Stocks.Round(carryPrecision),
		cash:               w.Cash.Round(carryPrecision),
		realEstate:         realEstate.Round(carryPrecision),
		mortgages:          mortgages,
		inflationFactor:    s.inflationFactor.Mul(one.Add(p.Inflation)).Round(carryPrecision + 6),
		contributionFactor: s.contributionFactor.Mul(one.Add(p.ContributionGrowth)).Round(carryPrecision + 6),
	}
	return next, row
}
