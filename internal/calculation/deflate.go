package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
	pkgdecimal "github.com/shivbijlani/lifetime/pkg/decimal"
)

// Deflate restates rows in startYear dollars: every monetary value of a row is
// divided by (1+inflation)^(year-startYear). Rates and flags are unchanged and
// rows itself is not modified.
func Deflate(rows []domain.Row, startYear int, inflation decimal.Decimal) []domain.Row {
	out := make([]domain.Row, len(rows))
	for i, r := range rows {
		factor := pkgdecimal.GrowthFactor(inflation, r.Year-startYear)
		if factor.IsZero() {
			out[i] = r
			continue
		}
		toReal := func(d decimal.Decimal) decimal.Decimal { return d.Div(factor) }

		r.Contribution = toReal(r.Contribution)
		r.Income = toReal(r.Income)
		r.Expenses = domain.ExpenseBreakdown{
			Base:         toReal(r.Expenses.Base),
			Mortgage:     toReal(r.Expenses.Mortgage),
			Vacation:     toReal(r.Expenses.Vacation),
			Upgrades:     toReal(r.Expenses.Upgrades),
			ElderCare:    toReal(r.Expenses.ElderCare),
			ChildSupport: toReal(r.Expenses.ChildSupport),
			SupportTotal: toReal(r.Expenses.SupportTotal),
		}
		t := r.Totals
		r.Totals = domain.YearTotals{
			TotalExpenses:         toReal(t.TotalExpenses),
			SavingsFundedExpenses: toReal(t.SavingsFundedExpenses),
			DrawnFromStocks:       toReal(t.DrawnFromStocks),
			DrawnFromCash:         toReal(t.DrawnFromCash),
			StocksEnd:             toReal(t.StocksEnd),
			CashEnd:               toReal(t.CashEnd),
			RealEstateEnd:         toReal(t.RealEstateEnd),
			MortgageBalance:       toReal(t.MortgageBalance),
			NetWorth:              toReal(t.NetWorth),
			Shortfall:             t.Shortfall,
		}
		out[i] = r
	}
	return out
}

// ToRealDollars returns a copy of report restated in start-year dollars, with
// the summary recomputed from the deflated rows.
func ToRealDollars(report *domain.ProjectionReport) *domain.ProjectionReport {
	if report.RealDollars {
		return report
	}
	p := report.Params
	rows := Deflate(report.Rows, p.StartYear, p.Inflation)
	return &domain.ProjectionReport{
		Name:        report.Name,
		RealDollars: true,
		Params:      p.Clone(),
		Rows:        rows,
		Summary:     Summarize(p, rows),
	}
}
