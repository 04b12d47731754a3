package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/logging"
	pkgdecimal "github.com/shivbijlani/lifetime/pkg/decimal"
)

// ProjectionEngine runs scenarios and summarizes their projections. It holds
// no state between runs and is safe for concurrent use.
type ProjectionEngine struct {
	Logger logging.Logger
}

// NewProjectionEngine creates an engine with a no-op logger
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{Logger: logging.NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l logging.Logger) {
	pe.Logger = logging.OrNop(l)
}

// Project runs the year-by-year simulation for params.
func (pe *ProjectionEngine) Project(params domain.ScenarioParams) []domain.Row {
	rows := Project(params)
	log := logging.OrNop(pe.Logger)
	log.Debugf("Projected %d years (%d-%d), %d mortgages, %d supports",
		len(rows), params.StartYear, params.EndYear(), len(params.Mortgages), len(params.Supports))
	for _, r := range rows {
		if r.Totals.Shortfall {
			log.Debugf("Shortfall in %d at age %d: savings-funded expenses %s exceed liquid assets",
				r.Year, r.Age, r.Totals.SavingsFundedExpenses.StringFixed(0))
			break
		}
	}
	return rows
}

// RunScenario validates params, projects them and attaches summary aggregates.
func (pe *ProjectionEngine) RunScenario(ctx context.Context, params domain.ScenarioParams) (*domain.ProjectionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("cannot project scenario: %w", err)
	}

	rows := pe.Project(params)
	return &domain.ProjectionReport{
		Params:  params.Clone(),
		Rows:    rows,
		Summary: Summarize(params, rows),
	}, nil
}

// IncomeFundedSubtotal is the first-year, uninflated cost of the expenses
// earnings cover while working: base and vacation spending, home upgrades and
// scheduled mortgage payments.
func IncomeFundedSubtotal(p domain.ScenarioParams) decimal.Decimal {
	total := pkgdecimal.Sum(
		pkgdecimal.Annual(p.BaseMonthly),
		pkgdecimal.Annual(p.VacationMonthly),
		p.HomeUpgradesAnnual,
	)
	for _, m := range p.Mortgages {
		total = total.Add(pkgdecimal.Annual(m.PaymentMonthly))
	}
	return total
}

// Summarize computes the aggregates shown alongside a projection.
func Summarize(p domain.ScenarioParams, rows []domain.Row) domain.ProjectionSummary {
	s := domain.ProjectionSummary{
		StartYear:            p.StartYear,
		EndYear:              p.EndYear(),
		Years:                len(rows),
		IncomeFundedSubtotal: IncomeFundedSubtotal(p),
		FinalNetWorth:        decimal.Zero,
		PeakNetWorth:         decimal.Zero,
		TotalContributions:   decimal.Zero,
		TotalSupport:         decimal.Zero,
	}
	if len(rows) == 0 {
		return s
	}

	s.PeakNetWorth = rows[0].Totals.NetWorth
	s.PeakNetWorthYear = rows[0].Year
	payoff := 0
	for _, r := range rows {
		if r.Totals.NetWorth.GreaterThan(s.PeakNetWorth) {
			s.PeakNetWorth = r.Totals.NetWorth
			s.PeakNetWorthYear = r.Year
		}
		if r.Totals.Shortfall {
			s.ShortfallYears++
			if s.FirstShortfallYear == 0 {
				s.FirstShortfallYear = r.Year
			}
		}
		if r.Totals.MortgageBalance.IsPositive() {
			payoff = 0
		} else if payoff == 0 {
			payoff = r.Year
		}
		s.TotalContributions = s.TotalContributions.Add(r.Contribution)
		s.TotalSupport = s.TotalSupport.Add(r.Expenses.SupportTotal)
	}
	s.FinalNetWorth = rows[len(rows)-1].Totals.NetWorth
	if len(p.Mortgages) > 0 {
		s.MortgagePayoffYear = payoff
	}
	return s
}
