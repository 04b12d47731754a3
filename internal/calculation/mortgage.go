package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
	pkgdecimal "github.com/shivbijlani/lifetime/pkg/decimal"
	"github.com/shivbijlani/lifetime/pkg/dateutil"
)

// MortgageState is the amortization state of one loan between years.
type MortgageState struct {
	Plan    domain.MortgagePlan
	Balance decimal.Decimal
}

// NewMortgageState starts a loan at its full principal.
func NewMortgageState(plan domain.MortgagePlan) MortgageState {
	return MortgageState{Plan: plan, Balance: plan.Principal}
}

// PaidOff reports whether the loan has reached its terminal state.
func (s MortgageState) PaidOff() bool {
	return !s.Balance.IsPositive()
}

// MortgageYear is what a loan (or a sum of loans) cost in one year.
type MortgageYear struct {
	Interest  decimal.Decimal
	Principal decimal.Decimal
}

// Expense is interest plus principal paid.
func (y MortgageYear) Expense() decimal.Decimal {
	return y.Interest.Add(y.Principal)
}

// Add sums two yearly breakdowns.
func (y MortgageYear) Add(o MortgageYear) MortgageYear {
	return MortgageYear{Interest: y.Interest.Add(o.Interest), Principal: y.Principal.Add(o.Principal)}
}

// AmortizeYear advances one loan through the months of year that fall inside
// its payment window. Months outside the window are skipped; amortization
// stops once the balance reaches zero.
func AmortizeYear(s MortgageState, year int) (MortgageState, MortgageYear) {
	out := MortgageYear{Interest: decimal.Zero, Principal: decimal.Zero}
	if s.PaidOff() {
		return s, out
	}

	start := dateutil.NewYearMonth(s.Plan.StartYear, s.Plan.StartMonth)
	end := dateutil.NewYearMonth(s.Plan.EndYear, s.Plan.EndMonth)
	monthlyRate := pkgdecimal.MonthlyRate(s.Plan.Rate)
	balance := s.Balance

	for month := 1; month <= 12 && balance.IsPositive(); month++ {
		if !dateutil.NewYearMonth(year, month).Within(start, end) {
			continue
		}
		interest := balance.Mul(monthlyRate).Round(carryPrecision)
		principalPaid := pkgdecimal.Clamp(s.Plan.PaymentMonthly.Sub(interest), decimal.Zero, balance)
		out.Interest = out.Interest.Add(interest)
		out.Principal = out.Principal.Add(principalPaid)
		balance = balance.Sub(principalPaid)
	}

	return MortgageState{Plan: s.Plan, Balance: balance}, out
}

// AmortizeAll advances every loan by one year and returns the new states, the
// combined breakdown and the combined remaining balance.
func AmortizeAll(states []MortgageState, year int) ([]MortgageState, MortgageYear, decimal.Decimal) {
	next := make([]MortgageState, len(states))
	total := MortgageYear{Interest: decimal.Zero, Principal: decimal.Zero}
	balance := decimal.Zero
	for i, s := range states {
		ns, y := AmortizeYear(s, year)
		next[i] = ns
		total = total.Add(y)
		balance = balance.Add(ns.Balance)
	}
	return next, total, balance
}
