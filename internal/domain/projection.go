package domain

import (
	"github.com/shopspring/decimal"
)

// ExpenseBreakdown itemises a year's expenses
type ExpenseBreakdown struct {
	Base         decimal.Decimal `yaml:"base" json:"base"`
	Mortgage     decimal.Decimal `yaml:"mortgage" json:"mortgage"`
	Vacation     decimal.Decimal `yaml:"vacation" json:"vacation"`
	Upgrades     decimal.Decimal `yaml:"upgrades" json:"upgrades"`
	ElderCare    decimal.Decimal `yaml:"elderCare" json:"elderCare"`
	ChildSupport decimal.Decimal `yaml:"childSupport" json:"childSupport"`
	SupportTotal decimal.Decimal `yaml:"supportTotal" json:"supportTotal"`
}

// IncomeFunded is the part of the year's expenses covered by earnings while working.
func (e ExpenseBreakdown) IncomeFunded() decimal.Decimal {
	return e.Base.Add(e.Mortgage).Add(e.Vacation).Add(e.Upgrades)
}

// YearTotals holds end-of-year balances and the year's funding outcome
type YearTotals struct {
	TotalExpenses         decimal.Decimal `yaml:"totalExpenses" json:"totalExpenses"`
	SavingsFundedExpenses decimal.Decimal `yaml:"savingsFundedExpenses" json:"savingsFundedExpenses"`
	DrawnFromStocks       decimal.Decimal `yaml:"drawnFromStocks" json:"drawnFromStocks"`
	DrawnFromCash         decimal.Decimal `yaml:"drawnFromCash" json:"drawnFromCash"`
	StocksEnd             decimal.Decimal `yaml:"stocksEnd" json:"stocksEnd"`
	CashEnd               decimal.Decimal `yaml:"cashEnd" json:"cashEnd"`
	RealEstateEnd         decimal.Decimal `yaml:"realEstateEnd" json:"realEstateEnd"`
	MortgageBalance       decimal.Decimal `yaml:"mortgageBalance" json:"mortgageBalance"`
	NetWorth              decimal.Decimal `yaml:"netWorth" json:"netWorth"`
	Shortfall             bool            `yaml:"shortfall" json:"shortfall"`
}

// Row is the engine's snapshot of a single simulated year.
type Row struct {
	Year               int              `yaml:"year" json:"year"`
	Age                int              `yaml:"age" json:"age"`
	Working            bool             `yaml:"working" json:"working"`
	StockReturnApplied decimal.Decimal  `yaml:"stockReturnApplied" json:"stockReturnApplied"`
	Contribution       decimal.Decimal  `yaml:"contribution" json:"contribution"`
	Income             decimal.Decimal  `yaml:"income" json:"income"`
	Expenses           ExpenseBreakdown `yaml:"expenses" json:"expenses"`
	Totals             YearTotals       `yaml:"totals" json:"totals"`
}

// LiquidAssets returns stocks plus cash at year end.
func (r Row) LiquidAssets() decimal.Decimal {
	return r.Totals.StocksEnd.Add(r.Totals.CashEnd)
}

// RealEstateEquity returns real estate value net of outstanding mortgage balances.
func (r Row) RealEstateEquity() decimal.Decimal {
	return r.Totals.RealEstateEnd.Sub(r.Totals.MortgageBalance)
}

// ProjectionSummary provides the aggregates displayed next to a projection
type ProjectionSummary struct {
	StartYear            int             `yaml:"startYear" json:"startYear"`
	EndYear              int             `yaml:"endYear" json:"endYear"`
	Years                int             `yaml:"years" json:"years"`
	IncomeFundedSubtotal decimal.Decimal `yaml:"incomeFundedSubtotal" json:"incomeFundedSubtotal"`
	FinalNetWorth        decimal.Decimal `yaml:"finalNetWorth" json:"finalNetWorth"`
	PeakNetWorth         decimal.Decimal `yaml:"peakNetWorth" json:"peakNetWorth"`
	PeakNetWorthYear     int             `yaml:"peakNetWorthYear" json:"peakNetWorthYear"`
	FirstShortfallYear   int             `yaml:"firstShortfallYear,omitempty" json:"firstShortfallYear,omitempty"` // 0 when fully funded
	ShortfallYears       int             `yaml:"shortfallYears" json:"shortfallYears"`
	MortgagePayoffYear   int             `yaml:"mortgagePayoffYear,omitempty" json:"mortgagePayoffYear,omitempty"` // 0 when a balance remains at the end
	TotalContributions   decimal.Decimal `yaml:"totalContributions" json:"totalContributions"`
	TotalSupport         decimal.Decimal `yaml:"totalSupport" json:"totalSupport"`
}

// FullyFunded reports whether no simulated year hit a shortfall.
func (s ProjectionSummary) FullyFunded() bool {
	return s.ShortfallYears == 0
}

// ProjectionReport bundles a scenario with its projected rows and summary.
type ProjectionReport struct {
	Name        string            `yaml:"name" json:"name"`
	RealDollars bool              `yaml:"realDollars" json:"realDollars"`
	Params      ScenarioParams    `yaml:"params" json:"params"`
	Rows        []Row             `yaml:"rows" json:"rows"`
	Summary     ProjectionSummary `yaml:"summary" json:"summary"`
}

// SweepPoint is the outcome of projecting a scenario with one retirement age.
type SweepPoint struct {
	RetirementAge      int             `yaml:"retirementAge" json:"retirementAge"`
	FinalNetWorth      decimal.Decimal `yaml:"finalNetWorth" json:"finalNetWorth"`
	PeakNetWorth       decimal.Decimal `yaml:"peakNetWorth" json:"peakNetWorth"`
	FirstShortfallYear int             `yaml:"firstShortfallYear,omitempty" json:"firstShortfallYear,omitempty"`
	YearsFunded        int             `yaml:"yearsFunded" json:"yearsFunded"`
}
