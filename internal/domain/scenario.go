package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidScenario is wrapped by every error returned from ScenarioParams.Validate.
var ErrInvalidScenario = errors.New("invalid scenario")

// MaxAgeLimit is the oldest age a scenario may name.
const MaxAgeLimit = 120

// ValidAge reports whether age is within [0, MaxAgeLimit].
func ValidAge(age int) bool {
	return age >= 0 && age <= MaxAgeLimit
}

// SupportCategory classifies a dependent-support obligation.
type SupportCategory string

const (
	CategoryElderCare    SupportCategory = "elderCare"
	CategoryChildSupport SupportCategory = "childSupport"
)

// SupportModel selects how a support obligation evolves over its window.
type SupportModel string

const (
	ModelFlat   SupportModel = "flat"
	ModelLinear SupportModel = "linear"
)

// MortgagePlan is one independent amortizing loan.
type MortgagePlan struct {
	Name           string          `yaml:"name" json:"name"`
	Principal      decimal.Decimal `yaml:"principal" json:"principal"`
	Rate           decimal.Decimal `yaml:"rate" json:"rate"` // annual
	PaymentMonthly decimal.Decimal `yaml:"paymentMonthly" json:"paymentMonthly"`
	StartYear      int             `yaml:"startYear" json:"startYear"`
	StartMonth     int             `yaml:"startMonth" json:"startMonth"`
	EndYear        int             `yaml:"endYear" json:"endYear"`
	EndMonth       int             `yaml:"endMonth" json:"endMonth"`
}

// SupportPlan is a recurring, possibly growing, savings-funded obligation.
// The window [StartYear, EndYear] is inclusive.
type SupportPlan struct {
	Name           string          `yaml:"name" json:"name"`
	Category       SupportCategory `yaml:"category" json:"category"`
	StartYear      int             `yaml:"startYear" json:"startYear"`
	EndYear        int             `yaml:"endYear" json:"endYear"`
	AnnualAmount   decimal.Decimal `yaml:"annualAmount" json:"annualAmount"`
	Model          SupportModel    `yaml:"model" json:"model"`
	AnnualIncrease decimal.Decimal `yaml:"annualIncrease" json:"annualIncrease"`
}

// ScenarioParams is the complete input of a projection run. Treat it as a value:
// callers build a new one instead of patching a scenario that has been projected.
type ScenarioParams struct {
	StartYear     int `yaml:"startYear" json:"startYear"`
	CurrentAge    int `yaml:"currentAge" json:"currentAge"`
	SpouseAge     int `yaml:"spouseAge" json:"spouseAge"` // informational only
	RetirementAge int `yaml:"retirementAge" json:"retirementAge"`
	MaxAge        int `yaml:"maxAge" json:"maxAge"`

	Stocks0     decimal.Decimal `yaml:"stocks0" json:"stocks0"`
	Cash0       decimal.Decimal `yaml:"cash0" json:"cash0"`
	RealEstate0 decimal.Decimal `yaml:"realEstate0" json:"realEstate0"`

	StockReturn      decimal.Decimal `yaml:"stockReturn" json:"stockReturn"`
	CashReturn       decimal.Decimal `yaml:"cashReturn" json:"cashReturn"`
	RealEstateReturn decimal.Decimal `yaml:"realEstateReturn" json:"realEstateReturn"`
	Inflation        decimal.Decimal `yaml:"inflation" json:"inflation"`

	UseGlidepath bool            `yaml:"useGlidepath" json:"useGlidepath"`
	GPRetMinus20 decimal.Decimal `yaml:"gpRetMinus20" json:"gpRetMinus20"`
	GPRetMinus10 decimal.Decimal `yaml:"gpRetMinus10" json:"gpRetMinus10"`
	GPRetMinus5  decimal.Decimal `yaml:"gpRetMinus5" json:"gpRetMinus5"`
	GPRet0       decimal.Decimal `yaml:"gpRet0" json:"gpRet0"`
	GPPostRet    decimal.Decimal `yaml:"gpPostRet" json:"gpPostRet"`

	Contribution0      decimal.Decimal `yaml:"contribution0" json:"contribution0"`
	ContributionGrowth decimal.Decimal `yaml:"contributionGrowth" json:"contributionGrowth"`

	BaseMonthly        decimal.Decimal `yaml:"baseMonthly" json:"baseMonthly"`
	VacationMonthly    decimal.Decimal `yaml:"vacationMonthly" json:"vacationMonthly"`
	HomeUpgradesAnnual decimal.Decimal `yaml:"homeUpgradesAnnual" json:"homeUpgradesAnnual"`

	SpendFromStocks bool `yaml:"spendFromStocks" json:"spendFromStocks"`

	Mortgages []MortgagePlan `yaml:"mortgages" json:"mortgages"`
	Supports  []SupportPlan  `yaml:"supports" json:"supports"`
}

// EndYear is the last simulated calendar year.
func (p ScenarioParams) EndYear() int {
	return p.StartYear + (p.MaxAge - p.CurrentAge)
}

// ProjectionYears is the number of rows a projection of p produces.
func (p ScenarioParams) ProjectionYears() int {
	n := p.EndYear() - p.StartYear + 1
	if n < 0 {
		return 0
	}
	return n
}

// Clone returns a copy that shares no slices with p.
func (p ScenarioParams) Clone() ScenarioParams {
	out := p
	out.Mortgages = append([]MortgagePlan(nil), p.Mortgages...)
	out.Supports = append([]SupportPlan(nil), p.Supports...)
	return out
}

// Validate checks the structural invariants the engine relies on.
func (p ScenarioParams) Validate() error {
	ages := []struct {
		name  string
		value int
	}{
		{"current age", p.CurrentAge},
		{"spouse age", p.SpouseAge},
		{"retirement age", p.RetirementAge},
		{"max age", p.MaxAge},
	}
	for _, a := range ages {
		if !ValidAge(a.value) {
			return fmt.Errorf("%w: %s %d is outside 0-%d", ErrInvalidScenario, a.name, a.value, MaxAgeLimit)
		}
	}
	if p.RetirementAge < p.CurrentAge {
		return fmt.Errorf("%w: retirement age %d is before current age %d", ErrInvalidScenario, p.RetirementAge, p.CurrentAge)
	}
	if p.MaxAge < p.RetirementAge {
		return fmt.Errorf("%w: max age %d is before retirement age %d", ErrInvalidScenario, p.MaxAge, p.RetirementAge)
	}

	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{"stocks0", p.Stocks0},
		{"cash0", p.Cash0},
		{"realEstate0", p.RealEstate0},
		{"stockReturn", p.StockReturn},
		{"cashReturn", p.CashReturn},
		{"realEstateReturn", p.RealEstateReturn},
		{"contribution0", p.Contribution0},
		{"baseMonthly", p.BaseMonthly},
		{"vacationMonthly", p.VacationMonthly},
		{"homeUpgradesAnnual", p.HomeUpgradesAnnual},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: %s cannot be negative", ErrInvalidScenario, f.name)
		}
	}

	for i, m := range p.Mortgages {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("mortgage %d (%s): %w", i+1, m.Name, err)
		}
	}
	for i, s := range p.Supports {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("support %d (%s): %w", i+1, s.Name, err)
		}
	}
	return nil
}

// Validate checks a single mortgage plan.
func (m MortgagePlan) Validate() error {
	if !m.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidScenario)
	}
	if m.Rate.IsNegative() {
		return fmt.Errorf("%w: rate cannot be negative", ErrInvalidScenario)
	}
	if !m.PaymentMonthly.IsPositive() {
		return fmt.Errorf("%w: monthly payment must be positive", ErrInvalidScenario)
	}
	if m.StartMonth < 1 || m.StartMonth > 12 || m.EndMonth < 1 || m.EndMonth > 12 {
		return fmt.Errorf("%w: months must be between 1 and 12", ErrInvalidScenario)
	}
	if m.EndYear < m.StartYear {
		return fmt.Errorf("%w: end year %d is before start year %d", ErrInvalidScenario, m.EndYear, m.StartYear)
	}
	return nil
}

// Validate checks a single support plan.
func (s SupportPlan) Validate() error {
	if s.Category != CategoryElderCare && s.Category != CategoryChildSupport {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidScenario, s.Category)
	}
	if s.Model != ModelFlat && s.Model != ModelLinear {
		return fmt.Errorf("%w: unknown model %q", ErrInvalidScenario, s.Model)
	}
	if !s.AnnualAmount.IsPositive() {
		return fmt.Errorf("%w: annual amount must be positive", ErrInvalidScenario)
	}
	if s.EndYear < s.StartYear {
		return fmt.Errorf("%w: end year %d is before start year %d", ErrInvalidScenario, s.EndYear, s.StartYear)
	}
	return nil
}

// Equal reports structural equality; decimals compare by value, not representation.
func (p ScenarioParams) Equal(o ScenarioParams) bool {
	if p.StartYear != o.StartYear || p.CurrentAge != o.CurrentAge || p.SpouseAge != o.SpouseAge ||
		p.RetirementAge != o.RetirementAge || p.MaxAge != o.MaxAge ||
		p.UseGlidepath != o.UseGlidepath || p.SpendFromStocks != o.SpendFromStocks {
		return false
	}
	pairs := [][2]decimal.Decimal{
		{p.Stocks0, o.Stocks0}, {p.Cash0, o.Cash0}, {p.RealEstate0, o.RealEstate0},
		{p.StockReturn, o.StockReturn}, {p.CashReturn, o.CashReturn},
		{p.RealEstateReturn, o.RealEstateReturn}, {p.Inflation, o.Inflation},
		{p.GPRetMinus20, o.GPRetMinus20}, {p.GPRetMinus10, o.GPRetMinus10},
		{p.GPRetMinus5, o.GPRetMinus5}, {p.GPRet0, o.GPRet0}, {p.GPPostRet, o.GPPostRet},
		{p.Contribution0, o.Contribution0}, {p.ContributionGrowth, o.ContributionGrowth},
		{p.BaseMonthly, o.BaseMonthly}, {p.VacationMonthly, o.VacationMonthly},
		{p.HomeUpgradesAnnual, o.HomeUpgradesAnnual},
	}
	for _, pair := range pairs {
		if !pair[0].Equal(pair[1]) {
			return false
		}
	}
	if len(p.Mortgages) != len(o.Mortgages) || len(p.Supports) != len(o.Supports) {
		return false
	}
	for i := range p.Mortgages {
		if !p.Mortgages[i].Equal(o.Mortgages[i]) {
			return false
		}
	}
	for i := range p.Supports {
		if !p.Supports[i].Equal(o.Supports[i]) {
			return false
		}
	}
	return true
}

// Equal reports structural equality of two mortgage plans.
func (m MortgagePlan) Equal(o MortgagePlan) bool {
	return m.Name == o.Name &&
		m.Principal.Equal(o.Principal) &&
		m.Rate.Equal(o.Rate) &&
		m.PaymentMonthly.Equal(o.PaymentMonthly) &&
		m.StartYear == o.StartYear && m.StartMonth == o.StartMonth &&
		m.EndYear == o.EndYear && m.EndMonth == o.EndMonth
}

// Equal reports structural equality of two support plans.
func (s SupportPlan) Equal(o SupportPlan) bool {
	return s.Name == o.Name &&
		s.Category == o.Category &&
		s.StartYear == o.StartYear && s.EndYear == o.EndYear &&
		s.AnnualAmount.Equal(o.AnnualAmount) &&
		s.Model == o.Model &&
		s.AnnualIncrease.Equal(o.AnnualIncrease)
}
