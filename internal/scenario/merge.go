package scenario

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// MergeReport describes how a payload was overlaid onto a base scenario.
type MergeReport struct {
	Applied    []string `json:"applied" yaml:"applied"`       // scalar fields taken from the payload
	Rejected   []string `json:"rejected" yaml:"rejected"`     // present fields with unusable values
	Migrations []string `json:"migrations" yaml:"migrations"` // collection rules that contributed, in order
	Dropped    int      `json:"dropped" yaml:"dropped"`       // collection entries discarded by validation
	Unknown    []string `json:"unknown" yaml:"unknown"`       // keys no field or rule recognises
}

// Clean reports whether every present field was used as-is.
func (r MergeReport) Clean() bool {
	return len(r.Rejected) == 0 && r.Dropped == 0 && len(r.Unknown) == 0
}

// scalarField overlays one top-level payload value. set returns false when the
// value is rejected, leaving p untouched.
type scalarField struct {
	name string
	set  func(p *domain.ScenarioParams, v any) bool
}

func intField(name string, ptr func(*domain.ScenarioParams) *int) scalarField {
	return scalarField{name: name, set: func(p *domain.ScenarioParams, v any) bool {
		n, ok := asInt(v)
		if !ok {
			return false
		}
		*ptr(p) = n
		return true
	}}
}

// ageField accepts integers within the supported age range.
func ageField(name string, ptr func(*domain.ScenarioParams) *int) scalarField {
	return scalarField{name: name, set: func(p *domain.ScenarioParams, v any) bool {
		n, ok := asInt(v)
		if !ok || !domain.ValidAge(n) {
			return false
		}
		*ptr(p) = n
		return true
	}}
}

// amountField accepts non-negative numbers only.
func amountField(name string, ptr func(*domain.ScenarioParams) *decimal.Decimal) scalarField {
	return scalarField{name: name, set: func(p *domain.ScenarioParams, v any) bool {
		d, ok := asDecimal(v)
		if !ok || d.IsNegative() {
			return false
		}
		*ptr(p) = d
		return true
	}}
}

// signedField accepts any finite number.
func signedField(name string, ptr func(*domain.ScenarioParams) *decimal.Decimal) scalarField {
	return scalarField{name: name, set: func(p *domain.ScenarioParams, v any) bool {
		d, ok := asDecimal(v)
		if !ok {
			return false
		}
		*ptr(p) = d
		return true
	}}
}

func boolField(name string, ptr func(*domain.ScenarioParams) *bool) scalarField {
	return scalarField{name: name, set: func(p *domain.ScenarioParams, v any) bool {
		b, ok := asBool(v)
		if !ok {
			return false
		}
		*ptr(p) = b
		return true
	}}
}

var scalarFields = []scalarField{
	intField("startYear", func(p *domain.ScenarioParams) *int { return &p.StartYear }),
	ageField("currentAge", func(p *domain.ScenarioParams) *int { return &p.CurrentAge }),
	ageField("spouseAge", func(p *domain.ScenarioParams) *int { return &p.SpouseAge }),
	ageField("retirementAge", func(p *domain.ScenarioParams) *int { return &p.RetirementAge }),
	ageField("maxAge", func(p *domain.ScenarioParams) *int { return &p.MaxAge }),

	amountField("stocks0", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.Stocks0 }),
	amountField("cash0", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.Cash0 }),
	amountField("realEstate0", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.RealEstate0 }),

	amountField("stockReturn", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.StockReturn }),
	amountField("cashReturn", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.CashReturn }),
	amountField("realEstateReturn", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.RealEstateReturn }),
	signedField("inflation", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.Inflation }),

	boolField("useGlidepath", func(p *domain.ScenarioParams) *bool { return &p.UseGlidepath }),
	amountField("gpRetMinus20", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.GPRetMinus20 }),
	amountField("gpRetMinus10", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.GPRetMinus10 }),
	amountField("gpRetMinus5", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.GPRetMinus5 }),
	amountField("gpRet0", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.GPRet0 }),
	amountField("gpPostRet", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.GPPostRet }),

	amountField("contribution0", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.Contribution0 }),
	signedField("contributionGrowth", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.ContributionGrowth }),

	amountField("baseMonthly", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.BaseMonthly }),
	amountField("vacationMonthly", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.VacationMonthly }),
	amountField("homeUpgradesAnnual", func(p *domain.ScenarioParams) *decimal.Decimal { return &p.HomeUpgradesAnnual }),

	boolField("spendFromStocks", func(p *domain.ScenarioParams) *bool { return &p.SpendFromStocks }),
}

// Merge overlays the fields present in raw onto base. Absent and null fields
// keep base values; unusable values are reported rather than failing the
// merge. The result always satisfies the age ordering invariants and carries
// canonical plan names.
func Merge(base domain.ScenarioParams, raw map[string]any) (domain.ScenarioParams, MergeReport) {
	out := base.Clone()
	report := MergeReport{}

	known := migrationKeys()
	for _, f := range scalarFields {
		known[f.name] = true
		v, ok := lookup(raw, f.name)
		if !ok {
			continue
		}
		if f.set(&out, v) {
			report.Applied = append(report.Applied, f.name)
		} else {
			report.Rejected = append(report.Rejected, f.name)
		}
	}

	applyMigrations(&out, raw, &report)
	normalizeAges(&out)
	renamePlans(&out)

	for k := range raw {
		if !known[k] {
			report.Unknown = append(report.Unknown, k)
		}
	}
	sort.Strings(report.Unknown)
	return out, report
}

// normalizeAges restores retirementAge >= currentAge and maxAge >= retirementAge.
func normalizeAges(p *domain.ScenarioParams) {
	if p.RetirementAge < p.CurrentAge {
		p.RetirementAge = p.CurrentAge
	}
	if p.MaxAge < p.RetirementAge {
		p.MaxAge = p.RetirementAge
	}
}
