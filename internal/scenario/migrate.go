package scenario

import (
	"sort"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// slot is a logical collection that exactly one migration rule may fill.
type slot uint8

const (
	slotMortgages slot = 1 << iota
	slotElderCare
	slotChildSupport
)

// legacyParentAnnual is the first-year amount assumed when legacy parent
// fields omit one.
const legacyParentAnnual = 10_000

// partialScenario is what a migration rule contributes to the merged scenario.
// When the rule does not match, fills names the slots its dropped count refers to.
type partialScenario struct {
	fills     slot
	mortgages []domain.MortgagePlan
	supports  []domain.SupportPlan
	dropped   int
	rejected  []string
}

// migrationRule maps one payload shape onto collection slots. apply is pure:
// it reads raw and the scalar-merged scenario and never mutates either.
type migrationRule struct {
	name  string
	keys  []string
	apply func(raw map[string]any, base domain.ScenarioParams) (partialScenario, bool)
}

// migrationRules are applied in order; a rule only contributes the slots that
// no earlier rule filled. Current schema keys come first so they always win
// over legacy shapes of the same data.
var migrationRules = []migrationRule{
	{name: "supports", keys: []string{"supports"}, apply: migrateSupports},
	{name: "mortgages", keys: []string{"mortgages"}, apply: migrateMortgages},
	{name: "elderCare", keys: []string{"elderCare"}, apply: migrateElderCareList},
	{name: "childSupports", keys: []string{"childSupports"}, apply: migrateChildSupportList},
	{
		name:  "parentFields",
		keys:  []string{"parentStart", "parentEndYear", "parentBaseAnnual", "parentAnnual", "parentInc"},
		apply: migrateParentFields,
	},
	{name: "kidsFields", keys: []string{"kidsStarts", "kidsAnnual", "kidsYears"}, apply: migrateKidsFields},
	{
		name:  "mortgageFields",
		keys:  []string{"mortgage0", "mortgageRate", "mortgagePaymentMonthly", "mortgageEndYear", "mortgageEndMonth"},
		apply: migrateMortgageFields,
	},
}

func migrateSupports(raw map[string]any, _ domain.ScenarioParams) (partialScenario, bool) {
	v, ok := lookup(raw, "supports")
	if !ok {
		return partialScenario{}, false
	}
	p := partialScenario{fills: slotElderCare | slotChildSupport, supports: []domain.SupportPlan{}}
	entries, _ := asList(v)
	for _, e := range entries {
		m, isObject := asObject(e)
		if !isObject {
			p.dropped++
			continue
		}
		plan, valid := sanitizeSupport(m)
		if !valid {
			p.dropped++
			continue
		}
		p.supports = append(p.supports, plan)
	}
	return p, true
}

func migrateMortgages(raw map[string]any, _ domain.ScenarioParams) (partialScenario, bool) {
	v, ok := lookup(raw, "mortgages")
	if !ok {
		return partialScenario{}, false
	}
	p := partialScenario{fills: slotMortgages, mortgages: []domain.MortgagePlan{}}
	entries, _ := asList(v)
	for _, e := range entries {
		m, isObject := asObject(e)
		if !isObject {
			p.dropped++
			continue
		}
		plan, valid := sanitizeMortgage(m)
		if !valid {
			p.dropped++
			continue
		}
		p.mortgages = append(p.mortgages, plan)
	}
	return p, true
}

func migrateElderCareList(raw map[string]any, _ domain.ScenarioParams) (partialScenario, bool) {
	return migrateList(raw, "elderCare", slotElderCare, sanitizeElderCareEntry)
}

func migrateChildSupportList(raw map[string]any, _ domain.ScenarioParams) (partialScenario, bool) {
	return migrateList(raw, "childSupports", slotChildSupport, sanitizeChildEntry)
}

func migrateList(raw map[string]any, key string, s slot, sanitize func(map[string]any) (domain.SupportPlan, bool)) (partialScenario, bool) {
	v, ok := lookup(raw, key)
	if !ok {
		return partialScenario{}, false
	}
	p := partialScenario{fills: s, supports: []domain.SupportPlan{}}
	entries, _ := asList(v)
	for _, e := range entries {
		m, isObject := asObject(e)
		if !isObject {
			p.dropped++
			continue
		}
		plan, valid := sanitize(m)
		if !valid {
			p.dropped++
			continue
		}
		p.supports = append(p.supports, plan)
	}
	return p, true
}

// migrateParentFields synthesizes one linear elder-care plan from the flat
// parentStart/parentEndYear/parentBaseAnnual/parentInc layout.
func migrateParentFields(raw map[string]any, _ domain.ScenarioParams) (partialScenario, bool) {
	startYear, ok := intAt(raw, "parentStart")
	if !ok {
		return partialScenario{}, false
	}
	endYear, ok := intAt(raw, "parentEndYear")
	if !ok {
		return partialScenario{}, false
	}
	m := map[string]any{
		"startYear":       startYear,
		"endYear":         endYear,
		"firstYearAmount": legacyParentAnnual,
	}
	if v, present := lookup(raw, "parentBaseAnnual", "parentAnnual"); present {
		m["firstYearAmount"] = v
	}
	if v, present := lookup(raw, "parentInc"); present {
		m["annualIncrease"] = v
	}
	plan, valid := sanitizeElderCareEntry(m)
	if !valid {
		return partialScenario{fills: slotElderCare, dropped: 1}, false
	}
	return partialScenario{fills: slotElderCare, supports: []domain.SupportPlan{plan}}, true
}

// migrateKidsFields synthesizes one flat child-support plan per start year
// from kidsStarts/kidsAnnual/kidsYears.
func migrateKidsFields(raw map[string]any, _ domain.ScenarioParams) (partialScenario, bool) {
	v, ok := lookup(raw, "kidsStarts")
	if !ok {
		return partialScenario{}, false
	}
	rawStarts, ok := asList(v)
	if !ok {
		return partialScenario{}, false
	}
	amount, ok := decimalAt(raw, "kidsAnnual")
	if !ok || !amount.IsPositive() {
		return partialScenario{}, false
	}
	years, ok := intAt(raw, "kidsYears")
	if !ok || years <= 0 {
		return partialScenario{}, false
	}

	var starts []int
	dropped := 0
	for _, s := range rawStarts {
		year, valid := asInt(s)
		if !valid {
			dropped++
			continue
		}
		starts = append(starts, year)
	}
	sort.Ints(starts)
	if len(starts) == 0 {
		return partialScenario{fills: slotChildSupport, dropped: dropped}, false
	}

	p := partialScenario{fills: slotChildSupport, dropped: dropped}
	for _, start := range starts {
		p.supports = append(p.supports, childPlan(start, years, amount))
	}
	return p, true
}

// migrateMortgageFields builds a single plan from the flat mortgage0 layout,
// starting in January of the scenario's start year. Fields that are absent or
// unusable keep the values of the base scenario's first mortgage.
func migrateMortgageFields(raw map[string]any, base domain.ScenarioParams) (partialScenario, bool) {
	present := false
	for _, k := range []string{"mortgage0", "mortgageRate", "mortgagePaymentMonthly", "mortgageEndYear", "mortgageEndMonth"} {
		if _, ok := lookup(raw, k); ok {
			present = true
			break
		}
	}
	if !present {
		return partialScenario{}, false
	}

	plan := domain.MortgagePlan{EndYear: base.StartYear, EndMonth: 12}
	if len(base.Mortgages) > 0 {
		plan = base.Mortgages[0]
	}
	plan.Name = mortgageName(1)
	plan.StartYear = base.StartYear
	plan.StartMonth = 1

	p := partialScenario{fills: slotMortgages, mortgages: []domain.MortgagePlan{}}
	if v, ok := lookup(raw, "mortgage0"); ok {
		if d, valid := asDecimal(v); valid && !d.IsNegative() {
			plan.Principal = d
		} else {
			p.rejected = append(p.rejected, "mortgage0")
		}
	}
	if v, ok := lookup(raw, "mortgageRate"); ok {
		if d, valid := asDecimal(v); valid && !d.IsNegative() {
			plan.Rate = d
		} else {
			p.rejected = append(p.rejected, "mortgageRate")
		}
	}
	if v, ok := lookup(raw, "mortgagePaymentMonthly"); ok {
		if d, valid := asDecimal(v); valid && !d.IsNegative() {
			plan.PaymentMonthly = d
		} else {
			p.rejected = append(p.rejected, "mortgagePaymentMonthly")
		}
	}
	if v, ok := lookup(raw, "mortgageEndYear"); ok {
		if y, valid := asInt(v); valid {
			plan.EndYear = y
		} else {
			p.rejected = append(p.rejected, "mortgageEndYear")
		}
	}
	if _, ok := lookup(raw, "mortgageEndMonth"); ok {
		plan.EndMonth = monthAt(raw, 12, "mortgageEndMonth")
	}

	// A zero principal is how the flat layout expresses "no mortgage".
	if plan.Principal.IsZero() {
		return p, true
	}
	if err := plan.Validate(); err != nil {
		p.dropped++
		return p, true
	}
	p.mortgages = append(p.mortgages, plan)
	return p, true
}

// applyMigrations resolves every collection slot of out from raw. Slots that no
// rule fills keep out's current plans.
func applyMigrations(out *domain.ScenarioParams, raw map[string]any, report *MergeReport) {
	base := out.Clone()
	var filled slot
	var supports []domain.SupportPlan
	mortgages := base.Mortgages

	for _, rule := range migrationRules {
		p, matched := rule.apply(raw, base)
		contributes := p.fills &^ filled
		if contributes == 0 {
			continue
		}
		report.Dropped += p.dropped
		report.Rejected = append(report.Rejected, p.rejected...)
		if !matched {
			continue
		}
		report.Migrations = append(report.Migrations, rule.name)
		if contributes&slotMortgages != 0 {
			mortgages = p.mortgages
		}
		if contributes&(slotElderCare|slotChildSupport) != 0 {
			supports = append(supports, p.supports...)
		}
		filled |= contributes
	}

	// Categories no rule touched keep the base plans.
	var kept []domain.SupportPlan
	for _, s := range base.Supports {
		if (s.Category == domain.CategoryElderCare && filled&slotElderCare == 0) ||
			(s.Category == domain.CategoryChildSupport && filled&slotChildSupport == 0) {
			kept = append(kept, s)
		}
	}

	out.Mortgages = mortgages
	out.Supports = append(kept, supports...)
	if out.Supports == nil {
		out.Supports = []domain.SupportPlan{}
	}
	if out.Mortgages == nil {
		out.Mortgages = []domain.MortgagePlan{}
	}
}

// migrationKeys lists every payload key consumed by a migration rule.
func migrationKeys() map[string]bool {
	keys := map[string]bool{}
	for _, r := range migrationRules {
		for _, k := range r.keys {
			keys[k] = true
		}
	}
	return keys
}
