package scenario

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
	pkgdecimal "github.com/shivbijlani/lifetime/pkg/decimal"
	"github.com/shivbijlani/lifetime/pkg/dateutil"
)

// lookup returns the value of the first key present with a non-nil value.
func lookup(m map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Decimal exponent bounds of a finite float64: anything at or above 1e309
// overflows and anything below 1e-324 underflows to zero.
const (
	maxFiniteMagnitude = 309
	minFiniteMagnitude = -324
)

// finite applies float64 range rules to d. Values that would overflow are
// rejected and values that would underflow become zero.
func finite(d decimal.Decimal) (decimal.Decimal, bool) {
	if d.IsZero() {
		return decimal.Zero, true
	}
	coef := d.Coefficient()
	digits := len(coef.Abs(coef).String())
	// d lies in [10^(magnitude-1), 10^magnitude)
	magnitude := int64(digits) + int64(d.Exponent())
	if magnitude > maxFiniteMagnitude {
		return decimal.Zero, false
	}
	if magnitude < minFiniteMagnitude {
		return decimal.Zero, true
	}
	f, _ := d.Float64()
	if math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	if f == 0 {
		return decimal.Zero, true
	}
	return d, true
}

// asDecimal accepts finite numbers of any decoded representation and trimmed
// numeric strings.
func asDecimal(v any) (decimal.Decimal, bool) {
	switch x := v.(type) {
	case json.Number:
		return parseNumeric(string(x))
	case string:
		return parseNumeric(x)
	case float64:
		return pkgdecimal.FromFloat(x)
	case float32:
		return pkgdecimal.FromFloat(float64(x))
	case int:
		return decimal.NewFromInt(int64(x)), true
	case int64:
		return decimal.NewFromInt(x), true
	case int32:
		return decimal.NewFromInt(int64(x)), true
	case uint64:
		if x > math.MaxInt64 {
			return decimal.Zero, false
		}
		return decimal.NewFromInt(int64(x)), true
	case uint:
		return decimal.NewFromInt(int64(x)), true
	case decimal.Decimal:
		return finite(x)
	}
	return decimal.Zero, false
}

func parseNumeric(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return finite(d)
}

// asInt accepts any value asDecimal accepts, provided it is integral.
func asInt(v any) (int, bool) {
	d, ok := asDecimal(v)
	if !ok || !d.Equal(d.Truncate(0)) {
		return 0, false
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt32)) || d.LessThan(decimal.NewFromInt(math.MinInt32)) {
		return 0, false
	}
	return int(d.IntPart()), true
}

func asBool(v any) (bool, bool) {
	b, ok := v.(bool)
	return b, ok
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func asObject(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

// decimalAt reads the first present key as a number.
func decimalAt(m map[string]any, keys ...string) (decimal.Decimal, bool) {
	v, ok := lookup(m, keys...)
	if !ok {
		return decimal.Zero, false
	}
	return asDecimal(v)
}

// intAt reads the first present key as an integer.
func intAt(m map[string]any, keys ...string) (int, bool) {
	v, ok := lookup(m, keys...)
	if !ok {
		return 0, false
	}
	return asInt(v)
}

// monthAt reads a month, falling back when it is absent, non-integral or out of range.
func monthAt(m map[string]any, fallback int, keys ...string) int {
	month, ok := intAt(m, keys...)
	if !ok {
		return fallback
	}
	return dateutil.ClampMonth(month, fallback)
}

func nameAt(m map[string]any) string {
	v, ok := lookup(m, "name", "label")
	if !ok {
		return ""
	}
	s, _ := asString(v)
	return strings.TrimSpace(s)
}

// sanitizeMortgage validates one entry of a current-schema mortgages list.
func sanitizeMortgage(m map[string]any) (domain.MortgagePlan, bool) {
	principal, ok := decimalAt(m, "principal", "amount", "balance")
	if !ok || !principal.IsPositive() {
		return domain.MortgagePlan{}, false
	}
	rate, ok := decimalAt(m, "rate", "annualRate")
	if !ok || rate.IsNegative() {
		return domain.MortgagePlan{}, false
	}
	payment, ok := decimalAt(m, "paymentMonthly", "payment", "monthlyPayment")
	if !ok || !payment.IsPositive() {
		return domain.MortgagePlan{}, false
	}
	startYear, ok := intAt(m, "startYear")
	if !ok {
		return domain.MortgagePlan{}, false
	}
	endYear, ok := intAt(m, "endYear")
	if !ok || endYear < startYear {
		return domain.MortgagePlan{}, false
	}
	return domain.MortgagePlan{
		Name:           nameAt(m),
		Principal:      principal,
		Rate:           rate,
		PaymentMonthly: payment,
		StartYear:      startYear,
		StartMonth:     monthAt(m, 1, "startMonth"),
		EndYear:        endYear,
		EndMonth:       monthAt(m, 12, "endMonth"),
	}, true
}

// sanitizeSupport validates one entry of a current-schema supports list.
func sanitizeSupport(m map[string]any) (domain.SupportPlan, bool) {
	startYear, ok := intAt(m, "startYear")
	if !ok {
		return domain.SupportPlan{}, false
	}
	endYear, ok := supportEndYear(m, startYear)
	if !ok || endYear < startYear {
		return domain.SupportPlan{}, false
	}
	amount, ok := decimalAt(m, "annualAmount", "amount", "firstYearAmount", "baseAnnual")
	if !ok || !amount.IsPositive() {
		return domain.SupportPlan{}, false
	}
	increase := decimal.Zero
	if v, present := lookup(m, "annualIncrease", "increase"); present {
		increase, _ = asDecimal(v)
	}

	name := nameAt(m)
	category := inferCategory(name)
	if v, present := lookup(m, "category", "type"); present {
		if s, isString := asString(v); isString {
			if c, known := parseCategory(s); known {
				category = c
			}
		}
	}

	model := domain.ModelFlat
	if !increase.IsZero() {
		model = domain.ModelLinear
	}
	if v, present := lookup(m, "model"); present {
		if s, isString := asString(v); isString {
			switch domain.SupportModel(strings.ToLower(strings.TrimSpace(s))) {
			case domain.ModelFlat:
				model = domain.ModelFlat
			case domain.ModelLinear:
				model = domain.ModelLinear
			}
		}
	}

	return domain.SupportPlan{
		Name:           name,
		Category:       category,
		StartYear:      startYear,
		EndYear:        endYear,
		AnnualAmount:   amount,
		Model:          model,
		AnnualIncrease: increase,
	}, true
}

// supportEndYear resolves an explicit end year, a duration in years, or a
// single-year window.
func supportEndYear(m map[string]any, startYear int) (int, bool) {
	if v, ok := lookup(m, "endYear", "stopYear", "finishYear"); ok {
		return asInt(v)
	}
	if v, ok := lookup(m, "years", "duration", "length"); ok {
		years, valid := asInt(v)
		if !valid || years <= 0 {
			return 0, false
		}
		return startYear + years - 1, true
	}
	return startYear, true
}

// sanitizeElderCareEntry validates one entry of the legacy elderCare list.
func sanitizeElderCareEntry(m map[string]any) (domain.SupportPlan, bool) {
	startYear, ok := intAt(m, "startYear")
	if !ok {
		return domain.SupportPlan{}, false
	}
	endYear, ok := intAt(m, "endYear", "stopYear", "finishYear", "startYear")
	if !ok || endYear < startYear {
		return domain.SupportPlan{}, false
	}
	amount, ok := decimalAt(m, "firstYearAmount", "amount", "baseAnnual")
	if !ok || !amount.IsPositive() {
		return domain.SupportPlan{}, false
	}
	increase := decimal.Zero
	if v, present := lookup(m, "annualIncrease", "increase"); present {
		increase, _ = asDecimal(v)
	}
	return domain.SupportPlan{
		Category:       domain.CategoryElderCare,
		StartYear:      startYear,
		EndYear:        endYear,
		AnnualAmount:   amount,
		Model:          domain.ModelLinear,
		AnnualIncrease: increase,
	}, true
}

// sanitizeChildEntry validates one entry of the legacy childSupports list.
func sanitizeChildEntry(m map[string]any) (domain.SupportPlan, bool) {
	startYear, ok := intAt(m, "startYear")
	if !ok {
		return domain.SupportPlan{}, false
	}
	years, ok := intAt(m, "years", "duration", "length")
	if !ok || years <= 0 {
		return domain.SupportPlan{}, false
	}
	amount, ok := decimalAt(m, "annualAmount", "amount")
	if !ok || !amount.IsPositive() {
		return domain.SupportPlan{}, false
	}
	return childPlan(startYear, years, amount), true
}

func childPlan(startYear, years int, amount decimal.Decimal) domain.SupportPlan {
	return domain.SupportPlan{
		Category:       domain.CategoryChildSupport,
		StartYear:      startYear,
		EndYear:        startYear + years - 1,
		AnnualAmount:   amount,
		Model:          domain.ModelFlat,
		AnnualIncrease: decimal.Zero,
	}
}
