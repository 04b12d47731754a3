package decimal

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// factorPrecision bounds the digits kept when compounding growth factors so
// multi-decade horizons do not accumulate hundreds of decimal places.
const factorPrecision = 16

var (
	// MonthsPerYear converts between monthly and annual amounts.
	MonthsPerYear = decimal.NewFromInt(12)
	one           = decimal.NewFromInt(1)
)

// FromFloat converts a float, rejecting NaN and infinities.
func FromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// Annual converts a monthly amount to annual
func Annual(monthly decimal.Decimal) decimal.Decimal {
	return monthly.Mul(MonthsPerYear)
}

// MonthlyRate converts an annual rate to the per-month rate
func MonthlyRate(annual decimal.Decimal) decimal.Decimal {
	return annual.Div(MonthsPerYear)
}

// GrowthFactor returns (1+rate)^years. Negative years give the inverse factor.
func GrowthFactor(rate decimal.Decimal, years int) decimal.Decimal {
	base := one.Add(rate)
	n := years
	if n < 0 {
		n = -n
	}
	factor := one
	for i := 0; i < n; i++ {
		factor = factor.Mul(base).Round(factorPrecision)
	}
	if years < 0 {
		if factor.IsZero() {
			return decimal.Zero
		}
		return one.Div(factor)
	}
	return factor
}

// NonNegative clamps negative values to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of two amounts
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Clamp limits d to [lo, hi].
func Clamp(d, lo, hi decimal.Decimal) decimal.Decimal {
	return Min(Max(d, lo), hi)
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// RoundDollars rounds to whole dollars, halves away from zero.
func RoundDollars(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// Format renders whole-dollar currency with thousands separators, e.g. "$1,234,567".
func Format(d decimal.Decimal) string {
	p := message.NewPrinter(language.English)
	rounded := RoundDollars(d)
	if rounded.IsNegative() {
		return p.Sprintf("-$%d", rounded.Neg().IntPart())
	}
	return p.Sprintf("$%d", rounded.IntPart())
}

// FormatPercent renders a rate such as 0.0725 as "7.25%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
