package decimal

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestFromFloat(t *testing.T) {
	v, ok := FromFloat(12.5)
	assert.True(t, ok)
	assert.True(t, v.Equal(d("12.5")))

	_, ok = FromFloat(math.NaN())
	assert.False(t, ok)
	_, ok = FromFloat(math.Inf(-1))
	assert.False(t, ok)
}

func TestPeriodConversions(t *testing.T) {
	assert.Equal(t, "1200", Annual(d("100")).String())
	assert.Equal(t, "0.005", MonthlyRate(d("0.06")).String())
}

func TestGrowthFactor(t *testing.T) {
	tests := []struct {
		name  string
		rate  string
		years int
		want  string
	}{
		{"Zero years", "0.07", 0, "1"},
		{"One year", "0.07", 1, "1.07"},
		{"Two years", "0.1", 2, "1.21"},
		{"Negative rate", "-0.5", 3, "0.125"},
		{"Inverse", "1", -2, "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GrowthFactor(d(tt.rate), tt.years)
			assert.True(t, got.Equal(d(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestGrowthFactorLongHorizonStaysBounded(t *testing.T) {
	got := GrowthFactor(d("0.028"), 80)
	assert.LessOrEqual(t, -got.Exponent(), int32(factorPrecision))
	f, _ := got.Float64()
	assert.InDelta(t, math.Pow(1.028, 80), f, 1e-9)
}

func TestClampingHelpers(t *testing.T) {
	assert.True(t, NonNegative(d("-3")).IsZero())
	assert.True(t, NonNegative(d("3")).Equal(d("3")))
	assert.True(t, Min(d("1"), d("2")).Equal(d("1")))
	assert.True(t, Max(d("1"), d("2")).Equal(d("2")))
	assert.True(t, Clamp(d("15"), d("0"), d("10")).Equal(d("10")))
	assert.True(t, Clamp(d("-1"), d("0"), d("10")).IsZero())
	assert.True(t, Sum(d("1.5"), d("2"), d("-0.5")).Equal(d("3")))
	assert.True(t, Sum().IsZero())
}

func TestRoundDollars(t *testing.T) {
	assert.Equal(t, "3", RoundDollars(d("2.5")).String())
	assert.Equal(t, "-3", RoundDollars(d("-2.5")).String())
	assert.Equal(t, "2", RoundDollars(d("2.49")).String())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"999.4", "$999"},
		{"1234567.89", "$1,234,568"},
		{"-25000", "-$25,000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(d(tt.in)))
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "7.25%", FormatPercent(d("0.0725")))
	assert.Equal(t, "0.00%", FormatPercent(decimal.Zero))
}
