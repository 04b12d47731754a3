package scenario

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeAppliesOnlyPresentFields(t *testing.T) {
	base := testDefaults()
	out, report := Merge(base, map[string]any{
		"currentAge":      45,
		"stocks0":         "1500000",
		"spendFromStocks": false,
	})

	assert.Equal(t, 45, out.CurrentAge)
	assert.Equal(t, "1500000", out.Stocks0.String())
	assert.False(t, out.SpendFromStocks)
	assert.True(t, base.Cash0.Equal(out.Cash0))
	assert.True(t, base.Inflation.Equal(out.Inflation))
	assert.ElementsMatch(t, []string{"currentAge", "stocks0", "spendFromStocks"}, report.Applied)
	assert.True(t, report.Clean())
}

func TestMergeRejectsUnusableScalars(t *testing.T) {
	base := testDefaults()
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"Non numeric string", "stocks0", "lots"},
		{"Empty string", "cash0", "  "},
		{"Negative amount", "cash0", -5},
		{"Boolean for number", "baseMonthly", true},
		{"Object for number", "stockReturn", map[string]any{"v": 1}},
		{"Fractional age", "currentAge", 40.5},
		{"String for bool", "useGlidepath", "true"},
		{"Number for bool", "spendFromStocks", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, report := Merge(base, map[string]any{tt.field: tt.value})
			assert.True(t, base.Equal(out), "field %s must keep its default", tt.field)
			assert.Equal(t, []string{tt.field}, report.Rejected)
			assert.False(t, report.Clean())
		})
	}
}

func TestMergeAcceptsSignedGrowth(t *testing.T) {
	out, report := Merge(testDefaults(), map[string]any{
		"inflation":          -0.01,
		"contributionGrowth": "-0.02",
	})
	assert.Empty(t, report.Rejected)
	assert.Equal(t, "-0.01", out.Inflation.String())
	assert.Equal(t, "-0.02", out.ContributionGrowth.String())
}

func TestMergeNumericStringsWithWhitespace(t *testing.T) {
	out, _ := Merge(testDefaults(), map[string]any{"retirementAge": " 62 ", "maxAge": "95", "currentAge": "44.0"})
	assert.Equal(t, 62, out.RetirementAge)
	assert.Equal(t, 95, out.MaxAge)
	assert.Equal(t, 44, out.CurrentAge)
}

func TestMergeNullMeansAbsent(t *testing.T) {
	base := testDefaults()
	out, report := Merge(base, map[string]any{"stocks0": nil})
	assert.True(t, base.Equal(out))
	assert.Empty(t, report.Applied)
	assert.Empty(t, report.Rejected)
}

func TestMergeNormalizesAges(t *testing.T) {
	out, _ := Merge(testDefaults(), map[string]any{"currentAge": 50, "retirementAge": 45, "maxAge": 40})
	assert.Equal(t, 50, out.RetirementAge)
	assert.Equal(t, 50, out.MaxAge)
	require.NoError(t, out.Validate())
}

func TestMergeReportsUnknownKeys(t *testing.T) {
	_, report := Merge(testDefaults(), map[string]any{"zeta": 1, "alpha": 2, "currentAge": 40, "kidsYears": 3})
	assert.Equal(t, []string{"alpha", "zeta"}, report.Unknown)
}

func TestMergeDoesNotMutateBase(t *testing.T) {
	base := testDefaults()
	snapshot := base.Clone()
	Merge(base, map[string]any{"mortgages": []any{}, "supports": []any{
		map[string]any{"startYear": 2030, "endYear": 2031, "annualAmount": 100},
	}})
	assert.True(t, snapshot.Equal(base))
}

func TestMergedScenarioAlwaysValidates(t *testing.T) {
	payloads := []map[string]any{
		{},
		{"currentAge": 70, "retirementAge": 30},
		{"supports": "nope", "mortgages": 12},
		{"mortgage0": "abc", "mortgageEndYear": 1999},
		{"kidsStarts": []any{2030, 2031}, "kidsAnnual": "5000", "kidsYears": "2"},
	}
	for _, raw := range payloads {
		out, _ := Merge(testDefaults(), raw)
		assert.NoError(t, out.Validate(), "payload %v", raw)
	}
}

func TestMergeRejectsNumbersBeyondFloatRange(t *testing.T) {
	base := testDefaults()
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"JSON number overflow", "stocks0", json.Number("1e400")},
		{"String overflow", "stocks0", "1e400"},
		{"Huge exponent", "cash0", "1e50000000"},
		{"Negative overflow", "inflation", json.Number("-1e400")},
		{"Infinite float", "realEstate0", math.Inf(1)},
		{"NaN float", "stockReturn", math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, report := Merge(base, map[string]any{tt.field: tt.value})
			assert.True(t, base.Equal(out), "field %s must keep its default", tt.field)
			assert.Equal(t, []string{tt.field}, report.Rejected)
		})
	}
}

func TestMergeFlushesUnderflowToZero(t *testing.T) {
	for _, v := range []any{"1e-400", json.Number("1e-400"), "1e-50000000", json.Number("-1e-400")} {
		out, report := Merge(testDefaults(), map[string]any{"cash0": v})
		assert.Empty(t, report.Rejected, "value %v", v)
		assert.True(t, out.Cash0.IsZero(), "value %v", v)
	}

	out, report := Merge(testDefaults(), map[string]any{"stocks0": "1e300"})
	assert.Empty(t, report.Rejected)
	assert.True(t, out.Stocks0.Equal(decimal.New(1, 300)))
}

func TestMergeRejectsAgesOutsideRange(t *testing.T) {
	base := testDefaults()
	for _, field := range []string{"currentAge", "spouseAge", "retirementAge", "maxAge"} {
		for _, v := range []any{-1, 121, 2000000000, "20040"} {
			out, report := Merge(base, map[string]any{field: v})
			assert.Equal(t, []string{field}, report.Rejected, "%s=%v", field, v)
			assert.True(t, base.Equal(out))
		}
	}

	out, report := Merge(base, map[string]any{"maxAge": 120})
	assert.Empty(t, report.Rejected)
	assert.Equal(t, 120, out.MaxAge)
	require.NoError(t, out.Validate())
}
