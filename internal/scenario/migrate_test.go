package scenario

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivbijlani/lifetime/internal/domain"
)

func parseParams(t *testing.T, params string) *Decoded {
	t.Helper()
	d, err := newTestCodec().Parse(fmt.Sprintf(`{"version":1,"params":%s}`, params))
	require.NoError(t, err)
	return d
}

func TestLegacyParentFieldsMigrateToLinearPlan(t *testing.T) {
	d := parseParams(t, `{"parentStart":2030,"parentEndYear":2040,"parentInc":500}`)

	require.Len(t, d.Params.Supports, 1)
	s := d.Params.Supports[0]
	assert.Equal(t, "Parent", s.Name)
	assert.Equal(t, domain.CategoryElderCare, s.Category)
	assert.Equal(t, domain.ModelLinear, s.Model)
	assert.Equal(t, 2030, s.StartYear)
	assert.Equal(t, 2040, s.EndYear)
	assert.Equal(t, "10000", s.AnnualAmount.String())
	assert.Equal(t, "500", s.AnnualIncrease.String())
	assert.Equal(t, []string{"parentFields"}, d.Report.Migrations)
}

func TestLegacyParentAmountAliases(t *testing.T) {
	d := parseParams(t, `{"parentStart":"2030","parentEndYear":"2032","parentAnnual":"15000"}`)
	require.Len(t, d.Params.Supports, 1)
	assert.Equal(t, "15000", d.Params.Supports[0].AnnualAmount.String())
	assert.True(t, d.Params.Supports[0].AnnualIncrease.IsZero())

	d = parseParams(t, `{"parentStart":2030,"parentEndYear":2032,"parentBaseAnnual":9000,"parentAnnual":15000}`)
	assert.Equal(t, "9000", d.Params.Supports[0].AnnualAmount.String())
}

func TestLegacyParentNeedsBothYears(t *testing.T) {
	d := parseParams(t, `{"parentStart":2030,"parentInc":500}`)
	assert.Empty(t, d.Params.Supports)
	assert.Empty(t, d.Report.Migrations)
}

func TestLegacyParentInvalidWindowIsDropped(t *testing.T) {
	d := parseParams(t, `{"parentStart":2035,"parentEndYear":2030}`)
	assert.Empty(t, d.Params.Supports)
	assert.Equal(t, 1, d.Report.Dropped)
}

func TestLegacyKidsFields(t *testing.T) {
	d := parseParams(t, `{"kidsStarts":[2036,"2033","bad"],"kidsAnnual":25000,"kidsYears":4}`)

	require.Len(t, d.Params.Supports, 2)
	first, second := d.Params.Supports[0], d.Params.Supports[1]
	assert.Equal(t, "Child 1", first.Name)
	assert.Equal(t, 2033, first.StartYear)
	assert.Equal(t, 2036, first.EndYear)
	assert.Equal(t, domain.ModelFlat, first.Model)
	assert.Equal(t, domain.CategoryChildSupport, first.Category)
	assert.Equal(t, "Child 2", second.Name)
	assert.Equal(t, 2036, second.StartYear)
	assert.Equal(t, 2039, second.EndYear)
	assert.Equal(t, 1, d.Report.Dropped)
}

func TestLegacyKidsRequireAmountAndYears(t *testing.T) {
	d := parseParams(t, `{"kidsStarts":[2033],"kidsAnnual":0,"kidsYears":4}`)
	assert.Empty(t, d.Params.Supports)
	d = parseParams(t, `{"kidsStarts":[2033],"kidsAnnual":1000}`)
	assert.Empty(t, d.Params.Supports)
}

func TestLegacyLists(t *testing.T) {
	d := parseParams(t, `{
		"elderCare":[
			{"startYear":2030,"stopYear":2034,"amount":"11000","increase":400},
			{"startYear":2031,"firstYearAmount":5000},
			{"startYear":2031,"endYear":2029,"firstYearAmount":5000},
			{"startYear":"soon","firstYearAmount":5000},
			7
		],
		"childSupports":[
			{"startYear":2040,"duration":3,"amount":20000},
			{"startYear":2041,"years":0,"annualAmount":20000}
		]
	}`)

	require.Len(t, d.Params.Supports, 3)
	names := []string{}
	for _, s := range d.Params.Supports {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Parent", "Parent 2", "Child 1"}, names)

	assert.Equal(t, 2034, d.Params.Supports[0].EndYear)
	assert.Equal(t, domain.ModelLinear, d.Params.Supports[0].Model)
	assert.Equal(t, "400", d.Params.Supports[0].AnnualIncrease.String())
	assert.Equal(t, 2031, d.Params.Supports[1].EndYear, "end year defaults to start year")
	assert.Equal(t, 2042, d.Params.Supports[2].EndYear)
	assert.Equal(t, 4, d.Report.Dropped)
	assert.Equal(t, []string{"elderCare", "childSupports"}, d.Report.Migrations)
}

func TestCurrentSchemaTakesPrecedence(t *testing.T) {
	d := parseParams(t, `{
		"supports":[{"name":"Mom","startYear":2030,"endYear":2031,"annualAmount":9000}],
		"elderCare":[{"startYear":2040,"endYear":2041,"firstYearAmount":1}],
		"parentStart":2050,"parentEndYear":2051,
		"kidsStarts":[2033],"kidsAnnual":1000,"kidsYears":2
	}`)

	require.Len(t, d.Params.Supports, 1)
	assert.Equal(t, 2030, d.Params.Supports[0].StartYear)
	assert.Equal(t, "Parent", d.Params.Supports[0].Name)
	assert.Equal(t, []string{"supports"}, d.Report.Migrations)
}

func TestEmptySupportsListClearsLegacy(t *testing.T) {
	d := parseParams(t, `{"supports":[],"parentStart":2030,"parentEndYear":2040}`)
	assert.Empty(t, d.Params.Supports)
}

func TestElderListWinsOverParentFieldsButKidsStillApply(t *testing.T) {
	d := parseParams(t, `{
		"elderCare":[{"startYear":2040,"endYear":2041,"firstYearAmount":3000}],
		"parentStart":2050,"parentEndYear":2051,
		"kidsStarts":[2033],"kidsAnnual":1000,"kidsYears":2
	}`)
	require.Len(t, d.Params.Supports, 2)
	assert.Equal(t, 2040, d.Params.Supports[0].StartYear)
	assert.Equal(t, domain.CategoryChildSupport, d.Params.Supports[1].Category)
	assert.Equal(t, []string{"elderCare", "kidsFields"}, d.Report.Migrations)
}

func TestSupportCategoryAndModelInference(t *testing.T) {
	d := parseParams(t, `{"supports":[
		{"name":"College fund","startYear":2040,"endYear":2043,"annualAmount":30000},
		{"name":"Grandma care","startYear":2030,"endYear":2035,"annualAmount":8000,"annualIncrease":250},
		{"name":"Misc","type":"childSupport","startYear":2030,"endYear":2031,"annualAmount":100},
		{"name":"Kid","category":"elderCare","model":"flat","startYear":2030,"endYear":2031,"annualAmount":100,"annualIncrease":50},
		{"startYear":2030,"years":2,"amount":100}
	]}`)

	require.Len(t, d.Params.Supports, 5)
	s := d.Params.Supports
	assert.Equal(t, domain.CategoryChildSupport, s[0].Category)
	assert.Equal(t, domain.ModelFlat, s[0].Model)
	assert.Equal(t, "Child 1", s[0].Name)

	assert.Equal(t, domain.CategoryElderCare, s[1].Category)
	assert.Equal(t, domain.ModelLinear, s[1].Model)
	assert.Equal(t, "Parent", s[1].Name)

	assert.Equal(t, domain.CategoryChildSupport, s[2].Category)
	assert.Equal(t, "Child 2", s[2].Name)

	assert.Equal(t, domain.CategoryElderCare, s[3].Category, "explicit category beats the name")
	assert.Equal(t, domain.ModelFlat, s[3].Model, "explicit model beats the increase")
	assert.Equal(t, "Parent 2", s[3].Name)

	assert.Equal(t, domain.CategoryElderCare, s[4].Category)
	assert.Equal(t, 2031, s[4].EndYear)
	assert.Equal(t, "Parent 3", s[4].Name)
}

func TestMortgageEntries(t *testing.T) {
	d := parseParams(t, `{"mortgages":[
		{"principal":"400000","rate":0.05,"paymentMonthly":2500,"startYear":2027,"startMonth":0,"endYear":2045,"endMonth":14},
		{"name":"Rental","principal":200000,"rate":0.04,"payment":1500,"startYear":2027,"startMonth":6,"endYear":2037,"endMonth":5},
		{"principal":-1,"rate":0.04,"paymentMonthly":1500,"startYear":2027,"endYear":2037},
		{"principal":1000,"rate":0.04,"paymentMonthly":0,"startYear":2027,"endYear":2037},
		{"principal":1000,"rate":0.04,"paymentMonthly":10,"startYear":2037,"endYear":2027},
		{"principal":1000,"rate":0.04,"paymentMonthly":10,"startYear":2027}
	]}`)

	require.Len(t, d.Params.Mortgages, 2)
	first := d.Params.Mortgages[0]
	assert.Equal(t, "Mortgage 1", first.Name)
	assert.Equal(t, 1, first.StartMonth, "out of range start month clamps to January")
	assert.Equal(t, 12, first.EndMonth, "out of range end month clamps to December")
	assert.Equal(t, "Rental", d.Params.Mortgages[1].Name)
	assert.Equal(t, 6, d.Params.Mortgages[1].StartMonth)
	assert.Equal(t, 4, d.Report.Dropped)
}

func TestMissingMonthsDefault(t *testing.T) {
	d := parseParams(t, `{"mortgages":[{"principal":1000,"rate":0.04,"paymentMonthly":10,"startYear":2027,"endYear":2030,"startMonth":"x"}]}`)
	require.Len(t, d.Params.Mortgages, 1)
	assert.Equal(t, 1, d.Params.Mortgages[0].StartMonth)
	assert.Equal(t, 12, d.Params.Mortgages[0].EndMonth)
}

func TestLegacyMortgageFields(t *testing.T) {
	d := parseParams(t, `{"startYear":2030,"mortgage0":350000,"mortgageRate":"0.045","mortgagePaymentMonthly":2200,"mortgageEndYear":2050,"mortgageEndMonth":13}`)

	require.Len(t, d.Params.Mortgages, 1)
	m := d.Params.Mortgages[0]
	assert.Equal(t, "Mortgage 1", m.Name)
	assert.Equal(t, "350000", m.Principal.String())
	assert.Equal(t, "0.045", m.Rate.String())
	assert.Equal(t, "2200", m.PaymentMonthly.String())
	assert.Equal(t, 2030, m.StartYear)
	assert.Equal(t, 1, m.StartMonth)
	assert.Equal(t, 2050, m.EndYear)
	assert.Equal(t, 12, m.EndMonth)
}

func TestLegacyMortgagePartialFieldsKeepDefaults(t *testing.T) {
	base := testDefaults().Mortgages[0]
	d := parseParams(t, `{"mortgageRate":0.03}`)
	require.Len(t, d.Params.Mortgages, 1)
	m := d.Params.Mortgages[0]
	assert.Equal(t, "0.03", m.Rate.String())
	assert.True(t, base.Principal.Equal(m.Principal))
	assert.Equal(t, base.EndYear, m.EndYear)
}

func TestLegacyZeroMortgageMeansNone(t *testing.T) {
	d := parseParams(t, `{"mortgage0":0}`)
	assert.Empty(t, d.Params.Mortgages)
}

func TestMortgagesKeyBeatsLegacyFields(t *testing.T) {
	d := parseParams(t, `{"mortgages":[],"mortgage0":350000}`)
	assert.Empty(t, d.Params.Mortgages)
	assert.Equal(t, []string{"mortgages"}, d.Report.Migrations)
}

func TestAbsentCollectionsKeepDefaults(t *testing.T) {
	d := parseParams(t, `{"currentAge":41}`)
	assert.True(t, testDefaults().Mortgages[0].Equal(d.Params.Mortgages[0]))
	assert.Empty(t, d.Params.Supports)
}
