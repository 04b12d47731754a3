package integration

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivbijlani/lifetime/internal/calculation"
	"github.com/shivbijlani/lifetime/internal/config"
	"github.com/shivbijlani/lifetime/internal/scenario"
)

const exampleScenario = "../../example_scenario.yaml"

func TestEndToEndProjection(t *testing.T) {
	parser := config.NewInputParser()
	params, err := parser.LoadFromFile(exampleScenario)
	require.NoError(t, err)
	require.NotNil(t, params)
	assert.Len(t, params.Mortgages, 1)
	assert.Len(t, params.Supports, 2)

	engine := calculation.NewProjectionEngine()
	report, err := engine.RunScenario(context.Background(), *params)
	require.NoError(t, err)
	require.NotEmpty(t, report.Rows)

	s := report.Summary
	assert.Equal(t, params.StartYear, s.StartYear)
	assert.Equal(t, params.EndYear(), s.EndYear)
	assert.Equal(t, len(report.Rows), s.Years)
	assert.True(t, s.FullyFunded())
	assert.Equal(t, 2042, s.MortgagePayoffYear)
	assert.True(t, s.PeakNetWorth.GreaterThanOrEqual(s.FinalNetWorth))
	assert.True(t, s.TotalSupport.GreaterThan(decimal.Zero))
}

func TestScenarioSurvivesSharing(t *testing.T) {
	params, err := config.NewInputParser().LoadFromFile(exampleScenario)
	require.NoError(t, err)

	codec := scenario.NewCodec(nil)
	link, err := codec.ShareURL("https://example.com/", *params)
	require.NoError(t, err)
	text, err := scenario.FromURL(link)
	require.NoError(t, err)
	shared := codec.Decode(text)
	assert.True(t, params.Equal(shared))

	direct := calculation.Project(*params)
	viaLink := calculation.Project(shared)
	require.Len(t, viaLink, len(direct))
	for i := range direct {
		assert.True(t, direct[i].Totals.NetWorth.Equal(viaLink[i].Totals.NetWorth), "year %d", direct[i].Year)
	}
}

func TestRealDollarsShrinkLaterYears(t *testing.T) {
	params, err := config.NewInputParser().LoadFromFile(exampleScenario)
	require.NoError(t, err)

	report, err := calculation.NewProjectionEngine().RunScenario(context.Background(), *params)
	require.NoError(t, err)
	deflated := calculation.ToRealDollars(report)

	assert.True(t, deflated.RealDollars)
	assert.False(t, report.RealDollars)
	assert.True(t, deflated.Rows[0].Totals.NetWorth.Equal(report.Rows[0].Totals.NetWorth))
	last := len(report.Rows) - 1
	assert.True(t, deflated.Rows[last].Totals.NetWorth.LessThan(report.Rows[last].Totals.NetWorth))
}
