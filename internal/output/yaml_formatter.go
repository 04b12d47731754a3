package output

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/shivbijlani/lifetime/internal/domain"
	"github.com/shivbijlani/lifetime/internal/scenario"
)

// YAMLFormatter writes the scenario, summary and rows as one YAML document.
// The scenario section loads back through the scenario file parser.
type YAMLFormatter struct{}

func (y YAMLFormatter) Name() string { return "yaml" }

type yamlSummary struct {
	StartYear            int         `yaml:"startYear"`
	EndYear              int         `yaml:"endYear"`
	Years                int         `yaml:"years"`
	IncomeFundedSubtotal json.Number `yaml:"incomeFundedSubtotal"`
	FinalNetWorth        json.Number `yaml:"finalNetWorth"`
	PeakNetWorth         json.Number `yaml:"peakNetWorth"`
	PeakNetWorthYear     int         `yaml:"peakNetWorthYear"`
	FirstShortfallYear   int         `yaml:"firstShortfallYear,omitempty"`
	ShortfallYears       int         `yaml:"shortfallYears"`
	MortgagePayoffYear   int         `yaml:"mortgagePayoffYear,omitempty"`
	TotalContributions   json.Number `yaml:"totalContributions"`
	TotalSupport         json.Number `yaml:"totalSupport"`
}

type yamlRow struct {
	Year          int         `yaml:"year"`
	Age           int         `yaml:"age"`
	Working       bool        `yaml:"working"`
	StockReturn   json.Number `yaml:"stockReturn"`
	Contribution  json.Number `yaml:"contribution"`
	TotalExpenses json.Number `yaml:"totalExpenses"`
	SupportTotal  json.Number `yaml:"supportTotal"`
	SavingsFunded json.Number `yaml:"savingsFunded"`
	Stocks        json.Number `yaml:"stocks"`
	Cash          json.Number `yaml:"cash"`
	RealEstate    json.Number `yaml:"realEstate"`
	Mortgage      json.Number `yaml:"mortgageBalance"`
	NetWorth      json.Number `yaml:"netWorth"`
	Shortfall     bool        `yaml:"shortfall,omitempty"`
}

type yamlReport struct {
	Name        string            `yaml:"name,omitempty"`
	RealDollars bool              `yaml:"realDollars"`
	Scenario    scenario.Envelope `yaml:"scenario"`
	Summary     yamlSummary       `yaml:"summary"`
	Rows        []yamlRow         `yaml:"rows"`
}

func yamlAmount(d decimal.Decimal) json.Number { return json.Number(d.StringFixed(2)) }

func (y YAMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	s := report.Summary
	doc := yamlReport{
		Name:        report.Name,
		RealDollars: report.RealDollars,
		Scenario:    scenario.NewEnvelope(report.Params),
		Summary: yamlSummary{
			StartYear:            s.StartYear,
			EndYear:              s.EndYear,
			Years:                s.Years,
			IncomeFundedSubtotal: yamlAmount(s.IncomeFundedSubtotal),
			FinalNetWorth:        yamlAmount(s.FinalNetWorth),
			PeakNetWorth:         yamlAmount(s.PeakNetWorth),
			PeakNetWorthYear:     s.PeakNetWorthYear,
			FirstShortfallYear:   s.FirstShortfallYear,
			ShortfallYears:       s.ShortfallYears,
			MortgagePayoffYear:   s.MortgagePayoffYear,
			TotalContributions:   yamlAmount(s.TotalContributions),
			TotalSupport:         yamlAmount(s.TotalSupport),
		},
		Rows: make([]yamlRow, 0, len(report.Rows)),
	}
	for _, r := range report.Rows {
		doc.Rows = append(doc.Rows, yamlRow{
			Year:          r.Year,
			Age:           r.Age,
			Working:       r.Working,
			StockReturn:   json.Number(r.StockReturnApplied.String()),
			Contribution:  yamlAmount(r.Contribution),
			TotalExpenses: yamlAmount(r.Totals.TotalExpenses),
			SupportTotal:  yamlAmount(r.Expenses.SupportTotal),
			SavingsFunded: yamlAmount(r.Totals.SavingsFundedExpenses),
			Stocks:        yamlAmount(r.Totals.StocksEnd),
			Cash:          yamlAmount(r.Totals.CashEnd),
			RealEstate:    yamlAmount(r.Totals.RealEstateEnd),
			Mortgage:      yamlAmount(r.Totals.MortgageBalance),
			NetWorth:      yamlAmount(r.Totals.NetWorth),
			Shortfall:     r.Totals.Shortfall,
		})
	}
	return yaml.Marshal(doc)
}
