package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// CSVSummarizer implements the single-row summary CSV output.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "summary-csv" }

func (c CSVSummarizer) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "StartYear", "EndYear", "Years", "RealDollars", "IncomeFundedSubtotal",
		"FinalNetWorth", "PeakNetWorth", "PeakNetWorthYear", "FirstShortfallYear", "ShortfallYears",
		"MortgagePayoffYear", "TotalContributions", "TotalSupport"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	s := report.Summary
	row := []string{
		report.Name,
		intToString(s.StartYear),
		intToString(s.EndYear),
		intToString(s.Years),
		boolToString(report.RealDollars),
		cents(s.IncomeFundedSubtotal),
		cents(s.FinalNetWorth),
		cents(s.PeakNetWorth),
		intToString(s.PeakNetWorthYear),
		intToString(s.FirstShortfallYear),
		intToString(s.ShortfallYears),
		intToString(s.MortgagePayoffYear),
		cents(s.TotalContributions),
		cents(s.TotalSupport),
	}
	if err := w.Write(row); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
