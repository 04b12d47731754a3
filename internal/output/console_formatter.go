package output

import (
	"bytes"
	"fmt"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "LIFETIME PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if report.Name != "" {
		fmt.Fprintf(&buf, "Scenario: %s\n", report.Name)
	}
	writeSummary(&buf, report)
	return buf.Bytes(), nil
}

// writeSummary renders the summary block shared by the console formatters.
func writeSummary(buf *bytes.Buffer, report *domain.ProjectionReport) {
	s := report.Summary
	fmt.Fprintf(buf, "Years: %d-%d (%d), values in %s\n", s.StartYear, s.EndYear, s.Years, dollarBasis(report))
	fmt.Fprintf(buf, "Income-funded expenses: %s per year\n", FormatCurrency(s.IncomeFundedSubtotal))
	fmt.Fprintf(buf, "Final net worth: %s\n", FormatCurrency(s.FinalNetWorth))
	fmt.Fprintf(buf, "Peak net worth: %s (%d)\n", FormatCurrency(s.PeakNetWorth), s.PeakNetWorthYear)
	if s.FullyFunded() {
		fmt.Fprintln(buf, "Shortfall: none")
	} else {
		fmt.Fprintf(buf, "Shortfall: from %d (%d years)\n", s.FirstShortfallYear, s.ShortfallYears)
	}
	switch {
	case len(report.Params.Mortgages) == 0:
		fmt.Fprintln(buf, "Mortgages: none")
	case s.MortgagePayoffYear == 0:
		fmt.Fprintln(buf, "Mortgages: balance remains at end")
	default:
		fmt.Fprintf(buf, "Mortgages: paid off in %d\n", s.MortgagePayoffYear)
	}
	fmt.Fprintf(buf, "Total contributions: %s\n", FormatCurrency(s.TotalContributions))
	fmt.Fprintf(buf, "Total support paid: %s\n", FormatCurrency(s.TotalSupport))
}

func dollarBasis(report *domain.ProjectionReport) string {
	if report.RealDollars {
		return fmt.Sprintf("%d dollars", report.Summary.StartYear)
	}
	return "nominal dollars"
}
