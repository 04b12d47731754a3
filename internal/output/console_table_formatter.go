package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// ConsoleTableFormatter renders the full year-by-year table.
type ConsoleTableFormatter struct{}

func (c ConsoleTableFormatter) Name() string { return "console" }

func (c ConsoleTableFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", 150)

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "LIFETIME NET WORTH PROJECTION")
	fmt.Fprintln(&buf, rule)
	if report.Name != "" {
		fmt.Fprintf(&buf, "Scenario: %s\n", report.Name)
	}
	p := report.Params
	fmt.Fprintf(&buf, "Ages %d to %d, retiring at %d\n", p.CurrentAge, p.MaxAge, p.RetirementAge)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range GenerateAssumptions(p) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintf(&buf, "%-6s %-4s %-7s %8s %14s %14s %14s %14s %14s %14s %14s %14s\n",
		"Year", "Age", "Phase", "Stock", "Contribution", "Expenses", "Support", "From Savings",
		"Stocks", "Cash", "RE Equity", "Net Worth")
	fmt.Fprintln(&buf, strings.Repeat("-", 150))
	for _, r := range report.Rows {
		phase := "retired"
		if r.Working {
			phase = "working"
		}
		line := fmt.Sprintf("%-6d %-4d %-7s %8s %14s %14s %14s %14s %14s %14s %14s %14s",
			r.Year, r.Age, phase,
			FormatPercentage(r.StockReturnApplied),
			FormatCurrency(r.Contribution),
			FormatCurrency(r.Totals.TotalExpenses),
			FormatCurrency(r.Expenses.SupportTotal),
			FormatCurrency(r.Totals.SavingsFundedExpenses),
			FormatCurrency(r.Totals.StocksEnd),
			FormatCurrency(r.Totals.CashEnd),
			FormatCurrency(r.RealEstateEquity()),
			FormatCurrency(r.Totals.NetWorth),
		)
		if r.Totals.Shortfall {
			line += "  SHORTFALL"
		}
		fmt.Fprintln(&buf, line)
	}
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintln(&buf, strings.Repeat("=", 50))
	writeSummary(&buf, report)
	return buf.Bytes(), nil
}
