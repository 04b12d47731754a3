package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/shivbijlani/lifetime/internal/calculation"
	"github.com/shivbijlani/lifetime/internal/domain"
)

// FormatSweep renders a retirement-age comparison table with its analysis.
func FormatSweep(points []domain.SweepPoint, analysis calculation.SweepAnalysis) []byte {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "RETIREMENT AGE COMPARISON")
	fmt.Fprintln(&buf, strings.Repeat("=", 72))
	fmt.Fprintf(&buf, "%-8s %16s %16s %14s %12s\n", "Age", "Final Net Worth", "Peak Net Worth", "Shortfall", "Years Funded")
	fmt.Fprintln(&buf, strings.Repeat("-", 72))
	for _, p := range points {
		shortfall := "none"
		if p.FirstShortfallYear != 0 {
			shortfall = intToString(p.FirstShortfallYear)
		}
		marker := ""
		if p.RetirementAge == analysis.EarliestFullyFundedAge {
			marker = "  <- earliest fully funded"
		}
		fmt.Fprintf(&buf, "%-8d %16s %16s %14s %12d%s\n", p.RetirementAge,
			FormatCurrency(p.FinalNetWorth), FormatCurrency(p.PeakNetWorth), shortfall, p.YearsFunded, marker)
	}
	fmt.Fprintln(&buf)

	if analysis.EarliestFullyFundedAge != 0 {
		fmt.Fprintf(&buf, "Earliest fully funded retirement age: %d\n", analysis.EarliestFullyFundedAge)
	}
	if len(points) > 0 {
		fmt.Fprintf(&buf, "Highest final net worth: %s at age %d\n",
			FormatCurrency(analysis.BestFinalNetWorth), analysis.BestFinalNetWorthAge)
	}
	if len(analysis.Considerations) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "CONSIDERATIONS:")
		for _, c := range analysis.Considerations {
			fmt.Fprintf(&buf, "• %s\n", c)
		}
	}
	return buf.Bytes()
}

// SweepCSV writes one row per retirement age.
func SweepCSV(points []domain.SweepPoint) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"RetirementAge", "FinalNetWorth", "PeakNetWorth", "FirstShortfallYear", "YearsFunded"}); err != nil {
		return nil, err
	}
	for _, p := range points {
		row := []string{
			intToString(p.RetirementAge),
			cents(p.FinalNetWorth),
			cents(p.PeakNetWorth),
			intToString(p.FirstShortfallYear),
			intToString(p.YearsFunded),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
