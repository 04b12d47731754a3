package output

import (
	"fmt"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// DefaultAssumptions lists modeling rules that hold for every scenario.
var DefaultAssumptions = []string{
	"Earnings cover base, vacation, home upgrade and mortgage costs while working",
	"Dependent support is always paid from savings",
	"Returns are applied once per year before withdrawals",
	"A year that savings cannot cover empties both stocks and cash",
}

// GenerateAssumptions creates the assumptions list from a scenario's values.
func GenerateAssumptions(p domain.ScenarioParams) []string {
	out := []string{
		fmt.Sprintf("Inflation: %s annually, applied to living costs and home upgrades", FormatPercentage(p.Inflation)),
		fmt.Sprintf("Cash return: %s, real estate appreciation: %s", FormatPercentage(p.CashReturn), FormatPercentage(p.RealEstateReturn)),
	}
	if p.UseGlidepath {
		out = append(out, fmt.Sprintf("Stock glidepath: %s (20+ years out), %s, %s, %s at retirement, %s after",
			FormatPercentage(p.GPRetMinus20), FormatPercentage(p.GPRetMinus10), FormatPercentage(p.GPRetMinus5),
			FormatPercentage(p.GPRet0), FormatPercentage(p.GPPostRet)))
	} else {
		out = append(out, fmt.Sprintf("Stock return: %s annually", FormatPercentage(p.StockReturn)))
	}
	out = append(out, fmt.Sprintf("Contributions: %s in %d, growing %s annually until age %d",
		FormatCurrency(p.Contribution0), p.StartYear, FormatPercentage(p.ContributionGrowth), p.RetirementAge))
	if p.SpendFromStocks {
		out = append(out, "Withdrawals draw on stocks before cash")
	} else {
		out = append(out, "Withdrawals draw on cash before stocks")
	}
	return append(out, DefaultAssumptions...)
}
