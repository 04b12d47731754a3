package calculation

import (
	"github.com/shopspring/decimal"

	pkgdecimal "github.com/shivbijlani/lifetime/pkg/decimal"
)

// ShortfallThreshold is the unfunded remainder above which a year is a shortfall.
var ShortfallThreshold = decimal.New(1, -6)

// WaterfallResult is the outcome of funding one year's savings-funded expenses.
type WaterfallResult struct {
	Stocks          decimal.Decimal
	Cash            decimal.Decimal
	DrawnFromStocks decimal.Decimal
	DrawnFromCash   decimal.Decimal
	Unfunded        decimal.Decimal
	Shortfall       bool
}

// ApplyWaterfall draws need from stocks and cash in the order selected by
// spendFromStocks. When both sources cannot cover need, the year is a
// shortfall and both balances end at zero.
func ApplyWaterfall(stocks, cash, need decimal.Decimal, spendFromStocks bool) WaterfallResult {
	remaining := pkgdecimal.NonNegative(need)
	stocks = pkgdecimal.NonNegative(stocks)
	cash = pkgdecimal.NonNegative(cash)

	var fromStocks, fromCash decimal.Decimal
	if spendFromStocks {
		fromStocks = pkgdecimal.Min(stocks, remaining)
		remaining = remaining.Sub(fromStocks)
		fromCash = pkgdecimal.Min(cash, remaining)
		remaining = remaining.Sub(fromCash)
	} else {
		fromCash = pkgdecimal.Min(cash, remaining)
		remaining = remaining.Sub(fromCash)
		fromStocks = pkgdecimal.Min(stocks, remaining)
		remaining = remaining.Sub(fromStocks)
	}

	res := WaterfallResult{
		Stocks:          pkgdecimal.NonNegative(stocks.Sub(fromStocks)),
		Cash:            pkgdecimal.NonNegative(cash.Sub(fromCash)),
		DrawnFromStocks: fromStocks,
		DrawnFromCash:   fromCash,
		Unfunded:        remaining,
	}
	if remaining.GreaterThan(ShortfallThreshold) {
		res.Shortfall = true
		res.Stocks = decimal.Zero
		res.Cash = decimal.Zero
	}
	return res
}
