package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	pkgdecimal "github.com/shivbijlani/lifetime/pkg/decimal"
)

// FormatCurrency formats a decimal as whole US dollars with thousands separators.
func FormatCurrency(amount decimal.Decimal) string { return pkgdecimal.Format(amount) }

// FormatPercentage formats a rate (0.07) as a percentage with 2 decimals (7.00%).
func FormatPercentage(rate decimal.Decimal) string { return pkgdecimal.FormatPercent(rate) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// cents renders a machine-readable amount with two decimals.
func cents(d decimal.Decimal) string { return d.StringFixed(2) }
