package dateutil

import (
	"fmt"
	"time"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month int // 1-12
}

// NewYearMonth builds a YearMonth without validating the month.
func NewYearMonth(year, month int) YearMonth {
	return YearMonth{Year: year, Month: month}
}

// Index returns a monotonically increasing month number, convenient for comparisons
func (ym YearMonth) Index() int {
	return ym.Year*12 + (ym.Month - 1)
}

// Before reports whether ym is strictly earlier than other.
func (ym YearMonth) Before(other YearMonth) bool {
	return ym.Index() < other.Index()
}

// After reports whether ym is strictly later than other.
func (ym YearMonth) After(other YearMonth) bool {
	return ym.Index() > other.Index()
}

// Within reports whether ym lies in the inclusive window [from, to].
func (ym YearMonth) Within(from, to YearMonth) bool {
	return !ym.Before(from) && !ym.After(to)
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, ym.Month)
}

// ClampMonth returns month when it is a valid calendar month, otherwise fallback.
func ClampMonth(month, fallback int) int {
	if month < 1 || month > 12 {
		return fallback
	}
	return month
}

// NextProjectionYear is the first full calendar year after now (UTC).
func NextProjectionYear(now time.Time) int {
	return now.UTC().Year() + 1
}
