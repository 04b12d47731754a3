package output

import (
	"bytes"
	"encoding/csv"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// CSVDetailedExporter writes one row per simulated year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "csv" }

var detailedHeader = []string{
	"Year", "Age", "Working", "StockReturn", "Contribution", "Income",
	"BaseExpense", "MortgageExpense", "VacationExpense", "UpgradesExpense",
	"ElderCare", "ChildSupport", "SupportTotal", "TotalExpenses", "SavingsFunded",
	"DrawnFromStocks", "DrawnFromCash", "StocksEnd", "CashEnd", "RealEstateEnd",
	"MortgageBalance", "NetWorth", "Shortfall",
}

func (c CSVDetailedExporter) Format(report *domain.ProjectionReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(detailedHeader); err != nil {
		return nil, err
	}
	for _, r := range report.Rows {
		e, t := r.Expenses, r.Totals
		row := []string{
			intToString(r.Year),
			intToString(r.Age),
			boolToString(r.Working),
			r.StockReturnApplied.String(),
			cents(r.Contribution),
			cents(r.Income),
			cents(e.Base),
			cents(e.Mortgage),
			cents(e.Vacation),
			cents(e.Upgrades),
			cents(e.ElderCare),
			cents(e.ChildSupport),
			cents(e.SupportTotal),
			cents(t.TotalExpenses),
			cents(t.SavingsFundedExpenses),
			cents(t.DrawnFromStocks),
			cents(t.DrawnFromCash),
			cents(t.StocksEnd),
			cents(t.CashEnd),
			cents(t.RealEstateEnd),
			cents(t.MortgageBalance),
			cents(t.NetWorth),
			boolToString(t.Shortfall),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
