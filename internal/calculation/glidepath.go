package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// GlidepathBand names the return band used for a given distance to retirement.
type GlidepathBand string

const (
	BandRetMinus20 GlidepathBand = "gpRetMinus20"
	BandRetMinus10 GlidepathBand = "gpRetMinus10"
	BandRetMinus5  GlidepathBand = "gpRetMinus5"
	BandRet0       GlidepathBand = "gpRet0"
	BandPostRet    GlidepathBand = "gpPostRet"
)

// BandFor maps yearsToRetire (retirementAge - age) to its band.
func BandFor(yearsToRetire int) GlidepathBand {
	switch {
	case yearsToRetire >= 15:
		return BandRetMinus20
	case yearsToRetire >= 7:
		return BandRetMinus10
	case yearsToRetire >= 2:
		return BandRetMinus5
	case yearsToRetire >= 0:
		return BandRet0
	default:
		return BandPostRet
	}
}

// StockReturnFor returns the stock return applied at age.
func StockReturnFor(p domain.ScenarioParams, age int) decimal.Decimal {
	if !p.UseGlidepath {
		return p.StockReturn
	}
	switch BandFor(p.RetirementAge - age) {
	case BandRetMinus20:
		return p.GPRetMinus20
	case BandRetMinus10:
		return p.GPRetMinus10
	case BandRetMinus5:
		return p.GPRetMinus5
	case BandRet0:
		return p.GPRet0
	default:
		return p.GPPostRet
	}
}
