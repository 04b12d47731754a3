package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		yearsToRetire int
		want          GlidepathBand
	}{
		{25, BandRetMinus20},
		{15, BandRetMinus20},
		{14, BandRetMinus10},
		{7, BandRetMinus10},
		{6, BandRetMinus5},
		{2, BandRetMinus5},
		{1, BandRet0},
		{0, BandRet0},
		{-1, BandPostRet},
		{-30, BandPostRet},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BandFor(tt.yearsToRetire), "yearsToRetire=%d", tt.yearsToRetire)
	}
}

func TestStockReturnFor(t *testing.T) {
	p := testScenario() // retires at 60

	assertDecimalEqual(t, "0.1", StockReturnFor(p, 40))
	assertDecimalEqual(t, "0.085", StockReturnFor(p, 46))
	assertDecimalEqual(t, "0.065", StockReturnFor(p, 54))
	assertDecimalEqual(t, "0.05", StockReturnFor(p, 59))
	assertDecimalEqual(t, "0.05", StockReturnFor(p, 60))
	assertDecimalEqual(t, "0.04", StockReturnFor(p, 61))

	p.UseGlidepath = false
	assertDecimalEqual(t, "0.07", StockReturnFor(p, 40))
	assertDecimalEqual(t, "0.07", StockReturnFor(p, 75))
}
