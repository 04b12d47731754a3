package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// SweepAnalysis highlights notable points of a retirement-age sweep.
type SweepAnalysis struct {
	EarliestFullyFundedAge int             `json:"earliestFullyFundedAge" yaml:"earliestFullyFundedAge"` // 0 when every age hits a shortfall
	BestFinalNetWorthAge   int             `json:"bestFinalNetWorthAge" yaml:"bestFinalNetWorthAge"`
	BestFinalNetWorth      decimal.Decimal `json:"bestFinalNetWorth" yaml:"bestFinalNetWorth"`
	Considerations         []string        `json:"considerations" yaml:"considerations"`
}

// AnalyzeSweep picks the earliest retirement age that never runs short and the
// age with the highest final net worth.
func AnalyzeSweep(points []domain.SweepPoint) SweepAnalysis {
	var a SweepAnalysis
	for i, p := range points {
		if a.EarliestFullyFundedAge == 0 && p.FirstShortfallYear == 0 {
			a.EarliestFullyFundedAge = p.RetirementAge
		}
		if i == 0 || p.FinalNetWorth.GreaterThan(a.BestFinalNetWorth) {
			a.BestFinalNetWorth = p.FinalNetWorth
			a.BestFinalNetWorthAge = p.RetirementAge
		}
	}

	if len(points) == 0 {
		return a
	}
	if a.EarliestFullyFundedAge == 0 {
		a.Considerations = append(a.Considerations, "No retirement age in the range avoids a shortfall; reduce spending or raise contributions")
	} else if a.EarliestFullyFundedAge > points[0].RetirementAge {
		a.Considerations = append(a.Considerations, "Retiring before the earliest fully funded age exhausts savings")
	}
	a.Considerations = append(a.Considerations, "Returns are fixed assumptions; sequence-of-returns risk is not modeled")
	return a
}
