package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
	pkgdecimal "github.com/shivbijlani/lifetime/pkg/decimal"
)

// SupportAmount returns what a support plan costs in year. It is zero outside
// the inclusive [StartYear, EndYear] window and never negative.
func SupportAmount(plan domain.SupportPlan, year int) decimal.Decimal {
	if year < plan.StartYear || year > plan.EndYear {
		return decimal.Zero
	}
	if plan.Model == domain.ModelLinear {
		elapsed := decimal.NewFromInt(int64(year - plan.StartYear))
		return pkgdecimal.NonNegative(plan.AnnualAmount.Add(plan.AnnualIncrease.Mul(elapsed)))
	}
	return pkgdecimal.NonNegative(plan.AnnualAmount)
}

// SupportYear splits a year's support obligations by category.
type SupportYear struct {
	ElderCare    decimal.Decimal
	ChildSupport decimal.Decimal
}

// Total is the combined support obligation.
func (s SupportYear) Total() decimal.Decimal {
	return s.ElderCare.Add(s.ChildSupport)
}

// SupportForYear sums every plan's obligation for year.
func SupportForYear(plans []domain.SupportPlan, year int) SupportYear {
	out := SupportYear{ElderCare: decimal.Zero, ChildSupport: decimal.Zero}
	for _, p := range plans {
		amount := SupportAmount(p, year)
		if p.Category == domain.CategoryChildSupport {
			out.ChildSupport = out.ChildSupport.Add(amount)
		} else {
			out.ElderCare = out.ElderCare.Add(amount)
		}
	}
	return out
}
