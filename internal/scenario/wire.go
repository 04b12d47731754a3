package scenario

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// CurrentVersion is the only envelope version Decode accepts.
const CurrentVersion = 1

// Envelope is the versioned transport form of a scenario.
type Envelope struct {
	Version int        `json:"version" yaml:"version"`
	Params  WireParams `json:"params" yaml:"params"`
}

// WireParams mirrors domain.ScenarioParams with decimals carried as bare
// numbers, so the same value serializes cleanly to JSON and YAML.
type WireParams struct {
	StartYear     int `json:"startYear" yaml:"startYear"`
	CurrentAge    int `json:"currentAge" yaml:"currentAge"`
	SpouseAge     int `json:"spouseAge" yaml:"spouseAge"`
	RetirementAge int `json:"retirementAge" yaml:"retirementAge"`
	MaxAge        int `json:"maxAge" yaml:"maxAge"`

	Stocks0     json.Number `json:"stocks0" yaml:"stocks0"`
	Cash0       json.Number `json:"cash0" yaml:"cash0"`
	RealEstate0 json.Number `json:"realEstate0" yaml:"realEstate0"`

	StockReturn      json.Number `json:"stockReturn" yaml:"stockReturn"`
	CashReturn       json.Number `json:"cashReturn" yaml:"cashReturn"`
	RealEstateReturn json.Number `json:"realEstateReturn" yaml:"realEstateReturn"`
	Inflation        json.Number `json:"inflation" yaml:"inflation"`

	UseGlidepath bool        `json:"useGlidepath" yaml:"useGlidepath"`
	GPRetMinus20 json.Number `json:"gpRetMinus20" yaml:"gpRetMinus20"`
	GPRetMinus10 json.Number `json:"gpRetMinus10" yaml:"gpRetMinus10"`
	GPRetMinus5  json.Number `json:"gpRetMinus5" yaml:"gpRetMinus5"`
	GPRet0       json.Number `json:"gpRet0" yaml:"gpRet0"`
	GPPostRet    json.Number `json:"gpPostRet" yaml:"gpPostRet"`

	Contribution0      json.Number `json:"contribution0" yaml:"contribution0"`
	ContributionGrowth json.Number `json:"contributionGrowth" yaml:"contributionGrowth"`

	BaseMonthly        json.Number `json:"baseMonthly" yaml:"baseMonthly"`
	VacationMonthly    json.Number `json:"vacationMonthly" yaml:"vacationMonthly"`
	HomeUpgradesAnnual json.Number `json:"homeUpgradesAnnual" yaml:"homeUpgradesAnnual"`

	SpendFromStocks bool `json:"spendFromStocks" yaml:"spendFromStocks"`

	Mortgages []WireMortgage `json:"mortgages" yaml:"mortgages"`
	Supports  []WireSupport  `json:"supports" yaml:"supports"`
}

// WireMortgage is the transport form of domain.MortgagePlan.
type WireMortgage struct {
	Name           string      `json:"name" yaml:"name"`
	Principal      json.Number `json:"principal" yaml:"principal"`
	Rate           json.Number `json:"rate" yaml:"rate"`
	PaymentMonthly json.Number `json:"paymentMonthly" yaml:"paymentMonthly"`
	StartYear      int         `json:"startYear" yaml:"startYear"`
	StartMonth     int         `json:"startMonth" yaml:"startMonth"`
	EndYear        int         `json:"endYear" yaml:"endYear"`
	EndMonth       int         `json:"endMonth" yaml:"endMonth"`
}

// WireSupport is the transport form of domain.SupportPlan.
type WireSupport struct {
	Name           string      `json:"name" yaml:"name"`
	Category       string      `json:"category" yaml:"category"`
	StartYear      int         `json:"startYear" yaml:"startYear"`
	EndYear        int         `json:"endYear" yaml:"endYear"`
	AnnualAmount   json.Number `json:"annualAmount" yaml:"annualAmount"`
	Model          string      `json:"model" yaml:"model"`
	AnnualIncrease json.Number `json:"annualIncrease" yaml:"annualIncrease"`
}

func num(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// ToWire converts params to their transport form.
func ToWire(p domain.ScenarioParams) WireParams {
	w := WireParams{
		StartYear:          p.StartYear,
		CurrentAge:         p.CurrentAge,
		SpouseAge:          p.SpouseAge,
		RetirementAge:      p.RetirementAge,
		MaxAge:             p.MaxAge,
		Stocks0:            num(p.Stocks0),
		Cash0:              num(p.Cash0),
		RealEstate0:        num(p.RealEstate0),
		StockReturn:        num(p.StockReturn),
		CashReturn:         num(p.CashReturn),
		RealEstateReturn:   num(p.RealEstateReturn),
		Inflation:          num(p.Inflation),
		UseGlidepath:       p.UseGlidepath,
		GPRetMinus20:       num(p.GPRetMinus20),
		GPRetMinus10:       num(p.GPRetMinus10),
		GPRetMinus5:        num(p.GPRetMinus5),
		GPRet0:             num(p.GPRet0),
		GPPostRet:          num(p.GPPostRet),
		Contribution0:      num(p.Contribution0),
		ContributionGrowth: num(p.ContributionGrowth),
		BaseMonthly:        num(p.BaseMonthly),
		VacationMonthly:    num(p.VacationMonthly),
		HomeUpgradesAnnual: num(p.HomeUpgradesAnnual),
		SpendFromStocks:    p.SpendFromStocks,
		Mortgages:          make([]WireMortgage, 0, len(p.Mortgages)),
		Supports:           make([]WireSupport, 0, len(p.Supports)),
	}
	for _, m := range p.Mortgages {
		w.Mortgages = append(w.Mortgages, WireMortgage{
			Name:           m.Name,
			Principal:      num(m.Principal),
			Rate:           num(m.Rate),
			PaymentMonthly: num(m.PaymentMonthly),
			StartYear:      m.StartYear,
			StartMonth:     m.StartMonth,
			EndYear:        m.EndYear,
			EndMonth:       m.EndMonth,
		})
	}
	for _, s := range p.Supports {
		w.Supports = append(w.Supports, WireSupport{
			Name:           s.Name,
			Category:       string(s.Category),
			StartYear:      s.StartYear,
			EndYear:        s.EndYear,
			AnnualAmount:   num(s.AnnualAmount),
			Model:          string(s.Model),
			AnnualIncrease: num(s.AnnualIncrease),
		})
	}
	return w
}

// NewEnvelope wraps params in a current-version envelope.
func NewEnvelope(p domain.ScenarioParams) Envelope {
	return Envelope{Version: CurrentVersion, Params: ToWire(p)}
}
