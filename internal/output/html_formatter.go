package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/shivbijlani/lifetime/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with a net worth chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercentage,
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

type chartPoint struct {
	Year     int     `json:"year"`
	NetWorth float64 `json:"netWorth"`
	Liquid   float64 `json:"liquid"`
}

func (h HTMLFormatter) Format(report *domain.ProjectionReport) ([]byte, error) {
	var buf bytes.Buffer

	chart := make([]chartPoint, 0, len(report.Rows))
	for _, r := range report.Rows {
		chart = append(chart, chartPoint{
			Year:     r.Year,
			NetWorth: r.Totals.NetWorth.Round(0).InexactFloat64(),
			Liquid:   r.LiquidAssets().Round(0).InexactFloat64(),
		})
	}

	data := struct {
		*domain.ProjectionReport
		Title       string
		DollarBasis string
		Assumptions []string
		Chart       []chartPoint
	}{report, reportTitle(report), dollarBasis(report), GenerateAssumptions(report.Params), chart}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reportTitle(report *domain.ProjectionReport) string {
	if report.Name != "" {
		return "Lifetime Projection: " + report.Name
	}
	return "Lifetime Projection"
}
