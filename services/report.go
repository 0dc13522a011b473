package services

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"monster-deals/models"
)

// bestPricesLimit caps the fallback list shown when nothing beats the threshold.
const bestPricesLimit = 5

// titleWidth is the display width for titles in the fallback list.
const titleWidth = 60

var reportFuncs = template.FuncMap{
	"money":    func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"unit":     func(v float64) string { return fmt.Sprintf("$%.4f", v) },
	"volume":   func(v float64) string { return fmt.Sprintf("%g", v) },
	"truncate": func(s string) string { return truncate(s, titleWidth) },
}

var reportTemplate = template.Must(template.New("report").Funcs(reportFuncs).Parse(
	`# {{ .Product }} Deal Report

**Generated:** {{ .GeneratedAt }}

**Price Threshold:** {{ unit .Threshold }}/fl oz

**Listings checked:** {{ .Checked }}

{{ if .Deals -}}
## {{ len .Deals }} Deal(s) Found!
{{ range .Deals }}
### {{ .Record.Title }}
- **Retailer:** {{ .Record.Source }}
{{- if .Record.Seller }}
- **Seller:** {{ .Record.Seller }}
{{- end }}
- **Price:** {{ money .Record.Price }} ({{ volume .Record.Volume }} fl oz)
- **Price per fl oz:** {{ unit .Record.UnitPrice }}
{{- if gt .Savings 0.0 }}
- **Savings vs threshold:** {{ money .Savings }}
{{- end }}
- **Link:** {{ .Record.Link }}
{{ end -}}
{{ else -}}
## No deals found below threshold
{{ if .Best }}
### Best current prices:
{{ range .Best }}
- {{ .Source }}: {{ unit .UnitPrice }}/fl oz ({{ money .Price }}) - {{ truncate .Title }}
{{- end }}
{{ else }}
No listings were found in this run.
{{ end -}}
{{ end -}}
`))

type dealLine struct {
	Record  *models.Record
	Savings float64
}

type reportData struct {
	Product     string
	GeneratedAt string
	Threshold   float64
	Checked     int
	Deals       []dealLine
	Best        []*models.Record
}

// BuildReport renders a markdown report. Output depends only on its
// arguments: the same inputs always produce the same bytes.
func BuildReport(product string, records, deals []*models.Record, threshold float64, generatedAt time.Time) string {
	data := reportData{
		Product:     product,
		GeneratedAt: generatedAt.Format("2006-01-02 15:04:05"),
		Threshold:   threshold,
		Checked:     len(records),
	}

	for _, d := range SortByUnitPrice(deals) {
		data.Deals = append(data.Deals, dealLine{Record: d, Savings: roundCents(d.Savings(threshold))})
	}
	if len(data.Deals) == 0 {
		best := SortByUnitPrice(records)
		if len(best) > bestPricesLimit {
			best = best[:bestPricesLimit]
		}
		data.Best = best
	}

	var sb strings.Builder
	if err := reportTemplate.Execute(&sb, data); err != nil {
		// The template is static and data is plain values; this only fires on a programming error.
		return fmt.Sprintf("# %s Deal Report\n\nreport rendering failed: %v\n", product, err)
	}
	return sb.String()
}

// Summary is the one-line verdict printed to the operator at the end of a run.
func Summary(records, deals []*models.Record, threshold float64) string {
	if len(deals) == 0 {
		if len(records) == 0 {
			return "No listings found."
		}
		best := SortByUnitPrice(records)[0]
		return fmt.Sprintf("No deals at or below $%.4f/fl oz. Best: $%.4f/fl oz (%s).",
			threshold, best.UnitPrice, truncate(best.Title, 40))
	}
	best := SortByUnitPrice(deals)[0]
	return fmt.Sprintf("%d deal(s) found! Best: $%.4f/fl oz at %s: %s",
		len(deals), best.UnitPrice, best.Source, best.Link)
}

func roundCents(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

// truncate shortens s to at most max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
