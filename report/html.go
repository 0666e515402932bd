package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"inquiry-desk/models"
	"inquiry-desk/services"
)

var pageTmpl = template.Must(template.New("insights").Funcs(template.FuncMap{
	"amount": services.FormatAmount,
	"inc":    func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Inquiry insights</title>
<style>
  body { font-family: sans-serif; margin: 2em; color: #222; }
  h1 { color: #6b2d8f; }
  table { border-collapse: collapse; margin-bottom: 1.5em; min-width: 40%; }
  th, td { border-bottom: 1px solid #ddd; padding: 4px 12px; text-align: left; }
  .muted { color: #888; }
</style>
</head>
<body>
<h1>Inquiry insights</h1>
<p class="muted">Generated {{.GeneratedAt.Format "2006-01-02 15:04 MST"}}</p>

<h2>Overview</h2>
<table>
  <tr><th>Total inquiries</th><td>{{.Report.TotalInquiries}}</td></tr>
  <tr><th>Opted for financing info</th><td>{{.Report.OptedForFinancingCount}}</td></tr>
</table>

<h2>Inquiries per type</h2>
{{if .Report.InquiriesPerType}}<table>
  {{range .Report.InquiriesPerType}}<tr><th>{{.Type}}</th><td>{{.Count}}</td></tr>
  {{end}}
</table>{{else}}<p class="muted">No inquiries yet</p>{{end}}

<h2>Average price per type</h2>
<p class="muted">Amounts are in mixed currencies.</p>
{{if .Report.AveragePricePerType}}<table>
  {{range .Report.AveragePricePerType}}<tr><th>{{.Type}}</th><td>{{amount .Average}}</td></tr>
  {{end}}
</table>{{else}}<p class="muted">No price data available</p>{{end}}

<h2>Top countries</h2>
{{if .Report.TopCountries}}<table>
  <tr><th>#</th><th>Country</th><th>Inquiries</th><th>Currency</th></tr>
  {{range $i, $pc := .Report.TopCountries}}{{if $pc}}<tr>
    <td>{{inc $i}}</td>
    <td>{{if $pc.Country.FlagURL}}<img src="{{$pc.Country.FlagURL}}" height="12"> {{end}}{{$pc.Country.Name}}</td>
    <td>{{$pc.OccurrenceCount}}</td>
    <td>{{$pc.Country.CurrencyName}} {{$pc.Country.CurrencySymbol}}</td>
  </tr>{{else}}<tr><td>{{inc $i}}</td><td class="muted">(unknown country)</td><td></td><td></td></tr>{{end}}
  {{end}}
</table>{{else}}<p class="muted">No country data</p>{{end}}
</body>
</html>
`))

type page struct {
	Report      *models.InsightReport
	GeneratedAt time.Time
}

// WriteHTML renders r as a standalone HTML page.
func WriteHTML(w io.Writer, r *models.InsightReport, generatedAt time.Time) error {
	if err := pageTmpl.Execute(w, page{Report: r, GeneratedAt: generatedAt}); err != nil {
		return fmt.Errorf("report: render html: %w", err)
	}
	return nil
}

// HTML is WriteHTML into a byte slice.
func HTML(r *models.InsightReport, generatedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, r, generatedAt); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
