package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"time"
)

// row — одна строка отчёта: подпись и значение.
type row struct {
	Label string
	Value string
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
body { font-family: sans-serif; margin: 40px; }
h1 { color: #1a365d; }
table { border-collapse: collapse; width: 100%; }
td { border: 1px solid #cbd5e0; padding: 8px 12px; }
td:first-child { font-weight: bold; width: 40%; }
.meta { color: #718096; font-size: 0.85em; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
<p class="meta">Generated at {{.GeneratedAt}}</p>
<table>
{{range .Rows}}<tr><td>{{.Label}}</td><td>{{.Value}}</td></tr>
{{end}}</table>
</body>
</html>
`))

// renderHTML строит HTML-представление отчёта. Используется для формата PDF.
func renderHTML(name string, generatedAt time.Time, rows []row) ([]byte, error) {
	var buf bytes.Buffer
	err := htmlReport.Execute(&buf, struct {
		Name        string
		GeneratedAt string
		Rows        []row
	}{
		Name:        name,
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Rows:        rows,
	})
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCSV строит CSV-представление отчёта. Используется для
// форматов CSV и Excel.
func renderCSV(name string, generatedAt time.Time, rows []row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"report", name},
		{"generated_at", generatedAt.Format(time.RFC3339)},
	}
	for _, r := range rows {
		records = append(records, []string{r.Label, r.Value})
	}
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("render csv: %w", err)
	}
	return buf.Bytes(), nil
}
