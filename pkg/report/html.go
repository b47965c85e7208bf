package report

import (
	"fmt"
	"html/template"
	"io"
)

type HTMLReporter struct {
	Writer io.Writer
	Title  string
}

func (r HTMLReporter) Report(report Report) error {
	title := r.Title
	if title == "" {
		title = "LID Benchmark Report"
	}

	data := struct {
		Title  string
		Report Report
	}{
		Title:  title,
		Report: report,
	}

	funcs := template.FuncMap{
		"pct":  func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) },
		"pct1": func(v float64) string { return fmt.Sprintf("%.1f%%", v*100) },
	}
	tpl := template.Must(template.New("report").Funcs(funcs).Parse(htmlTemplate))
	return tpl.Execute(r.Writer, data)
}

const htmlTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{ .Title }}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 24px; }
    table { border-collapse: collapse; width: 100%; margin-top: 16px; }
    th, td { border: 1px solid #ddd; padding: 8px; }
    th { background: #f5f5f5; text-align: left; }
    .meta { margin-bottom: 12px; }
    .flag { color: #b36b00; }
  </style>
</head>
<body>
  <h1>{{ .Title }}</h1>
  <div class="meta">
    <div><strong>Detector:</strong> {{ .Report.Run.Detector }}</div>
    <div><strong>Corpus:</strong> {{ .Report.Run.Corpus }}</div>
    <div><strong>Seed:</strong> {{ .Report.Run.Seed }}</div>
  </div>
  <h2>Summary</h2>
  <table>
    <tr><th>Metric</th><th>Value</th></tr>
    <tr><td>Total samples</td><td>{{ .Report.Metrics.TotalSamples }}</td></tr>
    <tr><td>Mapped samples</td><td>{{ .Report.Metrics.MappedSamples }}</td></tr>
    <tr><td>Micro accuracy (mapped)</td><td>{{ pct .Report.Metrics.MicroMapped }}</td></tr>
    <tr><td>Micro accuracy (full)</td><td>{{ pct .Report.Metrics.MicroFull }}</td></tr>
    <tr><td>Macro recall (mapped)</td><td>{{ pct .Report.Metrics.MacroMapped }}</td></tr>
    <tr><td>Macro recall (full)</td><td>{{ pct .Report.Metrics.MacroFull }}</td></tr>
    <tr><td>Unknown rate</td><td>{{ pct1 .Report.Metrics.UnknownRate }}</td></tr>
    <tr><td>Failure rate</td><td>{{ pct1 .Report.Metrics.FailureRate }}</td></tr>
  </table>
  <h2>Languages</h2>
  <table>
    <tr><th>Tag</th><th>Code</th><th>Total</th><th>Correct</th><th>Unknown</th><th>Failed</th><th>Accuracy</th></tr>
    {{ range .Report.Languages }}
    <tr>
      <td>{{ .Tag }}{{ if .LowSample }} <span class="flag">(low-sample)</span>{{ end }}</td>
      <td>{{ .Code }}</td>
      <td>{{ .Total }}</td>
      <td>{{ .Correct }}</td>
      <td>{{ .Unknown }}</td>
      <td>{{ .Failed }}</td>
      <td>{{ if .Mapped }}{{ pct1 .Accuracy }}{{ else }}unmapped{{ end }}</td>
    </tr>
    {{ end }}
  </table>
  {{ if .Report.Unmapped }}
  <h2>Unmapped tags</h2>
  <p>{{ range .Report.Unmapped }}{{ . }} {{ end }}</p>
  {{ end }}
</body>
</html>`
