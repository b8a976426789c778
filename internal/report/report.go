// internal/report/report.go
// Package report renders a standalone HTML page embedding every chart.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/benchchart/internal/chart"
)

// ReportData is the template view model.
type ReportData struct {
	Title  string
	Source string
	Charts []ReportChart
}

// ReportChart is one inline SVG figure.
type ReportChart struct {
	Name  string
	Title string
	SVG   template.HTML
}

// GenerateReport draws every figure as SVG and embeds it into one HTML page.
func GenerateReport(figs []chart.Figure, source string) (string, error) {
	viewModel := ReportData{
		Title:  "benchchart: logging benchmark comparison",
		Source: source,
	}
	for _, fig := range figs {
		var svg bytes.Buffer
		if err := fig.WriteTo(&svg, chart.FormatSVG); err != nil {
			return "", fmt.Errorf("unable to draw %s: %w", fig.Name, err)
		}
		viewModel.Charts = append(viewModel.Charts, ReportChart{
			Name:  fig.Name,
			Title: fig.Title,
			SVG:   template.HTML(inlineSVG(svg.String())),
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, viewModel); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// inlineSVG drops the XML prolog so the document can sit inside HTML.
func inlineSVG(doc string) string {
	if i := strings.Index(doc, "<svg"); i > 0 {
		return doc[i:]
	}
	return doc
}

// WriteReport renders the report and writes it to path.
func WriteReport(path string, figs []chart.Figure, source string) error {
	html, err := GenerateReport(figs, source)
	if err != nil {
		return fmt.Errorf("failed generating HTML report: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return fmt.Errorf("unable to write HTML report %s: %w", path, err)
	}
	return nil
}

var reportTemplate = template.Must(template.New("benchchart-report").Parse(reportTemplateHTML))

const reportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body {
      margin: 0;
      font-family: system-ui, sans-serif;
      background-color: var(--light);
      color: var(--text);
    }
    header {
      background-color: var(--primary);
      color: var(--light);
      padding: 1rem 2rem;
    }
    header small { color: var(--border); }
    nav { padding: 1rem 2rem 0; }
    nav a { margin-right: 1rem; color: var(--primary); }
    .chart-card {
      background: var(--background);
      border-radius: 16px;
      padding: 1.5rem;
      margin: 1.5rem 2rem;
      box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1);
      border: 1px solid var(--border);
    }
    .chart-title {
      font-size: 1.5rem;
      font-weight: 700;
      margin-bottom: 1rem;
    }
    .chart-card svg { max-width: 100%; height: auto; }
  </style>
</head>
<body>
  <header>
    <h1>{{ .Title }}</h1>
    {{ if .Source }}<small>Source: {{ .Source }}</small>{{ end }}
  </header>
  <nav>
    {{ range .Charts }}<a href="#{{ .Name }}">{{ .Title }}</a>{{ end }}
  </nav>
  {{ range .Charts }}
  <section class="chart-card" id="{{ .Name }}">
    <div class="chart-title">{{ .Title }}</div>
    {{ .SVG }}
  </section>
  {{ end }}
</body>
</html>
`
