// internal/pipeline/pipeline.go
// Package pipeline sequences the report: parse every package's raw output,
// then build the four comparison figures.
package pipeline

import (
	"fmt"

	"github.com/mwiater/benchchart/internal/benchdata"
	"github.com/mwiater/benchchart/internal/chart"
	"github.com/mwiater/benchchart/internal/logging"
	"github.com/mwiater/benchchart/internal/parser"
	"go.uber.org/zap"
)

// Parsed holds the parsed records of a data document.
type Parsed struct {
	Rust []chart.RustPackage `json:"rust"`
	Cpp  []chart.CppPackage  `json:"cpp"`
}

// Options controls figure construction.
type Options struct {
	Highlight      string
	RustSyncBench  string
	RustAsyncBench string
}

// Parse runs the harness parsers over every package. The first failure stops
// the run and names the package it came from.
func Parse(doc benchdata.Document) (Parsed, error) {
	var out Parsed
	for _, pkg := range doc.Rust {
		results, err := parser.ParseRust(pkg.Raw)
		if err != nil {
			return Parsed{}, fmt.Errorf("rust package %q: %w", pkg.Name, err)
		}
		logging.Logger().Debug("parsed rust package",
			zap.String("package", pkg.Name),
			zap.Int("results", len(results)))
		out.Rust = append(out.Rust, chart.RustPackage{Name: pkg.Name, Label: pkg.Label(), Results: results})
	}

	for _, pkg := range doc.Cpp {
		sync, err := parser.ParseCppSync(pkg.RawSync)
		if err != nil {
			return Parsed{}, fmt.Errorf("cpp package %q sync output: %w", pkg.Name, err)
		}
		async, err := parser.ParseCppAsync(pkg.RawAsync)
		if err != nil {
			return Parsed{}, fmt.Errorf("cpp package %q async output: %w", pkg.Name, err)
		}
		logging.Logger().Debug("parsed cpp package",
			zap.String("package", pkg.Name),
			zap.Int("sync_cases", len(sync)),
			zap.Int("async_policies", len(async.Benches)))
		out.Cpp = append(out.Cpp, chart.CppPackage{Name: pkg.Name, Label: pkg.Label(), Sync: sync, Async: async})
	}
	return out, nil
}

// Build lays out the Rust sync/async and C++ sync/async figures, in that order.
func Build(parsed Parsed, opts Options) ([]chart.Figure, error) {
	highlight := opts.Highlight
	rustCharts := append([]chart.RustChart(nil), chart.DefaultRustCharts...)
	if opts.RustSyncBench != "" {
		rustCharts[0].Bench = opts.RustSyncBench
	}
	if opts.RustAsyncBench != "" {
		rustCharts[1].Bench = opts.RustAsyncBench
	}

	figs := make([]chart.Figure, 0, len(rustCharts)+2)
	for _, rc := range rustCharts {
		entries, err := chart.ExtractRust(parsed.Rust, rc.Bench)
		if err != nil {
			return nil, err
		}
		fig, err := chart.BuildRust(entries, rc, highlight)
		if err != nil {
			return nil, err
		}
		figs = append(figs, fig)
	}

	sync, err := chart.BuildCppSync(parsed.Cpp, highlight)
	if err != nil {
		return nil, err
	}
	async, err := chart.BuildCppAsync(parsed.Cpp, highlight)
	if err != nil {
		return nil, err
	}
	return append(figs, sync, async), nil
}

// Run loads the data file and produces the figures.
func Run(dataPath string, opts Options) ([]chart.Figure, error) {
	doc, err := benchdata.Load(dataPath)
	if err != nil {
		return nil, err
	}
	parsed, err := Parse(doc)
	if err != nil {
		return nil, err
	}
	figs, err := Build(parsed, opts)
	if err != nil {
		return nil, err
	}
	logging.LogEvent("built %d figures from %s", len(figs), dataPath)
	return figs, nil
}
