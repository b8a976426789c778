// internal/chart/build.go
package chart

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/mwiater/benchchart/internal/parser"
)

// DefaultHighlight is the package whose bars are outlined.
const DefaultHighlight = "spdlog-rs"

const (
	syncSkippedBench     = "level-off"
	asyncLegendTitle     = "Queue Overflow Policy"
	rustBarFill          = 0.6
	groupedBarFill       = 0.75
	unsupportedValueText = "Unsupported"
)

// asyncPolicyNames maps spdlog-rs and C++ spdlog policy names onto shared series.
var asyncPolicyNames = map[string]string{
	"Block":        "Block / block",
	"block":        "Block / block",
	"DropIncoming": "DropIncoming / overrun",
	"overrun":      "DropIncoming / overrun",
}

// RustPackage is a Rust crate with all of its parsed bench results.
type RustPackage struct {
	Name    string              `json:"name"`
	Label   string              `json:"label"`
	Results []parser.RustResult `json:"results"`
}

// RustEntry is a Rust crate reduced to the result of a single bench.
type RustEntry struct {
	Name   string
	Label  string
	Result parser.RustResult
}

// CppPackage is a package measured with the C++ harness.
type CppPackage struct {
	Name  string             `json:"name"`
	Label string             `json:"label"`
	Sync  []parser.SyncCase  `json:"result_sync"`
	Async parser.AsyncResult `json:"result_async"`
}

// RustChart describes one Rust comparison figure.
type RustChart struct {
	Name    string
	Bench   string
	Title   string
	Color   color.RGBA
	Better  string
	XMargin float64
}

// DefaultRustCharts are the two single-file charts of the comparison report.
var DefaultRustCharts = []RustChart{
	{Name: "chart-rust-sync", Bench: "file", Title: "Log to single file - Sync", Color: TabBlue, Better: "lower", XMargin: 0.25},
	{Name: "chart-rust-async", Bench: "file_async", Title: "Log to single file - Async", Color: TabOrange, Better: "lower", XMargin: 0.22},
}

const (
	cppSyncName   = "chart-cpp-sync"
	cppAsyncName  = "chart-cpp-async"
	cppSyncTitle  = "spdlog-rs vs C++ spdlog\nSync"
	cppAsyncTitle = "spdlog-rs vs C++ spdlog\nAsync"
	cppBetter     = "higher"
	cppXMargin    = 0.1
)

// ExtractRust selects the result named bench from every package, keeping the
// first match. A package without the bench is an error.
func ExtractRust(pkgs []RustPackage, bench string) ([]RustEntry, error) {
	entries := make([]RustEntry, 0, len(pkgs))
	for _, pkg := range pkgs {
		found := false
		for _, res := range pkg.Results {
			if res.Bench == bench {
				entries = append(entries, RustEntry{Name: pkg.Name, Label: pkg.Label, Result: res})
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q in package %q", ErrBenchNotFound, bench, pkg.Name)
		}
	}
	return entries, nil
}

// BuildRust lays out a Rust figure: packages ordered by median, unsupported
// packages last, one bar per package.
func BuildRust(entries []RustEntry, rc RustChart, highlight string) (Figure, error) {
	if len(entries) == 0 {
		return Figure{}, fmt.Errorf("%s: %w", rc.Name, ErrNoPackages)
	}
	sorted := append([]RustEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rustOrder(sorted[i]) < rustOrder(sorted[j])
	})

	panel := Panel{
		Title:   rc.Title,
		XLabel:  parser.RustUnit,
		Better:  rc.Better,
		XMargin: rc.XMargin,
		BarFill: rustBarFill,
	}
	series := Series{Color: rc.Color}
	for _, e := range sorted {
		panel.Categories = append(panel.Categories, Category{
			Label:     e.Label,
			Highlight: e.Name == highlight,
		})
		value := 0.0
		if e.Result.Value != nil {
			value = e.Result.Value.Median
		}
		series.Values = append(series.Values, value)
		series.Labels = append(series.Labels, rustValueLabel(e.Result))
	}
	panel.Series = []Series{series}

	fig := Figure{Name: rc.Name, Title: rc.Title, Width: 10, Height: 7, Panels: []Panel{panel}}
	return fig, panel.validate()
}

func rustOrder(e RustEntry) float64 {
	if e.Result.Value == nil {
		return math.Inf(1)
	}
	return e.Result.Value.Median
}

func rustValueLabel(res parser.RustResult) string {
	if res.Value == nil {
		return unsupportedValueText
	}
	return fmt.Sprintf("%s (+/- %s)", pyFloat(res.Value.Median), pyFloat(res.Value.Deviation))
}

// pyFloat formats like Python's str(float): shortest repr, always with a
// fraction, exponent form outside [1e-4, 1e16).
func pyFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	if abs := math.Abs(v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// BuildCppSync lays out one panel per multi threaded case. Every package must
// report the same number of cases and the same benches; level-off is skipped.
func BuildCppSync(pkgs []CppPackage, highlight string) (Figure, error) {
	if len(pkgs) == 0 {
		return Figure{}, fmt.Errorf("%s: %w", cppSyncName, ErrNoPackages)
	}
	caseCount := len(pkgs[0].Sync)
	for _, pkg := range pkgs {
		if len(pkg.Sync) != caseCount {
			return Figure{}, fmt.Errorf("%w: package %q has %d cases, expected %d", ErrInconsistentCases, pkg.Name, len(pkg.Sync), caseCount)
		}
	}

	fig := Figure{Name: cppSyncName, Title: flatTitle(cppSyncTitle), Width: 10, Height: 11}
	for i := 0; i < caseCount; i++ {
		panel := Panel{
			XLabel:  parser.CppUnit,
			Better:  cppBetter,
			XMargin: cppXMargin,
			BarFill: groupedBarFill,
		}
		groups := newSeriesGroups()
		for p, pkg := range pkgs {
			c := pkg.Sync[i]
			panel.Title = fmt.Sprintf("%s, %d threads, %d messages", cppSyncTitle, c.Threads, c.Messages)
			panel.Categories = append(panel.Categories, cppCategory(pkg, highlight))
			for _, b := range c.Benches {
				if b.Bench == syncSkippedBench {
					continue
				}
				groups.set(b.Bench, p, b.Logs)
			}
		}
		series, err := groups.series(pkgs)
		if err != nil {
			return Figure{}, fmt.Errorf("case %d: %w", i+1, err)
		}
		panel.Series = series
		if err := panel.validate(); err != nil {
			return Figure{}, err
		}
		fig.Panels = append(fig.Panels, panel)
	}
	return fig, nil
}

// BuildCppAsync lays out the async comparison: one row per package, one bar per
// overflow policy, annotated with the queue size.
func BuildCppAsync(pkgs []CppPackage, highlight string) (Figure, error) {
	if len(pkgs) == 0 {
		return Figure{}, fmt.Errorf("%s: %w", cppAsyncName, ErrNoPackages)
	}
	panel := Panel{
		XLabel:      parser.CppUnit,
		Better:      cppBetter,
		LegendTitle: asyncLegendTitle,
		XMargin:     cppXMargin,
		BarFill:     groupedBarFill,
	}
	groups := newSeriesGroups()
	for p, pkg := range pkgs {
		res := pkg.Async
		panel.Title = fmt.Sprintf("%s, %s threads, %s messages, queue: %s", cppAsyncTitle, res.Threads, res.Messages, res.Queue)
		size, err := res.QueueSize()
		if err != nil {
			return Figure{}, fmt.Errorf("package %q: %w", pkg.Name, err)
		}
		category := cppCategory(pkg, highlight)
		category.Note = "Queue size: " + size
		panel.Categories = append(panel.Categories, category)
		for _, b := range res.Benches {
			name, ok := asyncPolicyNames[b.Bench]
			if !ok {
				return Figure{}, fmt.Errorf("%w: %q in package %q", ErrUnknownPolicy, b.Bench, pkg.Name)
			}
			groups.set(name, p, b.Logs)
		}
	}
	series, err := groups.series(pkgs)
	if err != nil {
		return Figure{}, err
	}
	panel.Series = series

	fig := Figure{Name: cppAsyncName, Title: flatTitle(cppAsyncTitle), Width: 10, Height: 4, Panels: []Panel{panel}}
	return fig, panel.validate()
}

func cppCategory(pkg CppPackage, highlight string) Category {
	return Category{
		Label:     pkg.Label,
		Highlight: highlight != "" && strings.Contains(pkg.Label, highlight),
	}
}

func flatTitle(title string) string {
	return strings.ReplaceAll(title, "\n", " - ")
}

// seriesGroups collects throughput per bench name in first-seen order.
type seriesGroups struct {
	order  []string
	values map[string]map[int]int64
}

func newSeriesGroups() *seriesGroups {
	return &seriesGroups{values: make(map[string]map[int]int64)}
}

func (g *seriesGroups) set(name string, pkg int, logs int64) {
	byPkg, ok := g.values[name]
	if !ok {
		byPkg = make(map[int]int64)
		g.values[name] = byPkg
		g.order = append(g.order, name)
	}
	byPkg[pkg] = logs
}

func (g *seriesGroups) series(pkgs []CppPackage) ([]Series, error) {
	out := make([]Series, 0, len(g.order))
	for i, name := range g.order {
		s := Series{Name: name, Color: seriesPalette[i%len(seriesPalette)]}
		for p, pkg := range pkgs {
			logs, ok := g.values[name][p]
			if !ok {
				return nil, fmt.Errorf("%w: %q in package %q", ErrBenchNotFound, name, pkg.Name)
			}
			s.Values = append(s.Values, float64(logs))
			s.Labels = append(s.Labels, strconv.FormatInt(logs, 10))
		}
		out = append(out, s)
	}
	return out, nil
}
