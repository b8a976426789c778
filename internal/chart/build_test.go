package chart

import (
	"testing"

	"github.com/mwiater/benchchart/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func measured(bench string, median, dev float64) parser.RustResult {
	return parser.RustResult{Bench: bench, Value: &parser.Measurement{Unit: parser.RustUnit, Median: median, Deviation: dev}}
}

func rustPackages() []RustPackage {
	return []RustPackage{
		{Name: "log4rs", Label: "log4rs\n1.3.0", Results: []parser.RustResult{measured("file", 1016, 16), {Bench: "file_async", Async: true}}},
		{Name: "spdlog-rs", Label: "spdlog-rs\n0.4.0", Results: []parser.RustResult{measured("file", 216, 6), measured("file_async", 198.58, 1.96)}},
		{Name: "fern", Label: "fern\n0.6.2", Results: []parser.RustResult{measured("file", 700.5, 20), {Bench: "file_async", Async: true}}},
	}
}

func TestExtractRust(t *testing.T) {
	entries, err := ExtractRust(rustPackages(), "file_async")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "log4rs", entries[0].Name)
	assert.False(t, entries[0].Result.Supported())
	assert.InDelta(t, 198.58, entries[1].Result.Value.Median, 1e-9)

	_, err = ExtractRust(rustPackages(), "rotating_daily")
	require.ErrorIs(t, err, ErrBenchNotFound)
}

func TestBuildRustOrdersByMedian(t *testing.T) {
	entries, err := ExtractRust(rustPackages(), "file")
	require.NoError(t, err)

	fig, err := BuildRust(entries, DefaultRustCharts[0], DefaultHighlight)
	require.NoError(t, err)
	assert.Equal(t, "chart-rust-sync", fig.Name)
	require.Len(t, fig.Panels, 1)

	panel := fig.Panels[0]
	assert.Equal(t, "Log to single file - Sync", panel.Title)
	assert.Equal(t, "ns/iter", panel.XLabel)
	assert.Equal(t, "lower is better", panel.BetterText())
	require.Len(t, panel.Categories, 3)
	assert.Equal(t, "spdlog-rs\n0.4.0", panel.Categories[0].Label)
	assert.True(t, panel.Categories[0].Highlight)
	assert.Equal(t, "fern\n0.6.2", panel.Categories[1].Label)
	assert.False(t, panel.Categories[1].Highlight)

	require.Len(t, panel.Series, 1)
	assert.Equal(t, []float64{216, 700.5, 1016}, panel.Series[0].Values)
	assert.Equal(t, []string{"216.0 (+/- 6.0)", "700.5 (+/- 20.0)", "1016.0 (+/- 16.0)"}, panel.Series[0].Labels)
	assert.Equal(t, TabBlue, panel.Series[0].Color)
}

func TestBuildRustUnsupportedLast(t *testing.T) {
	entries, err := ExtractRust(rustPackages(), "file_async")
	require.NoError(t, err)

	fig, err := BuildRust(entries, DefaultRustCharts[1], DefaultHighlight)
	require.NoError(t, err)
	panel := fig.Panels[0]
	assert.Equal(t, []string{"spdlog-rs\n0.4.0", "log4rs\n1.3.0", "fern\n0.6.2"}, []string{
		panel.Categories[0].Label, panel.Categories[1].Label, panel.Categories[2].Label,
	})
	assert.Equal(t, []float64{198.58, 0, 0}, panel.Series[0].Values)
	assert.Equal(t, []string{"198.58 (+/- 1.96)", "Unsupported", "Unsupported"}, panel.Series[0].Labels)
	assert.InDelta(t, 198.58*1.22, panel.XMax(), 1e-9)
}

func TestBuildRustKeepsDocumentOrderOnTies(t *testing.T) {
	entries := []RustEntry{
		{Name: "slog", Label: "slog", Result: parser.RustResult{Bench: "file"}},
		{Name: "tracing", Label: "tracing", Result: measured("file", 300, 5)},
		{Name: "fern", Label: "fern", Result: parser.RustResult{Bench: "file"}},
		{Name: "log4rs", Label: "log4rs", Result: measured("file", 300, 9)},
		{Name: "spdlog-rs", Label: "spdlog-rs", Result: measured("file", 120, 2)},
	}

	fig, err := BuildRust(entries, DefaultRustCharts[0], DefaultHighlight)
	require.NoError(t, err)
	panel := fig.Panels[0]

	labels := make([]string, 0, len(panel.Categories))
	for _, c := range panel.Categories {
		labels = append(labels, c.Label)
	}
	assert.Equal(t, []string{"spdlog-rs", "tracing", "log4rs", "slog", "fern"}, labels)
	assert.Equal(t, []string{"120.0 (+/- 2.0)", "300.0 (+/- 5.0)", "300.0 (+/- 9.0)", "Unsupported", "Unsupported"}, panel.Series[0].Labels)
}

func TestBuildRustEmpty(t *testing.T) {
	_, err := BuildRust(nil, DefaultRustCharts[0], DefaultHighlight)
	require.ErrorIs(t, err, ErrNoPackages)
}

func cppPackages() []CppPackage {
	return []CppPackage{
		{
			Name:  "spdlog-rs",
			Label: "spdlog-rs\n0.4.0",
			Sync: []parser.SyncCase{
				{Threads: 1, Messages: 250000, Benches: []parser.SyncBench{{Bench: "basic_mt", Logs: 100}, {Bench: "rotating_mt", Logs: 90}, {Bench: "level-off", Logs: 9999}}},
				{Threads: 4, Messages: 1000000, Benches: []parser.SyncBench{{Bench: "basic_mt", Logs: 80}, {Bench: "rotating_mt", Logs: 70}}},
			},
			Async: parser.AsyncResult{
				Messages: "1,000,000", Threads: "10", Queue: "8,192 slots", QueueMemory: "8,192 x 288 = 2,304 KB",
				Benches: []parser.AsyncBench{{Bench: "Block", Logs: 500}, {Bench: "DropIncoming", Logs: 900}},
			},
		},
		{
			Name:  "spdlog",
			Label: "spdlog (C++)\n1.14.1",
			Sync: []parser.SyncCase{
				{Threads: 1, Messages: 250000, Benches: []parser.SyncBench{{Bench: "basic_mt", Logs: 95}, {Bench: "rotating_mt", Logs: 85}}},
				{Threads: 4, Messages: 1000000, Benches: []parser.SyncBench{{Bench: "basic_mt", Logs: 75}, {Bench: "rotating_mt", Logs: 65}}},
			},
			Async: parser.AsyncResult{
				Messages: "1,000,000", Threads: "10", Queue: "8,192 slots", QueueMemory: "8,192 x 304 = 2,432 KB",
				Benches: []parser.AsyncBench{{Bench: "block", Logs: 450}, {Bench: "overrun", Logs: 1000}},
			},
		},
	}
}

func TestBuildCppSync(t *testing.T) {
	fig, err := BuildCppSync(cppPackages(), DefaultHighlight)
	require.NoError(t, err)
	assert.Equal(t, "chart-cpp-sync", fig.Name)
	require.Len(t, fig.Panels, 2)

	first := fig.Panels[0]
	assert.Equal(t, "spdlog-rs vs C++ spdlog\nSync, 1 threads, 250000 messages", first.Title)
	assert.Equal(t, "logs/sec", first.XLabel)
	assert.Equal(t, "higher is better", first.BetterText())
	assert.True(t, first.Categories[0].Highlight)
	assert.False(t, first.Categories[1].Highlight)

	require.Len(t, first.Series, 2, "level-off must be skipped")
	assert.Equal(t, "basic_mt", first.Series[0].Name)
	assert.Equal(t, []float64{100, 95}, first.Series[0].Values)
	assert.Equal(t, []string{"100", "95"}, first.Series[0].Labels)
	assert.Equal(t, "rotating_mt", first.Series[1].Name)
	assert.Equal(t, TabOrange, first.Series[1].Color)

	assert.Equal(t, "spdlog-rs vs C++ spdlog\nSync, 4 threads, 1000000 messages", fig.Panels[1].Title)
	assert.Equal(t, []float64{70, 65}, fig.Panels[1].Series[1].Values)
}

func TestBuildCppSyncErrors(t *testing.T) {
	pkgs := cppPackages()
	pkgs[1].Sync = pkgs[1].Sync[:1]
	_, err := BuildCppSync(pkgs, DefaultHighlight)
	require.ErrorIs(t, err, ErrInconsistentCases)

	pkgs = cppPackages()
	pkgs[1].Sync[0].Benches = pkgs[1].Sync[0].Benches[:1]
	_, err = BuildCppSync(pkgs, DefaultHighlight)
	require.ErrorIs(t, err, ErrBenchNotFound)

	_, err = BuildCppSync(nil, DefaultHighlight)
	require.ErrorIs(t, err, ErrNoPackages)
}

func TestBuildCppAsync(t *testing.T) {
	fig, err := BuildCppAsync(cppPackages(), DefaultHighlight)
	require.NoError(t, err)
	require.Len(t, fig.Panels, 1)

	panel := fig.Panels[0]
	assert.Equal(t, "spdlog-rs vs C++ spdlog\nAsync, 10 threads, 1,000,000 messages, queue: 8,192 slots", panel.Title)
	assert.Equal(t, "Queue Overflow Policy", panel.LegendTitle)
	assert.Equal(t, "Queue size: 2,304 KB", panel.Categories[0].Note)
	assert.Equal(t, "Queue size: 2,432 KB", panel.Categories[1].Note)

	require.Len(t, panel.Series, 2)
	assert.Equal(t, "Block / block", panel.Series[0].Name)
	assert.Equal(t, []float64{500, 450}, panel.Series[0].Values)
	assert.Equal(t, "DropIncoming / overrun", panel.Series[1].Name)
	assert.Equal(t, []float64{900, 1000}, panel.Series[1].Values)
	assert.InDelta(t, 1100, panel.XMax(), 1e-9)
}

func TestBuildCppAsyncErrors(t *testing.T) {
	pkgs := cppPackages()
	pkgs[0].Async.Benches[0].Bench = "discard"
	_, err := BuildCppAsync(pkgs, DefaultHighlight)
	require.ErrorIs(t, err, ErrUnknownPolicy)

	pkgs = cppPackages()
	pkgs[1].Async.QueueMemory = "unknown"
	_, err = BuildCppAsync(pkgs, DefaultHighlight)
	require.ErrorIs(t, err, parser.ErrMalformed)
}

func TestPyFloat(t *testing.T) {
	assert.Equal(t, "216.0", pyFloat(216))
	assert.Equal(t, "216.82", pyFloat(216.82))
	assert.Equal(t, "0.0", pyFloat(0))
	assert.Equal(t, "0.0001", pyFloat(1e-4))
	assert.Equal(t, "1e-05", pyFloat(1e-5))
	assert.Equal(t, "1.5e-05", pyFloat(1.5e-5))
	assert.Equal(t, "1000000000000000.0", pyFloat(1e15))
	assert.Equal(t, "1e+16", pyFloat(1e16))
	assert.Equal(t, "-2.5e+20", pyFloat(-2.5e20))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#1f77b4", Hex(TabBlue))
}
