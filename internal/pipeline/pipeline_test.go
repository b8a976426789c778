package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/mwiater/benchchart/internal/benchdata"
	"github.com/mwiater/benchchart/internal/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixture = filepath.Join("testdata", "data.toml")

func TestRun(t *testing.T) {
	figs, err := Run(fixture, Options{Highlight: chart.DefaultHighlight})
	require.NoError(t, err)
	require.Len(t, figs, 4)

	names := make([]string, 0, len(figs))
	for _, f := range figs {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"chart-rust-sync", "chart-rust-async", "chart-cpp-sync", "chart-cpp-async"}, names)

	rustSync := figs[0].Panels[0]
	require.Len(t, rustSync.Categories, 3)
	assert.Equal(t, "spdlog-rs\n0.4.0\n(level-info)", rustSync.Categories[0].Label)
	assert.True(t, rustSync.Categories[0].Highlight)
	assert.Equal(t, "fern\n0.6.2", rustSync.Categories[1].Label)
	assert.Equal(t, []string{"216.0 (+/- 6.0)", "641.25 (+/- 9.5)", "1016.0 (+/- 16.0)"}, rustSync.Series[0].Labels)

	rustAsync := figs[1].Panels[0]
	assert.Equal(t, []string{"98.0 (+/- 3.0)", "Unsupported", "Unsupported"}, rustAsync.Series[0].Labels)
	assert.Equal(t, "log4rs\n1.3.0", rustAsync.Categories[1].Label)

	cppSync := figs[2]
	require.Len(t, cppSync.Panels, 2)
	assert.Contains(t, cppSync.Panels[1].Title, "4 threads, 1000000 messages")
	require.Len(t, cppSync.Panels[0].Series, 2)
	assert.Equal(t, "basic_mt", cppSync.Panels[0].Series[0].Name)
	assert.Equal(t, []float64{1913186, 1666666}, cppSync.Panels[0].Series[0].Values)

	cppAsync := figs[3].Panels[0]
	require.Len(t, cppAsync.Series, 2)
	assert.Equal(t, "Block / block", cppAsync.Series[0].Name)
	assert.Equal(t, []float64{635807, 540935}, cppAsync.Series[0].Values)
	assert.Equal(t, []float64{2816359, 2250000}, cppAsync.Series[1].Values)
	assert.Equal(t, "Queue size: 2,304 KB", cppAsync.Categories[0].Note)
	assert.True(t, cppAsync.Categories[0].Highlight)
	assert.False(t, cppAsync.Categories[1].Highlight)
}

func TestBuildBenchOverride(t *testing.T) {
	doc, err := benchdata.Load(fixture)
	require.NoError(t, err)
	parsed, err := Parse(doc)
	require.NoError(t, err)

	figs, err := Build(parsed, Options{RustSyncBench: "level_off"})
	require.Error(t, err, "fern has no level_off bench")
	assert.ErrorIs(t, err, chart.ErrBenchNotFound)
	assert.Nil(t, figs)

	parsed.Rust = parsed.Rust[:2]
	figs, err = Build(parsed, Options{RustSyncBench: "level_off"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1.0 (+/- 0.0)", "2.0 (+/- 0.0)"}, figs[0].Panels[0].Series[0].Labels)
	assert.Equal(t, "chart-rust-sync", figs[0].Name)
	assert.Equal(t, "file", chart.DefaultRustCharts[0].Bench, "defaults must not be mutated")
}

func TestParseNamesFailingPackage(t *testing.T) {
	doc := benchdata.Document{
		Rust: []benchdata.RustPackage{{Name: "broken", Version: "0.1.0", Raw: "test bench_1_file ... bench: 1 ms/iter (+/- 1)"}},
	}
	_, err := Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `rust package "broken"`)

	doc = benchdata.Document{
		Cpp: []benchdata.CppPackage{{Name: "spdlog", Version: "1.14.1", RawSync: "[info] nothing"}},
	}
	_, err = Parse(doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `cpp package "spdlog" sync output`)
}

func TestRunMissingFile(t *testing.T) {
	_, err := Run(filepath.Join(t.TempDir(), "missing.toml"), Options{})
	require.Error(t, err)
}
