// internal/chart/figure.go
// Package chart turns parsed benchmark records into comparison bar charts and
// draws them with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

var (
	// ErrBenchNotFound is returned when a package has no result for the requested bench.
	ErrBenchNotFound = errors.New("bench not found")
	// ErrNoPackages is returned when a chart would have no categories.
	ErrNoPackages = errors.New("no packages to chart")
	// ErrInconsistentCases is returned when packages report different sync case layouts.
	ErrInconsistentCases = errors.New("inconsistent benchmark cases")
	// ErrUnknownPolicy is returned for an async overflow policy without a display name.
	ErrUnknownPolicy = errors.New("unknown queue overflow policy")
)

// Matplotlib "tab" palette, used so exported charts keep their familiar colours.
var (
	TabBlue   = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	TabOrange = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	TabGreen  = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	TabRed    = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	TabPurple = color.RGBA{R: 148, G: 103, B: 189, A: 255}
)

var seriesPalette = []color.RGBA{TabBlue, TabOrange, TabGreen, TabRed, TabPurple}

// Figure is one exported chart file, made of vertically stacked panels.
// Width and Height are in inches.
type Figure struct {
	Name   string
	Title  string
	Width  float64
	Height float64
	Panels []Panel
}

// Panel is a single horizontal grouped bar chart.
type Panel struct {
	Title       string
	XLabel      string
	Better      string
	LegendTitle string
	XMargin     float64
	// BarFill is the share of a category slot covered by its bar group.
	BarFill    float64
	Categories []Category
	Series     []Series
}

// Category is one row of bars, usually one package.
type Category struct {
	Label     string
	Highlight bool
	Note      string
}

// Series is one bar per category. Values and Labels are indexed like Categories.
type Series struct {
	Name   string
	Color  color.RGBA
	Values []float64
	Labels []string
}

// BetterText is the legend entry stating the preferred direction.
func (p Panel) BetterText() string {
	if p.Better == "" {
		return ""
	}
	return p.Better + " is better"
}

// MaxValue returns the largest bar value in the panel, or 0.
func (p Panel) MaxValue() float64 {
	maxValue := 0.0
	for _, s := range p.Series {
		for _, v := range s.Values {
			maxValue = math.Max(maxValue, v)
		}
	}
	return maxValue
}

// XMax is the upper bound of the value axis including the margin reserved for labels.
func (p Panel) XMax() float64 {
	maxValue := p.MaxValue()
	if maxValue <= 0 {
		return 1
	}
	return maxValue * (1 + p.XMargin)
}

func (p Panel) validate() error {
	if len(p.Categories) == 0 {
		return fmt.Errorf("panel %q: %w", p.Title, ErrNoPackages)
	}
	for _, s := range p.Series {
		if len(s.Values) != len(p.Categories) || len(s.Labels) != len(p.Categories) {
			return fmt.Errorf("panel %q: series %q has %d values for %d categories", p.Title, s.Name, len(s.Values), len(p.Categories))
		}
	}
	return nil
}

// Hex formats a colour as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
