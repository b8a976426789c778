// internal/chart/draw.go
package chart

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Export formats.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

const (
	// noteAxisFraction places category notes at 40% of the value axis.
	noteAxisFraction = 0.4
	// dataAreaShare approximates the part of a panel left for bars once the
	// title, axis and tick labels are laid out.
	dataAreaShare = 0.7
	barGap        = 0.9
	labelPadding  = 3
)

var highlightOutline = color.RGBA{R: 255, A: 255}

// WriteTo draws the figure in the given format.
func (f Figure) WriteTo(w io.Writer, format string) error {
	width := vg.Length(f.Width) * vg.Inch
	height := vg.Length(f.Height) * vg.Inch

	switch format {
	case FormatSVG:
		c := vgsvg.New(width, height)
		if err := f.draw(c); err != nil {
			return err
		}
		_, err := c.WriteTo(w)
		return err
	case FormatPNG:
		c := vgimg.New(width, height)
		if err := f.draw(c); err != nil {
			return err
		}
		_, err := vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		return err
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

func (f Figure) draw(c vg.CanvasSizer) error {
	if len(f.Panels) == 0 {
		return fmt.Errorf("figure %q: %w", f.Name, ErrNoPackages)
	}
	panelHeight := f.Height / float64(len(f.Panels))

	plots := make([][]*plot.Plot, len(f.Panels))
	for i, panel := range f.Panels {
		p, err := newPanelPlot(panel, panelHeight)
		if err != nil {
			return fmt.Errorf("figure %q: %w", f.Name, err)
		}
		plots[i] = []*plot.Plot{p}
	}

	dc := draw.New(c)
	tiles := draw.Tiles{
		Rows:      len(plots),
		Cols:      1,
		PadY:      vg.Points(24),
		PadTop:    vg.Points(6),
		PadBottom: vg.Points(6),
		PadLeft:   vg.Points(6),
		PadRight:  vg.Points(12),
	}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}
	return nil
}

// newPanelPlot builds one horizontal grouped bar chart. The first category is
// drawn at the top, each series' bar offset inside the category slot.
func newPanelPlot(panel Panel, heightInches float64) (*plot.Plot, error) {
	if err := panel.validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = panel.Title
	p.X.Label.Text = panel.XLabel
	p.X.Tick.Marker = plainTicks
	p.Legend.Top = true

	n := len(panel.Categories)
	names := make([]string, n)
	for i, c := range panel.Categories {
		names[position(i, n)] = c.Label
	}
	p.NominalY(names...)

	if better := panel.BetterText(); better != "" {
		p.Legend.Add(better)
	}
	if panel.LegendTitle != "" {
		p.Legend.Add(panel.LegendTitle + ":")
	}

	fill := panel.BarFill
	if fill <= 0 {
		fill = groupedBarFill
	}
	slot := heightInches * 72 * dataAreaShare / float64(n)
	barWidth := slot * fill / float64(len(panel.Series))
	xMax := panel.XMax()

	for j, s := range panel.Series {
		offset := (float64(len(panel.Series)-1)/2 - float64(j)) * barWidth
		for i, v := range s.Values {
			y := float64(position(i, n))
			bars, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(barWidth*barGap))
			if err != nil {
				return nil, err
			}
			bars.Horizontal = true
			bars.XMin = y
			bars.Offset = vg.Points(offset)
			bars.Color = s.Color
			bars.LineStyle.Width = 0
			if panel.Categories[i].Highlight {
				bars.LineStyle.Width = vg.Points(1.5)
				bars.LineStyle.Color = highlightOutline
			}
			p.Add(bars)
			if i == 0 && s.Name != "" {
				p.Legend.Add(s.Name, bars)
			}

			label, err := valueLabel(panel, s, i, vg.Points(offset))
			if err != nil {
				return nil, err
			}
			p.Add(label)
		}
	}

	for i, c := range panel.Categories {
		if c.Note == "" {
			continue
		}
		note, err := newLabel(xMax*noteAxisFraction, float64(position(i, n)), c.Note, vg.Point{})
		if err != nil {
			return nil, err
		}
		p.Add(note)
	}

	// Plot.Add widens the axes to fit every plotter; pin them afterwards.
	p.X.Min = 0
	p.X.Max = xMax
	p.Y.Min = -0.5
	p.Y.Max = float64(n) - 0.5
	return p, nil
}

// valueLabel annotates bar i of series s. Highlighted categories get a red
// label so the highlight survives a zero-length bar.
func valueLabel(panel Panel, s Series, i int, offset vg.Length) (*plotter.Labels, error) {
	n := len(panel.Categories)
	label, err := newLabel(s.Values[i], float64(position(i, n)), s.Labels[i], vg.Point{X: vg.Points(labelPadding), Y: offset})
	if err != nil {
		return nil, err
	}
	if panel.Categories[i].Highlight {
		for j := range label.TextStyle {
			label.TextStyle[j].Color = highlightOutline
		}
	}
	return label, nil
}

func newLabel(x, y float64, txt string, offset vg.Point) (*plotter.Labels, error) {
	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: x, Y: y}},
		Labels: []string{txt},
	})
	if err != nil {
		return nil, err
	}
	labels.Offset = offset
	for i := range labels.TextStyle {
		labels.TextStyle[i].YAlign = text.YCenter
	}
	return labels, nil
}

// position maps a category index onto the y axis so index 0 is on top.
func position(i, n int) int {
	return n - 1 - i
}

// plainTicks keeps the default tick placement and precision but spells out
// exponent labels ("1e+06" becomes "1000000").
var plainTicks = plot.TickerFunc(func(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = plainLabel(ticks[i].Label)
	}
	return ticks
})

func plainLabel(label string) string {
	if !strings.ContainsAny(label, "eE") {
		return label
	}
	v, err := strconv.ParseFloat(label, 64)
	if err != nil {
		return label
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
