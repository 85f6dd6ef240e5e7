// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Plot generation related functionality.

package analysis

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strings"

	"github.com/evolution-gaming/vqmchart/internal/vqm"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Summary table placement in graph relative coordinates: 2% from left edge, first line
// at 22% from the bottom or higher for many series, each next line 5% lower. Lines get
// denser once the table would take more than half of the graph height.
const (
	tableX         = 0.02
	tableTop       = 0.22
	tableStep      = 0.05
	tableBottom    = 0.02
	tableGap       = 0.08
	tableMaxHeight = 0.5
)

// ChartSeries is a single line on metric chart along with its legend data.
type ChartSeries struct {
	// Caption is legend entry for the line, normally source file name
	Caption string
	// Points to plot
	Points vqm.Series
	// Summary statistics of Points
	Summary Summary
	// Color of line and its summary line
	Color color.RGBA
}

// PNGOptions holds PNG chart geometry.
type PNGOptions struct {
	Width  vg.Length
	Height vg.Length
}

// Pixels converts pixel count to vg.Length at default PNG resolution.
func Pixels(n int) vg.Length {
	return vg.Length(n) * vg.Inch / vgimg.DefaultDPI
}

// ChartFileName creates chart file name from metric name and captions of all series.
func ChartFileName(m vqm.Metric, captions []string) string {
	parts := append([]string{m.String()}, captions...)
	return strings.Join(parts, "-") + ".png"
}

// CreateMetricPlot creates line plot for given metric with a line per series.
//
// Summary table (header and a line per series in series color) is drawn in the lower
// left corner of the plot, below the lines.
func CreateMetricPlot(m vqm.Metric, series []ChartSeries) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Frames"
	p.Y.Label.Text = m.DisplayName()

	if len(series) == 0 {
		return p, errors.New("CreateMetricPlot() no series to plot")
	}

	var all []float64
	for _, s := range series {
		line, err := plotter.NewLine(s.Points)
		if err != nil {
			return p, fmt.Errorf("CreateMetricPlot() creating line for %s: %w", s.Caption, err)
		}
		line.Color = s.Color
		p.Add(line)
		p.Legend.Add(s.Caption, line)
		all = append(all, s.Points.Values()...)
	}
	p.Legend.Top = true
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	// Make room for the summary table below the lines.
	lo, hi := floats.Min(all), floats.Max(all)
	span := hi - lo
	if span == 0 {
		span = 1
	}
	top, step, margin := tableLayout(len(series))
	p.Y.Min = lo - span*margin/(1-margin)

	table, err := summaryTable(p, series, top, step)
	if err != nil {
		return p, fmt.Errorf("CreateMetricPlot() creating summary table: %w", err)
	}
	p.Add(table, plotter.NewGrid())

	return p, nil
}

// tableLayout returns relative height of the summary table header, step between its
// lines and the share of y axis kept free below the lines for a table of n series.
func tableLayout(n int) (top, step, margin float64) {
	step = tableStep
	if s := tableMaxHeight / float64(n); s < step {
		step = s
	}
	top = math.Max(tableTop, tableBottom+float64(n)*step)
	return top, step, top + tableGap
}

// summaryTable creates summary table labels positioned relative to current plot ranges.
// All labels stay within those ranges so adding them does not change the axes.
func summaryTable(p *plot.Plot, series []ChartSeries, top, step float64) (*plotter.Labels, error) {
	xAt := func(f float64) float64 { return p.X.Min + f*(p.X.Max-p.X.Min) }
	yAt := func(f float64) float64 { return p.Y.Min + f*(p.Y.Max-p.Y.Min) }

	xys := make(plotter.XYs, 0, len(series)+1)
	lines := make([]string, 0, len(series)+1)
	offset := top

	xys = append(xys, plotter.XY{X: xAt(tableX), Y: yAt(offset)})
	lines = append(lines, SummaryHeader())
	for _, s := range series {
		offset -= step
		xys = append(xys, plotter.XY{X: xAt(tableX), Y: yAt(offset)})
		lines = append(lines, FormatSummary(s.Summary))
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: lines})
	if err != nil {
		return nil, err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Variant = "Mono"
		// First line is the header, it keeps default color.
		if i > 0 {
			labels.TextStyle[i].Color = series[i-1].Color
		}
	}
	return labels, nil
}

// RenderPNG will create metric chart and write it to w as PNG image.
func RenderPNG(w io.Writer, m vqm.Metric, series []ChartSeries, opts PNGOptions) error {
	p, err := CreateMetricPlot(m, series)
	if err != nil {
		return err
	}

	img := vgimg.New(opts.Width, opts.Height)
	dc := draw.New(img)
	p.Draw(dc)

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("RenderPNG() failed writing png: %w", err)
	}
	return nil
}

// SavePNG will create metric chart and save it to outFile.
func SavePNG(outFile string, m vqm.Metric, series []ChartSeries, opts PNGOptions) (err error) {
	w, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("SavePNG() error from os.Create(): %w", err)
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("SavePNG() closing file: %w", cerr)
		}
	}()

	return RenderPNG(w, m, series, opts)
}
