// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Text chart for terminal output.

package analysis

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/evolution-gaming/vqmchart/internal/vqm"
	fcolor "github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
)

// maxFrameSpan limits text chart x axis length, from the lowest to the highest frame
// number of all series.
const maxFrameSpan = 1 << 22

// TermOptions holds text chart geometry in character cells.
type TermOptions struct {
	Width  int
	Height int
}

// RenderTerm writes summary table and a text line chart of given metric to w.
//
// Summary lines and chart lines are colored in series color unless colors are disabled
// (e.g. output is not a terminal).
func RenderTerm(w io.Writer, m vqm.Metric, series []ChartSeries, opts TermOptions) error {
	if len(series) == 0 {
		return errors.New("RenderTerm() no series to plot")
	}

	data, err := frameAxisValues(series)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n%s\n", m.DisplayName(), SummaryHeader()); err != nil {
		return fmt.Errorf("RenderTerm() writing header: %w", err)
	}

	colors := make([]asciigraph.AnsiColor, 0, len(series))
	legends := make([]string, 0, len(series))
	for _, s := range series {
		c := fcolor.RGB(int(s.Color.R), int(s.Color.G), int(s.Color.B))
		if _, err := c.Fprintln(w, FormatSummary(s.Summary)); err != nil {
			return fmt.Errorf("RenderTerm() writing summary: %w", err)
		}
		legends = append(legends, s.Caption)
		if fcolor.NoColor {
			colors = append(colors, asciigraph.Default)
		} else {
			colors = append(colors, TermColor(s.Color))
		}
	}

	// Legend items are indexed into series colors, so colors are always set.
	options := []asciigraph.Option{
		asciigraph.Width(opts.Width),
		asciigraph.Height(opts.Height),
		asciigraph.Precision(3),
		asciigraph.Caption(m.DisplayName()),
		asciigraph.SeriesColors(colors...),
	}
	if len(series) > 1 {
		options = append(options, asciigraph.SeriesLegends(legends...))
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", asciigraph.PlotMany(data, options...)); err != nil {
		return fmt.Errorf("RenderTerm() writing chart: %w", err)
	}
	return nil
}

// frameAxisValues lays out values of every series on a common x axis of frame numbers,
// starting at the lowest frame number of all series. Frames missing from a series are
// NaN, which the chart draws as a gap.
func frameAxisValues(series []ChartSeries) ([][]float64, error) {
	first, last := uint(math.MaxUint), uint(0)
	for _, s := range series {
		for _, p := range s.Points {
			if p.FrameNum < first {
				first = p.FrameNum
			}
			if p.FrameNum > last {
				last = p.FrameNum
			}
		}
	}
	if first > last {
		return nil, errors.New("RenderTerm() series have no points")
	}
	if span := last - first; span >= maxFrameSpan {
		return nil, fmt.Errorf("RenderTerm() frame numbers %d to %d do not fit text chart", first, last)
	}

	data := make([][]float64, 0, len(series))
	for _, s := range series {
		values := make([]float64, last-first+1)
		for i := range values {
			values[i] = math.NaN()
		}
		for _, p := range s.Points {
			values[p.FrameNum-first] = p.Value
		}
		data = append(data, values)
	}
	return data, nil
}

// TermColor maps c to the closest color of xterm 256 color cube.
func TermColor(c color.RGBA) asciigraph.AnsiColor {
	level := func(v uint8) int {
		return int(math.Round(float64(v) / 255 * 5))
	}
	return asciigraph.AnsiColor(16 + 36*level(c.R) + 6*level(c.G) + level(c.B))
}
