// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vqm

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnboundedSimilarity is returned when similarity value of exactly 1.0 is about to
// be mapped to 1/(1-v).
var ErrUnboundedSimilarity = errors.New("similarity 1.0 has no reciprocal distance")

// Metric identifies one of the supported VQMs.
type Metric int

const (
	VMAF Metric = iota
	PSNR
	MS_SSIM
)

// Metrics lists all supported metrics in output order.
var Metrics = []Metric{VMAF, PSNR, MS_SSIM}

// String returns canonical metric name.
func (m Metric) String() string {
	switch m {
	case VMAF:
		return "VMAF"
	case PSNR:
		return "PSNR"
	case MS_SSIM:
		return "MS_SSIM"
	default:
		return fmt.Sprintf("Metric(%d)", int(m))
	}
}

// Transformed reports whether metric values go through reciprocal-distance transform.
//
// Similarity ratios are bounded by 1.0 and crowd just below it, so metrics whose name
// ends with "SSIM" are plotted as 1/(1-v).
func (m Metric) Transformed() bool {
	return strings.HasSuffix(m.String(), "SSIM")
}

// DisplayName returns metric name as it should appear on chart axis.
func (m Metric) DisplayName() string {
	if m.Transformed() {
		return "1/(1-" + m.String() + ")"
	}
	return m.String()
}

func (m Metric) value(f FrameMetric) float64 {
	switch m {
	case PSNR:
		return f.PSNR
	case MS_SSIM:
		return f.MS_SSIM
	default:
		return f.VMAF
	}
}

// Point is a single (frame number, value) pair of a Series.
type Point struct {
	FrameNum uint
	Value    float64
}

// Series is per frame values of a single metric from a single report.
//
// Series implements gonum's plotter.XYer so it can be plotted directly.
type Series []Point

func (s Series) Len() int {
	return len(s)
}

func (s Series) XY(i int) (x, y float64) {
	return float64(s[i].FrameNum), s[i].Value
}

// Values returns just the metric values of Series.
func (s Series) Values() []float64 {
	values := make([]float64, len(s))
	for i, p := range s {
		values[i] = p.Value
	}
	return values
}

// Extract creates Series for given metric, one Point per frame in report order.
func Extract(fm FrameMetrics, m Metric) (Series, error) {
	s := make(Series, 0, len(fm))
	for _, f := range fm {
		v := m.value(f)
		if m.Transformed() {
			if v == 1 {
				return nil, fmt.Errorf("%s at frame %d: %w", m, f.FrameNum, ErrUnboundedSimilarity)
			}
			v = 1 / (1 - v)
		}
		s = append(s, Point{FrameNum: f.FrameNum, Value: v})
	}
	return s, nil
}
