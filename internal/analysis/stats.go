// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Summary statistics of per frame VQM values.

package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

var (
	ErrNoValues           = errors.New("no values to summarize")
	ErrDegenerateVariance = errors.New("sample variance needs at least 2 values")
)

// Summary contains summary statistics of a single metric series.
type Summary struct {
	Min      float64
	Max      float64
	Mean     float64
	Variance float64
}

// orderKey truncates v to four decimal digits so that float noise beyond that does not
// affect ordering. Key stays a float64 so large values do not overflow.
func orderKey(v float64) float64 {
	return math.Trunc(v * 10000)
}

// Summarize calculates min, max, mean and sample variance of values.
func Summarize(values []float64) (Summary, error) {
	var s Summary

	switch len(values) {
	case 0:
		return s, ErrNoValues
	case 1:
		return s, fmt.Errorf("Summarize() single value %v: %w", values[0], ErrDegenerateVariance)
	}

	// We are going to sort values, so make a copy to avoid mangling caller's slice.
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.SliceStable(sorted, func(i, j int) bool {
		return orderKey(sorted[i]) < orderKey(sorted[j])
	})
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]

	// Unweighted variance from gonum is the unbiased one, e.g. divided by n-1.
	s.Mean, s.Variance = stat.MeanVariance(values, nil)

	return s, nil
}
