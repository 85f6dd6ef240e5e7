// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"strings"
)

// Summary table layout. Values are right aligned in fixed width columns so that
// summary lines of several files stack into a table.
const (
	columnWidth = 8
	columnSep   = "  "
)

var summaryColumns = []string{"min", "max", "avg", "var"}

// SummaryHeader returns summary table header line.
func SummaryHeader() string {
	cols := make([]string, len(summaryColumns))
	for i, c := range summaryColumns {
		cols[i] = center(c, columnWidth)
	}
	return strings.Join(cols, columnSep)
}

// FormatSummary returns summary table line for s.
func FormatSummary(s Summary) string {
	values := []float64{s.Min, s.Max, s.Mean, s.Variance}
	cols := make([]string, len(values))
	for i, v := range values {
		cols[i] = fmt.Sprintf("%*.3f", columnWidth, v)
	}
	return strings.Join(cols, columnSep)
}

// center pads s with spaces to width, extra space goes to the right.
func center(s string, width int) string {
	pad := width - len(s)
	if pad <= 0 {
		return s
	}
	left := pad / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", pad-left)
}
