// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Reusable parts of vqmchart application and subcommand infrastructure.
package main

import (
	"flag"
	"fmt"
	"path/filepath"

	"github.com/evolution-gaming/vqmchart/internal/analysis"
	"github.com/evolution-gaming/vqmchart/internal/logging"
	"github.com/evolution-gaming/vqmchart/internal/metric"
	"github.com/evolution-gaming/vqmchart/internal/vqm"
	"github.com/gertd/go-pluralize"
)

// Commander interface should be implemented by commands and sub-commands.
type Commander interface {
	Run([]string) error
	Name() string
	Help()
}

// AppError a custom error returned from CLI application.
//
// AppError is handy error type envisioned to be used in CLI's main.
// ExitCode() should be used as argument for os.Exit().
type AppError struct {
	msg      string
	exitCode int
}

// Error implements error interface for AppError.
func (e *AppError) Error() string {
	return e.msg
}

// ExitCode returns CLI application's exit code.
func (e *AppError) ExitCode() int {
	return e.exitCode
}

// printSubCommandUsage helper to format ad print subcommand's usage.
func printSubCommandUsage(longHelp string, fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), "Usage of sub-command %s:\n\n", fs.Name())
	fmt.Fprintf(fs.Output(), "%s\n\n", longHelp)
	fs.PrintDefaults()
}

var pluralizer = pluralize.NewClient()

// chartSet holds chart series of all input files per metric, series are in input file
// order.
type chartSet map[vqm.Metric][]analysis.ChartSeries

// captions returns series captions of given metric in input file order.
func (c chartSet) captions(m vqm.Metric) []string {
	captions := make([]string, 0, len(c[m]))
	for _, s := range c[m] {
		captions = append(captions, s.Caption)
	}
	return captions
}

// collectCharts loads report files and creates chart series for every metric.
//
// Files are processed in given order and the first failure aborts the whole run. When
// store is not nil, a summary record per file per metric is inserted into it.
func collectCharts(files []string, palette *analysis.Palette, store *metric.Store) (chartSet, error) {
	charts := make(chartSet, len(vqm.Metrics))

	for i, f := range files {
		logging.Debugf("Loading report %s", f)
		fm, err := vqm.LoadReport(f)
		if err != nil {
			return nil, err
		}
		logging.Infof("Loaded %s from %s", pluralizer.Pluralize("frame", len(fm), true), f)

		c, err := palette.Color(i)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		caption := filepath.Base(f)

		for _, m := range vqm.Metrics {
			points, err := vqm.Extract(fm, m)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f, err)
			}
			summary, err := analysis.Summarize(points.Values())
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", f, m, err)
			}
			logging.Debugf("%s %s summary: %+v", caption, m, summary)

			if store != nil {
				store.Insert(metric.Record{
					File:     f,
					Metric:   m.String(),
					Frames:   len(points),
					Min:      summary.Min,
					Max:      summary.Max,
					Mean:     summary.Mean,
					Variance: summary.Variance,
				})
			}

			charts[m] = append(charts[m], analysis.ChartSeries{
				Caption: caption,
				Points:  points,
				Summary: summary,
				Color:   c,
			})
		}
	}

	return charts, nil
}
