// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// vqmchart tool's plot subcommand implementation.

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/evolution-gaming/vqmchart/internal/analysis"
	"github.com/evolution-gaming/vqmchart/internal/logging"
	"github.com/evolution-gaming/vqmchart/internal/metric"
	"github.com/evolution-gaming/vqmchart/internal/vqm"
)

// Make sure PlotApp implements Commander interface.
var _ Commander = (*PlotApp)(nil)

// PlotApp is plot subcommand context that implements Commander interface.
type PlotApp struct {
	// Configuration object
	cfg *Config
	// FlagSet instance
	fs *flag.FlagSet
	// Global flags
	gf globalFlags
	// Output directory for PNG charts, overrides out_dir config option
	flOutDir string
	// CSV summary report file, overrides report_file_name config option
	flReport string
	// Summary statistics store
	mStore *metric.Store
}

// CreatePlotCommand will create Commander instance from PlotApp.
func CreatePlotCommand() *PlotApp {
	longHelp := `Subcommand "plot" will create a PNG line chart per metric (VMAF, PSNR, MS_SSIM)
from one or more libvmaf JSON reports. Each report becomes a line on the chart and a
line in summary table with min, max, average and variance of its values.

MS_SSIM is plotted as 1/(1-MS_SSIM).

Examples:

  vqmchart plot report.json
  vqmchart plot -out-dir charts -report summary.csv x264.json x265.json`

	app := &PlotApp{
		fs:     flag.NewFlagSet("plot", flag.ContinueOnError),
		gf:     globalFlags{},
		mStore: metric.NewStore(),
	}
	app.gf.Register(app.fs)
	app.fs.StringVar(&app.flOutDir, "out-dir", "", "Output directory for charts (optional)")
	app.fs.StringVar(&app.flReport, "report", "", "Write summary statistics to given CSV file (optional)")
	app.fs.Usage = func() {
		printSubCommandUsage(longHelp, app.fs)
	}

	return app
}

func (a *PlotApp) Name() string {
	return a.fs.Name()
}

func (a *PlotApp) Help() {
	a.fs.Usage()
}

// init will do App state initialization.
func (a *PlotApp) init(args []string) error {
	if err := a.fs.Parse(args); err != nil {
		return &AppError{
			exitCode: 2,
			msg:      fmt.Sprintf("%s usage error", a.Name()),
		}
	}

	if a.gf.Debug {
		logging.EnableDebugLogger()
	}

	if a.fs.NArg() < 1 {
		a.Help()
		return &AppError{
			exitCode: 1,
			msg:      "at least one report file is required",
		}
	}

	// Load application configuration.
	c, err := LoadConfig(a.gf.ConfFile)
	if err != nil {
		return &AppError{exitCode: 1, msg: err.Error()}
	}
	if a.flOutDir != "" {
		c.OutDir = NewConfigVal(a.flOutDir)
	}
	if a.flReport != "" {
		c.ReportFileName = NewConfigVal(a.flReport)
	}
	a.cfg = &c

	return nil
}

// Run is main entry point into PlotApp execution.
func (a *PlotApp) Run(args []string) error {
	if err := a.init(args); err != nil {
		return err
	}

	logging.Debugf("Application configuration: %#v", a.cfg)
	if err := a.cfg.Verify(); err != nil {
		return &AppError{exitCode: 1, msg: fmt.Sprintf("configuration validation: %s", err)}
	}

	palette, err := a.cfg.NewPalette()
	if err != nil {
		return &AppError{exitCode: 1, msg: err.Error()}
	}

	// All reports are loaded and summarized before any chart is written.
	charts, err := collectCharts(a.fs.Args(), palette, a.mStore)
	if err != nil {
		return &AppError{exitCode: 1, msg: err.Error()}
	}

	outDir := a.cfg.OutDir.Value()
	if err := os.MkdirAll(outDir, os.FileMode(0o755)); err != nil {
		return &AppError{exitCode: 1, msg: fmt.Sprintf("creating output directory: %s", err)}
	}

	opts := analysis.PNGOptions{
		Width:  analysis.Pixels(a.cfg.ImageWidth.Value()),
		Height: analysis.Pixels(a.cfg.ImageHeight.Value()),
	}
	for _, m := range vqm.Metrics {
		outFile := filepath.Join(outDir, analysis.ChartFileName(m, charts.captions(m)))
		logging.Infof("Writing %q", outFile)
		if err := analysis.SavePNG(outFile, m, charts[m], opts); err != nil {
			return &AppError{exitCode: 1, msg: fmt.Sprintf("%s chart: %s", m, err)}
		}
	}

	if a.cfg.ReportFileName.Value() != "" {
		if err := a.saveReport(a.cfg.ReportFileName.Value()); err != nil {
			return &AppError{exitCode: 1, msg: err.Error()}
		}
	}

	return nil
}

// saveReport writes recorded summaries to CSV report file.
func (a *PlotApp) saveReport(reportPath string) (err error) {
	logging.Infof("Writing %q", reportPath)
	reportOut, err := os.Create(reportPath)
	if err != nil {
		return fmt.Errorf("creating CSV report file: %w", err)
	}
	defer func() {
		if cerr := reportOut.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing CSV report file: %w", cerr)
		}
	}()

	if err := a.mStore.WriteCSV(reportOut); err != nil {
		return fmt.Errorf("writing CSV report: %w", err)
	}
	return nil
}
