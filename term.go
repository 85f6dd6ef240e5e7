// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// vqmchart tool's term subcommand implementation.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/evolution-gaming/vqmchart/internal/analysis"
	"github.com/evolution-gaming/vqmchart/internal/logging"
	"github.com/evolution-gaming/vqmchart/internal/vqm"
)

// Make sure TermApp implements Commander interface.
var _ Commander = (*TermApp)(nil)

// TermApp is term subcommand context that implements Commander interface.
type TermApp struct {
	// Chart output
	out io.Writer
	// Configuration object
	cfg *Config
	// FlagSet instance
	fs *flag.FlagSet
	// Global flags
	gf globalFlags
}

// CreateTermCommand will create Commander instance from TermApp.
func CreateTermCommand() *TermApp {
	longHelp := `Subcommand "term" will print summary statistics and a text line chart per metric
(VMAF, PSNR, MS_SSIM) of a single libvmaf JSON report to standard output.

MS_SSIM is plotted as 1/(1-MS_SSIM).

Examples:

  vqmchart term report.json`

	app := &TermApp{
		out: os.Stdout,
		fs:  flag.NewFlagSet("term", flag.ContinueOnError),
		gf:  globalFlags{},
	}
	app.gf.Register(app.fs)
	app.fs.Usage = func() {
		printSubCommandUsage(longHelp, app.fs)
	}

	return app
}

func (a *TermApp) Name() string {
	return a.fs.Name()
}

func (a *TermApp) Help() {
	a.fs.Usage()
}

// init will do App state initialization.
func (a *TermApp) init(args []string) error {
	if err := a.fs.Parse(args); err != nil {
		return &AppError{
			exitCode: 2,
			msg:      fmt.Sprintf("%s usage error", a.Name()),
		}
	}

	if a.gf.Debug {
		logging.EnableDebugLogger()
	}

	if a.fs.NArg() != 1 {
		a.Help()
		return &AppError{
			exitCode: 1,
			msg:      "exactly one report file is required",
		}
	}

	// Load application configuration.
	c, err := LoadConfig(a.gf.ConfFile)
	if err != nil {
		return &AppError{exitCode: 1, msg: err.Error()}
	}
	a.cfg = &c

	return nil
}

// Run is main entry point into TermApp execution.
func (a *TermApp) Run(args []string) error {
	if err := a.init(args); err != nil {
		return err
	}

	if err := a.cfg.Verify(); err != nil {
		return &AppError{exitCode: 1, msg: fmt.Sprintf("configuration validation: %s", err)}
	}

	palette, err := a.cfg.NewPalette()
	if err != nil {
		return &AppError{exitCode: 1, msg: err.Error()}
	}

	charts, err := collectCharts(a.fs.Args(), palette, nil)
	if err != nil {
		return &AppError{exitCode: 1, msg: err.Error()}
	}

	opts := analysis.TermOptions{
		Width:  a.cfg.TermWidth.Value(),
		Height: a.cfg.TermHeight.Value(),
	}
	for _, m := range vqm.Metrics {
		if err := analysis.RenderTerm(a.out, m, charts[m], opts); err != nil {
			return &AppError{exitCode: 1, msg: fmt.Sprintf("%s chart: %s", m, err)}
		}
	}

	return nil
}
