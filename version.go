// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Application version string related functionality.
//
// Implementation should work for case when application binary is built via "go build" and
// version injection via "ldflags" as well as when binary is installed via "go install" in
// which case debug.BuildInfo is used to pull relevant version information.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"
)

// Value injected during build with -ldflags="-X main.version={ver}".
var (
	version string
	vInfo   versionInfo
)

func init() {
	vInfo = readVersionInfo(version)
}

// readVersionInfo collects version information from build settings, injected version
// takes precedence over module version.
func readVersionInfo(injected string) versionInfo {
	v := versionInfo{version: injected}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return v
	}

	if v.version == "" {
		v.version = bi.Main.Version
	}

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			v.revision = s.Value
		case "vcs.time":
			v.time, _ = time.Parse(time.RFC3339, s.Value)
		}
	}
	return v
}

// versionInfo is struct that includes relevant version information.
type versionInfo struct {
	time     time.Time
	version  string
	revision string
}

func (v versionInfo) String() string {
	if v.revision == "" {
		return v.version
	}
	if v.time.IsZero() {
		return fmt.Sprintf("%s %s", v.version, v.revision)
	}
	return fmt.Sprintf("%s %s %s", v.version, v.revision, v.time.Format(time.DateOnly))
}

// Make sure VersionApp implements Commander interface.
var _ Commander = (*VersionApp)(nil)

// VersionApp is version subcommand context that implements Commander interface.
type VersionApp struct {
	out io.Writer
	fs  *flag.FlagSet
}

// CreateVersionCommand will create Commander instance from VersionApp.
func CreateVersionCommand() *VersionApp {
	longHelp := `Subcommand "version" will print vqmchart version and exit.`

	app := &VersionApp{
		out: os.Stderr,
		fs:  flag.NewFlagSet("version", flag.ContinueOnError),
	}
	app.fs.Usage = func() {
		printSubCommandUsage(longHelp, app.fs)
	}
	return app
}

func (v *VersionApp) Name() string {
	return v.fs.Name()
}

func (v *VersionApp) Help() {
	v.fs.Usage()
}

// Run is main entry point into VersionApp execution.
func (v *VersionApp) Run(args []string) error {
	if err := v.fs.Parse(args); err != nil {
		return &AppError{exitCode: 2, msg: "usage error"}
	}
	fmt.Fprintf(v.out, "vqmchart %s\n", vInfo)
	return nil
}
