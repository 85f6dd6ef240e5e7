// Copyright ©2022 Evolution. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Main entrypoint for vqmchart application

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/evolution-gaming/vqmchart/internal/logging"
)

const usage = `vqmchart - charts and summary statistics of libvmaf frame metrics

Usage:

    vqmchart <command> [arguments] [-h|-help]

The commands are:

    plot        create PNG charts from one or more libvmaf JSON reports
    term        print text charts of a single libvmaf JSON report
    dump-conf   output actual application configuration
    version     print vqmchart version and exit

Use "vqmchart <command> -h|-help" for more information about command.`

// root represents top level of vqmchart command, including dispatching to subcommands.
func root(args []string, out io.Writer) error {
	if len(args) < 1 {
		fmt.Fprintln(out, usage)
		return &AppError{msg: "please, specify command", exitCode: 2}
	}

	var cmd Commander
	switch args[0] {
	case "plot":
		cmd = CreatePlotCommand()
	case "term":
		cmd = CreateTermCommand()
	case "dump-conf", "dump":
		cmd = CreateDumpConfCommand()
	case "version":
		cmd = CreateVersionCommand()
	case "-h", "-help", "--help", "?":
		fmt.Fprintln(out, usage)
		return &AppError{
			exitCode: 2,
		}
	default:
		// No commands were matched at this point, so bail out with default usage message.
		fmt.Fprintln(out, usage)
		return &AppError{
			msg:      fmt.Sprintf("unknown command/flag %q", args[0]),
			exitCode: 2,
		}
	}

	logging.Debugf("Running %s", cmd.Name())
	return cmd.Run(args[1:])
}

func main() {
	// Enable info logger by default and early enough.
	logging.EnableInfoLogger()

	if err := root(os.Args[1:], os.Stdout); err != nil {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(os.Stderr, msg)
		}
		switch e := err.(type) {
		case *AppError:
			os.Exit(e.ExitCode())
		default:
			os.Exit(1)
		}
	}
	os.Exit(0)
}
