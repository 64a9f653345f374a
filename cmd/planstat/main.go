// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Planstat builds reports from planner benchmark runs and prepares
// the planner revisions to benchmark.
//
// Usage:
//
//	planstat report [flags] properties.json...
//	planstat checkout [flags] part:rev[:nick]...
//
// The report command reads one or more properties files, each a JSON
// object mapping run ids to the fields recorded for the run, such as
//
//	{
//	  "lama-gripper-prob01.pddl": {
//	    "config": "lama", "domain": "gripper", "problem": "prob01.pddl",
//	    "coverage": 1, "cost": 11, "expansions": 163
//	  }
//	}
//
// Every problem must have been run exactly once under every
// configuration; planstat refuses to report on an incomplete
// experiment and describes the missing runs instead. For each
// attribute it prints one table with a row per domain and a column
// per configuration, followed by a table of the runs that failed
// with an unexplained error. The quality attribute, the best cost
// found for a problem divided by the run's cost, is computed for
// every run.
//
// Attributes are aggregated according to a built-in table: coverage
// and quality are summed, times and search-space sizes use the
// geometric mean over the problems solved by every configuration,
// and so on. Unknown attributes are summed.
//
// The checkout command clones revisions of the planner into a
// revision cache and compiles them.
//
// Options common to both commands can be read from a YAML file with
// --config; flags override the file.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/planlab/planstat/internal/config"
	"github.com/planlab/planstat/planreport"
)

var exit = os.Exit // replaced during testing

func main() {
	if err := planstat(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "planstat:", err)
		var fatal *planreport.FatalError
		if errors.As(err, &fatal) {
			exit(1)
		}
		exit(2)
	}
}

// command is the state shared by the subcommands.
type command struct {
	stdout, stderr io.Writer

	configFile string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

// planstat runs the planstat command line in args, writing reports
// to stdout and log output to stderr.
func planstat(stdout, stderr io.Writer, args []string) error {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.Execute()
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	c := &command{stdout: stdout, stderr: stderr}
	root := &cobra.Command{
		Use:           "planstat",
		Short:         "Report on planner benchmark runs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "read options from YAML `file`")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(newReportCmd(c), newCheckoutCmd(c))
	return root
}

// setup loads the configuration file and builds the logger.
func (c *command) setup() error {
	c.cfg = config.Default()
	if c.configFile != "" {
		cfg, err := config.Load(c.configFile)
		if err != nil {
			return err
		}
		c.cfg = cfg
	}

	level := zapcore.InfoLevel
	if c.verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(c.stderr), level)
	c.logger = zap.New(core)
	return nil
}

// override replaces *dst with v if the named flag was set.
func override[T any](cmd *cobra.Command, name string, dst *T, v T) {
	if cmd.Flags().Changed(name) {
		*dst = v
	}
}
