// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planlab/planstat/checkouts"
	"github.com/planlab/planstat/internal/config"
)

func newCheckoutCmd(c *command) *cobra.Command {
	var flags config.Checkout
	cmd := &cobra.Command{
		Use:   "checkout [flags] part:rev[:nick]...",
		Short: "Check out and compile planner revisions",
		Long: `Checkout clones each revision of the planner into the revision cache
and compiles the requested part. Parts are translate, preprocess and
search. A rev of WORK, or an empty rev, builds the working copy of
the repository in place.

Revisions may also be listed in the configuration file. For each
checkout, a line NAME=PATH is printed, where NAME is a shell variable
name for the checkout and PATH its main executable.`,
	}
	f := cmd.Flags()
	f.StringVar(&flags.Repo, "repo", "", "Mercurial `repository` of the planner")
	f.StringVar(&flags.CacheDir, "cache-dir", "", "revision cache `dir` (default $HOME/lab/revision-cache)")
	f.StringSliceVar(&flags.MakeOptions, "make-opts", nil, "extra `options` passed to make")
	f.IntVarP(&flags.Jobs, "jobs", "j", 0, "build at most `n` revisions at once")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts := c.cfg.Checkout
		override(cmd, "repo", &opts.Repo, flags.Repo)
		override(cmd, "cache-dir", &opts.CacheDir, flags.CacheDir)
		override(cmd, "make-opts", &opts.MakeOptions, flags.MakeOptions)
		override(cmd, "jobs", &opts.Jobs, flags.Jobs)
		if len(args) > 0 {
			opts.Revisions = nil
			for _, arg := range args {
				rev, err := parseRevision(arg)
				if err != nil {
					return err
				}
				opts.Revisions = append(opts.Revisions, rev)
			}
		}
		return c.checkout(cmd.Context(), opts, &checkouts.ExecRunner{Logger: c.logger})
	}
	return cmd
}

// parseRevision parses a part:rev[:nick] argument.
func parseRevision(arg string) (config.Revision, error) {
	f := strings.Split(arg, ":")
	if len(f) < 2 || len(f) > 3 || f[0] == "" {
		return config.Revision{}, fmt.Errorf("bad revision %q: want part:rev[:nick]", arg)
	}
	r := config.Revision{Part: f[0], Rev: f[1]}
	if len(f) == 3 {
		r.Nick = f[2]
	}
	return r, nil
}

func (c *command) checkout(ctx context.Context, opts config.Checkout, runner checkouts.Runner) error {
	if opts.Repo == "" {
		return fmt.Errorf("no repository given")
	}
	if len(opts.Revisions) == 0 {
		return fmt.Errorf("no revisions given")
	}
	revs := checkouts.NewRevisions(runner)
	var cs []*checkouts.Checkout
	for _, r := range opts.Revisions {
		co, err := checkouts.New(ctx, revs, checkouts.Part(r.Part), opts.Repo, r.Rev, r.Nick,
			checkouts.Options{CacheDir: opts.CacheDir, Logger: c.logger})
		if err != nil {
			return err
		}
		c.logger.Debug("resolved revision", zap.Stringer("checkout", co), zap.String("summary", co.Summary))
		cs = append(cs, co)
	}
	if err := checkouts.Build(ctx, cs, opts.MakeOptions, opts.Jobs); err != nil {
		return err
	}
	for _, co := range cs {
		fmt.Fprintf(c.stdout, "%s=%s\n", co.ShellName(), co.Bin())
	}
	return nil
}
