// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checkouts materializes revisions of the planner into a
// revision cache and compiles them.
//
// Each revision is cloned into a directory of the cache named after
// its global changeset id, so the same revision requested through
// different local ids, branches or tags shares a single build tree.
// The special revision "WORK" uses a repository's working copy in
// place.
package checkouts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// A Part is a component of the planner that is checked out and built
// separately.
type Part string

const (
	Translate  Part = "translate"
	Preprocess Part = "preprocess"
	Search     Part = "search"
)

// binName is the main executable of each part, relative to its
// directory.
var binName = map[Part]string{
	Translate:  "translate.py",
	Preprocess: "preprocess",
	Search:     "downward",
}

// WorkingCopy is the revision that denotes a repository's working copy.
const WorkingCopy = "WORK"

// A Checkout is one part of the planner at one revision.
type Checkout struct {
	Part Part

	// Repo is the path or URL of the Mercurial repository.
	Repo string

	// Rev is the global changeset id, or WorkingCopy.
	Rev string

	// Nick names the checkout in reports.
	Nick string

	// Summary describes the revision: changeset id, branch and tags.
	Summary string

	// Dest is the checkout directory. It is Repo for the working
	// copy and the global revision otherwise, relative to CacheDir.
	Dest string

	// CacheDir is the revision cache directory.
	CacheDir string

	runner Runner
	logger *zap.Logger
}

// Options configure New.
type Options struct {
	// CacheDir is the revision cache. If empty, DefaultCacheDir is
	// used.
	CacheDir string

	Logger *zap.Logger
}

// DefaultCacheDir returns the default revision cache,
// $HOME/lab/revision-cache.
func DefaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, "lab", "revision-cache")
}

// New returns a Checkout of part at rev in repo.
//
// rev may be any Mercurial revision specifier (e.g., 209,
// 0d748429632d, tip, issue324) or WorkingCopy; an empty rev means
// WorkingCopy. nick defaults to rev.
func New(ctx context.Context, revs *Revisions, part Part, repo, rev, nick string, opts Options) (*Checkout, error) {
	if _, ok := binName[part]; !ok {
		return nil, fmt.Errorf("unknown planner part %q", part)
	}
	if rev == "" {
		rev = WorkingCopy
	}
	if nick == "" {
		nick = rev
	}
	c := &Checkout{
		Part:     part,
		Repo:     repo,
		Nick:     nick,
		CacheDir: opts.CacheDir,
		runner:   revs.Runner,
		logger:   opts.Logger,
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}

	if rev == WorkingCopy {
		id, err := revs.RevID(ctx, repo, "")
		if err != nil {
			return nil, err
		}
		c.Rev, c.Summary, c.Dest = WorkingCopy, WorkingCopy+" "+id, repo
		return c, nil
	}
	global, err := revs.GlobalRev(ctx, repo, rev)
	if err != nil {
		return nil, err
	}
	summary, err := revs.RevID(ctx, repo, rev)
	if err != nil {
		return nil, err
	}
	c.Rev, c.Summary, c.Dest = global, summary, global
	return c, nil
}

func (c *Checkout) String() string {
	return fmt.Sprintf("%s:%s:%s", c.Repo, c.Rev, c.Part)
}

// Path returns the path of rel inside the checkout.
func (c *Checkout) Path(rel ...string) string {
	base := c.Dest
	if !filepath.IsAbs(base) && c.Rev != WorkingCopy {
		base = filepath.Join(c.CacheDir, base)
	}
	return filepath.Join(append([]string{base}, rel...)...)
}

// SrcDir returns the source directory of the checkout. Older
// changesets named this directory "downward"; they are not supported.
func (c *Checkout) SrcDir() string {
	return c.Path("src")
}

// BinDir returns the build directory of c's part.
func (c *Checkout) BinDir() string {
	return filepath.Join(c.SrcDir(), string(c.Part))
}

// BinPath returns the absolute path of one of the part's executables.
func (c *Checkout) BinPath(bin ...string) string {
	return filepath.Join(append([]string{c.BinDir()}, bin...)...)
}

// Bin returns the path of the part's main executable.
func (c *Checkout) Bin() string {
	return c.BinPath(binName[c.Part])
}

// DestPath returns the path of rel inside the copy of this revision
// in an experiment directory.
func (c *Checkout) DestPath(rel ...string) string {
	return filepath.Join(append([]string{"code-" + c.Rev}, rel...)...)
}

// BinDest returns the path of the part's main executable inside the
// copy of this revision in an experiment directory.
func (c *Checkout) BinDest() string {
	return c.DestPath(string(c.Part), binName[c.Part])
}

// ShellName returns a name for c that is a valid shell variable.
// The only non-alphanumeric character in global revisions is '+'.
func (c *Checkout) ShellName() string {
	return strings.ToUpper(string(c.Part)) + "_" + strings.ReplaceAll(c.Rev, "+", "PLUS")
}

// Fetch clones or updates the revision cache entry of c. It does
// nothing for the working copy.
func (c *Checkout) Fetch(ctx context.Context) error {
	if c.Rev == WorkingCopy {
		return nil
	}
	path := c.Path()
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
			return err
		}
		if err := c.runner.Run(ctx, "", "hg", "clone", "-r", c.Rev, c.Repo, path); err != nil {
			return fmt.Errorf("clone %s: %w", c, err)
		}
	case err != nil:
		return err
	default:
		c.logger.Info("checkout already exists", zap.String("path", path))
		if err := c.runner.Run(ctx, path, "hg", "pull", c.Repo); err != nil {
			return fmt.Errorf("pull %s: %w", c, err)
		}
	}
	if err := c.runner.Run(ctx, path, "hg", "update", "-r", c.Rev); err != nil {
		// Unknown revision or update crossing branches.
		return fmt.Errorf("repo at %s could not be updated to revision %s; delete the cached repo and try again: %w", path, c.Rev, err)
	}
	return nil
}

// stateVarBytes are the state variable sizes the search component is
// built for.
var stateVarBytes = []int{1, 2, 4}

// Compile builds c's part, passing opts to make. Cached revisions
// are cleaned and stripped after a successful build; the working copy
// is left as is.
func (c *Checkout) Compile(ctx context.Context, opts []string) error {
	dir := c.BinDir()
	switch c.Part {
	case Translate:
		return nil

	case Preprocess:
		if err := c.runner.Run(ctx, dir, "make", opts...); err != nil {
			return fmt.Errorf("build failed in %s: %w", dir, err)
		}
		if c.Rev != WorkingCopy {
			c.cleanup(ctx, dir, "make", "clean")
			c.cleanup(ctx, dir, "strip", "preprocess")
		}

	case Search:
		for _, size := range stateVarBytes {
			args := append([]string{"STATE_VAR_BYTES=" + strconv.Itoa(size)}, opts...)
			if err := c.runner.Run(ctx, dir, "make", args...); err != nil {
				return fmt.Errorf("build failed in %s: %w", dir, err)
			}
		}
		if c.Rev != WorkingCopy {
			c.cleanup(ctx, dir, "make", "clean")
			release := filepath.Join(dir, "downward-release")
			if _, err := os.Stat(release); err == nil {
				c.cleanup(ctx, "", "strip", release)
			}
		}
	}
	return nil
}

// cleanup runs a post-build command. Failures only cost disk space,
// so they are logged and otherwise ignored.
func (c *Checkout) cleanup(ctx context.Context, dir, name string, args ...string) {
	if err := c.runner.Run(ctx, dir, name, args...); err != nil {
		c.logger.Warn("post-build cleanup failed", zap.Stringer("checkout", c), zap.Error(err))
	}
}
