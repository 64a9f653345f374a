// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checkouts

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Revisions resolves Mercurial revision specifiers. Results are
// cached, so each distinct query runs hg once. It is safe for
// concurrent use.
type Revisions struct {
	Runner Runner

	mu    sync.Mutex
	cache map[string]string
}

// NewRevisions returns a Revisions that runs hg through runner.
func NewRevisions(runner Runner) *Revisions {
	return &Revisions{Runner: runner}
}

func (r *Revisions) id(ctx context.Context, repo, rev string, args ...string) (string, error) {
	cmd := append([]string{"id", "--repository", repo}, args...)
	if rev != "" {
		cmd = append(cmd, "-r", rev)
	}
	key := strings.Join(cmd, "\x00")

	r.mu.Lock()
	if out, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return out, nil
	}
	r.mu.Unlock()

	out, err := r.Runner.Output(ctx, "", "hg", cmd...)
	if err == nil && out == "" {
		err = fmt.Errorf("no output")
	}
	if err != nil {
		return "", fmt.Errorf("hg %s failed; check path and revision: %w", strings.Join(cmd, " "), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cache == nil {
		r.cache = make(map[string]string)
	}
	r.cache[key] = out
	return out, nil
}

// GlobalRev returns the global changeset id of rev in repo. An empty
// rev means the working copy's parent.
func (r *Revisions) GlobalRev(ctx context.Context, repo, rev string) (string, error) {
	return r.id(ctx, repo, rev, "-i")
}

// RevID returns the full identification of rev in repo: changeset id,
// branch and tags.
func (r *Revisions) RevID(ctx context.Context, repo, rev string) (string, error) {
	return r.id(ctx, repo, rev)
}

// CommonAncestor returns the global changeset id of the greatest
// common ancestor of rev1 and rev2 in repo. If rev2 is empty, it
// defaults to "default", which yields the revision at which rev1 was
// branched off the default branch. If rev1 has been merged into the
// default branch, this is rev1 itself.
func (r *Revisions) CommonAncestor(ctx context.Context, repo, rev1, rev2 string) (string, error) {
	if rev2 == "" {
		rev2 = "default"
	}
	out, err := r.Runner.Output(ctx, "", "hg", "-R", repo, "debugancestor", rev1, rev2)
	if err != nil {
		return "", fmt.Errorf("%s or %s is not part of the repo at %s: %w", rev1, rev2, repo, err)
	}
	_, hex, ok := strings.Cut(out, ":")
	if !ok {
		return "", fmt.Errorf("unexpected debugancestor output %q", out)
	}
	return r.GlobalRev(ctx, repo, hex)
}
