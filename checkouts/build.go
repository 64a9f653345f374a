// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checkouts

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Build fetches and compiles checkouts. Checkouts that share a
// directory are processed one after another, in order; distinct
// directories are processed concurrently, at most limit at a time
// (no limit if limit <= 0). Each (directory, part) pair is built
// once.
func Build(ctx context.Context, checkouts []*Checkout, opts []string, limit int) error {
	var dirs []string
	byDir := make(map[string][]*Checkout)
	for _, c := range checkouts {
		dir := c.Path()
		if _, ok := byDir[dir]; !ok {
			dirs = append(dirs, dir)
		}
		byDir[dir] = append(byDir[dir], c)
	}

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, dir := range dirs {
		group := byDir[dir]
		g.Go(func() error {
			if err := group[0].Fetch(ctx); err != nil {
				return err
			}
			built := make(map[Part]bool)
			for _, c := range group {
				if built[c.Part] {
					continue
				}
				built[c.Part] = true
				if err := c.Compile(ctx, opts); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
