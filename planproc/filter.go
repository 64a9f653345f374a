// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planproc

import (
	"github.com/samber/lo"

	"github.com/planlab/planstat/props"
)

// A Filter selects runs from a store.
//
// A run passes the filter if it passes every non-nil criterion. The
// zero Filter matches everything.
type Filter struct {
	// Func, if non-nil, is an arbitrary predicate over a run.
	Func func(run props.Run) bool

	// Configs, ConfigNicks and Domains are allow-lists for the
	// "config", "config_nick" and "domain" fields. An empty list
	// allows every value.
	Configs     []string
	ConfigNicks []string
	Domains     []string
}

// IsZero reports whether f matches every run.
func (f *Filter) IsZero() bool {
	return f == nil || (f.Func == nil && len(f.Configs) == 0 && len(f.ConfigNicks) == 0 && len(f.Domains) == 0)
}

// Match reports whether run passes f.
func (f *Filter) Match(run props.Run) bool {
	if f.IsZero() {
		return true
	}
	if !allowed(f.Configs, run, "config") ||
		!allowed(f.ConfigNicks, run, "config_nick") ||
		!allowed(f.Domains, run, "domain") {
		return false
	}
	return f.Func == nil || f.Func(run)
}

func allowed(list []string, run props.Run, key string) bool {
	if len(list) == 0 {
		return true
	}
	v, ok := run.String(key)
	return ok && lo.Contains(list, v)
}

// Apply returns a new store holding the runs of s that pass f. The
// runs themselves are shared with s; s is not modified.
func (f *Filter) Apply(s props.Store) props.Store {
	out := make(props.Store, len(s))
	for id, run := range s {
		if f.Match(run) {
			out[id] = run
		}
	}
	return out
}
