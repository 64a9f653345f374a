// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package props provides the run records produced by a planner
// experiment and a reader and writer for the JSON properties files
// that store them.
//
// A properties file maps run identifiers to flat objects of named
// fields. Every run carries at least "domain", "problem", "config"
// and "config_nick"; all other fields are measurements (such as
// "cost", "coverage" or "search_time") or error markers.
//
// Runs are plain maps so that report passes can add derived fields in
// place. Consumers should add fields but never remove or rename them.
package props

import (
	"sort"
	"strconv"
	"strings"
)

// A Run is a single planner run: a mapping from field name to value.
//
// Values have the types produced by encoding/json: float64, string,
// bool, nil, []any and map[string]any.
type Run map[string]any

// Has reports whether field key is present and non-nil.
func (r Run) Has(key string) bool {
	v, ok := r[key]
	return ok && v != nil
}

// String returns the value of field key if it is a string.
func (r Run) String(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// Float returns the value of field key as a float64. Numeric strings
// are parsed. It reports false if the field is absent, nil, or not
// numeric.
func (r Run) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	}
	return 0, false
}

// Clone returns a shallow copy of r. Nested lists and objects are
// shared.
func (r Run) Clone() Run {
	r2 := make(Run, len(r))
	for k, v := range r {
		r2[k] = v
	}
	return r2
}

// A Store maps run identifiers to runs.
type Store map[string]Run

// IDs returns the run identifiers in s in sorted order.
func (s Store) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// RunID returns the canonical identifier of the run of config on
// domain/problem.
func RunID(config, domain, problem string) string {
	return strings.Join([]string{config, domain, problem}, "-")
}
