// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package planproc provides tools for filtering runs and ordering the
// configurations of a planner experiment.
//
// The typical steps before building a report are:
//
// 1. Load a props.Store from one or more properties files.
//
// 2. Apply a Filter to drop runs the report should not show. Filtering
// happens upstream of the report engine, which treats the filtered
// store as complete input.
//
// 3. Resolve the configuration order from the filtered store with a
// Resolver. The resulting order determines the left-to-right column
// order of every table and the row order of every problem's runs.
package planproc
