// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package planreport turns the runs of a planner experiment into
// report data.
//
// A report pass reconstructs the experiment grid (domains × problems
// × configurations) from an unordered run store, validates that every
// problem was run exactly once under every configuration, computes
// derived per-problem metrics such as the normalized plan quality,
// and exposes ordered views of the result for table and chart
// renderers.
//
// Validation failures are fatal to a report: Report.Scan returns a
// *FatalError and no partial data. Runs that ended with an unexpected
// error are not fatal; they are logged and collected in a warnings
// table.
package planreport
