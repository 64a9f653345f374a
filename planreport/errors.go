// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import "fmt"

// A MissingFieldError reports a run without one of the fields that
// place it in the grid, or a search run without "coverage".
type MissingFieldError struct {
	RunID string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("run %q has no field %q", e.RunID, e.Field)
}

// A GridError reports that the runs do not form a complete grid.
type GridError struct {
	// Check is the number of the failed consistency check, from 1.
	Check int
	Msg   string

	// Problems lists the problems that do not have exactly one run
	// per configuration, if any could be identified.
	Problems []Problem
}

func (e *GridError) Error() string {
	return fmt.Sprintf("grid check %d failed: %s", e.Check, e.Msg)
}

// An InvariantError reports a violated invariant of the derived
// metric computation.
type InvariantError struct {
	Problem Problem
	Msg     string
}

func (e *InvariantError) Error() string {
	if e.Problem == (Problem{}) {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Problem, e.Msg)
}

// A FatalError aborts report generation. Stage names the step of the
// report pass that failed.
type FatalError struct {
	Stage string
	Err   error
}

func (e *FatalError) Error() string {
	return e.Stage + ": " + e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
