// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/planlab/planstat/props"
)

// sanctionedErrors are the "error" values of runs that ended in an
// expected way.
var sanctionedErrors = map[string]bool{
	"none":               true,
	"unsolvable":         true,
	"timeout":            true,
	"mem-limit-exceeded": true,
}

var warningColumns = []string{"domain", "problem", "config", "error", "last_logged_time", "last_logged_memory"}

// unexplainedError reports whether run has an "error" field that is
// not one of the sanctioned values. A missing error field is
// sanctioned.
func unexplainedError(run props.Run) bool {
	if !run.Has("error") {
		return false
	}
	s, ok := run.String("error")
	return !ok || !sanctionedErrors[s]
}

// WarningsTable returns a table with one row per run in s that ended
// with an unexplained error.
func WarningsTable(s props.Store) *Table {
	t := &Table{Title: "Unexplained errors", RowHeader: "run", Columns: warningColumns}
	for _, id := range s.IDs() {
		run := s[id]
		if !unexplainedError(run) {
			continue
		}
		row := &Row{Name: id}
		for _, col := range warningColumns {
			row.Cells = append(row.Cells, Cell{Text: fieldText(run, col)})
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func fieldText(run props.Run, key string) string {
	switch v := run[key].(type) {
	case nil:
		return "?"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	return "?"
}

// LogUnexplainedErrors logs a warning for every run in s that ended
// with an unexplained error or was flagged by the run parser with an
// "unexplained_error" field, and returns the number of such runs.
func LogUnexplainedErrors(logger *zap.Logger, s props.Store) int {
	n := 0
	for _, id := range s.IDs() {
		run := s[id]
		if !truthy(run["unexplained_error"]) && !unexplainedError(run) {
			continue
		}
		n++
		dir, _ := run.String("run_dir")
		logger.Warn("unexplained error",
			zap.String("run", id),
			zap.String("run_dir", dir),
			zap.String("error", fieldText(run, "error")),
			zap.Int("count", n))
	}
	if n > 0 {
		logger.Warn("runs with unexplained errors", zap.Int("count", n))
	}
	return n
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	}
	return true
}
