// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/planlab/planstat/props"
)

func TestWarningsTable(t *testing.T) {
	s := newStore([]string{"gripper:p1"}, []string{"a", "b", "c", "d", "e"},
		func(problem, config string) props.Run {
			switch config {
			case "a":
				return props.Run{"error": "signal-9", "last_logged_time": 12.5}
			case "b":
				return props.Run{"error": "timeout"}
			case "c":
				return props.Run{"error": "none"}
			case "d":
				return props.Run{"error": 3.0}
			}
			return nil
		})
	tab := WarningsTable(s)

	var got [][]string
	for _, row := range tab.Rows {
		cells := []string{row.Name}
		for _, c := range row.Cells {
			cells = append(cells, c.Text)
		}
		got = append(got, cells)
	}
	want := [][]string{
		{"a-gripper-p1", "gripper", "p1", "a", "signal-9", "12.5", "?"},
		{"d-gripper-p1", "gripper", "p1", "d", "3", "?", "?"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("warnings table (-want +got):\n%s", diff)
	}
	wantCols := []string{"domain", "problem", "config", "error", "last_logged_time", "last_logged_memory"}
	if diff := cmp.Diff(wantCols, tab.Columns); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
}

func TestLogUnexplainedErrors(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := props.Store{
		"r1": {"error": "signal-9", "run_dir": "runs/00001"},
		"r2": {"error": "timeout", "unexplained_error": true},
		"r3": {"error": "timeout", "unexplained_error": false},
		"r4": {},
	}
	if n := LogUnexplainedErrors(zap.New(core), s); n != 2 {
		t.Errorf("got %d unexplained errors, want 2", n)
	}
	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("got %d log entries, want 3", len(entries))
	}
	if got := entries[0].ContextMap()["run_dir"]; got != "runs/00001" {
		t.Errorf("first warning run_dir: got %v", got)
	}
	if got := entries[2].ContextMap()["count"]; got != int64(2) {
		t.Errorf("summary count: got %v (%T), want 2", got, got)
	}
}
