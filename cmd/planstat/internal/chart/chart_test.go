// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/planlab/planstat/planreport"
)

func TestWrite(t *testing.T) {
	a := planreport.ResolveAttribute("expansions")
	tables := []*planreport.Table{
		{
			Title:     "expansions",
			RowHeader: "domain",
			Columns:   []string{"lama", "ff"},
			Attribute: &a,
			Rows: []*planreport.Row{{Name: "total", Cells: []planreport.Cell{
				{Text: "10", Value: 10, Defined: true, Best: true},
				{Text: "25", Value: 25, Defined: true},
			}}},
		},
		{
			// Nothing to draw.
			Title:   "empty",
			Columns: []string{"lama", "ff"},
			Rows:    []*planreport.Row{{Name: "total", Cells: make([]planreport.Cell, 2)}},
		},
	}

	dir := t.TempDir()
	files, err := Write(filepath.Join(dir, "chart.png"), tables)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "chart-expansions.png")}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Fatalf("files (-want +got):\n%s", diff)
	}
	info, err := os.Stat(files[0])
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", files[0])
	}
}

func TestFileName(t *testing.T) {
	if got, want := fileName("score_* total/x"), "score___total_x"; got != want {
		t.Errorf("fileName: got %q, want %q", got, want)
	}
}
