// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"math"
	"strconv"
)

// A Table is a titled grid of cells ready for rendering.
type Table struct {
	Title string

	// RowHeader labels the column of row names.
	RowHeader string
	Columns   []string
	Rows      []*Row

	// Attribute is the attribute the table shows, if any.
	Attribute *Attribute
}

// A Row is one row of a Table. Cells are aligned with Table.Columns.
type Row struct {
	Name  string
	Cells []Cell
}

// A Cell is a single table value.
type Cell struct {
	Text string

	// Value is the numeric value of the cell if Defined.
	Value   float64
	Defined bool

	// Best marks the best value of a row according to the
	// attribute's polarity.
	Best bool
}

func numCell(v float64) Cell {
	return Cell{Text: FormatValue(v), Value: v, Defined: true}
}

// FormatValue formats v for display: integral values without a
// fraction, others with two decimal places. Values within rounding
// error of an integer, as geometric means often are, count as
// integral.
func FormatValue(v float64) string {
	if r := math.Round(v); math.Abs(v-r) < 1e-9*math.Max(1, math.Abs(v)) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(r, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// markBest flags the best defined cells of r.
func (r *Row) markBest(a Attribute) {
	if a.Polarity == NoPreference {
		return
	}
	best, found := 0.0, false
	for _, c := range r.Cells {
		if c.Defined && (!found || a.Better(c.Value, best)) {
			best, found = c.Value, true
		}
	}
	for i := range r.Cells {
		if r.Cells[i].Defined && r.Cells[i].Value == best {
			r.Cells[i].Best = true
		}
	}
}
