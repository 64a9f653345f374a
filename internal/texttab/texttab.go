// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out fixed-width text tables.
package texttab

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"
)

// Table accumulates rows of cells and writes them with every column
// padded to its widest cell.
//
// Row and Cell return the table so calls can be chained:
//
//	t.Row().Cell("domain").Cell("lama", Right)
type Table struct {
	rows  [][]cell
	rules map[int]bool // rows followed by a rule
}

type cell struct {
	value string
	align Align
}

// Align is the horizontal alignment of a cell within its column.
type Align int

const (
	Left Align = iota
	Right
	Center
)

func (a Align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	switch a {
	case Right:
		return strings.Repeat(" ", n) + s
	case Center:
		l := n / 2
		return strings.Repeat(" ", l) + s + strings.Repeat(" ", n-l)
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell appends a cell to the current row. The default alignment is
// Left.
func (t *Table) Cell(value string, align ...Align) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	if len(align) > 0 {
		c.align = align[0]
	}
	last := len(t.rows) - 1
	t.rows[last] = append(t.rows[last], c)
	return t
}

// Rule draws a line of dashes below the current row.
func (t *Table) Rule() *Table {
	if t.rules == nil {
		t.rules = make(map[int]bool)
	}
	t.rules[len(t.rows)-1] = true
	return t
}

// Format writes t to w. Columns are separated by two spaces and
// lines carry no trailing white space.
func (t *Table) Format(w io.Writer) error {
	var widths []int
	for _, row := range t.rows {
		for i, c := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(c.value))
		}
	}
	total := 0
	for i, w := range widths {
		if i > 0 {
			total += len(sep)
		}
		total += w
	}

	bw := bufio.NewWriter(w)
	var line strings.Builder
	for r, row := range t.rows {
		line.Reset()
		for i, c := range row {
			if i > 0 {
				line.WriteString(sep)
			}
			line.WriteString(c.align.pad(c.value, widths[i]))
		}
		bw.WriteString(strings.TrimRight(line.String(), " "))
		bw.WriteByte('\n')
		if t.rules[r] {
			bw.WriteString(strings.Repeat("-", total))
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

const sep = "  "
