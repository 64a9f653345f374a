// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render writes report tables as text, CSV or HTML.
package render

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/planlab/planstat/internal/texttab"
	"github.com/planlab/planstat/planreport"
)

// Formats lists the supported output formats.
var Formats = []string{"text", "csv", "html"}

// Write renders tables to w in the named format.
func Write(w io.Writer, format, title string, tables []*planreport.Table) error {
	switch format {
	case "text":
		return Text(w, tables)
	case "csv":
		return CSV(w, tables)
	case "html":
		return HTML(w, title, tables)
	}
	return fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
}

// Text writes tables as aligned plain text, one after another. The
// best value of each row is followed by an asterisk.
func Text(w io.Writer, tables []*planreport.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", heading(t)); err != nil {
			return err
		}
		var tab texttab.Table
		tab.Row().Cell(t.RowHeader)
		for _, col := range t.Columns {
			tab.Cell(col, texttab.Right)
		}
		tab.Rule()
		for _, row := range t.Rows {
			tab.Row().Cell(row.Name)
			for _, c := range row.Cells {
				text := c.Text
				if c.Best {
					text += "*"
				} else if t.Attribute != nil {
					text += " "
				}
				tab.Cell(text, texttab.Right)
			}
		}
		if err := tab.Format(w); err != nil {
			return err
		}
	}
	return nil
}

func heading(t *planreport.Table) string {
	if t.Attribute == nil {
		return t.Title
	}
	kind := "relative"
	if t.Attribute.Absolute {
		kind = "absolute"
	}
	return fmt.Sprintf("%s (%s, %s, %s)", t.Title, t.Attribute.Func.Name, kind, t.Attribute.Polarity)
}

// CSV writes tables as CSV records. Each table starts with a header
// record whose first field is the table title; tables are separated
// by an empty record.
func CSV(w io.Writer, tables []*planreport.Table) error {
	cw := csv.NewWriter(w)
	for i, t := range tables {
		if i > 0 {
			cw.Write([]string{})
		}
		cw.Write(append([]string{t.Title}, t.Columns...))
		for _, row := range t.Rows {
			rec := []string{row.Name}
			for _, c := range row.Cells {
				rec = append(rec, c.Text)
			}
			cw.Write(rec)
		}
	}
	cw.Flush()
	return cw.Error()
}
