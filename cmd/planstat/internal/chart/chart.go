// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws bar charts of report tables.
package chart

import (
	"fmt"
	"image/color"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/planlab/planstat/planreport"
)

var (
	barColor  = color.NRGBA{0x44, 0x77, 0xaa, 0xff}
	bestColor = color.NRGBA{0x22, 0x88, 0x33, 0xff}
)

// Write draws one bar chart per table and saves it next to path.
// The chart of table "coverage" for path "out/chart.png" is written
// to "out/chart-coverage.png". The image format follows the file
// extension of path (png, svg, pdf, ...).
//
// Each chart shows the last row of its table, which for attribute
// tables is the total over all domains. Tables without a defined
// value in that row are skipped. Write returns the files written.
func Write(path string, tables []*planreport.Table) ([]string, error) {
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	var files []string
	for _, t := range tables {
		p, ok, err := barChart(t)
		if err != nil {
			return files, fmt.Errorf("chart %s: %w", t.Title, err)
		}
		if !ok {
			continue
		}
		file := base + "-" + fileName(t.Title) + ext
		// Widen the chart with the number of bars.
		width := vg.Length(2+len(t.Columns)) * 1.5 * vg.Centimeter
		if err := p.Save(width, 10*vg.Centimeter, file); err != nil {
			return files, err
		}
		files = append(files, file)
	}
	return files, nil
}

func barChart(t *planreport.Table) (*plot.Plot, bool, error) {
	if len(t.Rows) == 0 {
		return nil, false, nil
	}
	row := t.Rows[len(t.Rows)-1]
	values := make(plotter.Values, len(row.Cells))
	defined := false
	for i, c := range row.Cells {
		if c.Defined {
			values[i] = c.Value
			defined = true
		}
	}
	if !defined {
		return nil, false, nil
	}

	p := plot.New()
	p.Title.Text = t.Title + " (" + row.Name + ")"
	if t.Attribute != nil {
		p.Y.Label.Text = t.Attribute.Func.Name + ", " + t.Attribute.Polarity.String()
	}
	p.Add(plotter.NewGrid())

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return nil, false, err
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)

	// Overlay the best bars in a second color.
	best := make(plotter.Values, len(row.Cells))
	anyBest := false
	for i, c := range row.Cells {
		if c.Best {
			best[i] = c.Value
			anyBest = true
		}
	}
	if anyBest {
		hl, err := plotter.NewBarChart(best, vg.Points(20))
		if err != nil {
			return nil, false, err
		}
		hl.Color = bestColor
		hl.LineStyle.Width = vg.Length(0)
		p.Add(hl)
	}

	p.NominalX(t.Columns...)
	p.Y.Min = 0
	return p, true, nil
}

// fileName makes s usable as part of a file name.
func fileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ' ', '*', ':':
			return '_'
		}
		return r
	}, s)
}
