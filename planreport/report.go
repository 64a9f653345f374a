// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"sort"

	"go.uber.org/zap"

	"github.com/planlab/planstat/planproc"
	"github.com/planlab/planstat/props"
)

// Options configure a Report.
type Options struct {
	// Attributes are the fields to tabulate. Entries may be
	// registry glob patterns such as "score_*", which select every
	// matching numeric field. If empty, every numeric field is
	// tabulated.
	Attributes []string

	// Derived are computed for every problem before Quality.
	Derived []MetricFunc

	// Filter drops runs before the grid is built.
	Filter *planproc.Filter

	// Order gives the preferred configuration order.
	Order planproc.OrderHints

	// Logger receives warnings. If nil, nothing is logged.
	Logger *zap.Logger
}

// A Report turns run stores into report data.
type Report struct {
	opts     Options
	resolver planproc.Resolver
	engine   *Engine
	logger   *zap.Logger
}

// New returns a Report configured by opts.
func New(opts Options) *Report {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Report{
		opts:     opts,
		resolver: planproc.Resolver{Hints: opts.Order},
		engine:   NewEngine(opts.Derived...),
		logger:   logger,
	}
}

// Data is the result of a report pass.
type Data struct {
	*Grid

	// Store holds the filtered runs, including derived fields.
	Store props.Store

	attrs []Attribute
}

// Scan runs one report pass over s: it filters the runs, resolves the
// configuration order, reconstructs and validates the grid, and
// computes derived metrics.
//
// The runs of s that pass the filter gain derived fields; s itself
// gains no runs and loses none. Any failure is returned as a
// *FatalError and no data is produced.
func (r *Report) Scan(s props.Store) (*Data, error) {
	runs := r.opts.Filter.Apply(s)
	configs := r.resolver.Resolve(runs)
	r.logger.Debug("resolved config order", zap.Strings("configs", configs), zap.Int("runs", len(runs)))

	g, err := Reconstruct(runs, configs)
	if err != nil {
		return nil, &FatalError{"reconstruct grid", err}
	}
	if err := Validate(g); err != nil {
		return nil, &FatalError{"validate grid", err}
	}
	if err := r.engine.Apply(g, runs); err != nil {
		return nil, &FatalError{"derived metrics", err}
	}
	if err := Validate(g); err != nil {
		return nil, &FatalError{"validate derived grid", err}
	}
	LogUnexplainedErrors(r.logger, runs)

	return &Data{Grid: g, Store: runs, attrs: r.attributes(runs)}, nil
}

// attributes resolves the requested attribute names against the
// numeric fields present in s.
func (r *Report) attributes(s props.Store) []Attribute {
	numeric := numericFields(s)
	if len(r.opts.Attributes) == 0 {
		attrs := make([]Attribute, len(numeric))
		for i, name := range numeric {
			attrs[i] = ResolveAttribute(name)
		}
		return attrs
	}

	var attrs []Attribute
	seen := make(map[string]bool)
	add := func(a Attribute) {
		if !seen[a.Name] {
			seen[a.Name] = true
			attrs = append(attrs, a)
		}
	}
	for _, name := range r.opts.Attributes {
		if !(Attribute{Name: name}).isPattern() {
			add(ResolveAttribute(name))
			continue
		}
		for _, field := range numeric {
			if ok, _ := matchPattern(name, field); ok {
				add(ResolveAttribute(field))
			}
		}
	}
	return attrs
}

var identifying = map[string]bool{"domain": true, "problem": true, "config": true, "config_nick": true}

// numericFields returns the sorted names of the fields with a numeric
// value in at least one run.
func numericFields(s props.Store) []string {
	set := make(map[string]bool)
	for _, run := range s {
		for k, v := range run {
			if _, ok := v.(float64); ok && !identifying[k] {
				set[k] = true
			}
		}
	}
	names := make([]string, 0, len(set))
	for k := range set {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Attributes returns the resolved attributes of the report.
func (d *Data) Attributes() []Attribute {
	return append([]Attribute(nil), d.attrs...)
}

// Warnings returns the table of runs with unexplained errors.
func (d *Data) Warnings() *Table {
	return WarningsTable(d.Store)
}

// Tables returns one AttributeTable per report attribute.
func (d *Data) Tables() []*Table {
	tables := make([]*Table, len(d.attrs))
	for i, a := range d.attrs {
		tables[i] = d.AttributeTable(a)
	}
	return tables
}

// AttributeTable aggregates attribute a per domain and configuration.
// Rows are the domains in sorted order followed by a "total" row over
// all problems; columns are the configurations in report order.
//
// Absolute attributes aggregate every run that has a value. Relative
// attributes aggregate only the problems on which every configuration
// has a value, so that the columns remain comparable.
func (d *Data) AttributeTable(a Attribute) *Table {
	t := &Table{
		Title:     a.Name,
		RowHeader: "domain",
		Columns:   append([]string(nil), d.Configs...),
		Attribute: &a,
	}
	for _, domain := range d.DomainNames() {
		var probs []Problem
		for _, name := range d.Domains[domain] {
			probs = append(probs, Problem{domain, name})
		}
		t.Rows = append(t.Rows, d.aggregateRow(a, domain, probs))
	}
	t.Rows = append(t.Rows, d.aggregateRow(a, "total", d.Problems))
	return t
}

func (d *Data) aggregateRow(a Attribute, name string, probs []Problem) *Row {
	values := make([][]float64, len(d.Configs))
	for _, p := range probs {
		vals := make([]float64, len(d.Configs))
		ok := make([]bool, len(d.Configs))
		all := true
		for i, c := range d.Configs {
			run := d.Runs[RunKey{p.Domain, p.Name, c}]
			vals[i], ok[i] = run.Float(a.Name)
			all = all && ok[i]
		}
		if !a.Absolute && !all {
			continue
		}
		for i := range d.Configs {
			if ok[i] {
				values[i] = append(values[i], vals[i])
			}
		}
	}

	row := &Row{Name: name, Cells: make([]Cell, len(d.Configs))}
	for i := range d.Configs {
		if v, ok := a.Aggregate(values[i]); ok {
			row.Cells[i] = numCell(v)
		}
	}
	row.markBest(a)
	return row
}
