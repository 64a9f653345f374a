// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"fmt"
	"math"

	"github.com/planlab/planstat/props"
)

// A MetricFunc computes derived fields for one problem.
//
// It receives the runs of a single problem, one per configuration in
// configuration order, and may add fields to those runs. It must not
// modify the "domain", "problem" or "config" fields, replace runs, or
// depend on state shared with other problems.
type MetricFunc func(runs []props.Run) error

// An Engine applies derived metrics to every problem of a grid.
type Engine struct {
	funcs []MetricFunc
}

// NewEngine returns an Engine that applies funcs in order, followed by
// Quality.
func NewEngine(funcs ...MetricFunc) *Engine {
	all := make([]MetricFunc, 0, len(funcs)+1)
	for _, f := range funcs {
		if f != nil {
			all = append(all, f)
		}
	}
	return &Engine{append(all, Quality)}
}

// Apply runs every metric over every problem of g, then stores each
// run back into s under its original identifier.
func (e *Engine) Apply(g *Grid, s props.Store) error {
	for i, f := range e.funcs {
		for _, p := range g.Problems {
			runs := g.ProblemRuns[p]
			before, err := keysOf(runs)
			if err != nil {
				return fmt.Errorf("derived metric %d on %s: %w", i, p, err)
			}
			if err := f(runs); err != nil {
				return fmt.Errorf("derived metric %d on %s: %w", i, p, err)
			}
			after, err := keysOf(runs)
			if err != nil {
				return &InvariantError{p, fmt.Sprintf("derived metric %d removed an identifying field: %v", i, err)}
			}
			for j := range before {
				if before[j] != after[j] {
					return &InvariantError{p, fmt.Sprintf("derived metric %d changed run %s/%s/%s into %s/%s/%s", i,
						before[j].Domain, before[j].Problem, before[j].Config,
						after[j].Domain, after[j].Problem, after[j].Config)}
				}
			}
		}
	}

	for _, p := range g.Problems {
		for _, run := range g.ProblemRuns[p] {
			key, _ := runKey("", run)
			g.Runs[key] = run
			if id := g.ids[key]; id != "" {
				s[id] = run
			}
		}
	}
	return nil
}

func keysOf(runs []props.Run) ([]RunKey, error) {
	keys := make([]RunKey, len(runs))
	for i, run := range runs {
		k, err := runKey("", run)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

// Quality sets the "quality" field of every run of a problem to its
// normalized plan quality: the cheapest plan cost found by any
// configuration divided by the run's own plan cost, rounded to four
// decimal places. Runs without a cost get quality 0 and zero-cost
// plans get quality 1.
func Quality(runs []props.Run) error {
	minCost, haveMin := minimum(runs, "cost")
	for _, run := range runs {
		cost, ok := run.Float("cost")
		var q float64
		switch {
		case !ok:
			q = 0
		case cost == 0:
			if !haveMin || minCost != 0 {
				return &InvariantError{Msg: fmt.Sprintf("zero plan cost but minimum cost is %v", minCost)}
			}
			q = 1
		default:
			q = minCost / cost
		}
		run["quality"] = round(q, 4)
	}
	return nil
}

// minimum returns the smallest numeric value of field key across runs.
// Runs without the field do not contribute. It reports false if no
// run has the field.
func minimum(runs []props.Run, key string) (float64, bool) {
	min, found := math.Inf(1), false
	for _, run := range runs {
		if v, ok := run.Float(key); ok {
			min, found = math.Min(min, v), true
		}
	}
	return min, found
}

func round(x float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(x*p) / p
}
