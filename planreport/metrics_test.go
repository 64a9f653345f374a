// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/planlab/planstat/props"
)

func qualities(t *testing.T, costs ...any) []float64 {
	t.Helper()
	runs := make([]props.Run, len(costs))
	for i, c := range costs {
		runs[i] = props.Run{"cost": c}
		if c == nil {
			delete(runs[i], "cost")
		}
	}
	if err := Quality(runs); err != nil {
		t.Fatal(err)
	}
	var qs []float64
	for _, r := range runs {
		q, ok := r.Float("quality")
		if !ok {
			t.Fatalf("run %v has no quality", r)
		}
		qs = append(qs, q)
	}
	return qs
}

func TestQuality(t *testing.T) {
	check := func(want []float64, costs ...any) {
		t.Helper()
		if diff := cmp.Diff(want, qualities(t, costs...)); diff != "" {
			t.Errorf("Quality(%v) (-want +got):\n%s", costs, diff)
		}
	}
	check([]float64{1, 0.5, 0}, 10.0, 20.0, nil)
	check([]float64{1, 0}, 0.0, 5.0)
	check([]float64{0, 0}, nil, nil)
	check([]float64{0.3333, 1}, 30.0, 10.0)
	check([]float64{0.6667, 1}, 3.0, 2.0)

	// An explicit null cost counts as no cost.
	runs := []props.Run{{"cost": nil}, {"cost": 4.0}}
	if err := Quality(runs); err != nil {
		t.Fatal(err)
	}
	if q, _ := runs[0].Float("quality"); q != 0 {
		t.Errorf("null cost: got quality %v, want 0", q)
	}
}

func TestQualityZeroCostInvariant(t *testing.T) {
	// A zero cost implies a zero minimum. Negative costs break
	// that assumption and must not be tolerated.
	err := Quality([]props.Run{{"cost": 0.0}, {"cost": -1.0}})
	var ie *InvariantError
	if !errors.As(err, &ie) {
		t.Fatalf("got %v, want *InvariantError", err)
	}
}

func TestEngine(t *testing.T) {
	s := newStore([]string{"gripper:p1", "gripper:p2"}, []string{"blind", "lmcut"},
		func(problem, config string) props.Run {
			if config == "blind" {
				return props.Run{"cost": 12.0, "expansions": 100.0}
			}
			return props.Run{"cost": 11.0, "expansions": 10.0}
		})
	g := grid(t, s)

	var order []string
	ratio := func(runs []props.Run) error {
		order = append(order, "ratio")
		base, _ := runs[0].Float("expansions")
		for _, r := range runs {
			e, _ := r.Float("expansions")
			r["expansions_ratio"] = e / base
		}
		return nil
	}
	seenQuality := func(runs []props.Run) error {
		// Quality runs after every caller-supplied metric.
		if runs[0].Has("quality") {
			t.Errorf("quality computed before caller metric")
		}
		return nil
	}
	e := NewEngine(ratio, nil, seenQuality)
	if err := e.Apply(g, s); err != nil {
		t.Fatal(err)
	}
	if len(order) != 2 {
		t.Errorf("metric ran %d times, want once per problem", len(order))
	}
	lm := s["lmcut-gripper-p1"]
	if got, _ := lm.Float("expansions_ratio"); got != 0.1 {
		t.Errorf("expansions_ratio: got %v, want 0.1", got)
	}
	if got, _ := lm.Float("quality"); got != 1 {
		t.Errorf("lmcut quality: got %v, want 1", got)
	}
	if got, _ := s["blind-gripper-p1"].Float("quality"); got != 0.9167 {
		t.Errorf("blind quality: got %v, want 0.9167", got)
	}
	if len(s) != 4 {
		t.Errorf("engine changed the number of runs to %d", len(s))
	}
	if err := Validate(g); err != nil {
		t.Errorf("grid invalid after metrics: %v", err)
	}
}

func TestEngineRejectsKeyChanges(t *testing.T) {
	s := newStore([]string{"gripper:p1"}, []string{"blind", "lmcut"}, nil)
	g := grid(t, s)
	rename := func(runs []props.Run) error {
		runs[0]["config"] = "other"
		return nil
	}
	var ie *InvariantError
	if err := NewEngine(rename).Apply(g, s); !errors.As(err, &ie) {
		t.Errorf("renaming config: got %v, want *InvariantError", err)
	}

	s = newStore([]string{"gripper:p1"}, []string{"blind"}, nil)
	g = grid(t, s)
	drop := func(runs []props.Run) error {
		delete(runs[0], "domain")
		return nil
	}
	if err := NewEngine(drop).Apply(g, s); !errors.As(err, &ie) {
		t.Errorf("deleting domain: got %v, want *InvariantError", err)
	}

	s = newStore([]string{"gripper:p1"}, []string{"blind"}, nil)
	g = grid(t, s)
	failing := errors.New("boom")
	if err := NewEngine(func([]props.Run) error { return failing }).Apply(g, s); !errors.Is(err, failing) {
		t.Errorf("failing metric: got %v, want wrapped %v", err, failing)
	}
}

func TestEngineMalformedRun(t *testing.T) {
	s := newStore([]string{"gripper:p1"}, []string{"blind", "lmcut"}, nil)
	g := grid(t, s)
	// A run loses its domain after the grid was built.
	delete(g.ProblemRuns[Problem{"gripper", "p1"}][1], "domain")
	ran := false
	err := NewEngine(func([]props.Run) error { ran = true; return nil }).Apply(g, s)
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "domain" {
		t.Fatalf("got %v, want wrapped *MissingFieldError for domain", err)
	}
	if !strings.Contains(err.Error(), "gripper:p1") {
		t.Errorf("error does not name the problem: %v", err)
	}
	if ran {
		t.Errorf("metric ran on a malformed problem")
	}
}
