// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/planlab/planstat/props"
)

func TestReconstruct(t *testing.T) {
	s := newStore(
		[]string{"miconic:s1-0.pddl", "gripper:prob02.pddl", "gripper:prob01.pddl"},
		[]string{"lmcut", "blind"}, nil)
	configs := []string{"lmcut", "blind"}
	g, err := Reconstruct(s, configs)
	if err != nil {
		t.Fatal(err)
	}

	wantProblems := []Problem{
		{"gripper", "prob01.pddl"},
		{"gripper", "prob02.pddl"},
		{"miconic", "s1-0.pddl"},
	}
	if diff := cmp.Diff(wantProblems, g.Problems); diff != "" {
		t.Errorf("Problems (-want +got):\n%s", diff)
	}
	wantDomains := map[string][]string{
		"gripper": {"prob01.pddl", "prob02.pddl"},
		"miconic": {"s1-0.pddl"},
	}
	if diff := cmp.Diff(wantDomains, g.Domains); diff != "" {
		t.Errorf("Domains (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"gripper", "miconic"}, g.DomainNames()); diff != "" {
		t.Errorf("DomainNames (-want +got):\n%s", diff)
	}

	// Problem runs follow the configuration order, not id order.
	for _, p := range g.Problems {
		var got []string
		for _, run := range g.ProblemRuns[p] {
			c, _ := run.String("config")
			got = append(got, c)
		}
		if diff := cmp.Diff(configs, got); diff != "" {
			t.Errorf("ProblemRuns[%s] configs (-want +got):\n%s", p, diff)
		}
	}

	if n := len(g.DomainConfigRuns[DomainConfig{"gripper", "blind"}]); n != 2 {
		t.Errorf("DomainConfigRuns[gripper/blind]: got %d runs, want 2", n)
	}
	k := RunKey{"gripper", "prob01.pddl", "blind"}
	if g.Runs[k] == nil {
		t.Errorf("Runs[%v] missing", k)
	}
	if got, want := g.RunID(k), "blind-gripper-prob01.pddl"; got != want {
		t.Errorf("RunID: got %q, want %q", got, want)
	}
	if len(s) != 6 {
		t.Errorf("Reconstruct modified the store")
	}
}

func TestReconstructMissingField(t *testing.T) {
	for _, field := range []string{"domain", "problem", "config"} {
		s := newStore([]string{"gripper:prob01.pddl"}, []string{"blind"}, nil)
		delete(s["blind-gripper-prob01.pddl"], field)
		_, err := Reconstruct(s, []string{"blind"})
		var mfe *MissingFieldError
		if !errors.As(err, &mfe) {
			t.Errorf("missing %s: got %v, want *MissingFieldError", field, err)
			continue
		}
		if mfe.Field != field || mfe.RunID != "blind-gripper-prob01.pddl" {
			t.Errorf("missing %s: got %+v", field, mfe)
		}
	}

	// A non-string value does not place the run in the grid either.
	s := props.Store{"x": {"domain": "d", "problem": 3.0, "config": "c"}}
	if _, err := Reconstruct(s, []string{"c"}); err == nil {
		t.Errorf("numeric problem field: want error")
	}
}

func TestReconstructSearchCoverage(t *testing.T) {
	s := newStore([]string{"gripper:prob01.pddl"}, []string{"blind", "lmcut"}, func(_, c string) props.Run {
		if c == "blind" {
			return props.Run{"stage": "search"}
		}
		return props.Run{"stage": "search", "coverage": 1.0}
	})
	_, err := Reconstruct(s, []string{"blind", "lmcut"})
	var mfe *MissingFieldError
	if !errors.As(err, &mfe) || mfe.Field != "coverage" || mfe.RunID != "blind-gripper-prob01.pddl" {
		t.Fatalf("search run without coverage: got %v", err)
	}

	// Runs of other stages need no coverage.
	s["blind-gripper-prob01.pddl"]["stage"] = "preprocess"
	if _, err := Reconstruct(s, []string{"blind", "lmcut"}); err != nil {
		t.Errorf("preprocess run without coverage: %v", err)
	}
}
