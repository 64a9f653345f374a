// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"math"
	"testing"
)

func TestResolveAttribute(t *testing.T) {
	for _, tc := range []struct {
		name     string
		agg      string
		polarity Polarity
		absolute bool
	}{
		{"coverage", "sum", HigherIsBetter, true},
		{"quality", "sum", HigherIsBetter, true},
		{"expansions", "geomean", LowerIsBetter, false},
		{"search_time", "geomean", LowerIsBetter, false},
		{"score_custom", "mean", HigherIsBetter, false},
		{"score_expansions", "mean", HigherIsBetter, false},
		{"translator_error", "sum", NoPreference, true},
		{"plan_length", "sum", HigherIsBetter, false},
	} {
		a := ResolveAttribute(tc.name)
		if a.Name != tc.name || a.Func.Name != tc.agg || a.Polarity != tc.polarity || a.Absolute != tc.absolute {
			t.Errorf("ResolveAttribute(%q) = {%s %s %v %v}, want {%s %s %v %v}",
				tc.name, a.Name, a.Func.Name, a.Polarity, a.Absolute,
				tc.name, tc.agg, tc.polarity, tc.absolute)
		}
	}
}

func TestResolveAttributeOrder(t *testing.T) {
	registry := []Attribute{
		{Name: "x_*", Func: Mean},
		{Name: "x_y", Func: GeoMean},
		{Name: "*", Func: Sum},
	}
	// Literal matches win over earlier patterns.
	if a := resolveAttribute(registry, "x_y"); a.Func.Name != "geomean" {
		t.Errorf("x_y: got %s, want geomean", a.Func.Name)
	}
	// The first matching pattern wins.
	if a := resolveAttribute(registry, "x_z"); a.Func.Name != "mean" || a.Name != "x_z" {
		t.Errorf("x_z: got %s/%s, want x_z/mean", a.Name, a.Func.Name)
	}
	// The registry entry itself is not renamed.
	if registry[0].Name != "x_*" {
		t.Errorf("registry entry renamed to %q", registry[0].Name)
	}
}

func TestAggregate(t *testing.T) {
	check := func(a Attribute, xs []float64, want float64) {
		t.Helper()
		got, ok := a.Aggregate(xs)
		if !ok || math.Abs(got-want) > 1e-9 {
			t.Errorf("%s(%v) = %v, %v; want %v", a.Func.Name, xs, got, ok, want)
		}
	}
	check(Attribute{Func: Sum}, []float64{1, 2, 3}, 6)
	check(Attribute{Func: Mean}, []float64{1, 2, 3}, 2)
	check(Attribute{Func: GeoMean}, []float64{1, 4}, 2)
	check(Attribute{Func: GeoMean}, []float64{0, 10}, 1)
	check(Attribute{}, []float64{1, 1}, 2)

	if _, ok := (Attribute{Func: Mean}).Aggregate(nil); ok {
		t.Errorf("Aggregate(nil) reported a value")
	}
}
