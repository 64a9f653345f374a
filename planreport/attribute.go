// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"math"
	"path"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
)

// Polarity indicates which direction of an attribute is an
// improvement.
type Polarity int

const (
	HigherIsBetter Polarity = iota
	LowerIsBetter
	NoPreference
)

func (p Polarity) String() string {
	switch p {
	case HigherIsBetter:
		return "higher is better"
	case LowerIsBetter:
		return "lower is better"
	}
	return "no preference"
}

// An Aggregator combines the values of an attribute across problems.
type Aggregator struct {
	Name string
	Fn   func(xs []float64) float64
}

var (
	Sum  = Aggregator{"sum", vec.Sum}
	Mean = Aggregator{"mean", stats.Mean}

	// GeoMean treats values below 0.1 as 0.1 so that zero times
	// and counts do not collapse the mean.
	GeoMean = Aggregator{"geomean", func(xs []float64) float64 {
		ys := make([]float64, len(xs))
		for i, x := range xs {
			ys[i] = math.Max(x, 0.1)
		}
		return stats.GeoMean(ys)
	}}
)

// An Attribute describes how a run field is aggregated and compared
// in reports.
type Attribute struct {
	// Name is the field name. Registry entries may use a glob
	// pattern as understood by path.Match.
	Name string

	// Func aggregates values across problems.
	Func Aggregator

	Polarity Polarity

	// Absolute reports whether values are meaningful across
	// problems on their own, like a coverage count. Values of
	// relative attributes are only comparable between
	// configurations on the same problem and are aggregated only
	// over problems every configuration has a value for.
	Absolute bool
}

// Copy returns a copy of a renamed to name.
func (a Attribute) Copy(name string) Attribute {
	a.Name = name
	return a
}

func (a Attribute) isPattern() bool {
	return strings.ContainsAny(a.Name, "*?[")
}

// Aggregate combines xs with a's aggregation function. It reports
// false if xs is empty.
func (a Attribute) Aggregate(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	f := a.Func.Fn
	if f == nil {
		f = Sum.Fn
	}
	return f(xs), true
}

// Better reports whether x is an improvement over y.
func (a Attribute) Better(x, y float64) bool {
	switch a.Polarity {
	case HigherIsBetter:
		return x > y
	case LowerIsBetter:
		return x < y
	}
	return false
}

// Attributes is the registry of known attributes, in lookup order.
var Attributes = []Attribute{
	{Name: "coverage", Func: Sum, Polarity: HigherIsBetter, Absolute: true},
	{Name: "initial_h_value", Func: Sum, Polarity: HigherIsBetter, Absolute: true},
	{Name: "quality", Func: Sum, Polarity: HigherIsBetter, Absolute: true},
	{Name: "unsolvable", Func: Sum, Polarity: HigherIsBetter, Absolute: true},
	{Name: "search_time", Func: GeoMean, Polarity: LowerIsBetter},
	{Name: "total_time", Func: GeoMean, Polarity: LowerIsBetter},
	{Name: "evaluations", Func: GeoMean, Polarity: LowerIsBetter},
	{Name: "expansions", Func: GeoMean, Polarity: LowerIsBetter},
	{Name: "generated", Func: GeoMean, Polarity: LowerIsBetter},
	{Name: "score_*", Func: Mean, Polarity: HigherIsBetter},
	{Name: "*_error", Func: Sum, Polarity: NoPreference, Absolute: true},
}

// ResolveAttribute returns the descriptor for field name from the
// Attributes registry.
func ResolveAttribute(name string) Attribute {
	return resolveAttribute(Attributes, name)
}

// resolveAttribute looks name up in registry: an exact match first,
// then the first glob pattern that matches, renamed to name. Unknown
// names get a relative, higher-is-better attribute aggregated by sum.
func resolveAttribute(registry []Attribute, name string) Attribute {
	for _, a := range registry {
		if a.Name == name {
			return a
		}
	}
	for _, a := range registry {
		if !a.isPattern() {
			continue
		}
		if ok, err := path.Match(a.Name, name); err == nil && ok {
			return a.Copy(name)
		}
	}
	return Attribute{Name: name, Func: Sum, Polarity: HigherIsBetter}
}

func matchPattern(pattern, name string) (bool, error) {
	return path.Match(pattern, name)
}
