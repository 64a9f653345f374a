// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/planlab/planstat/props"
)

// Validate checks that g is a complete grid: every problem was run
// exactly once under every configuration.
//
// The seven checks below cross-validate the same grid through each of
// its indexes. Given correct index construction they all follow from
// the first, and all of them are kept. Validate returns a *GridError
// describing the first failed check.
func Validate(g *Grid) error {
	nConfigs := len(g.Configs)
	nProblems := len(g.Problems)
	nRuns := len(g.Runs)

	if nProblems*nConfigs != nRuns {
		bad := g.incompleteProblems()
		var b strings.Builder
		fmt.Fprintf(&b, "every problem must be run for all configs\n")
		fmt.Fprintf(&b, "Configs (%d): %s\n", nConfigs, strings.Join(g.Configs, ", "))
		fmt.Fprintf(&b, "Problems: %d\n", nProblems)
		fmt.Fprintf(&b, "Domains (%d): %s\n", len(g.Domains), strings.Join(g.DomainNames(), ", "))
		fmt.Fprintf(&b, "Runs: %d", nRuns)
		for _, p := range bad {
			fmt.Fprintf(&b, "\n%s", g.describeProblem(p))
		}
		return &GridError{Check: 1, Msg: b.String(), Problems: bad}
	}

	nDomainProblems := 0
	for _, probs := range g.Domains {
		nDomainProblems += len(probs)
	}
	if nDomainProblems != nProblems {
		return &GridError{Check: 2, Msg: fmt.Sprintf("domains hold %d problems, want %d", nDomainProblems, nProblems)}
	}

	if len(g.ProblemRuns) != nProblems {
		return &GridError{Check: 3, Msg: fmt.Sprintf("%d problems have runs, want %d", len(g.ProblemRuns), nProblems)}
	}

	for _, p := range g.Problems {
		if len(g.ProblemRuns[p]) != nConfigs {
			return &GridError{Check: 4, Msg: g.describeProblem(p), Problems: []Problem{p}}
		}
	}

	nProblemRuns := 0
	for _, runs := range g.ProblemRuns {
		nProblemRuns += len(runs)
	}
	if nProblemRuns != nRuns {
		return &GridError{Check: 5, Msg: fmt.Sprintf("problems hold %d runs, want %d", nProblemRuns, nRuns)}
	}

	if len(g.Domains)*nConfigs != len(g.DomainConfigRuns) {
		return &GridError{Check: 6, Msg: fmt.Sprintf("%d domain/config pairs have runs, want %d domains × %d configs",
			len(g.DomainConfigRuns), len(g.Domains), nConfigs)}
	}

	nDomainConfigRuns := 0
	for _, runs := range g.DomainConfigRuns {
		nDomainConfigRuns += len(runs)
	}
	if nDomainConfigRuns != nRuns {
		return &GridError{Check: 7, Msg: fmt.Sprintf("domain/config pairs hold %d runs, want %d", nDomainConfigRuns, nRuns)}
	}
	return nil
}

// incompleteProblems returns the problems that do not have exactly
// one run per configuration, in problem order.
func (g *Grid) incompleteProblems() []Problem {
	var bad []Problem
	for _, p := range g.Problems {
		counts := g.configCounts(p)
		if len(counts) != len(g.Configs) || lo.SomeBy(lo.Values(counts), func(n int) bool { return n != 1 }) {
			bad = append(bad, p)
		}
	}
	return bad
}

func (g *Grid) configCounts(p Problem) map[string]int {
	configs := lo.Map(g.ProblemRuns[p], func(run props.Run, _ int) string {
		c, _ := run.String("config")
		return c
	})
	return lo.CountValues(configs)
}

// describeProblem lists the configurations problem p was run under
// with their multiplicities and the configurations it was never run
// under.
func (g *Grid) describeProblem(p Problem) string {
	counts := g.configCounts(p)
	var b strings.Builder
	fmt.Fprintf(&b, "problem %s: %d runs, want one per config (%d)", p, len(g.ProblemRuns[p]), len(g.Configs))

	var ran, dup []string
	for _, c := range g.Configs {
		if n := counts[c]; n > 0 {
			ran = append(ran, fmt.Sprintf("%s: %dx", c, n))
			if n > 1 {
				dup = append(dup, fmt.Sprintf("%s: %dx", c, n))
			}
		}
	}
	missing := lo.Filter(g.Configs, func(c string, _ int) bool { return counts[c] == 0 })
	fmt.Fprintf(&b, "; ran under: %s", strings.Join(ran, ", "))
	if len(dup) > 0 {
		fmt.Fprintf(&b, "; run more than once for: %s", strings.Join(dup, ", "))
	}
	if len(missing) > 0 {
		fmt.Fprintf(&b, "; never run for: %s", strings.Join(missing, ", "))
	}
	return b.String()
}
