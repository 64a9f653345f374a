// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"sort"

	"github.com/planlab/planstat/props"
)

// A Problem is a planning task, identified by its domain and problem
// file name.
type Problem struct {
	Domain, Name string
}

func (p Problem) String() string {
	return p.Domain + ":" + p.Name
}

func (p Problem) less(o Problem) bool {
	if p.Domain != o.Domain {
		return p.Domain < o.Domain
	}
	return p.Name < o.Name
}

// A DomainConfig keys the runs of one configuration on one domain.
type DomainConfig struct {
	Domain, Config string
}

// A RunKey identifies a single cell of the grid.
type RunKey struct {
	Domain, Problem, Config string
}

// ProblemKey returns the problem of k.
func (k RunKey) ProblemKey() Problem {
	return Problem{k.Domain, k.Problem}
}

// A Grid indexes the runs of an experiment by domain, problem and
// configuration. It is built once per report pass by Reconstruct.
type Grid struct {
	// Configs is the configuration order.
	Configs []string

	// Problems is the set of problems, sorted by domain and then
	// problem name.
	Problems []Problem

	// Domains maps each domain to its problem names in sorted
	// order.
	Domains map[string][]string

	// ProblemRuns maps each problem to its runs, ordered by the
	// position of their configuration in Configs.
	ProblemRuns map[Problem][]props.Run

	// DomainConfigRuns maps a domain and configuration to its runs,
	// in problem order.
	DomainConfigRuns map[DomainConfig][]props.Run

	// Runs maps each grid cell to its run.
	Runs map[RunKey]props.Run

	// ids maps grid cells to the identifiers of their runs in the
	// source store.
	ids map[RunKey]string
}

// Reconstruct builds the grid indexes of s. configs is the
// configuration order, typically from planproc.Resolver.
//
// Reconstruct does not check that the grid is complete; see Validate.
// It does not modify s.
func Reconstruct(s props.Store, configs []string) (*Grid, error) {
	pos := make(map[string]int, len(configs))
	for i, c := range configs {
		pos[c] = i
	}

	g := &Grid{
		Configs:          append([]string(nil), configs...),
		Domains:          make(map[string][]string),
		ProblemRuns:      make(map[Problem][]props.Run),
		DomainConfigRuns: make(map[DomainConfig][]props.Run),
		Runs:             make(map[RunKey]props.Run),
		ids:              make(map[RunKey]string),
	}
	// Sorted IDs make every index deterministic before the
	// explicit sorts below.
	for _, id := range s.IDs() {
		run := s[id]
		key, err := runKey(id, run)
		if err != nil {
			return nil, err
		}
		if stage, _ := run.String("stage"); stage == "search" && !run.Has("coverage") {
			return nil, &MissingFieldError{id, "coverage"}
		}
		p := key.ProblemKey()
		if _, ok := g.ProblemRuns[p]; !ok {
			g.Problems = append(g.Problems, p)
		}
		g.ProblemRuns[p] = append(g.ProblemRuns[p], run)
		dc := DomainConfig{key.Domain, key.Config}
		g.DomainConfigRuns[dc] = append(g.DomainConfigRuns[dc], run)
		g.Runs[key] = run
		g.ids[key] = id
	}

	sort.Slice(g.Problems, func(i, j int) bool {
		return g.Problems[i].less(g.Problems[j])
	})
	for _, p := range g.Problems {
		g.Domains[p.Domain] = append(g.Domains[p.Domain], p.Name)
	}

	// Unknown configurations sort after all known ones.
	position := func(run props.Run) int {
		c, _ := run.String("config")
		if i, ok := pos[c]; ok {
			return i
		}
		return len(configs)
	}
	for _, runs := range g.ProblemRuns {
		sort.SliceStable(runs, func(i, j int) bool {
			return position(runs[i]) < position(runs[j])
		})
	}
	for _, runs := range g.DomainConfigRuns {
		sort.SliceStable(runs, func(i, j int) bool {
			pi, _ := runs[i].String("problem")
			pj, _ := runs[j].String("problem")
			return pi < pj
		})
	}
	return g, nil
}

func runKey(id string, run props.Run) (RunKey, error) {
	var vals [3]string
	for i, field := range []string{"domain", "problem", "config"} {
		v, ok := run.String(field)
		if !ok {
			return RunKey{}, &MissingFieldError{id, field}
		}
		vals[i] = v
	}
	return RunKey{vals[0], vals[1], vals[2]}, nil
}

// DomainNames returns the domains of g in sorted order.
func (g *Grid) DomainNames() []string {
	names := make([]string, 0, len(g.Domains))
	for d := range g.Domains {
		names = append(names, d)
	}
	sort.Strings(names)
	return names
}

// RunID returns the store identifier of the run in cell k, or "" if
// the cell is empty.
func (g *Grid) RunID(k RunKey) string {
	return g.ids[k]
}
