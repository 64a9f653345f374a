// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planproc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/planlab/planstat/props"
)

func run(domain, problem, config, nick string) props.Run {
	return props.Run{"domain": domain, "problem": problem, "config": config, "config_nick": nick}
}

func store(runs ...props.Run) props.Store {
	s := make(props.Store)
	for _, r := range runs {
		c, _ := r.String("config")
		d, _ := r.String("domain")
		p, _ := r.String("problem")
		s[props.RunID(c, d, p)] = r
	}
	return s
}

func TestFilter(t *testing.T) {
	s := store(
		run("gripper", "p1", "WORK-blind", "blind"),
		run("gripper", "p1", "WORK-lmcut", "lmcut"),
		run("miconic", "p1", "WORK-blind", "blind"),
		run("miconic", "p1", "WORK-lmcut", "lmcut"),
	)
	check := func(name string, f *Filter, want []string) {
		t.Helper()
		got := f.Apply(s).IDs()
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", name, diff)
		}
	}

	all := s.IDs()
	check("nil", nil, all)
	check("zero", &Filter{}, all)
	check("configs", &Filter{Configs: []string{"WORK-lmcut"}},
		[]string{"WORK-lmcut-gripper-p1", "WORK-lmcut-miconic-p1"})
	check("nicks", &Filter{ConfigNicks: []string{"blind"}},
		[]string{"WORK-blind-gripper-p1", "WORK-blind-miconic-p1"})
	check("domains", &Filter{Domains: []string{"miconic"}},
		[]string{"WORK-blind-miconic-p1", "WORK-lmcut-miconic-p1"})
	check("empty allow-list", &Filter{Domains: []string{}, ConfigNicks: []string{}}, all)
	if !(&Filter{Configs: []string{}}).IsZero() {
		t.Errorf("filter with only empty allow-lists is not zero")
	}
	check("func", &Filter{Func: func(r props.Run) bool {
		c, _ := r.String("config")
		d, _ := r.String("domain")
		return c == "WORK-blind" && d == "gripper"
	}}, []string{"WORK-blind-gripper-p1"})
	check("combined", &Filter{Configs: []string{"WORK-blind"}, Domains: []string{"gripper"}},
		[]string{"WORK-blind-gripper-p1"})

	if len(s) != 4 {
		t.Errorf("Apply modified the source store")
	}
}
