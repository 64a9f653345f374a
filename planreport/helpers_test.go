// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planreport

import (
	"strings"

	"github.com/planlab/planstat/props"
)

// newStore returns a store with one run per (problem, config)
// combination. problems are "domain:problem" strings. Every run gets
// the config as its nick and the fields returned by fields, if any.
func newStore(problems, configs []string, fields func(problem, config string) props.Run) props.Store {
	s := make(props.Store)
	for _, pc := range problems {
		domain, problem, _ := strings.Cut(pc, ":")
		for _, c := range configs {
			run := props.Run{"domain": domain, "problem": problem, "config": c, "config_nick": c}
			if fields != nil {
				for k, v := range fields(pc, c) {
					run[k] = v
				}
			}
			s[props.RunID(c, domain, problem)] = run
		}
	}
	return s
}
