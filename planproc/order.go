// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planproc

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/planlab/planstat/props"
)

// OrderHints are the caller's preferences for the configuration order.
// Both fields are optional.
type OrderHints struct {
	// Configs lists configuration names in the desired order.
	Configs []string

	// Nicks lists configuration nicknames in the desired order. It
	// is only consulted if Configs is empty. Configurations that
	// share a nickname are ordered alphabetically.
	Nicks []string
}

// An orderStrategy selects how the configuration order is derived
// from the hints.
type orderStrategy int

const (
	byNaturalOrder orderStrategy = iota
	byConfigHint
	byNickHint
)

func (h OrderHints) strategy() orderStrategy {
	switch {
	case len(h.Configs) > 0:
		return byConfigHint
	case len(h.Nicks) > 0:
		return byNickHint
	}
	return byNaturalOrder
}

// observed is the configuration information present in a store.
type observed struct {
	configs map[string]bool
	nicks   map[string]map[string]bool
}

func observe(s props.Store) *observed {
	o := &observed{make(map[string]bool), make(map[string]map[string]bool)}
	for _, run := range s {
		config, ok := run.String("config")
		if !ok {
			// Reported by the grid reconstruction.
			continue
		}
		o.configs[config] = true
		if nick, ok := run.String("config_nick"); ok {
			if o.nicks[nick] == nil {
				o.nicks[nick] = make(map[string]bool)
			}
			o.nicks[nick][config] = true
		}
	}
	return o
}

// fingerprint returns a string that is equal for two observations if
// and only if they have the same configurations and nicknames.
func (o *observed) fingerprint() string {
	var pairs []string
	for nick, configs := range o.nicks {
		for c := range configs {
			pairs = append(pairs, nick+"\x00"+c)
		}
	}
	for c := range o.configs {
		pairs = append(pairs, "\x01"+c)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, "\x02")
}

// ConfigOrder returns the configurations present in s in the order
// given by h.
//
// If h names configurations (directly or through nicknames), those
// still present in s come first in hint order, followed by all other
// configurations in natural order. Without hints the order is natural.
func ConfigOrder(s props.Store, h OrderHints) []string {
	return order(observe(s), h)
}

func order(o *observed, h OrderHints) []string {
	var hint []string
	switch h.strategy() {
	case byNickHint:
		for _, nick := range h.Nicks {
			configs := lo.Keys(o.nicks[nick])
			sort.Strings(configs)
			hint = append(hint, configs...)
		}
	case byConfigHint:
		hint = h.Configs
	}

	var out []string
	seen := make(map[string]bool)
	for _, c := range hint {
		if o.configs[c] && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	rest := lo.Filter(lo.Keys(o.configs), func(c string, _ int) bool { return !seen[c] })
	NaturalSort(rest)
	return append(out, rest...)
}

// A Resolver computes the configuration order of a store and caches
// it until the configurations in the store change.
//
// A Resolver is not safe for concurrent use.
type Resolver struct {
	Hints OrderHints

	key   string
	order []string
	valid bool
}

// Resolve returns the configuration order for s. Resolving the same
// configuration set with the same hints again returns the cached
// order; a store whose configurations or nicknames differ from the
// last call is resolved afresh.
func (r *Resolver) Resolve(s props.Store) []string {
	o := observe(s)
	key := strings.Join([]string{
		o.fingerprint(),
		strings.Join(r.Hints.Configs, "\x00"),
		strings.Join(r.Hints.Nicks, "\x00"),
	}, "\x03")
	if !r.valid || key != r.key {
		r.key, r.order, r.valid = key, order(o, r.Hints), true
	}
	return append([]string(nil), r.order...)
}

// Reset discards the cached order.
func (r *Resolver) Reset() {
	r.key, r.order, r.valid = "", nil, false
}
