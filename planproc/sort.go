// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planproc

import (
	"sort"
	"strings"
)

// NaturalLess reports whether a sorts before b in natural order:
// runs of digits compare by numeric value and all other runs compare
// byte-wise, so "config2" sorts before "config10".
func NaturalLess(a, b string) bool {
	if c := naturalCompare(a, b); c != 0 {
		return c < 0
	}
	// The strings are equal according to natural order but may
	// still differ, e.g., "a01" and "a1". Fall back to a
	// comparison that is only 0 if the strings are ==.
	return a < b
}

// NaturalSort sorts xs in place in natural order.
func NaturalSort(xs []string) {
	sort.Slice(xs, func(i, j int) bool {
		return NaturalLess(xs[i], xs[j])
	})
}

func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		ca, ra := chunk(a)
		cb, rb := chunk(b)
		if isDigit(ca[0]) && isDigit(cb[0]) {
			if c := compareDigits(ca, cb); c != 0 {
				return c
			}
		} else if c := strings.Compare(ca, cb); c != 0 {
			return c
		}
		a, b = ra, rb
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	}
	return 1
}

// chunk splits s into its leading run of digits or non-digits and the
// remainder. s must be non-empty.
func chunk(s string) (head, rest string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

// compareDigits compares two digit strings by numeric value without
// converting them, so arbitrarily long numbers are supported.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
