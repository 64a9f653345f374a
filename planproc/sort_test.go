// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package planproc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNaturalSort(t *testing.T) {
	check := func(in, want []string) {
		t.Helper()
		got := append([]string(nil), in...)
		NaturalSort(got)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("NaturalSort(%q) (-want +got):\n%s", in, diff)
		}
	}

	check([]string{"run2", "run10", "run1"}, []string{"run1", "run2", "run10"})
	check([]string{"b", "a10", "a9", "a"}, []string{"a", "a9", "a10", "b"})
	check([]string{"x-2-b", "x-2-a", "x-10-a"}, []string{"x-2-a", "x-2-b", "x-10-a"})
	// Equal numeric value, different text: stable, deterministic order.
	check([]string{"a1", "a01", "a001"}, []string{"a001", "a01", "a1"})
	check([]string{"10", "9", "100000000000000000000000"}, []string{"9", "10", "100000000000000000000000"})
	check(nil, nil)
}

func TestNaturalLess(t *testing.T) {
	for _, tc := range []struct {
		a, b string
		want bool
	}{
		{"config2", "config10", true},
		{"config10", "config2", false},
		{"config", "config1", true},
		{"same", "same", false},
	} {
		if got := NaturalLess(tc.a, tc.b); got != tc.want {
			t.Errorf("NaturalLess(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
