// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package publish

import (
	"strings"
	"testing"
)

func TestParseURL(t *testing.T) {
	for _, test := range []struct {
		url, name string
		want      Location
	}{
		{"gs://lab/reports/exp1.html", "out.html", Location{"lab", "reports/exp1.html"}},
		{"gs://lab/reports/", "tmp/exp1.html", Location{"lab", "reports/exp1.html"}},
		{"gs://lab", "exp1.csv", Location{"lab", "exp1.csv"}},
	} {
		got, err := ParseURL(test.url, test.name)
		if err != nil {
			t.Errorf("ParseURL(%q, %q): %v", test.url, test.name, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseURL(%q, %q) = %v, want %v", test.url, test.name, got, test.want)
		}
	}

	for _, url := range []string{"s3://lab/x", "gs:///x", "gs://lab/"} {
		if _, err := ParseURL(url, ""); err == nil {
			t.Errorf("ParseURL(%q): want error", url)
		}
	}
}

func TestLocationString(t *testing.T) {
	if got, want := (Location{"lab", "a/b.html"}).String(), "gs://lab/a/b.html"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestContentType(t *testing.T) {
	for name, want := range map[string]string{
		"report.txt":  "text/plain",
		"report":      "text/plain",
		"report.csv":  "text/csv",
		"report.html": "text/html",
	} {
		if got := ContentType(name); !strings.HasPrefix(got, want) {
			t.Errorf("ContentType(%q) = %q, want prefix %q", name, got, want)
		}
	}
}
