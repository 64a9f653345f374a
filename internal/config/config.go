// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads the planstat configuration file.
//
// A configuration file is YAML with two sections, one per
// subcommand:
//
//	report:
//	  attributes: [coverage, expansions, "score_*"]
//	  filter_config: [lama, ff]
//	  format: html
//	  output: report.html
//	checkout:
//	  repo: ~/src/downward
//	  revisions:
//	    - {part: search, rev: issue324, nick: new}
//	    - {part: search, rev: default, nick: base}
//
// Command-line flags override values from the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the contents of a configuration file.
type Config struct {
	Report   Report   `yaml:"report"`
	Checkout Checkout `yaml:"checkout"`
}

// Report configures the report subcommand.
type Report struct {
	Attributes       []string `yaml:"attributes"`
	FilterConfig     []string `yaml:"filter_config"`
	FilterConfigNick []string `yaml:"filter_config_nick"`
	FilterDomain     []string `yaml:"filter_domain"`

	// Format is one of "text", "csv" or "html".
	Format string `yaml:"format"`
	// Output is the report file; empty or "-" means stdout.
	Output string `yaml:"output"`
	// Chart, if set, is a PNG or SVG file receiving a bar chart of
	// each attribute.
	Chart string `yaml:"chart"`

	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`

	// Upload is a gs://bucket/object URL the rendered report is
	// copied to.
	Upload      string `yaml:"upload"`
	Credentials string `yaml:"credentials"`
}

// Checkout configures the checkout subcommand.
type Checkout struct {
	Repo        string     `yaml:"repo"`
	CacheDir    string     `yaml:"cache_dir"`
	Revisions   []Revision `yaml:"revisions"`
	MakeOptions []string   `yaml:"make_options"`
	Jobs        int        `yaml:"jobs"`
}

// A Revision names one planner part to check out and build.
type Revision struct {
	Part string `yaml:"part"`
	Rev  string `yaml:"rev"`
	Nick string `yaml:"nick"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Report: Report{
			Format:   "text",
			Output:   "-",
			DBDriver: "sqlite3",
		},
		Checkout: Checkout{
			Jobs: 4,
		},
	}
}

// Load reads the configuration file at path on top of Default.
// Unknown keys are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Checkout.Repo = expandHome(cfg.Checkout.Repo)
	cfg.Checkout.CacheDir = expandHome(cfg.Checkout.CacheDir)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports values that no subcommand accepts.
func (c *Config) Validate() error {
	switch c.Report.Format {
	case "text", "csv", "html":
	default:
		return fmt.Errorf("unknown report format %q", c.Report.Format)
	}
	for i, r := range c.Checkout.Revisions {
		if r.Part == "" {
			return fmt.Errorf("checkout revision %d: missing part", i)
		}
	}
	if c.Checkout.Jobs < 0 {
		return fmt.Errorf("negative checkout jobs %d", c.Checkout.Jobs)
	}
	return nil
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
