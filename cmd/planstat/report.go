// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/planlab/planstat/cmd/planstat/internal/chart"
	"github.com/planlab/planstat/cmd/planstat/internal/publish"
	"github.com/planlab/planstat/cmd/planstat/internal/render"
	"github.com/planlab/planstat/internal/config"
	"github.com/planlab/planstat/planproc"
	"github.com/planlab/planstat/planreport"
	"github.com/planlab/planstat/props"
	"github.com/planlab/planstat/rundb"
)

func newReportCmd(c *command) *cobra.Command {
	var (
		flags   config.Report
		rawRuns string
	)
	cmd := &cobra.Command{
		Use:   "report [flags] properties.json...",
		Short: "Tabulate attributes of a complete experiment",
		Args:  cobra.MinimumNArgs(1),
	}
	f := cmd.Flags()
	f.StringSliceVarP(&flags.Attributes, "attributes", "a", nil, "tabulate `attrs` (glob patterns allowed); default all numeric fields")
	f.StringSliceVar(&flags.FilterConfig, "filter-config", nil, "keep only `configs`, in this order")
	f.StringSliceVar(&flags.FilterConfigNick, "filter-config-nick", nil, "keep only configs with these `nicks`, in this order")
	f.StringSliceVar(&flags.FilterDomain, "filter-domain", nil, "keep only `domains`")
	f.StringVarP(&flags.Format, "format", "f", "", "output `format`: "+strings.Join(render.Formats, ", "))
	f.StringVarP(&flags.Output, "output", "o", "", "write report to `file` (- for stdout)")
	f.StringVar(&flags.Chart, "chart", "", "draw a bar chart per attribute next to `file` (.png, .svg, .pdf)")
	f.StringVar(&flags.DBDriver, "db-driver", "", "database `driver` for --db (sqlite3 or mysql)")
	f.StringVar(&flags.DBDSN, "db", "", "export the runs to the database at `dsn`")
	f.StringVar(&flags.Upload, "upload", "", "copy the report to `gs://bucket/object`")
	f.StringVar(&flags.Credentials, "credentials", "", "Cloud Storage service account key `file`")
	f.StringVar(&rawRuns, "write-props", "", "write the enriched runs as a properties `file`")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		opts := c.cfg.Report
		override(cmd, "attributes", &opts.Attributes, flags.Attributes)
		override(cmd, "filter-config", &opts.FilterConfig, flags.FilterConfig)
		override(cmd, "filter-config-nick", &opts.FilterConfigNick, flags.FilterConfigNick)
		override(cmd, "filter-domain", &opts.FilterDomain, flags.FilterDomain)
		override(cmd, "format", &opts.Format, flags.Format)
		override(cmd, "output", &opts.Output, flags.Output)
		override(cmd, "chart", &opts.Chart, flags.Chart)
		override(cmd, "db-driver", &opts.DBDriver, flags.DBDriver)
		override(cmd, "db", &opts.DBDSN, flags.DBDSN)
		override(cmd, "upload", &opts.Upload, flags.Upload)
		override(cmd, "credentials", &opts.Credentials, flags.Credentials)
		return c.report(cmd.Context(), opts, args, rawRuns)
	}
	return cmd
}

func (c *command) report(ctx context.Context, opts config.Report, paths []string, rawRuns string) error {
	files := props.Files{Paths: paths}
	store, err := files.Load()
	if err != nil {
		return err
	}
	c.logger.Debug("loaded runs", zap.Int("runs", len(store)), zap.Strings("files", paths))

	r := planreport.New(planreport.Options{
		Attributes: opts.Attributes,
		Filter: &planproc.Filter{
			Configs:     opts.FilterConfig,
			ConfigNicks: opts.FilterConfigNick,
			Domains:     opts.FilterDomain,
		},
		Order: planproc.OrderHints{
			Configs: opts.FilterConfig,
			Nicks:   opts.FilterConfigNick,
		},
		Logger: c.logger,
	})
	data, err := r.Scan(store)
	if err != nil {
		return err
	}

	tables := data.Tables()
	if w := data.Warnings(); len(w.Rows) > 0 {
		tables = append(tables, w)
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, opts.Format, reportTitle(paths), tables); err != nil {
		return err
	}
	if opts.Output == "" || opts.Output == "-" {
		if _, err := c.stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else {
		if err := os.WriteFile(opts.Output, buf.Bytes(), 0666); err != nil {
			return err
		}
		c.logger.Info("wrote report", zap.String("file", opts.Output))
	}

	if opts.Chart != "" {
		charts, err := chart.Write(opts.Chart, data.Tables())
		if err != nil {
			return err
		}
		c.logger.Info("wrote charts", zap.Strings("files", charts))
	}

	if rawRuns != "" {
		if err := writeProps(rawRuns, data.Store); err != nil {
			return err
		}
	}

	if opts.DBDSN != "" {
		if err := c.export(ctx, opts.DBDriver, opts.DBDSN, data.Store); err != nil {
			return err
		}
	}

	if opts.Upload != "" {
		name := opts.Output
		if name == "" || name == "-" {
			name = "report." + extension(opts.Format)
		}
		loc, err := publish.ParseURL(opts.Upload, name)
		if err != nil {
			return err
		}
		u, err := publish.NewUploader(ctx, opts.Credentials)
		if err != nil {
			return err
		}
		defer u.Close()
		if err := u.Upload(ctx, loc, bytes.NewReader(buf.Bytes())); err != nil {
			return err
		}
		c.logger.Info("uploaded report", zap.Stringer("location", loc))
	}
	return nil
}

func (c *command) export(ctx context.Context, driver, dsn string, s props.Store) error {
	db, err := rundb.OpenSQL(driver, dsn)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer db.Close()
	id, err := db.Export(ctx, s)
	if err != nil {
		return err
	}
	c.logger.Info("exported runs", zap.Int64("export", id), zap.Int("runs", len(s)))
	return nil
}

func writeProps(path string, s props.Store) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := props.Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// reportTitle names a report after its properties files.
func reportTitle(paths []string) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
	}
	return strings.Join(names, ", ")
}

func extension(format string) string {
	if format == "text" {
		return "txt"
	}
	return format
}
