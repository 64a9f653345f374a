// Copyright 2026 The Planstat Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rundb exports the runs of a report to a SQL database, so
// that enriched run data can be queried after the report is rendered.
package rundb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/planlab/planstat/props"
)

// DB is a run database. It's safe for concurrent use by multiple
// goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertExport *sql.Stmt
	insertRun    *sql.Stmt
	insertField  *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
//
// The caller must import the database driver.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if driverName == "sqlite3" {
		// Every connection to ":memory:" opens a fresh database.
		db.SetMaxOpenConns(1)
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Exports (
	ExportID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
CREATE TABLE IF NOT EXISTS Runs (
	ExportID BIGINT UNSIGNED,
	RunID VARCHAR(255),
	Domain VARCHAR(255),
	Problem VARCHAR(255),
	Config VARCHAR(255),
	ConfigNick VARCHAR(255),
	PRIMARY KEY (ExportID, RunID),
	FOREIGN KEY (ExportID) REFERENCES Exports(ExportID) ON UPDATE CASCADE ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS RunFields (
	ExportID BIGINT UNSIGNED,
	RunID VARCHAR(255),
	Name VARCHAR(255),
	Value VARCHAR(8192),
	Num DOUBLE,
{{if not .sqlite3}}
	Index (Name(100)),
{{end}}
	PRIMARY KEY (ExportID, RunID, Name),
	FOREIGN KEY (ExportID, RunID) REFERENCES Runs(ExportID, RunID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RunFieldsName ON RunFields(Name);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	q := "INSERT INTO Exports() VALUES ()"
	if driverName == "sqlite3" {
		q = "INSERT INTO Exports DEFAULT VALUES"
	}
	if db.insertExport, err = db.sql.Prepare(q); err != nil {
		return err
	}
	if db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(ExportID, RunID, Domain, Problem, Config, ConfigNick) VALUES (?, ?, ?, ?, ?, ?)"); err != nil {
		return err
	}
	if db.insertField, err = db.sql.Prepare("INSERT INTO RunFields(ExportID, RunID, Name, Value, Num) VALUES (?, ?, ?, ?, ?)"); err != nil {
		return err
	}
	return nil
}

// Export stores every run of s under a new export ID and returns that
// ID. All runs are written in a single transaction.
func (db *DB) Export(ctx context.Context, s props.Store) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	res, err := tx.StmtContext(ctx, db.insertExport).ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	if id, err = res.LastInsertId(); err != nil {
		return 0, err
	}

	insertRun := tx.StmtContext(ctx, db.insertRun)
	insertField := tx.StmtContext(ctx, db.insertField)
	for _, runID := range s.IDs() {
		run := s[runID]
		domain, _ := run.String("domain")
		problem, _ := run.String("problem")
		config, _ := run.String("config")
		nick, _ := run.String("config_nick")
		if _, err = insertRun.ExecContext(ctx, id, runID, domain, problem, config, nick); err != nil {
			return 0, fmt.Errorf("insert run %s: %w", runID, err)
		}
		for _, name := range fieldNames(run) {
			value, num := encodeField(run[name])
			if _, err = insertField.ExecContext(ctx, id, runID, name, value, num); err != nil {
				return 0, fmt.Errorf("insert field %s of run %s: %w", name, runID, err)
			}
		}
	}
	return id, nil
}

var keyFields = map[string]bool{"domain": true, "problem": true, "config": true, "config_nick": true}

func fieldNames(run props.Run) []string {
	var names []string
	for k := range run {
		if !keyFields[k] {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// encodeField returns the textual value of v and its numeric value,
// if it has one.
func encodeField(v any) (string, sql.NullFloat64) {
	switch v := v.(type) {
	case nil:
		return "", sql.NullFloat64{}
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), sql.NullFloat64{Float64: v, Valid: true}
	case string:
		return v, sql.NullFloat64{}
	case bool:
		return strconv.FormatBool(v), sql.NullFloat64{}
	}
	return fmt.Sprint(v), sql.NullFloat64{}
}

// CountRuns returns the number of runs stored under export id.
func (db *DB) CountRuns(ctx context.Context, id int64) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs WHERE ExportID = ?", id).Scan(&n)
	return n, err
}

// Field returns the stored value of field name of a run.
func (db *DB) Field(ctx context.Context, id int64, runID, name string) (value string, num sql.NullFloat64, err error) {
	err = db.sql.QueryRowContext(ctx,
		"SELECT Value, Num FROM RunFields WHERE ExportID = ? AND RunID = ? AND Name = ?",
		id, runID, name).Scan(&value, &num)
	return value, num, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertExport, db.insertRun, db.insertField} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
