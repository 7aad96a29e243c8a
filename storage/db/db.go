// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db exports validated benchmark runs and their ground truth
// to a SQL database.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchmath"
	"github.com/dice-group/triplebench/groundtruth"
)

// DB is a high-level interface to a database of benchmark runs. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertRun         *sql.Stmt
	insertGroundTruth *sql.Stmt
	setParameter      *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only sqlite3 is explicitly
// supported; import the sqlite3 subpackage to register it.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// This is used by the sqlite3 package to register a ConnectHook.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

const schema = `
CREATE TABLE IF NOT EXISTS Runs (
	triplestore TEXT NOT NULL,
	dataset TEXT NOT NULL,
	queryID INTEGER NOT NULL,
	clientID TEXT NOT NULL,
	run INTEGER NOT NULL,
	succeeded INTEGER NOT NULL,
	failed INTEGER NOT NULL,
	timeouts INTEGER NOT NULL,
	unknownExceptions INTEGER NOT NULL,
	wrongCodes INTEGER NOT NULL,
	contentLength INTEGER,
	time REAL,
	qps REAL,
	penalizedTime REAL,
	penalizedQPS REAL,
	parsingSucceeded INTEGER NOT NULL,
	numberOfVariables INTEGER,
	numberOfSolutions INTEGER,
	numberOfBindings INTEGER,
	resultParsingTime REAL,
	parsingErrorMessage TEXT,
	wrongResult INTEGER NOT NULL,
	fully_correct_result INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS RunsQuery ON Runs(dataset, queryID, triplestore);
CREATE TABLE IF NOT EXISTS GroundTruth (
	dataset TEXT NOT NULL,
	queryID INTEGER NOT NULL,
	numberOfSolutions INTEGER,
	numberOfBindings INTEGER,
	non_tentris_sparql INTEGER NOT NULL,
	PRIMARY KEY (dataset, queryID)
);
CREATE TABLE IF NOT EXISTS Parameters (
	Name TEXT PRIMARY KEY,
	Value TEXT NOT NULL
);
`

// createTables creates any missing tables on the connection in
// db.sql.
func (db *DB) createTables() error {
	for _, q := range strings.Split(schema, ";") {
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
func (db *DB) prepareStatements() error {
	var err error
	cols := benchfmt.RunColumns
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")")
	if err != nil {
		return err
	}
	db.insertGroundTruth, err = db.sql.Prepare("INSERT OR REPLACE INTO GroundTruth(dataset, queryID, numberOfSolutions, numberOfBindings, non_tentris_sparql) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.setParameter, err = db.sql.Prepare("INSERT OR REPLACE INTO Parameters(Name, Value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// nullInt and nullFloat convert measurements to SQL values. Absent
// measurements are NULL.
func nullInt(i benchmath.Int) interface{} {
	if !i.Valid {
		return nil
	}
	return i.V
}

func nullFloat(f benchmath.Float) interface{} {
	if !f.Valid {
		return nil
	}
	return f.V
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// runArgs returns the values of r in benchfmt.RunColumns order.
func runArgs(r *benchfmt.Run) []interface{} {
	var msg interface{}
	if r.ParsingErrorMessage != "" {
		msg = r.ParsingErrorMessage
	}
	return []interface{}{
		r.Triplestore, r.Dataset, r.QueryID, r.ClientID, r.Run,
		flag(r.Succeeded), r.Failed, r.Timeouts, r.UnknownExceptions, r.WrongCodes,
		nullInt(r.ContentLength), nullFloat(r.Time), nullFloat(r.QPS), nullFloat(r.PenalizedTime), nullFloat(r.PenalizedQPS),
		flag(r.ParsingSucceeded), nullInt(r.NumberOfVariables), nullInt(r.NumberOfSolutions), nullInt(r.NumberOfBindings),
		nullFloat(r.ResultParsingTime), msg,
		flag(r.WrongResult), flag(r.FullyCorrectResult),
	}
}

// inTx runs fn in a transaction that is committed if fn succeeds and
// rolled back otherwise.
func (db *DB) inTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	return fn(tx)
}

// InsertRuns inserts runs in a single transaction. Either all runs are
// inserted or none.
func (db *DB) InsertRuns(ctx context.Context, runs []*benchfmt.Run) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		stmt := tx.StmtContext(ctx, db.insertRun)
		for _, r := range runs {
			if _, err := stmt.ExecContext(ctx, runArgs(r)...); err != nil {
				fileName, line := r.Pos()
				return fmt.Errorf("insert run %s:%d: %w", fileName, line, err)
			}
		}
		return nil
	})
}

// InsertGroundTruth inserts records in a single transaction. A record
// replaces an earlier record of the same query.
func (db *DB) InsertGroundTruth(ctx context.Context, records []groundtruth.Record) error {
	return db.inTx(ctx, func(tx *sql.Tx) error {
		stmt := tx.StmtContext(ctx, db.insertGroundTruth)
		for _, rec := range records {
			if _, err := stmt.ExecContext(ctx, rec.Dataset, rec.QueryID, nullInt(rec.NumberOfSolutions), nullInt(rec.NumberOfBindings), flag(rec.NonTentrisSPARQL)); err != nil {
				return fmt.Errorf("insert ground truth %v: %w", rec.Key(), err)
			}
		}
		return nil
	})
}

// now is a hook for testing
var now = time.Now

// SetParameters records the analysis parameters. The analysis time is
// recorded as "analysis_time" unless params sets it.
func (db *DB) SetParameters(ctx context.Context, params map[string]string) error {
	names := make([]string, 0, len(params)+1)
	for k := range params {
		names = append(names, k)
	}
	if _, ok := params["analysis_time"]; !ok {
		names = append(names, "analysis_time")
	}
	sort.Strings(names)
	return db.inTx(ctx, func(tx *sql.Tx) error {
		stmt := tx.StmtContext(ctx, db.setParameter)
		for _, k := range names {
			v, ok := params[k]
			if !ok {
				v = now().UTC().Format(time.RFC3339)
			}
			if _, err := stmt.ExecContext(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Parameters returns the recorded analysis parameters.
func (db *DB) Parameters(ctx context.Context) (map[string]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Name, Value FROM Parameters")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	params := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		params[k] = v
	}
	return params, rows.Err()
}

// CountRuns returns the number of rows in the Runs table.
func (db *DB) CountRuns(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Runs").Scan(&n)
	return n, err
}

// A MixRate is the query mix rate of one triplestore on one dataset.
type MixRate struct {
	Triplestore string
	Dataset     string
	Mixes       int
	QMpH        sql.NullFloat64
}

// MixRates computes the query mixes per hour of every triplestore and
// dataset in the Runs table. It requires the qmph SQL function
// registered by the sqlite3 subpackage.
func (db *DB) MixRates(ctx context.Context) ([]MixRate, error) {
	rows, err := db.sql.QueryContext(ctx, `
SELECT triplestore, dataset, MAX(run) + 1, qmph(MAX(run) + 1, TOTAL(penalizedTime))
FROM Runs
GROUP BY triplestore, dataset
ORDER BY dataset, triplestore`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var rates []MixRate
	for rows.Next() {
		var m MixRate
		if err := rows.Scan(&m.Triplestore, &m.Dataset, &m.Mixes, &m.QMpH); err != nil {
			return nil, err
		}
		rates = append(rates, m)
	}
	return rates, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertRun, db.insertGroundTruth, db.setParameter} {
		if stmt == nil {
			continue
		}
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
