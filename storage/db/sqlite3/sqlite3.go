// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for
// github.com/dice-group/triplebench/storage/db.OpenSQL. It must be
// imported to use the sqlite3 driver.
package sqlite3

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"

	"github.com/dice-group/triplebench/internal/benchtab"
	"github.com/dice-group/triplebench/storage/db"
)

func init() {
	db.RegisterOpenHook("sqlite3", func(d *sql.DB) error {
		// An in-memory database lives as long as its only
		// connection.
		d.SetMaxOpenConns(1)
		d.Driver().(*sqlite3.SQLiteDriver).ConnectHook = func(c *sqlite3.SQLiteConn) error {
			return c.RegisterFunc("qmph", qmph, true)
		}
		return nil
	})
}

func qmph(mixes int64, penalizedTime float64) float64 {
	return benchtab.QMpH(int(mixes), penalizedTime)
}
