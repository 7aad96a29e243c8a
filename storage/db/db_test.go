// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db_test

import (
	"context"
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchmath"
	"github.com/dice-group/triplebench/groundtruth"
	. "github.com/dice-group/triplebench/storage/db"
	"github.com/dice-group/triplebench/storage/db/dbtest"
)

func testRuns() []*benchfmt.Run {
	return []*benchfmt.Run{
		{
			Triplestore: "fuseki", Dataset: "swdf", QueryID: 1, ClientID: "0", Run: 0,
			Succeeded: true, ContentLength: benchmath.NewInt(120),
			Time: benchmath.NewFloat(100), QPS: benchmath.NewFloat(10),
			PenalizedTime: benchmath.NewFloat(100), PenalizedQPS: benchmath.NewFloat(10),
			ParsingSucceeded: true, NumberOfSolutions: benchmath.NewInt(3), NumberOfBindings: benchmath.NewInt(6),
			FullyCorrectResult: true,
		},
		{
			Triplestore: "fuseki", Dataset: "swdf", QueryID: 1, ClientID: "0", Run: 1,
			Failed: 1, PenalizedTime: benchmath.NewFloat(1700), PenalizedQPS: benchmath.NewFloat(1),
			ParsingErrorMessage: "unexpected EOF", WrongResult: true,
		},
	}
}

func TestInsertRuns(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	require.NoError(t, db.InsertRuns(ctx, testRuns()))
	n, err := db.CountRuns(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	var (
		succeeded, wrong int
		qps              sql.NullFloat64
		nos              sql.NullInt64
		msg              sql.NullString
	)
	row := DBSQL(db).QueryRow("SELECT succeeded, wrongResult, qps, numberOfSolutions, parsingErrorMessage FROM Runs WHERE run = 0")
	require.NoError(t, row.Scan(&succeeded, &wrong, &qps, &nos, &msg))
	require.Equal(t, 1, succeeded)
	require.Equal(t, 0, wrong)
	require.Equal(t, sql.NullFloat64{Float64: 10, Valid: true}, qps)
	require.Equal(t, sql.NullInt64{Int64: 3, Valid: true}, nos)
	require.False(t, msg.Valid)

	row = DBSQL(db).QueryRow("SELECT succeeded, wrongResult, qps, numberOfSolutions, parsingErrorMessage FROM Runs WHERE run = 1")
	require.NoError(t, row.Scan(&succeeded, &wrong, &qps, &nos, &msg))
	require.Equal(t, 0, succeeded)
	require.Equal(t, 1, wrong)
	require.False(t, qps.Valid)
	require.False(t, nos.Valid)
	require.Equal(t, "unexpected EOF", msg.String)
}

func TestInsertRunsCanceled(t *testing.T) {
	db := dbtest.NewDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Error(t, db.InsertRuns(ctx, testRuns()))

	n, err := db.CountRuns(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestInsertGroundTruth(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	require.NoError(t, db.InsertGroundTruth(ctx, []groundtruth.Record{
		{Dataset: "swdf", QueryID: 1, NumberOfSolutions: benchmath.NewInt(3), NumberOfBindings: benchmath.NewInt(6)},
		{Dataset: "swdf", QueryID: 2},
	}))
	// Replaces the first record.
	require.NoError(t, db.InsertGroundTruth(ctx, []groundtruth.Record{
		{Dataset: "swdf", QueryID: 1, NumberOfSolutions: benchmath.NewInt(4), NumberOfBindings: benchmath.NewInt(8), NonTentrisSPARQL: true},
	}))

	var count int
	require.NoError(t, DBSQL(db).QueryRow("SELECT COUNT(*) FROM GroundTruth").Scan(&count))
	require.Equal(t, 2, count)

	var nos sql.NullInt64
	var flag int
	require.NoError(t, DBSQL(db).QueryRow("SELECT numberOfSolutions, non_tentris_sparql FROM GroundTruth WHERE queryID = 1").Scan(&nos, &flag))
	require.Equal(t, int64(4), nos.Int64)
	require.Equal(t, 1, flag)
	require.NoError(t, DBSQL(db).QueryRow("SELECT numberOfSolutions FROM GroundTruth WHERE queryID = 2").Scan(&nos))
	require.False(t, nos.Valid)
}

func TestSetParameters(t *testing.T) {
	SetNow(time.Unix(0, 0))
	defer SetNow(time.Time{})
	ctx := context.Background()
	db := dbtest.NewDB(t)

	require.NoError(t, db.SetParameters(ctx, map[string]string{"rtol": "0.1", "reference": "fuseki"}))
	require.NoError(t, db.SetParameters(ctx, map[string]string{"rtol": "0.2"}))
	params, err := db.Parameters(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{
		"analysis_time": "1970-01-01T00:00:00Z",
		"reference":     "fuseki",
		"rtol":          "0.2",
	}, params)

	host := HostParameters()
	require.NotEmpty(t, host["host_arch"])
	require.NoError(t, db.SetParameters(ctx, host))
}

func TestMixRates(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	runs := testRuns()
	runs = append(runs, &benchfmt.Run{Triplestore: "virtuoso", Dataset: "swdf", QueryID: 1, ClientID: "0"})
	require.NoError(t, db.InsertRuns(ctx, runs))

	rates, err := db.MixRates(ctx)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	require.Equal(t, "fuseki", rates[0].Triplestore)
	require.Equal(t, 2, rates[0].Mixes)
	require.True(t, rates[0].QMpH.Valid)
	require.InDelta(t, 3600*1000*2/1800.0, rates[0].QMpH.Float64, 1e-9)

	// No penalized time.
	require.Equal(t, "virtuoso", rates[1].Triplestore)
	require.Equal(t, 1, rates[1].Mixes)
	require.False(t, rates[1].QMpH.Valid && !math.IsNaN(rates[1].QMpH.Float64))
}
