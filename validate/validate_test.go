// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchmath"
	"github.com/dice-group/triplebench/groundtruth"
)

func opt(v int64) benchmath.Int {
	if v < 0 {
		return benchmath.Int{}
	}
	return benchmath.NewInt(v)
}

func mkRun(nos, nob int64) *benchfmt.Run {
	return &benchfmt.Run{
		Triplestore:       "virtuoso",
		Dataset:           "D",
		QueryID:           7,
		ClientID:          "0",
		Succeeded:         true,
		NumberOfSolutions: opt(nos),
		NumberOfBindings:  opt(nob),
		Time:              benchmath.NewFloat(12),
		QPS:               benchmath.NewFloat(83.3),
		PenalizedTime:     benchmath.NewFloat(12),
	}
}

func mkTruth(nos, nob int64) *groundtruth.Record {
	return &groundtruth.Record{Dataset: "D", QueryID: 7, NumberOfSolutions: opt(nos), NumberOfBindings: opt(nob)}
}

func TestValidate(t *testing.T) {
	v := NewValidator(DefaultPolicy)
	for _, test := range []struct {
		name                string
		runNoS, runNoB      int64
		truth               *groundtruth.Record
		wrong, fullyCorrect bool
	}{
		{"exact", 5, 20, mkTruth(5, 20), false, true},
		{"small result exemption", 3, 7, mkTruth(9, 7), false, false},
		{"small exemption needs exact bindings", 3, 8, mkTruth(9, 7), true, false},
		{"small exemption needs both sides small", 3, 7, mkTruth(11, 7), true, false},
		{"small exemption upper bound", 10, 7, mkTruth(2, 7), false, false},
		{"within tolerance", 11, 100, mkTruth(12, 105), false, false},
		{"bindings outside tolerance", 11, 100, mkTruth(12, 200), true, false},
		{"outside tolerance", 100, 10, mkTruth(50, 20), true, false},
		{"absent run result", -1, -1, mkTruth(50, 20), true, false},
		{"absent run result small", -1, -1, mkTruth(1, 0), true, false},
		{"absent run bindings", 50, -1, mkTruth(50, 20), true, false},
		{"absent ground truth", 5, 20, mkTruth(-1, -1), false, false},
		{"no ground truth record", 5, 20, nil, false, false},
	} {
		t.Run(test.name, func(t *testing.T) {
			got := v.Validate(mkRun(test.runNoS, test.runNoB), test.truth)
			require.Equal(t, Outcome{Wrong: test.wrong, FullyCorrect: test.fullyCorrect}, got)
		})
	}
}

func TestApply(t *testing.T) {
	v := NewValidator(DefaultPolicy)

	r := mkRun(100, 10)
	out := v.Apply(r, mkTruth(50, 20))
	require.True(t, out.Wrong)
	require.True(t, r.WrongResult)
	require.False(t, r.Succeeded)
	require.False(t, r.Time.Valid)
	require.False(t, r.QPS.Valid)
	require.True(t, r.PenalizedTime.Valid, "penalized time is kept")

	// A run that already failed loses its measurements even if its
	// result is right.
	r = mkRun(5, 20)
	r.Succeeded = false
	v.Apply(r, mkTruth(5, 20))
	require.False(t, r.WrongResult)
	require.True(t, r.FullyCorrectResult)
	require.False(t, r.Succeeded)
	require.False(t, r.QPS.Valid)

	r = mkRun(5, 20)
	v.Apply(r, mkTruth(5, 20))
	require.True(t, r.Succeeded)
	require.Equal(t, benchmath.NewFloat(83.3), r.QPS)
}

func TestApplyIdempotent(t *testing.T) {
	v := NewValidator(DefaultPolicy)
	truth := mkTruth(50, 20)
	for _, r := range []*benchfmt.Run{mkRun(100, 10), mkRun(50, 20), mkRun(3, 3), mkRun(-1, -1)} {
		v.Apply(r, truth)
		once := *r
		v.Apply(r, truth)
		require.Equal(t, once, *r)
	}
}

func TestApplyAll(t *testing.T) {
	mk := func(ds string, q int, ts, client string, nos, nob int64) *benchfmt.Run {
		r := mkRun(nos, nob)
		r.Dataset, r.QueryID, r.Triplestore, r.ClientID = ds, q, ts, client
		return r
	}
	runs := []*benchfmt.Run{
		mk("D", 2, "virtuoso", "0", 5, 5),
		mk("D", 1, "virtuoso", "1", 100, 100),
		mk("D", 1, "fuseki", "0", 5, 5),
		mk("E", 1, "fuseki", "0", 1, 0),
		mk("D", 1, "virtuoso", "0", 5, 5),
	}
	truths := []groundtruth.Record{
		{Dataset: "D", QueryID: 1, NumberOfSolutions: opt(5), NumberOfBindings: opt(5)},
		{Dataset: "D", QueryID: 2, NumberOfSolutions: opt(5), NumberOfBindings: opt(5)},
		{Dataset: "E", QueryID: 1, NumberOfSolutions: opt(1), NumberOfBindings: opt(4), NonTentrisSPARQL: true},
	}
	ex := groundtruth.Exclusions(truths)

	got := NewValidator(DefaultPolicy).ApplyAll(runs, truths, ex)
	var keys []string
	for _, r := range got {
		keys = append(keys, r.Dataset+"/"+r.Triplestore+"/"+r.ClientID)
	}
	require.Equal(t, []string{"D/fuseki/0", "D/virtuoso/0", "D/virtuoso/1", "D/virtuoso/0"}, keys)
	require.Equal(t, 2, got[3].QueryID)
	require.True(t, got[1].Succeeded)
	require.True(t, got[2].WrongResult)
	require.False(t, got[2].Succeeded)
}
