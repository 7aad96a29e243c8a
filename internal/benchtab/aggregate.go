// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchtab aggregates validated runs into per-query statistics
// and per-triplestore totals.
package benchtab

import (
	"math"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchmath"
	"github.com/dice-group/triplebench/benchproc"
)

// StatColumns are the measurements summarized by Describe.
var StatColumns = []string{
	benchfmt.ColQPS, benchfmt.ColPenalizedQPS, benchfmt.ColTime, benchfmt.ColPenalizedTime,
}

// StatSuffixes name the statistics of each column in StatColumns, in
// the order of the aggregated table.
var StatSuffixes = []string{"mean", "std", "min", "percentile_25", "median", "percentile_75", "max"}

// maxColumns are aggregated by their largest present value.
var maxColumns = []string{
	benchfmt.ColContentLength, benchfmt.ColNumberOfSolutions, benchfmt.ColNumberOfBindings,
	benchfmt.ColWrongResult, benchfmt.ColFullyCorrectResult, benchfmt.ColParsingSucceeded,
}

// sumColumns are aggregated by their sum.
var sumColumns = []string{
	benchfmt.ColSucceeded, benchfmt.ColFailed, benchfmt.ColTimeouts,
	benchfmt.ColUnknownExceptions, benchfmt.ColWrongCodes,
}

var keyColumns = []string{benchfmt.ColTriplestore, benchfmt.ColDataset, benchfmt.ColQueryID, benchfmt.ColClientID}

// A Row aggregates all runs of one triplestore executing one query
// for one client.
type Row struct {
	benchproc.Key

	QPS, PenalizedQPS, Time, PenalizedTime benchmath.Summary

	// Result sizes are NaN if no run reported them.
	ContentLength     float64
	NumberOfSolutions float64
	NumberOfBindings  float64

	// WrongResult is only set if no run succeeded.
	WrongResult        bool
	FullyCorrectResult bool
	ParsingSucceeded   bool

	Succeeded, Failed, Timeouts, UnknownExceptions, WrongCodes int64
}

// Stat returns the summary of the measurement column col, which must
// be one of StatColumns.
func (r *Row) Stat(col string) *benchmath.Summary {
	switch col {
	case benchfmt.ColQPS:
		return &r.QPS
	case benchfmt.ColPenalizedQPS:
		return &r.PenalizedQPS
	case benchfmt.ColTime:
		return &r.Time
	case benchfmt.ColPenalizedTime:
		return &r.PenalizedTime
	}
	panic("unknown statistics column " + col)
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// runTable converts runs to a go-gg table with one column per
// aggregated measurement. Absent values are NaN.
func runTable(runs []*benchfmt.Run) *table.Table {
	n := len(runs)
	ts, ds, client := make([]string, n), make([]string, n), make([]string, n)
	qid := make([]int, n)
	floatCols := append(append(append([]string(nil), StatColumns...), maxColumns...), sumColumns...)
	floats := make(map[string][]float64)
	for _, col := range floatCols {
		floats[col] = make([]float64, n)
	}
	for i, r := range runs {
		ts[i], ds[i], qid[i], client[i] = r.Triplestore, r.Dataset, r.QueryID, r.ClientID
		floats[benchfmt.ColQPS][i] = r.QPS.Float64()
		floats[benchfmt.ColPenalizedQPS][i] = r.PenalizedQPS.Float64()
		floats[benchfmt.ColTime][i] = r.Time.Float64()
		floats[benchfmt.ColPenalizedTime][i] = r.PenalizedTime.Float64()
		floats[benchfmt.ColContentLength][i] = r.ContentLength.Float64()
		floats[benchfmt.ColNumberOfSolutions][i] = r.NumberOfSolutions.Float64()
		floats[benchfmt.ColNumberOfBindings][i] = r.NumberOfBindings.Float64()
		floats[benchfmt.ColWrongResult][i] = flag(r.WrongResult)
		floats[benchfmt.ColFullyCorrectResult][i] = flag(r.FullyCorrectResult)
		floats[benchfmt.ColParsingSucceeded][i] = flag(r.ParsingSucceeded)
		floats[benchfmt.ColSucceeded][i] = flag(r.Succeeded)
		floats[benchfmt.ColFailed][i] = float64(r.Failed)
		floats[benchfmt.ColTimeouts][i] = float64(r.Timeouts)
		floats[benchfmt.ColUnknownExceptions][i] = float64(r.UnknownExceptions)
		floats[benchfmt.ColWrongCodes][i] = float64(r.WrongCodes)
	}

	var b table.Builder
	b.Add(benchfmt.ColTriplestore, ts).Add(benchfmt.ColDataset, ds)
	b.Add(benchfmt.ColQueryID, qid).Add(benchfmt.ColClientID, client)
	for _, col := range floatCols {
		b.Add(col, floats[col])
	}
	return b.Done()
}

// aggDescribe summarizes each of cols with Describe. The output
// columns are named "<col>_<suffix>" for every suffix in StatSuffixes,
// plus "<col>_count" for the number of present values.
func aggDescribe(cols ...string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		for _, col := range cols {
			outs := make([][]float64, len(StatSuffixes))
			var counts []int
			for _, gid := range input.Tables() {
				xs := input.Table(gid).MustColumn(col).([]float64)
				s := benchmath.NewSample(xs).Describe()
				for i, v := range []float64{s.Mean, s.StdDev, s.Min, s.P25, s.Median, s.P75, s.Max} {
					outs[i] = append(outs[i], v)
				}
				counts = append(counts, s.N)
			}
			for i, suffix := range StatSuffixes {
				b.Add(col+"_"+suffix, outs[i])
			}
			b.Add(col+"_count", counts)
		}
	}
}

// aggNaN applies fn to the present values of each of cols. fn is not
// called for groups without present values; their result is NaN.
func aggNaN(fn func(xs []float64) float64, cols ...string) ggstat.Aggregator {
	return func(input table.Grouping, b *table.Builder) {
		for _, col := range cols {
			out := make([]float64, 0, len(input.Tables()))
			for _, gid := range input.Tables() {
				s := benchmath.NewSample(input.Table(gid).MustColumn(col).([]float64))
				if len(s.Values) == 0 {
					out = append(out, math.NaN())
					continue
				}
				out = append(out, fn(s.Values))
			}
			b.Add(col, out)
		}
	}
}

func maxOf(xs []float64) float64 { return xs[len(xs)-1] }

func sumOf(xs []float64) float64 {
	var s float64
	for _, x := range xs {
		s += x
	}
	return s
}

// Aggregate groups runs by triplestore, dataset, query, and client and
// summarizes each group. Rows are sorted by benchproc.Key.
func Aggregate(runs []*benchfmt.Run) []Row {
	if len(runs) == 0 {
		return nil
	}
	g := ggstat.Agg(keyColumns...)(
		aggDescribe(StatColumns...),
		aggNaN(maxOf, maxColumns...),
		aggNaN(sumOf, sumColumns...),
	).F(runTable(runs))
	t := table.Flatten(g)

	col := func(name string) []float64 { return t.MustColumn(name).([]float64) }
	count := func(name string, i int) int64 {
		v := col(name)[i]
		if math.IsNaN(v) {
			return 0
		}
		return int64(v)
	}
	ts := t.MustColumn(benchfmt.ColTriplestore).([]string)
	ds := t.MustColumn(benchfmt.ColDataset).([]string)
	qid := t.MustColumn(benchfmt.ColQueryID).([]int)
	client := t.MustColumn(benchfmt.ColClientID).([]string)

	rows := make([]Row, t.Len())
	for i := range rows {
		r := &rows[i]
		r.Key = benchproc.Key{Dataset: ds[i], QueryID: qid[i], Triplestore: ts[i], ClientID: client[i]}
		for _, sc := range StatColumns {
			s := r.Stat(sc)
			s.N = t.MustColumn(sc + "_count").([]int)[i]
			s.Mean = col(sc + "_mean")[i]
			s.StdDev = col(sc + "_std")[i]
			s.Min = col(sc + "_min")[i]
			s.P25 = col(sc + "_percentile_25")[i]
			s.Median = col(sc + "_median")[i]
			s.P75 = col(sc + "_percentile_75")[i]
			s.Max = col(sc + "_max")[i]
		}
		r.ContentLength = col(benchfmt.ColContentLength)[i]
		r.NumberOfSolutions = col(benchfmt.ColNumberOfSolutions)[i]
		r.NumberOfBindings = col(benchfmt.ColNumberOfBindings)[i]
		r.Succeeded = count(benchfmt.ColSucceeded, i)
		r.Failed = count(benchfmt.ColFailed, i)
		r.Timeouts = count(benchfmt.ColTimeouts, i)
		r.UnknownExceptions = count(benchfmt.ColUnknownExceptions, i)
		r.WrongCodes = count(benchfmt.ColWrongCodes, i)
		r.WrongResult = col(benchfmt.ColWrongResult)[i] > 0 && r.Succeeded == 0
		r.FullyCorrectResult = col(benchfmt.ColFullyCorrectResult)[i] > 0
		r.ParsingSucceeded = col(benchfmt.ColParsingSucceeded)[i] > 0
	}
	sortRows(rows)
	return rows
}
