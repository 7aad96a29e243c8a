// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"math"
	"sort"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"

	"github.com/dice-group/triplebench/benchfmt"
)

// A Total summarizes the benchmark of one triplestore on one dataset.
type Total struct {
	Triplestore string
	Dataset     string

	// Mixes is the number of query mixes, one more than the
	// largest run number.
	Mixes int

	// PenalizedTime is the summed penalized time of all runs in
	// milliseconds.
	PenalizedTime float64

	// QMpH is the number of query mixes per hour, computed from
	// the penalized time. It is NaN if no time was recorded.
	QMpH float64

	// MeanQPS is the mean over all queries of their mean QpS. Queries
	// without a successful run do not count.
	MeanQPS float64

	Succeeded, Failed, Timeouts int64
}

// QMpH returns the query mixes per hour of mixes mixes that took
// penalizedTime milliseconds in total.
func QMpH(mixes int, penalizedTime float64) float64 {
	if penalizedTime <= 0 || math.IsNaN(penalizedTime) {
		return math.NaN()
	}
	return 3600 * 1000 * float64(mixes) / penalizedTime
}

// Totals computes the Total of every triplestore and dataset in runs.
// rows must be the aggregation of runs. Totals are sorted by dataset
// and triplestore.
func Totals(runs []*benchfmt.Run, rows []Row) []Total {
	if len(runs) == 0 {
		return nil
	}
	n := len(runs)
	ts, ds := make([]string, n), make([]string, n)
	run, pt := make([]float64, n), make([]float64, n)
	succ, failed, timeouts := make([]float64, n), make([]float64, n), make([]float64, n)
	for i, r := range runs {
		ts[i], ds[i] = r.Triplestore, r.Dataset
		run[i] = float64(r.Run)
		pt[i] = r.PenalizedTime.Float64()
		succ[i] = flag(r.Succeeded)
		failed[i] = float64(r.Failed)
		timeouts[i] = float64(r.Timeouts)
	}
	var b table.Builder
	b.Add(benchfmt.ColTriplestore, ts).Add(benchfmt.ColDataset, ds).Add(benchfmt.ColRun, run)
	b.Add(benchfmt.ColPenalizedTime, pt).Add(benchfmt.ColSucceeded, succ)
	b.Add(benchfmt.ColFailed, failed).Add(benchfmt.ColTimeouts, timeouts)

	g := ggstat.Agg(benchfmt.ColTriplestore, benchfmt.ColDataset)(
		aggNaN(maxOf, benchfmt.ColRun),
		aggNaN(sumOf, benchfmt.ColPenalizedTime, benchfmt.ColSucceeded, benchfmt.ColFailed, benchfmt.ColTimeouts),
	).F(b.Done())
	t := table.Flatten(g)

	type tsds struct{ ts, ds string }
	means := make(map[tsds][]float64)
	for _, r := range rows {
		k := tsds{r.Triplestore, r.Dataset}
		if !math.IsNaN(r.QPS.Mean) {
			means[k] = append(means[k], r.QPS.Mean)
		}
	}

	col := func(name string) []float64 { return t.MustColumn(name).([]float64) }
	ots := t.MustColumn(benchfmt.ColTriplestore).([]string)
	ods := t.MustColumn(benchfmt.ColDataset).([]string)
	out := make([]Total, t.Len())
	for i := range out {
		o := &out[i]
		o.Triplestore, o.Dataset = ots[i], ods[i]
		o.Mixes = int(col(benchfmt.ColRun)[i]) + 1
		o.PenalizedTime = col(benchfmt.ColPenalizedTime)[i]
		o.QMpH = QMpH(o.Mixes, o.PenalizedTime)
		o.Succeeded = int64(col(benchfmt.ColSucceeded)[i])
		o.Failed = int64(col(benchfmt.ColFailed)[i])
		o.Timeouts = int64(col(benchfmt.ColTimeouts)[i])
		o.MeanQPS = math.NaN()
		if xs := means[tsds{o.Triplestore, o.Dataset}]; len(xs) > 0 {
			o.MeanQPS = stats.Mean(xs)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Dataset != out[j].Dataset {
			return out[i].Dataset < out[j].Dataset
		}
		return out[i].Triplestore < out[j].Triplestore
	})
	return out
}

// A RelCell is the mean QpS of one triplestore on one query relative
// to a reference triplestore.
type RelCell struct {
	Dataset     string
	QueryID     int
	Triplestore string

	// Ratio is NaN if either triplestore has no positive mean QpS
	// for the query.
	Ratio float64
}

// Log10 returns the decimal logarithm of c.Ratio.
func (c RelCell) Log10() float64 {
	return math.Log10(c.Ratio)
}

// Relative compares every triplestore's mean QpS on dataset to that of
// reference, query by query. Only the first client of each
// triplestore and query is considered. Cells are in row order.
func Relative(rows []Row, dataset, reference string) []RelCell {
	type qts struct {
		q  int
		ts string
	}
	norms := make(map[int]float64)
	seen := make(map[qts]bool)
	for _, r := range rows {
		if r.Dataset != dataset || r.Triplestore != reference {
			continue
		}
		if _, ok := norms[r.QueryID]; !ok {
			norms[r.QueryID] = r.QPS.Mean
		}
	}

	var out []RelCell
	for _, r := range rows {
		k := qts{r.QueryID, r.Triplestore}
		if r.Dataset != dataset || seen[k] {
			continue
		}
		seen[k] = true
		c := RelCell{Dataset: dataset, QueryID: r.QueryID, Triplestore: r.Triplestore, Ratio: math.NaN()}
		norm, ok := norms[r.QueryID]
		if ok && norm > 0 && r.QPS.Mean > 0 {
			c.Ratio = r.QPS.Mean / norm
		}
		out = append(out, c)
	}
	return out
}
