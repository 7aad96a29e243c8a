// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package validate checks benchmark runs against the ground truth of
// their query and withdraws the success of runs with a wrong result.
package validate

import (
	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchmath"
	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/groundtruth"
)

// A Policy decides when a result size is acceptable.
type Policy struct {
	// Tolerance bounds the deviation of both the number of
	// solutions and the number of bindings.
	Tolerance benchmath.Tolerance

	// Results whose number of solutions lies in [SmallMin,
	// SmallMax], on both the run and the ground truth side, are
	// accepted if their number of bindings is exactly right,
	// whatever the tolerance says.
	SmallMin, SmallMax int64
}

// DefaultPolicy is a 10% tolerance with exact checks for results of up
// to ten solutions.
var DefaultPolicy = Policy{
	Tolerance: benchmath.DefaultTolerance,
	SmallMin:  0,
	SmallMax:  10,
}

// A Validator applies a Policy to runs.
type Validator struct {
	p Policy
}

// NewValidator returns a Validator for p.
func NewValidator(p Policy) *Validator {
	return &Validator{p}
}

// An Outcome is the verdict on one run.
type Outcome struct {
	// Wrong is set if the run's result size is not acceptable.
	Wrong bool
	// FullyCorrect is set if the run's result size matches the
	// ground truth exactly.
	FullyCorrect bool
}

// Validate judges run against gt. gt may be nil.
//
// A run is wrong if its number of solutions or bindings is not within
// tolerance of the ground truth, unless the small result exemption
// applies. An absent run value is never within tolerance. A query
// without a ground truth result size has nothing to check against, so
// its runs are never wrong.
func (v *Validator) Validate(run *benchfmt.Run, gt *groundtruth.Record) Outcome {
	if gt == nil {
		return Outcome{}
	}
	out := Outcome{
		FullyCorrect: benchmath.Exact(run.NumberOfSolutions, gt.NumberOfSolutions).
			And(benchmath.Exact(run.NumberOfBindings, gt.NumberOfBindings)).Matches(),
	}
	if !gt.NumberOfSolutions.Valid {
		return out
	}

	tol := v.p.Tolerance
	near := tol.Close(run.NumberOfSolutions, gt.NumberOfSolutions).
		And(tol.Close(run.NumberOfBindings, gt.NumberOfBindings))
	if near.Matches() {
		return out
	}

	small := benchmath.InRange(run.NumberOfSolutions, v.p.SmallMin, v.p.SmallMax).
		And(benchmath.InRange(gt.NumberOfSolutions, v.p.SmallMin, v.p.SmallMax)).
		And(benchmath.Exact(run.NumberOfBindings, gt.NumberOfBindings))
	out.Wrong = !small.Matches()
	return out
}

// Apply validates run against gt and records the verdict in run. A
// wrong run no longer counts as succeeded, and a run that did not
// succeed loses its time and QpS measurements.
//
// Apply is idempotent.
func (v *Validator) Apply(run *benchfmt.Run, gt *groundtruth.Record) Outcome {
	out := v.Validate(run, gt)
	run.WrongResult = out.Wrong
	run.FullyCorrectResult = out.FullyCorrect
	run.Succeeded = run.Succeeded && !out.Wrong
	if !run.Succeeded {
		run.Time = benchmath.Float{}
		run.QPS = benchmath.Float{}
	}
	return out
}

// ApplyAll validates a whole run table. Runs of excluded queries are
// dropped first. The remaining runs are validated in place against the
// ground truth record of their query and returned sorted by dataset,
// query ID, triplestore, and client.
func (v *Validator) ApplyAll(runs []*benchfmt.Run, truths []groundtruth.Record, ex groundtruth.ExclusionList) []*benchfmt.Run {
	index := groundtruth.Index(truths)
	out := make([]*benchfmt.Run, 0, len(runs))
	for _, r := range runs {
		if ex.Contains(r.Dataset, r.QueryID) {
			continue
		}
		v.Apply(r, index[groundtruth.QueryKey{Dataset: r.Dataset, QueryID: r.QueryID}])
		out = append(out, r)
	}
	benchproc.SortRuns(out)
	return out
}
