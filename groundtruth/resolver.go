// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package groundtruth decides, for every query of a benchmark, the
// result size that every triplestore should have produced.
//
// The decision is a priority cascade. If all succeeding runs agree,
// their answer is the ground truth. Otherwise the reference
// triplestore's answer wins. Without a reference answer, the most
// common answer among triplestores wins, with each triplestore
// contributing one answer and the triplestore under test contributing
// only its newest version.
//
// The Resolver also flags queries where the triplestore under test
// answers with an empty result while the ground truth is not empty.
// Such queries expose a different reading of SPARQL semantics rather
// than a bug and are collected in an ExclusionList.
package groundtruth

import (
	"fmt"
	"sort"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchmath"
)

// Config names the triplestores that play a special role in
// resolution.
type Config struct {
	// Reference is the exact triplestore name whose answer settles
	// disagreements.
	Reference string

	// UnderTest is the name prefix of the triplestore family being
	// evaluated. Its versions are reduced to the newest one.
	UnderTest string
}

// DefaultConfig is the configuration of the Tentris evaluation.
var DefaultConfig = Config{Reference: "fuseki", UnderTest: "tentris"}

func (c Config) isUnderTest(name string) bool {
	if c.UnderTest == "" {
		return false
	}
	family, _ := Family(name, c.UnderTest)
	return family == c.UnderTest
}

// A Record is the ground truth of one query.
type Record struct {
	Dataset string
	QueryID int

	// NumberOfSolutions and NumberOfBindings are absent only if no
	// triplestore reported a result for the query.
	NumberOfSolutions benchmath.Int
	NumberOfBindings  benchmath.Int

	// NonTentrisSPARQL is set if the triplestore under test answered
	// with an empty result while the ground truth is not empty.
	NonTentrisSPARQL bool
}

// Key returns the query r is the ground truth of.
func (r *Record) Key() QueryKey {
	return QueryKey{r.Dataset, r.QueryID}
}

// isEmpty reports whether a result size is the harness's encoding of
// an empty result: one solution with no bindings.
func isEmpty(nos, nob benchmath.Int) bool {
	return nos.Valid && nos.V == 1 && nob.Valid && nob.V == 0
}

// A QueryKey identifies a query. Query IDs are only unique within a
// dataset.
type QueryKey struct {
	Dataset string
	QueryID int
}

func (k QueryKey) String() string {
	return fmt.Sprintf("%s/%d", k.Dataset, k.QueryID)
}

// Less orders query keys by dataset and then query ID.
func (k QueryKey) Less(o QueryKey) bool {
	if k.Dataset != o.Dataset {
		return k.Dataset < o.Dataset
	}
	return k.QueryID < o.QueryID
}

// A Resolver computes ground truth records.
type Resolver struct {
	cfg Config
}

// NewResolver returns a Resolver using cfg.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg}
}

// Resolve computes the ground truth of one query from all runs of a
// benchmark. all may contain runs of other queries.
func (rv *Resolver) Resolve(all []*benchfmt.Run, dataset string, queryID int) Record {
	var runs []*benchfmt.Run
	for _, r := range all {
		if r.Dataset == dataset && r.QueryID == queryID {
			runs = append(runs, r)
		}
	}
	return rv.resolve(runs, QueryKey{dataset, queryID}, triplestoreOrder(all))
}

// ResolveAll computes one ground truth record for every query that
// appears in all, sorted by dataset and query ID.
func (rv *Resolver) ResolveAll(all []*benchfmt.Run) []Record {
	order := triplestoreOrder(all)
	groups := make(map[QueryKey][]*benchfmt.Run)
	var keys []QueryKey
	for _, r := range all {
		k := QueryKey{r.Dataset, r.QueryID}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], r)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, rv.resolve(groups[k], k, order))
	}
	return out
}

// triplestoreOrder returns the distinct triplestore names of runs in
// order of first appearance.
func triplestoreOrder(runs []*benchfmt.Run) []string {
	seen := make(map[string]bool)
	var order []string
	for _, r := range runs {
		if !seen[r.Triplestore] {
			seen[r.Triplestore] = true
			order = append(order, r.Triplestore)
		}
	}
	return order
}

func (rv *Resolver) resolve(runs []*benchfmt.Run, k QueryKey, order []string) Record {
	rec := Record{Dataset: k.Dataset, QueryID: k.QueryID}

	// Only succeeding runs with a parsed result take part.
	var reporting []*benchfmt.Run
	for _, r := range runs {
		if r.Succeeded && r.NumberOfSolutions.Valid {
			reporting = append(reporting, r)
		}
	}
	if len(reporting) == 0 {
		return rec
	}

	if nos, nob, ok := consensus(reporting); ok {
		rec.NumberOfSolutions, rec.NumberOfBindings = nos, nob
		return rec
	}

	// The runs disagree. Only the newest version of the triplestore
	// under test has a say.
	var versions []string
	for _, name := range triplestoreOrder(reporting) {
		if rv.cfg.isUnderTest(name) {
			versions = append(versions, name)
		}
	}
	var underTest *benchfmt.Run
	if len(versions) > 0 {
		underTest = best(reporting, NewestVersion(versions))
	}

	if ref := best(reporting, rv.cfg.Reference); rv.cfg.Reference != "" && ref != nil {
		rec.NumberOfSolutions, rec.NumberOfBindings = ref.NumberOfSolutions, ref.NumberOfBindings
	} else {
		var candidates []*benchfmt.Run
		if underTest != nil {
			candidates = append(candidates, underTest)
		}
		for _, name := range order {
			if name == rv.cfg.Reference || rv.cfg.isUnderTest(name) {
				continue
			}
			if b := best(reporting, name); b != nil {
				candidates = append(candidates, b)
			}
		}
		if len(candidates) == 0 {
			panic(fmt.Sprintf("%v: runs disagree but no triplestore contributed a result", k))
		}
		rec.NumberOfSolutions, rec.NumberOfBindings = mode(candidates)
	}

	if underTest != nil {
		rec.NonTentrisSPARQL = isEmpty(underTest.NumberOfSolutions, underTest.NumberOfBindings) &&
			!isEmpty(rec.NumberOfSolutions, rec.NumberOfBindings)
	}
	return rec
}

// consensus reports whether runs agree on a single number of solutions
// and a single number of bindings. Absent binding counts are ignored.
func consensus(runs []*benchfmt.Run) (nos, nob benchmath.Int, ok bool) {
	solutions := make(map[int64]bool)
	bindings := make(map[int64]bool)
	for _, r := range runs {
		if r.NumberOfSolutions.Valid {
			solutions[r.NumberOfSolutions.V] = true
			nos = r.NumberOfSolutions
		}
		if r.NumberOfBindings.Valid {
			bindings[r.NumberOfBindings.V] = true
			nob = r.NumberOfBindings
		}
	}
	if len(solutions) != 1 || len(bindings) != 1 {
		return benchmath.Int{}, benchmath.Int{}, false
	}
	return nos, nob, true
}

// best returns the run of triplestore name with the most solutions.
// Ties go to the earliest run. It returns nil if name has no runs.
func best(runs []*benchfmt.Run, name string) *benchfmt.Run {
	var b *benchfmt.Run
	for _, r := range runs {
		if r.Triplestore != name {
			continue
		}
		if b == nil || (r.NumberOfSolutions.Valid && (!b.NumberOfSolutions.Valid || r.NumberOfSolutions.V > b.NumberOfSolutions.V)) {
			b = r
		}
	}
	return b
}

// mode returns the most frequent result size among candidates. Ties go
// to the result size that occurs first.
func mode(candidates []*benchfmt.Run) (nos, nob benchmath.Int) {
	type size struct{ nos, nob benchmath.Int }
	counts := make(map[size]int)
	var order []size
	for _, c := range candidates {
		s := size{c.NumberOfSolutions, c.NumberOfBindings}
		if counts[s] == 0 {
			order = append(order, s)
		}
		counts[s]++
	}
	top := order[0]
	for _, s := range order[1:] {
		if counts[s] > counts[top] {
			top = s
		}
	}
	return top.nos, top.nob
}
