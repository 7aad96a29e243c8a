// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import "math"

// An Outcome is the result of comparing two possibly absent values.
type Outcome int

const (
	// Indeterminate means at least one side was absent.
	Indeterminate Outcome = iota
	Match
	Mismatch
)

func (o Outcome) String() string {
	switch o {
	case Match:
		return "match"
	case Mismatch:
		return "mismatch"
	}
	return "indeterminate"
}

// Matches reports whether o is a definite match. An Indeterminate
// outcome never matches.
func (o Outcome) Matches() bool {
	return o == Match
}

// And combines two outcomes. It is Match only if both are Match, and
// Mismatch if either is Mismatch.
func (o Outcome) And(p Outcome) Outcome {
	switch {
	case o == Mismatch || p == Mismatch:
		return Mismatch
	case o == Match && p == Match:
		return Match
	}
	return Indeterminate
}

func outcome(ok bool) Outcome {
	if ok {
		return Match
	}
	return Mismatch
}

// A Tolerance describes when two result sizes count as approximately
// equal. The comparison is asymmetric: the relative part scales with
// the expected value.
type Tolerance struct {
	// RTol is the tolerance relative to the expected value.
	RTol float64
	// ATol is the absolute tolerance.
	ATol float64
}

// DefaultTolerance accepts a 10% relative deviation.
var DefaultTolerance = Tolerance{RTol: 0.1, ATol: 1e-8}

// Close compares got against want. The values are close if
// |got-want| <= ATol + RTol*|want|.
func (t Tolerance) Close(got, want Int) Outcome {
	if !got.Valid || !want.Valid {
		return Indeterminate
	}
	g, w := float64(got.V), float64(want.V)
	return outcome(math.Abs(g-w) <= t.ATol+t.RTol*math.Abs(w))
}

// Exact compares got against want for exact equality.
func Exact(got, want Int) Outcome {
	if !got.Valid || !want.Valid {
		return Indeterminate
	}
	return outcome(got.V == want.V)
}

// InRange reports whether lo <= v <= hi.
func InRange(v Int, lo, hi int64) Outcome {
	if !v.Valid {
		return Indeterminate
	}
	return outcome(lo <= v.V && v.V <= hi)
}
