// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchmath provides the numeric building blocks for
// analyzing triplestore benchmark results: optional values, the
// three-valued comparison used to check result sizes, and descriptive
// statistics over samples of measurements.
//
// Absent values are explicit. Nothing in this package turns a missing
// value into a NaN that silently compares false.
package benchmath

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A Sample is a set of measurements of one quantity, such as the QpS
// of one query across benchmark runs.
type Sample struct {
	// Values are the measured values, in ascending order. Values
	// never contains NaN.
	Values []float64
}

// NewSample constructs a Sample from a set of measurements. NaN values
// are dropped, like missing cells. values is not modified.
func NewSample(values []float64) *Sample {
	vs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			vs = append(vs, v)
		}
	}
	sort.Float64s(vs)
	return &Sample{vs}
}

// Quantile returns the q'th quantile of s, linearly interpolating
// between the two closest order statistics. This is the default
// method of most data analysis packages (type 7 in Hyndman and Fan).
// It returns NaN for an empty sample.
func (s *Sample) Quantile(q float64) float64 {
	n := len(s.Values)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return s.Values[0]
	} else if q >= 1 {
		return s.Values[n-1]
	}
	pos := q * float64(n-1)
	lo := int(math.Floor(pos))
	if lo+1 >= n {
		return s.Values[n-1]
	}
	frac := pos - float64(lo)
	return s.Values[lo] + frac*(s.Values[lo+1]-s.Values[lo])
}

// A Summary gives the descriptive statistics of a Sample.
type Summary struct {
	N      int
	Mean   float64
	StdDev float64 // sample standard deviation; NaN if N < 2
	Min    float64
	P25    float64
	Median float64
	P75    float64
	Max    float64
}

// Describe computes the descriptive statistics of s. All fields other
// than N are NaN for an empty sample.
func (s *Sample) Describe() Summary {
	nan := math.NaN()
	sum := Summary{N: len(s.Values), Mean: nan, StdDev: nan, Min: nan, P25: nan, Median: nan, P75: nan, Max: nan}
	if sum.N == 0 {
		return sum
	}
	sum.Mean = stats.Mean(s.Values)
	if sum.N > 1 {
		sum.StdDev = stats.StdDev(s.Values)
	}
	sum.Min, sum.Max = stats.Bounds(s.Values)
	sum.P25 = s.Quantile(0.25)
	sum.Median = s.Quantile(0.5)
	sum.P75 = s.Quantile(0.75)
	return sum
}

// Sum returns the sum of s's values, or 0 for an empty sample.
func (s *Sample) Sum() float64 {
	var t float64
	for _, v := range s.Values {
		t += v
	}
	return t
}
