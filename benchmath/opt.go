// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchmath

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// An Int is an integer measurement that may be absent.
//
// The zero value is absent.
type Int struct {
	V     int64
	Valid bool
}

// NewInt returns a present Int with value v.
func NewInt(v int64) Int {
	return Int{v, true}
}

// String returns the decimal form of i, or "" if i is absent.
func (i Int) String() string {
	if !i.Valid {
		return ""
	}
	return strconv.FormatInt(i.V, 10)
}

// Float64 returns i as a float64, or NaN if i is absent.
func (i Int) Float64() float64 {
	if !i.Valid {
		return math.NaN()
	}
	return float64(i.V)
}

// Max returns the larger of i and j. An absent value loses to any
// present value.
func (i Int) Max(j Int) Int {
	switch {
	case !i.Valid:
		return j
	case !j.Valid:
		return i
	case j.V > i.V:
		return j
	}
	return i
}

// A Float is a floating-point measurement that may be absent.
//
// NaN is never stored in a present Float.
type Float struct {
	V     float64
	Valid bool
}

// NewFloat returns a Float with value v. NaN produces an absent Float.
func NewFloat(v float64) Float {
	if math.IsNaN(v) {
		return Float{}
	}
	return Float{v, true}
}

// String returns the shortest form of f that parses back to the same
// value, or "" if f is absent.
func (f Float) String() string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.V, 'g', -1, 64)
}

// Float64 returns f's value, or NaN if f is absent.
func (f Float) Float64() float64 {
	if !f.Valid {
		return math.NaN()
	}
	return f.V
}

// isNull reports whether s is one of the spellings tabular tools use
// for a missing cell.
func isNull(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NaN", "nan", "NA", "<NA>", "null", "None":
		return true
	}
	return false
}

// ParseInt parses s as an optional integer. Missing-cell spellings
// produce an absent Int. Integral floating-point forms such as "5.0"
// are accepted because tabular tools write integer columns that
// contain missing values that way.
func ParseInt(s string) (Int, error) {
	if isNull(s) {
		return Int{}, nil
	}
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(v), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return Int{}, fmt.Errorf("invalid integer %q", s)
	}
	return NewInt(int64(f)), nil
}

// ParseFloat parses s as an optional float.
func ParseFloat(s string) (Float, error) {
	if isNull(s) {
		return Float{}, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Float{}, fmt.Errorf("invalid number %q", s)
	}
	return NewFloat(f), nil
}

// ParseBool parses a boolean-like cell. Besides the spellings accepted
// by strconv.ParseBool, any integer is accepted and is true when it is
// positive. An empty cell is false.
func ParseBool(s string) (bool, error) {
	s = strings.TrimSpace(s)
	if isNull(s) {
		return false, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	i, err := ParseInt(s)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", s)
	}
	return i.V > 0, nil
}
