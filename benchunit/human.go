// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchunit formats the numbers that appear in benchmark
// tables and chart labels.
package benchunit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var humanSuffixes = []string{"", "K", "M", "B", "T"}

// Human formats v for axis labels: rounded to three significant
// digits, scaled by thousands with a K, M, B, or T suffix, and without
// trailing zeros. For example, 1000 is "1K" and 20000000 is "20M".
func Human(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	num, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 3, 64), 64)
	digits := len(strconv.FormatFloat(math.Trunc(math.Abs(num)), 'f', 0, 64))
	mag := (digits - 1) / 3
	if mag >= len(humanSuffixes) {
		mag = len(humanSuffixes) - 1
	}
	num /= math.Pow(1000, float64(mag))
	s := strconv.FormatFloat(num, 'f', 6, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		s = "0"
	}
	return s + humanSuffixes[mag]
}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻', '+': '⁺',
}

// Superscript rewrites the digits and signs of s as superscript
// characters. Other characters are kept.
func Superscript(s string) string {
	return strings.Map(func(r rune) rune {
		if sr, ok := superscripts[r]; ok {
			return sr
		}
		return r
	}, s)
}

// PowerOfTen returns the label of 10 to the power exp, such as "10⁻⁴".
// Exponent zero is labeled "1" if one is true.
func PowerOfTen(exp int, one bool) string {
	if exp == 0 && one {
		return "1"
	}
	return "10" + Superscript(strconv.Itoa(exp))
}

// BytesPerStatement formats an index size in bytes per statement.
// Sizes above one byte are shown without decimals.
func BytesPerStatement(v float64) string {
	if v > 1 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.3f", v)
}

// ThousandsPerSecond formats a loading speed in thousands of
// statements per second. Speeds of at least ten are shown without
// decimals.
func ThousandsPerSecond(v float64) string {
	if v >= 10 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
