// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchproc

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dice-group/triplebench/benchfmt"
)

// SortRuns sorts runs by Key. The sort is stable, so runs with equal
// Keys, such as the mixes of one client, keep their input order.
func SortRuns(runs []*benchfmt.Run) {
	sort.SliceStable(runs, func(i, j int) bool {
		return KeyOf(runs[i]).Less(KeyOf(runs[j]))
	})
}

// compareIDs orders client IDs. Numeric IDs come first, in numeric
// order, and the rest follow in lexical order.
func compareIDs(a, b string) int {
	x, errx := parseNum(a)
	y, erry := parseNum(b)
	switch {
	case errx != nil && erry != nil:
		return strings.Compare(a, b)
	case errx != nil:
		return 1
	case erry != nil:
		return -1
	case x < y, !math.IsNaN(x) && math.IsNaN(y):
		return -1
	case x > y, math.IsNaN(x) && !math.IsNaN(y):
		return 1
	}
	return strings.Compare(a, b)
}

const siPrefixes = `KMGTPEZY`

var suffixedNum = regexp.MustCompile(`^([0-9.]+)([k` + siPrefixes + `]i?)?[bB]?$`)

// parseNum parses x as a number, allowing an SI or IEC prefix and a
// byte suffix, as in "4k" or "1MiB".
func parseNum(x string) (float64, error) {
	if v, err := strconv.ParseFloat(x, 64); err == nil {
		return v, nil
	}
	m := suffixedNum.FindStringSubmatch(x)
	if m == nil {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, strconv.ErrSyntax
	}
	if m[2] == "" {
		return v, nil
	}
	exp := 1 + strings.IndexByte(siPrefixes, strings.ToUpper(m[2][:1])[0])
	base := 1000.0
	if strings.HasSuffix(m[2], "i") {
		base = 1024
	}
	return v * math.Pow(base, float64(exp)), nil
}
