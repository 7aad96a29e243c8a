// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package groundtruth

import (
	"sort"
	"strings"
)

// Family splits a triplestore name into the family name prefix and
// the version suffix, if name belongs to one of families. Otherwise
// the family is name itself and the version is empty.
func Family(name string, families ...string) (family, version string) {
	for _, f := range families {
		if f != "" && strings.HasPrefix(name, f) {
			return f, strings.TrimLeft(name[len(f):], "-_")
		}
	}
	return name, ""
}

// NewestVersion returns the newest of a set of triplestore names of
// one family. Names are compared as plain strings, so "x-1.10" is
// older than "x-1.9". It returns "" if names is empty.
func NewestVersion(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sorted := append([]string(nil), names...)
	sort.Sort(sort.Reverse(sort.StringSlice(sorted)))
	return sorted[0]
}
