// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchproc provides tools for ordering and labeling
// triplestore benchmark runs.
//
// Runs are identified by a Key of dataset, query ID, triplestore, and
// client. Every table this module writes is sorted by Key so that two
// analyses of the same input produce identical output.
//
// Labels maps the raw triplestore, dataset, and index type names of
// the benchmark harness to the short names used in charts and tables,
// and carries the order in which those names are presented.
package benchproc
