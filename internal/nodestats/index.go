// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodestats

import (
	"io"
	"strings"
)

// An IndexStat is the index size and loading time of one triplestore
// on one dataset.
type IndexStat struct {
	Triplestore string
	Dataset     string

	IndexSize   float64 // bytes
	LoadingTime float64 // seconds
	Statements  int64
}

// BytesPerStatement returns the index size per statement.
func (s IndexStat) BytesPerStatement() float64 {
	return s.IndexSize / float64(s.Statements)
}

// KStatementsPerSecond returns the loading speed in thousands of
// statements per second.
func (s IndexStat) KStatementsPerSecond() float64 {
	return float64(s.Statements) / 1000 / s.LoadingTime
}

// ReadIndexStats reads an index_sizes_and_loading_times.tsv table and
// joins it with the dataset statistics on the dataset name. Rows with
// an empty cell or without dataset statistics are dropped.
func ReadIndexStats(r io.Reader, fileName string, stats []DatasetStats) ([]IndexStat, error) {
	t, err := newTSVReader(r, fileName, "triplestore", "dataset", "index_size", "loading_time")
	if err != nil {
		return nil, err
	}
	statements := make(map[string]int64)
	for _, s := range stats {
		statements[s.Dataset] = s.Statements
	}

	var out []IndexStat
	for {
		if err := t.next(); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, err
		}
		if hasEmpty(t.row) {
			continue
		}
		s := IndexStat{Triplestore: t.str("triplestore"), Dataset: t.str("dataset")}
		n, ok := statements[s.Dataset]
		if !ok {
			continue
		}
		s.Statements = n
		if s.IndexSize, err = t.float("index_size"); err != nil {
			return nil, err
		}
		if s.LoadingTime, err = t.float("loading_time"); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
}

func hasEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) == "" {
			return true
		}
	}
	return false
}
