// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodestats

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
)

// Datasets are the benchmark datasets, in presentation order.
var Datasets = []string{"swdf", "dbpedia2015", "watdiv10000", "wikidata-2020-11-11"}

// DatasetStats gives the size of a dataset, taken from its depth 3
// hypertrie.
type DatasetStats struct {
	Dataset    string
	Subjects   int64
	Predicates int64
	Objects    int64
	Statements int64
}

var datasetStatsColumns = []string{"dataset", "subjects", "predicates", "objects", "statements"}

// ReadDatasetStats reads the first row of
// <dir>/<dataset>/depth_3_nodes_stats.tsv for every dataset.
func ReadDatasetStats(dir string, datasets []string) ([]DatasetStats, error) {
	var out []DatasetStats
	for _, ds := range datasets {
		path := filepath.Join(dir, ds, "depth_3_nodes_stats.tsv")
		t, c, err := openTSV(path, "dimension_1_size", "dimension_2_size", "dimension_3_size", "node_size")
		if err != nil {
			return nil, err
		}
		err = t.next()
		c.Close()
		if err == io.EOF {
			return nil, fmt.Errorf("%s: no statistics row", path)
		} else if err != nil {
			return nil, err
		}

		s := DatasetStats{Dataset: ds}
		for _, f := range []struct {
			col string
			dst *int64
		}{
			{"dimension_1_size", &s.Subjects},
			{"dimension_2_size", &s.Predicates},
			{"dimension_3_size", &s.Objects},
			{"node_size", &s.Statements},
		} {
			if *f.dst, err = t.int(f.col); err != nil {
				return nil, err
			}
		}
		out = append(out, s)
	}
	return out, nil
}

// WriteDatasetStats writes stats as a dataset_stats.tsv table.
func WriteDatasetStats(w io.Writer, stats []DatasetStats) error {
	return writeTSV(w, datasetStatsColumns, len(stats), func(i int) []string {
		s := stats[i]
		return []string{
			s.Dataset,
			strconv.FormatInt(s.Subjects, 10),
			strconv.FormatInt(s.Predicates, 10),
			strconv.FormatInt(s.Objects, 10),
			strconv.FormatInt(s.Statements, 10),
		}
	})
}

// ParseDatasetStats reads a table written by WriteDatasetStats.
func ParseDatasetStats(r io.Reader, fileName string) ([]DatasetStats, error) {
	t, err := newTSVReader(r, fileName, datasetStatsColumns...)
	if err != nil {
		return nil, err
	}
	var out []DatasetStats
	for {
		if err := t.next(); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, err
		}
		s := DatasetStats{Dataset: t.str("dataset")}
		for _, f := range []struct {
			col string
			dst *int64
		}{
			{"subjects", &s.Subjects},
			{"predicates", &s.Predicates},
			{"objects", &s.Objects},
			{"statements", &s.Statements},
		} {
			if *f.dst, err = t.int(f.col); err != nil {
				return nil, err
			}
		}
		out = append(out, s)
	}
}
