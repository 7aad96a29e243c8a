// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodestats

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/dice-group/triplebench/benchproc"
)

// Node types of a node count comparison.
const (
	UncompressedNodes = "uncompressed_nodes"
	CompressedNodes   = "compressed_nodes"
)

// Depths are the hypertrie depths with node count comparisons.
var Depths = []int{1, 2}

// A NodeCount is the number of nodes of one type at one depth of a
// hypertrie layout built for a dataset. HypertrieType and Dataset are
// display names.
type NodeCount struct {
	HypertrieType string
	Dataset       string
	Depth         int
	NodeType      string
	NodeCount     int64
}

// ReadNodeCounts reads <dir>/<dataset>/depth_<depth>_node_count_comparison.tsv
// for every dataset and depth and returns one NodeCount per layout and
// node type. Within a file, all uncompressed counts come before the
// compressed ones.
func ReadNodeCounts(dir string, datasets []string, depths []int, labels *benchproc.Labels) ([]NodeCount, error) {
	var out []NodeCount
	for _, ds := range datasets {
		for _, depth := range depths {
			path := filepath.Join(dir, ds, fmt.Sprintf("depth_%d_node_count_comparison.tsv", depth))
			counts, err := readNodeCountFile(path)
			if err != nil {
				return nil, err
			}
			for _, nodeType := range []string{UncompressedNodes, CompressedNodes} {
				for _, c := range counts {
					out = append(out, NodeCount{
						HypertrieType: labels.HypertrieTypes.Label(c.typ),
						Dataset:       labels.Datasets.Label(ds),
						Depth:         depth,
						NodeType:      nodeType,
						NodeCount:     c.n[nodeType],
					})
				}
			}
		}
	}
	return out, nil
}

type typeCounts struct {
	typ string
	n   map[string]int64
}

func readNodeCountFile(path string) ([]typeCounts, error) {
	t, c, err := openTSV(path, "hypertrie_type", UncompressedNodes, CompressedNodes)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	var out []typeCounts
	for {
		if err := t.next(); err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, err
		}
		tc := typeCounts{typ: t.str("hypertrie_type"), n: make(map[string]int64)}
		for _, col := range []string{UncompressedNodes, CompressedNodes} {
			if tc.n[col], err = t.int(col); err != nil {
				return nil, err
			}
		}
		out = append(out, tc)
	}
}

// A FullNodeCount is the number of uncompressed nodes of a hypertrie
// layout over all depths.
type FullNodeCount struct {
	HypertrieType string
	Dataset       string
	NodeCount     int64
}

// FullNodeCounts sums the uncompressed node counts of long per
// hypertrie type and dataset. The result is ordered by hypertrie type
// and then dataset, following labels.
func FullNodeCounts(long []NodeCount, labels *benchproc.Labels) []FullNodeCount {
	if len(long) == 0 {
		return nil
	}
	var types, datasets, nodeTypes []string
	var counts []float64
	for _, c := range long {
		types = append(types, c.HypertrieType)
		datasets = append(datasets, c.Dataset)
		nodeTypes = append(nodeTypes, c.NodeType)
		counts = append(counts, float64(c.NodeCount))
	}
	var b table.Builder
	b.Add("hypertrie_type", types).Add("dataset", datasets).Add("node_type", nodeTypes).Add("node_count", counts)
	g := table.FilterEq(b.Done(), "node_type", UncompressedNodes)
	if table.Flatten(g).Len() == 0 {
		return nil
	}
	g = ggstat.Agg("hypertrie_type", "dataset")(ggstat.AggSum("node_count")).F(g)
	t := table.Flatten(g)

	ts := t.MustColumn("hypertrie_type").([]string)
	ds := t.MustColumn("dataset").([]string)
	sums := t.MustColumn("sum node_count").([]float64)
	out := make([]FullNodeCount, t.Len())
	for i := range out {
		out[i] = FullNodeCount{HypertrieType: ts[i], Dataset: ds[i], NodeCount: int64(sums[i])}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if c := labels.HypertrieTypes.Compare(out[i].HypertrieType, out[j].HypertrieType); c != 0 {
			return c < 0
		}
		return labels.Datasets.Compare(out[i].Dataset, out[j].Dataset) < 0
	})
	return out
}

// WriteNodeCounts writes long as a long_node_counts.tsv table.
func WriteNodeCounts(w io.Writer, long []NodeCount) error {
	header := []string{"hypertrie_type", "dataset", "depth", "node_type", "node_count"}
	return writeTSV(w, header, len(long), func(i int) []string {
		c := long[i]
		return []string{c.HypertrieType, c.Dataset, strconv.Itoa(c.Depth), c.NodeType, strconv.FormatInt(c.NodeCount, 10)}
	})
}

// WriteFullNodeCounts writes full as a long_fullnode_counts.tsv table.
func WriteFullNodeCounts(w io.Writer, full []FullNodeCount) error {
	header := []string{"hypertrie_type", "dataset", "node_count"}
	return writeTSV(w, header, len(full), func(i int) []string {
		c := full[i]
		return []string{c.HypertrieType, c.Dataset, strconv.FormatInt(c.NodeCount, 10)}
	})
}
