// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nodestats

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchproc"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0777))
	require.NoError(t, os.WriteFile(path, []byte(data), 0666))
}

func TestDatasetStats(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "swdf", "depth_3_nodes_stats.tsv"),
		"node_size\tdimension_1_size\tdimension_2_size\tdimension_3_size\n"+
			"242256\t76711\t185\t95038\n"+
			"1\t2\t3\t4\n")
	writeFile(t, filepath.Join(dir, "watdiv10000", "depth_3_nodes_stats.tsv"),
		"dimension_1_size\tdimension_2_size\tdimension_3_size\tnode_size\n"+
			"10\t20\t30\t40\n")

	stats, err := ReadDatasetStats(dir, []string{"swdf", "watdiv10000"})
	require.NoError(t, err)
	require.Equal(t, []DatasetStats{
		{"swdf", 76711, 185, 95038, 242256},
		{"watdiv10000", 10, 20, 30, 40},
	}, stats)

	var buf strings.Builder
	require.NoError(t, WriteDatasetStats(&buf, stats))
	require.Equal(t, "dataset\tsubjects\tpredicates\tobjects\tstatements\n"+
		"swdf\t76711\t185\t95038\t242256\n"+
		"watdiv10000\t10\t20\t30\t40\n", buf.String())

	back, err := ParseDatasetStats(strings.NewReader(buf.String()), "dataset_stats.tsv")
	require.NoError(t, err)
	require.Equal(t, stats, back)

	_, err = ReadDatasetStats(dir, []string{"dbpedia2015"})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDatasetStatsErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a", "depth_3_nodes_stats.tsv"), "dimension_1_size\tnode_size\n1\t2\n")
	_, err := ReadDatasetStats(dir, []string{"a"})
	require.ErrorIs(t, err, benchfmt.ErrMissingColumn)

	writeFile(t, filepath.Join(dir, "b", "depth_3_nodes_stats.tsv"),
		"dimension_1_size\tdimension_2_size\tdimension_3_size\tnode_size\n")
	_, err = ReadDatasetStats(dir, []string{"b"})
	require.ErrorContains(t, err, "no statistics row")
}

func TestNodeCounts(t *testing.T) {
	dir := t.TempDir()
	for _, ds := range []string{"swdf", "watdiv10000"} {
		for _, depth := range []string{"1", "2"} {
			scale := map[string]string{"swdf": "", "watdiv10000": "0"}[ds]
			writeFile(t, filepath.Join(dir, ds, "depth_"+depth+"_node_count_comparison.tsv"),
				"hypertrie_type\tuncompressed_nodes\tcompressed_nodes\n"+
					"baseline\t"+depth+"00"+scale+"\t0\n"+
					"hash+compression+inline\t"+depth+"0"+scale+"\t"+depth+"\n")
		}
	}
	labels := benchproc.DefaultLabels()
	long, err := ReadNodeCounts(dir, []string{"swdf", "watdiv10000"}, Depths, labels)
	require.NoError(t, err)
	require.Len(t, long, 16)
	require.Equal(t, NodeCount{"b", "SWDF", 1, UncompressedNodes, 100}, long[0])
	require.Equal(t, NodeCount{"hsi", "SWDF", 1, UncompressedNodes, 10}, long[1])
	require.Equal(t, NodeCount{"b", "SWDF", 1, CompressedNodes, 0}, long[2])
	require.Equal(t, NodeCount{"hsi", "SWDF", 1, CompressedNodes, 1}, long[3])
	require.Equal(t, NodeCount{"b", "SWDF", 2, UncompressedNodes, 200}, long[4])

	full := FullNodeCounts(long, labels)
	require.Equal(t, []FullNodeCount{
		{"b", "SWDF", 300},
		{"b", "WatDiv", 3000},
		{"hsi", "SWDF", 30},
		{"hsi", "WatDiv", 300},
	}, full)
	require.Nil(t, FullNodeCounts(nil, labels))

	var buf strings.Builder
	require.NoError(t, WriteNodeCounts(&buf, long[:2]))
	require.Equal(t, "hypertrie_type\tdataset\tdepth\tnode_type\tnode_count\n"+
		"b\tSWDF\t1\tuncompressed_nodes\t100\n"+
		"hsi\tSWDF\t1\tuncompressed_nodes\t10\n", buf.String())
	buf.Reset()
	require.NoError(t, WriteFullNodeCounts(&buf, full[:1]))
	require.Equal(t, "hypertrie_type\tdataset\tnode_count\nb\tSWDF\t300\n", buf.String())
}

func TestIndexStats(t *testing.T) {
	const input = "triplestore\tdataset\tindex_size\tloading_time\n" +
		"fuseki\tswdf\t2422560\t10\n" +
		"virtuoso\tswdf\t\t3\n" +
		"gstore\tunknown\t1\t1\n" +
		"tentris-1.1.0_lsb_unused_1\tswdf\t121128\t0.5\n"
	stats := []DatasetStats{{Dataset: "swdf", Statements: 242256}}
	got, err := ReadIndexStats(strings.NewReader(input), "index.tsv", stats)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "fuseki", got[0].Triplestore)
	require.Equal(t, 10.0, got[0].BytesPerStatement())
	require.InDelta(t, 24.2256, got[0].KStatementsPerSecond(), 1e-9)
	require.Equal(t, 0.5, got[1].BytesPerStatement())
	require.InDelta(t, 484.512, got[1].KStatementsPerSecond(), 1e-9)

	_, err = ReadIndexStats(strings.NewReader("triplestore\tdataset\tindex_size\tloading_time\nfuseki\tswdf\tbig\t1\n"), "index.tsv", stats)
	require.EqualError(t, err, `index.tsv:2: column index_size: strconv.ParseFloat: parsing "big": invalid syntax`)
}
