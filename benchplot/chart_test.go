// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchmath"
	"github.com/dice-group/triplebench/internal/benchtab"
	"github.com/dice-group/triplebench/internal/nodestats"
)

func testRuns() []*benchfmt.Run {
	var runs []*benchfmt.Run
	for _, ds := range []string{"watdiv10000", "swdf"} {
		for ti, ts := range []string{"fuseki", "virtuoso", "tentris-1.1.0_lsb_unused_1"} {
			for q := 1; q <= 5; q++ {
				for run := 0; run < 2; run++ {
					r := &benchfmt.Run{Triplestore: ts, Dataset: ds, QueryID: q, ClientID: "0", Run: run, Succeeded: true}
					qps := math.Pow(10, float64(q-ti))
					if ts == "virtuoso" && q == 3 {
						r.Succeeded = false
						r.PenalizedTime = benchmath.NewFloat(60000)
					} else {
						r.QPS = benchmath.NewFloat(qps)
						r.Time = benchmath.NewFloat(1000 / qps)
						r.PenalizedTime = r.Time
					}
					runs = append(runs, r)
				}
			}
		}
	}
	return runs
}

func checkFiles(t *testing.T, files []string, dir string, names ...string) {
	t.Helper()
	var want []string
	for _, n := range names {
		want = append(want, filepath.Join(dir, n+".svg"))
	}
	require.Equal(t, want, files)
	for _, f := range files {
		st, err := os.Stat(f)
		require.NoError(t, err)
		require.NotZero(t, st.Size())
	}
}

func TestBenchmarkCharts(t *testing.T) {
	dir := t.TempDir()
	o := &Options{Dir: dir, Formats: []string{"svg"}}
	runs := testRuns()
	rows := benchtab.Aggregate(runs)

	files, err := QPSBoxes(rows, o)
	require.NoError(t, err)
	checkFiles(t, files, dir, "paper-benchmark-results-scatter")

	files, err = QMpHBars(benchtab.Totals(runs, rows), o)
	require.NoError(t, err)
	checkFiles(t, files, dir, "paper-benchmark-results-QMpH")

	cells := benchtab.Relative(rows, "watdiv10000", "tentris-1.1.0_lsb_unused_1")
	files, err = RelativeHeatMap(cells, "watdiv10000", "tentris-1.1.0_lsb_unused_1", o)
	require.NoError(t, err)
	checkFiles(t, files, dir, "paper-heatmap-watdiv-rel-Ti")

	files, err = QPSBoxes(nil, o)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestIndexCharts(t *testing.T) {
	dir := t.TempDir()
	o := &Options{Dir: dir, Formats: []string{"svg"}}
	stats := []nodestats.IndexStat{
		{Triplestore: "fuseki", Dataset: "swdf", IndexSize: 1e7, LoadingTime: 10, Statements: 242256},
		{Triplestore: "tentris-1.1.0_lsb_unused_1", Dataset: "swdf", IndexSize: 1e5, LoadingTime: 2, Statements: 242256},
		{Triplestore: "fuseki", Dataset: "watdiv10000", IndexSize: 1e9, LoadingTime: 100, Statements: 10916457},
	}
	files, err := IndexBars(stats, o)
	require.NoError(t, err)
	checkFiles(t, files, dir, "paper-index-sizes", "paper-loading-times")

	var long []nodestats.NodeCount
	for _, ds := range []string{"SWDF", "WatDiv"} {
		for _, depth := range []int{1, 2} {
			for i, typ := range []string{"hsi", "b", "h"} {
				long = append(long,
					nodestats.NodeCount{HypertrieType: typ, Dataset: ds, Depth: depth, NodeType: nodestats.UncompressedNodes, NodeCount: int64(1000 * (i + depth))},
					nodestats.NodeCount{HypertrieType: typ, Dataset: ds, Depth: depth, NodeType: nodestats.CompressedNodes, NodeCount: int64(100 * i)},
				)
			}
		}
	}
	files, err = NodeCountBars(long, o)
	require.NoError(t, err)
	checkFiles(t, files, dir, "paper-node-count")

	files, err = FullNodeCountBars(nodestats.FullNodeCounts(long, o.Labels), o)
	require.NoError(t, err)
	checkFiles(t, files, dir, "paper-full-node-count")
}

func TestTicks(t *testing.T) {
	ticks := powerTicks(-1, 1)
	require.Len(t, ticks, 3)
	require.Equal(t, "10⁻¹", ticks[0].Label)
	require.Equal(t, 10.0, ticks[2].Value)

	ticks = exponentTicks(2, 2)
	require.Equal(t, []string{"10²", "10³", "10⁴"}, []string{ticks[0].Label, ticks[1].Label, ticks[2].Label})
	require.Equal(t, "1", exponentTicks(0, 0)[0].Label)

	for k := 0; k < 100; k++ {
		j := jitter(k, 0.5)
		require.True(t, j >= -0.25 && j < 0.25, "jitter %d = %v", k, j)
		require.Equal(t, j, jitter(k, 0.5))
	}

	require.Equal(t, RelativeMin, clamp(-10))
	require.Equal(t, float64(RelativeMax), clamp(3))
	require.Equal(t, 0.5, clamp(0.5))
	require.True(t, math.IsNaN(clamp(math.NaN())))
}
