// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/internal/benchtab"
	"github.com/dice-group/triplebench/internal/nodestats"
)

func testLines() []Line {
	totals := []benchtab.Total{
		{Triplestore: "virtuoso", Dataset: "swdf", MeanQPS: 12.5, QMpH: 20000, Succeeded: 10, Failed: 2},
		{Triplestore: "tentris-1.1.0_lsb_unused_1", Dataset: "swdf", MeanQPS: 3000, QMpH: 1.5e6, Succeeded: 12},
		{Triplestore: "fuseki", Dataset: "watdiv10000", MeanQPS: math.NaN(), QMpH: math.NaN(), Timeouts: 4},
	}
	rows := []benchtab.Row{
		{Key: benchproc.Key{Triplestore: "virtuoso", Dataset: "swdf", QueryID: 1}, WrongResult: true},
		{Key: benchproc.Key{Triplestore: "virtuoso", Dataset: "swdf", QueryID: 2}, WrongResult: true},
		{Key: benchproc.Key{Triplestore: "virtuoso", Dataset: "swdf", QueryID: 3}},
	}
	return Summarize(totals, rows, benchproc.DefaultLabels())
}

func TestSummarize(t *testing.T) {
	lines := testLines()
	require.Len(t, lines, 3)
	require.Equal(t, "SWDF", lines[0].Dataset)
	require.Equal(t, "Ti", lines[0].Triplestore)
	require.Equal(t, "V", lines[1].Triplestore)
	require.Equal(t, 2, lines[1].Wrong)
	require.Equal(t, "WatDiv", lines[2].Dataset)
	require.Equal(t, "F", lines[2].Triplestore)
}

func TestWriteText(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteText(&buf, testLines()))
	want := `dataset  triplestore   QpS  QMpH  succeeded  failed  timeouts  wrong
-------  -----------  ----  ----  ---------  ------  --------  -----
SWDF     Ti             3K  1.5M         12       0         0      0
SWDF     V            12.5   20K         10       2         0      2
-------  -----------  ----  ----  ---------  ------  --------  -----
WatDiv   F               -     -          0       0         4      0
`
	require.Equal(t, want, buf.String())
}

func TestWriteTSV(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, WriteTSV(&buf, testLines()))
	lines := strings.Split(buf.String(), "\n")
	require.Equal(t, "SWDF\tTi\t3000\t1.5e+06\t12\t0\t0\t0", lines[1])
	require.Equal(t, "WatDiv\tF\t\t\t0\t0\t4\t0", lines[3])
}

func TestWriteHTML(t *testing.T) {
	lines := testLines()
	lines[0].Triplestore = "<script>"
	index := IndexLines([]nodestats.IndexStat{
		{Triplestore: "fuseki", Dataset: "swdf", IndexSize: 1e7, LoadingTime: 10, Statements: 100000},
	}, benchproc.DefaultLabels())
	require.Equal(t, "100", index[0].BytesPerStatement)
	require.Equal(t, "10", index[0].KStatementsPerSecond)

	var buf strings.Builder
	require.NoError(t, WriteHTML(&buf, lines, index))
	got := buf.String()
	require.Contains(t, got, "<td>SWDF<td>&lt;script&gt;<td>3K<td>1.5M<td>12")
	require.Contains(t, got, "<td>SWDF<td>F<td>100<td>10")
	require.NotContains(t, got, "<script>")

	buf.Reset()
	require.NoError(t, WriteHTML(&buf, nil, nil))
	require.Empty(t, strings.TrimSpace(buf.String()))
}
