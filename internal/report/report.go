// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats the per-triplestore summary of a benchmark
// as text, TSV, or HTML.
package report

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/benchunit"
	"github.com/dice-group/triplebench/internal/benchtab"
	"github.com/dice-group/triplebench/internal/nodestats"
	"github.com/dice-group/triplebench/internal/texttab"
)

// A Line summarizes one triplestore on one dataset. Names are display
// names.
type Line struct {
	Dataset     string
	Triplestore string

	MeanQPS float64
	QMpH    float64

	Succeeded, Failed, Timeouts int64

	// Wrong is the number of queries whose result never matched
	// the ground truth.
	Wrong int
}

// Summarize builds the summary lines of totals, counting wrong queries
// in rows. Lines are in label order of dataset and triplestore.
func Summarize(totals []benchtab.Total, rows []benchtab.Row, labels *benchproc.Labels) []Line {
	type key struct{ ts, ds string }
	wrong := make(map[key]int)
	for _, r := range rows {
		if r.WrongResult {
			wrong[key{r.Triplestore, r.Dataset}]++
		}
	}
	lines := make([]Line, 0, len(totals))
	for _, t := range totals {
		lines = append(lines, Line{
			Dataset:     labels.Datasets.Label(t.Dataset),
			Triplestore: labels.Triplestores.Label(t.Triplestore),
			MeanQPS:     t.MeanQPS,
			QMpH:        t.QMpH,
			Succeeded:   t.Succeeded,
			Failed:      t.Failed,
			Timeouts:    t.Timeouts,
			Wrong:       wrong[key{t.Triplestore, t.Dataset}],
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if c := labels.Datasets.Compare(lines[i].Dataset, lines[j].Dataset); c != 0 {
			return c < 0
		}
		return labels.Triplestores.Compare(lines[i].Triplestore, lines[j].Triplestore) < 0
	})
	return lines
}

func formatRate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "-"
	}
	return benchunit.Human(v)
}

var summaryHeader = []string{"dataset", "triplestore", "QpS", "QMpH", "succeeded", "failed", "timeouts", "wrong"}

// WriteText writes lines as an aligned text table, one block per
// dataset.
func WriteText(w io.Writer, lines []Line) error {
	var tab texttab.Table
	tab.Row()
	for i, h := range summaryHeader {
		if i < 2 {
			tab.Cell(h)
		} else {
			tab.Cell(h, texttab.Right)
		}
	}
	for i, l := range lines {
		if i == 0 || lines[i-1].Dataset != l.Dataset {
			tab.Rule()
		}
		tab.Row().Cell(l.Dataset).Cell(l.Triplestore)
		tab.Cell(formatRate(l.MeanQPS), texttab.Right).Cell(formatRate(l.QMpH), texttab.Right)
		tab.Cellf("%d", l.Succeeded).Cellf("%d", l.Failed).Cellf("%d", l.Timeouts).Cellf("%d", l.Wrong)
	}
	return tab.Format(w)
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTSV writes lines as tab-separated values with full precision.
func WriteTSV(w io.Writer, lines []Line) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(summaryHeader); err != nil {
		return err
	}
	for _, l := range lines {
		cw.Write([]string{
			l.Dataset, l.Triplestore, formatFloat(l.MeanQPS), formatFloat(l.QMpH),
			strconv.FormatInt(l.Succeeded, 10), strconv.FormatInt(l.Failed, 10),
			strconv.FormatInt(l.Timeouts, 10), strconv.Itoa(l.Wrong),
		})
	}
	cw.Flush()
	return cw.Error()
}

// An IndexLine is one row of the index size table.
type IndexLine struct {
	Dataset     string
	Triplestore string

	// BytesPerStatement and KStatementsPerSecond are formatted
	// by benchunit.
	BytesPerStatement    string
	KStatementsPerSecond string
}

// IndexLines builds the index size table of stats in label order.
func IndexLines(stats []nodestats.IndexStat, labels *benchproc.Labels) []IndexLine {
	lines := make([]IndexLine, 0, len(stats))
	for _, s := range stats {
		lines = append(lines, IndexLine{
			Dataset:              labels.Datasets.Label(s.Dataset),
			Triplestore:          labels.Triplestores.Label(s.Triplestore),
			BytesPerStatement:    benchunit.BytesPerStatement(s.BytesPerStatement()),
			KStatementsPerSecond: benchunit.ThousandsPerSecond(s.KStatementsPerSecond()),
		})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		if c := labels.Datasets.Compare(lines[i].Dataset, lines[j].Dataset); c != 0 {
			return c < 0
		}
		return labels.Triplestores.Compare(lines[i].Triplestore, lines[j].Triplestore) < 0
	})
	return lines
}

// WriteIndexText writes the index size table as aligned text.
func WriteIndexText(w io.Writer, lines []IndexLine) error {
	var tab texttab.Table
	tab.Row().Cell("dataset").Cell("triplestore").Cell("bytes/statement", texttab.Right).Cell("1k statements/s", texttab.Right)
	tab.Rule()
	for _, l := range lines {
		tab.Row().Cell(l.Dataset).Cell(l.Triplestore)
		tab.Cell(l.BytesPerStatement, texttab.Right).Cell(l.KStatementsPerSecond, texttab.Right)
	}
	return tab.Format(w)
}
