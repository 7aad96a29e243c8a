// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchtab

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/dice-group/triplebench/benchfmt"
)

func sortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Key.Less(rows[j].Key)
	})
}

// formatFloat formats v for a table cell. NaN is an empty cell.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// RowColumns returns the header of the aggregated table.
func RowColumns() []string {
	cols := append([]string(nil), keyColumns...)
	for _, sc := range StatColumns {
		for _, suffix := range StatSuffixes {
			cols = append(cols, sc+"_"+suffix)
		}
	}
	cols = append(cols, maxColumns...)
	return append(cols, sumColumns...)
}

func (r *Row) cells() []string {
	out := []string{r.Triplestore, r.Dataset, strconv.Itoa(r.QueryID), r.ClientID}
	for _, sc := range StatColumns {
		s := r.Stat(sc)
		for _, v := range []float64{s.Mean, s.StdDev, s.Min, s.P25, s.Median, s.P75, s.Max} {
			out = append(out, formatFloat(v))
		}
	}
	out = append(out,
		formatFloat(r.ContentLength),
		formatFloat(r.NumberOfSolutions),
		formatFloat(r.NumberOfBindings),
		strconv.FormatBool(r.WrongResult),
		strconv.FormatBool(r.FullyCorrectResult),
		strconv.FormatBool(r.ParsingSucceeded),
	)
	for _, n := range []int64{r.Succeeded, r.Failed, r.Timeouts, r.UnknownExceptions, r.WrongCodes} {
		out = append(out, strconv.FormatInt(n, 10))
	}
	return out
}

func writeTable(w io.Writer, comma rune, header []string, n int, row func(i int) []string) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	cw.Write(header)
	for i := 0; i < n; i++ {
		cw.Write(row(i))
	}
	cw.Flush()
	return cw.Error()
}

// WriteRows writes the aggregated table. comma is the field
// delimiter, usually ',' or '\t'.
func WriteRows(w io.Writer, rows []Row, comma rune) error {
	return writeTable(w, comma, RowColumns(), len(rows), func(i int) []string {
		return rows[i].cells()
	})
}

// Column names of the totals table.
const (
	ColQMpH    = "QMpH"
	ColMixes   = "mixes"
	ColMeanQPS = "mean_qps"
)

// WriteTotals writes one line per triplestore and dataset.
func WriteTotals(w io.Writer, totals []Total, comma rune) error {
	header := []string{
		benchfmt.ColTriplestore, benchfmt.ColDataset, ColMixes, ColQMpH, ColMeanQPS,
		benchfmt.ColPenalizedTime, benchfmt.ColSucceeded, benchfmt.ColFailed, benchfmt.ColTimeouts,
	}
	return writeTable(w, comma, header, len(totals), func(i int) []string {
		t := totals[i]
		return []string{
			t.Triplestore, t.Dataset, strconv.Itoa(t.Mixes), formatFloat(t.QMpH), formatFloat(t.MeanQPS),
			formatFloat(t.PenalizedTime), strconv.FormatInt(t.Succeeded, 10),
			strconv.FormatInt(t.Failed, 10), strconv.FormatInt(t.Timeouts, 10),
		}
	})
}

// ColRelative is the ratio column of the relative table.
const ColRelative = "relative_qps"

// WriteRelative writes relative QpS cells.
func WriteRelative(w io.Writer, cells []RelCell, comma rune) error {
	header := []string{benchfmt.ColDataset, benchfmt.ColQueryID, benchfmt.ColTriplestore, ColRelative}
	return writeTable(w, comma, header, len(cells), func(i int) []string {
		c := cells[i]
		return []string{c.Dataset, strconv.Itoa(c.QueryID), c.Triplestore, formatFloat(c.Ratio)}
	})
}
