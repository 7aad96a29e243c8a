// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// A Writer writes run tables.
//
// The header is written with the first run. It consists of RunColumns
// followed by the Extra columns of the first run. Later runs that lack
// one of those extra columns get an empty cell for it.
type Writer struct {
	cw     *csv.Writer
	extras []string
	row    []string
	first  bool
}

// NewWriter returns a writer that writes run tables to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cw: csv.NewWriter(w), first: true}
}

// Write writes Record rec to w. *SyntaxError records are ignored.
func (w *Writer) Write(rec Record) error {
	switch rec := rec.(type) {
	case *Run:
		return w.writeRun(rec)
	case *SyntaxError:
		return nil
	default:
		return fmt.Errorf("unknown Record type %T", rec)
	}
}

func (w *Writer) writeRun(r *Run) error {
	if w.first {
		for _, f := range r.Extra {
			w.extras = append(w.extras, f.Key)
		}
		hdr := append(append([]string(nil), RunColumns...), w.extras...)
		if err := w.cw.Write(hdr); err != nil {
			return err
		}
		w.first = false
	}

	w.row = append(w.row[:0],
		r.Triplestore,
		r.Dataset,
		strconv.Itoa(r.QueryID),
		r.ClientID,
		strconv.Itoa(r.Run),
		formatFlag(r.Succeeded),
		strconv.FormatInt(r.Failed, 10),
		strconv.FormatInt(r.Timeouts, 10),
		strconv.FormatInt(r.UnknownExceptions, 10),
		strconv.FormatInt(r.WrongCodes, 10),
		r.ContentLength.String(),
		r.Time.String(),
		r.QPS.String(),
		r.PenalizedTime.String(),
		r.PenalizedQPS.String(),
		strconv.FormatBool(r.ParsingSucceeded),
		r.NumberOfVariables.String(),
		r.NumberOfSolutions.String(),
		r.NumberOfBindings.String(),
		r.ResultParsingTime.String(),
		r.ParsingErrorMessage,
		strconv.FormatBool(r.WrongResult),
		strconv.FormatBool(r.FullyCorrectResult),
	)
	for _, key := range w.extras {
		v, _ := r.GetExtra(key)
		w.row = append(w.row, v)
	}
	return w.cw.Write(w.row)
}

// formatFlag writes succeeded as a count so that it sums naturally.
func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Flush writes any buffered data to the underlying io.Writer and
// reports any error that occurred during a Write or Flush.
func (w *Writer) Flush() error {
	w.cw.Flush()
	return w.cw.Error()
}

// WriteRuns writes runs as a complete table to w.
func WriteRuns(w io.Writer, runs []*Run) error {
	bw := NewWriter(w)
	for _, r := range runs {
		if err := bw.Write(r); err != nil {
			return err
		}
	}
	return bw.Flush()
}
