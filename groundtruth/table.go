// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package groundtruth

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchmath"
)

// Column names of the ground truth table.
const (
	ColDataset           = benchfmt.ColDataset
	ColQueryID           = benchfmt.ColQueryID
	ColNumberOfSolutions = benchfmt.ColNumberOfSolutions
	ColNumberOfBindings  = benchfmt.ColNumberOfBindings
	ColNonTentrisSPARQL  = "non_tentris_sparql"
)

var columns = []string{ColDataset, ColQueryID, ColNumberOfSolutions, ColNumberOfBindings, ColNonTentrisSPARQL}

// WriteCSV writes records as a ground truth table.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	cw.Write(columns)
	for _, r := range records {
		cw.Write([]string{
			r.Dataset,
			strconv.Itoa(r.QueryID),
			r.NumberOfSolutions.String(),
			r.NumberOfBindings.String(),
			strconv.FormatBool(r.NonTentrisSPARQL),
		})
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads a ground truth table written by WriteCSV. Columns are
// matched by name. fileName is used in error messages.
func ReadCSV(r io.Reader, fileName string) ([]Record, error) {
	cr := csv.NewReader(r)
	hdr, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty table: %w", fileName, benchfmt.ErrMissingColumn)
		}
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	pos := make(map[string]int)
	for i, name := range hdr {
		pos[name] = i
	}
	for _, col := range columns {
		if _, ok := pos[col]; !ok {
			return nil, fmt.Errorf("%s: %w %q", fileName, benchfmt.ErrMissingColumn, col)
		}
	}

	var out []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return out, nil
		} else if err != nil {
			return nil, fmt.Errorf("%s: %w", fileName, err)
		}
		line, _ := cr.FieldPos(0)
		bad := func(col string, err error) error {
			return &benchfmt.SyntaxError{FileName: fileName, Line: line, Msg: fmt.Sprintf("column %s: %v", col, err)}
		}
		qid, err := strconv.Atoi(row[pos[ColQueryID]])
		if err != nil {
			return nil, bad(ColQueryID, err)
		}
		rec := Record{Dataset: row[pos[ColDataset]], QueryID: qid}
		if rec.NumberOfSolutions, err = benchmath.ParseInt(row[pos[ColNumberOfSolutions]]); err != nil {
			return nil, bad(ColNumberOfSolutions, err)
		}
		if rec.NumberOfBindings, err = benchmath.ParseInt(row[pos[ColNumberOfBindings]]); err != nil {
			return nil, bad(ColNumberOfBindings, err)
		}
		if rec.NonTentrisSPARQL, err = benchmath.ParseBool(row[pos[ColNonTentrisSPARQL]]); err != nil {
			return nil, bad(ColNonTentrisSPARQL, err)
		}
		out = append(out, rec)
	}
}

// Index maps query keys to their ground truth records.
func Index(records []Record) map[QueryKey]*Record {
	m := make(map[QueryKey]*Record, len(records))
	for i := range records {
		m[records[i].Key()] = &records[i]
	}
	return m
}
