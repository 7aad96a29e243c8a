// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nodestats reads the hypertrie statistics and index
// measurements that accompany a benchmark: dataset sizes, node counts
// per hypertrie layout, and index sizes with loading times.
package nodestats

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dice-group/triplebench/benchfmt"
)

// tsvReader reads a tab-separated table with a header row. Columns are
// looked up by name.
type tsvReader struct {
	cr       *csv.Reader
	fileName string
	pos      map[string]int
	row      []string
	line     int
}

func newTSVReader(r io.Reader, fileName string, required ...string) (*tsvReader, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	hdr, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: empty table: %w", fileName, benchfmt.ErrMissingColumn)
	} else if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	t := &tsvReader{cr: cr, fileName: fileName, pos: make(map[string]int)}
	for i, name := range hdr {
		t.pos[name] = i
	}
	for _, col := range required {
		if _, ok := t.pos[col]; !ok {
			return nil, fmt.Errorf("%s: %w %q", fileName, benchfmt.ErrMissingColumn, col)
		}
	}
	return t, nil
}

// next advances to the next row. It returns io.EOF at the end of the
// table.
func (t *tsvReader) next() error {
	row, err := t.cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return err
		}
		return fmt.Errorf("%s: %w", t.fileName, err)
	}
	t.row = row
	t.line, _ = t.cr.FieldPos(0)
	return nil
}

func (t *tsvReader) str(col string) string {
	i, ok := t.pos[col]
	if !ok || i >= len(t.row) {
		return ""
	}
	return t.row[i]
}

func (t *tsvReader) errorf(col string, err error) error {
	return &benchfmt.SyntaxError{FileName: t.fileName, Line: t.line, Msg: fmt.Sprintf("column %s: %v", col, err)}
}

func (t *tsvReader) int(col string) (int64, error) {
	v, err := strconv.ParseInt(t.str(col), 10, 64)
	if err != nil {
		return 0, t.errorf(col, err)
	}
	return v, nil
}

func (t *tsvReader) float(col string) (float64, error) {
	v, err := strconv.ParseFloat(t.str(col), 64)
	if err != nil {
		return 0, t.errorf(col, err)
	}
	return v, nil
}

func openTSV(path string, required ...string) (*tsvReader, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	t, err := newTSVReader(f, path, required...)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return t, f, nil
}

func writeTSV(w io.Writer, header []string, n int, row func(i int) []string) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	cw.Write(header)
	for i := 0; i < n; i++ {
		cw.Write(row(i))
	}
	cw.Flush()
	return cw.Error()
}
