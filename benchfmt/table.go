// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dice-group/triplebench/benchmath"
)

// ErrMissingColumn is wrapped by the error returned when a table lacks
// a required column.
var ErrMissingColumn = errors.New("missing required column")

// A header maps column names to their positions in a row.
type header struct {
	names []string
	pos   map[string]int
}

func newHeader(names []string) *header {
	h := &header{names: names, pos: make(map[string]int, len(names))}
	for i, name := range names {
		name = strings.TrimSpace(name)
		names[i] = name
		if name == "" {
			// Unnamed index column written by dataframe tools.
			continue
		}
		if _, ok := h.pos[name]; !ok {
			h.pos[name] = i
		}
	}
	return h
}

func (h *header) has(col string) bool {
	_, ok := h.pos[col]
	return ok
}

// tableScanner reads the rows of a delimited table with a header.
type tableScanner struct {
	cr       *csv.Reader
	fileName string
	line     int
	h        *header
	row      []string
	rowErr   string // non-empty if row has the wrong shape
	err      error
}

func (s *tableScanner) reset(r io.Reader, fileName string, comma rune) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	s.cr = csv.NewReader(r)
	if comma != 0 {
		s.cr.Comma = comma
	}
	s.cr.FieldsPerRecord = -1
	s.fileName = fileName
	s.line = 0
	s.h = nil
	s.row = nil
	s.err = nil
}

func (s *tableScanner) syntaxError(msg string, args ...interface{}) *SyntaxError {
	return &SyntaxError{s.fileName, s.line, fmt.Sprintf(msg, args...)}
}

// readHeader reads the header row and checks required columns.
func (s *tableScanner) readHeader(required []string) bool {
	names, err := s.cr.Read()
	if err == io.EOF {
		s.err = fmt.Errorf("%s: empty table: %w", s.fileName, ErrMissingColumn)
		return false
	} else if err != nil {
		s.err = fmt.Errorf("%s: %w", s.fileName, err)
		return false
	}
	s.line, _ = s.cr.FieldPos(0)
	s.h = newHeader(names)
	for _, col := range required {
		if !s.h.has(col) {
			s.err = fmt.Errorf("%s: %w %q", s.fileName, ErrMissingColumn, col)
			return false
		}
	}
	return true
}

// next advances to the next data row.
func (s *tableScanner) next(required []string) bool {
	if s.err != nil {
		return false
	}
	if s.h == nil && !s.readHeader(required) {
		return false
	}
	for {
		row, err := s.cr.Read()
		if err == io.EOF {
			return false
		} else if err != nil {
			s.err = fmt.Errorf("%s:%d: %w", s.fileName, s.line+1, err)
			return false
		}
		s.line, _ = s.cr.FieldPos(0)
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		s.row = row
		s.rowErr = ""
		if len(row) != len(s.h.names) {
			s.rowErr = fmt.Sprintf("expected %d fields, got %d", len(s.h.names), len(row))
		}
		return true
	}
}

// cells decodes the named cells of the current row. The first
// malformed cell is remembered in err.
type cells struct {
	s   *tableScanner
	err string
}

func (c *cells) str(col string) string {
	i, ok := c.s.h.pos[col]
	if !ok || i >= len(c.s.row) {
		return ""
	}
	return c.s.row[i]
}

func (c *cells) fail(col string, err error) {
	if c.err == "" {
		c.err = fmt.Sprintf("column %s: %v", col, err)
	}
}

func (c *cells) int(col string) benchmath.Int {
	v, err := benchmath.ParseInt(c.str(col))
	if err != nil {
		c.fail(col, err)
	}
	return v
}

func (c *cells) count(col string) int64 {
	return c.int(col).V
}

func (c *cells) float(col string) benchmath.Float {
	v, err := benchmath.ParseFloat(c.str(col))
	if err != nil {
		c.fail(col, err)
	}
	return v
}

func (c *cells) bool(col string) bool {
	v, err := benchmath.ParseBool(c.str(col))
	if err != nil {
		c.fail(col, err)
	}
	return v
}

// queryID parses the query identifier. A bad identifier is an input
// error rather than a malformed row.
func (c *cells) queryID() (int, *SyntaxError) {
	raw := c.str(ColQueryID)
	v, err := benchmath.ParseInt(raw)
	if err != nil || !v.Valid {
		return 0, c.s.syntaxError("non-numeric %s %q", ColQueryID, raw)
	}
	return int(v.V), nil
}
