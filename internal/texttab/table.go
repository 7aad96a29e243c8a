// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package texttab lays out plain-text tables for terminal summaries.
package texttab

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Table does layout of text-based tables.
//
// Row and Cell return the Table so callers can chain them to fill a
// row at once.
type Table struct {
	rows [][]cell
	cols int
}

type cell struct {
	value string
	align align
	rule  bool
}

// A CellOption changes how a cell is laid out.
type CellOption func(c *cell)

var (
	Left  CellOption = func(c *cell) { c.align = alignLeft }
	Right CellOption = func(c *cell) { c.align = alignRight }
)

type align int

const (
	alignLeft align = iota
	alignRight
)

func (a align) pad(s string, w int) string {
	n := w - utf8.RuneCountInString(s)
	if n <= 0 {
		return s
	}
	if a == alignRight {
		return strings.Repeat(" ", n) + s
	}
	return s + strings.Repeat(" ", n)
}

// Row starts a new row in table t.
func (t *Table) Row() *Table {
	t.rows = append(t.rows, nil)
	return t
}

// Cell adds a cell at the end of the current row.
func (t *Table) Cell(value string, opts ...CellOption) *Table {
	if len(t.rows) == 0 {
		t.Row()
	}
	c := cell{value: value}
	for _, o := range opts {
		o(&c)
	}
	r := len(t.rows) - 1
	t.rows[r] = append(t.rows[r], c)
	if n := len(t.rows[r]); n > t.cols {
		t.cols = n
	}
	return t
}

// Cellf is Cell with a formatted value.
func (t *Table) Cellf(format string, args ...interface{}) *Table {
	return t.Cell(fmt.Sprintf(format, args...), Right)
}

// Rule adds a row that draws a horizontal line under every column.
func (t *Table) Rule() *Table {
	t.rows = append(t.rows, []cell{{rule: true}})
	return t
}

// Format lays out table t and writes it to w. Columns are separated by
// two spaces and lines carry no trailing spaces.
func (t *Table) Format(w io.Writer) error {
	ws := make([]int, t.cols)
	for _, row := range t.rows {
		for i, c := range row {
			if n := utf8.RuneCountInString(c.value); n > ws[i] {
				ws[i] = n
			}
		}
	}

	var line strings.Builder
	for _, row := range t.rows {
		line.Reset()
		if len(row) == 1 && row[0].rule {
			for i, n := range ws {
				if i > 0 {
					line.WriteString("  ")
				}
				line.WriteString(strings.Repeat("-", n))
			}
		} else {
			for i, c := range row {
				if i > 0 {
					line.WriteString("  ")
				}
				line.WriteString(c.align.pad(c.value, ws[i]))
			}
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line.String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
