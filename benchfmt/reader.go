// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"fmt"
	"io"
)

// A Reader reads a run table.
//
// Its API is modeled on bufio.Scanner. Unlike the records of a
// bufio.Scanner, every *Run returned by Result is freshly allocated
// and may be retained by the caller.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	// Comma is the field delimiter. It defaults to ','. It must be
	// set before the first call to Scan.
	Comma rune

	s   tableScanner
	rec Record
}

// A SyntaxError represents a syntax error on a particular line of a
// benchmark table.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader to parse a run table from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	r.s.reset(ior, fileName, r.Comma)
	r.rec = noResult
}

// Scan advances the reader to the next row and reports whether a
// record was read. The caller should use the Result method to get the
// record. If Scan reaches EOF or an error occurs, it returns false, in
// which case the caller should use the Err method to check for errors.
//
// A missing required column or a non-numeric query identifier stops
// the Reader with an error.
func (r *Reader) Scan() bool {
	if r.s.cr == nil {
		panic("Reader used before Reset")
	}
	if r.s.h == nil && r.Comma != 0 {
		r.s.cr.Comma = r.Comma
	}
	if !r.s.next(requiredRunColumns) {
		return false
	}
	if r.s.rowErr != "" {
		r.rec = r.s.syntaxError("%s", r.s.rowErr)
		return true
	}
	rec, err := r.parseRun()
	if err != nil {
		r.s.err = err
		return false
	}
	r.rec = rec
	return true
}

func (r *Reader) parseRun() (Record, error) {
	c := &cells{s: &r.s}
	qid, qerr := c.queryID()
	if qerr != nil {
		return nil, qerr
	}
	run := &Run{
		Triplestore: c.str(ColTriplestore),
		Dataset:     c.str(ColDataset),
		QueryID:     qid,
		ClientID:    c.str(ColClientID),
		Run:         int(c.int(ColRun).V),

		Succeeded:         c.bool(ColSucceeded),
		Failed:            c.count(ColFailed),
		Timeouts:          c.count(ColTimeouts),
		UnknownExceptions: c.count(ColUnknownExceptions),
		WrongCodes:        c.count(ColWrongCodes),

		ContentLength: c.int(ColContentLength),
		Time:          c.float(ColTime),
		QPS:           c.float(ColQPS),
		PenalizedTime: c.float(ColPenalizedTime),
		PenalizedQPS:  c.float(ColPenalizedQPS),

		ParsingSucceeded:    c.bool(ColParsingSucceeded),
		NumberOfVariables:   c.int(ColNumberOfVariables),
		NumberOfSolutions:   c.int(ColNumberOfSolutions),
		NumberOfBindings:    c.int(ColNumberOfBindings),
		ResultParsingTime:   c.float(ColResultParsingTime),
		ParsingErrorMessage: c.str(ColParsingErrorMessage),

		WrongResult:        c.bool(ColWrongResult),
		FullyCorrectResult: c.bool(ColFullyCorrectResult),

		fileName: r.s.fileName,
		line:     r.s.line,
	}
	if c.err != "" {
		return r.s.syntaxError("%s", c.err), nil
	}
	for i, name := range r.s.h.names {
		if name == "" || isRunColumn(name) || i >= len(r.s.row) {
			continue
		}
		run.Extra = append(run.Extra, Field{name, r.s.row[i]})
	}
	return run, nil
}

var runColumnSet = func() map[string]bool {
	m := make(map[string]bool)
	for _, c := range RunColumns {
		m[c] = true
	}
	return m
}()

func isRunColumn(name string) bool {
	return runColumnSet[name]
}

// Result returns the record that was just read by Scan. This is one
// of *Run or *SyntaxError.
func (r *Reader) Result() Record {
	return r.rec
}

// Err returns the error that stopped Scan, if any. If Scan stopped
// because it read the input to completion, or if Scan has not yet
// returned false, Err returns nil.
func (r *Reader) Err() error {
	return r.s.err
}

// ReadRuns reads every run of a table. Malformed rows are skipped and
// passed to warn, if warn is non-nil.
func ReadRuns(ior io.Reader, fileName string, warn func(format string, args ...interface{})) ([]*Run, error) {
	var runs []*Run
	r := NewReader(ior, fileName)
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *Run:
			runs = append(runs, rec)
		case *SyntaxError:
			if warn != nil {
				warn("skipping row: %v", rec)
			}
		}
	}
	return runs, r.Err()
}
