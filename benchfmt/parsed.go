// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"io"

	"github.com/dice-group/triplebench/benchmath"
)

// A ParsedResult describes the result payload of one query execution
// as seen by the result parser.
type ParsedResult struct {
	Triplestore   string
	Dataset       string
	QueryID       int
	ContentLength benchmath.Int

	ParsingSucceeded    bool
	NumberOfVariables   benchmath.Int
	NumberOfSolutions   benchmath.Int
	NumberOfBindings    benchmath.Int
	ResultParsingTime   benchmath.Float
	ParsingErrorMessage string

	fileName string
	line     int
}

func (p *ParsedResult) Pos() (fileName string, line int) {
	return p.fileName, p.line
}

var requiredParsedColumns = []string{
	ColTriplestore, ColDataset, ColQueryID, ColContentLength, ColParsingSucceeded,
}

// A ParsedReader reads a parsed-result table. It follows the same
// conventions as Reader.
type ParsedReader struct {
	s   tableScanner
	rec Record
}

// NewParsedReader constructs a reader to parse a parsed-result table
// from r.
func NewParsedReader(r io.Reader, fileName string) *ParsedReader {
	pr := new(ParsedReader)
	pr.s.reset(r, fileName, 0)
	pr.rec = noResult
	return pr
}

// Scan advances to the next row. See Reader.Scan.
func (r *ParsedReader) Scan() bool {
	if !r.s.next(requiredParsedColumns) {
		return false
	}
	if r.s.rowErr != "" {
		r.rec = r.s.syntaxError("%s", r.s.rowErr)
		return true
	}
	c := &cells{s: &r.s}
	qid, qerr := c.queryID()
	if qerr != nil {
		r.s.err = qerr
		return false
	}
	p := &ParsedResult{
		Triplestore:         c.str(ColTriplestore),
		Dataset:             c.str(ColDataset),
		QueryID:             qid,
		ContentLength:       c.int(ColContentLength),
		ParsingSucceeded:    c.bool(ColParsingSucceeded),
		NumberOfVariables:   c.int(ColNumberOfVariables),
		NumberOfSolutions:   c.int(ColNumberOfSolutions),
		NumberOfBindings:    c.int(ColNumberOfBindings),
		ResultParsingTime:   c.float(ColResultParsingTime),
		ParsingErrorMessage: c.str(ColParsingErrorMessage),
		fileName:            r.s.fileName,
		line:                r.s.line,
	}
	if c.err != "" {
		r.rec = r.s.syntaxError("%s", c.err)
	} else {
		r.rec = p
	}
	return true
}

// Result returns the record that was just read by Scan. This is one
// of *ParsedResult or *SyntaxError.
func (r *ParsedReader) Result() Record {
	return r.rec
}

// Err returns the error that stopped Scan, if any.
func (r *ParsedReader) Err() error {
	return r.s.err
}

// ReadParsed reads every row of a parsed-result table. Malformed rows
// are skipped and passed to warn, if warn is non-nil.
func ReadParsed(ior io.Reader, fileName string, warn func(format string, args ...interface{})) ([]*ParsedResult, error) {
	var out []*ParsedResult
	r := NewParsedReader(ior, fileName)
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *ParsedResult:
			out = append(out, rec)
		case *SyntaxError:
			if warn != nil {
				warn("skipping row: %v", rec)
			}
		}
	}
	return out, r.Err()
}
