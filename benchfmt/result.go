// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchfmt reads and writes the tabular triplestore benchmark
// formats: the per-run table produced by the benchmark harness, the
// parsed-result table describing each result payload, and the
// annotated run table written after validation.
//
// Tables are delimited text with a header row. Columns are looked up
// by name, so their order does not matter, and columns this package
// does not know are carried through unchanged.
//
// The Reader is modeled on bufio.Scanner. A row that cannot be parsed
// is returned as a *SyntaxError record so callers can skip and report
// it; a missing required column or a non-numeric query identifier
// stops the Reader.
package benchfmt

import (
	"github.com/dice-group/triplebench/benchmath"
)

// Column names of the run tables.
const (
	ColTriplestore         = "triplestore"
	ColDataset             = "dataset"
	ColQueryID             = "queryID"
	ColClientID            = "clientID"
	ColRun                 = "run"
	ColSucceeded           = "succeeded"
	ColFailed              = "failed"
	ColTimeouts            = "timeouts"
	ColUnknownExceptions   = "unknownExceptions"
	ColWrongCodes          = "wrongCodes"
	ColContentLength       = "contentLength"
	ColTime                = "time"
	ColQPS                 = "qps"
	ColPenalizedTime       = "penalizedTime"
	ColPenalizedQPS        = "penalizedQPS"
	ColParsingSucceeded    = "parsingSucceeded"
	ColNumberOfVariables   = "numberOfVariables"
	ColNumberOfSolutions   = "numberOfSolutions"
	ColNumberOfBindings    = "numberOfBindings"
	ColResultParsingTime   = "resultParsingTime"
	ColParsingErrorMessage = "parsingErrorMessage"
	ColWrongResult         = "wrongResult"
	ColFullyCorrectResult  = "fully_correct_result"
)

// RunColumns is the column order of written run tables. Columns a
// Run carries in Extra follow these.
var RunColumns = []string{
	ColTriplestore, ColDataset, ColQueryID, ColClientID, ColRun,
	ColSucceeded, ColFailed, ColTimeouts, ColUnknownExceptions, ColWrongCodes,
	ColContentLength, ColTime, ColQPS, ColPenalizedTime, ColPenalizedQPS,
	ColParsingSucceeded, ColNumberOfVariables, ColNumberOfSolutions, ColNumberOfBindings,
	ColResultParsingTime, ColParsingErrorMessage,
	ColWrongResult, ColFullyCorrectResult,
}

// requiredRunColumns must be present in every run table.
var requiredRunColumns = []string{
	ColTriplestore, ColDataset, ColQueryID, ColClientID, ColRun, ColSucceeded,
}

// A Record is a single record read from a table. It is one of
// *Run, *ParsedResult, or *SyntaxError.
type Record interface {
	Pos() (fileName string, line int)
}

// A Run is one observation of one triplestore executing one query
// against one dataset for one client during one benchmark mix.
type Run struct {
	Triplestore string
	Dataset     string
	QueryID     int
	ClientID    string
	Run         int

	Succeeded         bool
	Failed            int64
	Timeouts          int64
	UnknownExceptions int64
	WrongCodes        int64

	ContentLength benchmath.Int
	Time          benchmath.Float
	QPS           benchmath.Float
	PenalizedTime benchmath.Float
	PenalizedQPS  benchmath.Float

	// Parse metadata. NumberOfSolutions and NumberOfBindings are
	// only present when ParsingSucceeded is true.
	ParsingSucceeded    bool
	NumberOfVariables   benchmath.Int
	NumberOfSolutions   benchmath.Int
	NumberOfBindings    benchmath.Int
	ResultParsingTime   benchmath.Float
	ParsingErrorMessage string

	// Validation annotations.
	WrongResult        bool
	FullyCorrectResult bool

	// Extra holds columns of the input that Run does not model,
	// in input order.
	Extra []Field

	fileName string
	line     int
}

// A Field is a named cell that is carried through unchanged.
type Field struct {
	Key, Value string
}

// Pos returns the file name and line number of the row r was read
// from.
func (r *Run) Pos() (fileName string, line int) {
	return r.fileName, r.line
}

// Clone makes a copy of r that shares no state with r.
func (r *Run) Clone() *Run {
	r2 := *r
	r2.Extra = append([]Field(nil), r.Extra...)
	return &r2
}

// GetExtra returns the value of the extra column key.
func (r *Run) GetExtra(key string) (string, bool) {
	for _, f := range r.Extra {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// ClearParse drops the result sizes of r. It maintains the invariant
// that result sizes are absent when parsing did not succeed.
func (r *Run) ClearParse() {
	r.ParsingSucceeded = false
	r.NumberOfSolutions = benchmath.Int{}
	r.NumberOfBindings = benchmath.Int{}
}
