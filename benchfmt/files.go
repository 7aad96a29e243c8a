// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// A Files reads runs from a sequence of run tables, one after the
// other, as if they were a single table.
//
// Files ending in ".tsv" are read as tab-separated; all other files as
// comma-separated. Every file must have its own header.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	next   int // index in Paths of the next file to open
	reader Reader
	file   *os.File
	err    error
}

// open opens the next file of f and reports whether there was one.
func (f *Files) open() bool {
	if f.next >= len(f.Paths) {
		return false
	}
	path := f.Paths[f.next]
	f.next++
	file, err := os.Open(path)
	if err != nil {
		f.err = err
		return false
	}
	f.file = file
	f.reader.Comma = ','
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		f.reader.Comma = '\t'
	}
	f.reader.Reset(file, path)
	return true
}

// Scan advances to the next record in the sequence of files and
// reports whether a record was read. The caller should use the Result
// method to get the record. If Scan reaches the end of the last file,
// or if an error occurs, it returns false. In this case, the caller
// should use the Err method to check for errors.
func (f *Files) Scan() bool {
	for f.err == nil {
		if f.file == nil && !f.open() {
			return false
		}
		if f.reader.Scan() {
			return true
		}
		f.err = f.reader.Err()
		f.file.Close()
		f.file = nil
	}
	return false
}

// Result returns the record that was just read by Scan.
// See Reader.Result.
func (f *Files) Result() Record {
	return f.reader.Result()
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}
