// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prepare cleans the raw parsed-result tables of a benchmark
// before they are joined with the runs: release candidate tags are
// stripped from triplestore versions and query identifiers are mapped
// onto the query log the runs were made with.
package prepare

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dice-group/triplebench/benchfmt"
)

// DefaultReleaseTags are the release candidate tags of the evaluated
// Tentris builds.
var DefaultReleaseTags = []string{"rc14_", "rc15_", "-rc5", "-rc4"}

// StripReleaseCandidates removes every occurrence of every tag from s,
// in order.
func StripReleaseCandidates(s string, tags []string) string {
	for _, tag := range tags {
		s = strings.ReplaceAll(s, tag, "")
	}
	return s
}

// StripDir copies every file of srcDir with the given suffix to dstDir,
// stripping tags from the file name and the content. It returns the
// written paths in name order.
func StripDir(srcDir, dstDir, suffix string, tags []string) ([]string, error) {
	names, err := listFiles(srcDir, suffix)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(srcDir, name))
		if err != nil {
			return out, err
		}
		dst := filepath.Join(dstDir, StripReleaseCandidates(name, tags))
		if err := os.WriteFile(dst, []byte(StripReleaseCandidates(string(data), tags)), 0666); err != nil {
			return out, err
		}
		out = append(out, dst)
	}
	sort.Strings(out)
	return out, nil
}

// listFiles returns the names of the regular files in dir that end in
// suffix, sorted.
func listFiles(dir, suffix string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && filepath.Ext(e.Name()) == suffix {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// An Exemption keeps the query identifiers of a triplestore unchanged.
// An empty Dataset matches every dataset.
type Exemption struct {
	Triplestore string
	Dataset     string
}

// A QueryIDMap maps the query identifiers of a parsed-result table,
// numbered by the full query log, onto the identifiers of the runs,
// which were made without the removed queries.
type QueryIDMap struct {
	// Removed lists, per dataset, the identifiers of the queries
	// that were removed from the query log.
	Removed map[string][]int

	// Exempt lists triplestores whose results were already
	// numbered without the removed queries.
	Exempt []Exemption
}

// DefaultQueryIDMap returns the query mapping of the Tentris
// evaluation.
func DefaultQueryIDMap() QueryIDMap {
	return QueryIDMap{
		Removed: map[string][]int{
			"swdf":                nil,
			"dbpedia2015":         {24, 33, 86, 91, 99, 103, 295},
			"watdiv10000":         nil,
			"wikidata-2020-11-11": {109, 235, 365, 451, 466},
		},
		Exempt: []Exemption{
			{Triplestore: "fuseki", Dataset: "wikidata-2020-11-11"},
			{Triplestore: "fuseki-ltj"},
		},
	}
}

func (m QueryIDMap) exempt(dataset, triplestore string) bool {
	for _, e := range m.Exempt {
		if e.Triplestore == triplestore && (e.Dataset == "" || e.Dataset == dataset) {
			return true
		}
	}
	return false
}

// Remap returns the run identifier of query id of dataset as reported
// by triplestore. ok is false if the query was removed. It is an error
// if the dataset is unknown.
func (m QueryIDMap) Remap(id int, dataset, triplestore string) (newID int, ok bool, err error) {
	if m.exempt(dataset, triplestore) {
		return id, true, nil
	}
	removed, known := m.Removed[dataset]
	if !known {
		return 0, false, fmt.Errorf("unknown dataset %q", dataset)
	}
	offset := 0
	for _, r := range removed {
		if id < r {
			break
		} else if id == r {
			return 0, false, nil
		}
		offset++
	}
	return id - offset, true, nil
}

// Concat writes the rows of every file in files to dst as one CSV
// table with the header of the first file, with query identifiers
// remapped by m. Rows of removed queries are dropped. Later files may
// order their columns differently but must not add columns.
func Concat(dst io.Writer, files []string, m QueryIDMap) error {
	cw := csv.NewWriter(dst)
	var header []string
	var pos map[string]int
	for _, file := range files {
		if err := concatFile(cw, file, m, &header, &pos); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func concatFile(cw *csv.Writer, file string, m QueryIDMap, header *[]string, pos *map[string]int) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	names, err := cr.Read()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	for _, col := range []string{benchfmt.ColTriplestore, benchfmt.ColDataset, benchfmt.ColQueryID} {
		if indexOf(names, col) < 0 {
			return fmt.Errorf("%s: %w %q", file, benchfmt.ErrMissingColumn, col)
		}
	}
	if *header == nil {
		*header = append([]string(nil), names...)
		*pos = make(map[string]int, len(names))
		for i, n := range names {
			(*pos)[n] = i
		}
		if err := cw.Write(*header); err != nil {
			return err
		}
	}
	// perm[i] is the output column of input column i.
	perm := make([]int, len(names))
	for i, n := range names {
		p, ok := (*pos)[n]
		if !ok {
			return fmt.Errorf("%s: column %q not in %q", file, n, *header)
		}
		perm[i] = p
	}
	ts, ds, q := indexOf(names, benchfmt.ColTriplestore), indexOf(names, benchfmt.ColDataset), indexOf(names, benchfmt.ColQueryID)

	out := make([]string, len(*header))
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		line, _ := cr.FieldPos(0)
		id, err := strconv.Atoi(strings.TrimSpace(row[q]))
		if err != nil {
			return &benchfmt.SyntaxError{FileName: file, Line: line, Msg: fmt.Sprintf("column %s: %v", benchfmt.ColQueryID, err)}
		}
		newID, ok, err := m.Remap(id, row[ds], row[ts])
		if err != nil {
			return &benchfmt.SyntaxError{FileName: file, Line: line, Msg: err.Error()}
		}
		if !ok {
			continue
		}
		row[q] = strconv.Itoa(newID)
		for i := range out {
			out[i] = ""
		}
		for i, v := range row {
			out[perm[i]] = v
		}
		if err := cw.Write(out); err != nil {
			return err
		}
	}
}

func indexOf(names []string, col string) int {
	for i, n := range names {
		if n == col {
			return i
		}
	}
	return -1
}
