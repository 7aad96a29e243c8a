// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package groundtruth

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// An ExclusionList maps each dataset to the ascending IDs of its
// queries whose ground truth is flagged NonTentrisSPARQL.
//
// Every dataset with a ground truth record has a key, even if none of
// its queries is excluded.
type ExclusionList map[string][]int

// Exclusions collects the exclusion list of records.
func Exclusions(records []Record) ExclusionList {
	ex := make(ExclusionList)
	for _, r := range records {
		if _, ok := ex[r.Dataset]; !ok {
			ex[r.Dataset] = []int{}
		}
		if r.NonTentrisSPARQL {
			ex[r.Dataset] = append(ex[r.Dataset], r.QueryID)
		}
	}
	for ds, ids := range ex {
		sort.Ints(ids)
		ex[ds] = dedup(ids)
	}
	return ex
}

func dedup(ids []int) []int {
	out := ids[:0]
	for i, id := range ids {
		if i == 0 || id != ids[i-1] {
			out = append(out, id)
		}
	}
	return out
}

// Contains reports whether query queryID of dataset is excluded.
func (ex ExclusionList) Contains(dataset string, queryID int) bool {
	ids := ex[dataset]
	i := sort.SearchInts(ids, queryID)
	return i < len(ids) && ids[i] == queryID
}

// Len returns the number of excluded queries.
func (ex ExclusionList) Len() int {
	n := 0
	for _, ids := range ex {
		n += len(ids)
	}
	return n
}

// WriteJSON writes ex as a JSON object. Keys are sorted, so the output
// is deterministic.
func (ex ExclusionList) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	// Marshal nil slices as empty lists.
	out := make(map[string][]int, len(ex))
	for ds, ids := range ex {
		if ids == nil {
			ids = []int{}
		}
		out[ds] = ids
	}
	return enc.Encode(out)
}

// ReadExclusionList reads an exclusion list written by WriteJSON.
func ReadExclusionList(r io.Reader) (ExclusionList, error) {
	var ex ExclusionList
	if err := json.NewDecoder(r).Decode(&ex); err != nil {
		return nil, fmt.Errorf("reading exclusion list: %w", err)
	}
	for ds, ids := range ex {
		if ids == nil {
			ids = []int{}
		}
		sort.Ints(ids)
		ex[ds] = ids
	}
	return ex, nil
}
