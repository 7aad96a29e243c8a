// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import "github.com/dice-group/triplebench/benchmath"

type joinKey struct {
	triplestore, dataset string
	queryID              int
	contentLength        benchmath.Int
}

// Join enriches runs in place with the parse metadata of the matching
// parsed result. Runs and parsed results match on triplestore,
// dataset, query ID, and content length.
//
// A run's ParsingSucceeded is true only if a matching parsed result
// exists and that result was parsed successfully. Otherwise the run's
// result sizes are cleared. If several parsed results share a key, the
// first one is used and the duplicates are reported to warn.
func Join(runs []*Run, parsed []*ParsedResult, warn func(format string, args ...interface{})) {
	index := make(map[joinKey]*ParsedResult, len(parsed))
	for _, p := range parsed {
		k := joinKey{p.Triplestore, p.Dataset, p.QueryID, p.ContentLength}
		if first, ok := index[k]; ok {
			if warn != nil {
				f, l := p.Pos()
				ff, fl := first.Pos()
				warn("%s:%d: duplicate parsed result for %s/%s query %d; using %s:%d", f, l, p.Triplestore, p.Dataset, p.QueryID, ff, fl)
			}
			continue
		}
		index[k] = p
	}

	for _, r := range runs {
		p, ok := index[joinKey{r.Triplestore, r.Dataset, r.QueryID, r.ContentLength}]
		if !ok {
			r.ClearParse()
			r.NumberOfVariables = benchmath.Int{}
			r.ResultParsingTime = benchmath.Float{}
			r.ParsingErrorMessage = ""
			continue
		}
		r.ParsingSucceeded = p.ParsingSucceeded
		r.NumberOfVariables = p.NumberOfVariables
		r.NumberOfSolutions = p.NumberOfSolutions
		r.NumberOfBindings = p.NumberOfBindings
		r.ResultParsingTime = p.ResultParsingTime
		r.ParsingErrorMessage = p.ParsingErrorMessage
		if !r.ParsingSucceeded {
			r.ClearParse()
		}
	}
}
