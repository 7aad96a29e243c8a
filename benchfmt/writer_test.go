// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dice-group/triplebench/benchmath"
)

func TestWriter(t *testing.T) {
	const input = `triplestore,dataset,queryID,clientID,run,succeeded,numberOfSolutions,qps,format
fuseki,swdf,1,0,0,1,5,2.5,json
virtuoso,swdf,2,1,3,0,,,xml
`
	runs, err := ReadRuns(strings.NewReader(input), "test", nil)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, WriteRuns(&out, runs))

	want := strings.Join(RunColumns, ",") + ",format\n" +
		"fuseki,swdf,1,0,0,1,0,0,0,0,,,2.5,,,false,,5,,,,false,false,json\n" +
		"virtuoso,swdf,2,1,3,0,0,0,0,0,,,,,,false,,,,,,false,false,xml\n"
	require.Equal(t, want, out.String())

	// The written table reads back to the same runs.
	again, err := ReadRuns(strings.NewReader(out.String()), "test", nil)
	require.NoError(t, err)
	require.Len(t, again, 2)
	require.Equal(t, benchmath.NewInt(5), again[0].NumberOfSolutions)
	require.Equal(t, []Field{{"format", "xml"}}, again[1].Extra)
	require.False(t, again[1].Succeeded)
}

func TestJoin(t *testing.T) {
	runs := []*Run{
		{Triplestore: "fuseki", Dataset: "D", QueryID: 1, ContentLength: benchmath.NewInt(100), NumberOfSolutions: benchmath.NewInt(9)},
		{Triplestore: "fuseki", Dataset: "D", QueryID: 2, ContentLength: benchmath.NewInt(100)},
		{Triplestore: "fuseki", Dataset: "D", QueryID: 3, ContentLength: benchmath.NewInt(7)},
	}
	parsed := []*ParsedResult{
		{Triplestore: "fuseki", Dataset: "D", QueryID: 1, ContentLength: benchmath.NewInt(100), ParsingSucceeded: true,
			NumberOfSolutions: benchmath.NewInt(5), NumberOfBindings: benchmath.NewInt(20)},
		{Triplestore: "fuseki", Dataset: "D", QueryID: 1, ContentLength: benchmath.NewInt(100), ParsingSucceeded: true,
			NumberOfSolutions: benchmath.NewInt(6)},
		{Triplestore: "fuseki", Dataset: "D", QueryID: 2, ContentLength: benchmath.NewInt(100), ParsingSucceeded: false,
			NumberOfSolutions: benchmath.NewInt(3), ParsingErrorMessage: "bad json"},
	}
	var warnings int
	Join(runs, parsed, func(string, ...interface{}) { warnings++ })

	require.Equal(t, 1, warnings)
	require.True(t, runs[0].ParsingSucceeded)
	require.Equal(t, benchmath.NewInt(5), runs[0].NumberOfSolutions)
	require.Equal(t, benchmath.NewInt(20), runs[0].NumberOfBindings)

	require.False(t, runs[1].ParsingSucceeded)
	require.False(t, runs[1].NumberOfSolutions.Valid)
	require.Equal(t, "bad json", runs[1].ParsingErrorMessage)

	// Content length is part of the key.
	require.False(t, runs[2].ParsingSucceeded)
	require.False(t, runs[2].NumberOfSolutions.Valid)
}
