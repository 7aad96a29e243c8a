// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchfmt

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dice-group/triplebench/benchmath"
)

func parseAll(t *testing.T, data string) ([]Record, error) {
	t.Helper()
	r := NewReader(strings.NewReader(data), "test")
	var out []Record
	for r.Scan() {
		switch rec := r.Result().(type) {
		case *Run:
			out = append(out, rec)
		case *SyntaxError:
			out = append(out, rec)
		default:
			t.Fatalf("unexpected result type %T", rec)
		}
	}
	return out, r.Err()
}

func printRecord(w io.Writer, r Record) {
	switch r := r.(type) {
	case *Run:
		fmt.Fprintf(w, "%s %s q%d c%s r%d ok=%v nos=%q nob=%q qps=%q", r.Triplestore, r.Dataset, r.QueryID, r.ClientID, r.Run, r.Succeeded, r.NumberOfSolutions, r.NumberOfBindings, r.QPS)
		for _, f := range r.Extra {
			fmt.Fprintf(w, " {%s: %s}", f.Key, f.Value)
		}
		fmt.Fprintf(w, "\n")
	case *SyntaxError:
		fmt.Fprintf(w, "SyntaxError: %s\n", r)
	default:
		panic(fmt.Sprintf("unknown record type %T", r))
	}
}

func TestReader(t *testing.T) {
	type testCase struct {
		name, input, want string
	}
	for _, test := range []testCase{
		{
			"basic",
			`triplestore,dataset,queryID,clientID,run,succeeded,numberOfSolutions,numberOfBindings,qps
fuseki,swdf,1,0,0,1,5,20,12.5
`,
			"fuseki swdf q1 c0 r0 ok=true nos=\"5\" nob=\"20\" qps=\"12.5\"\n",
		},
		{
			"column order and extras",
			`format,qps,succeeded,run,clientID,queryID,dataset,triplestore
json,3,True,2,1,7,D,virtuoso
`,
			"virtuoso D q7 c1 r2 ok=true nos=\"\" nob=\"\" qps=\"3\" {format: json}\n",
		},
		{
			"index column and missing values",
			`,triplestore,dataset,queryID,clientID,run,succeeded,numberOfSolutions,numberOfBindings,qps
0,gstore,swdf,3.0,0,0,0,,NaN,
`,
			"gstore swdf q3 c0 r0 ok=false nos=\"\" nob=\"\" qps=\"\"\n",
		},
		{
			"malformed cell",
			`triplestore,dataset,queryID,clientID,run,succeeded,qps
fuseki,swdf,1,0,0,1,fast
fuseki,swdf,2,0,0,1,1
`,
			"SyntaxError: test:2: column qps: invalid number \"fast\"\n" +
				"fuseki swdf q2 c0 r0 ok=true nos=\"\" nob=\"\" qps=\"1\"\n",
		},
		{
			"short row",
			`triplestore,dataset,queryID,clientID,run,succeeded
fuseki,swdf,1
`,
			"SyntaxError: test:2: expected 6 fields, got 3\n",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			recs, err := parseAll(t, test.input)
			require.NoError(t, err)
			var got strings.Builder
			for _, rec := range recs {
				printRecord(&got, rec)
			}
			require.Equal(t, test.want, got.String())
		})
	}
}

func TestReaderFatal(t *testing.T) {
	_, err := parseAll(t, "triplestore,dataset,queryID,clientID,run\nfuseki,swdf,1,0,0\n")
	require.True(t, errors.Is(err, ErrMissingColumn), "got %v", err)
	require.Contains(t, err.Error(), `"succeeded"`)

	recs, err := parseAll(t, "triplestore,dataset,queryID,clientID,run,succeeded\nfuseki,swdf,1,0,0,1\nfuseki,swdf,q2,0,0,1\nfuseki,swdf,3,0,0,1\n")
	var se *SyntaxError
	require.True(t, errors.As(err, &se), "got %v", err)
	require.Equal(t, 3, se.Line)
	require.Contains(t, se.Msg, `"q2"`)
	// Rows before the bad identifier were still delivered.
	require.Len(t, recs, 1)
}

func TestReadRunsWarns(t *testing.T) {
	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}
	runs, err := ReadRuns(strings.NewReader("triplestore,dataset,queryID,clientID,run,succeeded,time\nB,D,1,0,0,1,x\nB,D,2,0,0,1,4\n"), "in.csv", warn)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, benchmath.NewFloat(4), runs[0].Time)
	require.Equal(t, []string{`skipping row: in.csv:2: column time: invalid number "x"`}, warnings)
}
