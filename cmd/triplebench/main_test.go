// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dice-group/triplebench/internal/benchtab"
	"github.com/dice-group/triplebench/internal/diff"
	"github.com/dice-group/triplebench/storage/db"
)

// newBase copies testdata/base into a fresh base directory.
func newBase(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src := filepath.Join("testdata", "base")
	err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(dir, rel)
		if info.IsDir() {
			return os.MkdirAll(dst, 0777)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(dst, data, 0666)
	})
	require.NoError(t, err)
	return dir
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	t.Logf("triplebench %s", strings.Join(args, " "))
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return out.String()
}

// compare checks got against testdata/<name>.golden. On a mismatch it
// writes testdata/<name>.got for reference.
func compare(t *testing.T, name string, got []byte) {
	t.Helper()
	wantPath := filepath.Join("testdata", name+".golden")
	want, err := os.ReadFile(wantPath)
	require.NoError(t, err)
	d := diff.Diff(string(want), string(got))
	if d == "" {
		return
	}
	t.Errorf("%s differs:\n%s", wantPath, d)
	gotPath := filepath.Join("testdata", name+".got")
	if err := os.WriteFile(gotPath, got, 0666); err != nil {
		t.Fatalf("error writing %s: %s", gotPath, err)
	}
}

func compareFile(t *testing.T, name, path string) {
	t.Helper()
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	compare(t, name, got)
}

func TestCombine(t *testing.T) {
	base := newBase(t)
	run(t, "--base-dir", base, "combine")

	data := filepath.Join(base, dataDir)
	compareFile(t, "combine.ground_truth", filepath.Join(data, groundTruthFile))
	compareFile(t, "combine.exclude", filepath.Join(data, excludeFile))
	compareFile(t, "combine.validated", filepath.Join(data, validatedFile))

	// A wrong result no longer counts as succeeded.
	runs, err := readRuns(filepath.Join(data, validatedFile))
	require.NoError(t, err)
	require.Len(t, runs, 4)
	wrong := runs[3]
	require.Equal(t, "tentris-1.1.0_lsb_unused_1", wrong.Triplestore)
	require.Equal(t, 3, wrong.QueryID)
	require.True(t, wrong.WrongResult)
	require.False(t, wrong.Succeeded)
	require.False(t, wrong.QPS.Valid)
	require.True(t, wrong.PenalizedTime.Valid)

	agg, err := os.ReadFile(filepath.Join(data, aggregatedFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(agg), "\n"), "\n")
	require.Len(t, lines, 5, "header and one row per triplestore and query")
	require.Equal(t, strings.Join(benchtab.RowColumns(), ","), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "fuseki,swdf,1,0,"), lines[1])
}

func TestCombineMissingParsed(t *testing.T) {
	base := newBase(t)
	require.NoError(t, os.Remove(filepath.Join(base, dataDir, parsedFile)))
	run(t, "--base-dir", base, "combine")

	// Without parse metadata there is no ground truth and nothing is
	// excluded.
	ex, err := os.ReadFile(filepath.Join(base, dataDir, excludeFile))
	require.NoError(t, err)
	require.Equal(t, "{\n  \"swdf\": []\n}\n", string(ex))
}

func TestCombineSQLite(t *testing.T) {
	base := newBase(t)
	path := filepath.Join(t.TempDir(), "runs.db")
	// A second export replaces the first.
	for i := 0; i < 2; i++ {
		run(t, "--base-dir", base, "combine", "--sqlite", path)
	}

	d, err := db.OpenSQL("sqlite3", path)
	require.NoError(t, err)
	defer d.Close()
	ctx := context.Background()
	n, err := d.CountRuns(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	params, err := d.Parameters(ctx)
	require.NoError(t, err)
	require.Equal(t, "fuseki", params["reference"])
	require.Equal(t, "10", params["small_max"])
	require.Contains(t, params, "host_arch")
}

func TestBaseDirFromEnv(t *testing.T) {
	base := newBase(t)
	t.Setenv("TRIPLEBENCH_BASE_DIR", base)
	run(t, "combine")
	require.True(t, exists(filepath.Join(base, dataDir, validatedFile)))
}

func TestSummary(t *testing.T) {
	base := newBase(t)
	run(t, "--base-dir", base, "combine")

	compare(t, "summary.tsv", []byte(run(t, "--base-dir", base, "summary", "--tsv")))

	text := run(t, "--base-dir", base, "summary")
	require.Contains(t, text, "SWDF")
	require.Contains(t, text, "277K")

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--base-dir", base, "summary", "--tsv", "--html"})
	require.Error(t, cmd.Execute())
}

func TestCharts(t *testing.T) {
	base := newBase(t)
	run(t, "--base-dir", base, "combine")
	run(t, "--base-dir", base, "charts", "--formats", "svg",
		"--heatmap-dataset", "swdf", "--heatmap-reference", "tentris-1.1.0_lsb_unused_1")

	figures := filepath.Join(base, figuresDir)
	for _, name := range []string{
		"paper-benchmark-results-scatter",
		"paper-benchmark-results-QMpH",
		"paper-heatmap-swdf-rel-Ti",
	} {
		for _, ext := range []string{".svg", ".tsv"} {
			st, err := os.Stat(filepath.Join(figures, name+ext))
			require.NoError(t, err)
			require.NotZero(t, st.Size(), name+ext)
		}
	}
}

func TestPolicy(t *testing.T) {
	t.Setenv("TRIPLEBENCH_RTOL", "0.25")
	t.Setenv("TRIPLEBENCH_SMALL_MAX", "20")
	t.Setenv("TRIPLEBENCH_REFERENCE", "virtuoso")

	cmd := combineCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--small-max", "5"}))
	cfg, p, err := policy(cmd)
	require.NoError(t, err)
	require.Equal(t, "virtuoso", cfg.Reference, "environment over default")
	require.Equal(t, "tentris", cfg.UnderTest)
	require.Equal(t, 0.25, p.Tolerance.RTol)
	require.Equal(t, int64(5), p.SmallMax, "flag over environment")

	t.Setenv("TRIPLEBENCH_RTOL", "lots")
	cmd = combineCmd()
	_, p, err = policy(cmd)
	require.NoError(t, err)
	require.Equal(t, 0.1, p.Tolerance.RTol, "unparsable values are ignored")

	cmd = combineCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--rtol", "-1"}))
	_, _, err = policy(cmd)
	require.Error(t, err)
}
