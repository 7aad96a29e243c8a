// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/groundtruth"
	"github.com/dice-group/triplebench/internal/benchtab"
	"github.com/dice-group/triplebench/storage/db"
	_ "github.com/dice-group/triplebench/storage/db/sqlite3"
	"github.com/dice-group/triplebench/validate"
)

func combineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Validate the benchmark runs against the ground truth",
		Long: `Combine joins the runs in data/benchmarking_results.csv with the
parsed-result statistics in data/parsed_results_stats.csv, resolves the
ground truth of every query, drops the queries that only the
triplestore under test cannot answer, validates every run, and
aggregates the runs per query.

It writes result_stats_ground_truth.csv, exclude_queries.json,
benchmarking_results_with_result_stats.csv, and
benchmarking_results_with_result_stats_agg.csv to the data directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := baseDir(cmd)
			if err != nil {
				return err
			}
			cfg, p, err := policy(cmd)
			if err != nil {
				return err
			}
			sqlitePath, _ := cmd.Flags().GetString("sqlite")
			return combine(cmd.Context(), filepath.Join(base, dataDir), sqlitePath, cfg, p)
		},
	}
	addPolicyFlags(cmd)
	cmd.Flags().String("sqlite", "", "also export runs and ground truth to this sqlite3 `file`")
	return cmd
}

func combine(ctx context.Context, dir, sqlitePath string, cfg groundtruth.Config, p validate.Policy) error {
	runs, err := readRuns(filepath.Join(dir, runsFile))
	if err != nil {
		return err
	}
	parsed, err := readParsed(filepath.Join(dir, parsedFile))
	if err != nil {
		return err
	}
	benchfmt.Join(runs, parsed, warn)

	truths := groundtruth.NewResolver(cfg).ResolveAll(runs)
	err = writeFile(filepath.Join(dir, groundTruthFile), func(w io.Writer) error {
		return groundtruth.WriteCSV(w, truths)
	})
	if err != nil {
		return err
	}
	ex := groundtruth.Exclusions(truths)
	Logger.Infof("resolved the ground truth of %d queries, excluding %d", len(truths), ex.Len())
	if err := writeFile(filepath.Join(dir, excludeFile), ex.WriteJSON); err != nil {
		return err
	}

	validated := validate.NewValidator(p).ApplyAll(runs, truths, ex)
	wrong := 0
	for _, r := range validated {
		if r.WrongResult {
			wrong++
		}
	}
	Logger.Infof("validated %d runs, %d with a wrong result", len(validated), wrong)
	err = writeFile(filepath.Join(dir, validatedFile), func(w io.Writer) error {
		return benchfmt.WriteRuns(w, validated)
	})
	if err != nil {
		return err
	}

	rows := benchtab.Aggregate(validated)
	err = writeFile(filepath.Join(dir, aggregatedFile), func(w io.Writer) error {
		return benchtab.WriteRows(w, rows, ',')
	})
	if err != nil {
		return err
	}

	if sqlitePath != "" {
		return export(ctx, sqlitePath, validated, truths, parameters(cfg, p))
	}
	return nil
}

// readParsed reads a parsed-result table. A missing table is not an
// error: every run then counts as unparsed.
func readParsed(path string) ([]*benchfmt.ParsedResult, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		Logger.Warnf("%s does not exist; treating every result as unparsed", path)
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	parsed, err := benchfmt.ReadParsed(f, path, warn)
	if err != nil {
		return nil, err
	}
	Logger.Infof("read %d parsed results from %s", len(parsed), path)
	return parsed, nil
}

// export replaces the sqlite3 database at path with the validated runs,
// the ground truth, and the analysis parameters.
func export(ctx context.Context, path string, runs []*benchfmt.Run, truths []groundtruth.Record, params map[string]string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	d, err := db.OpenSQL("sqlite3", path)
	if err != nil {
		return err
	}
	defer d.Close()
	if err := d.InsertRuns(ctx, runs); err != nil {
		return err
	}
	if err := d.InsertGroundTruth(ctx, truths); err != nil {
		return err
	}
	for k, v := range db.HostParameters() {
		params[k] = v
	}
	if err := d.SetParameters(ctx, params); err != nil {
		return err
	}
	Logger.Infof("exported %d runs to %s", len(runs), path)
	return nil
}
