// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Triplebench analyzes the results of a triplestore benchmark.
//
// Usage:
//
//	triplebench [--base-dir dir] command [flags]
//
// The base directory holds the raw inputs under raw_data, the derived
// tables under data, and the charts under output/figures. It defaults
// to $TRIPLEBENCH_BASE_DIR or the working directory. A .env file in
// the working directory or the base directory may set any of the
// TRIPLEBENCH_* variables.
//
// The commands are meant to run in this order:
//
//	prepare-parsed  clean and concatenate raw_data/parsed_results/*.csv
//	combine         join, resolve ground truth, validate, and aggregate
//	dataset-stats   extract dataset sizes from the hypertrie statistics
//	node-counts     extract hypertrie node counts
//	charts          draw the figures
//	summary         print a per-triplestore summary
//
// Set LOG_LEVEL to DEBUG, INFO, WARN, or ERROR to control logging.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dice-group/triplebench/benchfmt"
	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/internal/nodestats"
	"github.com/dice-group/triplebench/internal/prepare"
)

var version = "0.1.0"

// Names of the directories and tables under the base directory.
const (
	dataDir      = "data"
	figuresDir   = "output/figures"
	parsedRawDir = "raw_data/parsed_results"
	nodeStatsDir = "raw_data/hypertrie_node_stats"

	runsFile               = "benchmarking_results.csv"
	parsedFile             = "parsed_results_stats.csv"
	groundTruthFile        = "result_stats_ground_truth.csv"
	excludeFile            = "exclude_queries.json"
	validatedFile          = "benchmarking_results_with_result_stats.csv"
	aggregatedFile         = "benchmarking_results_with_result_stats_agg.csv"
	datasetStatsFile       = "dataset_stats.tsv"
	indexStatsFile         = "index_sizes_and_loading_times.tsv"
	longNodeCountsFile     = "long_node_counts.tsv"
	longFullNodeCountsFile = "long_fullnode_counts.tsv"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		Logger.Errorf("%v", err)
		Logger.Sync()
		os.Exit(1)
	}
	Logger.Sync()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "triplebench",
		Short: "Analyze triplestore benchmark results",
		Long: `Triplebench turns the raw results of a triplestore benchmark into
validated run tables, per-query statistics, summaries, and charts.

Runs whose result size disagrees with the ground truth of their query
lose their success, so throughput only counts correct answers.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("base-dir", ".", "directory holding raw_data, data, and output (env TRIPLEBENCH_BASE_DIR)")

	rootCmd.AddCommand(prepareParsedCmd())
	rootCmd.AddCommand(combineCmd())
	rootCmd.AddCommand(datasetStatsCmd())
	rootCmd.AddCommand(nodeCountsCmd())
	rootCmd.AddCommand(chartsCmd())
	rootCmd.AddCommand(summaryCmd())
	return rootCmd
}

// writeFile creates path, including its directory, and fills it with
// write.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	Logger.Infof("wrote %s", path)
	return nil
}

// readRuns reads the run tables in paths. Malformed rows are logged and
// skipped.
func readRuns(paths ...string) ([]*benchfmt.Run, error) {
	files := benchfmt.Files{Paths: paths}
	var runs []*benchfmt.Run
	skipped := 0
	for files.Scan() {
		switch rec := files.Result().(type) {
		case *benchfmt.Run:
			runs = append(runs, rec)
		case *benchfmt.SyntaxError:
			warn("skipping row: %v", rec)
			skipped++
		}
	}
	if err := files.Err(); err != nil {
		return nil, err
	}
	Logger.Infof("read %d runs from %v, skipped %d rows", len(runs), paths, skipped)
	return runs, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func prepareParsedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare-parsed",
		Short: "Clean and concatenate the parsed-result tables",
		Long: `Prepare-parsed strips release candidate tags from every CSV file in
raw_data/parsed_results, maps their query IDs onto the query log of
the runs, and concatenates them into data/parsed_results_stats.csv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := baseDir(cmd)
			if err != nil {
				return err
			}
			tags, _ := cmd.Flags().GetStringSlice("release-tags")

			in := filepath.Join(base, parsedRawDir)
			if !exists(in) {
				return fmt.Errorf("there must be a %s directory in the base directory %s", parsedRawDir, base)
			}
			tmp, err := os.MkdirTemp("", "triplebench")
			if err != nil {
				return err
			}
			defer os.RemoveAll(tmp)

			files, err := prepare.StripDir(in, tmp, ".csv", tags)
			if err != nil {
				return err
			}
			Logger.Infof("concatenating %d parsed-result tables", len(files))
			return writeFile(filepath.Join(base, dataDir, parsedFile), func(w io.Writer) error {
				return prepare.Concat(w, files, prepare.DefaultQueryIDMap())
			})
		},
	}
	cmd.Flags().StringSlice("release-tags", prepare.DefaultReleaseTags, "release candidate tags to strip")
	return cmd
}

func datasetStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dataset-stats",
		Short: "Extract dataset sizes from the hypertrie statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := baseDir(cmd)
			if err != nil {
				return err
			}
			datasets, _ := cmd.Flags().GetStringSlice("datasets")
			stats, err := nodestats.ReadDatasetStats(filepath.Join(base, nodeStatsDir), datasets)
			if err != nil {
				return err
			}
			return writeFile(filepath.Join(base, dataDir, datasetStatsFile), func(w io.Writer) error {
				return nodestats.WriteDatasetStats(w, stats)
			})
		},
	}
	cmd.Flags().StringSlice("datasets", nodestats.Datasets, "datasets to extract")
	return cmd
}

func nodeCountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node-counts",
		Short: "Extract hypertrie node counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := baseDir(cmd)
			if err != nil {
				return err
			}
			datasets, _ := cmd.Flags().GetStringSlice("datasets")
			depths, _ := cmd.Flags().GetIntSlice("depths")
			labels := benchproc.DefaultLabels()

			long, err := nodestats.ReadNodeCounts(filepath.Join(base, nodeStatsDir), datasets, depths, labels)
			if err != nil {
				return err
			}
			err = writeFile(filepath.Join(base, dataDir, longNodeCountsFile), func(w io.Writer) error {
				return nodestats.WriteNodeCounts(w, long)
			})
			if err != nil {
				return err
			}
			return writeFile(filepath.Join(base, dataDir, longFullNodeCountsFile), func(w io.Writer) error {
				return nodestats.WriteFullNodeCounts(w, nodestats.FullNodeCounts(long, labels))
			})
		},
	}
	cmd.Flags().StringSlice("datasets", nodestats.Datasets, "datasets to extract")
	cmd.Flags().IntSlice("depths", nodestats.Depths, "hypertrie heights to extract")
	return cmd
}
