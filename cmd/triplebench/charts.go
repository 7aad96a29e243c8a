// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dice-group/triplebench/benchplot"
	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/internal/benchtab"
	"github.com/dice-group/triplebench/internal/nodestats"
)

func chartsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Draw the figures",
		Long: `Charts draws the benchmark figures from the validated run table
written by combine. If the index statistics
(data/index_sizes_and_loading_times.tsv and data/dataset_stats.tsv) or
the hypertrie statistics (raw_data/hypertrie_node_stats) are present,
their figures are drawn as well.

Every benchmark figure is accompanied by a TSV file with its data.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := baseDir(cmd)
			if err != nil {
				return err
			}
			o := &benchplot.Options{Dir: filepath.Join(base, figuresDir), Labels: benchproc.DefaultLabels()}
			if cmd.Flags().Changed("output") {
				o.Dir, _ = cmd.Flags().GetString("output")
			}
			o.Formats, _ = cmd.Flags().GetStringSlice("formats")
			dataset, _ := cmd.Flags().GetString("heatmap-dataset")
			reference, _ := cmd.Flags().GetString("heatmap-reference")

			if err := benchmarkCharts(filepath.Join(base, dataDir), dataset, reference, o); err != nil {
				return err
			}
			if err := indexCharts(filepath.Join(base, dataDir), o); err != nil {
				return err
			}
			return nodeCharts(filepath.Join(base, nodeStatsDir), o)
		},
	}
	cmd.Flags().String("output", "", "output `directory` (default <base-dir>/output/figures)")
	cmd.Flags().StringSlice("formats", []string{"svg", "pdf"}, "file formats to write (svg, pdf, png, eps)")
	cmd.Flags().String("heatmap-dataset", "watdiv10000", "dataset of the relative QpS heat map")
	cmd.Flags().String("heatmap-reference", "tentris-1.1.0_lsb_unused_1", "triplestore the heat map is relative to")
	return cmd
}

func logFiles(files []string) {
	for _, f := range files {
		Logger.Infof("wrote %s", f)
	}
}

// twin returns the path of the TSV file next to a chart file.
func twin(chart string) string {
	return strings.TrimSuffix(chart, filepath.Ext(chart)) + ".tsv"
}

func benchmarkCharts(dir, dataset, reference string, o *benchplot.Options) error {
	runs, err := readRuns(filepath.Join(dir, validatedFile))
	if err != nil {
		return err
	}
	rows := benchtab.Aggregate(runs)
	totals := benchtab.Totals(runs, rows)

	files, err := benchplot.QPSBoxes(rows, o)
	if err != nil {
		return err
	}
	logFiles(files)
	if len(files) > 0 {
		err := writeFile(twin(files[0]), func(w io.Writer) error { return benchtab.WriteRows(w, rows, '\t') })
		if err != nil {
			return err
		}
	}

	files, err = benchplot.QMpHBars(totals, o)
	if err != nil {
		return err
	}
	logFiles(files)
	if len(files) > 0 {
		err := writeFile(twin(files[0]), func(w io.Writer) error { return benchtab.WriteTotals(w, totals, '\t') })
		if err != nil {
			return err
		}
	}

	cells := benchtab.Relative(rows, dataset, reference)
	if len(cells) == 0 {
		Logger.Warnf("no runs of %s on %s; skipping the heat map", reference, dataset)
		return nil
	}
	files, err = benchplot.RelativeHeatMap(cells, dataset, reference, o)
	if err != nil {
		return err
	}
	logFiles(files)
	if len(files) > 0 {
		return writeFile(twin(files[0]), func(w io.Writer) error { return benchtab.WriteRelative(w, cells, '\t') })
	}
	return nil
}

func indexCharts(dir string, o *benchplot.Options) error {
	statsPath, indexPath := filepath.Join(dir, datasetStatsFile), filepath.Join(dir, indexStatsFile)
	if !exists(statsPath) || !exists(indexPath) {
		Logger.Infof("no %s or %s; skipping the index charts", statsPath, indexPath)
		return nil
	}
	stats, err := readDatasetStats(statsPath)
	if err != nil {
		return err
	}
	index, err := readIndexStats(indexPath, stats)
	if err != nil {
		return err
	}
	files, err := benchplot.IndexBars(index, o)
	logFiles(files)
	return err
}

func nodeCharts(dir string, o *benchplot.Options) error {
	if !exists(dir) {
		Logger.Infof("no %s; skipping the node count charts", dir)
		return nil
	}
	long, err := nodestats.ReadNodeCounts(dir, nodestats.Datasets, nodestats.Depths, o.Labels)
	if err != nil {
		return err
	}
	files, err := benchplot.NodeCountBars(long, o)
	logFiles(files)
	if err != nil {
		return err
	}
	files, err = benchplot.FullNodeCountBars(nodestats.FullNodeCounts(long, o.Labels), o)
	logFiles(files)
	return err
}

func readDatasetStats(path string) ([]nodestats.DatasetStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return nodestats.ParseDatasetStats(f, path)
}

func readIndexStats(path string, stats []nodestats.DatasetStats) ([]nodestats.IndexStat, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return nodestats.ReadIndexStats(f, path, stats)
}
