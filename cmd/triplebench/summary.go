// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/internal/benchtab"
	"github.com/dice-group/triplebench/internal/report"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print a per-triplestore summary",
		Long: `Summary prints the mean QpS, query mixes per hour, and run outcomes of
every triplestore on every dataset, read from the validated run table
written by combine. If the index statistics are present, a table of
index sizes and loading speeds follows.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := baseDir(cmd)
			if err != nil {
				return err
			}
			html, _ := cmd.Flags().GetBool("html")
			tsv, _ := cmd.Flags().GetBool("tsv")
			if html && tsv {
				return errors.New("--html and --tsv are mutually exclusive")
			}
			format := "text"
			if html {
				format = "html"
			} else if tsv {
				format = "tsv"
			}
			return summary(cmd.OutOrStdout(), filepath.Join(base, dataDir), format)
		},
	}
	cmd.Flags().Bool("html", false, "print HTML tables")
	cmd.Flags().Bool("tsv", false, "print tab-separated values")
	return cmd
}

func summary(w io.Writer, dir, format string) error {
	runs, err := readRuns(filepath.Join(dir, validatedFile))
	if err != nil {
		return err
	}
	labels := benchproc.DefaultLabels()
	rows := benchtab.Aggregate(runs)
	lines := report.Summarize(benchtab.Totals(runs, rows), rows, labels)

	var index []report.IndexLine
	statsPath, indexPath := filepath.Join(dir, datasetStatsFile), filepath.Join(dir, indexStatsFile)
	if exists(statsPath) && exists(indexPath) {
		stats, err := readDatasetStats(statsPath)
		if err != nil {
			return err
		}
		is, err := readIndexStats(indexPath, stats)
		if err != nil {
			return err
		}
		index = report.IndexLines(is, labels)
	}

	switch format {
	case "html":
		return report.WriteHTML(w, lines, index)
	case "tsv":
		return report.WriteTSV(w, lines)
	}
	if err := report.WriteText(w, lines); err != nil {
		return err
	}
	if len(index) > 0 {
		fmt.Fprintln(w)
		return report.WriteIndexText(w, index)
	}
	return nil
}
