// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/benchunit"
	"github.com/dice-group/triplebench/internal/nodestats"
)

// IndexBars draws two charts of horizontal bars, one panel per dataset:
// the index size in bytes per statement (paper-index-sizes) and the
// loading speed in thousands of statements per second
// (paper-loading-times). Every bar carries its value as a label.
func IndexBars(stats []nodestats.IndexStat, o *Options) ([]string, error) {
	if len(stats) == 0 {
		return nil, nil
	}
	var files []string
	for _, chart := range []struct {
		name, xlabel string
		value        func(nodestats.IndexStat) float64
		label        func(float64) string
	}{
		{"paper-index-sizes", "Index size in bytes per statement", nodestats.IndexStat.BytesPerStatement, benchunit.BytesPerStatement},
		{"paper-loading-times", "Loading speed in 1k statements per second", nodestats.IndexStat.KStatementsPerSecond, benchunit.ThousandsPerSecond},
	} {
		fs, err := indexBars(stats, chart.name, chart.xlabel, chart.value, chart.label, o)
		if err != nil {
			return files, err
		}
		files = append(files, fs...)
	}
	return files, nil
}

func indexBars(stats []nodestats.IndexStat, name, xlabel string, value func(nodestats.IndexStat) float64, label func(float64) string, o *Options) ([]string, error) {
	labels := o.labels()
	type cell struct{ ds, ts string }
	values := make(map[cell]float64)
	var dss, tss []string
	for _, s := range stats {
		c := cell{labels.Datasets.Label(s.Dataset), labels.Triplestores.Label(s.Triplestore)}
		dss, tss = append(dss, c.ds), append(tss, c.ts)
		values[c] = value(s)
	}
	dsOrder, byDS := panelOrder(labels.Triplestores, dss, tss)
	labels.Datasets.Sort(dsOrder)

	var panels []*plot.Plot
	for _, ds := range dsOrder {
		p := newPlot(ds)
		p.X.Label.Text = xlabel
		p.Y.Padding = 0

		// The first triplestore is at the top.
		names := byDS[ds]
		rev := make([]string, len(names))
		max := 0.0
		var xys plotter.XYs
		var texts []string
		for i, ts := range names {
			pos := len(names) - 1 - i
			rev[pos] = ts
			v := values[cell{ds, ts}]
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				continue
			}
			bar, err := plotter.NewBarChart(plotter.Values{v}, vg.Points(10))
			if err != nil {
				return nil, err
			}
			bar.Horizontal = true
			bar.XMin = float64(pos)
			bar.Color = labels.Color(ts, benchproc.LightGrey)
			bar.LineStyle.Width = 0
			p.Add(bar)
			max = math.Max(max, v)
			xys = append(xys, plotter.XY{Y: float64(pos)})
			texts = append(texts, label(v))
		}
		for i := range xys {
			xys[i].X = max * 0.05
		}
		if len(xys) > 0 {
			l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: texts})
			if err != nil {
				return nil, err
			}
			for i := range l.TextStyle {
				l.TextStyle[i].Font.Size = vg.Points(6)
				l.TextStyle[i].YAlign = draw.YCenter
			}
			p.Add(l)
		}
		p.NominalY(rev...)
		p.X.Min, p.X.Max = 0, max*1.01
		p.X.Tick.Marker = plot.ConstantTicks{}
		panels = append(panels, p)
	}
	return o.save(name, vg.Length(len(panels))*4*vg.Centimeter, 5*vg.Centimeter, [][]*plot.Plot{panels})
}

// Node type colors of the node count chart.
var (
	uncompressedColor = hex(0xb3cde3)
	compressedColor   = hex(0x8c96c6)
)

// NodeCountBars draws the node counts of every hypertrie type as
// stacked uncompressed and compressed bars, one panel per height and
// dataset. Heights are rows, from the largest height at the top.
func NodeCountBars(long []nodestats.NodeCount, o *Options) ([]string, error) {
	if len(long) == 0 {
		return nil, nil
	}
	labels := o.labels()
	type cell struct {
		depth    int
		ds, typ  string
		nodeType string
	}
	counts := make(map[cell]float64)
	var dsOrder, types []string
	seenDS, seenType := make(map[string]bool), make(map[string]bool)
	var depths []int
	seenDepth := make(map[int]bool)
	for _, c := range long {
		counts[cell{c.Depth, c.Dataset, c.HypertrieType, c.NodeType}] += float64(c.NodeCount)
		if !seenDS[c.Dataset] {
			seenDS[c.Dataset] = true
			dsOrder = append(dsOrder, c.Dataset)
		}
		if !seenType[c.HypertrieType] {
			seenType[c.HypertrieType] = true
			types = append(types, c.HypertrieType)
		}
		if !seenDepth[c.Depth] {
			seenDepth[c.Depth] = true
			depths = append(depths, c.Depth)
		}
	}
	labels.Datasets.Sort(dsOrder)
	labels.HypertrieTypes.Sort(types)
	sort.Sort(sort.Reverse(sort.IntSlice(depths)))

	panels := make([][]*plot.Plot, len(depths))
	for r, depth := range depths {
		for _, ds := range dsOrder {
			p := newPlot(fmt.Sprintf("Height: %d  Dataset: %s", depth, ds))
			p.Y.Tick.Marker = humanTicks{}
			if len(panels[r]) == 0 {
				p.Y.Label.Text = "Node count"
			}
			for i, typ := range types {
				un, err := plotter.NewBarChart(plotter.Values{counts[cell{depth, ds, typ, nodestats.UncompressedNodes}]}, vg.Points(9))
				if err != nil {
					return nil, err
				}
				un.XMin = float64(i)
				un.Color = uncompressedColor
				un.LineStyle.Width = 0
				co, err := plotter.NewBarChart(plotter.Values{counts[cell{depth, ds, typ, nodestats.CompressedNodes}]}, vg.Points(9))
				if err != nil {
					return nil, err
				}
				co.StackOn(un)
				co.Color = compressedColor
				co.LineStyle.Width = 0
				p.Add(un, co)
			}
			p.NominalX(types...)
			p.Y.Min = 0
			panels[r] = append(panels[r], p)
		}
	}
	return o.save("paper-node-count", vg.Length(len(dsOrder))*5*vg.Centimeter, vg.Length(len(depths))*4*vg.Centimeter, panels)
}

// FullNodeCountBars draws the full node count of every hypertrie type,
// one panel per dataset.
func FullNodeCountBars(full []nodestats.FullNodeCount, o *Options) ([]string, error) {
	if len(full) == 0 {
		return nil, nil
	}
	labels := o.labels()
	type cell struct{ ds, typ string }
	counts := make(map[cell]float64)
	var dss, types []string
	for _, c := range full {
		counts[cell{c.Dataset, c.HypertrieType}] = float64(c.NodeCount)
		dss, types = append(dss, c.Dataset), append(types, c.HypertrieType)
	}
	dsOrder, byDS := panelOrder(labels.HypertrieTypes, dss, types)
	labels.Datasets.Sort(dsOrder)

	var panels []*plot.Plot
	for pi, ds := range dsOrder {
		p := newPlot(ds)
		p.Y.Tick.Marker = humanTicks{}
		p.X.Label.Text = "Hypertrie version"
		if pi == 0 {
			p.Y.Label.Text = "Full node count"
		}
		for i, typ := range byDS[ds] {
			bar, err := plotter.NewBarChart(plotter.Values{counts[cell{ds, typ}]}, vg.Points(9))
			if err != nil {
				return nil, err
			}
			bar.XMin = float64(i)
			bar.Color = labels.TypeColor(typ, benchproc.LightGrey)
			bar.LineStyle.Width = 0
			p.Add(bar)
		}
		p.NominalX(byDS[ds]...)
		p.Y.Min = 0
		panels = append(panels, p)
	}
	return o.save("paper-full-node-count", vg.Length(len(panels))*4*vg.Centimeter, 4*vg.Centimeter, [][]*plot.Plot{panels})
}
