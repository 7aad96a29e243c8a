// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"image/color"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/internal/benchtab"
)

// panelOrder collects the distinct names[i] seen with each datasets[i].
// The names of every dataset are sorted by m. Datasets are returned in
// order of first appearance.
func panelOrder(m benchproc.Mapping, datasets, names []string) (dsOrder []string, byDS map[string][]string) {
	byDS = make(map[string][]string)
	seen := make(map[[2]string]bool)
	for i, ds := range datasets {
		if _, ok := byDS[ds]; !ok {
			dsOrder = append(dsOrder, ds)
			byDS[ds] = nil
		}
		k := [2]string{ds, names[i]}
		if !seen[k] {
			seen[k] = true
			byDS[ds] = append(byDS[ds], names[i])
		}
	}
	for _, ns := range byDS {
		m.Sort(ns)
	}
	return dsOrder, byDS
}

// QPSBoxes draws the distribution of the per-query mean QpS of every
// triplestore, one panel per dataset, on a logarithmic axis. Every
// query is a jittered point and the mean over queries is marked with
// an x. Queries without a successful run are left out.
func QPSBoxes(rows []benchtab.Row, o *Options) ([]string, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	labels := o.labels()
	type cell struct{ ds, ts string }
	values := make(map[cell]plotter.Values)
	var dss, tss []string
	for _, r := range rows {
		c := cell{labels.Datasets.Label(r.Dataset), labels.Triplestores.Label(r.Triplestore)}
		dss, tss = append(dss, c.ds), append(tss, c.ts)
		if v := r.QPS.Mean; v > 0 && !math.IsInf(v, 0) {
			values[c] = append(values[c], v)
		}
	}
	dsOrder, byDS := panelOrder(labels.Triplestores, dss, tss)
	labels.Datasets.Sort(dsOrder)

	var panels []*plot.Plot
	for pi, ds := range dsOrder {
		p := newPlot(ds)
		if pi == 0 {
			p.Y.Label.Text = "QpS"
		}
		lo, hi := 1e-4, 1e4
		for i, ts := range byDS[ds] {
			vs := values[cell{ds, ts}]
			if len(vs) == 0 {
				continue
			}
			box, err := plotter.NewBoxPlot(vg.Points(12), float64(i), vs)
			if err != nil {
				return nil, err
			}
			box.FillColor = labels.Color(ts, benchproc.LightGrey)
			box.GlyphStyle.Radius = 0
			p.Add(box)

			pts := make(plotter.XYs, len(vs))
			for k, v := range vs {
				pts[k] = plotter.XY{X: float64(i) + jitter(k, 0.5), Y: v}
				lo, hi = math.Min(lo, v), math.Max(hi, v)
			}
			strip, err := plotter.NewScatter(pts)
			if err != nil {
				return nil, err
			}
			strip.GlyphStyle = draw.GlyphStyle{Color: color.Gray{0x60}, Radius: vg.Points(0.8), Shape: draw.CircleGlyph{}}
			p.Add(strip)

			mean, err := plotter.NewScatter(plotter.XYs{{X: float64(i), Y: stats.Mean(vs)}})
			if err != nil {
				return nil, err
			}
			mean.GlyphStyle = draw.GlyphStyle{Color: color.Black, Radius: vg.Points(3), Shape: CrossGlyph{}}
			p.Add(mean)
		}
		p.NominalX(byDS[ds]...)
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = powerTicks(int(math.Floor(math.Log10(lo))), int(math.Ceil(math.Log10(hi))))
		p.Y.Min, p.Y.Max = lo, hi
		panels = append(panels, p)
	}
	return o.save("paper-benchmark-results-scatter", vg.Length(len(panels))*6*vg.Centimeter, 7*vg.Centimeter, [][]*plot.Plot{panels})
}

// QMpHBars draws the query mixes per hour of every triplestore, one
// panel per dataset. The bars grow on a logarithmic scale. Triplestores
// without a measurement get no bar.
func QMpHBars(totals []benchtab.Total, o *Options) ([]string, error) {
	if len(totals) == 0 {
		return nil, nil
	}
	labels := o.labels()
	type cell struct{ ds, ts string }
	qmph := make(map[cell]float64)
	var dss, tss []string
	minExp, maxExp := math.Inf(1), math.Inf(-1)
	for _, t := range totals {
		c := cell{labels.Datasets.Label(t.Dataset), labels.Triplestores.Label(t.Triplestore)}
		dss, tss = append(dss, c.ds), append(tss, c.ts)
		if t.QMpH > 0 && !math.IsInf(t.QMpH, 0) {
			qmph[c] = t.QMpH
			e := math.Log10(t.QMpH)
			minExp, maxExp = math.Min(minExp, e), math.Max(maxExp, e)
		}
	}
	base := 0
	if !math.IsInf(minExp, 0) {
		base = int(math.Floor(minExp))
		if float64(base) == minExp {
			base--
		}
	}
	top := 1
	if !math.IsInf(maxExp, 0) {
		top = int(math.Ceil(maxExp)) - base
	}

	dsOrder, byDS := panelOrder(labels.Triplestores, dss, tss)
	labels.Datasets.Sort(dsOrder)
	var panels []*plot.Plot
	for pi, ds := range dsOrder {
		p := newPlot(ds)
		if pi == 0 {
			p.Y.Label.Text = "QMpH"
		}
		for i, ts := range byDS[ds] {
			v, ok := qmph[cell{ds, ts}]
			if !ok {
				continue
			}
			bar, err := plotter.NewBarChart(plotter.Values{math.Log10(v) - float64(base)}, vg.Points(12))
			if err != nil {
				return nil, err
			}
			bar.XMin = float64(i)
			bar.Color = labels.Color(ts, benchproc.LightGrey)
			bar.LineStyle.Width = vg.Points(0.5)
			p.Add(bar)
		}
		p.NominalX(byDS[ds]...)
		p.Y.Tick.Marker = exponentTicks(base, top)
		p.Y.Min, p.Y.Max = 0, float64(top)
		panels = append(panels, p)
	}
	return o.save("paper-benchmark-results-QMpH", vg.Length(len(panels))*6*vg.Centimeter, 6*vg.Centimeter, [][]*plot.Plot{panels})
}
