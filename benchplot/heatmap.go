// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"image/color"
	"math"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/dice-group/triplebench/internal/benchtab"
)

// Bounds of the relative heat map color scale, in decimal orders of
// magnitude.
const (
	RelativeMin = -4.5
	RelativeMax = 1.0
)

// relGrid is a query by triplestore grid of log10 relative QpS.
type relGrid struct {
	z [][]float64 // z[row][col]
}

func (g relGrid) Dims() (c, r int)   { return len(g.z[0]), len(g.z) }
func (g relGrid) Z(c, r int) float64 { return g.z[r][c] }
func (g relGrid) X(c int) float64    { return float64(c) }
func (g relGrid) Y(r int) float64    { return float64(r) }

// clamp limits the decimal logarithm of a ratio to the color scale.
// NaN stays NaN.
func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	return math.Max(RelativeMin, math.Min(RelativeMax, v))
}

// RelativeHeatMap draws the QpS of every triplestore on every query of
// dataset relative to reference, as computed by benchtab.Relative.
// Cells without a ratio are black. The first query is at the top.
func RelativeHeatMap(cells []benchtab.RelCell, dataset, reference string, o *Options) ([]string, error) {
	if len(cells) == 0 {
		return nil, nil
	}
	labels := o.labels()

	var queries []int
	var cols []string
	seenQ, seenT := make(map[int]bool), make(map[string]bool)
	for _, c := range cells {
		if !seenQ[c.QueryID] {
			seenQ[c.QueryID] = true
			queries = append(queries, c.QueryID)
		}
		ts := labels.Triplestores.Label(c.Triplestore)
		if !seenT[ts] {
			seenT[ts] = true
			cols = append(cols, ts)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(queries)))
	labels.Triplestores.Sort(cols)
	row, col := make(map[int]int), make(map[string]int)
	for i, q := range queries {
		row[q] = i
	}
	for i, ts := range cols {
		col[ts] = i
	}

	g := relGrid{z: make([][]float64, len(queries))}
	for i := range g.z {
		g.z[i] = make([]float64, len(cols))
		for j := range g.z[i] {
			g.z[i][j] = math.NaN()
		}
	}
	for _, c := range cells {
		r, k := row[c.QueryID], col[labels.Triplestores.Label(c.Triplestore)]
		if math.IsNaN(g.z[r][k]) {
			g.z[r][k] = clamp(c.Log10())
		}
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(RelativeMin)
	cm.SetMax(RelativeMax)
	cm.SetConvergePoint(0)
	hm := plotter.NewHeatMap(g, cm.Palette(255))
	hm.Min, hm.Max = RelativeMin, RelativeMax
	hm.NaN = color.Black

	dsLabel := labels.Datasets.Label(dataset)
	refLabel := labels.Triplestores.Label(reference)
	p := plot.New()
	p.Title.Text = fmt.Sprintf("QpS relative to %s on %s", refLabel, dsLabel)
	p.Title.TextStyle.Font.Size = vg.Points(9)
	p.Add(hm)
	p.NominalX(cols...)
	var yticks plot.ConstantTicks
	for i, q := range queries {
		yticks = append(yticks, plot.Tick{Value: float64(i), Label: strconv.Itoa(q)})
	}
	p.Y.Tick.Marker = yticks
	p.Y.Label.Text = "Query"
	p.Y.Tick.Label.Font.Size = vg.Points(4)

	name := fmt.Sprintf("paper-heatmap-%s-rel-%s", strings.ToLower(dsLabel), refLabel)
	h := vg.Length(len(queries))*vg.Points(5) + 3*vg.Centimeter
	w := vg.Length(len(cols))*vg.Centimeter + 3*vg.Centimeter
	return o.save(name, w, h, [][]*plot.Plot{{p}})
}
