// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package benchplot draws the charts of a triplestore evaluation:
// query throughput per triplestore, query mixes per hour, relative
// throughput heat maps, index sizes, and hypertrie node counts.
//
// Every chart is written once per requested format. Charts with one
// panel per dataset show the datasets in the order of the dataset
// labels.
package benchplot

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/dice-group/triplebench/benchproc"
	"github.com/dice-group/triplebench/benchunit"
)

// Options control where and how charts are written.
type Options struct {
	// Dir is the output directory. It is created if necessary.
	Dir string

	// Formats lists the file formats to write, as accepted by
	// draw.NewFormattedCanvas. The default is svg and pdf.
	Formats []string

	// Labels maps raw names to display names, orders, and colors.
	// The default is benchproc.DefaultLabels.
	Labels *benchproc.Labels
}

func (o *Options) labels() *benchproc.Labels {
	if o.Labels == nil {
		o.Labels = benchproc.DefaultLabels()
	}
	return o.Labels
}

func (o *Options) formats() []string {
	if len(o.Formats) == 0 {
		return []string{"svg", "pdf"}
	}
	return o.Formats
}

// save draws the grid of plots on a canvas of size w by h and writes it
// to <Dir>/<name>.<format> for every format. It returns the written
// paths.
func (o *Options) save(name string, w, h vg.Length, plots [][]*plot.Plot) ([]string, error) {
	if err := os.MkdirAll(o.Dir, 0777); err != nil {
		return nil, err
	}
	var files []string
	for _, format := range o.formats() {
		can, err := draw.NewFormattedCanvas(w, h, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		tiles := draw.Tiles{
			Rows: len(plots), Cols: len(plots[0]),
			PadX: vg.Millimeter * 3, PadY: vg.Millimeter * 3,
			PadTop: vg.Millimeter, PadBottom: vg.Millimeter,
			PadLeft: vg.Millimeter, PadRight: vg.Millimeter,
		}
		canvases := plot.Align(plots, tiles, draw.New(can))
		for i := range plots {
			for j, p := range plots[i] {
				p.Draw(canvases[i][j])
			}
		}

		file := filepath.Join(o.Dir, name) + "." + format
		f, err := os.Create(file)
		if err != nil {
			return nil, err
		}
		if _, err := can.WriteTo(f); err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// newPlot returns a plot with the common styling of all charts.
func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(9)
	p.X.Tick.Label.Font.Size = vg.Points(7)
	p.Y.Tick.Label.Font.Size = vg.Points(7)
	p.X.Label.TextStyle.Font.Size = vg.Points(8)
	p.Y.Label.TextStyle.Font.Size = vg.Points(8)
	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	grid.Horizontal.Color = color.Gray{0xe0}
	p.Add(grid)
	return p
}

func hex(rgb uint32) color.Color {
	return color.NRGBA{uint8(rgb >> 16), uint8(rgb >> 8), uint8(rgb), 0xff}
}

// powerTicks returns major ticks at every power of ten from 10^lo to
// 10^hi.
func powerTicks(lo, hi int) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for e := lo; e <= hi; e++ {
		ticks = append(ticks, plot.Tick{Value: math.Pow(10, float64(e)), Label: benchunit.PowerOfTen(e, false)})
	}
	return ticks
}

// exponentTicks labels a linear axis of decimal exponents relative to
// base as powers of ten.
func exponentTicks(base, n int) plot.ConstantTicks {
	var ticks plot.ConstantTicks
	for k := 0; k <= n; k++ {
		ticks = append(ticks, plot.Tick{Value: float64(k), Label: benchunit.PowerOfTen(base+k, true)})
	}
	return ticks
}

// humanTicks are the default ticks labeled with benchunit.Human.
type humanTicks struct{}

func (humanTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = benchunit.Human(ticks[i].Value)
		}
	}
	return ticks
}

// jitter returns a deterministic horizontal offset for the k'th point
// of a strip, within [-width/2, width/2).
func jitter(k int, width float64) float64 {
	const golden = 0.6180339887498949
	_, frac := math.Modf(float64(k+1) * golden)
	return (frac - 0.5) * width
}

const (
	cosπover4 = vg.Length(.707106781202420)
)

// CrossGlyph is a glyph that draws a big X.
// This version draws a heavier X than draw.CrossGlyph.
type CrossGlyph struct{}

// DrawGlyph implements the Glyph interface.
func (CrossGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetLineStyle(draw.LineStyle{Color: sty.Color, Width: vg.Points(1.5)})
	r := sty.Radius * cosπover4
	p := make(vg.Path, 0, 2)
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r})
	c.Stroke(p)
	p = p[:0]
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y - r})
	c.Stroke(p)
}
