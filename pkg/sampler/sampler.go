// Package sampler turns series definitions into world-space polylines for
// the current view window.
package sampler

import (
	"math"

	"github.com/aclements/go-moremath/vec"

	"github.com/wesen/graphplot/pkg/series"
	"github.com/wesen/graphplot/pkg/viewport"
)

// Defaults for Options.
const (
	DefaultSampleBudget = 1200
	DefaultPolarSteps   = 1000
	DefaultGridCols     = 48
	DefaultGridRows     = 32
)

// Slack added to the right bound so XMax itself is sampled.
const spanSlack = 1e-9

// Options tunes sampling density. Zero fields take the defaults.
type Options struct {
	SampleBudget int
	PolarSteps   int
	GridCols     int
	GridRows     int
}

func (o Options) withDefaults() Options {
	if o.SampleBudget <= 0 {
		o.SampleBudget = DefaultSampleBudget
	}
	if o.PolarSteps <= 0 {
		o.PolarSteps = DefaultPolarSteps
	}
	if o.GridCols <= 0 {
		o.GridCols = DefaultGridCols
	}
	if o.GridRows <= 0 {
		o.GridRows = DefaultGridRows
	}
	return o
}

// Trace is one polyline belonging to the series at SeriesIndex.
type Trace struct {
	SeriesIndex int
	Color       string
	Points      series.Polyline
}

// Sample traces every visible definition. Trace order follows definition
// order; a single series may contribute several traces.
func Sample(defs []series.Definition, v *viewport.View, opts Options) []Trace {
	opts = opts.withDefaults()
	var out []Trace
	for i, d := range defs {
		meta := d.Info()
		if !meta.Visible {
			continue
		}
		var lines []series.Polyline
		switch s := d.(type) {
		case series.Cartesian:
			lines = Cartesian(s.F, v, opts.SampleBudget)
		case series.Polar:
			lines = Polar(s.R, opts.PolarSteps)
		case series.Relation:
			lines = Contour(s.F, v.Window(), opts.GridCols, opts.GridRows)
		}
		for _, pl := range lines {
			out = append(out, Trace{SeriesIndex: i, Color: meta.Color, Points: pl})
		}
	}
	return out
}

// CartesianStep is the x increment used for y = f(x): one pixel, but never
// finer than span/budget.
func CartesianStep(v *viewport.View, budget int) float64 {
	win := v.Window()
	return math.Max(1/v.PixelsPerUnitX(), win.XSpan()/float64(budget))
}

// Cartesian samples f left to right across the window. A failed sample
// closes the current polyline; the next finite sample opens a new one.
func Cartesian(f series.Func1, v *viewport.View, budget int) []series.Polyline {
	win := v.Window()
	step := CartesianStep(v, budget)
	n := int(math.Floor((win.XSpan()+spanSlack)/step)) + 1

	var b breaker
	for i := 0; i < n; i++ {
		x := win.XMin + float64(i)*step
		y, ok := series.Eval1(f, x)
		b.add(x, y, ok)
	}
	return b.finish()
}

// Polar samples r = f(theta) for theta in [-2π, 2π] with the given number
// of steps. The result does not depend on the view.
func Polar(f series.Func1, steps int) []series.Polyline {
	var b breaker
	for _, th := range vec.Linspace(-2*math.Pi, 2*math.Pi, steps+1) {
		r, ok := series.Eval1(f, th)
		b.add(r*math.Cos(th), r*math.Sin(th), ok)
	}
	return b.finish()
}

// breaker accumulates points into polylines, splitting at gaps.
type breaker struct {
	cur   series.Polyline
	lines []series.Polyline
}

func (b *breaker) add(x, y float64, ok bool) {
	if !ok {
		b.flush()
		return
	}
	b.cur = append(b.cur, series.Point{X: x, Y: y})
}

func (b *breaker) flush() {
	if len(b.cur) > 0 {
		b.lines = append(b.lines, b.cur)
	}
	b.cur = nil
}

func (b *breaker) finish() []series.Polyline {
	b.flush()
	return b.lines
}
