// Package plot ties the view, sampler, root finder, renderer and hit index
// into the single object front ends drive.
package plot

import (
	"fmt"
	"image"
	"time"

	"github.com/wesen/graphplot/pkg/hitindex"
	"github.com/wesen/graphplot/pkg/render"
	"github.com/wesen/graphplot/pkg/roots"
	"github.com/wesen/graphplot/pkg/sampler"
	"github.com/wesen/graphplot/pkg/series"
	"github.com/wesen/graphplot/pkg/viewport"
)

// DefaultHitRadius is the pointer distance, in pixels, within which a
// marker counts as hovered.
const DefaultHitRadius = 12

// HitKind classifies a marker under the pointer.
type HitKind int

const (
	HitXIntercept HitKind = iota
	HitYIntercept
	HitIntersection
)

func (k HitKind) String() string {
	switch k {
	case HitXIntercept:
		return "x-intercept"
	case HitYIntercept:
		return "y-intercept"
	case HitIntersection:
		return "intersection"
	}
	return fmt.Sprintf("HitKind(%d)", int(k))
}

// Hit is a marker of the last frame together with its screen position.
type Hit struct {
	Kind   HitKind
	X, Y   float64
	SX, SY float64
	Color  string

	// SeriesIndex is set for intercepts.
	SeriesIndex int
	// SeriesA, SeriesB and the labels are set for intersections.
	SeriesA, SeriesB int
	LabelA, LabelB   string
}

// ScreenPos implements hitindex.Locatable.
func (h Hit) ScreenPos() (float64, float64) { return h.SX, h.SY }

// Title is the first tooltip line.
func (h Hit) Title() string {
	if h.Kind == HitIntersection {
		return fmt.Sprintf("%s  %s = %s", h.Kind, h.LabelA, h.LabelB)
	}
	return h.Kind.String()
}

// Coords is the second tooltip line.
func (h Hit) Coords() string {
	return fmt.Sprintf("(%.4f, %.4f)", h.X, h.Y)
}

// Plotter owns the view and the most recent frame. It is not safe for
// concurrent use; drive it from one goroutine.
type Plotter struct {
	view    *viewport.View
	defs    []series.Definition
	opts    sampler.Options
	theme   render.Theme
	frame   render.Frame
	markers *hitindex.Index[Hit]
	dirty   bool
}

// New creates a plotter for a w×h pixel canvas over the default window.
func New(w, h float64) *Plotter {
	return &Plotter{
		view:    viewport.New(w, h),
		theme:   render.DefaultTheme(),
		markers: hitindex.New[Hit](),
		dirty:   true,
	}
}

// SetOptions overrides the sampling densities.
func (p *Plotter) SetOptions(o sampler.Options) {
	p.opts = o
	p.dirty = true
}

// SetTheme replaces the render theme.
func (p *Plotter) SetTheme(th render.Theme) { p.theme = th }

// Theme returns the render theme.
func (p *Plotter) Theme() render.Theme { return p.theme }

// SetSeries replaces the series list. The slice is not copied.
func (p *Plotter) SetSeries(defs []series.Definition) {
	p.defs = defs
	p.dirty = true
}

// Series returns the current series list.
func (p *Plotter) Series() []series.Definition { return p.defs }

func (p *Plotter) SetDomain(xMin, xMax float64) {
	p.view.SetDomain(xMin, xMax)
	p.dirty = true
}

func (p *Plotter) SetYRange(yMin, yMax float64) {
	p.view.SetRange(yMin, yMax)
	p.dirty = true
}

func (p *Plotter) ZoomAt(sx, sy, scale float64) {
	p.view.ZoomAt(sx, sy, scale)
	p.dirty = true
}

func (p *Plotter) PanBy(dx, dy float64) {
	p.view.PanBy(dx, dy)
	p.dirty = true
}

// Reset restores the default window.
func (p *Plotter) Reset() {
	p.view.Reset()
	p.dirty = true
}

// Resize changes the canvas size in pixels.
func (p *Plotter) Resize(w, h float64) {
	cw, ch := p.view.Size()
	if cw == w && ch == h {
		return
	}
	p.view.Resize(w, h)
	p.dirty = true
}

// View returns the current window.
func (p *Plotter) View() viewport.Window { return p.view.Window() }

// Viewport exposes the underlying view for read-only use by renderers.
func (p *Plotter) Viewport() *viewport.View { return p.view }

func (p *Plotter) WorldToScreen(x, y float64) (float64, float64)   { return p.view.WorldToScreen(x, y) }
func (p *Plotter) ScreenToWorld(sx, sy float64) (float64, float64) { return p.view.ScreenToWorld(sx, sy) }

// Frame returns the most recently computed frame.
func (p *Plotter) Frame() render.Frame { return p.frame }

// Dirty reports whether the view or series changed since the last
// Compute.
func (p *Plotter) Dirty() bool { return p.dirty }

// Compute runs one full pass: sample every visible series, find intercepts
// and intersections, and rebuild the hit index.
func (p *Plotter) Compute() render.Frame {
	start := time.Now()
	budget := p.opts.SampleBudget
	if budget <= 0 {
		budget = sampler.DefaultSampleBudget
	}

	f := render.Frame{
		Traces:        sampler.Sample(p.defs, p.view, p.opts),
		Intercepts:    roots.Intercepts(p.defs, p.view, budget),
		Intersections: roots.Intersections(p.defs, p.view, budget),
	}
	p.frame = f
	p.dirty = false
	p.rebuildMarkers()

	Logger().Debug("plot: pass",
		"series", len(p.defs),
		"traces", len(f.Traces),
		"intercepts", len(f.Intercepts),
		"intersections", len(f.Intersections),
		"took", time.Since(start))
	return f
}

func (p *Plotter) rebuildMarkers() {
	p.markers.Reset()
	for _, ic := range p.frame.Intercepts {
		h := Hit{Kind: HitXIntercept, X: ic.X, Y: ic.Y, Color: ic.Color, SeriesIndex: ic.SeriesIndex}
		if ic.Kind == roots.YIntercept {
			h.Kind = HitYIntercept
		}
		h.SX, h.SY = p.view.WorldToScreen(ic.X, ic.Y)
		p.markers.Add(h)
	}
	for _, is := range p.frame.Intersections {
		h := Hit{
			Kind:    HitIntersection,
			X:       is.X,
			Y:       is.Y,
			Color:   is.Color,
			SeriesA: is.SeriesA,
			SeriesB: is.SeriesB,
			LabelA:  is.LabelA,
			LabelB:  is.LabelB,
		}
		h.SX, h.SY = p.view.WorldToScreen(is.X, is.Y)
		p.markers.Add(h)
	}
}

// Draw renders onto s. The view is resized to the surface first and the
// frame recomputed if anything changed. A non-empty errMsg draws the grid
// with an error overlay instead of curves.
func (p *Plotter) Draw(s render.Surface, errMsg string) {
	w, h := s.Size()
	p.Resize(w, h)
	if p.dirty {
		p.Compute()
	}
	f := p.frame
	f.Err = errMsg
	render.Draw(s, p.view, f, p.theme)
}

// InterceptAtScreen returns the marker of the last frame closest to
// (sx, sy) within thresholdPx. Intercepts are checked before
// intersections, and the first of equally close markers wins. It never
// recomputes.
func (p *Plotter) InterceptAtScreen(sx, sy, thresholdPx float64) (Hit, bool) {
	e, d, ok := p.markers.Nearest(sx, sy, thresholdPx)
	if !ok {
		return Hit{}, false
	}
	Logger().Debug("plot: hit", "kind", e.Data.Kind, "dist", d)
	return e.Data, true
}

// MarkerCount returns the number of markers in the last frame.
func (p *Plotter) MarkerCount() int { return p.markers.Len() }

// MarkersIn lists the markers of the last frame inside r, intercepts
// first.
func (p *Plotter) MarkersIn(r image.Rectangle) []Hit {
	entries := p.markers.InRect(r)
	out := make([]Hit, len(entries))
	for i, e := range entries {
		out[i] = e.Data
	}
	return out
}
