// Package render draws a computed frame onto an abstract Surface. It never
// evaluates series; everything it paints comes from the Frame.
package render

import (
	"math"

	"github.com/wesen/graphplot/pkg/roots"
	"github.com/wesen/graphplot/pkg/sampler"
	"github.com/wesen/graphplot/pkg/viewport"
)

// Frame is the output of one compute pass.
type Frame struct {
	Traces        []sampler.Trace
	Intercepts    []roots.Intercept
	Intersections []roots.Intersection
	// Err replaces curves and markers with an error overlay when set.
	Err string
}

// Draw paints background, grid, axes and labels, then either the error
// overlay or the traces and markers of f.
func Draw(s Surface, v *viewport.View, f Frame, th Theme) {
	s.Clear(th.Background)
	drawGrid(s, v, th)

	if f.Err != "" {
		drawError(s, f.Err, th)
		return
	}
	drawTraces(s, v, f, th)
	drawMarkers(s, v, f, th)
}

// snap centres a hairline on a device pixel.
func snap(v, ratio float64) float64 {
	return (math.Round(v*ratio) + 0.5) / ratio
}

func drawGrid(s Surface, v *viewport.View, th Theme) {
	w, h := s.Size()
	r := s.PixelRatio()
	if r <= 0 {
		r = 1
	}
	win := v.Window()
	xs := viewport.GridLines(win.XMin, win.XMax, viewport.NiceStep(win.XSpan()))
	ys := viewport.GridLines(win.YMin, win.YMax, viewport.NiceStep(win.YSpan()))

	s.SetStrokeColor(th.Grid)
	s.SetLineWidth(th.GridWidth)
	s.SetDash(th.GridDash...)
	for _, x := range xs {
		sx, _ := v.WorldToScreen(x, 0)
		sx = snap(sx, r)
		s.MoveTo(sx, 0)
		s.LineTo(sx, h)
	}
	for _, y := range ys {
		_, sy := v.WorldToScreen(0, y)
		sy = snap(sy, r)
		s.MoveTo(0, sy)
		s.LineTo(w, sy)
	}
	s.Stroke()
	s.SetDash()

	// Axes
	ox, oy := v.WorldToScreen(0, 0)
	s.SetStrokeColor(th.Axis)
	s.SetLineWidth(th.AxisWidth)
	if oy >= 0 && oy <= h {
		y := snap(oy, r)
		s.MoveTo(0, y)
		s.LineTo(w, y)
	}
	if ox >= 0 && ox <= w {
		x := snap(ox, r)
		s.MoveTo(x, 0)
		s.LineTo(x, h)
	}
	s.Stroke()

	// Tick labels hug the axes, clamped to stay on screen.
	s.SetFillColor(th.Text)
	ly := math.Min(h-th.LabelHeight, math.Max(2, oy+th.LabelGap))
	for _, x := range xs {
		if math.Abs(x) < 1e-12 {
			continue
		}
		sx, _ := v.WorldToScreen(x, 0)
		s.Text(FormatNumber(x), sx, ly, TopCenter)
	}
	lx := math.Min(w-2, ox-th.LabelGap)
	for _, y := range ys {
		if math.Abs(y) < 1e-12 {
			continue
		}
		_, sy := v.WorldToScreen(0, y)
		s.Text(FormatNumber(y), lx, sy, MiddleRight)
	}
}

func drawError(s Surface, msg string, th Theme) {
	w, h := s.Size()
	top := math.Max(0, h-th.ErrorBandHeight-th.ErrorBandBottom)
	s.SetFillColor(th.ErrorBand)
	s.Rect(0, top, math.Min(w, th.ErrorBandWidth), math.Min(h, th.ErrorBandHeight))
	s.Fill()
	s.SetFillColor(th.Error)
	s.Text(msg, th.ErrorTextInset, top+th.ErrorBandBottom, TopLeft)
}

func drawTraces(s Surface, v *viewport.View, f Frame, th Theme) {
	s.SetLineWidth(th.CurveWidth)
	for _, tr := range f.Traces {
		if len(tr.Points) < 2 {
			continue
		}
		s.SetStrokeColor(colorOr(tr.Color, th.Accent))
		for i, p := range tr.Points {
			sx, sy := v.WorldToScreen(p.X, p.Y)
			if i == 0 {
				s.MoveTo(sx, sy)
			} else {
				s.LineTo(sx, sy)
			}
		}
		s.Stroke()
	}
}

func drawMarkers(s Surface, v *viewport.View, f Frame, th Theme) {
	for _, p := range f.Intercepts {
		drawMarker(s, v, p.X, p.Y, p.Color, th)
	}
	for _, p := range f.Intersections {
		drawMarker(s, v, p.X, p.Y, p.Color, th)
	}
}

func drawMarker(s Surface, v *viewport.View, x, y float64, color string, th Theme) {
	sx, sy := v.WorldToScreen(x, y)
	s.SetFillColor(colorOr(color, th.Accent))
	s.Circle(sx, sy, th.MarkerRadius)
	s.Fill()
	s.SetStrokeColor(th.MarkerOutline)
	s.SetLineWidth(th.MarkerStroke)
	s.Circle(sx, sy, th.MarkerRadius)
	s.Stroke()
}

func colorOr(c, fallback string) string {
	if c == "" {
		return fallback
	}
	return c
}
