// Package viewport maps between world (math) coordinates and screen
// (pixel) coordinates and owns the mutable view window used for pan and
// zoom.
//
// Screen origin is top-left with y growing downward; world y grows
// upward. A View is a single owned state object: every mutation goes
// through its methods, and the conversions are pure functions of the
// current window and canvas size.
package viewport

import "math"

// minSpan is the nudge applied when a caller asks for an empty span.
const minSpan = 1e-6

// Default window shown on startup and after Reset.
var DefaultWindow = Window{XMin: -10, XMax: 10, YMin: -6, YMax: 6}

// Window is the visible world rectangle. XMin < XMax and YMin < YMax
// always hold for windows produced by this package.
type Window struct {
	XMin, XMax float64
	YMin, YMax float64
}

// XSpan returns XMax - XMin.
func (w Window) XSpan() float64 { return w.XMax - w.XMin }

// YSpan returns YMax - YMin.
func (w Window) YSpan() float64 { return w.YMax - w.YMin }

// ContainsX reports whether x lies in [XMin, XMax].
func (w Window) ContainsX(x float64) bool { return x >= w.XMin && x <= w.XMax }

// ContainsY reports whether y lies in [YMin, YMax].
func (w Window) ContainsY(y float64) bool { return y >= w.YMin && y <= w.YMax }

// Normalize orders a bound pair and widens an empty span by a minimal
// epsilon so the result always satisfies lo < hi.
func Normalize(a, b float64) (lo, hi float64) {
	if a == b {
		b = a + minSpan
	}
	return math.Min(a, b), math.Max(a, b)
}

// View holds the window together with the pixel size of the canvas it is
// projected onto.
type View struct {
	win  Window
	w, h float64
}

// New creates a view over the default window for a w×h pixel canvas.
func New(w, h float64) *View {
	v := &View{win: DefaultWindow}
	v.Resize(w, h)
	return v
}

// Window returns the current window.
func (v *View) Window() Window { return v.win }

// Size returns the canvas size in pixels.
func (v *View) Size() (w, h float64) { return v.w, v.h }

// Resize sets the canvas size. Sizes below one pixel are clamped so the
// transform never divides by zero.
func (v *View) Resize(w, h float64) {
	v.w = math.Max(1, w)
	v.h = math.Max(1, h)
}

// Reset restores the default window.
func (v *View) Reset() { v.win = DefaultWindow }

// SetWindow replaces the whole window, normalising both axes.
func (v *View) SetWindow(w Window) {
	v.SetDomain(w.XMin, w.XMax)
	v.SetRange(w.YMin, w.YMax)
}

// SetDomain assigns the x bounds.
func (v *View) SetDomain(xMin, xMax float64) {
	v.win.XMin, v.win.XMax = Normalize(xMin, xMax)
}

// SetRange assigns the y bounds.
func (v *View) SetRange(yMin, yMax float64) {
	v.win.YMin, v.win.YMax = Normalize(yMin, yMax)
}

// WorldToScreen converts a world point to pixel coordinates.
func (v *View) WorldToScreen(x, y float64) (sx, sy float64) {
	sx = (x - v.win.XMin) / v.win.XSpan() * v.w
	sy = v.h - (y-v.win.YMin)/v.win.YSpan()*v.h
	return sx, sy
}

// ScreenToWorld is the exact inverse of WorldToScreen.
func (v *View) ScreenToWorld(sx, sy float64) (x, y float64) {
	x = v.win.XMin + sx/v.w*v.win.XSpan()
	y = v.win.YMin + (v.h-sy)/v.h*v.win.YSpan()
	return x, y
}

// PixelsPerUnitX returns how many pixels one world unit covers on x.
func (v *View) PixelsPerUnitX() float64 { return v.w / v.win.XSpan() }

// ZoomAt scales both spans by 1/scale around the world point under
// (sx, sy); scale > 1 zooms in. The new bounds are symmetric around that
// point. Non-positive or non-finite scales are ignored.
func (v *View) ZoomAt(sx, sy, scale float64) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return
	}
	cx, cy := v.ScreenToWorld(sx, sy)
	hx := v.win.XSpan() * 0.5 / scale
	hy := v.win.YSpan() * 0.5 / scale
	v.SetDomain(cx-hx, cx+hx)
	v.SetRange(cy-hy, cy+hy)
}

// PanBy translates the window by the world equivalent of a screen delta.
// Dragging right moves the content right, so x bounds decrease; screen y
// grows downward, so y bounds increase.
func (v *View) PanBy(dxScreen, dyScreen float64) {
	dx := dxScreen / v.w * v.win.XSpan()
	dy := dyScreen / v.h * v.win.YSpan()
	v.win.XMin -= dx
	v.win.XMax -= dx
	v.win.YMin += dy
	v.win.YMax += dy
}
