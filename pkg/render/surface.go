package render

// Align anchors text relative to its (x, y) position, as fractions of the
// text box: (0, 0) is top-left, (0.5, 0.5) the centre, (1, 1) bottom-right.
type Align struct{ X, Y float64 }

var (
	TopLeft     = Align{0, 0}
	TopCenter   = Align{0.5, 0}
	MiddleRight = Align{1, 0.5}
)

// Surface is the drawing target the renderer talks to. Coordinates are
// logical pixels with the origin at the top-left. Colors are "#rrggbb" or
// "#rrggbbaa" strings.
//
// MoveTo, LineTo, Circle and Rect extend the current path; Stroke and
// Fill paint it and then start a new one. Text is painted with the fill
// color.
type Surface interface {
	Size() (w, h float64)
	PixelRatio() float64

	Clear(color string)
	SetStrokeColor(color string)
	SetFillColor(color string)
	SetLineWidth(w float64)
	SetDash(lengths ...float64)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	Circle(x, y, r float64)
	Rect(x, y, w, h float64)
	Stroke()
	Fill()

	Text(s string, x, y float64, align Align)
}
