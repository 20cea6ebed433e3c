package drawutil

import (
	"image"
	"math"

	"github.com/wesen/graphplot/pkg/cellbuf"
)

// Dasher walks a dash pattern of alternating on/off lengths, measured in
// dots. The phase carries across segments so a dashed polyline looks
// continuous. A nil or all-zero pattern is always on.
type Dasher struct {
	Pattern []int
	pos     int
}

// NewDasher creates a Dasher from float lengths, rounding each to at
// least one dot.
func NewDasher(lengths []float64) *Dasher {
	var pat []int
	for _, l := range lengths {
		pat = append(pat, max(1, int(math.Round(l))))
	}
	return &Dasher{Pattern: pat}
}

// On reports whether the next dot is drawn and advances the pattern.
func (d *Dasher) On() bool {
	if d == nil || len(d.Pattern) == 0 {
		return true
	}
	total := 0
	for _, l := range d.Pattern {
		total += l
	}
	p := d.pos % total
	d.pos++
	for i, l := range d.Pattern {
		if p < l {
			return i%2 == 0
		}
		p -= l
	}
	return true
}

// Reset restarts the pattern.
func (d *Dasher) Reset() {
	if d != nil {
		d.pos = 0
	}
}

// PlotLine draws a clipped Bresenham line onto the dot grid of buf.
// Coordinates are in dots. A nil dasher draws a solid line.
func PlotLine(buf *cellbuf.Buffer, x0, y0, x1, y1 float64, style cellbuf.StyleKey, d *Dasher) {
	w, h := buf.DotSize()
	cx0, cy0, cx1, cy1, ok := ClipLine(x0, y0, x1, y1, float64(w-1), float64(h-1))
	if !ok {
		return
	}
	pts := Bresenham(round(cx0), round(cy0), round(cx1), round(cy1))
	for _, p := range pts {
		if d.On() {
			buf.Plot(p.X, p.Y, style)
		}
	}
}

// PlotCircle draws a circle outline of radius r (in dots) with the
// midpoint algorithm. Points outside the buffer are dropped.
func PlotCircle(buf *cellbuf.Buffer, cx, cy, r float64, style cellbuf.StyleKey) {
	for _, p := range CirclePoints(round(cx), round(cy), round(r)) {
		buf.Plot(p.X, p.Y, style)
	}
}

// FillCircle lights every dot within radius r of (cx, cy).
func FillCircle(buf *cellbuf.Buffer, cx, cy, r float64, style cellbuf.StyleKey) {
	ri := int(math.Ceil(r))
	x0, y0 := round(cx), round(cy)
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				buf.Plot(x0+dx, y0+dy, style)
			}
		}
	}
}

// CirclePoints returns the midpoint-circle outline around (cx, cy).
// Points may repeat where octants meet.
func CirclePoints(cx, cy, r int) []image.Point {
	if r <= 0 {
		return []image.Point{image.Pt(cx, cy)}
	}
	var pts []image.Point
	x, y := r, 0
	err := 1 - r
	for x >= y {
		pts = append(pts,
			image.Pt(cx+x, cy+y), image.Pt(cx-x, cy+y),
			image.Pt(cx+x, cy-y), image.Pt(cx-x, cy-y),
			image.Pt(cx+y, cy+x), image.Pt(cx-y, cy+x),
			image.Pt(cx+y, cy-x), image.Pt(cx-y, cy-x),
		)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
	return pts
}

func round(v float64) int { return int(math.Round(v)) }
