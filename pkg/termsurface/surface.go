// Package termsurface implements render.Surface on a cellbuf.Buffer.
// Logical pixels are braille dots, so a cols×rows terminal region is a
// (cols*2)×(rows*4) pixel canvas.
package termsurface

import (
	"math"

	"github.com/wesen/graphplot/pkg/cellbuf"
	"github.com/wesen/graphplot/pkg/drawutil"
	"github.com/wesen/graphplot/pkg/render"
)

// MarkerGlyph stands in for filled circles, which are too small to
// rasterise legibly in braille.
const MarkerGlyph = '●'

// Theme adapts the default theme to dot-sized geometry.
func Theme() render.Theme {
	th := render.DefaultTheme()
	th.GridDash = []float64{1, 3}
	th.MarkerRadius = 2
	th.LabelGap = cellbuf.DotsPerCellY
	th.LabelHeight = cellbuf.DotsPerCellY
	th.ErrorBandWidth = 2 * 100
	th.ErrorBandHeight = 2 * cellbuf.DotsPerCellY
	th.ErrorBandBottom = cellbuf.DotsPerCellY
	th.ErrorTextInset = 2 * cellbuf.DotsPerCellX
	return th
}

type shapeKind int

const (
	shapeLine shapeKind = iota
	shapeCircle
	shapeRect
)

type shape struct {
	kind shapeKind
	pts  []float64 // x0,y0,x1,y1,... for lines; cx,cy,r for circles; x,y,w,h for rects
}

// Surface draws into a cell buffer. The zero value is not usable; call New.
type Surface struct {
	buf    *cellbuf.Buffer
	pal    *cellbuf.Palette
	stroke string
	fill   string
	dash   []float64
	path   []shape
}

// New creates a surface for a cols×rows cell region.
func New(cols, rows int) *Surface {
	s := &Surface{pal: cellbuf.NewPalette("#000000")}
	s.buf = cellbuf.New(cols, rows, 0)
	return s
}

// Resize changes the cell region, discarding its contents.
func (s *Surface) Resize(cols, rows int) {
	if cols == s.buf.W && rows == s.buf.H {
		return
	}
	s.buf = cellbuf.New(cols, rows, 0)
}

// Buffer exposes the underlying cells.
func (s *Surface) Buffer() *cellbuf.Buffer { return s.buf }

// Palette exposes the style palette.
func (s *Surface) Palette() *cellbuf.Palette { return s.pal }

// Render returns the styled terminal string.
func (s *Surface) Render() string { return s.buf.Render(s.pal.Styles()) }

func (s *Surface) Size() (float64, float64) {
	w, h := s.buf.DotSize()
	return float64(w), float64(h)
}

func (s *Surface) PixelRatio() float64 { return 1 }

// Clear blanks the buffer. A new background color resets the palette.
func (s *Surface) Clear(color string) {
	if cellbuf.Opaque(color, s.pal.Background()) != s.pal.Background() {
		s.pal = cellbuf.NewPalette(color)
	}
	s.buf.Fill(0)
	s.path = s.path[:0]
}

func (s *Surface) SetStrokeColor(c string) { s.stroke = c }
func (s *Surface) SetFillColor(c string)   { s.fill = c }
func (s *Surface) SetLineWidth(float64)    {}
func (s *Surface) SetDash(l ...float64)    { s.dash = append(s.dash[:0], l...) }

func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, shape{kind: shapeLine, pts: []float64{x, y}})
}

func (s *Surface) LineTo(x, y float64) {
	n := len(s.path)
	if n == 0 || s.path[n-1].kind != shapeLine {
		s.MoveTo(x, y)
		return
	}
	s.path[n-1].pts = append(s.path[n-1].pts, x, y)
}

func (s *Surface) Circle(x, y, r float64) {
	s.path = append(s.path, shape{kind: shapeCircle, pts: []float64{x, y, r}})
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.path = append(s.path, shape{kind: shapeRect, pts: []float64{x, y, w, h}})
}

// Stroke rasterises lines and outlines in the stroke color. Circles that
// already carry a marker glyph are skipped.
func (s *Surface) Stroke() {
	key := s.pal.Key(s.stroke)
	d := drawutil.NewDasher(s.dash)
	for _, sh := range s.path {
		p := sh.pts
		switch sh.kind {
		case shapeLine:
			for i := 2; i+1 < len(p); i += 2 {
				drawutil.PlotLine(s.buf, p[i-2], p[i-1], p[i], p[i+1], key, d)
			}
		case shapeCircle:
			if c, ok := s.cellAt(p[0], p[1]); ok && c.Ch == MarkerGlyph {
				continue
			}
			drawutil.PlotCircle(s.buf, p[0], p[1], p[2], key)
		case shapeRect:
			x0, y0, x1, y1 := p[0], p[1], p[0]+p[2], p[1]+p[3]
			drawutil.PlotLine(s.buf, x0, y0, x1, y0, key, d)
			drawutil.PlotLine(s.buf, x1, y0, x1, y1, key, d)
			drawutil.PlotLine(s.buf, x1, y1, x0, y1, key, d)
			drawutil.PlotLine(s.buf, x0, y1, x0, y0, key, d)
		}
	}
	s.path = s.path[:0]
}

// Fill paints circles as marker glyphs and rects as cell backgrounds.
// Open polylines are not filled.
func (s *Surface) Fill() {
	for _, sh := range s.path {
		p := sh.pts
		switch sh.kind {
		case shapeCircle:
			cx, cy := cellOf(p[0], p[1])
			if !s.buf.InBounds(cx, cy) {
				continue
			}
			_, bg := s.pal.Colors(s.buf.Cells[cy][cx].Style)
			s.buf.Set(cx, cy, MarkerGlyph, s.pal.KeyOn(s.fill, bg))
		case shapeRect:
			x0, y0 := cellOf(p[0], p[1])
			x1 := int(math.Ceil((p[0] + p[2]) / cellbuf.DotsPerCellX))
			y1 := int(math.Ceil((p[1] + p[3]) / cellbuf.DotsPerCellY))
			s.buf.FillRect(x0, y0, x1, y1, s.pal.KeyOn(s.fill, s.fill))
		}
	}
	s.path = s.path[:0]
}

// Text writes s in the fill color, keeping the background of the cells
// it lands on.
func (s *Surface) Text(str string, x, y float64, align render.Align) {
	runes := []rune(str)
	col := int(math.Round(x/cellbuf.DotsPerCellX - align.X*float64(len(runes))))
	row := int(math.Floor(y/cellbuf.DotsPerCellY - align.Y + 0.5))
	if row < 0 || row >= s.buf.H {
		return
	}
	for i, ch := range runes {
		c := col + i
		if c < 0 || c >= s.buf.W {
			continue
		}
		_, bg := s.pal.Colors(s.buf.Cells[row][c].Style)
		s.buf.Set(c, row, ch, s.pal.KeyOn(s.fill, bg))
	}
}

func cellOf(x, y float64) (int, int) {
	return int(math.Floor(x / cellbuf.DotsPerCellX)), int(math.Floor(y / cellbuf.DotsPerCellY))
}

func (s *Surface) cellAt(x, y float64) (cellbuf.Cell, bool) {
	cx, cy := cellOf(x, y)
	if !s.buf.InBounds(cx, cy) {
		return cellbuf.Cell{}, false
	}
	return s.buf.Cells[cy][cx], true
}
