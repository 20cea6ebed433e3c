// Package pngsurface implements render.Surface with the gg 2D rasteriser
// and writes the result as PNG.
package pngsurface

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/render"
)

const (
	// DefaultFontSize is the label size in logical pixels.
	DefaultFontSize = 12
	// ascent is the share of the line height above the baseline.
	ascent = 0.8
)

// Surface is a render.Surface backed by an RGBA pixmap. Drawing calls use
// logical pixels; they are multiplied by the pixel ratio on the way in.
type Surface struct {
	dc     *gg.Context
	src    *text.FontSource
	w, h   float64
	ratio  float64
	stroke string
	fill   string
	err    error
}

// New creates a w×h logical-pixel surface rendered at ratio device pixels
// per logical pixel.
func New(w, h int, ratio float64) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("pngsurface: invalid size %dx%d", w, h)
	}
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		ratio = 1
	}
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("pngsurface: load font: %w", err)
	}
	dw := int(math.Round(float64(w) * ratio))
	dh := int(math.Round(float64(h) * ratio))
	dc := gg.NewContext(dw, dh)
	dc.SetFont(src.Face(DefaultFontSize * ratio))
	return &Surface{
		dc:    dc,
		src:   src,
		w:     float64(w),
		h:     float64(h),
		ratio: ratio,
	}, nil
}

// Close releases the rasteriser and font.
func (s *Surface) Close() error {
	return errors.Join(s.dc.Close(), s.src.Close())
}

// Err returns the first rasterisation error, if any.
func (s *Surface) Err() error { return s.err }

// Image returns the rendered pixels.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// EncodePNG writes the image as PNG.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// SavePNG writes the image to path.
func (s *Surface) SavePNG(path string) error { return s.dc.SavePNG(path) }

func (s *Surface) Size() (float64, float64) { return s.w, s.h }
func (s *Surface) PixelRatio() float64      { return s.ratio }

func (s *Surface) Clear(color string) {
	s.dc.ClearWithColor(gg.Hex(color))
}

func (s *Surface) SetStrokeColor(c string) { s.stroke = c }
func (s *Surface) SetFillColor(c string)   { s.fill = c }
func (s *Surface) SetLineWidth(w float64)  { s.dc.SetLineWidth(w * s.ratio) }

func (s *Surface) SetDash(lengths ...float64) {
	scaled := make([]float64, len(lengths))
	for i, l := range lengths {
		scaled[i] = l * s.ratio
	}
	s.dc.SetDash(scaled...)
}

func (s *Surface) MoveTo(x, y float64) { s.dc.MoveTo(x*s.ratio, y*s.ratio) }
func (s *Surface) LineTo(x, y float64) { s.dc.LineTo(x*s.ratio, y*s.ratio) }

func (s *Surface) Circle(x, y, r float64) {
	s.dc.DrawCircle(x*s.ratio, y*s.ratio, r*s.ratio)
}

func (s *Surface) Rect(x, y, w, h float64) {
	s.dc.DrawRectangle(x*s.ratio, y*s.ratio, w*s.ratio, h*s.ratio)
}

func (s *Surface) Stroke() {
	s.dc.SetHexColor(s.stroke)
	s.keep(s.dc.Stroke())
}

func (s *Surface) Fill() {
	s.dc.SetHexColor(s.fill)
	s.keep(s.dc.Fill())
}

// Text draws str in the fill color with its box anchored at (x, y).
func (s *Surface) Text(str string, x, y float64, align render.Align) {
	s.dc.SetHexColor(s.fill)
	tw, th := s.dc.MeasureString(str)
	left := x*s.ratio - align.X*tw
	top := y*s.ratio - align.Y*th
	s.dc.DrawString(str, left, top+ascent*th)
}

func (s *Surface) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}

// Export renders p onto a fresh w×h surface at the given pixel ratio and
// saves it to path.
func Export(p *plot.Plotter, errMsg, path string, w, h int, ratio float64) error {
	s, err := New(w, h, ratio)
	if err != nil {
		return err
	}
	defer s.Close()

	p.Draw(s, errMsg)
	if err := s.Err(); err != nil {
		return fmt.Errorf("pngsurface: render: %w", err)
	}
	if err := s.SavePNG(path); err != nil {
		return fmt.Errorf("pngsurface: save %s: %w", path, err)
	}
	plot.Logger().Info("pngsurface: exported", "path", path, "width", w, "height", h, "ratio", ratio)
	return nil
}
