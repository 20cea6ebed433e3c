package plot

import (
	"bytes"
	"context"
	"image"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/wesen/graphplot/pkg/render"
	"github.com/wesen/graphplot/pkg/series"
)

func cart(label string, f func(float64) float64) series.Definition {
	return series.Cartesian{
		Meta: series.Meta{Label: label, Expr: label, Color: "#3fa7ff", Visible: true},
		F:    func(x float64) (float64, error) { return f(x), nil },
	}
}

// nullSurface satisfies render.Surface and only tracks its size and how
// often it was cleared.
type nullSurface struct {
	w, h   float64
	clears int
}

func (s *nullSurface) Size() (float64, float64)                    { return s.w, s.h }
func (s *nullSurface) PixelRatio() float64                         { return 1 }
func (s *nullSurface) Clear(string)                                { s.clears++ }
func (s *nullSurface) SetStrokeColor(string)                       {}
func (s *nullSurface) SetFillColor(string)                         {}
func (s *nullSurface) SetLineWidth(float64)                        {}
func (s *nullSurface) SetDash(...float64)                          {}
func (s *nullSurface) MoveTo(float64, float64)                     {}
func (s *nullSurface) LineTo(float64, float64)                     {}
func (s *nullSurface) Circle(float64, float64, float64)            {}
func (s *nullSurface) Rect(float64, float64, float64, float64)     {}
func (s *nullSurface) Stroke()                                     {}
func (s *nullSurface) Fill()                                       {}
func (s *nullSurface) Text(string, float64, float64, render.Align) {}

// ── Compute ──

func TestComputeSin(t *testing.T) {
	p := New(800, 600)
	p.SetSeries([]series.Definition{cart("sin(x)", math.Sin)})
	if !p.Dirty() {
		t.Fatal("SetSeries should mark dirty")
	}
	f := p.Compute()
	if p.Dirty() {
		t.Error("Compute should clear dirty")
	}
	if len(f.Traces) != 1 {
		t.Errorf("traces = %d, want 1", len(f.Traces))
	}
	if len(f.Intercepts) != 8 {
		t.Errorf("intercepts = %d, want 7 x + 1 y", len(f.Intercepts))
	}
	if p.MarkerCount() != 8 {
		t.Errorf("markers = %d, want 8", p.MarkerCount())
	}
}

func TestComputeIntersections(t *testing.T) {
	p := New(800, 600)
	p.SetDomain(-2, 2)
	p.SetYRange(-1, 5)
	p.SetSeries([]series.Definition{
		cart("x", func(x float64) float64 { return x }),
		cart("x^2", func(x float64) float64 { return x * x }),
	})
	f := p.Compute()
	if len(f.Intersections) != 2 {
		t.Fatalf("intersections = %+v", f.Intersections)
	}
}

// ── Hit testing ──

func TestInterceptAtScreenClosest(t *testing.T) {
	p := New(800, 600)
	// 40px per unit on x: roots at 0 and 0.325 sit at sx 400 and 413.
	p.SetSeries([]series.Definition{
		cart("x", func(x float64) float64 { return x }),
		cart("x-0.325", func(x float64) float64 { return x - 0.325 }),
	})
	p.Compute()

	h, ok := p.InterceptAtScreen(403, 300, DefaultHitRadius)
	if !ok || h.SeriesIndex != 0 || h.Kind != HitXIntercept {
		t.Fatalf("hit = %+v, %v; want x-intercept of series 0", h, ok)
	}
	h, ok = p.InterceptAtScreen(410, 300, DefaultHitRadius)
	if !ok || h.SeriesIndex != 1 {
		t.Fatalf("hit = %+v, %v; want series 1", h, ok)
	}
	if _, ok := p.InterceptAtScreen(400, 200, DefaultHitRadius); ok {
		t.Error("expected no hit 100px away")
	}
}

func TestInterceptAtScreenTieKeepsXIntercept(t *testing.T) {
	p := New(800, 600)
	p.SetSeries([]series.Definition{cart("sin(x)", math.Sin)})
	p.Compute()
	h, ok := p.InterceptAtScreen(400, 300, DefaultHitRadius)
	if !ok || h.Kind != HitXIntercept {
		t.Fatalf("hit = %+v; want the x-intercept listed before the y-intercept", h)
	}
	if h.Coords() != "(0.0000, 0.0000)" {
		t.Errorf("Coords = %q", h.Coords())
	}
}

func TestInterceptAtScreenDoesNotRecompute(t *testing.T) {
	p := New(800, 600)
	p.SetSeries([]series.Definition{cart("sin(x)", math.Sin)})
	p.Compute()
	p.PanBy(200, 0)
	if _, ok := p.InterceptAtScreen(400, 300, 1); !ok {
		t.Error("hit test should use the last frame until the next Compute")
	}
	if !p.Dirty() {
		t.Error("PanBy should mark dirty")
	}
}

func TestHitTitle(t *testing.T) {
	h := Hit{Kind: HitIntersection, LabelA: "x", LabelB: "x^2"}
	if got := h.Title(); got != "intersection  x = x^2" {
		t.Errorf("Title = %q", got)
	}
	if got := (Hit{Kind: HitYIntercept}).Title(); got != "y-intercept" {
		t.Errorf("Title = %q", got)
	}
}

func TestMarkersIn(t *testing.T) {
	p := New(800, 600)
	p.SetSeries([]series.Definition{cart("sin(x)", math.Sin)})
	p.Compute()
	left := p.MarkersIn(image.Rect(0, 0, 400, 600))
	if len(left) != 3 {
		t.Errorf("markers left of centre = %d, want 3", len(left))
	}
}

// ── Draw ──

func TestDrawResizesAndComputes(t *testing.T) {
	p := New(100, 100)
	p.SetSeries([]series.Definition{cart("sin(x)", math.Sin)})
	s := &nullSurface{w: 800, h: 600}
	p.Draw(s, "")
	if w, h := p.Viewport().Size(); w != 800 || h != 600 {
		t.Errorf("view size = %gx%g", w, h)
	}
	if p.Dirty() || len(p.Frame().Traces) != 1 {
		t.Error("Draw did not compute the frame")
	}
	if s.clears != 1 {
		t.Errorf("clears = %d", s.clears)
	}
	if p.Frame().Err != "" {
		t.Error("error message leaked into the stored frame")
	}
}

// ── Logger ──

func TestLoggerDefaultsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("Logger() is nil")
	}
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestComputeLogsPass(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	p := New(800, 600)
	p.SetSeries([]series.Definition{cart("x", func(x float64) float64 { return x })})
	p.Compute()
	if !strings.Contains(buf.String(), "plot: pass") {
		t.Errorf("log = %q", buf.String())
	}
}
