package plotui

import (
	"image"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/graphplot/internal/graphcfg"
	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/series"
	"github.com/wesen/graphplot/pkg/viewport"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	m := New(graphcfg.Default(), Options{
		ConfigPath: filepath.Join(dir, "graph.json"),
		PNGPath:    filepath.Join(dir, "graph.png"),
		PNGWidth:   200,
		PNGHeight:  120,
		PNGScale:   1,
	})
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = send(t, m, key(k))
	}
	return m
}

func eval(t *testing.T, d series.Definition, x float64) float64 {
	t.Helper()
	c, ok := d.(series.Cartesian)
	if !ok {
		t.Fatalf("definition %T is not cartesian", d)
	}
	y, _ := series.Eval1(c.F, x)
	return y
}

// ── Layout and sizing ──

func TestWindowSizeResizesCanvas(t *testing.T) {
	m := newTestModel(t)
	r := m.canvasRect()
	if r != image.Rect(0, 1, 66, 29) {
		t.Fatalf("canvas = %v", r)
	}
	w, h := m.Plot.Viewport().Size()
	if w != 132 || h != 112 {
		t.Errorf("plot size = %gx%g, want 132x112 dots", w, h)
	}
	if m.Plot.Dirty() {
		t.Error("plot not computed after resize")
	}
	if m.Plot.MarkerCount() == 0 {
		t.Error("sin(x) should produce markers")
	}
}

func TestNarrowTerminalHidesPanel(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	if got := m.layout().Get("panel").Rect.Dx(); got != 10 {
		t.Errorf("panel width = %d, want 10", got)
	}
	_ = m.View()
}

// ── Keys ──

func TestArrowPanAndReset(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "right")
	if w := m.Plot.View(); !(w.XMin > -10) {
		t.Fatalf("right arrow did not pan: %+v", w)
	}
	m = press(t, m, "r")
	if w := m.Plot.View(); w != viewport.DefaultWindow {
		t.Errorf("reset window = %+v", w)
	}
}

func TestZoomKeys(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "+")
	if span := m.Plot.View().XSpan(); math.Abs(span-16) > 1e-9 {
		t.Errorf("zoomed span = %g, want 16", span)
	}
	m = press(t, m, "-")
	if span := m.Plot.View().XSpan(); math.Abs(span-20) > 1e-9 {
		t.Errorf("restored span = %g, want 20", span)
	}
}

func TestAddSeriesAndCycleType(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "a")
	if !m.Edit.open || m.Edit.kind != editSeries {
		t.Fatal("add should open the series editor")
	}
	m = press(t, m, "esc")
	if m.Edit.open {
		t.Fatal("esc should close the editor")
	}
	if len(m.Cfg.Series) != 2 || m.SeriesSel != 1 {
		t.Fatalf("series = %d, sel = %d", len(m.Cfg.Series), m.SeriesSel)
	}
	m = press(t, m, "t")
	if m.Cfg.Series[1].Type != "polar" {
		t.Errorf("type = %q, want polar", m.Cfg.Series[1].Type)
	}
	m = press(t, m, "t", "t")
	if m.Cfg.Series[1].Type != "cartesian" {
		t.Errorf("type = %q, want cartesian", m.Cfg.Series[1].Type)
	}
}

func TestToggleVisibleAndDerivative(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "d")
	if n := len(m.Plot.Series()); n != 2 {
		t.Fatalf("derivative: %d series, want 2", n)
	}
	if y := eval(t, m.Plot.Series()[1], 0); math.Abs(y-1) > 1e-6 {
		t.Errorf("d/dx sin at 0 = %g", y)
	}
	m = press(t, m, "v")
	if n := len(m.Plot.Series()); n != 0 {
		t.Errorf("hidden: %d series, want 0", n)
	}
}

func TestDeleteSeries(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "x")
	if len(m.Cfg.Series) != 0 || len(m.Plot.Series()) != 0 {
		t.Fatalf("series left: %d / %d", len(m.Cfg.Series), len(m.Plot.Series()))
	}
	m = press(t, m, "x", "e", "v")
	if m.Edit.open {
		t.Error("editor opened with nothing selected")
	}
}

// ── Editor ──

func TestEditSeriesExpression(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "e")
	m.Edit.inputs[1].SetValue("x^2 - 1")
	m = press(t, m, "enter")
	if m.Edit.open {
		t.Fatalf("editor still open: %s", m.Edit.err)
	}
	if m.Cfg.Series[0].Expr != "x^2 - 1" || m.Err != "" {
		t.Fatalf("expr = %q, err = %q", m.Cfg.Series[0].Expr, m.Err)
	}
	var xs int
	for _, h := range m.Plot.MarkersIn(image.Rect(0, 0, 132, 112)) {
		if h.Kind == plot.HitXIntercept {
			xs++
		}
	}
	if xs != 2 {
		t.Errorf("x-intercepts = %d, want 2", xs)
	}
}

func TestCompileErrorKeepsOldSeries(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "e")
	m.Edit.inputs[1].SetValue("sin(")
	m = press(t, m, "enter")
	if m.Err == "" {
		t.Fatal("expected a compile error")
	}
	if len(m.Plot.Series()) != 1 {
		t.Errorf("old series dropped")
	}
	if l := m.footerLayer(m.canvas()); !strings.Contains(l.GetContent(), "sin(") {
		t.Errorf("footer does not show the error: %q", l.GetContent())
	}
}

func TestCompileErrorHidesStaleMarkers(t *testing.T) {
	m := newTestModel(t)
	p := firstMarkerCell(t, m)
	m = send(t, m, tea.MouseClickMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft})
	m = send(t, m, tea.MouseReleaseMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft})
	if !m.Pinned {
		t.Fatal("click did not pin")
	}

	m = press(t, m, "e")
	m.Edit.inputs[1].SetValue("sin(")
	m = press(t, m, "enter")
	if m.Err == "" {
		t.Fatal("expected a compile error")
	}
	if m.Pinned || m.TipOn {
		t.Error("tooltip survived the compile error")
	}

	m = send(t, m, tea.MouseMotionMsg{X: p.X, Y: p.Y})
	if m.TipOn || m.tooltipLayer(m.canvasRect()) != nil {
		t.Error("hover found a marker of an undrawn series")
	}
	m = send(t, m, tea.MouseClickMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft})
	m = send(t, m, tea.MouseReleaseMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft})
	if m.Pinned {
		t.Error("click pinned a marker of an undrawn series")
	}
	if l := m.footerLayer(m.canvas()); strings.Contains(l.GetContent(), "markers") {
		t.Errorf("footer still counts markers: %q", l.GetContent())
	}
}

func TestEditVariableValidates(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "tab", "a")
	if !m.Edit.open || m.Edit.kind != editVariable {
		t.Fatal("variable editor not open")
	}
	m.Edit.inputs[0].SetValue("2bad")
	m = press(t, m, "enter")
	if !m.Edit.open || m.Edit.err == "" {
		t.Fatal("invalid name accepted")
	}
	m.Edit.inputs[0].SetValue("slope")
	m.Edit.inputs[1].SetValue("3")
	m = press(t, m, "enter")
	if m.Edit.open {
		t.Fatalf("editor still open: %s", m.Edit.err)
	}
	if v := m.Cfg.Variables[0]; v.Name != "slope" || v.Value != 3 {
		t.Errorf("variable = %+v", v)
	}
}

func TestCalculator(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "c")
	if m.Edit.kind != editCalc || len(m.Edit.inputs) != 3 {
		t.Fatal("calculator not open")
	}
	m.Edit.inputs[0].SetValue("x^2")
	m.Edit.inputs[2].SetValue("3")
	m = press(t, m, "enter")
	if !strings.Contains(m.CalcResult, "9.000000") {
		t.Errorf("result = %q", m.CalcResult)
	}

	m = press(t, m, "c")
	m = send(t, m, tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl})
	if m.CalcOp.String() != "sum" {
		t.Errorf("op = %v, want sum", m.CalcOp)
	}
}

// ── Variables and debounce ──

func TestNudgeIsDebounced(t *testing.T) {
	m := newTestModel(t)
	m.Cfg.Series[0].Expr = "a*x"
	m.Cfg.AddVariable()
	m.rebuild()
	m.Focus = FocusVariables

	m = press(t, m, "]", "]")
	if m.replotSeq != 2 {
		t.Fatalf("replotSeq = %d", m.replotSeq)
	}
	if y := eval(t, m.Plot.Series()[0], 1); y != 1 {
		t.Fatalf("rebuilt before the debounce: %g", y)
	}
	m = send(t, m, replotMsg{seq: 1})
	if y := eval(t, m.Plot.Series()[0], 1); y != 1 {
		t.Fatalf("stale tick rebuilt: %g", y)
	}
	m = send(t, m, replotMsg{seq: 2})
	if y := eval(t, m.Plot.Series()[0], 1); math.Abs(y-1.2) > 1e-9 {
		t.Errorf("a*1 = %g, want 1.2", y)
	}
}

// ── Mouse ──

func firstMarkerCell(t *testing.T, m Model) image.Point {
	t.Helper()
	hits := m.Plot.MarkersIn(image.Rect(0, 0, 132, 112))
	if len(hits) == 0 {
		t.Fatal("no markers")
	}
	return dotsToCell(hits[0].SX, hits[0].SY, m.canvasRect())
}

func TestHoverShowsTooltip(t *testing.T) {
	m := newTestModel(t)
	p := firstMarkerCell(t, m)
	m = send(t, m, tea.MouseMotionMsg{X: p.X, Y: p.Y})
	if !m.TipOn {
		t.Fatal("hover did not find a marker")
	}
	l := m.tooltipLayer(m.canvasRect())
	if l == nil || !strings.Contains(l.GetContent(), "intercept") {
		t.Fatalf("tooltip = %v", l)
	}

	// Far from every marker.
	r := m.canvasRect()
	m = send(t, m, tea.MouseMotionMsg{X: r.Min.X, Y: r.Min.Y})
	if m.TipOn {
		t.Error("tooltip should hide away from markers")
	}
}

func TestClickPinsAndUnpins(t *testing.T) {
	m := newTestModel(t)
	p := firstMarkerCell(t, m)
	m = send(t, m, tea.MouseClickMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft})
	m = send(t, m, tea.MouseReleaseMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft})
	if !m.Pinned || !m.TipOn {
		t.Fatal("click did not pin")
	}

	r := m.canvasRect()
	m = send(t, m, tea.MouseMotionMsg{X: r.Min.X, Y: r.Min.Y})
	if !m.TipOn {
		t.Fatal("pinned tooltip hidden by hover")
	}
	m = send(t, m, tea.MouseClickMsg{X: r.Min.X, Y: r.Min.Y, Button: tea.MouseLeft})
	m = send(t, m, tea.MouseReleaseMsg{X: r.Min.X, Y: r.Min.Y, Button: tea.MouseLeft})
	if m.Pinned || m.TipOn {
		t.Error("click on empty canvas should unpin")
	}
}

func TestDragPans(t *testing.T) {
	m := newTestModel(t)
	m = send(t, m, tea.MouseClickMsg{X: 10, Y: 10, Button: tea.MouseLeft})
	m = send(t, m, tea.MouseMotionMsg{X: 13, Y: 10, Button: tea.MouseLeft})
	m = send(t, m, tea.MouseReleaseMsg{X: 13, Y: 10, Button: tea.MouseLeft})

	// 3 cells = 6 dots of 132 over a span of 20.
	want := -10 - 6.0/132*20
	if got := m.Plot.View().XMin; math.Abs(got-want) > 1e-9 {
		t.Errorf("XMin = %g, want %g", got, want)
	}
	if m.Pinned || m.Dragging {
		t.Error("drag left pin or drag state behind")
	}
}

func TestWheelZoomsAtPointer(t *testing.T) {
	m := newTestModel(t)
	r := m.canvas()
	x, y := r.Rect.Min.X+5, r.Rect.Min.Y+5
	sx, sy := cellToDots(x, y, r)
	wx, wy := m.Plot.ScreenToWorld(sx, sy)
	m = send(t, m, tea.MouseWheelMsg{X: x, Y: y, Button: tea.MouseWheelUp})
	if span := m.Plot.View().XSpan(); !(span < 20) {
		t.Fatalf("wheel up did not zoom in: span %g", span)
	}
	// The zoom centres the window on the world point under the pointer.
	w := m.Plot.View()
	if math.Abs((w.XMin+w.XMax)/2-wx) > 1e-9 || math.Abs((w.YMin+w.YMax)/2-wy) > 1e-9 {
		t.Errorf("window %+v not centred on (%g, %g)", w, wx, wy)
	}
}

// ── Files ──

func TestSaveLoadAndExport(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "right")
	m = send(t, m, tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl})
	if !strings.HasPrefix(m.Status, "saved") {
		t.Fatalf("status = %q", m.Status)
	}
	saved := m.Plot.View()

	m = press(t, m, "r", "o")
	if !strings.HasPrefix(m.Status, "loaded") {
		t.Fatalf("status = %q", m.Status)
	}
	if got := m.Plot.View(); math.Abs(got.XMin-saved.XMin) > 1e-9 {
		t.Errorf("loaded window %+v, want %+v", got, saved)
	}

	m = press(t, m, "p")
	if !strings.HasPrefix(m.Status, "exported") {
		t.Fatalf("status = %q", m.Status)
	}
	if st, err := os.Stat(m.Opts.PNGPath); err != nil || st.Size() == 0 {
		t.Errorf("png missing: %v", err)
	}
}

func TestViewDoesNotPanicWithModalAndTooltip(t *testing.T) {
	m := newTestModel(t)
	p := firstMarkerCell(t, m)
	m = send(t, m, tea.MouseMotionMsg{X: p.X, Y: p.Y})
	m = press(t, m, "c")
	_ = m.View()
}
