// Package plotui is the Bubble Tea front end: a braille plot canvas with a
// side panel for series, variables, the calculator and the marker list.
package plotui

import (
	"image"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/graphplot/internal/calc"
	"github.com/wesen/graphplot/internal/graphcfg"
	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/tealayout"
	"github.com/wesen/graphplot/pkg/termsurface"
)

// Focus is the panel list that selection keys act on.
type Focus int

const (
	FocusSeries Focus = iota
	FocusVariables
)

// Options configures a Model.
type Options struct {
	ConfigPath string // ctrl+s and o
	PNGPath    string // p
	PNGWidth   int
	PNGHeight  int
	PNGScale   float64
}

// Model is the main application state.
type Model struct {
	Width, Height  int
	MouseX, MouseY int

	Cfg     *graphcfg.Config
	Plot    *plot.Plotter
	Surface *termsurface.Surface
	Opts    Options

	// Err is the compile error drawn over the canvas; Status is the
	// footer message of the last action.
	Err    string
	Status string

	Focus     Focus
	SeriesSel int
	VarSel    int

	// Tooltip state
	Tip    plot.Hit
	TipOn  bool
	Pinned bool

	// Drag state
	Dragging   bool
	DragX      int
	DragY      int
	DragMoved  bool
	replotSeq  int
	CalcOp     calc.Op
	CalcResult string

	Edit editor
}

// New creates the model for cfg. The canvas gets its real size with the
// first WindowSizeMsg.
func New(cfg *graphcfg.Config, opts Options) Model {
	if opts.PNGWidth <= 0 {
		opts.PNGWidth = 800
	}
	if opts.PNGHeight <= 0 {
		opts.PNGHeight = 600
	}
	if opts.PNGScale <= 0 {
		opts.PNGScale = 2
	}
	p := plot.New(2, 4)
	p.SetTheme(termsurface.Theme())
	m := Model{
		Cfg:     cfg,
		Plot:    p,
		Surface: termsurface.New(1, 1),
		Opts:    opts,
	}
	m.applyWindow()
	m.rebuild()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// layout splits the terminal: toolbar, footer, side panel, canvas.
func (m Model) layout() tealayout.Layout {
	return tealayout.NewLayoutBuilder(m.Width, m.Height).
		TopFixed("toolbar", 1).
		BottomFixed("footer", 1).
		RightShrink("panel", panelWidth, minCanvasWidth).
		Remaining("canvas").
		Build()
}

func (m Model) canvas() tealayout.Region {
	return m.layout().Get("canvas")
}

// canvasRect is the canvas region in terminal cells.
func (m Model) canvasRect() image.Rectangle {
	return m.canvas().Rect
}

// applyWindow copies the config window into the plotter.
func (m *Model) applyWindow() {
	w := m.Cfg.Window()
	m.Plot.SetDomain(w.XMin, w.XMax)
	m.Plot.SetYRange(w.YMin, w.YMax)
}

// resize matches the surface and plot canvas to the canvas region.
func (m *Model) resize() {
	r := m.canvasRect()
	cols, rows := max(1, r.Dx()), max(1, r.Dy())
	m.Surface.Resize(cols, rows)
	m.Plot.Resize(m.Surface.Size())
	m.recompute()
}

// rebuild recompiles every series from the config. On failure the old
// series stay in place and the error is shown over the canvas, and their
// markers are hidden from the tooltip and footer.
func (m *Model) rebuild() {
	defs, err := graphcfg.Build(m.Cfg)
	if err != nil {
		m.Err = err.Error()
		m.TipOn, m.Pinned = false, false
		m.recompute()
		return
	}
	m.Err = ""
	m.Plot.SetSeries(defs)
	m.recompute()
}

// recompute runs a pass if anything changed and drops a hover tooltip
// whose marker may have moved.
func (m *Model) recompute() {
	if !m.Plot.Dirty() {
		return
	}
	m.Plot.Compute()
	if !m.Pinned {
		m.TipOn = false
	}
}

// clampSelection keeps the selection indices inside their lists.
func (m *Model) clampSelection() {
	m.SeriesSel = min(max(0, m.SeriesSel), max(0, len(m.Cfg.Series)-1))
	m.VarSel = min(max(0, m.VarSel), max(0, len(m.Cfg.Variables)-1))
}
