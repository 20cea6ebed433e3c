package plotui

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/graphplot/internal/graphcfg"
	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/pngsurface"
	"github.com/wesen/graphplot/pkg/render"
	"github.com/wesen/graphplot/pkg/series"
)

const (
	// panFraction of the canvas moved per arrow key.
	panFraction = 0.1
	keyZoom     = 1.25
	// replotDelay debounces variable nudges.
	replotDelay = 200 * time.Millisecond
)

// replotMsg fires after replotDelay; only the latest one rebuilds.
type replotMsg struct{ seq int }

var seriesTypes = []string{"cartesian", "polar", "relation"}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resize()

	case replotMsg:
		if msg.seq == m.replotSeq {
			m.rebuild()
		}

	case tea.KeyMsg:
		if m.Edit.open {
			return m.handleEditKeys(msg)
		}
		return m.handleKeys(msg)

	case tea.MouseMsg:
		if m.Edit.open {
			return m, nil
		}
		return handleMouse(m, msg, m.layout())
	}

	return m, nil
}

// handleKeys processes keyboard input.
func (m Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	w, h := m.Surface.Size()
	m.clampSelection()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	// View
	case "up":
		m.Plot.PanBy(0, h*panFraction)
	case "down":
		m.Plot.PanBy(0, -h*panFraction)
	case "left":
		m.Plot.PanBy(w*panFraction, 0)
	case "right":
		m.Plot.PanBy(-w*panFraction, 0)
	case "+", "=":
		m.Plot.ZoomAt(w/2, h/2, keyZoom)
	case "-", "_":
		m.Plot.ZoomAt(w/2, h/2, 1/keyZoom)
	case "r":
		m.Plot.Reset()
		m.Status = "view reset"

	// Selection
	case "tab":
		if m.Focus == FocusSeries {
			m.Focus = FocusVariables
		} else {
			m.Focus = FocusSeries
		}
	case "j":
		m.moveSel(1)
	case "k":
		m.moveSel(-1)

	// Editing
	case "a":
		if m.Focus == FocusSeries {
			m.Cfg.AddSeries()
			m.SeriesSel = len(m.Cfg.Series) - 1
			m.rebuild()
		} else {
			m.Cfg.AddVariable()
			m.VarSel = len(m.Cfg.Variables) - 1
		}
		return m.openEditor()
	case "e", "enter":
		return m.openEditor()
	case "x", "delete":
		m.deleteSelected()
	case "v":
		if s := m.selectedSeries(); s != nil {
			s.Visible = !s.Visible
			m.rebuild()
		}
	case "d":
		if s := m.selectedSeries(); s != nil {
			s.Derivative = !s.Derivative
			m.rebuild()
		}
	case "t":
		if s := m.selectedSeries(); s != nil {
			s.Type = nextType(s.Type)
			m.rebuild()
		}
	case "[", "]":
		return m.nudge(msg.String())
	case "c":
		return m.openCalc()

	// Files
	case "ctrl+s":
		m.save()
	case "o":
		m.load()
	case "p":
		m.exportPNG()

	case "esc", "escape":
		m.Pinned = false
		m.TipOn = false
	}

	m.recompute()
	return m, nil
}

func (m *Model) moveSel(d int) {
	if m.Focus == FocusSeries {
		m.SeriesSel += d
	} else {
		m.VarSel += d
	}
	m.clampSelection()
}

func (m *Model) selectedSeries() *graphcfg.Series {
	if m.SeriesSel < 0 || m.SeriesSel >= len(m.Cfg.Series) {
		return nil
	}
	return &m.Cfg.Series[m.SeriesSel]
}

func (m *Model) selectedVar() *graphcfg.Variable {
	if m.VarSel < 0 || m.VarSel >= len(m.Cfg.Variables) {
		return nil
	}
	return &m.Cfg.Variables[m.VarSel]
}

func (m *Model) deleteSelected() {
	if m.Focus == FocusSeries {
		if m.selectedSeries() == nil {
			return
		}
		m.Cfg.Series = append(m.Cfg.Series[:m.SeriesSel], m.Cfg.Series[m.SeriesSel+1:]...)
	} else {
		if m.selectedVar() == nil {
			return
		}
		m.Cfg.Variables = append(m.Cfg.Variables[:m.VarSel], m.Cfg.Variables[m.VarSel+1:]...)
	}
	m.clampSelection()
	m.rebuild()
}

// nudge steps the selected variable and schedules a debounced rebuild.
func (m Model) nudge(key string) (tea.Model, tea.Cmd) {
	v := m.selectedVar()
	if v == nil {
		m.Status = "no variable selected"
		return m, nil
	}
	if key == "[" {
		v.Nudge(-1)
	} else {
		v.Nudge(1)
	}
	m.Status = fmt.Sprintf("%s = %s", v.Name, render.FormatNumber(v.Value))
	m.replotSeq++
	seq := m.replotSeq
	return m, tea.Tick(replotDelay, func(time.Time) tea.Msg { return replotMsg{seq: seq} })
}

func nextType(t string) string {
	kind, _ := series.ParseKind(t)
	return seriesTypes[(int(kind)+1)%len(seriesTypes)]
}

// syncWindow stores the current view in the config before saving.
func (m *Model) syncWindow() {
	m.Cfg.SetWindow(m.Plot.View())
}

func (m *Model) save() {
	m.syncWindow()
	if err := m.Cfg.Save(m.Opts.ConfigPath); err != nil {
		m.Status = err.Error()
		return
	}
	plot.Logger().Info("plotui: saved", "path", m.Opts.ConfigPath)
	m.Status = "saved " + m.Opts.ConfigPath
}

func (m *Model) load() {
	cfg, err := graphcfg.Load(m.Opts.ConfigPath)
	if err != nil {
		m.Status = err.Error()
		return
	}
	plot.Logger().Info("plotui: loaded", "path", m.Opts.ConfigPath)
	m.Cfg = cfg
	m.Pinned, m.TipOn = false, false
	m.clampSelection()
	m.applyWindow()
	m.rebuild()
	m.Status = "loaded " + m.Opts.ConfigPath
}

// exportPNG renders the current view and series at the export size.
func (m *Model) exportPNG() {
	p := plot.New(float64(m.Opts.PNGWidth), float64(m.Opts.PNGHeight))
	w := m.Plot.View()
	p.SetDomain(w.XMin, w.XMax)
	p.SetYRange(w.YMin, w.YMax)
	p.SetSeries(m.Plot.Series())
	err := pngsurface.Export(p, m.Err, m.Opts.PNGPath, m.Opts.PNGWidth, m.Opts.PNGHeight, m.Opts.PNGScale)
	if err != nil {
		m.Status = err.Error()
		return
	}
	m.Status = "exported " + m.Opts.PNGPath
}
