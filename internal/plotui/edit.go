package plotui

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/bubbles/v2/textinput"
	"charm.land/lipgloss/v2"

	"github.com/wesen/graphplot/internal/calc"
	"github.com/wesen/graphplot/pkg/render"
	"github.com/wesen/graphplot/pkg/tealayout"
)

type editKind int

const (
	editSeries editKind = iota
	editVariable
	editCalc
)

// editor is the modal form state. index points into the config list the
// form edits.
type editor struct {
	open   bool
	kind   editKind
	index  int
	labels []string
	inputs []textinput.Model
	focus  int
	err    string
}

var identRe = regexp.MustCompile(`^[A-Za-z_]\w*$`)

// exprHints per series type, shown next to the expression field.
var exprHints = map[string]string{
	"cartesian": "y = f(x)",
	"polar":     "r = g(θ)",
	"relation":  "F(x, y) = 0",
}

func newInput(value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = limit
	ti.SetValue(value)
	return ti
}

// openEditor opens the form for the selected series or variable.
func (m Model) openEditor() (tea.Model, tea.Cmd) {
	m.clampSelection()
	e := editor{open: true}
	switch m.Focus {
	case FocusSeries:
		s := m.selectedSeries()
		if s == nil {
			return m, nil
		}
		e.kind, e.index = editSeries, m.SeriesSel
		e.labels = []string{"Name", "Expr " + exprHints[s.Type]}
		e.inputs = []textinput.Model{newInput(s.Name, 30), newInput(s.Expr, 120)}
		e.focus = 1
	case FocusVariables:
		v := m.selectedVar()
		if v == nil {
			return m, nil
		}
		e.kind, e.index = editVariable, m.VarSel
		e.labels = []string{"Name", "Value", "Min", "Max", "Step"}
		e.inputs = []textinput.Model{
			newInput(v.Name, 16),
			newInput(render.FormatNumber(v.Value), 24),
			newInput(render.FormatNumber(v.Min), 24),
			newInput(render.FormatNumber(v.Max), 24),
			newInput(render.FormatNumber(v.Step), 24),
		}
	}
	m.Edit = e
	return m, m.Edit.inputs[m.Edit.focus].Focus()
}

// openCalc opens the calculator form for the current operation.
func (m Model) openCalc() (tea.Model, tea.Cmd) {
	m.Edit = editor{
		open:   true,
		kind:   editCalc,
		labels: calcLabels(m.CalcOp),
		inputs: []textinput.Model{newInput("", 120), newInput("0", 24), newInput("1", 24)},
	}
	if m.CalcOp == calc.OpDerivative {
		m.Edit.inputs = m.Edit.inputs[:2]
	}
	return m, m.Edit.inputs[0].Focus()
}

func calcLabels(op calc.Op) []string {
	switch op {
	case calc.OpSum:
		return []string{"Expr in k", "Start", "End"}
	case calc.OpDerivative:
		return []string{"Expr in x", "At x"}
	}
	return []string{"Expr in x", "From", "To"}
}

// handleEditKeys processes keys when the edit modal is open.
func (m Model) handleEditKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "escape":
		m.Edit.open = false
		return m, nil

	case "enter":
		if err := m.commitEdit(); err != nil {
			m.Edit.err = err.Error()
			return m, nil
		}
		m.Edit.open = false
		return m, nil

	case "tab", "down":
		return m.focusField(m.Edit.focus + 1)
	case "shift+tab", "up":
		return m.focusField(m.Edit.focus - 1)

	case "ctrl+t":
		if m.Edit.kind == editCalc {
			expr := m.Edit.inputs[0].Value()
			m.CalcOp = m.CalcOp.Next()
			next, cmd := m.openCalc()
			nm := next.(Model)
			nm.Edit.inputs[0].SetValue(expr)
			return nm, cmd
		}
		return m, nil

	default:
		// Forward to active textinput
		var cmd tea.Cmd
		i := m.Edit.focus
		m.Edit.inputs[i], cmd = m.Edit.inputs[i].Update(msg)
		return m, cmd
	}
}

func (m Model) focusField(i int) (tea.Model, tea.Cmd) {
	n := len(m.Edit.inputs)
	m.Edit.inputs[m.Edit.focus].Blur()
	m.Edit.focus = (i%n + n) % n
	return m, m.Edit.inputs[m.Edit.focus].Focus()
}

// commitEdit applies the form to the config or runs the calculator.
func (m *Model) commitEdit() error {
	vals := make([]string, len(m.Edit.inputs))
	for i, in := range m.Edit.inputs {
		vals[i] = strings.TrimSpace(in.Value())
	}

	switch m.Edit.kind {
	case editSeries:
		if m.Edit.index >= len(m.Cfg.Series) {
			return nil
		}
		if vals[1] == "" {
			return errors.New("expression is empty")
		}
		s := &m.Cfg.Series[m.Edit.index]
		s.Name, s.Expr = vals[0], vals[1]
		m.rebuild()

	case editVariable:
		if m.Edit.index >= len(m.Cfg.Variables) {
			return nil
		}
		if vals[0] != "" && !identRe.MatchString(vals[0]) {
			return fmt.Errorf("%q is not a valid name", vals[0])
		}
		nums := make([]float64, 4)
		for i, name := range []string{"value", "min", "max", "step"} {
			f, err := strconv.ParseFloat(vals[i+1], 64)
			if err != nil {
				return fmt.Errorf("%s: %q is not a number", name, vals[i+1])
			}
			nums[i] = f
		}
		v := &m.Cfg.Variables[m.Edit.index]
		v.Name = vals[0]
		v.Value, v.Min, v.Max, v.Step = nums[0], nums[1], nums[2], nums[3]
		m.Cfg.Normalize()
		m.rebuild()

	case editCalc:
		req := calc.Request{Op: m.CalcOp, Expr: vals[0], A: vals[1]}
		if len(vals) > 2 {
			req.B = vals[2]
		}
		res, err := calc.Run(req, m.Cfg.Vars())
		if err != nil {
			return err
		}
		m.CalcResult = res.String()
		m.Status = m.CalcResult
	}
	return nil
}

// buildEditModalLayer renders the edit modal as a centered Z=100 Layer.
func buildEditModalLayer(m Model, screenW, screenH int) *lipgloss.Layer {
	titleStyle := lipgloss.NewStyle().
		Foreground(colorAccent).
		Background(modalBG).
		Bold(true)

	labelStyle := lipgloss.NewStyle().
		Foreground(colorVarName).
		Background(modalBG)

	hintStyle := lipgloss.NewStyle().
		Foreground(colorDim).
		Background(modalBG).
		Italic(true)

	errStyle := lipgloss.NewStyle().
		Foreground(colorWarn).
		Background(modalBG)

	var title, hint string
	switch m.Edit.kind {
	case editSeries:
		title = "EDIT SERIES"
		hint = "  [tab] next  [enter] save  [esc] cancel"
	case editVariable:
		title = "EDIT VARIABLE"
		hint = "  [tab] next  [enter] save  [esc] cancel"
	case editCalc:
		title = "CALCULATOR: " + strings.ToUpper(m.CalcOp.String())
		hint = "  [ctrl+t] mode  [enter] run  [esc] close"
	}

	lines := []string{titleStyle.Render("  " + title), ""}
	for i, in := range m.Edit.inputs {
		mark := "  "
		if i == m.Edit.focus {
			mark = "▸ "
		}
		lines = append(lines,
			labelStyle.Render(mark+m.Edit.labels[i]+":"),
			"  "+in.View(),
		)
	}
	lines = append(lines, "")
	if m.Edit.err != "" {
		lines = append(lines, errStyle.Render("  "+m.Edit.err))
	}
	lines = append(lines, hintStyle.Render(hint))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(modalBG).
		Width(min(60, max(20, screenW-4))).
		Padding(1, 2)

	layer := tealayout.ModalLayer(strings.Join(lines, "\n"), screenW, screenH, boxStyle)
	return layer.ID("edit-modal")
}
