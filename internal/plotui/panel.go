package plotui

import (
	"fmt"
	"image"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/wesen/graphplot/pkg/cellbuf"
	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/render"
	"github.com/wesen/graphplot/pkg/series"
)

const (
	panelWidth     = 34
	minCanvasWidth = 30
	calcH          = 4
	helpH          = 9
)

// padLine right-pads and renders a line with consistent background to the given width.
func padLine(s string, width int) string {
	vis := lipgloss.Width(s)
	pad := width - vis
	if pad > 0 {
		s += panelBgStyle.Render(strings.Repeat(" ", pad))
	}
	return s
}

// truncate cuts s to n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// sectionLayer renders a titled panel section padded to width×height.
func sectionLayer(title string, body []string, x, y, width, height int, id string) *lipgloss.Layer {
	lines := []string{
		panelTitleStyle.Render(title),
		panelDimStyle.Render(strings.Repeat("─", max(0, width-2))),
	}
	lines = append(lines, body...)

	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:max(0, height)]

	for i, l := range lines {
		lines[i] = padLine(l, width)
	}
	return lipgloss.NewLayer(strings.Join(lines, "\n")).X(x).Y(y).Z(1).ID(id)
}

// seriesLines lists the series with visibility, color swatch and type.
func seriesLines(m Model, width int) []string {
	if len(m.Cfg.Series) == 0 {
		return []string{panelDimStyle.Render("  (none) [a] to add")}
	}
	var lines []string
	for i, s := range m.Cfg.Series {
		vis := "○"
		if s.Visible {
			vis = "●"
		}
		swatch := lipgloss.NewStyle().Foreground(c(s.Color)).Background(panelBG).Render(vis)

		text := s.Expr
		if s.Name != "" {
			text = s.Name + ": " + s.Expr
		}
		kind, _ := series.ParseKind(s.Type)
		tag := kind.String()[:1]
		if s.Derivative {
			tag += "'"
		}
		style := panelTextStyle
		if m.Focus == FocusSeries && i == m.SeriesSel {
			style = panelSelStyle
		}
		body := style.Render(fmt.Sprintf(" %-2s %s", tag, truncate(text, width-8)))
		lines = append(lines, " "+swatch+body)
	}
	return lines
}

// variableLines lists the variables as name = value [min, max].
func variableLines(m Model, width int) []string {
	if len(m.Cfg.Variables) == 0 {
		return []string{panelDimStyle.Render("  (none) [tab] [a] to add")}
	}
	var lines []string
	for i, v := range m.Cfg.Variables {
		name := v.Name
		if name == "" {
			name = "?"
		}
		style := panelDimStyle
		if m.Focus == FocusVariables && i == m.VarSel {
			style = panelSelStyle
		}
		rng := fmt.Sprintf(" = %s [%s, %s]",
			render.FormatNumber(v.Value), render.FormatNumber(v.Min), render.FormatNumber(v.Max))
		lines = append(lines,
			panelVarNameStyle.Render("  "+name)+style.Render(truncate(rng, width-4-len(name))))
	}
	return lines
}

// markerLines lists the visible markers with their coordinates.
func markerLines(m Model, canvas image.Rectangle, width, height int) []string {
	if m.Err != "" {
		return []string{panelDimStyle.Render("  (hidden: compile error)")}
	}
	r := image.Rect(0, 0, canvas.Dx()*cellbuf.DotsPerCellX, canvas.Dy()*cellbuf.DotsPerCellY)
	hits := m.Plot.MarkersIn(r)
	if len(hits) == 0 {
		return []string{panelDimStyle.Render("  (none in view)")}
	}
	var lines []string
	for i, h := range hits {
		if i == height-1 && len(hits) > height {
			lines = append(lines, panelDimStyle.Render(fmt.Sprintf("  … %d more", len(hits)-i)))
			break
		}
		dot := lipgloss.NewStyle().Foreground(c(h.Color)).Background(panelBG).Render("●")
		text := fmt.Sprintf(" %s %s", kindTag(h.Kind), h.Coords())
		lines = append(lines, " "+dot+panelTextStyle.Render(truncate(text, width-3)))
	}
	return lines
}

func kindTag(k plot.HitKind) string {
	switch k {
	case plot.HitXIntercept:
		return "x "
	case plot.HitYIntercept:
		return "y "
	}
	return "∩ "
}

func helpLines() []string {
	return []string{
		panelTextStyle.Render("  drag=pan  wheel=zoom  click=pin"),
		panelTextStyle.Render("  ←↑↓→ pan  +/- zoom  [r]eset"),
		panelTextStyle.Render("  [tab] focus  [j]/[k] select"),
		panelTextStyle.Render("  [a]dd [e]dit [x]del [v]is"),
		panelTextStyle.Render("  [d]eriv [t]ype  [ ] nudge var"),
		panelTextStyle.Render("  [c]alc  [p]ng  ^s save  [o]pen"),
		panelTextStyle.Render("  [q]uit"),
	}
}

// buildPanelLayers stacks the panel sections inside pr. The marker list
// takes whatever height is left.
func buildPanelLayers(m Model, pr, canvas image.Rectangle) []*lipgloss.Layer {
	pw, ph := pr.Dx(), pr.Dy()
	if pw <= 2 || ph <= 0 {
		return nil
	}
	x, w := pr.Min.X+1, pw-2

	seriesBody := seriesLines(m, w)
	varsBody := variableLines(m, w)
	seriesH := min(len(seriesBody)+2, max(3, ph/3))
	varsH := min(len(varsBody)+2, max(3, ph/5))

	calcBody := []string{panelDimStyle.Render("  [c] to open")}
	if m.CalcResult != "" {
		calcBody = []string{panelTextStyle.Render("  " + truncate(m.CalcResult, w-2))}
	}

	markersH := max(3, ph-seriesH-varsH-calcH-helpH)

	var layers []*lipgloss.Layer
	y := pr.Min.Y
	add := func(title string, body []string, h int, id string) {
		h = min(h, pr.Max.Y-y)
		if h <= 0 {
			return
		}
		layers = append(layers, sectionLayer(title, body, x, y, w, h, id))
		y += h
	}
	add("SERIES", seriesBody, seriesH, "panel-series")
	add("VARIABLES", varsBody, varsH, "panel-vars")
	add("CALCULATOR", calcBody, calcH, "panel-calc")
	add("MARKERS", markerLines(m, canvas, w, markersH-2), markersH, "panel-markers")
	add("HELP", helpLines(), helpH, "panel-help")
	return layers
}
