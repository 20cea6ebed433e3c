package plotui

import (
	"fmt"
	"image"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/render"
	"github.com/wesen/graphplot/pkg/tealayout"
)

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.Width == 0 || m.Height == 0 {
		return tea.NewView("")
	}

	layout := m.layout()
	canvasRegion := layout.Get("canvas")
	panelRegion := layout.Get("panel")

	var layers []*lipgloss.Layer

	// Background
	layers = append(layers,
		tealayout.FillLayer(layout.Get("toolbar"), tbStyle, "toolbar-bg", tealayout.ZBackground),
		tealayout.FillLayer(layout.Get("footer"), ftStyle, "footer-bg", tealayout.ZBackground),
		tealayout.FillLayer(panelRegion, panelBgStyle, "panel-bg", tealayout.ZBackground),
	)

	// Toolbar
	focus := "series"
	if m.Focus == FocusVariables {
		focus = "variables"
	}
	tbContent := fmt.Sprintf(" graphplot  │  focus: %s  │  [a]dd [e]dit [c]alc  │  [r]eset [p]ng ^s save  │  [q]uit", focus)
	layers = append(layers, tealayout.ToolbarLayer(tbContent, m.Width, tbStyle))

	// Footer
	layers = append(layers, m.footerLayer(canvasRegion))

	// Canvas
	if !canvasRegion.Rect.Empty() {
		m.Plot.Draw(m.Surface, m.Err)
		layers = append(layers, lipgloss.NewLayer(m.Surface.Render()).
			X(canvasRegion.Rect.Min.X).Y(canvasRegion.Rect.Min.Y).
			Z(tealayout.ZBackground).ID("plot-canvas"))
	}

	// Side panel
	if pr := panelRegion.Rect; !pr.Empty() {
		layers = append(layers, tealayout.VerticalSeparator(pr.Min.X, pr.Min.Y, pr.Dy(), panelSepStyle))
		layers = append(layers, buildPanelLayers(m, pr, canvasRegion.Rect)...)
	}

	// Tooltip
	if l := m.tooltipLayer(canvasRegion.Rect); l != nil {
		layers = append(layers, l)
	}

	// Modal
	if m.Edit.open {
		layers = append(layers, buildEditModalLayer(m, m.Width, m.Height))
	}

	comp := lipgloss.NewCompositor(layers...)
	canvas := lipgloss.NewCanvas(m.Width, m.Height)
	canvas.Compose(comp)

	v := tea.NewView(canvas.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	return v
}

// footerLayer shows the window, the world position under the pointer and
// the status line. Compile errors take precedence over the status.
func (m Model) footerLayer(canvas tealayout.Region) *lipgloss.Layer {
	w := m.Plot.View()
	parts := []string{
		fmt.Sprintf(" x∈[%s, %s] y∈[%s, %s]",
			render.FormatNumber(w.XMin), render.FormatNumber(w.XMax),
			render.FormatNumber(w.YMin), render.FormatNumber(w.YMax)),
	}
	if canvas.Contains(m.MouseX, m.MouseY) {
		wx, wy := m.Plot.ScreenToWorld(cellToDots(m.MouseX, m.MouseY, canvas))
		parts = append(parts, fmt.Sprintf("(%.3f, %.3f)", wx, wy))
	}
	if m.Err == "" {
		parts = append(parts, fmt.Sprintf("markers %d", m.Plot.MarkerCount()))
	}

	style := ftStyle
	switch {
	case m.Err != "":
		style = ftErrStyle
		parts = append(parts, m.Err)
	case m.Status != "":
		parts = append(parts, m.Status)
	}
	return tealayout.FooterLayer(strings.Join(parts, "  │  "), m.Width, m.Height-1, style)
}

// tooltipLayer renders the hovered or pinned marker. A pinned tooltip
// follows its marker through pan and zoom and hides while the marker is
// off canvas.
func (m Model) tooltipLayer(canvas image.Rectangle) *lipgloss.Layer {
	if !m.TipOn || m.Err != "" {
		return nil
	}
	sx, sy := m.Plot.WorldToScreen(m.Tip.X, m.Tip.Y)
	anchor := dotsToCell(sx, sy, canvas)
	if !anchor.In(canvas) {
		return nil
	}
	return tealayout.TooltipLayer(tooltipText(m.Tip), anchor, canvas, tipStyle.BorderForeground(c(m.Tip.Color)))
}

// tooltipText is the marker title over its coordinates.
func tooltipText(h plot.Hit) string {
	coords := lipgloss.NewStyle().Foreground(c(h.Color)).Bold(true).Render(h.Coords())
	return h.Title() + "\n" + coords
}
