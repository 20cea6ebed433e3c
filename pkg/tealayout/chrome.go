package tealayout

import (
	"image"
	"strings"

	"charm.land/lipgloss/v2"
)

// Z levels used by the chrome builders.
const (
	ZBackground = 0
	ZContent    = 1
	ZTooltip    = 50
	ZModal      = 100
)

// ToolbarLayer creates a Layer for a toolbar at the top of the screen.
func ToolbarLayer(content string, width int, style lipgloss.Style) *lipgloss.Layer {
	rendered := style.Width(width).MaxHeight(1).Render(content)
	return lipgloss.NewLayer(rendered).X(0).Y(0).Z(ZContent).ID("toolbar")
}

// FooterLayer creates a Layer for a footer at a given y position.
func FooterLayer(content string, width, y int, style lipgloss.Style) *lipgloss.Layer {
	rendered := style.Width(width).MaxHeight(1).Render(content)
	return lipgloss.NewLayer(rendered).X(0).Y(y).Z(ZContent).ID("footer")
}

// VerticalSeparator creates a Layer with a vertical line of │ characters.
func VerticalSeparator(x, y, height int, style lipgloss.Style) *lipgloss.Layer {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = "│"
	}
	rendered := style.Render(strings.Join(lines, "\n"))
	return lipgloss.NewLayer(rendered).X(x).Y(y).Z(ZContent).ID("separator")
}

// ModalLayer creates a centered high-Z overlay Layer.
// The content is rendered inside boxStyle, then centered on the terminal.
func ModalLayer(content string, termW, termH int, boxStyle lipgloss.Style) *lipgloss.Layer {
	rendered := boxStyle.Render(content)
	w := lipgloss.Width(rendered)
	h := lipgloss.Height(rendered)
	cx := max(0, (termW-w)/2)
	cy := max(0, (termH-h)/2)
	return lipgloss.NewLayer(rendered).X(cx).Y(cy).Z(ZModal).ID("modal")
}

// TooltipLayer renders content in boxStyle next to the anchor cell: one
// column right and two rows up when it fits. The box is clamped so it
// stays inside bounds.
func TooltipLayer(content string, anchor image.Point, bounds image.Rectangle, boxStyle lipgloss.Style) *lipgloss.Layer {
	rendered := boxStyle.Render(content)
	w := lipgloss.Width(rendered)
	h := lipgloss.Height(rendered)
	x := clamp(anchor.X+1, bounds.Min.X, bounds.Max.X-w)
	y := clamp(anchor.Y-h, bounds.Min.Y, bounds.Max.Y-h)
	return lipgloss.NewLayer(rendered).X(x).Y(y).Z(ZTooltip).ID("tooltip")
}

// FillLayer creates a Layer filled with the given style at a region's position.
// Useful for creating background layers that fill a layout region.
func FillLayer(r Region, style lipgloss.Style, id string, z int) *lipgloss.Layer {
	w := r.Rect.Dx()
	h := r.Rect.Dy()
	if w <= 0 || h <= 0 {
		return lipgloss.NewLayer("").X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
	}
	line := strings.Repeat(" ", w)
	lines := make([]string, h)
	for i := range lines {
		lines[i] = line
	}
	rendered := style.Render(strings.Join(lines, "\n"))
	return lipgloss.NewLayer(rendered).X(r.Rect.Min.X).Y(r.Rect.Min.Y).Z(z).ID(id)
}

// clamp keeps v in [lo, hi]; lo wins when the range is empty.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
