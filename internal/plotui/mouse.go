package plotui

import (
	"image"
	"math"

	tea "charm.land/bubbletea/v2"

	"github.com/wesen/graphplot/pkg/cellbuf"
	"github.com/wesen/graphplot/pkg/plot"
	"github.com/wesen/graphplot/pkg/tealayout"
)

// wheelZoom is the zoom factor per wheel notch.
const wheelZoom = 1.08

// handleMouse processes mouse events and returns updated model + command.
func handleMouse(m Model, msg tea.MouseMsg, layout tealayout.Layout) (Model, tea.Cmd) {
	mouse := msg.Mouse()
	m.MouseX = mouse.X
	m.MouseY = mouse.Y

	// A drag may leave the canvas; everything else must start inside it.
	region, ok := layout.At(mouse.X, mouse.Y)
	inside := ok && region.Name == "canvas"
	if !inside && !m.Dragging {
		if !m.Pinned {
			m.TipOn = false
		}
		return m, nil
	}
	sx, sy := cellToDots(mouse.X, mouse.Y, layout.Get("canvas"))

	switch msg.(type) {
	case tea.MouseWheelMsg:
		switch mouse.Button {
		case tea.MouseWheelUp:
			m.Plot.ZoomAt(sx, sy, wheelZoom)
		case tea.MouseWheelDown:
			m.Plot.ZoomAt(sx, sy, 1/wheelZoom)
		}

	case tea.MouseClickMsg:
		if mouse.Button == tea.MouseLeft {
			m.Dragging = true
			m.DragMoved = false
			m.DragX, m.DragY = mouse.X, mouse.Y
		}

	case tea.MouseMotionMsg:
		if m.Dragging {
			dx := mouse.X - m.DragX
			dy := mouse.Y - m.DragY
			if dx != 0 || dy != 0 {
				m.Plot.PanBy(float64(dx*cellbuf.DotsPerCellX), float64(dy*cellbuf.DotsPerCellY))
				m.DragX, m.DragY = mouse.X, mouse.Y
				m.DragMoved = true
			}
		} else if !m.Pinned && m.Err == "" {
			m.Tip, m.TipOn = m.Plot.InterceptAtScreen(sx, sy, plot.DefaultHitRadius)
		}

	case tea.MouseReleaseMsg:
		if m.Dragging && !m.DragMoved && inside {
			m = handleClick(m, sx, sy)
		}
		m.Dragging = false
	}

	m.recompute()
	return m, nil
}

// handleClick pins the marker under the pointer, or unpins when there is
// none. Markers of the last good series are not drawn under an error, so
// they cannot be pinned.
func handleClick(m Model, sx, sy float64) Model {
	if m.Err != "" {
		m.TipOn, m.Pinned = false, false
		return m
	}
	if h, ok := m.Plot.InterceptAtScreen(sx, sy, plot.DefaultHitRadius); ok {
		m.Tip, m.TipOn, m.Pinned = h, true, true
		return m
	}
	m.TipOn, m.Pinned = false, false
	return m
}

// cellToDots maps a terminal cell to the dot at its centre in canvas
// pixel space.
func cellToDots(x, y int, canvas tealayout.Region) (float64, float64) {
	p := canvas.Local(x, y)
	return float64(p.X*cellbuf.DotsPerCellX) + cellbuf.DotsPerCellX/2.0,
		float64(p.Y*cellbuf.DotsPerCellY) + cellbuf.DotsPerCellY/2.0
}

// dotsToCell is the inverse of cellToDots, in terminal coordinates.
func dotsToCell(sx, sy float64, canvas image.Rectangle) image.Point {
	return image.Pt(
		canvas.Min.X+int(math.Floor(sx/cellbuf.DotsPerCellX)),
		canvas.Min.Y+int(math.Floor(sy/cellbuf.DotsPerCellY)),
	)
}
