package app

import (
	"image/color"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/theme"
)

// GetCanvas composes every visible window, the drag overlay, notifications
// and the dock into one canvas.
func (s *Shell) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas()

	var layers []*lipgloss.Layer

	topMargin := s.GetTopMargin()
	viewportWidth := s.Width
	viewportHeight := s.GetUsableHeight()

	box := lipgloss.NewStyle().
		Align(lipgloss.Left).
		AlignVertical(lipgloss.Top).
		Border(getBorder()).
		BorderTop(false)

	sess := s.Store.Session()

	for i, w := range s.Windows {
		if !w.Visible {
			continue
		}

		isVisible := w.X+w.Width >= 0 &&
			w.X <= viewportWidth &&
			w.Y+w.Height >= 0 &&
			w.Y <= viewportHeight+topMargin
		if !isVisible {
			continue
		}

		isFocused := s.FocusedWindow == i
		isDetached := sess != nil && sess.DragDetachedWindowID == w.ID

		var borderColor color.Color
		switch {
		case isDetached:
			borderColor = theme.BorderDetached()
		case isFocused:
			borderColor = theme.BorderFocused()
		default:
			borderColor = theme.BorderUnfocused()
		}

		zIndex := w.Z
		if w.AlwaysOnTop {
			zIndex += config.ZIndexAlwaysOnTop
		}

		needsRedraw := w.CachedLayer == nil ||
			w.Dirty || w.ContentDirty || w.PositionDirty ||
			w.CachedLayer.GetX() != w.X ||
			w.CachedLayer.GetY() != w.Y ||
			w.CachedLayer.GetZ() != zIndex

		if !needsRedraw {
			layers = append(layers, w.CachedLayer)
			continue
		}

		strip := s.renderStrip(w, isFocused)
		page := s.renderPage(w)
		content := strip + "\n" + page

		boxContent := box.
			Width(w.Width).
			Height(w.Height-1).
			BorderForeground(borderColor).
			Render(content)
		boxContent = renderTopBorder(
			truncateToWidth(s.windowTitle(w), max(w.Width-8, 0)),
			max(w.Width-2, 0),
			borderColor,
		) + "\n" + boxContent

		w.CachedLayer = lipgloss.NewLayer(boxContent).X(w.X).Y(w.Y).Z(zIndex).ID(w.ID)
		layers = append(layers, w.CachedLayer)
		w.ClearDirtyFlags()
	}

	// The dragged tab floats above everything, positioned from the drag
	// controller's pixel-space tab left edge.
	if sess != nil {
		if w := s.WindowByID(sess.CurrentWindowID); w != nil && w.DragActive && w.Visible {
			if visual := s.renderDraggedTab(w); visual != "" {
				x := w.X + 1 + pxToCellsX(w.DragTabLeft)
				y := w.Y + 1
				layers = append(layers, lipgloss.NewLayer(visual).
					X(x).Y(y).Z(config.ZIndexAnimating+config.ZIndexAlwaysOnTop).
					ID("drag-visual"))
			}
		}
	}

	layers = append(layers, s.renderOverlays()...)

	if config.DockbarPosition != "hidden" {
		layers = append(layers, s.renderDock())
	}

	canvas.AddLayers(layers...)
	return canvas
}

// View renders the whole shell. Idle ticks reuse the cached frame.
func (s *Shell) View() tea.View {
	var view tea.View

	if s.renderSkipped && s.cachedViewContent != "" {
		view.SetContent(s.cachedViewContent)
	} else {
		content := lipgloss.Sprint(s.GetCanvas().Render())
		s.cachedViewContent = content
		view.SetContent(content)
	}

	view.AltScreen = true
	// Tab dragging needs motion events between clicks, so all-motion
	// tracking stays on the whole time.
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true

	return view
}
