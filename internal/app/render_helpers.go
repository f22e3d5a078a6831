package app

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/theme"
)

var baseButtonStyle = lipgloss.NewStyle().Foreground(theme.ButtonFg())

var asciiBorder = lipgloss.Border{
	Top: "-", Bottom: "-", Left: "|", Right: "|",
	TopLeft: "+", TopRight: "+", BottomLeft: "+", BottomRight: "+",
}

func getBorder() lipgloss.Border {
	if config.UseASCIIOnly {
		return asciiBorder
	}
	switch config.BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "thick":
		return lipgloss.ThickBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// truncateToWidth shortens a string to fit maxWidth display cells, appending
// an ellipsis when it had to cut.
func truncateToWidth(str string, maxWidth int) string {
	if ansi.StringWidth(str) <= maxWidth {
		return str
	}
	if maxWidth <= 1 {
		return ""
	}
	runes := []rune(str)
	for ansi.StringWidth(string(runes)) > maxWidth-1 && len(runes) > 0 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// windowTitle returns a window's display name: the custom name if set,
// otherwise the active tab's title.
func (s *Shell) windowTitle(w *Window) string {
	if w.CustomName != "" {
		return w.CustomName
	}
	if tab := s.Tabs.Get(w.ActiveTabID); tab != nil {
		return tab.Title
	}
	return ""
}

// renderTopBorder draws the top border line with a title badge on the left
// and the close button on the right.
func renderTopBorder(title string, width int, borderColor color.Color) string {
	border := getBorder()
	style := lipgloss.NewStyle().Foreground(borderColor)

	var buttons string
	if !config.HideWindowButtons {
		buttons = baseButtonStyle.Background(borderColor).Render(" ✕ ")
		if config.UseASCIIOnly {
			buttons = baseButtonStyle.Background(borderColor).Render(" x ")
		}
	}

	var badge string
	if title != "" {
		badge = baseButtonStyle.Background(borderColor).Render(" " + title + " ")
	}

	middle := width - lipgloss.Width(badge) - lipgloss.Width(buttons)
	if middle < 0 {
		badge = ""
		middle = width - lipgloss.Width(buttons)
	}
	if middle < 0 {
		buttons = ""
		middle = width
	}

	return style.Render(border.TopLeft) +
		badge +
		style.Render(strings.Repeat(border.Top, middle)) +
		buttons +
		style.Render(border.TopRight)
}

// renderStrip draws one window's tab strip row: the visible page of tab
// slots plus a page indicator when there is more than one page.
func (s *Shell) renderStrip(w *Window, focused bool) string {
	visible := s.Tabs.TabsFor(w.ID)
	unpinned := s.Tabs.UnpinnedFor(w.ID)
	layout := w.Strip.Layout(len(unpinned))

	innerWidth := max(w.Width-2, 0)
	var b strings.Builder

	activeStyle := lipgloss.NewStyle().Background(theme.TabActiveBg()).Foreground(theme.TabActiveFg())
	inactiveStyle := lipgloss.NewStyle().Foreground(theme.TabInactiveFg())
	pinnedStyle := lipgloss.NewStyle().Foreground(theme.TabPinnedFg())

	used := 0

	// Pinned tabs render first and never page. Every slot is exactly
	// TabCellWidth cells so hit testing can divide by the slot width.
	for _, tab := range visible {
		if !tab.Pinned {
			continue
		}
		marker := "📌"
		if config.UseASCIIOnly {
			marker = "*"
		}
		label := truncateToWidth(marker+tab.Title, config.TabCellWidth)
		label += strings.Repeat(" ", max(config.TabCellWidth-ansi.StringWidth(label), 0))
		b.WriteString(pinnedStyle.Render(label))
		used += config.TabCellWidth
	}

	draggedID := ""
	if w.DragActive {
		if sess := s.Store.Session(); sess != nil && sess.CurrentWindowID == w.ID {
			draggedID = sess.SourceTabID
		}
	}

	for i := 0; i < layout.DisplayedTabCount; i++ {
		idx := layout.FirstTabDisplayIndex + i
		if idx >= len(unpinned) {
			break
		}
		tab := unpinned[idx]
		label := truncateToWidth(tab.Title, config.TabCellWidth-1)
		label += strings.Repeat(" ", max(config.TabCellWidth-ansi.StringWidth(label), 0))

		var slot string
		switch {
		case tab.ID == draggedID:
			// The dragged tab is drawn as a floating overlay; its slot
			// renders as a gap.
			slot = strings.Repeat(" ", config.TabCellWidth)
		case tab.ID == w.ActiveTabID && focused:
			slot = activeStyle.Render(label)
		default:
			slot = inactiveStyle.Render(label)
		}
		if used+config.TabCellWidth > innerWidth {
			break
		}
		b.WriteString(slot)
		used += config.TabCellWidth
	}

	// Page indicator, right-aligned; highlighted while a debounced page
	// change is pending.
	if layout.TotalPages > 1 {
		pager := fmt.Sprintf("‹%d/%d›", w.Strip.Page()+1, layout.TotalPages)
		if config.UseASCIIOnly {
			pager = fmt.Sprintf("<%d/%d>", w.Strip.Page()+1, layout.TotalPages)
		}
		pagerFg := theme.StripPagerFg()
		if w.Strip.Paused() {
			pagerFg = theme.StripPagerPendingFg()
		}
		styled := lipgloss.NewStyle().Foreground(pagerFg).Render(pager)
		pad := innerWidth - used - ansi.StringWidth(pager)
		if pad >= 0 {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(styled)
			used = innerWidth
		}
	}

	if used < innerWidth {
		b.WriteString(strings.Repeat(" ", innerWidth-used))
	}
	return b.String()
}

// renderDraggedTab draws the floating visual of the tab under the cursor.
func (s *Shell) renderDraggedTab(w *Window) string {
	sess := s.Store.Session()
	if sess == nil {
		return ""
	}
	tab := s.Tabs.Get(sess.SourceTabID)
	if tab == nil {
		return ""
	}
	label := truncateToWidth(tab.Title, config.TabCellWidth-1)
	label += strings.Repeat(" ", max(config.TabCellWidth-ansi.StringWidth(label), 0))
	return lipgloss.NewStyle().
		Background(theme.TabDraggedBg()).
		Foreground(theme.TabActiveFg()).
		Render(label)
}

// renderPage draws the active tab's page pane.
func (s *Shell) renderPage(w *Window) string {
	innerWidth := max(w.Width-2, 0)
	innerHeight := max(w.Height-3, 0) // borders and strip row

	style := lipgloss.NewStyle().
		Background(theme.PageBg()).
		Foreground(theme.PageFg()).
		Width(innerWidth).
		Height(innerHeight)

	tab := s.Tabs.Get(w.ActiveTabID)
	if tab == nil {
		return style.Render("")
	}
	body := truncateToWidth(tab.URL, innerWidth)
	return style.Render(body)
}

// renderDock draws the bottom (or top) status bar: window list on the left,
// CPU and RAM on the right.
func (s *Shell) renderDock() *lipgloss.Layer {
	dockStyle := lipgloss.NewStyle().
		Background(theme.DockBg()).
		Foreground(theme.DockFg()).
		Width(s.Width)
	hlStyle := lipgloss.NewStyle().Background(theme.DockBg()).Foreground(theme.DockHighlight())
	dimStyle := lipgloss.NewStyle().Background(theme.DockBg()).Foreground(theme.DockDimmed())
	sepStyle := lipgloss.NewStyle().Background(theme.DockBg()).Foreground(theme.DockSeparator())

	sep := sepStyle.Render(" │ ")
	if config.UseASCIIOnly {
		sep = sepStyle.Render(" | ")
	}

	var left strings.Builder
	focused := s.GetFocusedWindow()
	for _, w := range s.Windows {
		if w.Buffer || !w.Visible {
			continue
		}
		name := truncateToWidth(s.windowTitle(w), 16)
		if name == "" {
			name = w.ID[:8]
		}
		if left.Len() > 0 {
			left.WriteString(sep)
		}
		if w == focused {
			left.WriteString(hlStyle.Render(name))
		} else {
			left.WriteString(dimStyle.Render(name))
		}
	}

	cpuStr := "cpu --%"
	if len(s.CPUHistory) > 0 {
		cpuStr = fmt.Sprintf("cpu %2.0f%%", s.CPUHistory[len(s.CPUHistory)-1])
	}
	right := dimStyle.Render(fmt.Sprintf("%s  ram %2.0f%%", cpuStr, s.RAMUsage))

	pad := s.Width - lipgloss.Width(left.String()) - lipgloss.Width(right) - 2
	if pad < 0 {
		pad = 0
	}
	line := " " + left.String() + strings.Repeat(" ", pad) + right + " "
	content := dockStyle.Height(config.DockHeight).Render(truncateToWidth(line, s.Width))

	y := s.Height - config.DockHeight
	if config.DockbarPosition == "top" {
		y = 0
	}
	return lipgloss.NewLayer(content).X(0).Y(y).Z(config.ZIndexAlwaysOnTop + 1).ID("dock")
}

// renderOverlays draws notifications stacked in the top-right corner.
func (s *Shell) renderOverlays() []*lipgloss.Layer {
	if len(s.Notifications) == 0 {
		return nil
	}

	var layers []*lipgloss.Layer
	y := s.GetTopMargin() + 1
	for i, n := range s.Notifications {
		if i >= config.MaxVisibleNotifications {
			break
		}
		var fg color.Color
		switch n.Type {
		case "error":
			fg = theme.NotificationError()
		case "warning":
			fg = theme.NotificationWarning()
		case "success":
			fg = theme.NotificationSuccess()
		default:
			fg = theme.NotificationInfo()
		}
		content := lipgloss.NewStyle().
			Background(theme.NotificationBg()).
			Foreground(theme.NotificationFg()).
			Border(getBorder()).
			BorderForeground(fg).
			Padding(0, 1).
			Render(truncateToWidth(n.Message, config.MaxNotificationWidth))

		x := s.Width - lipgloss.Width(content) - config.NotificationMargin
		if x < 0 {
			x = 0
		}
		layers = append(layers, lipgloss.NewLayer(content).
			X(x).Y(y).Z(config.ZIndexAlwaysOnTop+2+i).
			ID(fmt.Sprintf("notification-%d", i)))
		y += lipgloss.Height(content)
	}
	return layers
}
