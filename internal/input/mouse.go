// Package input implements mouse and keyboard handling for tabshell.
package input

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/tabshell/tabshell/internal/app"
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/drag"
	"github.com/tabshell/tabshell/internal/dragctl"
	"github.com/tabshell/tabshell/internal/tabs"
	"github.com/tabshell/tabshell/internal/ui"
)

// pointerClientPx converts a cell position to a window's client pixels.
// Client (0,0) is the first content cell inside the border.
func pointerClientPx(w *app.Window, x, y int) (int, int) {
	return (x - w.X - 1) * config.CellWidth, (y - w.Y - 1) * config.CellHeight
}

// stripSlotAt returns the tab slot index under a cell position on a window's
// strip row, or -1 when the position is past every slot.
func stripSlotAt(w *app.Window, x int) int {
	rel := x - w.X - 1
	if rel < 0 || rel >= w.Width-2 {
		return -1
	}
	return rel / config.TabCellWidth
}

// tabAtSlot resolves a strip slot to a tab: pinned tabs occupy the leading
// slots, the current page's unpinned tabs follow.
func tabAtSlot(s *app.Shell, w *app.Window, slot int) *tabs.Tab {
	if slot < 0 {
		return nil
	}
	var pinned []*tabs.Tab
	for _, tab := range s.Tabs.TabsFor(w.ID) {
		if tab.Pinned {
			pinned = append(pinned, tab)
		}
	}
	if slot < len(pinned) {
		return pinned[slot]
	}

	unpinned := s.Tabs.UnpinnedFor(w.ID)
	layout := w.Strip.Layout(len(unpinned))
	pageSlot := slot - len(pinned)
	if pageSlot >= layout.DisplayedTabCount {
		return nil
	}
	return unpinned[layout.FirstTabDisplayIndex+pageSlot]
}

func handleMouseClick(msg tea.MouseClickMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	mouse := msg.Mouse()
	x, y := mouse.X, mouse.Y
	s.MouseX, s.MouseY = x, y

	// Clicks on the dock are consumed.
	if (config.DockbarPosition == "bottom" && y >= s.Height-config.DockHeight) ||
		(config.DockbarPosition == "top" && y < config.DockHeight) {
		return s, nil
	}

	w := s.WindowAt(x, y)
	if w == nil {
		return s, nil
	}

	// Close button on the title bar, rightmost.
	if !config.HideWindowButtons && mouse.Button == tea.MouseLeft &&
		y == w.Y && x >= w.X+w.Width-4 && x <= w.X+w.Width-2 {
		s.DeleteWindow(s.WindowIndex(w.ID))
		s.InteractionMode = false
		return s, nil
	}

	if err := s.FocusWindow(w.ID); err != nil {
		return s, nil
	}

	switch mouse.Button {
	case tea.MouseRight:
		s.InteractionMode = true
		s.ResizingWindow = true
		s.ResizedWindowID = w.ID
		s.ResizeStartX = x
		s.ResizeStartY = y
		s.PreResizeW = w.Width
		s.PreResizeH = w.Height
		return s, nil

	case tea.MouseLeft:
		// Strip row: the first content row inside the border.
		if y == w.Y+1 {
			return handleStripPress(s, w, x, y)
		}

		// Title bar: start a direct window move.
		if y == w.Y {
			s.InteractionMode = true
			s.MovingWindow = true
			s.MovedWindowID = w.ID
			s.DragOffsetX = x - w.X
			s.DragOffsetY = y - w.Y
		}
	}

	return s, nil
}

// handleStripPress activates the pressed tab and arms its drag controller.
func handleStripPress(s *app.Shell, w *app.Window, x, y int) (*app.Shell, tea.Cmd) {
	slot := stripSlotAt(w, x)
	tab := tabAtSlot(s, w, slot)
	if tab == nil {
		return s, nil
	}

	w.ActiveTabID = tab.ID
	w.ContentDirty = true

	clientX, clientY := pointerClientPx(w, x, y)
	left, top, width, height := s.StripBoundsPx(w)
	tabBoxX := slot * config.TabCellWidth * config.CellWidth
	singleTab := s.Tabs.Count(w.ID) == 1

	grab := dragctl.Grab{
		WindowID:    w.ID,
		TabID:       tab.ID,
		SingleTab:   singleTab,
		Pinned:      tab.Pinned,
		StripLeft:   left,
		StripTop:    top,
		StripWidth:  width,
		StripHeight: height,
		TabWidth:    config.TabCellWidth * config.CellWidth,
		RelX:        clientX - tabBoxX,
		RelY:        clientY - top,
		TabBoxX:     tabBoxX,
		TabBoxY:     top,
	}

	w.Drag.Press(grab, clientX, clientY)
	s.SetPressInfo(app.PressInfo{
		TabID:     tab.ID,
		SingleTab: singleTab,
		RelX:      grab.RelX,
		RelY:      grab.RelY,
		TabWidth:  grab.TabWidth,
	})
	s.TabPressWindowID = w.ID
	s.TabPressTabID = tab.ID
	s.InteractionMode = true
	return s, nil
}

func handleMouseMotion(msg tea.MouseMotionMsg, s *app.Shell) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	return s, trackPointer(s, mouse.X, mouse.Y)
}

// trackPointer routes one pointer position to whichever interaction owns the
// pointer: a window move, a resize, or the pressed window's drag controller.
func trackPointer(s *app.Shell, x, y int) tea.Cmd {
	s.MouseX, s.MouseY = x, y

	if s.MovingWindow {
		w := s.WindowByID(s.MovedWindowID)
		if w == nil {
			s.MovingWindow = false
			return nil
		}
		w.X = x - s.DragOffsetX
		w.Y = y - s.DragOffsetY
		w.PositionDirty = true
		return nil
	}

	if s.ResizingWindow {
		w := s.WindowByID(s.ResizedWindowID)
		if w == nil {
			s.ResizingWindow = false
			return nil
		}
		w.Width = max(s.PreResizeW+(x-s.ResizeStartX), config.MinWindowWidth)
		w.Height = max(s.PreResizeH+(y-s.ResizeStartY), config.MinWindowHeight)
		w.Dirty = true
		return nil
	}

	var cmds []tea.Cmd

	// Pointer tracking for an armed or active tab drag.
	if s.TabPressWindowID != "" {
		w := s.WindowByID(s.TabPressWindowID)
		if w == nil {
			s.TabPressWindowID = ""
			s.TabPressTabID = ""
			return nil
		}
		clientX, clientY := pointerClientPx(w, x, y)
		total := len(s.Tabs.UnpinnedFor(w.ID))
		res := w.Drag.PointerMove(clientX, clientY, w.Strip.Layout(total),
			s.DisplayIndexOf(s.TabPressTabID), time.Now())
		if cmd := s.ProcessMoveResult(w, res); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// Cross-window hover: while a detached single-tab window follows the
	// cursor, its transparency pulses let WindowAt see the window underneath.
	// Hovering that window's strip requests the attach.
	if cmd := detectCrossWindowHover(s, x, y); cmd != nil {
		cmds = append(cmds, cmd)
	}

	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

func detectCrossWindowHover(s *app.Shell, x, y int) tea.Cmd {
	sess := s.Store.Session()
	if sess == nil || sess.DragDetachedWindowID == "" || sess.Pending != drag.PendingNone {
		return nil
	}
	hovered := s.WindowAt(x, y)
	if hovered == nil || hovered.ID == sess.CurrentWindowID || hovered.Buffer {
		return nil
	}
	if y != hovered.Y+1 {
		return nil
	}

	frameIndex := s.Tabs.Count(hovered.ID)
	if tab := tabAtSlot(s, hovered, stripSlotAt(hovered, x)); tab != nil {
		slotDisplay := s.DisplayIndexOf(tab.ID)
		if slotDisplay >= 0 {
			frameIndex = s.FrameIndexFor(hovered.ID, slotDisplay)
		}
	}

	return s.DispatchDragEvent(drag.MouseOverOtherWindowTab{
		SenderWindowID: hovered.ID,
		FrameIndex:     frameIndex,
	})
}

func handleMouseRelease(msg tea.MouseReleaseMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	mouse := msg.Mouse()
	return s, releasePointer(s, mouse.X, mouse.Y)
}

// releasePointer ends whichever interaction the pointer was driving and tears
// down the pressed window's drag controller.
func releasePointer(s *app.Shell, x, y int) tea.Cmd {
	s.MouseX, s.MouseY = x, y

	s.MovingWindow = false
	s.ResizingWindow = false
	s.InteractionMode = false

	if s.TabPressWindowID == "" {
		return nil
	}
	w := s.WindowByID(s.TabPressWindowID)
	tabID := s.TabPressTabID
	s.TabPressWindowID = ""
	s.TabPressTabID = ""
	if w == nil {
		return nil
	}

	wasDragging := w.Drag.Teardown()
	w.Strip.CancelPending()
	if !wasDragging {
		// Plain click; the tab was already activated on press.
		return nil
	}

	startTabSettle(s, w, tabID)
	return s.DispatchDragEvent(drag.DragComplete{})
}

// startTabSettle eases the drag visual back into the tab's resting slot.
func startTabSettle(s *app.Shell, w *app.Window, tabID string) {
	dur := config.GetAnimationDuration()
	if !w.DragActive || dur <= 0 {
		w.DragActive = false
		w.ContentDirty = true
		return
	}

	display := s.DisplayIndexOf(tabID)
	if display < 0 {
		w.DragActive = false
		w.ContentDirty = true
		return
	}
	layout := w.Strip.Layout(len(s.Tabs.UnpinnedFor(w.ID)))
	pageSlot := display - layout.FirstTabDisplayIndex
	target := pageSlot * config.TabCellWidth * config.CellWidth

	s.Animations = append(s.Animations, &ui.Animation{
		Kind:      ui.TabSettle,
		WindowID:  w.ID,
		TabID:     tabID,
		StartTime: time.Now(),
		Duration:  dur,
		FromX:     w.DragTabLeft,
		ToX:       target,
	})
}

func handleMouseWheel(msg tea.MouseWheelMsg, s *app.Shell) (*app.Shell, tea.Cmd) {
	mouse := msg.Mouse()
	w := s.WindowAt(mouse.X, mouse.Y)
	if w == nil || mouse.Y != w.Y+1 {
		return s, nil
	}

	// Wheel over the strip pages it.
	total := len(s.Tabs.UnpinnedFor(w.ID))
	switch mouse.Button {
	case tea.MouseWheelUp:
		w.Strip.SetPage(w.Strip.Page()-1, total)
	case tea.MouseWheelDown:
		w.Strip.SetPage(w.Strip.Page()+1, total)
	}
	w.ContentDirty = true
	return s, nil
}
