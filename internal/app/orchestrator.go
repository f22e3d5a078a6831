package app

import (
	"fmt"

	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/winops"
)

// The drag subsystem works in pixels while the shell lays windows out on the
// terminal cell grid. The orchestrator implementation below is the only place
// the two unit systems meet: positions scale by the configured cell metrics
// on the way in and out.

var _ winops.Orchestrator = (*Shell)(nil)

func cellsToPxX(cells int) int { return cells * config.CellWidth }
func cellsToPxY(cells int) int { return cells * config.CellHeight }

func pxToCellsX(px int) int { return divRound(px, config.CellWidth) }
func pxToCellsY(px int) int { return divRound(px, config.CellHeight) }

func divRound(a, b int) int {
	if a >= 0 {
		return (a + b/2) / b
	}
	return -((-a + b/2) / b)
}

// CreateBufferWindow creates a hidden spare window and returns its ID.
func (s *Shell) CreateBufferWindow() (string, error) {
	w := s.addBufferWindow()
	s.LogInfo("shell: created buffer window %s", w.ID[:8])
	return w.ID, nil
}

// WindowExists reports whether the window is still alive.
func (s *Shell) WindowExists(id string) bool {
	return s.WindowByID(id) != nil
}

// WindowBounds returns the window's screen rectangle in pixels.
func (s *Shell) WindowBounds(id string) (winops.Bounds, bool) {
	w := s.WindowByID(id)
	if w == nil {
		return winops.Bounds{}, false
	}
	return winops.Bounds{
		X:      cellsToPxX(w.X),
		Y:      cellsToPxY(w.Y),
		Width:  cellsToPxX(w.Width),
		Height: cellsToPxY(w.Height),
	}, true
}

// SetWindowPosition moves the window's screen origin, given in pixels.
func (s *Shell) SetWindowPosition(id string, x, y int) error {
	w := s.WindowByID(id)
	if w == nil {
		return fmt.Errorf("window %s: not found", id)
	}
	w.X = pxToCellsX(x)
	w.Y = pxToCellsY(y)
	w.PositionDirty = true
	return nil
}

// MatchWindowBounds resizes id to targetID's size.
func (s *Shell) MatchWindowBounds(id, targetID string) error {
	w := s.WindowByID(id)
	target := s.WindowByID(targetID)
	if w == nil || target == nil {
		return fmt.Errorf("match bounds %s -> %s: window not found", id, targetID)
	}
	w.Width = target.Width
	w.Height = target.Height
	w.Dirty = true
	return nil
}

// ShowWindow makes the window visible.
func (s *Shell) ShowWindow(id string) error {
	w := s.WindowByID(id)
	if w == nil {
		return fmt.Errorf("window %s: not found", id)
	}
	w.Visible = true
	w.Dirty = true
	return nil
}

// HideWindow hides the window.
func (s *Shell) HideWindow(id string) error {
	w := s.WindowByID(id)
	if w == nil {
		return fmt.Errorf("window %s: not found", id)
	}
	w.Visible = false
	s.MarkAllDirty()
	return nil
}

// FocusWindow focuses the window and raises it.
func (s *Shell) FocusWindow(id string) error {
	i := s.WindowIndex(id)
	if i < 0 {
		return fmt.Errorf("window %s: not found", id)
	}
	s.FocusWindowByIndex(i)
	return nil
}

// WindowVisible reports whether the window is currently shown.
func (s *Shell) WindowVisible(id string) bool {
	w := s.WindowByID(id)
	return w != nil && w.Visible
}

// SetClickThrough toggles pointer transparency. The terminal has no native
// pass-through, so this only flips the hit-testing flag; WindowAt skips
// transparent windows, which is equivalent for a single shared surface.
func (s *Shell) SetClickThrough(id string, enabled bool) error {
	w := s.WindowByID(id)
	if w == nil {
		return fmt.Errorf("window %s: not found", id)
	}
	w.ClickThrough = enabled
	return nil
}

// SetAlwaysOnTop toggles the stacking boost used while a window follows the
// cursor.
func (s *Shell) SetAlwaysOnTop(id string, enabled bool) error {
	w := s.WindowByID(id)
	if w == nil {
		return fmt.Errorf("window %s: not found", id)
	}
	w.AlwaysOnTop = enabled
	w.Dirty = true
	return nil
}

// MarkBuffer flags or unflags a window as a hidden spare.
func (s *Shell) MarkBuffer(id string, buffer bool) {
	if w := s.WindowByID(id); w != nil {
		w.Buffer = buffer
	}
}

// IsBuffer reports whether a window is a hidden spare.
func (s *Shell) IsBuffer(id string) bool {
	w := s.WindowByID(id)
	return w != nil && w.Buffer
}

// CursorPosition returns the pointer's screen position in pixels.
func (s *Shell) CursorPosition() (int, int) {
	return cellsToPxX(s.MouseX), cellsToPxY(s.MouseY)
}

// TabOwner returns the window currently holding the tab.
func (s *Shell) TabOwner(tabID string) (string, bool) {
	return s.Tabs.Owner(tabID)
}

// TabCount returns how many tabs a window holds.
func (s *Shell) TabCount(windowID string) int {
	return s.Tabs.Count(windowID)
}

// MoveTabToWindow transfers tab data across windows.
func (s *Shell) MoveTabToWindow(tabID, windowID string, index int) error {
	fromID, _ := s.Tabs.Owner(tabID)
	if err := s.Tabs.MoveToWindow(tabID, windowID, index); err != nil {
		return err
	}
	if from := s.WindowByID(fromID); from != nil && fromID != windowID {
		if from.ActiveTabID == tabID {
			from.ActiveTabID = ""
			if remaining := s.Tabs.TabsFor(fromID); len(remaining) > 0 {
				from.ActiveTabID = remaining[len(remaining)-1].ID
			}
		}
		from.ContentDirty = true
	}
	return nil
}

// ReindexTab moves a tab within its current window.
func (s *Shell) ReindexTab(tabID string, index int) error {
	return s.Tabs.Reindex(tabID, index)
}
