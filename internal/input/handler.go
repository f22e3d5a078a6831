package input

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/tabshell/tabshell/internal/app"
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/drag"
)

// HandleInput is the main input coordinator that routes messages to the
// appropriate handlers.
func HandleInput(msg tea.Msg, s *app.Shell) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, s)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, s)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, s)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, s)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, s)
	default:
		return s, nil
	}
}

// HandleKeyPress handles all keyboard input.
func HandleKeyPress(msg tea.KeyPressMsg, s *app.Shell) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		// Abort any in-flight drag so hidden buffers are cleaned up before
		// the program exits.
		var cmd tea.Cmd
		if s.Store.Active() {
			cmd = cancelActiveDrag(s)
		}
		return s, batchWithQuit(cmd)

	case "esc":
		if s.Store.Active() {
			return s, cancelActiveDrag(s)
		}
		return s, nil

	case "n":
		s.AddWindow("")
		return s, nil

	case "t":
		w := s.GetFocusedWindow()
		if w == nil {
			s.AddWindow("")
			return s, nil
		}
		count := s.Tabs.Count(w.ID) + 1
		tab := s.Tabs.NewTab(w.ID, fmt.Sprintf("Tab %d", count), "about:blank")
		w.ActiveTabID = tab.ID
		w.ContentDirty = true
		return s, nil

	case "w":
		if w := s.GetFocusedWindow(); w != nil && w.ActiveTabID != "" {
			s.CloseTab(w.ActiveTabID)
		}
		return s, nil

	case "x":
		if s.FocusedWindow >= 0 {
			s.DeleteWindow(s.FocusedWindow)
		}
		return s, nil

	case "p":
		if w := s.GetFocusedWindow(); w != nil {
			if tab := s.Tabs.Get(w.ActiveTabID); tab != nil {
				tab.Pinned = !tab.Pinned
				w.ContentDirty = true
				state := "pinned"
				if !tab.Pinned {
					state = "unpinned"
				}
				s.ShowNotification(fmt.Sprintf("%s %s", tab.Title, state), "info", config.NotificationDuration)
			}
		}
		return s, nil

	case "[":
		if w := s.GetFocusedWindow(); w != nil {
			total := len(s.Tabs.UnpinnedFor(w.ID))
			w.Strip.SetPage(w.Strip.Page()-1, total)
			w.ContentDirty = true
		}
		return s, nil

	case "]":
		if w := s.GetFocusedWindow(); w != nil {
			total := len(s.Tabs.UnpinnedFor(w.ID))
			w.Strip.SetPage(w.Strip.Page()+1, total)
			w.ContentDirty = true
		}
		return s, nil

	case "tab":
		if n := len(s.Windows); n > 0 {
			next := (s.FocusedWindow + 1) % n
			for range n {
				w := s.Windows[next]
				if w.Visible && !w.Buffer {
					s.FocusWindowByIndex(next)
					break
				}
				next = (next + 1) % n
			}
		}
		return s, nil
	}

	return s, nil
}

// cancelActiveDrag tears down the pressed window's controller and aborts the
// store session.
func cancelActiveDrag(s *app.Shell) tea.Cmd {
	if s.TabPressWindowID != "" {
		if w := s.WindowByID(s.TabPressWindowID); w != nil {
			w.Drag.Teardown()
			w.Strip.CancelPending()
			w.DragActive = false
			w.ContentDirty = true
		}
		s.TabPressWindowID = ""
		s.TabPressTabID = ""
	}
	s.InteractionMode = false
	return s.DispatchDragEvent(drag.DragCancelled{})
}

func batchWithQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return tea.Quit
	}
	return tea.Sequence(cmd, tea.Quit)
}
