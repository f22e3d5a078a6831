package input

import (
	"testing"
	"time"

	"github.com/tabshell/tabshell/internal/app"
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/drag"
	"github.com/tabshell/tabshell/internal/dragctl"
)

// testShell builds a shell with one window at (10,5) holding tabCount tabs.
func testShell(t *testing.T, tabCount int) (*app.Shell, *app.Window) {
	t.Helper()
	s := app.NewShell()
	s.Width = 120
	s.Height = 40

	w := s.AddWindow("Main")
	w.X, w.Y = 10, 5
	for i := 1; i < tabCount; i++ {
		s.Tabs.NewTab(w.ID, "Tab", "about:blank")
	}
	return s, w
}

func TestStripSlotAt(t *testing.T) {
	w := &app.Window{X: 10, Y: 5, Width: 44, Height: 12}

	tests := []struct {
		name string
		x    int
		want int
	}{
		{"first cell of slot 0", 11, 0},
		{"last cell of slot 0", 20, 0},
		{"first cell of slot 1", 21, 1},
		{"slot 3", 45, 3},
		{"on the left border", 10, -1},
		{"left of the window", 5, -1},
		{"on the right border", 53, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripSlotAt(w, tt.x); got != tt.want {
				t.Errorf("stripSlotAt(x=%d) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestTabAtSlotWithPinnedAndPaging(t *testing.T) {
	s, w := testShell(t, 6)
	all := s.Tabs.TabsFor(w.ID)
	all[0].Pinned = true

	// Pinned tab takes slot 0; unpinned page one fills the next slots.
	if got := tabAtSlot(s, w, 0); got == nil || !got.Pinned {
		t.Fatalf("slot 0 = %+v, want the pinned tab", got)
	}
	if got := tabAtSlot(s, w, 1); got == nil || got.ID != all[1].ID {
		t.Fatalf("slot 1 = %+v, want first unpinned tab", got)
	}

	// Second page shows the last unpinned tab.
	w.Strip.SetPage(1, len(s.Tabs.UnpinnedFor(w.ID)))
	if got := tabAtSlot(s, w, 1); got == nil || got.ID != all[5].ID {
		t.Fatalf("slot 1 on page 2 = %+v, want last tab", got)
	}
	if got := tabAtSlot(s, w, 2); got != nil {
		t.Fatalf("slot past the page = %+v, want nil", got)
	}
}

func TestStripPressArmsDrag(t *testing.T) {
	s, w := testShell(t, 3)
	tabs := s.Tabs.TabsFor(w.ID)

	// Press inside slot 1 on the strip row.
	s.MouseX, s.MouseY = w.X+1+config.TabCellWidth+2, w.Y+1
	if _, _ = handleStripPress(s, w, s.MouseX, s.MouseY); w.Drag.State() != dragctl.ArmedForDrag {
		t.Fatalf("controller state = %v, want ArmedForDrag", w.Drag.State())
	}
	if s.TabPressWindowID != w.ID || s.TabPressTabID != tabs[1].ID {
		t.Errorf("press tracking = (%q, %q), want window %q tab %q",
			s.TabPressWindowID, s.TabPressTabID, w.ID, tabs[1].ID)
	}
	if w.ActiveTabID != tabs[1].ID {
		t.Errorf("active tab = %q, want pressed tab %q", w.ActiveTabID, tabs[1].ID)
	}
}

func TestDragStartCreatesSessionAndBuffer(t *testing.T) {
	s, w := testShell(t, 3)

	s.MouseX, s.MouseY = w.X+3, w.Y+1
	_, _ = handleStripPress(s, w, s.MouseX, s.MouseY)

	// One cell of horizontal travel crosses the activation threshold.
	s.MouseX++
	clientX, clientY := pointerClientPx(w, s.MouseX, s.MouseY)
	total := len(s.Tabs.UnpinnedFor(w.ID))
	res := w.Drag.PointerMove(clientX, clientY, w.Strip.Layout(total),
		s.DisplayIndexOf(s.TabPressTabID), time.Now())
	if !res.Started {
		t.Fatal("move past one cell did not start the drag")
	}
	_ = s.ProcessMoveResult(w, res)

	sess := s.Store.Session()
	if sess == nil {
		t.Fatal("no drag session after DragStarted")
	}
	if sess.CurrentWindowID != w.ID {
		t.Errorf("session window = %q, want %q", sess.CurrentWindowID, w.ID)
	}

	// A multi-tab drag pre-creates a hidden buffer window.
	if sess.BufferWindowID == "" {
		t.Fatal("no buffer window recorded in session")
	}
	if !s.IsBuffer(sess.BufferWindowID) || s.WindowVisible(sess.BufferWindowID) {
		t.Error("buffer window is not a hidden spare")
	}

	// Release tears everything down.
	w.Drag.Teardown()
	_ = s.DispatchDragEvent(drag.DragComplete{})
	if s.Store.Active() {
		t.Error("session survived DragComplete")
	}
}

func TestSingleTabDragMovesWindow(t *testing.T) {
	s, w := testShell(t, 1)

	s.MouseX, s.MouseY = 13, 6
	_, _ = handleStripPress(s, w, s.MouseX, s.MouseY)

	// Two cells right, three cells down.
	s.MouseX, s.MouseY = 15, 9
	clientX, clientY := pointerClientPx(w, s.MouseX, s.MouseY)
	res := w.Drag.PointerMove(clientX, clientY, w.Strip.Layout(1), 0, time.Now())
	if !res.Started || res.WindowMove == nil {
		t.Fatalf("single-tab move result = %+v, want started window move", res)
	}
	_ = s.ProcessMoveResult(w, res)

	// The grab point stays under the cursor: the window shifted by the same
	// cell delta the pointer travelled.
	if w.X != 12 || w.Y != 8 {
		t.Errorf("window moved to (%d,%d), want (12,8)", w.X, w.Y)
	}

	// The moved window pulses mouse transparent so the window underneath
	// sees the next motion event.
	if !w.ClickThrough {
		t.Error("moved single-tab window is not click-through")
	}

	sess := s.Store.Session()
	if sess == nil || sess.DragDetachedWindowID != w.ID {
		t.Fatalf("session = %+v, want detached window %q", sess, w.ID)
	}
}

// tickFrame opens every controller's frame gate, as the shell's ticker does.
func tickFrame(s *app.Shell) {
	for _, w := range s.Windows {
		w.Drag.Tick()
	}
}

func TestDetachHandsTrackingToBufferWindow(t *testing.T) {
	s, w := testShell(t, 3)
	all := s.Tabs.TabsFor(w.ID)

	// Press slot 1 and activate the drag with one cell of travel.
	s.MouseX, s.MouseY = 23, 6
	_, _ = handleStripPress(s, w, 23, 6)
	_ = trackPointer(s, 24, 6)

	sess := s.Store.Session()
	if sess == nil || sess.BufferWindowID == "" {
		t.Fatal("no session with a buffer window after drag start")
	}
	bufferID := sess.BufferWindowID

	// Straight down past the detach margin arms the confirmation.
	tickFrame(s)
	cmd := trackPointer(s, 24, 10)
	if cmd == nil {
		t.Fatal("leaving the strip scheduled no confirmation")
	}
	raw := cmd()
	msg, ok := raw.(app.DetachConfirmMsg)
	if !ok {
		t.Fatalf("scheduled message = %T, want DetachConfirmMsg", raw)
	}
	_, _ = s.Update(msg)

	sess = s.Store.Session()
	if sess == nil || sess.CurrentWindowID != bufferID || sess.DragDetachedWindowID != bufferID {
		t.Fatalf("session after detach = %+v, want buffer window %q current and detached", sess, bufferID)
	}
	if owner, _ := s.Tabs.Owner(all[1].ID); owner != bufferID {
		t.Errorf("tab owner = %q, want buffer window %q", owner, bufferID)
	}

	// The press follows the tab into the buffer window; the old controller
	// is retired so it stops swallowing pointer motion.
	if s.TabPressWindowID != bufferID {
		t.Fatalf("TabPressWindowID = %q, want buffer window %q", s.TabPressWindowID, bufferID)
	}
	if w.Drag.State() != dragctl.Idle {
		t.Errorf("old controller state = %v, want Idle", w.Drag.State())
	}

	buffer := s.WindowByID(bufferID)
	if buffer.X != 21 || buffer.Y != 9 {
		t.Errorf("buffer window at (%d,%d), want (21,9)", buffer.X, buffer.Y)
	}

	// Further motion keeps the detached window under the cursor.
	tickFrame(s)
	_ = trackPointer(s, 30, 12)
	if buffer.X != 27 || buffer.Y != 11 {
		t.Errorf("buffer window at (%d,%d) after motion, want (27,11)", buffer.X, buffer.Y)
	}

	// Release tears down the controller that actually owns the drag.
	_ = releasePointer(s, 30, 12)
	if s.Store.Active() {
		t.Error("session survived release")
	}
	if buffer.Drag.State() != dragctl.Idle {
		t.Errorf("buffer controller state = %v, want Idle", buffer.Drag.State())
	}
}

func TestAttachHandsTrackingToHoveredWindow(t *testing.T) {
	s, w := testShell(t, 1)
	tabID := s.Tabs.TabsFor(w.ID)[0].ID

	other := s.AddWindow("Other")
	other.X, other.Y = 40, 5
	s.Tabs.NewTab(other.ID, "Tab 2", "about:blank")
	s.Tabs.NewTab(other.ID, "Tab 3", "about:blank")

	// Single-tab press: the whole window follows the cursor once the drag
	// activates.
	s.MouseX, s.MouseY = 13, 6
	_, _ = handleStripPress(s, w, 13, 6)
	_ = trackPointer(s, 15, 9)
	sess := s.Store.Session()
	if sess == nil || sess.DragDetachedWindowID != w.ID {
		t.Fatalf("session = %+v, want window %q detached", sess, w.ID)
	}

	// Hovering slot 1 of the other strip attaches the tab there.
	tickFrame(s)
	_ = trackPointer(s, 53, 6)

	sess = s.Store.Session()
	if sess == nil || sess.CurrentWindowID != other.ID {
		t.Fatalf("session window = %+v, want %q", sess, other.ID)
	}
	if owner, _ := s.Tabs.Owner(tabID); owner != other.ID {
		t.Errorf("tab owner = %q, want %q", owner, other.ID)
	}
	if got := s.DisplayIndexOf(tabID); got != 1 {
		t.Errorf("display index after attach = %d, want 1", got)
	}
	if s.TabPressWindowID != other.ID {
		t.Fatalf("TabPressWindowID = %q, want %q", s.TabPressWindowID, other.ID)
	}
	if w.Drag.State() != dragctl.Idle || other.Drag.State() != dragctl.Dragging {
		t.Errorf("controllers = (%v, %v), want (Idle, Dragging)", w.Drag.State(), other.Drag.State())
	}
	if s.WindowVisible(w.ID) || !s.IsBuffer(w.ID) {
		t.Error("emptied source window is not a hidden buffer")
	}

	// Continued motion along the strip keeps reordering in the new window.
	time.Sleep(config.SortEvalMinInterval + time.Millisecond)
	tickFrame(s)
	_ = trackPointer(s, 60, 6)
	if got := s.DisplayIndexOf(tabID); got != 2 {
		t.Errorf("display index after motion = %d, want 2", got)
	}

	_ = releasePointer(s, 60, 6)
	if s.Store.Active() || other.Drag.State() != dragctl.Idle {
		t.Error("release did not tear the drag down")
	}
}

func TestClickThroughWindowSkippedByHitTest(t *testing.T) {
	s, w := testShell(t, 1)
	other := s.AddWindow("Other")
	other.X, other.Y = w.X, w.Y

	if err := s.SetClickThrough(other.ID, true); err != nil {
		t.Fatal(err)
	}
	if got := s.WindowAt(w.X+2, w.Y+1); got == nil || got.ID != w.ID {
		t.Fatalf("WindowAt through transparent window = %+v, want %q", got, w.ID)
	}
}
