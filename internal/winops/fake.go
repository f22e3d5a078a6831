package winops

import (
	"fmt"

	"github.com/tabshell/tabshell/internal/tabs"
)

// FakeWindow is the state the Fake tracks per window.
type FakeWindow struct {
	Bounds       Bounds
	Visible      bool
	Focused      bool
	Buffer       bool
	ClickThrough bool
	AlwaysOnTop  bool
}

// Fake is an in-memory Orchestrator that records every call for assertions.
type Fake struct {
	Windows map[string]*FakeWindow
	Tabs    *tabs.Registry
	Calls   []string

	CursorX, CursorY int

	nextID int

	// FailCreate makes CreateBufferWindow return an error.
	FailCreate bool
}

// NewFake returns an empty fake orchestrator.
func NewFake() *Fake {
	return &Fake{
		Windows: make(map[string]*FakeWindow),
		Tabs:    tabs.NewRegistry(),
	}
}

// AddWindow registers a visible window with the given bounds and returns its ID.
func (f *Fake) AddWindow(bounds Bounds) string {
	f.nextID++
	id := fmt.Sprintf("win-%d", f.nextID)
	f.Windows[id] = &FakeWindow{Bounds: bounds, Visible: true}
	return id
}

func (f *Fake) record(format string, args ...any) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *Fake) win(id string) (*FakeWindow, error) {
	w, ok := f.Windows[id]
	if !ok {
		return nil, fmt.Errorf("window %s: not found", id)
	}
	return w, nil
}

func (f *Fake) CreateBufferWindow() (string, error) {
	if f.FailCreate {
		return "", fmt.Errorf("create buffer window: refused")
	}
	f.nextID++
	id := fmt.Sprintf("buf-%d", f.nextID)
	f.Windows[id] = &FakeWindow{Buffer: true}
	f.record("CreateBufferWindow->%s", id)
	return id, nil
}

func (f *Fake) WindowExists(id string) bool {
	_, ok := f.Windows[id]
	return ok
}

func (f *Fake) WindowBounds(id string) (Bounds, bool) {
	w, ok := f.Windows[id]
	if !ok {
		return Bounds{}, false
	}
	return w.Bounds, true
}

func (f *Fake) SetWindowPosition(id string, x, y int) error {
	w, err := f.win(id)
	if err != nil {
		return err
	}
	w.Bounds.X, w.Bounds.Y = x, y
	f.record("SetWindowPosition(%s,%d,%d)", id, x, y)
	return nil
}

func (f *Fake) MatchWindowBounds(id, targetID string) error {
	w, err := f.win(id)
	if err != nil {
		return err
	}
	target, err := f.win(targetID)
	if err != nil {
		return err
	}
	w.Bounds.Width, w.Bounds.Height = target.Bounds.Width, target.Bounds.Height
	f.record("MatchWindowBounds(%s,%s)", id, targetID)
	return nil
}

func (f *Fake) ShowWindow(id string) error {
	w, err := f.win(id)
	if err != nil {
		return err
	}
	w.Visible = true
	f.record("ShowWindow(%s)", id)
	return nil
}

func (f *Fake) HideWindow(id string) error {
	w, err := f.win(id)
	if err != nil {
		return err
	}
	w.Visible = false
	f.record("HideWindow(%s)", id)
	return nil
}

func (f *Fake) FocusWindow(id string) error {
	w, err := f.win(id)
	if err != nil {
		return err
	}
	for _, other := range f.Windows {
		other.Focused = false
	}
	w.Focused = true
	f.record("FocusWindow(%s)", id)
	return nil
}

func (f *Fake) WindowVisible(id string) bool {
	w, ok := f.Windows[id]
	return ok && w.Visible
}

func (f *Fake) SetClickThrough(id string, enabled bool) error {
	w, err := f.win(id)
	if err != nil {
		return err
	}
	w.ClickThrough = enabled
	f.record("SetClickThrough(%s,%t)", id, enabled)
	return nil
}

func (f *Fake) SetAlwaysOnTop(id string, enabled bool) error {
	w, err := f.win(id)
	if err != nil {
		return err
	}
	w.AlwaysOnTop = enabled
	f.record("SetAlwaysOnTop(%s,%t)", id, enabled)
	return nil
}

func (f *Fake) MarkBuffer(id string, buffer bool) {
	if w, ok := f.Windows[id]; ok {
		w.Buffer = buffer
	}
}

func (f *Fake) IsBuffer(id string) bool {
	w, ok := f.Windows[id]
	return ok && w.Buffer
}

func (f *Fake) CursorPosition() (int, int) {
	return f.CursorX, f.CursorY
}

func (f *Fake) TabOwner(tabID string) (string, bool) {
	return f.Tabs.Owner(tabID)
}

func (f *Fake) TabCount(windowID string) int {
	return f.Tabs.Count(windowID)
}

func (f *Fake) MoveTabToWindow(tabID, windowID string, index int) error {
	if err := f.Tabs.MoveToWindow(tabID, windowID, index); err != nil {
		return err
	}
	f.record("MoveTabToWindow(%s,%s,%d)", tabID, windowID, index)
	return nil
}

func (f *Fake) ReindexTab(tabID string, index int) error {
	if err := f.Tabs.Reindex(tabID, index); err != nil {
		return err
	}
	f.record("ReindexTab(%s,%d)", tabID, index)
	return nil
}

var _ Orchestrator = (*Fake)(nil)
