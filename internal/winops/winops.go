// Package winops defines the capability surface the drag subsystem uses to
// manipulate windows and tab data. The shell implements it; tests use the
// recording Fake.
package winops

import "runtime"

// Bounds is a window rectangle in screen pixels.
type Bounds struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Orchestrator is everything the drag effect runner may do to the outside
// world. Implementations must tolerate unknown window IDs: operations on a
// window that no longer exists return an error instead of panicking.
type Orchestrator interface {
	// CreateBufferWindow creates a hidden spare window and returns its ID.
	CreateBufferWindow() (string, error)

	// WindowExists reports whether the window is still alive.
	WindowExists(id string) bool

	// WindowBounds returns the window's screen rectangle.
	WindowBounds(id string) (Bounds, bool)

	// SetWindowPosition moves the window's screen origin.
	SetWindowPosition(id string, x, y int) error

	// MatchWindowBounds resizes id to targetID's width and height.
	MatchWindowBounds(id, targetID string) error

	ShowWindow(id string) error
	HideWindow(id string) error
	FocusWindow(id string) error

	// WindowVisible reports whether the window is currently shown.
	WindowVisible(id string) bool

	// SetClickThrough makes the window transparent to mouse events so the
	// window underneath receives them.
	SetClickThrough(id string, enabled bool) error

	SetAlwaysOnTop(id string, enabled bool) error

	// MarkBuffer flags or unflags a window as a hidden spare.
	MarkBuffer(id string, buffer bool)
	IsBuffer(id string) bool

	// CursorPosition returns the pointer's screen position.
	CursorPosition() (x, y int)

	// TabOwner returns the window currently holding the tab.
	TabOwner(tabID string) (string, bool)

	// TabCount returns how many tabs a window holds.
	TabCount(windowID string) int

	// MoveTabToWindow transfers tab data across windows at index.
	MoveTabToWindow(tabID, windowID string, index int) error

	// ReindexTab moves a tab within its current window.
	ReindexTab(tabID string, index int) error
}

// Chrome describes which window chrome capabilities the platform supports
// for a detached single-tab window following the cursor.
type Chrome struct {
	AlwaysOnTop  bool
	ClickThrough bool
}

// PlatformChrome returns the chrome capabilities of the current platform.
// Linux compositors expose no portable input pass-through, so both stay off
// there and cross-window detection relies on shell-side hit testing alone.
func PlatformChrome() Chrome {
	switch runtime.GOOS {
	case "darwin", "windows":
		return Chrome{AlwaysOnTop: true, ClickThrough: true}
	default:
		return Chrome{}
	}
}
