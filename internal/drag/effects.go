package drag

import (
	"time"

	"github.com/tabshell/tabshell/internal/geometry"
)

// Effect is a deferred side effect description returned by Store.Apply and
// executed by a Runner after the transition commits. Effects that mutate a
// specific window carry the identity the transition expected; the Runner
// re-validates it before acting, since the effect may race with later events.
type Effect interface {
	isDragEffect()
}

// Delayed is a batch of effects to run after a delay. The shell schedules it
// on its tick loop; tests pump it by hand.
type Delayed struct {
	After   time.Duration
	Effects []Effect
}

func (Delayed) isDragEffect() {}

// CreateBufferWindow creates a hidden spare window sized and positioned to
// match MatchWindowID. Completion reports back as a bufferWindowCreated event.
type CreateBufferWindow struct {
	MatchWindowID string
}

// SetDetachedChrome applies the platform's detached-window chrome (mouse
// transparency and always-on-top where supported) to a window following the
// cursor.
type SetDetachedChrome struct {
	WindowID string
}

// RestoreWindowDragState clears any detached-window chrome from a window.
type RestoreWindowDragState struct {
	WindowID string
}

// SetClickThrough sets or clears mouse transparency on one window.
type SetClickThrough struct {
	WindowID string
	Enabled  bool
}

// HideBufferWindow hides a buffer window. When WarnIfHidden is set, an
// already-hidden buffer is logged as a non-fatal inconsistency.
type HideBufferWindow struct {
	WindowID     string
	WarnIfHidden bool
}

// HideWindow hides a window.
type HideWindow struct {
	WindowID string
}

// ShowWindow shows a window.
type ShowWindow struct {
	WindowID string
}

// FocusWindow focuses a window.
type FocusWindow struct {
	WindowID string
}

// MarkBuffer flags or unflags a window as a reusable buffer.
type MarkBuffer struct {
	WindowID string
	Buffer   bool
}

// RefreshPointer queries the live cursor, converts it into WindowID's client
// space and reports back as a pointerRefreshed event.
type RefreshPointer struct {
	WindowID string
	Frame    geometry.Offsets
}

// ReindexTab moves the dragged tab within ExpectWindowID. The Runner drops it
// if the tab's owner no longer matches. Completion reports back as a
// tabReindexed event.
type ReindexTab struct {
	TabID          string
	Index          int
	ExpectWindowID string
}

// MoveTabToWindow transfers the dragged tab's data to WindowID at Index. The
// data layer's attach notification produces the confirming TabAttached event.
type MoveTabToWindow struct {
	TabID    string
	WindowID string
	Index    int
}

// MatchWindowBounds resizes WindowID to TargetID's size so it is ready to
// serve as a future detach target.
type MatchWindowBounds struct {
	WindowID string
	TargetID string
}

// MoveWindowForDrag repositions WindowID so the dragged tab's grab point sits
// under the live cursor.
type MoveWindowForDrag struct {
	WindowID string
	RelX     int
	RelY     int
	Frame    geometry.Offsets
	TabY     int
}

func (CreateBufferWindow) isDragEffect()     {}
func (SetDetachedChrome) isDragEffect()      {}
func (RestoreWindowDragState) isDragEffect() {}
func (SetClickThrough) isDragEffect()        {}
func (HideBufferWindow) isDragEffect()       {}
func (HideWindow) isDragEffect()             {}
func (ShowWindow) isDragEffect()             {}
func (FocusWindow) isDragEffect()            {}
func (MarkBuffer) isDragEffect()             {}
func (RefreshPointer) isDragEffect()         {}
func (ReindexTab) isDragEffect()             {}
func (MoveTabToWindow) isDragEffect()        {}
func (MatchWindowBounds) isDragEffect()      {}
func (MoveWindowForDrag) isDragEffect()      {}
