// Package drag holds the authoritative cross-window drag state machine.
//
// One Store exists per process. Windows feed it named events; each event is
// applied synchronously against the single Session and returns a list of
// effect descriptions that a Runner executes afterwards against the window
// orchestrator. Effects that complete asynchronously report back as new
// events, so the Session is only ever written inside Store.Apply.
package drag

import "github.com/tabshell/tabshell/internal/geometry"

// PendingKind marks an in-flight cross-window transition. While a transition
// is pending, index-change and single-tab-move events are ignored until the
// confirming TabAttached arrives.
type PendingKind int

const (
	PendingNone PendingKind = iota
	PendingAttach
	PendingDetach
)

func (p PendingKind) String() string {
	switch p {
	case PendingAttach:
		return "attach"
	case PendingDetach:
		return "detach"
	default:
		return "none"
	}
}

// Session is the single shared record of an in-progress tab drag. At most one
// exists process-wide; it is created by DragStarted and destroyed by
// DragCancelled or DragComplete.
type Session struct {
	// SourceTabID is the tab being dragged. Immutable for the session.
	SourceTabID string

	// OriginalWindowID is the window the drag started in. Immutable.
	OriginalWindowID string

	// CurrentWindowID is the window that currently visually owns the dragged
	// tab. Mutated on confirmed attach.
	CurrentWindowID string

	// Origin* and Frame are fixed at drag start and convert later screen
	// points into window-relative points.
	OriginClientX int
	OriginClientY int
	OriginScreenX int
	OriginScreenY int
	Frame         geometry.Offsets

	// RelativeXDragStart/RelativeYDragStart is the pointer offset within the
	// dragged tab at grab time. Immutable.
	RelativeXDragStart int
	RelativeYDragStart int

	// DragWindowClientX/Y is the last known pointer position in the current
	// window's client space.
	DragWindowClientX int
	DragWindowClientY int

	// DisplayIndexRequested is the last index this session asked a window to
	// move the tab to, used to suppress duplicate move requests. -1 when no
	// request is outstanding; cleared back to -1 on confirmation.
	DisplayIndexRequested int

	// TabWidth is the cached width of the dragged tab so every window renders
	// consistent drag visuals.
	TabWidth int

	// BufferWindowID is the hidden spare window kept ready to host a detach.
	BufferWindowID string

	// DragDetachedWindowID is the window following the cursor in single-tab
	// mode (either the original single-tab window or a consumed buffer).
	DragDetachedWindowID string

	// Pending and PendingWindowID gate cross-window transitions: the window
	// we are waiting on to confirm an attach or detach.
	Pending         PendingKind
	PendingWindowID string

	// DetachedFromWindowID and DetachedFromTabX/Y record where the tab left
	// on detach, used to re-seat drag visuals after the attach confirms.
	DetachedFromWindowID string
	DetachedFromTabX     int
	DetachedFromTabY     int
}
