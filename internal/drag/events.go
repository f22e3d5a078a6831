package drag

// Event is a named input to the Store. Events are applied one at a time; the
// synchronous portion of each transition runs to completion before the next.
type Event interface {
	isDragEvent()
}

// StateRestored is fired once at process start. Any leftover session is
// discarded; sessions are never persisted.
type StateRestored struct{}

// DragStarted seeds a new Session with all geometry captured at grab time.
type DragStarted struct {
	TabID    string
	WindowID string

	// SingleTab reports whether the source window holds only this tab. A
	// single-tab drag moves the whole window instead of reordering.
	SingleTab bool

	WinScreenX     int
	WinScreenY     int
	PointerScreenX int
	PointerScreenY int
	PointerClientX int
	PointerClientY int

	// RelativeX/Y is the pointer offset within the grabbed tab.
	RelativeX int
	RelativeY int

	TabWidth int
}

// DragCancelled aborts the drag and tears the session down.
type DragCancelled struct{}

// DragComplete ends the drag normally and tears the session down.
type DragComplete struct{}

// ChangeDisplayIndexRequested asks the store to move the dragged tab to a new
// position within the sender window.
type ChangeDisplayIndexRequested struct {
	SenderWindowID          string
	DestinationDisplayIndex int
	DestinationFrameIndex   int

	// RequiresMouseUpdate is set when a page or window change means the next
	// render needs fresh pointer coordinates.
	RequiresMouseUpdate bool
}

// TabAttached confirms that the data layer moved a tab to a new window.
type TabAttached struct {
	TabID    string
	WindowID string
}

// SingleTabWindowMoved reports the dragged tab's absolute position so the
// owning single-tab window can be moved to track the cursor.
type SingleTabWindowMoved struct {
	TabX     int
	TabY     int
	WindowID string
}

// MouseOverOtherWindowTab reports that a detached single-tab drag is hovering
// over another window's tab strip. FrameIndex is the hovered slot; negative
// means the sender could not resolve one.
type MouseOverOtherWindowTab struct {
	SenderWindowID string
	FrameIndex     int
}

// DetachRequested asks the store to move the dragged tab into the pre-created
// buffer window. TabX/TabY is the tab's last pointer-relative position.
type DetachRequested struct {
	TabX int
	TabY int
}

// Completion events fed back by the Runner after an effect finishes. They
// close the loop the same way the inbound events do, so the Session is only
// written inside Apply.

type bufferWindowCreated struct {
	WindowID string
}

type pointerRefreshed struct {
	ClientX int
	ClientY int
}

type tabReindexed struct {
	TabID string
	Index int
}

func (StateRestored) isDragEvent()               {}
func (DragStarted) isDragEvent()                 {}
func (DragCancelled) isDragEvent()               {}
func (DragComplete) isDragEvent()                {}
func (ChangeDisplayIndexRequested) isDragEvent() {}
func (TabAttached) isDragEvent()                 {}
func (SingleTabWindowMoved) isDragEvent()        {}
func (MouseOverOtherWindowTab) isDragEvent()     {}
func (DetachRequested) isDragEvent()             {}
func (bufferWindowCreated) isDragEvent()         {}
func (pointerRefreshed) isDragEvent()            {}
func (tabReindexed) isDragEvent()                {}
