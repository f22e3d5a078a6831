// Package dragctl runs inside every window with a rendered tab strip. It
// tracks pointer movement during a drag, computes the dragged tab's visual
// translation, and detects reorder, page and detach thresholds. It never
// touches shared state itself; it emits intents the shell forwards to the
// drag store.
package dragctl

import (
	"time"

	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/strip"
)

// State is the controller's position in the drag lifecycle.
type State int

const (
	Idle State = iota
	// ArmedForDrag means mouse-down on a draggable tab, not yet past the
	// activation threshold.
	ArmedForDrag
	Dragging
	// Detaching means a detach intent went out and the controller is waiting
	// for the new window to confirm.
	Detaching
)

// Grab describes the tab press that may become a drag.
type Grab struct {
	WindowID string
	TabID    string

	// SingleTab bypasses reorder and detach detection; moves report the
	// tab's absolute position so the whole window can follow the cursor.
	SingleTab bool

	// Pinned tabs never detach.
	Pinned bool

	// Strip bounds in the window's client space, pixels.
	StripLeft   int
	StripTop    int
	StripWidth  int
	StripHeight int

	TabWidth int

	// RelX/RelY is the pointer offset within the grabbed tab.
	RelX int
	RelY int

	// TabBoxX/TabBoxY is the tab's client-space origin at grab time. Cached
	// for single-tab mode and invalidated only by ResetTabBox.
	TabBoxX int
	TabBoxY int
}

// ReorderIntent asks for the dragged tab to move to a new display index.
type ReorderIntent struct {
	DestinationIndex int
}

// DetachArm reports that the pointer left the strip and a zero-delay
// confirmation timer should be scheduled with this generation.
type DetachArm struct {
	Generation int
}

// DetachIntent asks for the tab to detach into the buffer window.
type DetachIntent struct {
	TabX int
	TabY int
}

// WindowMoveIntent reports the tab's absolute position in single-tab mode.
type WindowMoveIntent struct {
	TabX int
	TabY int
}

// MoveResult is the outcome of one pointer evaluation.
type MoveResult struct {
	// Started is set on the move that crossed the activation threshold; the
	// caller emits the DragStarted event from the grab geometry.
	Started bool

	// TabLeft is the dragged tab's left edge relative to the strip, for
	// rendering the drag visual.
	TabLeft int

	Reorder    *ReorderIntent
	ArmDetach  *DetachArm
	WindowMove *WindowMoveIntent
}

// Controller is the per-window drag state machine. One exists per mounted
// tab strip and is torn down with it.
type Controller struct {
	state State
	grab  Grab
	gate  Gate

	startX, startY int
	lastX, lastY   int

	lastSortEval time.Time

	// sortedOnce widens the vertical detach margin after the first
	// confirmed reorder.
	sortedOnce bool

	detachArmed bool
	detachGen   int

	// pendingIndex suppresses reorder requests until the consumer reports
	// the index actually changed.
	pendingIndex   bool
	lastKnownIndex int
}

// NewController returns an idle controller using a fresh frame gate.
func NewController() *Controller {
	return &Controller{gate: NewFrameGate(), lastKnownIndex: -1}
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Press arms the controller on mouse-down over a draggable tab.
func (c *Controller) Press(grab Grab, pointerX, pointerY int) {
	c.state = ArmedForDrag
	c.grab = grab
	c.startX, c.startY = pointerX, pointerY
	c.lastX, c.lastY = pointerX, pointerY
	c.lastKnownIndex = -1
	c.sortedOnce = false
	c.detachArmed = false
	c.pendingIndex = false
}

// Tick opens the frame gate for the next evaluation. The shell calls it once
// per animation frame.
func (c *Controller) Tick() {
	c.gate.Reset()
}

// PointerMove processes one pointer position. At most one evaluation runs
// per frame; extra moves within a frame only record the position.
func (c *Controller) PointerMove(x, y int, layout strip.PageLayout, currentIndex int, now time.Time) MoveResult {
	c.lastX, c.lastY = x, y

	switch c.state {
	case ArmedForDrag:
		if abs(x-c.startX) < config.DragActivationDistance && abs(y-c.startY) < config.DragActivationDistance {
			return MoveResult{}
		}
		c.state = Dragging
		res := c.evaluate(x, y, layout, currentIndex, now, c.gate)
		res.Started = true
		return res
	case Dragging:
		return c.evaluate(x, y, layout, currentIndex, now, c.gate)
	default:
		return MoveResult{}
	}
}

// ConfirmDetach fires the zero-delay confirmation timer. A stale generation
// or a pointer that came back inside the strip confirms nothing.
func (c *Controller) ConfirmDetach(generation int) *DetachIntent {
	if !c.detachArmed || generation != c.detachGen || c.state != Dragging {
		return nil
	}
	c.detachArmed = false
	if !c.outsideStrip(c.lastX, c.lastY) {
		return nil
	}
	c.state = Detaching
	tabX, tabY := c.tabPosition(c.lastX, c.lastY)
	return &DetachIntent{TabX: tabX, TabY: tabY}
}

// MarkIndexPending records that the consumer deferred the last reorder
// request (page change in flight). Further requests are suppressed until
// SyncIndex reports the applied index.
func (c *Controller) MarkIndexPending() {
	c.pendingIndex = true
}

// SyncIndex reports the tab's index as actually rendered. It lifts the
// pending suppression and, on the first applied reorder, widens the vertical
// detach margin.
func (c *Controller) SyncIndex(index int) {
	if c.lastKnownIndex >= 0 && index != c.lastKnownIndex {
		c.sortedOnce = true
	}
	c.lastKnownIndex = index
	c.pendingIndex = false
}

// OnAttachConfirmed re-arms pointer tracking in a new window and replays the
// last pointer position so the visual catches up without waiting for a
// physical mouse move.
func (c *Controller) OnAttachConfirmed(layout strip.PageLayout, currentIndex int, now time.Time) MoveResult {
	c.state = Dragging
	c.pendingIndex = false
	return c.evaluate(c.lastX, c.lastY, layout, currentIndex, now, openGate{})
}

// OnDetachConfirmed re-arms tracking after the buffer window took the tab.
func (c *Controller) OnDetachConfirmed(layout strip.PageLayout, currentIndex int, now time.Time) MoveResult {
	return c.OnAttachConfirmed(layout, currentIndex, now)
}

// ResetTabBox replaces the cached single-tab bounding box.
func (c *Controller) ResetTabBox(x, y int) {
	c.grab.TabBoxX, c.grab.TabBoxY = x, y
	c.startX, c.startY = c.lastX, c.lastY
}

// Teardown deterministically ends tracking: pending timers are invalidated
// and the controller returns to Idle. It reports whether a drag was active
// so the caller can run the settle-back animation.
func (c *Controller) Teardown() bool {
	active := c.state == Dragging || c.state == Detaching
	c.state = Idle
	c.detachArmed = false
	c.detachGen++
	c.pendingIndex = false
	return active
}

func (c *Controller) evaluate(x, y int, layout strip.PageLayout, currentIndex int, now time.Time, gate Gate) MoveResult {
	res := MoveResult{TabLeft: c.tabLeft(x)}
	if !gate.TryAcquire() {
		return res
	}

	if c.grab.SingleTab {
		tabX, tabY := c.tabPosition(x, y)
		res.WindowMove = &WindowMoveIntent{TabX: tabX, TabY: tabY}
		return res
	}

	if c.lastKnownIndex < 0 {
		c.lastKnownIndex = currentIndex
	}

	if !c.grab.Pinned && c.outsideStrip(x, y) {
		if !c.detachArmed {
			c.detachArmed = true
			c.detachGen++
			res.ArmDetach = &DetachArm{Generation: c.detachGen}
		}
		return res
	}
	// Back inside: cancel the armed confirmation.
	c.detachArmed = false

	if c.pendingIndex {
		return res
	}
	if now.Sub(c.lastSortEval) < config.SortEvalMinInterval {
		return res
	}
	c.lastSortEval = now

	dest := c.destinationIndex(x, layout)
	if dest != currentIndex {
		res.Reorder = &ReorderIntent{DestinationIndex: dest}
	}
	return res
}

// destinationIndex derives where the dragged tab should land from its left
// edge relative to the strip.
func (c *Controller) destinationIndex(x int, layout strip.PageLayout) int {
	tabLeft := c.tabLeft(x)
	total := layout.TotalTabCount

	var dest int
	switch {
	case tabLeft < -config.EdgeIndexMargin:
		dest = layout.FirstTabDisplayIndex - 1
		if dest < 0 {
			dest = 0
		}
	case tabLeft+c.grab.TabWidth > c.grab.StripWidth+config.EdgeIndexMargin:
		dest = layout.FirstTabDisplayIndex + layout.DisplayedTabCount
		if dest > total-1 {
			dest = total - 1
		}
	default:
		dest = layout.FirstTabDisplayIndex + floorDiv(tabLeft-c.grab.TabWidth/2, c.grab.TabWidth) + 1
	}

	if dest < 0 {
		dest = 0
	}
	if dest > total-1 {
		dest = total - 1
	}
	return dest
}

func (c *Controller) tabLeft(x int) int {
	return x - c.grab.StripLeft - c.grab.RelX
}

func (c *Controller) tabPosition(x, y int) (int, int) {
	return c.grab.TabBoxX + (x - c.startX), c.grab.TabBoxY + (y - c.startY)
}

func (c *Controller) outsideStrip(x, y int) bool {
	marginY := config.DetachMarginYInitial
	if c.sortedOnce {
		marginY = config.DetachMarginYAfterSort
	}
	return x < c.grab.StripLeft-config.DetachMarginX ||
		x > c.grab.StripLeft+c.grab.StripWidth+config.DetachMarginX ||
		y < c.grab.StripTop-marginY ||
		y > c.grab.StripTop+c.grab.StripHeight+marginY
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
