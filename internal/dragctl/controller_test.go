package dragctl

import (
	"testing"
	"time"

	"github.com/tabshell/tabshell/internal/strip"
)

var testGrab = Grab{
	WindowID:    "win-1",
	TabID:       "tab-1",
	StripLeft:   0,
	StripTop:    100,
	StripWidth:  500,
	StripHeight: 30,
	TabWidth:    100,
	RelX:        20,
	RelY:        10,
	TabBoxX:     100,
	TabBoxY:     100,
}

func layoutOf(total, first, displayed int) strip.PageLayout {
	return strip.PageLayout{
		FirstTabDisplayIndex: first,
		DisplayedTabCount:    displayed,
		TotalTabCount:        total,
	}
}

// startDrag presses and moves past the activation threshold.
func startDrag(t *testing.T, c *Controller, grab Grab, now time.Time) {
	t.Helper()
	c.Press(grab, 120, 110)
	res := c.PointerMove(126, 110, layoutOf(8, 0, 5), 1, now)
	if !res.Started {
		t.Fatal("drag did not start past activation threshold")
	}
	if c.State() != Dragging {
		t.Fatalf("state = %v, want Dragging", c.State())
	}
}

func TestActivationThreshold(t *testing.T) {
	c := NewController()
	now := time.Now()

	c.Press(testGrab, 120, 110)
	if c.State() != ArmedForDrag {
		t.Fatalf("state after press = %v, want ArmedForDrag", c.State())
	}

	res := c.PointerMove(122, 111, layoutOf(8, 0, 5), 1, now)
	if res.Started || c.State() != ArmedForDrag {
		t.Fatal("small movement started a drag")
	}

	res = c.PointerMove(126, 110, layoutOf(8, 0, 5), 1, now)
	if !res.Started {
		t.Fatal("movement past threshold did not start the drag")
	}
}

func TestDestinationIndexBounds(t *testing.T) {
	// Whatever the pointer does, the derived index stays in [0, total-1].
	c := NewController()
	now := time.Now()
	startDrag(t, c, testGrab, now)

	layout := layoutOf(8, 0, 5)
	for i, x := range []int{-500, -39, 0, 120, 250, 480, 560, 2000} {
		now = now.Add(time.Second / 30)
		c.Tick()
		res := c.PointerMove(x, 110, layout, 1, now)
		if res.Reorder == nil {
			continue
		}
		if res.Reorder.DestinationIndex < 0 || res.Reorder.DestinationIndex > 7 {
			t.Errorf("move %d (x=%d): destination %d out of range", i, x, res.Reorder.DestinationIndex)
		}
	}
}

func TestDestinationIndexDerivation(t *testing.T) {
	tests := []struct {
		name         string
		x            int
		first        int
		displayed    int
		total        int
		currentIndex int
		want         int // -1 means no reorder intent
	}{
		// tabLeft = x - 20; slot formula first + floor((tabLeft-50)/100) + 1
		{"same slot", 120, 0, 5, 8, 1, -1},
		{"one slot right", 220, 0, 5, 8, 1, 2},
		{"two slots right", 320, 0, 5, 8, 1, 3},
		{"far left past margin", -30, 0, 5, 8, 1, 0},
		{"left of page two", -30, 5, 3, 8, 6, 4},
		{"right edge past margin", 460, 0, 5, 8, 1, 5},
		{"right edge clamps to total", 460, 5, 3, 8, 6, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			now := time.Now()
			startDrag(t, c, testGrab, now)

			now = now.Add(time.Second / 30)
			c.Tick()
			res := c.PointerMove(tt.x, 110, layoutOf(tt.total, tt.first, tt.displayed), tt.currentIndex, now)
			got := -1
			if res.Reorder != nil {
				got = res.Reorder.DestinationIndex
			}
			if got != tt.want {
				t.Errorf("x=%d: destination = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestFrameGateLimitsEvaluation(t *testing.T) {
	c := NewController()
	now := time.Now()
	startDrag(t, c, testGrab, now)

	// Second move in the same frame records position but does not evaluate.
	now = now.Add(time.Second / 30)
	res := c.PointerMove(320, 110, layoutOf(8, 0, 5), 1, now)
	if res.Reorder != nil {
		t.Fatal("second evaluation ran within one frame")
	}

	c.Tick()
	now = now.Add(time.Second / 30)
	res = c.PointerMove(320, 110, layoutOf(8, 0, 5), 1, now)
	if res.Reorder == nil || res.Reorder.DestinationIndex != 3 {
		t.Fatalf("after tick: reorder = %+v, want destination 3", res.Reorder)
	}
}

func TestPendingIndexSuppression(t *testing.T) {
	c := NewController()
	now := time.Now()
	startDrag(t, c, testGrab, now)

	c.MarkIndexPending()
	now = now.Add(time.Second / 30)
	c.Tick()
	res := c.PointerMove(320, 110, layoutOf(8, 0, 5), 1, now)
	if res.Reorder != nil {
		t.Fatal("reorder emitted while index pending")
	}

	c.SyncIndex(3)
	now = now.Add(time.Second / 30)
	c.Tick()
	res = c.PointerMove(420, 110, layoutOf(8, 0, 5), 3, now)
	if res.Reorder == nil || res.Reorder.DestinationIndex != 4 {
		t.Fatalf("after sync: reorder = %+v, want destination 4", res.Reorder)
	}
}

func TestDetachThreshold(t *testing.T) {
	// Strip top=100 height=30: a pointer at clientY=200 is 70px below the
	// bottom, past the 44px initial margin. Held outside for the full
	// confirmation delay it yields exactly one detach intent.
	c := NewController()
	now := time.Now()
	startDrag(t, c, testGrab, now)

	now = now.Add(time.Second / 30)
	c.Tick()
	res := c.PointerMove(120, 200, layoutOf(8, 0, 5), 1, now)
	if res.ArmDetach == nil {
		t.Fatal("pointer outside strip did not arm detach")
	}
	if res.Reorder != nil {
		t.Fatal("reorder emitted while outside strip")
	}
	gen := res.ArmDetach.Generation

	// Still outside on a later frame: no re-arm, still one pending timer.
	now = now.Add(time.Second / 30)
	c.Tick()
	res = c.PointerMove(121, 200, layoutOf(8, 0, 5), 1, now)
	if res.ArmDetach != nil {
		t.Fatal("detach re-armed while already armed")
	}

	intent := c.ConfirmDetach(gen)
	if intent == nil {
		t.Fatal("confirmation while still outside produced no detach intent")
	}
	if c.State() != Detaching {
		t.Fatalf("state = %v, want Detaching", c.State())
	}

	// The timer cannot fire twice.
	if c.ConfirmDetach(gen) != nil {
		t.Fatal("second confirmation produced a second detach intent")
	}
}

func TestDetachCancelledWhenBackInside(t *testing.T) {
	c := NewController()
	now := time.Now()
	startDrag(t, c, testGrab, now)

	now = now.Add(time.Second / 30)
	c.Tick()
	res := c.PointerMove(120, 200, layoutOf(8, 0, 5), 1, now)
	gen := res.ArmDetach.Generation

	// Back inside bounds before the timer fires.
	now = now.Add(time.Second / 30)
	c.Tick()
	c.PointerMove(120, 110, layoutOf(8, 0, 5), 1, now)

	if c.ConfirmDetach(gen) != nil {
		t.Fatal("cancelled detach still confirmed")
	}
	if c.State() != Dragging {
		t.Fatalf("state = %v, want Dragging", c.State())
	}
}

func TestVerticalMarginWidensAfterReorder(t *testing.T) {
	c := NewController()
	now := time.Now()
	startDrag(t, c, testGrab, now)

	// 60px below the strip bottom: outside the 44px initial margin.
	now = now.Add(time.Second / 30)
	c.Tick()
	res := c.PointerMove(120, 190, layoutOf(8, 0, 5), 1, now)
	if res.ArmDetach == nil {
		t.Fatal("60px overshoot did not arm detach before any reorder")
	}

	// A confirmed reorder widens the margin to 80px; the same overshoot is
	// now inside bounds.
	c.SyncIndex(1)
	c.SyncIndex(2)
	now = now.Add(time.Second / 30)
	c.Tick()
	res = c.PointerMove(120, 190, layoutOf(8, 0, 5), 2, now)
	if res.ArmDetach != nil {
		t.Fatal("60px overshoot armed detach after margin widened")
	}
}

func TestPinnedTabNeverDetaches(t *testing.T) {
	grab := testGrab
	grab.Pinned = true

	c := NewController()
	now := time.Now()
	startDrag(t, c, grab, now)

	now = now.Add(time.Second / 30)
	c.Tick()
	res := c.PointerMove(120, 300, layoutOf(8, 0, 5), 1, now)
	if res.ArmDetach != nil {
		t.Fatal("pinned tab armed a detach")
	}
}

func TestSingleTabModeOnlyMovesWindow(t *testing.T) {
	grab := testGrab
	grab.SingleTab = true

	c := NewController()
	now := time.Now()
	c.Press(grab, 120, 110)
	c.PointerMove(126, 110, layoutOf(1, 0, 1), 0, now)

	positions := []struct{ x, y int }{{300, 110}, {120, 400}, {-200, -200}}
	for _, p := range positions {
		now = now.Add(time.Second / 30)
		c.Tick()
		res := c.PointerMove(p.x, p.y, layoutOf(1, 0, 1), 0, now)
		if res.Reorder != nil || res.ArmDetach != nil {
			t.Fatalf("single-tab mode emitted sort/detach intent at (%d,%d)", p.x, p.y)
		}
		if res.WindowMove == nil {
			t.Fatalf("single-tab mode emitted no window move at (%d,%d)", p.x, p.y)
		}
	}

	// Position derives from the cached tab box plus pointer delta.
	now = now.Add(time.Second / 30)
	c.Tick()
	res := c.PointerMove(150, 140, layoutOf(1, 0, 1), 0, now)
	if res.WindowMove.TabX != 130 || res.WindowMove.TabY != 130 {
		t.Errorf("window move = (%d,%d), want (130,130)", res.WindowMove.TabX, res.WindowMove.TabY)
	}
}

func TestSingleTabGatePerFrame(t *testing.T) {
	grab := testGrab
	grab.SingleTab = true

	c := NewController()
	now := time.Now()
	c.Press(grab, 120, 110)
	res := c.PointerMove(126, 110, layoutOf(1, 0, 1), 0, now)
	if res.WindowMove == nil {
		t.Fatal("starting move produced no window move")
	}

	// Same frame: position recorded, no second intent.
	res = c.PointerMove(200, 110, layoutOf(1, 0, 1), 0, now)
	if res.WindowMove != nil {
		t.Fatal("second window move within one frame")
	}
}

func TestTeardown(t *testing.T) {
	c := NewController()
	now := time.Now()
	startDrag(t, c, testGrab, now)

	now = now.Add(time.Second / 30)
	c.Tick()
	res := c.PointerMove(120, 200, layoutOf(8, 0, 5), 1, now)
	gen := res.ArmDetach.Generation

	if !c.Teardown() {
		t.Fatal("teardown of an active drag reported inactive")
	}
	if c.State() != Idle {
		t.Fatalf("state = %v, want Idle", c.State())
	}
	// The armed timer was invalidated.
	if c.ConfirmDetach(gen) != nil {
		t.Fatal("detach confirmed after teardown")
	}

	if c.Teardown() {
		t.Fatal("teardown of an idle controller reported active")
	}
}

func TestAttachConfirmedReplaysPointer(t *testing.T) {
	c := NewController()
	now := time.Now()
	startDrag(t, c, testGrab, now)

	// Move within the same frame; the gate swallows the evaluation but the
	// position is recorded.
	c.PointerMove(320, 110, layoutOf(8, 0, 5), 1, now)

	// Attach confirmation replays the recorded position without a gate.
	now = now.Add(time.Second / 30)
	res := c.OnAttachConfirmed(layoutOf(8, 0, 5), 1, now)
	if res.Reorder == nil || res.Reorder.DestinationIndex != 3 {
		t.Fatalf("replayed reorder = %+v, want destination 3", res.Reorder)
	}
}
