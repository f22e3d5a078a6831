package strip

import "testing"

func TestLayout(t *testing.T) {
	tests := []struct {
		name       string
		pageSize   int
		page       int
		totalTabs  int
		wantFirst  int
		wantCount  int
		wantPages  int
	}{
		{"single partial page", 5, 0, 3, 0, 3, 1},
		{"exact page", 5, 0, 5, 0, 5, 1},
		{"second page partial", 5, 1, 7, 5, 2, 2},
		{"empty strip", 5, 0, 0, 0, 0, 1},
		{"page snaps back after removals", 5, 2, 6, 5, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCoordinator(tt.pageSize)
			c.page = tt.page
			got := c.Layout(tt.totalTabs)
			if got.FirstTabDisplayIndex != tt.wantFirst ||
				got.DisplayedTabCount != tt.wantCount ||
				got.TotalPages != tt.wantPages {
				t.Errorf("Layout() = %+v, want first=%d count=%d pages=%d",
					got, tt.wantFirst, tt.wantCount, tt.wantPages)
			}
		})
	}
}

func TestRequestIndexInPage(t *testing.T) {
	c := NewCoordinator(5)

	d := c.RequestIndex(3, 7)
	if d.Outcome != ApplyNow || d.Index != 3 {
		t.Fatalf("in-page request = %+v, want ApplyNow index 3", d)
	}
	if c.Paused() {
		t.Error("in-page request left a pending page change")
	}
}

func TestPageChangeDebounce(t *testing.T) {
	// firstTabDisplayIndex=0, displayedTabCount=5, destination 7: clamp to 4
	// and schedule; a request for 3 before the timer fires cancels it.
	c := NewCoordinator(5)

	d := c.RequestIndex(7, 8)
	if d.Outcome != ClampAndSchedule || d.Index != 4 {
		t.Fatalf("beyond-page request = %+v, want ClampAndSchedule index 4", d)
	}
	if !c.Paused() {
		t.Fatal("no pending page change after beyond-page request")
	}
	gen := d.Generation

	d2 := c.RequestIndex(3, 8)
	if d2.Outcome != ApplyNow || d2.Index != 3 {
		t.Fatalf("return-to-page request = %+v, want ApplyNow index 3", d2)
	}
	if c.Paused() {
		t.Fatal("pending page change not cancelled")
	}

	// The old timer fires anyway: stale generation, no transition.
	if page, ok := c.CommitPageChange(gen); ok || page != 0 {
		t.Errorf("stale commit = (%d,%t), want (0,false)", page, ok)
	}
}

func TestPageChangeCommit(t *testing.T) {
	c := NewCoordinator(5)

	d := c.RequestIndex(7, 8)
	page, ok := c.CommitPageChange(d.Generation)
	if !ok || page != 1 {
		t.Fatalf("commit = (%d,%t), want (1,true)", page, ok)
	}
	if c.Paused() {
		t.Error("paused marker survived commit")
	}

	layout := c.Layout(8)
	if layout.FirstTabDisplayIndex != 5 || layout.DisplayedTabCount != 3 {
		t.Errorf("layout after commit = %+v", layout)
	}
}

func TestDebounceRestartReplacesGeneration(t *testing.T) {
	c := NewCoordinator(5)

	d1 := c.RequestIndex(7, 12)
	d2 := c.RequestIndex(8, 12)
	if d2.Generation == d1.Generation {
		t.Fatal("refreshed schedule reused the old generation")
	}
	if _, ok := c.CommitPageChange(d1.Generation); ok {
		t.Error("old generation committed after refresh")
	}
	if page, ok := c.CommitPageChange(d2.Generation); !ok || page != 1 {
		t.Errorf("current generation commit = (%d,%t), want (1,true)", page, ok)
	}
}

func TestRequestIndexBelowFirstPage(t *testing.T) {
	c := NewCoordinator(5)
	c.page = 1

	d := c.RequestIndex(2, 12)
	if d.Outcome != ClampAndSchedule || d.Index != 5 {
		t.Fatalf("below-page request = %+v, want ClampAndSchedule index 5", d)
	}
	if page, ok := c.CommitPageChange(d.Generation); !ok || page != 0 {
		t.Errorf("commit = (%d,%t), want (0,true)", page, ok)
	}
}

func TestRequestIndexClampsToTabRange(t *testing.T) {
	c := NewCoordinator(5)

	for _, dest := range []int{-3, 0, 2, 50} {
		d := c.RequestIndex(dest, 3)
		if d.Outcome == Ignore {
			t.Fatalf("dest %d ignored", dest)
		}
		if d.Index < 0 || d.Index > 2 {
			t.Errorf("dest %d resolved to out-of-range index %d", dest, d.Index)
		}
	}

	if d := c.RequestIndex(0, 0); d.Outcome != Ignore {
		t.Errorf("empty strip request = %+v, want Ignore", d)
	}
}

func TestLastPageClampsWithoutSchedule(t *testing.T) {
	c := NewCoordinator(5)
	c.page = 1

	d := c.RequestIndex(11, 8)
	if d.Outcome != ApplyNow || d.Index != 7 {
		t.Fatalf("last-page overflow = %+v, want ApplyNow index 7", d)
	}
	if c.Paused() {
		t.Error("last-page overflow scheduled a page change")
	}
}
