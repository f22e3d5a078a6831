// Package strip owns tab strip paging: which slice of tabs a window shows
// and the debounced page changes a drag can trigger by pushing past the
// page edge.
package strip

// PageLayout is the visible slice of a window's tab strip, recomputed from
// the tab collection and page size on every read. Never persisted.
type PageLayout struct {
	FirstTabDisplayIndex int
	DisplayedTabCount    int
	TotalTabCount        int
	TotalPages           int
}

// LastDisplayIndex returns the last index visible on this page.
func (l PageLayout) LastDisplayIndex() int {
	return l.FirstTabDisplayIndex + l.DisplayedTabCount - 1
}

// Contains reports whether index is on this page.
func (l PageLayout) Contains(index int) bool {
	return index >= l.FirstTabDisplayIndex && index <= l.LastDisplayIndex()
}

// Outcome says what a destination index request should do.
type Outcome int

const (
	// ApplyNow applies Decision.Index immediately.
	ApplyNow Outcome = iota
	// ClampAndSchedule applies Decision.Index (the page boundary) now and
	// schedules a debounced page change carrying Decision.Generation.
	ClampAndSchedule
	// Ignore drops the request (no tabs, or index already pending).
	Ignore
)

// Decision is the coordinator's answer to a destination index request.
type Decision struct {
	Outcome    Outcome
	Index      int
	Generation int
}

// Coordinator owns one window's current page and the pending page change.
// Debounce timers are generation-counted: every new schedule invalidates the
// previous one, so timers are restarted, never stacked.
type Coordinator struct {
	page     int
	pageSize int

	paused      bool
	pendingPage int
	generation  int
}

// NewCoordinator returns a coordinator showing the first page.
func NewCoordinator(pageSize int) *Coordinator {
	if pageSize < 1 {
		pageSize = 1
	}
	return &Coordinator{pageSize: pageSize}
}

// Page returns the current page index.
func (c *Coordinator) Page() int {
	return c.page
}

// Paused reports whether a debounced page change is pending.
func (c *Coordinator) Paused() bool {
	return c.paused
}

// Layout computes the visible slice for totalTabs on the current page. An
// out-of-range page (tabs were removed) snaps back first.
func (c *Coordinator) Layout(totalTabs int) PageLayout {
	totalPages := (totalTabs + c.pageSize - 1) / c.pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if c.page > totalPages-1 {
		c.page = totalPages - 1
	}

	first := c.page * c.pageSize
	displayed := totalTabs - first
	if displayed > c.pageSize {
		displayed = c.pageSize
	}
	if displayed < 0 {
		displayed = 0
	}

	return PageLayout{
		FirstTabDisplayIndex: first,
		DisplayedTabCount:    displayed,
		TotalTabCount:        totalTabs,
		TotalPages:           totalPages,
	}
}

// RequestIndex resolves a drag's destination display index against the
// current page. In-page destinations apply immediately and cancel any
// pending page change. Destinations past the page edge clamp to the boundary
// and start (or refresh) the debounced page change; the caller schedules the
// timer and calls CommitPageChange with the returned generation when it
// fires.
func (c *Coordinator) RequestIndex(dest, totalTabs int) Decision {
	if totalTabs <= 0 {
		return Decision{Outcome: Ignore}
	}
	if dest < 0 {
		dest = 0
	}
	if dest > totalTabs-1 {
		dest = totalTabs - 1
	}

	layout := c.Layout(totalTabs)

	if layout.Contains(dest) {
		c.cancelPending()
		return Decision{Outcome: ApplyNow, Index: dest}
	}

	if dest > layout.LastDisplayIndex() {
		if c.page >= layout.TotalPages-1 {
			// Already on the last page; nothing to page to.
			c.cancelPending()
			return Decision{Outcome: ApplyNow, Index: layout.LastDisplayIndex()}
		}
		c.schedule(c.page + 1)
		return Decision{Outcome: ClampAndSchedule, Index: layout.LastDisplayIndex(), Generation: c.generation}
	}

	// Below the first visible index: mirror of the beyond-last case.
	if c.page == 0 {
		c.cancelPending()
		return Decision{Outcome: ApplyNow, Index: layout.FirstTabDisplayIndex}
	}
	c.schedule(c.page - 1)
	return Decision{Outcome: ClampAndSchedule, Index: layout.FirstTabDisplayIndex, Generation: c.generation}
}

// CommitPageChange fires a debounce timer. A stale generation (a later
// request cancelled or replaced it) commits nothing. On success the caller
// issues the final index change for the new page.
func (c *Coordinator) CommitPageChange(generation int) (newPage int, ok bool) {
	if !c.paused || generation != c.generation {
		return c.page, false
	}
	c.page = c.pendingPage
	c.paused = false
	return c.page, true
}

// CancelPending clears any pending page change, for drag teardown.
func (c *Coordinator) CancelPending() {
	c.cancelPending()
}

// SetPage jumps directly to a page (keyboard paging), cancelling any pending
// change.
func (c *Coordinator) SetPage(page, totalTabs int) {
	c.cancelPending()
	layout := c.Layout(totalTabs)
	if page < 0 {
		page = 0
	}
	if page > layout.TotalPages-1 {
		page = layout.TotalPages - 1
	}
	c.page = page
}

func (c *Coordinator) schedule(page int) {
	c.generation++
	c.paused = true
	c.pendingPage = page
}

func (c *Coordinator) cancelPending() {
	if c.paused {
		c.generation++
		c.paused = false
	}
}
