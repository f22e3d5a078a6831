// Package tabs owns the tab records and their window assignment.
//
// The registry is the single source of truth for which window holds which
// tabs and in what order. The drag subsystem moves and reindexes tabs only
// through it, so observers (tab strips, the drag store) see every change.
package tabs

import (
	"fmt"

	"github.com/google/uuid"
)

// Tab is one browser tab.
type Tab struct {
	ID     string
	Title  string
	URL    string
	Pinned bool
}

// Registry tracks all tabs and their per-window ordering.
type Registry struct {
	tabs  map[string]*Tab
	owner map[string]string   // tab ID -> window ID
	order map[string][]string // window ID -> ordered tab IDs

	// OnAttached fires after a tab changes windows.
	OnAttached func(tabID, windowID string, index int)
	// OnReindexed fires after a tab moves within its window.
	OnReindexed func(tabID, windowID string, index int)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		tabs:  make(map[string]*Tab),
		owner: make(map[string]string),
		order: make(map[string][]string),
	}
}

// NewTab creates a tab and assigns it to windowID at the end of its order.
func (r *Registry) NewTab(windowID, title, url string) *Tab {
	tab := &Tab{ID: uuid.New().String(), Title: title, URL: url}
	r.tabs[tab.ID] = tab
	r.owner[tab.ID] = windowID
	r.order[windowID] = append(r.order[windowID], tab.ID)
	return tab
}

// Get returns the tab with the given ID, or nil.
func (r *Registry) Get(tabID string) *Tab {
	return r.tabs[tabID]
}

// Owner returns the window currently holding the tab.
func (r *Registry) Owner(tabID string) (string, bool) {
	winID, ok := r.owner[tabID]
	return winID, ok
}

// TabsFor returns the ordered tabs of a window.
func (r *Registry) TabsFor(windowID string) []*Tab {
	ids := r.order[windowID]
	out := make([]*Tab, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.tabs[id])
	}
	return out
}

// UnpinnedFor returns the ordered unpinned tabs of a window. Pinned tabs do
// not participate in drag reordering.
func (r *Registry) UnpinnedFor(windowID string) []*Tab {
	var out []*Tab
	for _, id := range r.order[windowID] {
		if tab := r.tabs[id]; !tab.Pinned {
			out = append(out, tab)
		}
	}
	return out
}

// Count returns how many tabs a window holds.
func (r *Registry) Count(windowID string) int {
	return len(r.order[windowID])
}

// IndexOf returns a tab's position within its window, or -1.
func (r *Registry) IndexOf(tabID string) int {
	winID, ok := r.owner[tabID]
	if !ok {
		return -1
	}
	for i, id := range r.order[winID] {
		if id == tabID {
			return i
		}
	}
	return -1
}

// MoveToWindow detaches a tab from its current window and inserts it into
// windowID at index (clamped to the target's bounds). A move that matches the
// tab's current placement is a no-op and fires no notification.
func (r *Registry) MoveToWindow(tabID, windowID string, index int) error {
	current, ok := r.owner[tabID]
	if !ok {
		return fmt.Errorf("tab %s: not registered", tabID)
	}
	if current == windowID && r.IndexOf(tabID) == index {
		return nil
	}

	r.order[current] = removeID(r.order[current], tabID)
	r.order[windowID] = insertID(r.order[windowID], tabID, index)
	r.owner[tabID] = windowID

	if r.OnAttached != nil {
		r.OnAttached(tabID, windowID, r.IndexOf(tabID))
	}
	return nil
}

// Reindex moves a tab within its current window to index (clamped).
func (r *Registry) Reindex(tabID string, index int) error {
	winID, ok := r.owner[tabID]
	if !ok {
		return fmt.Errorf("tab %s: not registered", tabID)
	}
	if r.IndexOf(tabID) == index {
		return nil
	}

	r.order[winID] = insertID(removeID(r.order[winID], tabID), tabID, index)

	if r.OnReindexed != nil {
		r.OnReindexed(tabID, winID, r.IndexOf(tabID))
	}
	return nil
}

// Close removes a tab entirely.
func (r *Registry) Close(tabID string) {
	winID, ok := r.owner[tabID]
	if !ok {
		return
	}
	r.order[winID] = removeID(r.order[winID], tabID)
	delete(r.owner, tabID)
	delete(r.tabs, tabID)
}

// DropWindow forgets a window's ordering. Its tabs must already have moved.
func (r *Registry) DropWindow(windowID string) {
	delete(r.order, windowID)
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

func insertID(ids []string, id string, index int) []string {
	if index < 0 {
		index = 0
	}
	if index > len(ids) {
		index = len(ids)
	}
	ids = append(ids, "")
	copy(ids[index+1:], ids[index:])
	ids[index] = id
	return ids
}
