// Package app contains the shell model: the window list, focus and
// stacking order, the drag store wiring, and the render loop state.
package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/drag"
	"github.com/tabshell/tabshell/internal/dragctl"
	"github.com/tabshell/tabshell/internal/strip"
	"github.com/tabshell/tabshell/internal/tabs"
	"github.com/tabshell/tabshell/internal/ui"

	"charm.land/lipgloss/v2"
)

// Notification represents a temporary on-screen notification.
type Notification struct {
	Message  string
	Type     string // "info", "success", "warning", "error"
	ExpireAt time.Time
}

// Window is one floating shell window: a cell-grid rectangle with a tab
// strip on its first content row and the active tab's page below it.
type Window struct {
	ID         string
	CustomName string

	// Position and size in terminal cells, screen space.
	X      int
	Y      int
	Width  int
	Height int
	Z      int

	Visible bool
	Buffer  bool

	// ClickThrough windows are skipped by hit testing so the window
	// underneath receives pointer events.
	ClickThrough bool
	AlwaysOnTop  bool

	ActiveTabID string

	Strip *strip.Coordinator
	Drag  *dragctl.Controller

	// DragTabLeft is the dragged tab's left edge in strip pixels, for
	// rendering the drag visual. Valid only while DragActive.
	DragActive  bool
	DragTabLeft int

	CachedLayer   *lipgloss.Layer
	Dirty         bool
	ContentDirty  bool
	PositionDirty bool
}

// ClearDirtyFlags resets the window's render invalidation flags.
func (w *Window) ClearDirtyFlags() {
	w.Dirty = false
	w.ContentDirty = false
	w.PositionDirty = false
}

// PressInfo captures the tab press that may become a drag. The input layer
// records it on mouse-down; the DragStarted event is built from it when the
// press crosses the activation threshold.
type PressInfo struct {
	TabID     string
	SingleTab bool

	// RelX/RelY is the pointer offset within the pressed tab, pixels.
	RelX int
	RelY int

	// TabWidth is the rendered tab slot width, pixels.
	TabWidth int
}

// Shell is the root model driving the whole application.
type Shell struct {
	Windows       []*Window
	FocusedWindow int

	Width  int
	Height int

	Tabs   *tabs.Registry
	Store  *drag.Store
	Runner *drag.Runner

	Animations []*ui.Animation

	Notifications []Notification
	LogMessages   []string

	// MouseX/MouseY is the last pointer position in cells.
	MouseX int
	MouseY int

	// InteractionMode lowers the tick rate while the user drags or resizes.
	InteractionMode bool

	// Title bar drags move a window directly, outside the tab drag
	// subsystem.
	MovingWindow  bool
	MovedWindowID string
	DragOffsetX   int
	DragOffsetY   int

	// Right-button drags resize from the bottom-right corner.
	ResizingWindow  bool
	ResizedWindowID string
	ResizeStartX    int
	ResizeStartY    int
	PreResizeW      int
	PreResizeH      int

	// TabPressWindowID/TabPressTabID track a pressed tab until release.
	TabPressWindowID string
	TabPressTabID    string

	idleFrames        int
	renderSkipped     bool
	cachedViewContent string

	CPUHistory []float64
	RAMUsage   float64
	lastStats  time.Time

	windowCount int

	pressInfo PressInfo

	// queuedDragEvents holds events produced by registry callbacks during
	// effect execution. They are drained through the store after the
	// triggering effect batch finishes.
	queuedDragEvents []drag.Event
}

// NewShell constructs the shell with an empty window list and a wired drag
// subsystem.
func NewShell() *Shell {
	s := &Shell{
		FocusedWindow: -1,
		Tabs:          tabs.NewRegistry(),
	}
	s.Store = drag.NewStore(s)
	s.Runner = drag.NewRunner(s, s)

	s.Tabs.OnAttached = func(tabID, windowID string, index int) {
		s.queuedDragEvents = append(s.queuedDragEvents, drag.TabAttached{TabID: tabID, WindowID: windowID})
		if w := s.WindowByID(windowID); w != nil {
			w.ActiveTabID = tabID
			w.ContentDirty = true
		}
	}
	s.Tabs.OnReindexed = func(tabID, windowID string, index int) {
		if w := s.WindowByID(windowID); w != nil {
			w.Drag.SyncIndex(s.DisplayIndexOf(tabID))
			w.ContentDirty = true
		}
	}

	return s
}

// WindowByID returns the window with the given ID, or nil.
func (s *Shell) WindowByID(id string) *Window {
	for _, w := range s.Windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// WindowIndex returns the position of a window in the window list, or -1.
func (s *Shell) WindowIndex(id string) int {
	for i, w := range s.Windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

// GetFocusedWindow returns the focused window, or nil.
func (s *Shell) GetFocusedWindow() *Window {
	if s.FocusedWindow < 0 || s.FocusedWindow >= len(s.Windows) {
		return nil
	}
	return s.Windows[s.FocusedWindow]
}

// AddWindow creates a visible window near the cursor with one fresh tab.
func (s *Shell) AddWindow(title string) *Window {
	s.windowCount++
	if title == "" {
		title = fmt.Sprintf("Window %d", s.windowCount)
	}

	w := &Window{
		ID:      uuid.New().String(),
		Width:   config.DefaultWindowWidth,
		Height:  config.DefaultWindowHeight,
		Visible: true,
		Strip:   strip.NewCoordinator(config.StripPageSize),
		Drag:    dragctl.NewController(),
		Dirty:   true,
	}

	// Spawn at the cursor, clamped so the window stays reachable.
	w.X = clamp(s.MouseX-w.Width/2, 0, max(s.Width-w.Width, 0))
	w.Y = clamp(s.MouseY-1, s.GetTopMargin(), max(s.GetUsableHeight()-w.Height, s.GetTopMargin()))

	tab := s.Tabs.NewTab(w.ID, title, "about:blank")
	w.ActiveTabID = tab.ID

	s.Windows = append(s.Windows, w)
	s.FocusWindowByIndex(len(s.Windows) - 1)
	return w
}

// addBufferWindow creates a hidden spare window holding no tabs.
func (s *Shell) addBufferWindow() *Window {
	w := &Window{
		ID:     uuid.New().String(),
		Width:  config.DefaultWindowWidth,
		Height: config.DefaultWindowHeight,
		Buffer: true,
		Strip:  strip.NewCoordinator(config.StripPageSize),
		Drag:   dragctl.NewController(),
	}
	w.Z = s.nextZ()
	s.Windows = append(s.Windows, w)
	return w
}

// DeleteWindow removes the window at index i, closing its remaining tabs
// and compacting the Z order.
func (s *Shell) DeleteWindow(i int) {
	if i < 0 || i >= len(s.Windows) {
		return
	}
	w := s.Windows[i]

	for _, tab := range s.Tabs.TabsFor(w.ID) {
		s.Tabs.Close(tab.ID)
	}
	s.Tabs.DropWindow(w.ID)

	// Drop animations targeting the deleted window.
	kept := s.Animations[:0]
	for _, anim := range s.Animations {
		if anim.WindowID != w.ID {
			kept = append(kept, anim)
		}
	}
	s.Animations = kept

	removedZ := w.Z
	s.Windows = append(s.Windows[:i], s.Windows[i+1:]...)
	for _, other := range s.Windows {
		if other.Z > removedZ {
			other.Z--
			other.Dirty = true
		}
	}

	switch {
	case len(s.Windows) == 0:
		s.FocusedWindow = -1
	case s.FocusedWindow == i:
		s.FocusWindowByIndex(s.topVisibleIndex())
	case s.FocusedWindow > i:
		s.FocusedWindow--
	}
	s.MarkAllDirty()
}

// CloseTab removes a tab; a window left empty is deleted with it.
func (s *Shell) CloseTab(tabID string) {
	winID, ok := s.Tabs.Owner(tabID)
	if !ok {
		return
	}
	s.Tabs.Close(tabID)

	owner := s.WindowByID(winID)
	if owner == nil {
		return
	}
	if s.Tabs.Count(winID) == 0 {
		s.DeleteWindow(s.WindowIndex(winID))
		return
	}
	if owner.ActiveTabID == tabID {
		remaining := s.Tabs.TabsFor(winID)
		owner.ActiveTabID = remaining[len(remaining)-1].ID
	}
	owner.ContentDirty = true
}

// FocusWindowByIndex focuses the window at index i and raises it to the top
// of the stack.
func (s *Shell) FocusWindowByIndex(i int) {
	if i < 0 || i >= len(s.Windows) {
		return
	}
	prev := s.GetFocusedWindow()
	w := s.Windows[i]
	s.FocusedWindow = i

	top := s.nextZ() - 1
	if w.Z < top {
		oldZ := w.Z
		for _, other := range s.Windows {
			if other.Z > oldZ {
				other.Z--
				other.Dirty = true
			}
		}
		w.Z = top
	}
	w.Dirty = true
	if prev != nil && prev != w {
		prev.Dirty = true
	}
}

func (s *Shell) nextZ() int {
	return len(s.Windows)
}

func (s *Shell) topVisibleIndex() int {
	best := -1
	bestZ := -1
	for i, w := range s.Windows {
		if w.Visible && !w.Buffer && w.Z > bestZ {
			best = i
			bestZ = w.Z
		}
	}
	return best
}

// WindowAt returns the topmost visible window containing the cell point,
// skipping click-through windows. Skipping is what lets a window underneath
// a detached drag see the pointer.
func (s *Shell) WindowAt(x, y int) *Window {
	var found *Window
	for _, w := range s.Windows {
		if !w.Visible || w.ClickThrough {
			continue
		}
		if x < w.X || x >= w.X+w.Width || y < w.Y || y >= w.Y+w.Height {
			continue
		}
		if found == nil || w.Z > found.Z {
			found = w
		}
	}
	return found
}

// DisplayIndexOf returns a tab's position among its window's unpinned tabs,
// the index space drag reordering works in. Pinned tabs return -1.
func (s *Shell) DisplayIndexOf(tabID string) int {
	winID, ok := s.Tabs.Owner(tabID)
	if !ok {
		return -1
	}
	idx := 0
	for _, tab := range s.Tabs.TabsFor(winID) {
		if tab.Pinned {
			continue
		}
		if tab.ID == tabID {
			return idx
		}
		idx++
	}
	return -1
}

// FrameIndexFor converts a display index back to a position in the window's
// full tab order.
func (s *Shell) FrameIndexFor(windowID string, displayIndex int) int {
	all := s.Tabs.TabsFor(windowID)
	seen := 0
	for i, tab := range all {
		if tab.Pinned {
			continue
		}
		if seen == displayIndex {
			return i
		}
		seen++
	}
	return len(all)
}

// SetPressInfo records the tab press the input layer saw on mouse-down.
func (s *Shell) SetPressInfo(p PressInfo) {
	s.pressInfo = p
}

// GetTopMargin returns the height reserved above windows.
func (s *Shell) GetTopMargin() int {
	if config.DockbarPosition == "top" {
		return config.DockHeight
	}
	return 0
}

// GetUsableHeight returns the height available for windows.
func (s *Shell) GetUsableHeight() int {
	if config.DockbarPosition == "hidden" {
		return s.Height
	}
	return s.Height - config.DockHeight
}

// ClampWindowsToView pulls stray windows back into the visible area,
// animated when animations are on.
func (s *Shell) ClampWindowsToView() {
	topMargin := s.GetTopMargin()
	for _, w := range s.Windows {
		targetX := clamp(w.X, 0, max(s.Width-w.Width, 0))
		targetY := clamp(w.Y, topMargin, max(s.GetUsableHeight()-w.Height, topMargin))
		if targetX == w.X && targetY == w.Y {
			continue
		}
		if dur := config.GetFastAnimationDuration(); dur > 0 {
			s.Animations = append(s.Animations, &ui.Animation{
				Kind:      ui.WindowSnap,
				WindowID:  w.ID,
				StartTime: time.Now(),
				Duration:  dur,
				FromX:     w.X,
				FromY:     w.Y,
				ToX:       targetX,
				ToY:       targetY,
			})
		} else {
			w.X, w.Y = targetX, targetY
		}
		w.PositionDirty = true
	}
}

// UpdateAnimations advances running animations and applies finished ones.
func (s *Shell) UpdateAnimations() {
	if len(s.Animations) == 0 {
		return
	}
	now := time.Now()
	kept := s.Animations[:0]
	for _, anim := range s.Animations {
		w := s.WindowByID(anim.WindowID)
		if w == nil {
			continue
		}
		switch anim.Kind {
		case ui.WindowSnap:
			w.X, w.Y = anim.At(now)
			w.PositionDirty = true
		case ui.TabSettle:
			x, _ := anim.At(now)
			w.DragTabLeft = x
			w.ContentDirty = true
		}
		if anim.Complete(now) {
			if anim.Kind == ui.TabSettle {
				w.DragActive = false
			}
			continue
		}
		kept = append(kept, anim)
	}
	s.Animations = kept
}

// HasActiveAnimations reports whether any animation is still running.
func (s *Shell) HasActiveAnimations() bool {
	return len(s.Animations) > 0
}

// MarkAllDirty invalidates every window's cached layer.
func (s *Shell) MarkAllDirty() {
	for _, w := range s.Windows {
		w.Dirty = true
	}
	s.renderSkipped = false
}

// hasRenderWork reports whether the next frame would differ from the last.
func (s *Shell) hasRenderWork() bool {
	for _, w := range s.Windows {
		if w.Dirty || w.ContentDirty || w.PositionDirty {
			return true
		}
	}
	return len(s.Notifications) > 0
}

// ShowNotification adds a notification that expires after duration.
func (s *Shell) ShowNotification(message, notifType string, duration time.Duration) {
	s.Notifications = append(s.Notifications, Notification{
		Message:  message,
		Type:     notifType,
		ExpireAt: time.Now().Add(duration),
	})
	if len(s.Notifications) > config.MaxVisibleNotifications {
		s.Notifications = s.Notifications[len(s.Notifications)-config.MaxVisibleNotifications:]
	}
}

// CleanupNotifications drops expired notifications.
func (s *Shell) CleanupNotifications() {
	now := time.Now()
	kept := s.Notifications[:0]
	for _, n := range s.Notifications {
		if now.Before(n.ExpireAt) {
			kept = append(kept, n)
		}
	}
	s.Notifications = kept
}

// LogInfo appends an info line to the in-memory log ring.
func (s *Shell) LogInfo(format string, args ...any) {
	s.appendLog("INFO", format, args)
}

// LogWarn appends a warning line to the in-memory log ring.
func (s *Shell) LogWarn(format string, args ...any) {
	s.appendLog("WARN", format, args)
}

// LogError appends an error line to the in-memory log ring.
func (s *Shell) LogError(format string, args ...any) {
	s.appendLog("ERROR", format, args)
}

// Infof implements drag.Logger.
func (s *Shell) Infof(format string, args ...any) { s.LogInfo(format, args...) }

// Warnf implements drag.Logger.
func (s *Shell) Warnf(format string, args ...any) { s.LogWarn(format, args...) }

// Errorf implements drag.Logger.
func (s *Shell) Errorf(format string, args ...any) { s.LogError(format, args...) }

func (s *Shell) appendLog(level, format string, args []any) {
	line := fmt.Sprintf("%s [%s] %s",
		time.Now().Format("15:04:05.000"), level, fmt.Sprintf(format, args...))
	s.LogMessages = append(s.LogMessages, line)
	if len(s.LogMessages) > config.MaxLogMessages {
		s.LogMessages = s.LogMessages[len(s.LogMessages)-config.MaxLogMessages:]
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
