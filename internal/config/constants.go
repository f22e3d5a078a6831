// Package config provides configuration constants, user settings, and CLI overrides.
package config

import (
	"time"
)

// =============================================================================
// Cell Metrics
// =============================================================================

// The drag subsystem works in pixels; the shell converts terminal cells to
// pixels using the host cell metrics below. Overridable via user config for
// terminals that report real cell dimensions.

const (
	// DefaultCellWidth is the assumed pixel width of one terminal cell
	DefaultCellWidth = 10

	// DefaultCellHeight is the assumed pixel height of one terminal cell
	DefaultCellHeight = 20
)

// =============================================================================
// Drag Thresholds
// =============================================================================

const (
	// DragActivationDistance is the pixel distance a pressed tab must travel
	// before the press arms into an active drag
	DragActivationDistance = 5

	// DetachMarginX is the horizontal pixel margin around the tab strip
	// beyond which a detach is considered
	DetachMarginX = 60

	// DetachMarginYInitial is the vertical pixel margin around the tab strip
	// beyond which a detach is considered, before any reorder has happened
	DetachMarginYInitial = 44

	// DetachMarginYAfterSort is the widened vertical margin used once the
	// drag has performed at least one confirmed reorder
	DetachMarginYAfterSort = 80

	// EdgeIndexMargin is the pixel overhang past the strip edge that pushes
	// the destination index off the visible page
	EdgeIndexMargin = 38
)

// =============================================================================
// Drag Timing
// =============================================================================

const (
	// SortEvalMinInterval is the minimum spacing between two sort-change
	// evaluations within one drag
	SortEvalMinInterval = time.Second / 60

	// PageChangeDebounce is how long a destination index must stay outside
	// the current page before the page change commits
	PageChangeDebounce = 1000 * time.Millisecond

	// DetachShowDelay lets buffer-window setup settle before the window is
	// shown under the cursor
	DetachShowDelay = 50 * time.Millisecond

	// ClickThroughPulse is how long a moved single-tab window stays mouse
	// transparent so the window underneath sees the next motion event
	ClickThroughPulse = 16 * time.Millisecond
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// DefaultWindowWidth is the default width for new shell windows, in cells
	DefaultWindowWidth = 44

	// DefaultWindowHeight is the default height for new shell windows, in cells
	DefaultWindowHeight = 12

	// MinWindowWidth is the minimum width a window can be resized to
	MinWindowWidth = 16

	// MinWindowHeight is the minimum height a window can be resized to
	MinWindowHeight = 4

	// TabCellWidth is the rendered width of one tab slot in the strip, in cells
	TabCellWidth = 10

	// TabsPerPage is the default number of tab slots per strip page
	TabsPerPage = 4
)

// =============================================================================
// Animation Durations
// =============================================================================

const (
	// DefaultAnimationDuration is the standard duration for the tab
	// settle-back animation after a drag ends
	DefaultAnimationDuration = 300 * time.Millisecond

	// FastAnimationDuration is the duration for window snap-back animations
	FastAnimationDuration = 200 * time.Millisecond

	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 1500 * time.Millisecond
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the refresh rate during regular operation
	NormalFPS = 60

	// InteractionFPS is the refresh rate while a drag or resize is active
	InteractionFPS = 30

	// IdleFPS is the refresh rate when nothing is changing
	IdleFPS = 10

	// IdleThresholdFrames is the number of consecutive unchanged frames at
	// NormalFPS before switching to IdleFPS
	IdleThresholdFrames = 30

	// CPUUpdateInterval is the interval between dock CPU/RAM samples
	CPUUpdateInterval = 500 * time.Millisecond
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// DockHeight is the height of the dock area
	DockHeight = 2

	// MaxNotificationWidth is the maximum width of notification messages
	MaxNotificationWidth = 60

	// NotificationMargin is the margin from screen edge for notifications
	NotificationMargin = 8

	// MaxVisibleNotifications is the maximum number of notifications shown at once
	MaxVisibleNotifications = 3

	// MaxLogMessages is the log ring buffer capacity
	MaxLogMessages = 500

	// ZIndexAnimating is the z-index boost applied to animating windows
	ZIndexAnimating = 1000

	// ZIndexAlwaysOnTop is the z-index boost for always-on-top windows
	ZIndexAlwaysOnTop = 2000
)

// =============================================================================
// Runtime Globals (set once at startup from config and flags)
// =============================================================================

var (
	// UseASCIIOnly disables Unicode chrome glyphs
	UseASCIIOnly bool

	// BorderStyle is the window border style name
	BorderStyle = "rounded"

	// DockbarPosition is "bottom", "top", or "hidden"
	DockbarPosition = "bottom"

	// HideWindowButtons hides the close button in window title bars
	HideWindowButtons bool

	// AnimationsEnabled toggles UI animations
	AnimationsEnabled = true

	// CellWidth is the effective pixel width of one terminal cell
	CellWidth = DefaultCellWidth

	// CellHeight is the effective pixel height of one terminal cell
	CellHeight = DefaultCellHeight

	// StripPageSize is the effective number of tab slots per strip page
	StripPageSize = TabsPerPage
)

// GetAnimationDuration returns the settle-back duration, or zero when
// animations are disabled so transitions are instant.
func GetAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return DefaultAnimationDuration
}

// GetFastAnimationDuration returns the snap-back duration, or zero when
// animations are disabled.
func GetFastAnimationDuration() time.Duration {
	if !AnimationsEnabled {
		return 0
	}
	return FastAnimationDuration
}
