package drag

import (
	"github.com/tabshell/tabshell/internal/geometry"
	"github.com/tabshell/tabshell/internal/winops"
)

// Runner executes committed effects against the window orchestrator. Effects
// may race with events that arrived after the transition that produced them,
// so every window-touching effect re-validates its target before acting.
//
// Run returns completion events to feed back into the Store and delayed
// batches for the caller to schedule.
type Runner struct {
	ops    winops.Orchestrator
	chrome winops.Chrome
	log    Logger
}

// NewRunner returns a runner using the current platform's chrome capabilities.
func NewRunner(ops winops.Orchestrator, log Logger) *Runner {
	return &Runner{ops: ops, chrome: winops.PlatformChrome(), log: log}
}

// NewRunnerWithChrome overrides the platform chrome, for tests.
func NewRunnerWithChrome(ops winops.Orchestrator, chrome winops.Chrome, log Logger) *Runner {
	return &Runner{ops: ops, chrome: chrome, log: log}
}

// Run executes each effect in order.
func (r *Runner) Run(effects []Effect) ([]Event, []Delayed) {
	var events []Event
	var delayed []Delayed

	for _, eff := range effects {
		switch eff := eff.(type) {
		case Delayed:
			delayed = append(delayed, eff)
		case CreateBufferWindow:
			if ev := r.createBufferWindow(eff); ev != nil {
				events = append(events, ev)
			}
		case SetDetachedChrome:
			r.setDetachedChrome(eff.WindowID)
		case RestoreWindowDragState:
			r.restoreWindowDragState(eff.WindowID)
		case SetClickThrough:
			if r.ops.WindowExists(eff.WindowID) {
				r.warnErr(r.ops.SetClickThrough(eff.WindowID, eff.Enabled))
			}
		case HideBufferWindow:
			r.hideBufferWindow(eff)
		case HideWindow:
			if r.ops.WindowExists(eff.WindowID) {
				r.warnErr(r.ops.HideWindow(eff.WindowID))
			}
		case ShowWindow:
			if r.ops.WindowExists(eff.WindowID) {
				r.warnErr(r.ops.ShowWindow(eff.WindowID))
			}
		case FocusWindow:
			if r.ops.WindowExists(eff.WindowID) {
				r.warnErr(r.ops.FocusWindow(eff.WindowID))
			}
		case MarkBuffer:
			r.ops.MarkBuffer(eff.WindowID, eff.Buffer)
		case RefreshPointer:
			if ev := r.refreshPointer(eff); ev != nil {
				events = append(events, ev)
			}
		case ReindexTab:
			if ev := r.reindexTab(eff); ev != nil {
				events = append(events, ev)
			}
		case MoveTabToWindow:
			r.moveTabToWindow(eff)
		case MatchWindowBounds:
			if r.ops.WindowExists(eff.WindowID) && r.ops.WindowExists(eff.TargetID) {
				r.warnErr(r.ops.MatchWindowBounds(eff.WindowID, eff.TargetID))
			}
		case MoveWindowForDrag:
			r.moveWindowForDrag(eff)
		default:
			r.log.Warnf("drag: unknown effect %T skipped", eff)
		}
	}

	return events, delayed
}

func (r *Runner) createBufferWindow(eff CreateBufferWindow) Event {
	id, err := r.ops.CreateBufferWindow()
	if err != nil {
		r.log.Errorf("drag: create buffer window: %v", err)
		return nil
	}
	r.ops.MarkBuffer(id, true)
	if r.ops.WindowExists(eff.MatchWindowID) {
		r.warnErr(r.ops.MatchWindowBounds(id, eff.MatchWindowID))
	}
	return bufferWindowCreated{WindowID: id}
}

func (r *Runner) setDetachedChrome(windowID string) {
	if !r.ops.WindowExists(windowID) {
		r.log.Warnf("drag: detached chrome target %s is gone", windowID)
		return
	}
	if r.chrome.ClickThrough {
		r.warnErr(r.ops.SetClickThrough(windowID, true))
	}
	if r.chrome.AlwaysOnTop {
		r.warnErr(r.ops.SetAlwaysOnTop(windowID, true))
	}
	if !r.chrome.ClickThrough {
		// Pass-through is unavailable on this platform; cross-window hover
		// relies on shell-side hit testing only.
		r.log.Infof("drag: no native pass-through on this platform")
	}
}

func (r *Runner) restoreWindowDragState(windowID string) {
	if !r.ops.WindowExists(windowID) {
		r.log.Warnf("drag: restore target %s is gone", windowID)
		return
	}
	r.warnErr(r.ops.SetClickThrough(windowID, false))
	r.warnErr(r.ops.SetAlwaysOnTop(windowID, false))
}

func (r *Runner) hideBufferWindow(eff HideBufferWindow) {
	if !r.ops.WindowExists(eff.WindowID) {
		r.log.Warnf("drag: buffer window %s is gone", eff.WindowID)
		return
	}
	if !r.ops.WindowVisible(eff.WindowID) {
		if eff.WarnIfHidden {
			r.log.Warnf("drag: buffer window %s already hidden", eff.WindowID)
		}
		return
	}
	r.warnErr(r.ops.SetClickThrough(eff.WindowID, false))
	r.warnErr(r.ops.HideWindow(eff.WindowID))
}

func (r *Runner) refreshPointer(eff RefreshPointer) Event {
	bounds, ok := r.ops.WindowBounds(eff.WindowID)
	if !ok {
		r.log.Warnf("drag: pointer refresh target %s is gone", eff.WindowID)
		return nil
	}
	cursorX, cursorY := r.ops.CursorPosition()
	clientX, clientY := geometry.ClientFromScreen(cursorX, cursorY, bounds.X, bounds.Y, eff.Frame)
	return pointerRefreshed{ClientX: clientX, ClientY: clientY}
}

func (r *Runner) reindexTab(eff ReindexTab) Event {
	owner, ok := r.ops.TabOwner(eff.TabID)
	if !ok || owner != eff.ExpectWindowID {
		// The tab moved between commit and execution.
		return nil
	}
	if err := r.ops.ReindexTab(eff.TabID, eff.Index); err != nil {
		r.log.Warnf("drag: reindex tab %s: %v", eff.TabID, err)
		return nil
	}
	return tabReindexed{TabID: eff.TabID, Index: eff.Index}
}

func (r *Runner) moveTabToWindow(eff MoveTabToWindow) {
	if !r.ops.WindowExists(eff.WindowID) {
		r.log.Warnf("drag: move target window %s is gone", eff.WindowID)
		return
	}
	if err := r.ops.MoveTabToWindow(eff.TabID, eff.WindowID, eff.Index); err != nil {
		r.log.Warnf("drag: move tab %s to %s: %v", eff.TabID, eff.WindowID, err)
	}
}

func (r *Runner) moveWindowForDrag(eff MoveWindowForDrag) {
	if !r.ops.WindowExists(eff.WindowID) {
		r.log.Warnf("drag: move target window %s is gone", eff.WindowID)
		return
	}
	cursorX, cursorY := r.ops.CursorPosition()
	x, y := geometry.WindowOriginForCursor(cursorX, cursorY, eff.RelX, eff.RelY, eff.Frame, eff.TabY)
	r.warnErr(r.ops.SetWindowPosition(eff.WindowID, x, y))
}

func (r *Runner) warnErr(err error) {
	if err != nil {
		r.log.Warnf("drag: %v", err)
	}
}
