package drag

import (
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/geometry"
)

// Logger is the subset of the shell's logging the drag subsystem needs.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Store is the single authoritative drag state machine. It owns the Session
// exclusively; no other component writes it.
type Store struct {
	session *Session
	log     Logger
}

// NewStore returns a store with no active session.
func NewStore(log Logger) *Store {
	return &Store{log: log}
}

// Session returns the active session, or nil. Callers must treat it as
// read-only.
func (s *Store) Session() *Session {
	return s.session
}

// Active reports whether a drag is in progress.
func (s *Store) Active() bool {
	return s.session != nil
}

// Apply runs one transition. It mutates the session synchronously and returns
// the effects to execute after commit. Stale or invalid events return nil.
func (s *Store) Apply(ev Event) []Effect {
	switch ev := ev.(type) {
	case StateRestored:
		return s.applyStateRestored()
	case DragStarted:
		return s.applyDragStarted(ev)
	case DragCancelled:
		return s.applyDragCancelled()
	case DragComplete:
		return s.applyDragComplete()
	case ChangeDisplayIndexRequested:
		return s.applyChangeDisplayIndex(ev)
	case TabAttached:
		return s.applyTabAttached(ev)
	case SingleTabWindowMoved:
		return s.applySingleTabWindowMoved(ev)
	case MouseOverOtherWindowTab:
		return s.applyMouseOverOtherWindowTab(ev)
	case DetachRequested:
		return s.applyDetachRequested(ev)
	case bufferWindowCreated:
		return s.applyBufferWindowCreated(ev)
	case pointerRefreshed:
		return s.applyPointerRefreshed(ev)
	case tabReindexed:
		return s.applyTabReindexed(ev)
	default:
		s.log.Warnf("drag: unknown event %T dropped", ev)
		return nil
	}
}

func (s *Store) applyStateRestored() []Effect {
	if s.session != nil {
		s.log.Warnf("drag: discarding leftover session for tab %s on restore", s.session.SourceTabID)
		s.session = nil
	}
	return nil
}

func (s *Store) applyDragStarted(ev DragStarted) []Effect {
	if s.session != nil {
		s.log.Warnf("drag: DragStarted while session for tab %s active, replacing", s.session.SourceTabID)
	}

	frame := geometry.FrameOffsets(ev.WinScreenX, ev.WinScreenY,
		ev.PointerScreenX, ev.PointerScreenY, ev.PointerClientX, ev.PointerClientY)

	s.session = &Session{
		SourceTabID:           ev.TabID,
		OriginalWindowID:      ev.WindowID,
		CurrentWindowID:       ev.WindowID,
		OriginClientX:         ev.PointerClientX,
		OriginClientY:         ev.PointerClientY,
		OriginScreenX:         ev.PointerScreenX,
		OriginScreenY:         ev.PointerScreenY,
		Frame:                 frame,
		RelativeXDragStart:    ev.RelativeX,
		RelativeYDragStart:    ev.RelativeY,
		DragWindowClientX:     ev.PointerClientX,
		DragWindowClientY:     ev.PointerClientY,
		DisplayIndexRequested: -1,
		TabWidth:              ev.TabWidth,
	}

	if ev.SingleTab {
		// The whole window follows the cursor; pointer events must pass
		// through it so the window underneath can see them.
		s.session.DragDetachedWindowID = ev.WindowID
		return []Effect{SetDetachedChrome{WindowID: ev.WindowID}}
	}

	// Multi-tab source: pre-create a hidden spare so a later detach does not
	// pay window-creation latency mid-drag.
	return []Effect{CreateBufferWindow{MatchWindowID: ev.WindowID}}
}

func (s *Store) applyDragCancelled() []Effect {
	sess := s.session
	if sess == nil {
		s.log.Infof("drag: DragCancelled with no session")
		return nil
	}
	s.session = nil

	var effects []Effect
	if sess.DragDetachedWindowID != "" {
		effects = append(effects, RestoreWindowDragState{WindowID: sess.DragDetachedWindowID})
	}
	if sess.BufferWindowID != "" {
		effects = append(effects, HideBufferWindow{WindowID: sess.BufferWindowID})
	}
	return effects
}

func (s *Store) applyDragComplete() []Effect {
	sess := s.session
	if sess == nil {
		s.log.Infof("drag: DragComplete with no session")
		return nil
	}
	s.session = nil

	var effects []Effect
	if sess.DragDetachedWindowID == "" {
		s.log.Warnf("drag: DragComplete with no detached window recorded")
	} else {
		effects = append(effects,
			RestoreWindowDragState{WindowID: sess.DragDetachedWindowID},
			FocusWindow{WindowID: sess.DragDetachedWindowID},
		)
	}
	if sess.BufferWindowID != "" {
		effects = append(effects,
			RestoreWindowDragState{WindowID: sess.BufferWindowID},
			HideBufferWindow{WindowID: sess.BufferWindowID, WarnIfHidden: true},
		)
	}
	return effects
}

func (s *Store) applyChangeDisplayIndex(ev ChangeDisplayIndexRequested) []Effect {
	sess := s.session
	if sess == nil || sess.SourceTabID == "" {
		s.log.Infof("drag: index change with no session, dropped")
		return nil
	}
	if sess.Pending != PendingNone {
		// A cross-window transition is in flight; the confirming window
		// re-fires the triggering condition afterwards.
		return nil
	}
	if ev.SenderWindowID != sess.CurrentWindowID {
		// Stale event from a window that no longer owns the drag.
		return nil
	}
	if ev.DestinationDisplayIndex == sess.DisplayIndexRequested {
		return nil
	}

	sess.DisplayIndexRequested = ev.DestinationDisplayIndex

	var effects []Effect
	if ev.RequiresMouseUpdate {
		effects = append(effects, RefreshPointer{WindowID: sess.CurrentWindowID, Frame: sess.Frame})
	}
	effects = append(effects, ReindexTab{
		TabID:          sess.SourceTabID,
		Index:          ev.DestinationFrameIndex,
		ExpectWindowID: sess.CurrentWindowID,
	})
	return effects
}

func (s *Store) applyTabAttached(ev TabAttached) []Effect {
	sess := s.session
	if sess == nil || ev.TabID != sess.SourceTabID {
		return nil
	}

	switch sess.Pending {
	case PendingAttach:
		if ev.WindowID != sess.PendingWindowID {
			// Early or stale confirmation.
			return nil
		}
		sess.Pending = PendingNone
		sess.PendingWindowID = ""
		sess.CurrentWindowID = ev.WindowID
		sess.DragDetachedWindowID = ""
		sess.DisplayIndexRequested = -1
		return []Effect{RefreshPointer{WindowID: ev.WindowID, Frame: sess.Frame}}

	case PendingDetach:
		if ev.WindowID != sess.PendingWindowID {
			return nil
		}
		sess.Pending = PendingNone
		sess.PendingWindowID = ""
		sess.CurrentWindowID = ev.WindowID
		sess.DragDetachedWindowID = ev.WindowID
		sess.BufferWindowID = ""
		sess.DisplayIndexRequested = -1
		return []Effect{RefreshPointer{WindowID: ev.WindowID, Frame: sess.Frame}}

	default:
		// Already matching: re-delivered confirmation, no-op.
		return nil
	}
}

func (s *Store) applySingleTabWindowMoved(ev SingleTabWindowMoved) []Effect {
	sess := s.session
	if sess == nil {
		return nil
	}
	if sess.Pending != PendingNone {
		return nil
	}
	if ev.WindowID != sess.CurrentWindowID {
		// Stale event from a just-left window.
		return nil
	}

	return []Effect{
		MoveWindowForDrag{
			WindowID: ev.WindowID,
			RelX:     sess.RelativeXDragStart,
			RelY:     sess.RelativeYDragStart,
			Frame:    sess.Frame,
		},
		// A short transparency pulse lets the window underneath capture the
		// next mouse move, which is how cross-window hover is detected.
		SetClickThrough{WindowID: ev.WindowID, Enabled: true},
		Delayed{
			After:   config.ClickThroughPulse,
			Effects: []Effect{SetClickThrough{WindowID: ev.WindowID, Enabled: false}},
		},
	}
}

func (s *Store) applyMouseOverOtherWindowTab(ev MouseOverOtherWindowTab) []Effect {
	sess := s.session
	if sess == nil {
		s.log.Infof("drag: mouseover with no session, dropped")
		return nil
	}
	if sess.Pending != PendingNone {
		return nil
	}
	if ev.FrameIndex < 0 {
		s.log.Infof("drag: mouseover without frame index, dropped")
		return nil
	}
	if sess.DragDetachedWindowID == "" || ev.SenderWindowID == sess.CurrentWindowID {
		// Only meaningful while a detached single-tab window hovers a
		// different window's strip.
		return nil
	}

	formerWindow := sess.CurrentWindowID
	sess.Pending = PendingAttach
	sess.PendingWindowID = ev.SenderWindowID
	// The former single-tab window becomes the reusable buffer.
	sess.BufferWindowID = formerWindow

	return []Effect{
		MarkBuffer{WindowID: formerWindow, Buffer: true},
		RestoreWindowDragState{WindowID: formerWindow},
		HideWindow{WindowID: formerWindow},
		FocusWindow{WindowID: ev.SenderWindowID},
		MoveTabToWindow{TabID: sess.SourceTabID, WindowID: ev.SenderWindowID, Index: ev.FrameIndex},
		MatchWindowBounds{WindowID: formerWindow, TargetID: ev.SenderWindowID},
	}
}

func (s *Store) applyDetachRequested(ev DetachRequested) []Effect {
	sess := s.session
	if sess == nil {
		s.log.Infof("drag: detach with no session, dropped")
		return nil
	}
	if sess.Pending != PendingNone {
		return nil
	}
	if sess.BufferWindowID == "" {
		s.log.Warnf("drag: detach requested but no buffer window exists")
		return nil
	}

	buffer := sess.BufferWindowID
	sess.Pending = PendingDetach
	sess.PendingWindowID = buffer
	sess.DetachedFromWindowID = sess.CurrentWindowID
	sess.DetachedFromTabX = ev.TabX
	sess.DetachedFromTabY = ev.TabY

	return []Effect{
		MoveTabToWindow{TabID: sess.SourceTabID, WindowID: buffer, Index: 0},
		Delayed{
			After: config.DetachShowDelay,
			Effects: []Effect{
				MoveWindowForDrag{
					WindowID: buffer,
					RelX:     sess.RelativeXDragStart,
					RelY:     sess.RelativeYDragStart,
					Frame:    sess.Frame,
				},
				SetDetachedChrome{WindowID: buffer},
				ShowWindow{WindowID: buffer},
			},
		},
	}
}

func (s *Store) applyBufferWindowCreated(ev bufferWindowCreated) []Effect {
	if s.session == nil {
		// The drag ended before the spare was ready; hide it again.
		return []Effect{HideBufferWindow{WindowID: ev.WindowID}}
	}
	s.session.BufferWindowID = ev.WindowID
	return nil
}

func (s *Store) applyPointerRefreshed(ev pointerRefreshed) []Effect {
	if s.session == nil {
		return nil
	}
	s.session.DragWindowClientX = ev.ClientX
	s.session.DragWindowClientY = ev.ClientY
	return nil
}

func (s *Store) applyTabReindexed(ev tabReindexed) []Effect {
	sess := s.session
	if sess == nil || ev.TabID != sess.SourceTabID {
		return nil
	}
	sess.DisplayIndexRequested = -1
	return nil
}
