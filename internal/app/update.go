package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/tabshell/tabshell/internal/config"
	"github.com/tabshell/tabshell/internal/drag"
	"github.com/tabshell/tabshell/internal/dragctl"
	"github.com/tabshell/tabshell/internal/strip"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// PageChangeMsg fires when a debounced strip page change elapses. A stale
// generation means a later pointer move cancelled or replaced the change.
type PageChangeMsg struct {
	WindowID   string
	Generation int
}

// DetachConfirmMsg fires the zero-delay detach confirmation for a window
// whose drag controller armed a detach.
type DetachConfirmMsg struct {
	WindowID   string
	Generation int
}

// EffectBatchMsg delivers a delayed drag effect batch back to the runner.
type EffectBatchMsg struct {
	Effects []drag.Effect
}

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without
// creating a circular dependency.
type InputHandler func(msg tea.Msg, s *Shell) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// Init starts the tick loop and resets any stale drag state. Drag sessions
// are never persisted, so a restore always begins drag-idle.
func (s *Shell) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd()}
	if cmd := s.DispatchDragEvent(drag.StateRestored{}); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// TickCmd creates a command that generates tick messages at 60 FPS.
// This drives the main update loop for animations and drag visuals.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.NormalFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// SlowTickCmd creates a command that generates tick messages at 30 FPS.
// Used during user interactions to improve responsiveness.
func SlowTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.InteractionFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// IdleTickCmd creates a command that generates tick messages at 10 FPS.
// Used when the shell has been idle for a sustained period to reduce CPU.
func IdleTickCmd() tea.Cmd {
	return tea.Tick(time.Second/config.IdleFPS, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Update handles all incoming messages and updates the application state.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Any non-tick message invalidates the render cache
	if _, isTick := msg.(TickerMsg); !isTick {
		s.renderSkipped = false
	}

	switch msg := msg.(type) {
	case TickerMsg:
		// Open every drag controller's frame gate for the next evaluation.
		for _, w := range s.Windows {
			w.Drag.Tick()
		}

		s.UpdateAnimations()
		s.CleanupNotifications()

		if config.DockbarPosition != "hidden" {
			s.UpdateSystemStats()
		}

		hasChanges := s.hasRenderWork()
		hasAnimations := s.HasActiveAnimations()

		// Adaptive polling - slower during interactions for better mouse
		// responsiveness, slower still when nothing is happening.
		nextTick := TickCmd()
		if s.InteractionMode {
			nextTick = SlowTickCmd()
			s.idleFrames = 0
		} else if hasChanges || hasAnimations {
			s.idleFrames = 0
		} else {
			s.idleFrames++
			if s.idleFrames >= config.IdleThresholdFrames {
				nextTick = IdleTickCmd()
			}
		}

		// Frame skipping: reuse the cached view when nothing changed.
		s.renderSkipped = !hasChanges && !hasAnimations && !s.InteractionMode && len(s.Windows) > 0
		return s, nextTick

	case PageChangeMsg:
		w := s.WindowByID(msg.WindowID)
		if w == nil {
			return s, nil
		}
		total := len(s.Tabs.UnpinnedFor(w.ID))
		oldPage := w.Strip.Page()
		newPage, ok := w.Strip.CommitPageChange(msg.Generation)
		if !ok {
			return s, nil
		}
		w.ContentDirty = true

		// Land the dragged tab on the boundary slot of the new page nearest
		// the page it came from, with fresh pointer coordinates.
		layout := w.Strip.Layout(total)
		dest := layout.FirstTabDisplayIndex
		if newPage < oldPage {
			dest = layout.LastDisplayIndex()
		}
		return s, s.DispatchDragEvent(drag.ChangeDisplayIndexRequested{
			SenderWindowID:          w.ID,
			DestinationDisplayIndex: dest,
			DestinationFrameIndex:   s.FrameIndexFor(w.ID, dest),
			RequiresMouseUpdate:     true,
		})

	case DetachConfirmMsg:
		w := s.WindowByID(msg.WindowID)
		if w == nil {
			return s, nil
		}
		intent := w.Drag.ConfirmDetach(msg.Generation)
		if intent == nil {
			return s, nil
		}
		return s, s.DispatchDragEvent(drag.DetachRequested{TabX: intent.TabX, TabY: intent.TabY})

	case EffectBatchMsg:
		return s, s.runDragEffects(msg.Effects)

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg:
		// Reset idle counter on any user input to restore full tick rate
		s.idleFrames = 0
		if inputHandler != nil {
			return inputHandler(msg, s)
		}
		return s, nil

	case tea.WindowSizeMsg:
		shrank := msg.Width < s.Width || msg.Height < s.Height
		s.Width = msg.Width
		s.Height = msg.Height
		s.MarkAllDirty()
		if shrank {
			s.ClampWindowsToView()
		}
		return s, nil

	case tea.MouseMsg:
		// Catch-all for any other mouse events to prevent them from leaking
		return s, nil
	}

	return s, nil
}

// DispatchDragEvent applies one event to the drag store, executes the
// resulting effects and feeds completion events back until the loop drains.
func (s *Shell) DispatchDragEvent(ev drag.Event) tea.Cmd {
	cmd := s.runDragEffects(s.Store.Apply(ev))

	// An attach confirmation hands the drag to a new window; arm its
	// controller and replay the last pointer position so the visual catches
	// up without a physical mouse move.
	if at, ok := ev.(drag.TabAttached); ok {
		if replay := s.replayAfterAttach(at); replay != nil {
			cmd = batchCmds(cmd, replay)
		}
	}
	return cmd
}

// runDragEffects executes an effect batch, schedules delayed batches on the
// tick loop and dispatches completion events recursively.
func (s *Shell) runDragEffects(effects []drag.Effect) tea.Cmd {
	if len(effects) == 0 && len(s.queuedDragEvents) == 0 {
		return nil
	}

	var cmds []tea.Cmd
	events, delayed := s.Runner.Run(effects)
	for _, d := range delayed {
		cmds = append(cmds, scheduleEffects(d))
	}
	for _, ev := range events {
		if cmd := s.DispatchDragEvent(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	for len(s.queuedDragEvents) > 0 {
		ev := s.queuedDragEvents[0]
		s.queuedDragEvents = s.queuedDragEvents[1:]
		if cmd := s.DispatchDragEvent(ev); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return batchCmds(cmds...)
}

func scheduleEffects(d drag.Delayed) tea.Cmd {
	effects := d.Effects
	return tea.Tick(d.After, func(time.Time) tea.Msg {
		return EffectBatchMsg{Effects: effects}
	})
}

// replayAfterAttach re-arms the receiving window's drag controller after the
// dragged tab changed windows.
func (s *Shell) replayAfterAttach(at drag.TabAttached) tea.Cmd {
	sess := s.Store.Session()
	if sess == nil || sess.CurrentWindowID != at.WindowID || sess.SourceTabID != at.TabID {
		return nil
	}
	w := s.WindowByID(at.WindowID)
	if w == nil {
		return nil
	}

	// The press follows the tab. Retire the old window's controller so it
	// stops swallowing pointer motion, and re-point tracking at the window
	// that now owns the drag so release tears down the right controller.
	if s.TabPressWindowID != "" {
		if s.TabPressWindowID != at.WindowID {
			if old := s.WindowByID(s.TabPressWindowID); old != nil {
				old.Drag.Teardown()
				old.Strip.CancelPending()
				old.DragActive = false
				old.ContentDirty = true
			}
		}
		s.TabPressWindowID = at.WindowID
		s.TabPressTabID = at.TabID
	}

	w.Drag.Press(s.grabFor(w, sess), sess.DragWindowClientX, sess.DragWindowClientY)
	total := len(s.Tabs.UnpinnedFor(w.ID))
	res := w.Drag.OnAttachConfirmed(w.Strip.Layout(total), s.DisplayIndexOf(sess.SourceTabID), time.Now())
	return s.ProcessMoveResult(w, res)
}

// grabFor rebuilds a drag grab for a window that received the dragged tab
// mid-drag.
func (s *Shell) grabFor(w *Window, sess *drag.Session) dragctl.Grab {
	left, top, width, height := s.StripBoundsPx(w)
	return dragctl.Grab{
		WindowID:    w.ID,
		TabID:       sess.SourceTabID,
		SingleTab:   sess.DragDetachedWindowID == w.ID,
		StripLeft:   left,
		StripTop:    top,
		StripWidth:  width,
		StripHeight: height,
		TabWidth:    sess.TabWidth,
		RelX:        sess.RelativeXDragStart,
		RelY:        sess.RelativeYDragStart,
		TabBoxX:     left,
		TabBoxY:     top,
	}
}

// StripBoundsPx returns a window's tab strip rectangle in client pixels.
// The strip is the first content row inside the border.
func (s *Shell) StripBoundsPx(w *Window) (left, top, width, height int) {
	return 0, 0, cellsToPxX(max(w.Width-2, 0)), config.CellHeight
}

// ProcessMoveResult turns one drag controller evaluation into store events
// and scheduled confirmations.
func (s *Shell) ProcessMoveResult(w *Window, res dragctl.MoveResult) tea.Cmd {
	var cmds []tea.Cmd

	if w.Drag.State() == dragctl.Dragging || w.Drag.State() == dragctl.Detaching {
		w.DragActive = true
		w.DragTabLeft = res.TabLeft
		w.ContentDirty = true
	}

	if res.Started {
		cmds = append(cmds, s.emitDragStarted(w))
	}

	if res.Reorder != nil {
		total := len(s.Tabs.UnpinnedFor(w.ID))
		decision := w.Strip.RequestIndex(res.Reorder.DestinationIndex, total)
		switch decision.Outcome {
		case strip.ApplyNow:
			cmds = append(cmds, s.DispatchDragEvent(drag.ChangeDisplayIndexRequested{
				SenderWindowID:          w.ID,
				DestinationDisplayIndex: decision.Index,
				DestinationFrameIndex:   s.FrameIndexFor(w.ID, decision.Index),
			}))
		case strip.ClampAndSchedule:
			w.Drag.MarkIndexPending()
			cmds = append(cmds, s.DispatchDragEvent(drag.ChangeDisplayIndexRequested{
				SenderWindowID:          w.ID,
				DestinationDisplayIndex: decision.Index,
				DestinationFrameIndex:   s.FrameIndexFor(w.ID, decision.Index),
			}))
			winID := w.ID
			gen := decision.Generation
			cmds = append(cmds, tea.Tick(config.PageChangeDebounce, func(time.Time) tea.Msg {
				return PageChangeMsg{WindowID: winID, Generation: gen}
			}))
			w.ContentDirty = true
		}
	}

	if res.ArmDetach != nil {
		winID := w.ID
		gen := res.ArmDetach.Generation
		cmds = append(cmds, func() tea.Msg {
			return DetachConfirmMsg{WindowID: winID, Generation: gen}
		})
	}

	if res.WindowMove != nil {
		cmds = append(cmds, s.DispatchDragEvent(drag.SingleTabWindowMoved{
			TabX:     res.WindowMove.TabX,
			TabY:     res.WindowMove.TabY,
			WindowID: w.ID,
		}))
	}

	return batchCmds(cmds...)
}

// emitDragStarted captures the grab geometry and seeds the drag session.
func (s *Shell) emitDragStarted(w *Window) tea.Cmd {
	press := s.pressInfo
	clientX, clientY := s.clientFromCells(w, s.MouseX, s.MouseY)

	return s.DispatchDragEvent(drag.DragStarted{
		TabID:          press.TabID,
		WindowID:       w.ID,
		SingleTab:      press.SingleTab,
		WinScreenX:     cellsToPxX(w.X),
		WinScreenY:     cellsToPxY(w.Y),
		PointerScreenX: cellsToPxX(s.MouseX),
		PointerScreenY: cellsToPxY(s.MouseY),
		PointerClientX: clientX,
		PointerClientY: clientY,
		RelativeX:      press.RelX,
		RelativeY:      press.RelY,
		TabWidth:       press.TabWidth,
	})
}

// clientFromCells converts a cell position to a window's client pixels. The
// client origin is the first content cell inside the border.
func (s *Shell) clientFromCells(w *Window, cellX, cellY int) (int, int) {
	return cellsToPxX(cellX - w.X - 1), cellsToPxY(cellY - w.Y - 1)
}

// UpdateSystemStats samples CPU and RAM for the dock at a bounded rate.
func (s *Shell) UpdateSystemStats() {
	if time.Since(s.lastStats) < config.CPUUpdateInterval {
		return
	}
	s.lastStats = time.Now()

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		s.CPUHistory = append(s.CPUHistory, percents[0])
		if len(s.CPUHistory) > 30 {
			s.CPUHistory = s.CPUHistory[len(s.CPUHistory)-30:]
		}
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		s.RAMUsage = vm.UsedPercent
	}
}

func batchCmds(cmds ...tea.Cmd) tea.Cmd {
	var nonNil []tea.Cmd
	for _, cmd := range cmds {
		if cmd != nil {
			nonNil = append(nonNil, cmd)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return tea.Batch(nonNil...)
	}
}
