// Package geometry provides pure coordinate math for the drag subsystem.
//
// All values are pixels. Screen coordinates are absolute; client coordinates
// are relative to a window's content area, which sits inside the window frame
// (title bar and left border).
package geometry

// Offsets holds the frame chrome thickness of a window: the distance from the
// window's screen origin to its content-area origin.
type Offsets struct {
	Top  int
	Left int
}

// FrameOffsets derives the frame chrome thickness from one simultaneous
// observation of a pointer in both coordinate spaces.
func FrameOffsets(winScreenX, winScreenY, pointerScreenX, pointerScreenY, pointerClientX, pointerClientY int) Offsets {
	return Offsets{
		Top:  pointerScreenY - winScreenY - pointerClientY,
		Left: pointerScreenX - winScreenX - pointerClientX,
	}
}

// WindowOriginForCursor returns the screen origin a window must move to so
// that the grab point of a dragged tab stays under the cursor. relX and relY
// are the cursor's offset inside the tab when the drag started; tabY is the
// tab strip's vertical position in client coordinates.
func WindowOriginForCursor(cursorScreenX, cursorScreenY, relX, relY int, frame Offsets, tabY int) (x, y int) {
	x = cursorScreenX - relX - frame.Left
	y = cursorScreenY - relY - frame.Top - tabY
	return x, y
}

// ClientFromScreen converts a screen point to a window's client space.
func ClientFromScreen(screenX, screenY, winScreenX, winScreenY int, frame Offsets) (x, y int) {
	return screenX - winScreenX - frame.Left, screenY - winScreenY - frame.Top
}

// ScreenFromClient converts a point in a window's client space to screen space.
func ScreenFromClient(clientX, clientY, winScreenX, winScreenY int, frame Offsets) (x, y int) {
	return clientX + winScreenX + frame.Left, clientY + winScreenY + frame.Top
}
