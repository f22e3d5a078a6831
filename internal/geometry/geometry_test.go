package geometry

import "testing"

func TestFrameOffsets(t *testing.T) {
	tests := []struct {
		name                           string
		winX, winY                     int
		pScreenX, pScreenY             int
		pClientX, pClientY             int
		wantTop, wantLeft              int
	}{
		{
			name:     "typical chrome",
			winX:     100, winY: 200,
			pScreenX: 150, pScreenY: 260,
			pClientX: 48, pClientY: 30,
			wantTop:  30, wantLeft: 2,
		},
		{
			name:     "no chrome",
			winX:     0, winY: 0,
			pScreenX: 40, pScreenY: 40,
			pClientX: 40, pClientY: 40,
			wantTop:  0, wantLeft: 0,
		},
		{
			name:     "negative window origin",
			winX:     -50, winY: -10,
			pScreenX: 0, pScreenY: 30,
			pClientX: 48, pClientY: 10,
			wantTop:  30, wantLeft: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FrameOffsets(tt.winX, tt.winY, tt.pScreenX, tt.pScreenY, tt.pClientX, tt.pClientY)
			if got.Top != tt.wantTop || got.Left != tt.wantLeft {
				t.Errorf("FrameOffsets() = {Top:%d Left:%d}, want {Top:%d Left:%d}",
					got.Top, got.Left, tt.wantTop, tt.wantLeft)
			}
		})
	}
}

func TestWindowOriginForCursor(t *testing.T) {
	frame := Offsets{Top: 30, Left: 2}

	x, y := WindowOriginForCursor(500, 400, 40, 10, frame, 0)
	if x != 458 || y != 360 {
		t.Errorf("WindowOriginForCursor() = (%d, %d), want (458, 360)", x, y)
	}

	// Strip below a toolbar: tabY shifts the window further up.
	x, y = WindowOriginForCursor(500, 400, 40, 10, frame, 24)
	if x != 458 || y != 336 {
		t.Errorf("WindowOriginForCursor() with tabY = (%d, %d), want (458, 336)", x, y)
	}
}

func TestClientScreenRoundTrip(t *testing.T) {
	frame := Offsets{Top: 30, Left: 2}
	winX, winY := 120, 80

	sx, sy := ScreenFromClient(48, 10, winX, winY, frame)
	if sx != 170 || sy != 120 {
		t.Errorf("ScreenFromClient() = (%d, %d), want (170, 120)", sx, sy)
	}

	cx, cy := ClientFromScreen(sx, sy, winX, winY, frame)
	if cx != 48 || cy != 10 {
		t.Errorf("ClientFromScreen() = (%d, %d), want (48, 10)", cx, cy)
	}
}

func TestDraggedTabStaysUnderCursor(t *testing.T) {
	// Moving the window to WindowOriginForCursor must place the grab point
	// exactly at the cursor.
	frame := Offsets{Top: 30, Left: 2}
	relX, relY := 33, 12
	tabY := 8

	for _, cursor := range []struct{ x, y int }{{0, 0}, {640, 480}, {1919, 1079}} {
		winX, winY := WindowOriginForCursor(cursor.x, cursor.y, relX, relY, frame, tabY)
		grabX, grabY := ScreenFromClient(relX, tabY+relY, winX, winY, frame)
		if grabX != cursor.x || grabY != cursor.y {
			t.Errorf("cursor (%d,%d): grab point at (%d,%d)", cursor.x, cursor.y, grabX, grabY)
		}
	}
}
