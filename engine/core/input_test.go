package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type cursorRecorder struct {
	modes []CursorMode
}

func (c *cursorRecorder) SetCursorMode(mode CursorMode) {
	c.modes = append(c.modes, mode)
}

func TestInputKeyLatching(t *testing.T) {
	in := NewInput(nil)

	in.ProcessKey(KEY_A, true)
	if !in.IsKeyDown(KEY_A) {
		t.Error("IsKeyDown() = false right after ProcessKey")
	}
	if in.IsKeyPressed(KEY_A) {
		t.Error("IsKeyPressed() = true before Update")
	}

	in.Update()
	if !in.IsKeyPressed(KEY_A) {
		t.Error("IsKeyPressed() = false after Update")
	}
	if in.WasKeyDown(KEY_A) {
		t.Error("WasKeyDown() = true on the first frame")
	}

	in.Update()
	if in.IsKeyPressed(KEY_A) {
		t.Error("IsKeyPressed() still true on the second frame")
	}
	if !in.WasKeyDown(KEY_A) {
		t.Error("WasKeyDown() = false on the second frame")
	}

	in.ProcessKey(KEY_A, false)
	in.Update()
	if !in.IsKeyReleased(KEY_A) {
		t.Error("IsKeyReleased() = false")
	}
	if !in.IsKeyUp(KEY_A) {
		t.Error("IsKeyUp() = false")
	}
}

func TestInputTapWithinOneFrame(t *testing.T) {
	type edges struct {
		KeyDown, KeyPressed, KeyReleased bool
		ButtonDown, ButtonPressed        bool
	}
	in := NewInput(nil)
	in.ProcessKey(KEY_SPACE, true)
	in.ProcessKey(KEY_SPACE, false)
	in.ProcessButton(BUTTON_LEFT, true)
	in.ProcessButton(BUTTON_LEFT, false)

	var got []edges
	for i := 0; i < 2; i++ {
		in.Update()
		got = append(got, edges{
			KeyDown:       in.IsKeyDown(KEY_SPACE),
			KeyPressed:    in.IsKeyPressed(KEY_SPACE),
			KeyReleased:   in.IsKeyReleased(KEY_SPACE),
			ButtonDown:    in.IsMouseDown(BUTTON_LEFT),
			ButtonPressed: in.IsMousePressed(BUTTON_LEFT),
		})
	}
	want := []edges{
		{KeyPressed: true, KeyReleased: true, ButtonPressed: true},
		{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestInputResetDropsPendingTap(t *testing.T) {
	in := NewInput(nil)
	in.ProcessKey(KEY_A, true)
	in.ProcessButton(BUTTON_RIGHT, true)
	in.Reset()
	in.Update()
	if in.IsKeyPressed(KEY_A) || in.IsMousePressed(BUTTON_RIGHT) {
		t.Error("Reset should drop presses not yet latched")
	}
}

func TestInputOutOfRange(t *testing.T) {
	in := NewInput(nil)
	in.ProcessKey(KEYS_MAX_KEYS, true)
	in.ProcessButton(BUTTON_MAX_BUTTONS, true)
	in.Update()
	if in.IsKeyDown(KEYS_MAX_KEYS) || in.IsKeyPressed(KEYS_MAX_KEYS) || in.WasKeyDown(KEYS_MAX_KEYS) {
		t.Error("out of range key reported down")
	}
	if in.IsMouseDown(BUTTON_MAX_BUTTONS) || in.IsMousePressed(BUTTON_MAX_BUTTONS) {
		t.Error("out of range button reported down")
	}
}

func TestInputFiresEvents(t *testing.T) {
	eb := NewEventBus()
	in := NewInput(eb)
	var got []EventCode
	for _, code := range []EventCode{
		EVENT_CODE_KEY_PRESSED, EVENT_CODE_KEY_RELEASED,
		EVENT_CODE_BUTTON_PRESSED, EVENT_CODE_BUTTON_RELEASED,
		EVENT_CODE_MOUSE_MOVED, EVENT_CODE_MOUSE_WHEEL,
	} {
		eb.Register(code, nil, func(ctx EventContext) bool {
			if ctx.Sender != in {
				t.Errorf("event %d sender = %v, want the input system", ctx.Type, ctx.Sender)
			}
			got = append(got, ctx.Type)
			return false
		})
	}

	in.ProcessKey(KEY_A, true)
	in.ProcessKey(KEY_A, true) // unchanged, no event
	in.ProcessKey(KEY_A, false)
	in.ProcessButton(BUTTON_LEFT, true)
	in.ProcessButton(BUTTON_LEFT, false)
	in.ProcessMouseMove(10, 10) // first position only seeds
	in.ProcessMouseMove(12, 10)
	in.ProcessMouseMove(12, 10) // unchanged, no event
	in.ProcessMouseWheel(1)

	want := []EventCode{
		EVENT_CODE_KEY_PRESSED, EVENT_CODE_KEY_RELEASED,
		EVENT_CODE_BUTTON_PRESSED, EVENT_CODE_BUTTON_RELEASED,
		EVENT_CODE_MOUSE_MOVED, EVENT_CODE_MOUSE_WHEEL,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestInputMouse(t *testing.T) {
	in := NewInput(nil)
	in.SetWindowSize(100, 100)

	in.ProcessMouseMove(50, 50)
	in.Update()
	if dx, dy := in.MouseMove(); dx != 0 || dy != 0 {
		t.Errorf("MouseMove() = %d,%d after seeding, want 0,0", dx, dy)
	}

	in.ProcessMouseMove(95, 5)
	in.ProcessMouseWheel(1.5)
	in.ProcessMouseWheel(-0.5)
	in.ProcessButton(BUTTON_RIGHT, true)
	in.Update()

	if dx, dy := in.MouseMove(); dx != 45 || dy != -45 {
		t.Errorf("MouseMove() = %d,%d, want 45,-45", dx, dy)
	}
	if x, y := in.MousePosition(); x != 95 || y != 5 {
		t.Errorf("MousePosition() = %d,%d, want 95,5", x, y)
	}
	if x, y := in.PreviousMousePosition(); x != 50 || y != 50 {
		t.Errorf("PreviousMousePosition() = %d,%d, want 50,50", x, y)
	}
	if got := in.MouseWheel(); got != 1 {
		t.Errorf("MouseWheel() = %v, want 1", got)
	}
	if !in.IsMousePressed(BUTTON_RIGHT) || !in.IsMouseDown(BUTTON_RIGHT) {
		t.Error("right button not pressed")
	}
	edges := []bool{in.IsMouseLeftEdge(), in.IsMouseRightEdge(), in.IsMouseTopEdge(), in.IsMouseBottomEdge()}
	if diff := cmp.Diff([]bool{false, true, true, false}, edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}

	in.Update()
	if got := in.MouseWheel(); got != 0 {
		t.Errorf("MouseWheel() = %v on the next frame, want 0", got)
	}
	if in.IsMousePressed(BUTTON_RIGHT) {
		t.Error("IsMousePressed() still true on the next frame")
	}
	if !in.WasMouseDown(BUTTON_RIGHT) {
		t.Error("WasMouseDown() = false")
	}
}

func TestInputCursor(t *testing.T) {
	in := NewInput(nil)
	in.ShowSystemCursor(false) // no cursor attached yet

	cc := &cursorRecorder{}
	in.AttachCursor(cc)
	in.ShowSystemCursor(false)
	in.SetMouseClipToWindow(true)
	in.SetMouseClipToWindow(false)
	in.ShowSystemCursor(true)

	want := []CursorMode{CursorHidden, CursorDisabled, CursorNormal, CursorNormal}
	if diff := cmp.Diff(want, cc.modes); diff != "" {
		t.Errorf("cursor modes mismatch (-want +got):\n%s", diff)
	}
	if in.IsMouseClipToWindow() {
		t.Error("IsMouseClipToWindow() = true")
	}
}

func TestInputReset(t *testing.T) {
	in := NewInput(nil)
	in.ProcessKey(KEY_ESCAPE, true)
	in.ProcessButton(BUTTON_MIDDLE, true)
	in.Reset()
	if in.IsKeyDown(KEY_ESCAPE) || in.IsMouseDown(BUTTON_MIDDLE) {
		t.Error("Reset() kept pressed keys")
	}
}

func TestKeyNames(t *testing.T) {
	tests := []struct {
		key  KeyCode
		want string
	}{
		{KEY_A, "A"},
		{KEY_0 + 7, "7"},
		{KEY_F1 + 4, "F5"},
		{KEY_ESCAPE, "Escape"},
		{KeyCode(0xFF), "Key(0xFF)"},
	}
	for _, tt := range tests {
		if got := tt.key.String(); got != tt.want {
			t.Errorf("KeyCode(0x%02X).String() = %q, want %q", uint16(tt.key), got, tt.want)
		}
	}
	if got := BUTTON_MIDDLE.String(); got != "Middle" {
		t.Errorf("BUTTON_MIDDLE.String() = %q", got)
	}
}
