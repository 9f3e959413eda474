package core

// Pixels from a window border within which the cursor counts as on the edge.
const MouseEdgeThreshold = 10

type CursorMode uint8

const (
	CursorNormal CursorMode = iota
	CursorHidden
	// CursorDisabled hides the cursor and keeps it inside the window.
	CursorDisabled
)

// CursorController is implemented by windows that can change how the
// system cursor behaves.
type CursorController interface {
	SetCursorMode(mode CursorMode)
}

// Mouse state structure
type MouseState struct {
	X       int32
	Y       int32
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// Input keeps the live device state written by the window callbacks and a
// per-frame snapshot taken by Update. Edge queries (pressed/released) are
// relative to the previous snapshot.
type Input struct {
	events *EventBus
	cursor CursorController

	keyboardCurrent  KeyboardState
	keyboardLatched  KeyboardState
	keyboardPrevious KeyboardState
	keysPressed      KeyboardState
	keysReleased     KeyboardState

	// Transitions seen since the last Update, so a tap shorter than a
	// frame still yields one pressed and one released edge.
	keysWentDown KeyboardState
	keysWentUp   KeyboardState

	mouseCurrent    MouseState
	mouseLatched    MouseState
	mousePrevious   MouseState
	buttonsPressed  [BUTTON_MAX_BUTTONS]bool
	buttonsWentDown [BUTTON_MAX_BUTTONS]bool

	moveX, moveY int32
	pendingWheel float32
	wheel        float32

	windowWidth  int32
	windowHeight int32
	edgeLeft     bool
	edgeRight    bool
	edgeTop      bool
	edgeBottom   bool

	clipToWindow bool
	hasPosition  bool
}

// NewInput creates an input system. events may be nil, in which case no
// input events are fired.
func NewInput(events *EventBus) *Input {
	return &Input{events: events}
}

// AttachCursor lets the input system forward cursor changes to a window.
func (in *Input) AttachCursor(cc CursorController) {
	in.cursor = cc
}

// SetWindowSize is used for the mouse edge queries.
func (in *Input) SetWindowSize(width, height uint32) {
	in.windowWidth = int32(width)
	in.windowHeight = int32(height)
}

// Update latches the state recorded since the previous call. It runs once per
// frame after the window messages have been pumped.
func (in *Input) Update() {
	for i := range in.keyboardCurrent.Keys {
		curr := in.keyboardCurrent.Keys[i]
		last := in.keyboardLatched.Keys[i]
		in.keysPressed.Keys[i] = (curr && !last) || in.keysWentDown.Keys[i]
		in.keysReleased.Keys[i] = (!curr && last) || in.keysWentUp.Keys[i]
	}
	in.keyboardPrevious = in.keyboardLatched
	in.keyboardLatched = in.keyboardCurrent
	in.keysWentDown = KeyboardState{}
	in.keysWentUp = KeyboardState{}

	for i := range in.mouseCurrent.Buttons {
		in.buttonsPressed[i] = (in.mouseCurrent.Buttons[i] && !in.mouseLatched.Buttons[i]) || in.buttonsWentDown[i]
	}
	in.buttonsWentDown = [BUTTON_MAX_BUTTONS]bool{}
	in.mousePrevious = in.mouseLatched
	in.mouseLatched = in.mouseCurrent

	in.moveX = in.mouseLatched.X - in.mousePrevious.X
	in.moveY = in.mouseLatched.Y - in.mousePrevious.Y

	if in.windowWidth > 0 && in.windowHeight > 0 {
		x, y := in.mouseLatched.X, in.mouseLatched.Y
		in.edgeLeft = x < MouseEdgeThreshold
		in.edgeRight = x > in.windowWidth-MouseEdgeThreshold
		in.edgeTop = y < MouseEdgeThreshold
		in.edgeBottom = y > in.windowHeight-MouseEdgeThreshold
	}

	in.wheel = in.pendingWheel
	in.pendingWheel = 0
}

// keyboard input
func (in *Input) IsKeyDown(key KeyCode) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	return in.keyboardCurrent.Keys[key]
}

func (in *Input) IsKeyUp(key KeyCode) bool {
	return !in.IsKeyDown(key)
}

// IsKeyPressed reports whether key went down between the last two updates,
// even if it was released again before the second one.
func (in *Input) IsKeyPressed(key KeyCode) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	return in.keysPressed.Keys[key]
}

// IsKeyReleased reports whether key went up between the last two updates.
func (in *Input) IsKeyReleased(key KeyCode) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	return in.keysReleased.Keys[key]
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	if key >= KEYS_MAX_KEYS {
		return false
	}
	return in.keyboardPrevious.Keys[key]
}

func (in *Input) WasKeyUp(key KeyCode) bool {
	return !in.WasKeyDown(key)
}

func (in *Input) ProcessKey(key KeyCode, pressed bool) {
	if key >= KEYS_MAX_KEYS {
		return
	}
	// Only handle this if the state actually changed.
	if in.keyboardCurrent.Keys[key] == pressed {
		return
	}
	in.keyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
		in.keysWentDown.Keys[key] = true
	} else {
		in.keysWentUp.Keys[key] = true
	}
	in.fire(EventContext{
		Type: code,
		Data: &KeyEvent{KeyCode: key},
	})
}

// mouse input
func (in *Input) IsMouseDown(button Button) bool {
	if button >= BUTTON_MAX_BUTTONS {
		return false
	}
	return in.mouseCurrent.Buttons[button]
}

func (in *Input) IsMouseUp(button Button) bool {
	return !in.IsMouseDown(button)
}

func (in *Input) IsMousePressed(button Button) bool {
	if button >= BUTTON_MAX_BUTTONS {
		return false
	}
	return in.buttonsPressed[button]
}

func (in *Input) WasMouseDown(button Button) bool {
	if button >= BUTTON_MAX_BUTTONS {
		return false
	}
	return in.mousePrevious.Buttons[button]
}

func (in *Input) MousePosition() (int32, int32) {
	return in.mouseCurrent.X, in.mouseCurrent.Y
}

func (in *Input) PreviousMousePosition() (int32, int32) {
	return in.mousePrevious.X, in.mousePrevious.Y
}

// MouseMove is the cursor delta between the last two updates.
func (in *Input) MouseMove() (int32, int32) {
	return in.moveX, in.moveY
}

// MouseWheel is the scroll accumulated during the last frame.
func (in *Input) MouseWheel() float32 {
	return in.wheel
}

func (in *Input) IsMouseLeftEdge() bool   { return in.edgeLeft }
func (in *Input) IsMouseRightEdge() bool  { return in.edgeRight }
func (in *Input) IsMouseTopEdge() bool    { return in.edgeTop }
func (in *Input) IsMouseBottomEdge() bool { return in.edgeBottom }

func (in *Input) ProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS {
		return
	}
	if in.mouseCurrent.Buttons[button] == pressed {
		return
	}
	in.mouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
		in.buttonsWentDown[button] = true
	}
	in.fire(EventContext{
		Type: code,
		Data: &MouseEvent{
			Button: button,
			PosX:   in.mouseCurrent.X,
			PosY:   in.mouseCurrent.Y,
		},
	})
}

func (in *Input) ProcessMouseMove(x, y int32) {
	// The first reported position seeds the latched state so the first
	// frame does not see a jump from the origin.
	if !in.hasPosition {
		in.hasPosition = true
		in.mouseCurrent.X, in.mouseCurrent.Y = x, y
		in.mouseLatched.X, in.mouseLatched.Y = x, y
		in.mousePrevious.X, in.mousePrevious.Y = x, y
		return
	}
	if in.mouseCurrent.X == x && in.mouseCurrent.Y == y {
		return
	}
	in.mouseCurrent.X = x
	in.mouseCurrent.Y = y

	in.fire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: &MouseEvent{PosX: x, PosY: y},
	})
}

func (in *Input) ProcessMouseWheel(delta float32) {
	in.pendingWheel += delta
	in.fire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: &MouseEvent{Scroll: delta},
	})
}

func (in *Input) ShowSystemCursor(show bool) {
	if in.cursor == nil {
		return
	}
	if show {
		in.cursor.SetCursorMode(CursorNormal)
	} else {
		in.cursor.SetCursorMode(CursorHidden)
	}
}

func (in *Input) SetMouseClipToWindow(clip bool) {
	in.clipToWindow = clip
	if in.cursor == nil {
		return
	}
	if clip {
		in.cursor.SetCursorMode(CursorDisabled)
	} else {
		in.cursor.SetCursorMode(CursorNormal)
	}
}

func (in *Input) IsMouseClipToWindow() bool {
	return in.clipToWindow
}

// Reset clears every key and button, e.g. when the window loses focus.
func (in *Input) Reset() {
	in.keyboardCurrent = KeyboardState{}
	in.keysWentDown = KeyboardState{}
	in.mouseCurrent.Buttons = [BUTTON_MAX_BUTTONS]bool{}
	in.buttonsWentDown = [BUTTON_MAX_BUTTONS]bool{}
	in.pendingWheel = 0
}

func (in *Input) fire(ctx EventContext) {
	if in.events == nil {
		return
	}
	ctx.Sender = in
	in.events.Fire(ctx)
}
