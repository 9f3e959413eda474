package platform

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/vignette/engine/core"
	"github.com/spaghettifunk/vignette/engine/renderer"
)

var ErrVulkanUnsupported = errors.New("vulkan is not supported by the window system")

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Window is a GLFW window without a client API. Its callbacks write into the
// input system and the event bus, and only run inside ProcessMessage.
type Window struct {
	handle *glfw.Window
	input  *core.Input
	events *core.EventBus

	width  uint32
	height uint32
}

func New(input *core.Input, events *core.EventBus) *Window {
	return &Window{
		input:  input,
		events: events,
	}
}

func (w *Window) Initialize(title string, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return ErrVulkanUnsupported
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI) // Required for Vulkan.

	window, err := glfw.CreateWindow(int(width), int(height), title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create window: %w", err)
	}
	w.handle = window
	w.width, w.height = width, height

	window.SetKeyCallback(w.keyCallback)
	window.SetMouseButtonCallback(w.mouseButtonCallback)
	window.SetCursorPosCallback(w.cursorPosCallback)
	window.SetScrollCallback(w.scrollCallback)
	window.SetFramebufferSizeCallback(w.framebufferSizeCallback)

	if w.input != nil {
		fbw, fbh := window.GetFramebufferSize()
		w.input.SetWindowSize(uint32(fbw), uint32(fbh))
		w.input.AttachCursor(w)
	}
	window.Show()

	core.LogInfo("Window %q created (%dx%d).", title, width, height)
	return nil
}

func (w *Window) Terminate() {
	if w.handle == nil {
		return
	}
	w.handle.Destroy()
	w.handle = nil
	glfw.Terminate()
}

func (w *Window) ProcessMessage() {
	glfw.PollEvents()
}

func (w *Window) IsActive() bool {
	return w.handle != nil && !w.handle.ShouldClose()
}

// NativeHandle borrows the GLFW window as a Vulkan surface source. The
// returned value is only valid until Terminate.
func (w *Window) NativeHandle() renderer.Surface {
	return &surface{window: w.handle}
}

// Close asks the window to close; IsActive reports false from then on.
func (w *Window) Close() {
	if w.handle != nil {
		w.handle.SetShouldClose(true)
	}
}

func (w *Window) Size() (uint32, uint32) {
	return w.width, w.height
}

func (w *Window) SetCursorMode(mode core.CursorMode) {
	if w.handle == nil {
		return
	}
	switch mode {
	case core.CursorHidden:
		w.handle.SetInputMode(glfw.CursorMode, glfw.CursorHidden)
	case core.CursorDisabled:
		w.handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	default:
		w.handle.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if w.input == nil || action == glfw.Repeat {
		return
	}
	code, ok := translateKey(key)
	if !ok {
		return
	}
	w.input.ProcessKey(code, action == glfw.Press)
}

func (w *Window) mouseButtonCallback(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if w.input == nil {
		return
	}
	var b core.Button
	switch button {
	case glfw.MouseButtonLeft:
		b = core.BUTTON_LEFT
	case glfw.MouseButtonRight:
		b = core.BUTTON_RIGHT
	case glfw.MouseButtonMiddle:
		b = core.BUTTON_MIDDLE
	default:
		return
	}
	w.input.ProcessButton(b, action == glfw.Press)
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	if w.input != nil {
		w.input.ProcessMouseMove(int32(xpos), int32(ypos))
	}
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	if w.input != nil {
		w.input.ProcessMouseWheel(float32(yoff))
	}
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.width, w.height = uint32(width), uint32(height)
	core.LogDebug("Window resize: %d, %d", width, height)
	if w.input != nil {
		w.input.SetWindowSize(w.width, w.height)
	}
	if w.events != nil {
		w.events.Fire(core.EventContext{
			Type:   core.EVENT_CODE_RESIZED,
			Sender: w,
			Data:   &core.SystemEvent{WindowWidth: w.width, WindowHeight: w.height},
		})
	}
}

type surface struct {
	window *glfw.Window
}

func (s *surface) Kind() renderer.SurfaceKind {
	return renderer.SurfaceGLFW
}

func (s *surface) FramebufferSize() (uint32, uint32) {
	if s.window == nil {
		return 0, 0
	}
	width, height := s.window.GetFramebufferSize()
	return uint32(width), uint32(height)
}

func (s *surface) InstanceProcAddress() unsafe.Pointer {
	return glfw.GetVulkanGetInstanceProcAddress()
}

func (s *surface) RequiredInstanceExtensions() []string {
	if s.window == nil {
		return nil
	}
	return s.window.GetRequiredInstanceExtensions()
}

func (s *surface) CreateVulkanSurface(instance interface{}) (uintptr, error) {
	if s.window == nil {
		return 0, errors.New("window has been terminated")
	}
	return s.window.CreateWindowSurface(instance, nil)
}
