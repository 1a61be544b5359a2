package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// DefaultElementID is the id of the viewport element a window exposes unless configured otherwise.
const DefaultElementID = "WebGL-output"

// WheelDeltaPerLine converts GLFW scroll offsets (lines, positive = away from the
// user) into browser-style wheel deltas (pixels, positive = toward the user).
const WheelDeltaPerLine = 100

// Element is an attach point inside a window that renderer output can be mounted on.
type Element interface {
	// ID returns the element identifier.
	ID() string

	// Width returns the element width in pixels.
	Width() int

	// Height returns the element height in pixels.
	Height() int
}

// Window provides platform windowing and input event handling.
// Wraps platform-specific window implementations with a common interface.
// All callbacks run on the goroutine that calls ProcessMessages.
type Window interface {
	Element

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the framebuffer is resized.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SetWheelCallback sets the callback for mouse wheel events. Deltas use the browser
	// sign convention: negative DeltaY means the wheel was rolled away from the user.
	//
	// Parameters:
	//   - callback: function receiving the wheel event
	SetWheelCallback(callback func(e common.WheelEvent))

	// SetKeyDownCallback sets the callback for key press and repeat events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetPointerDownCallback sets the callback for mouse button presses (any button).
	//
	// Parameters:
	//   - callback: function receiving the pointer event
	SetPointerDownCallback(callback func(e common.PointerEvent))

	// SetPointerUpCallback sets the callback for mouse button releases (any button).
	//
	// Parameters:
	//   - callback: function receiving the pointer event
	SetPointerUpCallback(callback func(e common.PointerEvent))

	// SetPointerMoveCallback sets the callback for cursor movement.
	//
	// Parameters:
	//   - callback: function receiving the pointer event
	SetPointerMoveCallback(callback func(e common.PointerEvent))

	// Element looks up an attach point by id.
	//
	// Parameters:
	//   - id: the element id
	//
	// Returns:
	//   - Element: the element
	//   - bool: false when the window has no element with that id
	Element(id string) (Element, bool)

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// The descriptor is platform-appropriate (Windows HWND, X11 Xlib, Wayland, macOS Metal, etc.)
	// and is created by the wgpuglfw bridge from the underlying GLFW window.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil if window is not initialized
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to stop after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback each iteration.
	ProcessMessages()
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// elementID is the id the viewport answers to in Element lookups.
	elementID string

	maxWidth, maxHeight int
	minWidth, minHeight int

	// width and height are the framebuffer size in pixels.
	width, height int

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	onUpdate      func()
	onResize      func(width, height int)
	onWheel       func(e common.WheelEvent)
	onKeyDown     func(keyCode uint32)
	onKeyUp       func(keyCode uint32)
	onPointerDown func(e common.PointerEvent)
	onPointerUp   func(e common.PointerEvent)
	onPointerMove func(e common.PointerEvent)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
// Must be called from the main goroutine; the OS thread is locked.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window
//   - error: error if the platform window cannot be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := newEngineWindow(options...)
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func newEngineWindow(options ...WindowBuilderOption) *engineWindow {
	w := &engineWindow{
		title:     "Default Window Title",
		elementID: DefaultElementID,
		maxWidth:  3840,
		maxHeight: 2160,
		minWidth:  320,
		minHeight: 200,
		width:     1280,
		height:    720,
	}
	for _, opt := range options {
		opt(w)
	}
	return w
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetWheelCallback(callback func(e common.WheelEvent)) {
	w.onWheel = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetPointerDownCallback(callback func(e common.PointerEvent)) {
	w.onPointerDown = callback
}

func (w *engineWindow) SetPointerUpCallback(callback func(e common.PointerEvent)) {
	w.onPointerUp = callback
}

func (w *engineWindow) SetPointerMoveCallback(callback func(e common.PointerEvent)) {
	w.onPointerMove = callback
}

func (w *engineWindow) ID() string {
	return w.elementID
}

func (w *engineWindow) Element(id string) (Element, bool) {
	if id == "" || id != w.elementID {
		return nil, false
	}
	return w, true
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

// wheelEvent converts a GLFW vertical scroll offset into a browser-style wheel event.
func wheelEvent(yoff float64) common.WheelEvent {
	return common.WheelEvent{DeltaY: float32(-yoff * WheelDeltaPerLine)}
}

// resize records a new framebuffer size and notifies the resize callback.
func (w *engineWindow) resize(width, height int) {
	w.width, w.height = width, height
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
