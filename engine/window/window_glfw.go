package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// newPlatformWindow creates the GLFW window with input callbacks and stores it as the internal window.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	// WebGPU provides its own graphics API, so disable OpenGL context creation.
	// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	gw.bindCallbacks()

	// Update stored dimensions to reflect actual framebuffer size (may differ from requested on high-DPI).
	w.width, w.height = win.GetFramebufferSize()

	return nil
}

// bindCallbacks routes GLFW input and framebuffer events to the parent window's callbacks.
// GLFW invokes them from PollEvents, so they run on the message loop goroutine.
func (gw *glfwWindow) bindCallbacks() {
	win := gw.window
	win.SetKeyCallback(gw.onKey)
	win.SetMouseButtonCallback(gw.onMouseButton)
	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if cb := gw.parent.onWheel; cb != nil {
			cb(wheelEvent(yoff))
		}
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if cb := gw.parent.onPointerMove; cb != nil {
			cb(common.PointerEvent{X: float32(xpos), Y: float32(ypos)})
		}
	})
	// Framebuffer size is in pixels, which differs from window size on high-DPI displays.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gw.parent.resize(width, height)
	})
}

// onKey closes the window on Escape and forwards every other key.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#KeyCallback
func (gw *glfwWindow) onKey(win *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	w := gw.parent
	if key == glfw.KeyEscape && action == glfw.Press {
		gw.running = false
		win.SetShouldClose(true)
		return
	}
	switch action {
	case glfw.Press, glfw.Repeat:
		if w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	case glfw.Release:
		if w.onKeyUp != nil {
			w.onKeyUp(uint32(key))
		}
	}
}

// onMouseButton reports presses and releases of any button at the current cursor position.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#MouseButtonCallback
func (gw *glfwWindow) onMouseButton(win *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
	xpos, ypos := win.GetCursorPos()
	e := common.PointerEvent{X: float32(xpos), Y: float32(ypos), Button: common.MouseButton(button)}
	var cb func(common.PointerEvent)
	switch action {
	case glfw.Press:
		cb = gw.parent.onPointerDown
	case glfw.Release:
		cb = gw.parent.onPointerUp
	}
	if cb != nil {
		cb(e)
	}
}

// platformGetSurfaceDescriptor creates a platform-appropriate wgpu.SurfaceDescriptor from the GLFW window.
// Uses the wgpuglfw bridge package which has per-platform implementations (Windows, X11, Wayland, macOS).
//
// Reference: https://pkg.go.dev/github.com/cogentcore/webgpu/wgpuglfw#GetSurfaceDescriptor
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return nil
	}
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return false
	}
	return gw.running && !gw.window.ShouldClose()
}

// platformRequestClose flags the window so the message loop exits after the current iteration.
func platformRequestClose(w *engineWindow) {
	if gw, ok := w.internalWindow.(*glfwWindow); ok && gw.running {
		gw.window.SetShouldClose(true)
	}
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns an error if the internal window has not been initialized.
func platformCloseWindow(w *engineWindow) error {
	gw, ok := w.internalWindow.(*glfwWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	gw.running = false
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
