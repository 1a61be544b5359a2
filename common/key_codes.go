package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyEsc   = 256 // Escape key (GLFW)
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)

// MouseButton identifies a pointer button. Values match GLFW mouse button codes.
type MouseButton int

const (
	// MouseButtonPrimary is the left mouse button.
	MouseButtonPrimary MouseButton = 0
	// MouseButtonSecondary is the right mouse button.
	MouseButtonSecondary MouseButton = 1
	// MouseButtonMiddle is the middle mouse button.
	MouseButtonMiddle MouseButton = 2
)

// PointerEvent is a pointer-down, pointer-move or pointer-up notification in
// window client coordinates (pixels, origin top-left).
type PointerEvent struct {
	X, Y   float32
	Button MouseButton
}

// WheelEvent is a scroll notification. DeltaY follows the browser convention:
// negative when the wheel is rolled away from the user (scroll up).
type WheelEvent struct {
	DeltaY float32
}
