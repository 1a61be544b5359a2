package camera

import (
	"fmt"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ControllerKind identifies a camera control scheme.
type ControllerKind int

const (
	// ControllerKindOrbit selects the spherical orbit controller.
	ControllerKindOrbit ControllerKind = iota
	// ControllerKindManual selects the hand-rolled drag/wheel controller.
	ControllerKindManual
)

// String returns the config name of the kind.
func (k ControllerKind) String() string {
	switch k {
	case ControllerKindOrbit:
		return "orbit"
	case ControllerKindManual:
		return "manual"
	default:
		return fmt.Sprintf("ControllerKind(%d)", int(k))
	}
}

// ParseControllerKind maps a config name ("orbit", "manual") to a ControllerKind.
//
// Parameters:
//   - s: the controller name, case-insensitive
//
// Returns:
//   - ControllerKind: the parsed kind
//   - error: error if the name is unknown
func ParseControllerKind(s string) (ControllerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "orbit":
		return ControllerKindOrbit, nil
	case "manual":
		return ControllerKindManual, nil
	default:
		return 0, fmt.Errorf("unknown camera controller %q", s)
	}
}

// CameraController is the capability shared by every camera control scheme.
// A controller drives exactly one Camera, attached with Attach, and receives raw
// input events from the host. Controllers mutate the camera in place; the camera is
// read once per frame by the renderer.
//
// All methods must be called from the event loop.
type CameraController interface {
	// Kind reports which control scheme this controller implements.
	//
	// Returns:
	//   - ControllerKind: the scheme
	Kind() ControllerKind

	// Attach binds the controller to a camera and syncs internal state from the
	// camera's current position.
	//
	// Parameters:
	//   - cam: the camera to drive
	Attach(cam Camera)

	// Camera returns the attached camera, or nil before Attach.
	//
	// Returns:
	//   - Camera: the attached camera
	Camera() Camera

	// Target returns the fixed point the controller keeps the camera facing.
	//
	// Returns:
	//   - mgl32.Vec3: the world-space target
	Target() mgl32.Vec3

	// SetViewport informs the controller of the viewport size in pixels.
	//
	// Parameters:
	//   - width, height: viewport size in pixels
	SetViewport(width, height int)

	// PointerDown handles a button press.
	//
	// Parameters:
	//   - e: the pointer event
	PointerDown(e common.PointerEvent)

	// PointerMove handles pointer motion.
	//
	// Parameters:
	//   - e: the pointer event
	PointerMove(e common.PointerEvent)

	// PointerUp handles a button release.
	//
	// Parameters:
	//   - e: the pointer event
	PointerUp(e common.PointerEvent)

	// Wheel handles a scroll event.
	//
	// Parameters:
	//   - e: the wheel event
	Wheel(e common.WheelEvent)

	// KeyDown handles a key press. Controllers ignore keys they do not bind.
	//
	// Parameters:
	//   - keyCode: the virtual key code
	KeyDown(keyCode uint32)
}

// NewController creates the controller for kind with default settings.
//
// Parameters:
//   - kind: the control scheme
//
// Returns:
//   - CameraController: a new controller
//   - error: error if kind is unknown
func NewController(kind ControllerKind) (CameraController, error) {
	switch kind {
	case ControllerKindOrbit:
		return NewOrbitController(), nil
	case ControllerKindManual:
		return NewManualController(), nil
	default:
		return nil, fmt.Errorf("unknown camera controller %v", kind)
	}
}
