package camera

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultRotateDegreesPerPixel is the yaw applied per pixel of horizontal drag.
	DefaultRotateDegreesPerPixel = float32(0.5)
	// DefaultZoomStep is the fractional distance change per wheel event.
	DefaultZoomStep = float32(0.1)
)

// manualControllerImpl is a two-state (Idle, Dragging) machine driven by raw
// pointer and wheel events. It only ever yaws around the vertical axis through the
// target and zooms multiplicatively along the line to the target.
type manualControllerImpl struct {
	cam    Camera
	target mgl32.Vec3

	// dragging and last form the drag session. last is only meaningful while
	// dragging; it is overwritten on the next PointerDown.
	dragging bool
	last     [2]float32

	degreesPerPixel float32
	zoomStep        float32
}

// ManualController is the hand-rolled drag/wheel camera controller.
//
// Pointer-down enters Dragging and records the anchor. Each pointer-move while
// Dragging yaws the camera by Δx·DegreesPerPixel degrees, where Δx is measured
// against the previous pointer position, and re-targets the camera. Vertical motion
// is ignored. Pointer-up returns to Idle. Wheel events zoom in either state by
// scaling the offset from the target by 1 + ZoomStep·sign(−Δy); distance is
// not clamped.
type ManualController interface {
	CameraController

	// Dragging reports whether a drag session is in progress.
	//
	// Returns:
	//   - bool: true between PointerDown and PointerUp
	Dragging() bool

	// DegreesPerPixel returns the yaw rate in degrees per pixel of horizontal motion.
	DegreesPerPixel() float32

	// ZoomStep returns the fractional zoom step per wheel event.
	ZoomStep() float32
}

var _ ManualController = &manualControllerImpl{}

// NewManualController creates a manual controller targeting the origin with the
// default yaw rate (0.5°/px) and zoom step (0.1).
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - ManualController: the newly created controller
func NewManualController(options ...ManualControllerOption) ManualController {
	mc := &manualControllerImpl{
		degreesPerPixel: DefaultRotateDegreesPerPixel,
		zoomStep:        DefaultZoomStep,
	}
	for _, option := range options {
		option(mc)
	}
	return mc
}

func (mc *manualControllerImpl) Kind() ControllerKind {
	return ControllerKindManual
}

func (mc *manualControllerImpl) Attach(cam Camera) {
	mc.cam = cam
	mc.dragging = false
}

func (mc *manualControllerImpl) Camera() Camera {
	return mc.cam
}

func (mc *manualControllerImpl) Target() mgl32.Vec3 {
	return mc.target
}

func (mc *manualControllerImpl) SetViewport(_, _ int) {}

func (mc *manualControllerImpl) PointerDown(e common.PointerEvent) {
	mc.dragging = true
	mc.last = [2]float32{e.X, e.Y}
}

func (mc *manualControllerImpl) PointerMove(e common.PointerEvent) {
	if !mc.dragging || mc.cam == nil {
		return
	}
	dx := e.X - mc.last[0]
	theta := mgl32.DegToRad(dx * mc.degreesPerPixel)

	mc.cam.SetPosition(common.OrbitY(mc.cam.Position(), mc.target, theta))
	mc.cam.LookAt(mc.target)

	mc.last = [2]float32{e.X, e.Y}
}

func (mc *manualControllerImpl) PointerUp(_ common.PointerEvent) {
	mc.dragging = false
}

func (mc *manualControllerImpl) Wheel(e common.WheelEvent) {
	if mc.cam == nil {
		return
	}
	factor := mc.zoomStep * common.Sign(-e.DeltaY)
	if factor == 0 {
		return
	}
	mc.cam.SetPosition(common.ScaleAbout(mc.cam.Position(), mc.target, 1+factor))
}

func (mc *manualControllerImpl) KeyDown(_ uint32) {}

func (mc *manualControllerImpl) Dragging() bool {
	return mc.dragging
}

func (mc *manualControllerImpl) DegreesPerPixel() float32 {
	return mc.degreesPerPixel
}

func (mc *manualControllerImpl) ZoomStep() float32 {
	return mc.zoomStep
}
