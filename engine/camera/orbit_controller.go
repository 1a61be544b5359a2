package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// elevationEpsilon keeps the orbit away from the poles, where LookAt degenerates.
const elevationEpsilon = 1e-4

// orbitControllerImpl orbits the camera on a sphere around the target using
// spherical coordinates (radius, azimuth, elevation).
type orbitControllerImpl struct {
	cam Camera

	target mgl32.Vec3

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis, 0 = +Z
	elevation float32 // Vertical angle from horizontal plane

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	orbitSpeed  float32 // radians per keyboard step
	rotateSpeed float32 // drag multiplier
	zoomScale   float32 // radius factor per wheel notch

	enableRotate bool
	enableZoom   bool

	viewportHeight int

	dragging bool
	last     [2]float32
}

// OrbitController is the orbit-control collaborator: it delegates all pointer and
// zoom handling to spherical-coordinate math around a fixed target.
//
// Primary-button drags rotate (when rotation is enabled), the wheel dollies the
// radius, and the arrow keys step the orbit.
type OrbitController interface {
	CameraController

	// OrbitLeft rotates the camera left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit speed step, clamped to max elevation.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit speed step, clamped to min elevation.
	OrbitDown()

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// Azimuth returns the current horizontal angle around the Y axis.
	//
	// Returns:
	//   - float32: azimuth in radians
	Azimuth() float32

	// Elevation returns the current vertical angle from the horizontal plane.
	//
	// Returns:
	//   - float32: elevation in radians
	Elevation() float32

	// EnableRotate reports whether pointer drags rotate the camera.
	EnableRotate() bool

	// SetEnableRotate enables or disables drag rotation.
	SetEnableRotate(enabled bool)

	// EnableZoom reports whether the wheel dollies the camera.
	EnableZoom() bool

	// SetEnableZoom enables or disables wheel zoom.
	SetEnableZoom(enabled bool)
}

var _ OrbitController = &orbitControllerImpl{}

// NewOrbitController creates an orbit controller with sensible defaults.
// The spherical state is derived from the camera on Attach.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - OrbitController: the newly created controller
func NewOrbitController(options ...OrbitControllerOption) OrbitController {
	oc := &orbitControllerImpl{
		minRadius:      0,
		maxRadius:      float32(math.Inf(1)),
		minElevation:   -float32(math.Pi/2) + elevationEpsilon,
		maxElevation:   float32(math.Pi/2) - elevationEpsilon,
		orbitSpeed:     0.03,
		rotateSpeed:    1.0,
		zoomScale:      0.95,
		enableRotate:   true,
		enableZoom:     true,
		viewportHeight: 1,
	}
	for _, option := range options {
		option(oc)
	}
	return oc
}

func (oc *orbitControllerImpl) Kind() ControllerKind {
	return ControllerKindOrbit
}

func (oc *orbitControllerImpl) Attach(cam Camera) {
	oc.cam = cam
	offset := cam.Position().Sub(oc.target)
	oc.radius = offset.Len()
	if oc.radius > 0 {
		oc.elevation = float32(math.Asin(float64(mgl32.Clamp(offset.Y()/oc.radius, -1, 1))))
		oc.azimuth = float32(math.Atan2(float64(offset.X()), float64(offset.Z())))
	}
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Camera() Camera {
	return oc.cam
}

func (oc *orbitControllerImpl) Target() mgl32.Vec3 {
	return oc.target
}

func (oc *orbitControllerImpl) SetViewport(_, height int) {
	if height > 0 {
		oc.viewportHeight = height
	}
}

func (oc *orbitControllerImpl) PointerDown(e common.PointerEvent) {
	if e.Button != common.MouseButtonPrimary || !oc.enableRotate {
		return
	}
	oc.dragging = true
	oc.last = [2]float32{e.X, e.Y}
}

func (oc *orbitControllerImpl) PointerMove(e common.PointerEvent) {
	if !oc.dragging {
		return
	}
	dx := e.X - oc.last[0]
	dy := e.Y - oc.last[1]
	oc.last = [2]float32{e.X, e.Y}

	h := float32(oc.viewportHeight)
	oc.azimuth -= 2 * math.Pi * dx / h * oc.rotateSpeed
	oc.elevation += 2 * math.Pi * dy / h * oc.rotateSpeed
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) PointerUp(e common.PointerEvent) {
	if e.Button == common.MouseButtonPrimary {
		oc.dragging = false
	}
}

func (oc *orbitControllerImpl) Wheel(e common.WheelEvent) {
	if !oc.enableZoom {
		return
	}
	switch {
	case e.DeltaY < 0:
		oc.radius *= oc.zoomScale
	case e.DeltaY > 0:
		oc.radius /= oc.zoomScale
	default:
		return
	}
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) KeyDown(keyCode uint32) {
	switch keyCode {
	case common.KeyLeft:
		oc.OrbitLeft()
	case common.KeyRight:
		oc.OrbitRight()
	case common.KeyUp:
		oc.OrbitUp()
	case common.KeyDown:
		oc.OrbitDown()
	}
}

func (oc *orbitControllerImpl) OrbitLeft() {
	oc.azimuth -= oc.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitControllerImpl) OrbitRight() {
	oc.azimuth += oc.orbitSpeed
	oc.updatePosition()
}

func (oc *orbitControllerImpl) OrbitUp() {
	oc.elevation += oc.orbitSpeed
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) OrbitDown() {
	oc.elevation -= oc.orbitSpeed
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Radius() float32 {
	return oc.radius
}

func (oc *orbitControllerImpl) SetRadius(radius float32) {
	oc.radius = radius
	oc.clamp()
	oc.updatePosition()
}

func (oc *orbitControllerImpl) Azimuth() float32 {
	return oc.azimuth
}

func (oc *orbitControllerImpl) Elevation() float32 {
	return oc.elevation
}

func (oc *orbitControllerImpl) EnableRotate() bool {
	return oc.enableRotate
}

func (oc *orbitControllerImpl) SetEnableRotate(enabled bool) {
	oc.enableRotate = enabled
	if !enabled {
		oc.dragging = false
	}
}

func (oc *orbitControllerImpl) EnableZoom() bool {
	return oc.enableZoom
}

func (oc *orbitControllerImpl) SetEnableZoom(enabled bool) {
	oc.enableZoom = enabled
}

// clamp keeps radius and elevation inside their configured bounds.
func (oc *orbitControllerImpl) clamp() {
	oc.radius = mgl32.Clamp(oc.radius, oc.minRadius, oc.maxRadius)
	oc.elevation = mgl32.Clamp(oc.elevation, oc.minElevation, oc.maxElevation)
}

// updatePosition recomputes the camera position from spherical coordinates and
// re-targets the camera. No-op before Attach.
func (oc *orbitControllerImpl) updatePosition() {
	if oc.cam == nil {
		return
	}
	cosElev := float32(math.Cos(float64(oc.elevation)))
	sinElev := float32(math.Sin(float64(oc.elevation)))
	cosAzim := float32(math.Cos(float64(oc.azimuth)))
	sinAzim := float32(math.Sin(float64(oc.azimuth)))

	oc.cam.SetPosition(mgl32.Vec3{
		oc.target[0] + oc.radius*cosElev*sinAzim,
		oc.target[1] + oc.radius*sinElev,
		oc.target[2] + oc.radius*cosElev*cosAzim,
	})
	oc.cam.LookAt(oc.target)
}
