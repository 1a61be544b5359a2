package camera

import "github.com/go-gl/mathgl/mgl32"

// ManualControllerOption is a functional option for configuring a ManualController.
type ManualControllerOption func(*manualControllerImpl)

// WithManualTarget sets the point the camera orbits and faces.
//
// Parameters:
//   - x, y, z: world-space coordinates of the target
//
// Returns:
//   - ManualControllerOption: functional option to set the target
func WithManualTarget(x, y, z float32) ManualControllerOption {
	return func(mc *manualControllerImpl) {
		mc.target = mgl32.Vec3{x, y, z}
	}
}

// WithDegreesPerPixel sets the yaw rate.
//
// Parameters:
//   - deg: degrees of yaw per pixel of horizontal pointer motion
//
// Returns:
//   - ManualControllerOption: functional option to set the yaw rate
func WithDegreesPerPixel(deg float32) ManualControllerOption {
	return func(mc *manualControllerImpl) {
		mc.degreesPerPixel = deg
	}
}

// WithZoomStep sets the fractional distance change per wheel event.
//
// Parameters:
//   - step: zoom step (0.1 scales distance by 1.1 or 0.9)
//
// Returns:
//   - ManualControllerOption: functional option to set the zoom step
func WithZoomStep(step float32) ManualControllerOption {
	return func(mc *manualControllerImpl) {
		mc.zoomStep = step
	}
}
