package camera

import "github.com/go-gl/mathgl/mgl32"

// OrbitControllerOption is a functional option for configuring an OrbitController.
type OrbitControllerOption func(*orbitControllerImpl)

// WithOrbitTarget sets the look-at/pivot point.
//
// Parameters:
//   - x, y, z: world-space coordinates of the pivot
//
// Returns:
//   - OrbitControllerOption: functional option to set the target position
func WithOrbitTarget(x, y, z float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.target = mgl32.Vec3{x, y, z}
	}
}

// WithRadiusBounds sets the minimum and maximum orbit radius.
//
// Parameters:
//   - min: minimum zoom distance
//   - max: maximum zoom distance
//
// Returns:
//   - OrbitControllerOption: functional option to set radius bounds
func WithRadiusBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minRadius = min
		oc.maxRadius = max
	}
}

// WithElevationBounds sets the minimum and maximum elevation angles.
//
// Parameters:
//   - min: minimum vertical angle in radians
//   - max: maximum vertical angle in radians
//
// Returns:
//   - OrbitControllerOption: functional option to set elevation bounds
func WithElevationBounds(min, max float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minElevation = min
		oc.maxElevation = max
	}
}

// WithOrbitSpeed sets the keyboard orbit speed.
//
// Parameters:
//   - speed: radians per orbit call
//
// Returns:
//   - OrbitControllerOption: functional option to set orbit speed
func WithOrbitSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.orbitSpeed = speed
	}
}

// WithRotateSpeed sets the drag rotation multiplier. At 1.0 a drag across the full
// viewport height turns the camera one full revolution.
//
// Parameters:
//   - speed: multiplier for pointer movement
//
// Returns:
//   - OrbitControllerOption: functional option to set rotate speed
func WithRotateSpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.rotateSpeed = speed
	}
}

// WithZoomScale sets the radius factor applied per wheel notch (0 < scale < 1).
//
// Parameters:
//   - scale: radius multiplier when zooming in
//
// Returns:
//   - OrbitControllerOption: functional option to set the zoom scale
func WithZoomScale(scale float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.zoomScale = scale
	}
}

// WithEnableRotate enables or disables drag rotation.
func WithEnableRotate(enabled bool) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.enableRotate = enabled
	}
}

// WithEnableZoom enables or disables wheel zoom.
func WithEnableZoom(enabled bool) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.enableZoom = enabled
	}
}
