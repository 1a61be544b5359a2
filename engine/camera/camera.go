package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultFov is the default vertical field of view in radians (45°).
	DefaultFov = float32(45.0 * math.Pi / 180.0)
	// DefaultNear is the default near clipping plane distance.
	DefaultNear = float32(0.1)
	// DefaultFar is the default far clipping plane distance.
	DefaultFar = float32(1000)
)

type cameraImpl struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	// orientation is the camera-to-world rotation set by LookAt.
	orientation mgl32.Mat3

	fov    float32
	aspect float32
	near   float32
	far    float32

	projectionMatrix mgl32.Mat4
}

// Camera defines a perspective camera.
//
// Position and orientation are independent, as in a scene-graph camera: moving the
// camera with SetPosition keeps its current orientation until LookAt is called.
// The projection matrix is cached and only refreshed by UpdateProjectionMatrix,
// so changes to fov, aspect, near or far take effect after that call.
//
// Cameras are not safe for concurrent mutation. They are owned by the event loop.
type Camera interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// SetPosition moves the camera without changing its orientation.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// LookAt orients the camera so that its forward axis points at target.
	//
	// Parameters:
	//   - target: the world-space point to face
	LookAt(target mgl32.Vec3)

	// Target returns the point most recently passed to LookAt.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at point
	Target() mgl32.Vec3

	// Forward returns the unit vector the camera is facing.
	//
	// Returns:
	//   - mgl32.Vec3: the forward direction in world space
	Forward() mgl32.Vec3

	// Up returns the camera's up reference vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetFov sets the vertical field of view in radians.
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height).
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance.
	SetFar(far float32)

	// UpdateProjectionMatrix recomputes the cached projection matrix from
	// fov, aspect, near and far.
	UpdateProjectionMatrix()

	// ViewMatrix returns the world-to-camera transform for the current
	// position and orientation.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix (column-major)
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the cached projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix (column-major, OpenGL clip space)
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new perspective Camera.
// Defaults: fov 45°, aspect 1, near 0.1, far 1000, positioned at the origin
// looking down -Z. The projection matrix is computed once after options apply.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		up:          mgl32.Vec3{0, 1, 0},
		target:      mgl32.Vec3{0, 0, -1},
		orientation: mgl32.Ident3(),
		fov:         DefaultFov,
		aspect:      1.0,
		near:        DefaultNear,
		far:         DefaultFar,
	}
	for _, option := range options {
		option(c)
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	return c.position
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.position = p
}

func (c *cameraImpl) LookAt(target mgl32.Vec3) {
	c.target = target
	if c.position.Sub(target).Len() < 1e-8 {
		return
	}
	// Looking straight along up leaves the basis undefined; nudge the line of sight.
	back := c.position.Sub(target).Normalize()
	if c.up.Normalize().Cross(back).Len() < 1e-6 {
		if math.Abs(float64(c.up.Normalize().Z())) > 0.999 {
			back[0] += 1e-4
		} else {
			back[2] += 1e-4
		}
		back = back.Normalize()
	}
	view := mgl32.LookAtV(target.Add(back), target, c.up)
	// The rotational part of the view matrix is world-to-camera; its
	// transpose is the camera-to-world orientation.
	c.orientation = view.Mat3().Transpose()
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Forward() mgl32.Vec3 {
	// The camera looks down its local -Z axis.
	return c.orientation.Col(2).Mul(-1)
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) SetFov(fov float32) {
	c.fov = fov
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.aspect = aspect
}

func (c *cameraImpl) SetNear(near float32) {
	c.near = near
}

func (c *cameraImpl) SetFar(far float32) {
	c.far = far
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	rt := c.orientation.Transpose()
	view := rt.Mat4()
	t := rt.Mul3x1(c.position).Mul(-1)
	view.SetCol(3, mgl32.Vec4{t[0], t[1], t[2], 1})
	return view
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix.Mul4(c.ViewMatrix())
}
