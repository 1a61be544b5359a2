package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v vs %v", i, want, got)
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	assert.InDelta(t, 45.0*math.Pi/180.0, c.Fov(), 1e-6)
	assert.Equal(t, float32(0.1), c.Near())
	assert.Equal(t, float32(1000), c.Far())
	assert.Equal(t, float32(1), c.Aspect())
	assertVecInDelta(t, mgl32.Vec3{0, 0, -1}, c.Forward(), 1e-6)
}

func TestLookAtFacesTarget(t *testing.T) {
	c := NewCamera(WithPosition(-30, 40, 30), WithLookAt(0, 0, 0))
	want := mgl32.Vec3{30, -40, -30}.Normalize()
	assertVecInDelta(t, want, c.Forward(), 1e-5)

	// The target projects to the centre of the view.
	clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 0, clip.X()/clip.W(), 1e-5)
	assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-5)
}

func TestViewMatrixMatchesLookAtV(t *testing.T) {
	eye := mgl32.Vec3{-30, 30, 30}
	c := NewCamera(WithPosition(eye[0], eye[1], eye[2]), WithLookAt(0, 0, 0))
	want := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	got := c.ViewMatrix()
	for i := range 16 {
		assert.InDelta(t, want[i], got[i], 1e-4, "element %d", i)
	}
}

func TestLookAtAlongUpStaysFinite(t *testing.T) {
	for _, eye := range []mgl32.Vec3{{0, 50, 0}, {0, -50, 0}} {
		c := NewCamera(WithPosition(eye[0], eye[1], eye[2]), WithLookAt(0, 0, 0))
		view := c.ViewMatrix()
		for i := range 16 {
			assert.False(t, math.IsNaN(float64(view[i])), "eye %v element %d", eye, i)
		}
		assertVecInDelta(t, eye.Mul(-1).Normalize(), c.Forward(), 1e-3)

		clip := c.ViewProjectionMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		assert.InDelta(t, 0, clip.X()/clip.W(), 1e-3)
		assert.InDelta(t, 0, clip.Y()/clip.W(), 1e-3)
	}
}

func TestSetPositionKeepsOrientation(t *testing.T) {
	c := NewCamera(WithPosition(0, 0, 10), WithLookAt(0, 0, 0))
	before := c.Forward()
	c.SetPosition(mgl32.Vec3{0, 0, 20})
	assertVecInDelta(t, before, c.Forward(), 1e-6)
}

func TestProjectionRefreshedOnlyByUpdate(t *testing.T) {
	c := NewCamera(WithAspect(4.0 / 3.0))
	before := c.ProjectionMatrix()

	c.SetAspect(16.0 / 9.0)
	assert.Equal(t, before, c.ProjectionMatrix())

	c.UpdateProjectionMatrix()
	want := mgl32.Perspective(c.Fov(), 16.0/9.0, c.Near(), c.Far())
	assert.Equal(t, want, c.ProjectionMatrix())
}

func TestParseControllerKind(t *testing.T) {
	k, err := ParseControllerKind("Manual")
	assert.NoError(t, err)
	assert.Equal(t, ControllerKindManual, k)
	assert.Equal(t, "orbit", ControllerKindOrbit.String())

	_, err = ParseControllerKind("fly")
	assert.Error(t, err)
}

func TestNewControllerKinds(t *testing.T) {
	for _, kind := range []ControllerKind{ControllerKindOrbit, ControllerKindManual} {
		ctrl, err := NewController(kind)
		assert.NoError(t, err)
		assert.Equal(t, kind, ctrl.Kind())
	}
	_, err := NewController(ControllerKind(42))
	assert.Error(t, err)
}
