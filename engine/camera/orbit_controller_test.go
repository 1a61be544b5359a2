package camera

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func newOrbitRig(options ...OrbitControllerOption) (Camera, OrbitController) {
	cam := NewCamera(WithPosition(-30, 40, 30), WithLookAt(0, 0, 0))
	oc := NewOrbitController(options...)
	oc.Attach(cam)
	oc.SetViewport(800, 600)
	return cam, oc
}

func TestOrbitAttachPreservesPosition(t *testing.T) {
	cam, oc := newOrbitRig()
	assertVecInDelta(t, mgl32.Vec3{-30, 40, 30}, cam.Position(), 1e-3)
	assert.InDelta(t, math.Sqrt(30*30+40*40+30*30), oc.Radius(), 1e-3)
	assert.InDelta(t, -math.Pi/4, oc.Azimuth(), 1e-5)
}

func TestOrbitDragRotatesAroundTarget(t *testing.T) {
	cam, oc := newOrbitRig()
	r := oc.Radius()
	az := oc.Azimuth()
	el := oc.Elevation()

	oc.PointerDown(common.PointerEvent{X: 400, Y: 300, Button: common.MouseButtonPrimary})
	oc.PointerMove(common.PointerEvent{X: 460, Y: 330, Button: common.MouseButtonPrimary})

	assert.InDelta(t, az-2*math.Pi*60/600, oc.Azimuth(), 1e-5)
	assert.InDelta(t, el+2*math.Pi*30/600, oc.Elevation(), 1e-5)
	assert.InDelta(t, r, cam.Position().Len(), 1e-3)
	assertVecInDelta(t, cam.Position().Mul(-1).Normalize(), cam.Forward(), 1e-4)
}

func TestOrbitIgnoresSecondaryButtonAndDisabledRotate(t *testing.T) {
	cam, oc := newOrbitRig()
	before := cam.Position()
	oc.PointerDown(common.PointerEvent{X: 0, Y: 0, Button: common.MouseButtonSecondary})
	oc.PointerMove(common.PointerEvent{X: 100, Y: 0})
	assert.Equal(t, before, cam.Position())

	oc.SetEnableRotate(false)
	oc.PointerDown(common.PointerEvent{X: 0, Y: 0, Button: common.MouseButtonPrimary})
	oc.PointerMove(common.PointerEvent{X: 100, Y: 0})
	assert.Equal(t, before, cam.Position())
}

func TestOrbitElevationClamped(t *testing.T) {
	_, oc := newOrbitRig()
	oc.PointerDown(common.PointerEvent{Button: common.MouseButtonPrimary})
	oc.PointerMove(common.PointerEvent{Y: 10000})
	assert.Less(t, oc.Elevation(), float32(math.Pi/2))
	oc.PointerMove(common.PointerEvent{Y: -10000})
	assert.Greater(t, oc.Elevation(), float32(-math.Pi/2))
}

func TestOrbitWheelDollies(t *testing.T) {
	_, oc := newOrbitRig()
	r := oc.Radius()
	oc.Wheel(common.WheelEvent{DeltaY: -100})
	assert.InDelta(t, r*0.95, oc.Radius(), 1e-3)
	oc.Wheel(common.WheelEvent{DeltaY: 100})
	assert.InDelta(t, r, oc.Radius(), 1e-3)

	oc.SetEnableZoom(false)
	oc.Wheel(common.WheelEvent{DeltaY: -100})
	assert.InDelta(t, r, oc.Radius(), 1e-3)
}

func TestOrbitRadiusBounds(t *testing.T) {
	_, oc := newOrbitRig(WithRadiusBounds(50, 60))
	assert.InDelta(t, 58.31, oc.Radius(), 1e-2)
	for range 20 {
		oc.Wheel(common.WheelEvent{DeltaY: 1})
	}
	assert.Equal(t, float32(60), oc.Radius())
	oc.SetRadius(1)
	assert.Equal(t, float32(50), oc.Radius())
}

func TestOrbitKeyboardSteps(t *testing.T) {
	_, oc := newOrbitRig(WithOrbitSpeed(0.1))
	az := oc.Azimuth()
	oc.KeyDown(common.KeyLeft)
	assert.InDelta(t, az-0.1, oc.Azimuth(), 1e-6)
	oc.KeyDown(common.KeyRight)
	oc.KeyDown(common.KeyRight)
	assert.InDelta(t, az+0.1, oc.Azimuth(), 1e-6)

	el := oc.Elevation()
	oc.KeyDown(common.KeyDown)
	assert.InDelta(t, el-0.1, oc.Elevation(), 1e-6)
}
