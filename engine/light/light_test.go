package light

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultRig(t *testing.T) {
	rig := NewDefaultRig()
	require.Len(t, rig, 3)

	ambient, spot, dir := rig[0], rig[1], rig[2]

	assert.Equal(t, LightTypeAmbient, ambient.Type())
	assert.InDelta(t, 12.0/255, ambient.Color()[0], 1e-6)

	assert.Equal(t, LightTypeSpot, spot.Type())
	assert.Equal(t, mgl32.Vec3{-20, 30, -5}, spot.Position())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, spot.Color())
	assert.True(t, spot.CastsShadows())
	assert.InDelta(t, math.Pi/3, spot.Angle(), 1e-6)

	assert.Equal(t, LightTypeDirectional, dir.Type())
	assert.InDelta(t, 0.3, dir.Intensity(), 1e-6)
	assert.InDelta(t, 1.0, dir.Position().Len(), 1e-5)
	assert.False(t, dir.CastsShadows())
}

func TestAmbientIgnoresGeometry(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithColor(mgl32.Vec3{0.2, 0.2, 0.2}))
	a := l.Irradiance(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	b := l.Irradiance(mgl32.Vec3{5, 5, 5}, mgl32.Vec3{0, -1, 0})
	assert.Equal(t, a, b)
	assert.InDelta(t, 0.2, a[0], 1e-6)
}

func TestDirectionalLambert(t *testing.T) {
	// Shines straight down.
	l := NewLight(LightTypeDirectional, WithPosition(mgl32.Vec3{0, 10, 0}))

	up := l.Irradiance(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	assert.InDelta(t, 1.0, up[0], 1e-6)

	tilted := l.Irradiance(mgl32.Vec3{}, mgl32.Vec3{1, 1, 0}.Normalize())
	assert.InDelta(t, math.Sqrt2/2, tilted[0], 1e-5)

	down := l.Irradiance(mgl32.Vec3{}, mgl32.Vec3{0, -1, 0})
	assert.Equal(t, mgl32.Vec3{}, down)
}

func TestSpotCone(t *testing.T) {
	l := NewLight(LightTypeSpot,
		WithPosition(mgl32.Vec3{0, 10, 0}),
		WithSpotCone(math.Pi/6, 0),
	)
	n := mgl32.Vec3{0, 1, 0}

	inside := l.Irradiance(mgl32.Vec3{0, 0, 0}, n)
	assert.InDelta(t, 1.0, inside[0], 1e-6)

	// 45° off axis is outside a 30° cone.
	outside := l.Irradiance(mgl32.Vec3{10, 0, 0}, n)
	assert.Equal(t, mgl32.Vec3{}, outside)
}

func TestSpotPenumbraIsMonotonic(t *testing.T) {
	l := NewLight(LightTypeSpot,
		WithPosition(mgl32.Vec3{0, 10, 0}),
		WithSpotCone(math.Pi/4, 0.5),
	)
	n := mgl32.Vec3{0, 1, 0}

	prev := float32(2)
	for x := float32(0); x <= 12; x += 0.5 {
		v := l.Irradiance(mgl32.Vec3{x, 0, 0}, n)[0]
		assert.LessOrEqual(t, v, prev, "x=%v", x)
		prev = v
	}
	assert.Zero(t, prev)
}

func TestPointRange(t *testing.T) {
	l := NewLight(LightTypePoint, WithPosition(mgl32.Vec3{0, 4, 0}), WithRange(8))
	n := mgl32.Vec3{0, 1, 0}

	near := l.Irradiance(mgl32.Vec3{0, 0, 0}, n)
	assert.InDelta(t, 0.25, near[0], 1e-6)

	far := l.Irradiance(mgl32.Vec3{0, -10, 0}, n)
	assert.Equal(t, mgl32.Vec3{}, far)

	l.SetRange(0)
	noFalloff := l.Irradiance(mgl32.Vec3{0, -10, 0}, n)
	assert.InDelta(t, 1.0, noFalloff[0], 1e-6)
}

func TestDisabledLightIsDark(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithEnabled(false))
	assert.Equal(t, mgl32.Vec3{}, l.Irradiance(mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}))
}

func TestLightTypeString(t *testing.T) {
	assert.Equal(t, "ambient", LightTypeAmbient.String())
	assert.Equal(t, "spot", LightTypeSpot.String())
	assert.Equal(t, "unknown", LightType(42).String())
}
