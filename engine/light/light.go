package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents a light that reaches every surface equally,
	// independent of position and normal.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a distant light such as the sun. It shines from
	// its position toward its target with no distance attenuation.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance when a range is set.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position toward its
	// target. The cone half-angle and penumbra control the falloff at the edge.
	LightTypeSpot
)

// DefaultSpotAngle is the cone half-angle given to new spot lights (π/3).
const DefaultSpotAngle = math.Pi / 3

// String returns the lowercase name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType    LightType
	position     mgl32.Vec3
	target       mgl32.Vec3
	color        mgl32.Vec3
	intensity    float32
	lightRange   float32
	angle        float32
	penumbra     float32
	enabled      bool
	castsShadows bool
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface. Type-specific properties (cone angle for
// spot lights, range for point and spot lights) are ignored where they do not apply.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - mgl32.Vec3: position
	Position() mgl32.Vec3

	// Target returns the point directional and spot lights aim at.
	//
	// Returns:
	//   - mgl32.Vec3: target position, the origin by default
	Target() mgl32.Vec3

	// Direction returns the normalized direction the light travels in, from position
	// toward target. Zero when position and target coincide.
	//
	// Returns:
	//   - mgl32.Vec3: normalized direction
	Direction() mgl32.Vec3

	// Color returns the linear RGB color of the light.
	//
	// Returns:
	//   - mgl32.Vec3: color as (r, g, b)
	Color() mgl32.Vec3

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the distance at which point and spot lights fade to zero.
	// Zero means no distance attenuation.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Angle returns the spot cone half-angle in radians.
	//
	// Returns:
	//   - float32: cone half-angle
	Angle() float32

	// Penumbra returns the fraction of the cone over which spot intensity falls off (0..1).
	//
	// Returns:
	//   - float32: penumbra fraction
	Penumbra() float32

	// Enabled returns whether this light contributes to shading.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light is flagged as a shadow caster.
	// The flag is carried for scene descriptions. The software renderer does not
	// compute shadow maps.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - p: position
	SetPosition(p mgl32.Vec3)

	// SetTarget sets the aim point for directional and spot lights.
	//
	// Parameters:
	//   - t: target position
	SetTarget(t mgl32.Vec3)

	// SetColor sets the linear RGB color of the light.
	//
	// Parameters:
	//   - c: color as (r, g, b)
	SetColor(c mgl32.Vec3)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetRange sets the attenuation distance. Zero disables attenuation.
	//
	// Parameters:
	//   - lightRange: the range value
	SetRange(lightRange float32)

	// SetSpotCone sets the cone half-angle (radians) and penumbra fraction for spot lights.
	//
	// Parameters:
	//   - angle: cone half-angle in radians, clamped to (0, π/2]
	//   - penumbra: falloff fraction, clamped to [0, 1]
	SetSpotCone(angle, penumbra float32)

	// SetEnabled enables or disables the light.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets the shadow caster flag.
	//
	// Parameters:
	//   - castsShadows: true to flag the light as a shadow caster
	SetCastsShadows(castsShadows bool)

	// Irradiance returns the light reaching a surface point, already weighted by the
	// Lambert cosine term. Ambient lights ignore both arguments.
	//
	// Parameters:
	//   - p: world-space surface position
	//   - n: world-space unit surface normal
	//
	// Returns:
	//   - mgl32.Vec3: RGB irradiance
	Irradiance(p, n mgl32.Vec3) mgl32.Vec3
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		position:  mgl32.Vec3{0, 1, 0},
		color:     mgl32.Vec3{1, 1, 1},
		intensity: 1.0,
		angle:     DefaultSpotAngle,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	return l.position
}

func (l *lightImpl) Target() mgl32.Vec3 {
	return l.target
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	d := l.target.Sub(l.position)
	if d.Len() == 0 {
		return mgl32.Vec3{}
	}
	return d.Normalize()
}

func (l *lightImpl) Color() mgl32.Vec3 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Angle() float32 {
	return l.angle
}

func (l *lightImpl) Penumbra() float32 {
	return l.penumbra
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows
}

func (l *lightImpl) SetPosition(p mgl32.Vec3) {
	l.position = p
}

func (l *lightImpl) SetTarget(t mgl32.Vec3) {
	l.target = t
}

func (l *lightImpl) SetColor(c mgl32.Vec3) {
	l.color = c
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.lightRange = max(lightRange, 0)
}

func (l *lightImpl) SetSpotCone(angle, penumbra float32) {
	l.angle = mgl32.Clamp(angle, 1e-4, math.Pi/2)
	l.penumbra = mgl32.Clamp(penumbra, 0, 1)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.castsShadows = castsShadows
}

func (l *lightImpl) Irradiance(p, n mgl32.Vec3) mgl32.Vec3 {
	if !l.enabled {
		return mgl32.Vec3{}
	}
	radiance := l.color.Mul(l.intensity)
	switch l.lightType {
	case LightTypeAmbient:
		return radiance

	case LightTypeDirectional:
		toLight := l.Direction().Mul(-1)
		return radiance.Mul(lambert(n, toLight))

	case LightTypePoint, LightTypeSpot:
		offset := l.position.Sub(p)
		dist := offset.Len()
		if dist == 0 {
			return mgl32.Vec3{}
		}
		toLight := offset.Mul(1 / dist)
		k := lambert(n, toLight) * l.attenuation(dist)
		if l.lightType == LightTypeSpot {
			k *= l.coneFactor(toLight.Mul(-1))
		}
		return radiance.Mul(k)
	}
	return mgl32.Vec3{}
}

// attenuation fades linearly-squared to zero at the light range.
func (l *lightImpl) attenuation(dist float32) float32 {
	if l.lightRange <= 0 {
		return 1
	}
	f := 1 - dist/l.lightRange
	if f <= 0 {
		return 0
	}
	return f * f
}

// coneFactor returns 1 inside the inner cone, 0 outside the outer cone and a
// smoothstep between them. rayDir points from the light to the surface.
func (l *lightImpl) coneFactor(rayDir mgl32.Vec3) float32 {
	axis := l.Direction()
	if axis.Len() == 0 {
		return 0
	}
	cosAngle := rayDir.Dot(axis)
	outer := float32(math.Cos(float64(l.angle)))
	inner := float32(math.Cos(float64(l.angle * (1 - l.penumbra))))
	if cosAngle <= outer {
		return 0
	}
	if cosAngle >= inner || inner == outer {
		return 1
	}
	t := (cosAngle - outer) / (inner - outer)
	return t * t * (3 - 2*t)
}

func lambert(n, toLight mgl32.Vec3) float32 {
	return max(n.Dot(toLight), 0)
}
