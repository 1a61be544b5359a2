package light

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - p: the position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(p mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = p
	}
}

// WithTarget is an option builder that sets the aim point of directional and spot lights.
//
// Parameters:
//   - t: the target position
//
// Returns:
//   - LightBuilderOption: a function that applies the target option to a lightImpl
func WithTarget(t mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = t
	}
}

// WithColor is an option builder that sets the linear RGB color of the light.
//
// Parameters:
//   - c: the color as (r, g, b)
//
// Returns:
//   - LightBuilderOption: a function that applies the color option to a lightImpl
func WithColor(c mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = c
	}
}

// WithHexColor is WithColor for a 0xRRGGBB value.
func WithHexColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = common.HexToLinear(hex)
	}
}

// WithIntensity is an option builder that sets the scalar intensity multiplier.
//
// Parameters:
//   - intensity: the intensity value
//
// Returns:
//   - LightBuilderOption: a function that applies the intensity option to a lightImpl
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange is an option builder that sets the attenuation distance for point and
// spot lights. Zero disables attenuation.
//
// Parameters:
//   - lightRange: the range value
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetRange(lightRange)
	}
}

// WithSpotCone is an option builder that sets the cone half-angle (radians) and the
// penumbra fraction for spot lights.
//
// Parameters:
//   - angle: cone half-angle in radians
//   - penumbra: falloff fraction in [0, 1]
//
// Returns:
//   - LightBuilderOption: a function that applies the spot cone option to a lightImpl
func WithSpotCone(angle, penumbra float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.SetSpotCone(angle, penumbra)
	}
}

// WithEnabled is an option builder that sets whether the light contributes to shading.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows is an option builder that sets the shadow caster flag.
//
// Parameters:
//   - castsShadows: true to flag the light as a shadow caster
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}
