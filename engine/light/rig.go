package light

import "github.com/go-gl/mathgl/mgl32"

// Constants of the default viewer lighting rig.
const (
	DefaultAmbientColor     uint32  = 0x0c0c0c
	DefaultSpotColor        uint32  = 0xffffff
	DefaultDirectionalColor uint32  = 0xffffff
	DefaultDirectionalPower float32 = 0.3
)

var (
	// DefaultSpotPosition is where the rig's spot light sits.
	DefaultSpotPosition = mgl32.Vec3{-20, 30, -5}

	// DefaultDirectionalPosition is where the rig's directional light sits. It shines
	// toward the origin.
	DefaultDirectionalPosition = mgl32.Vec3{20, -30, 5}.Normalize()
)

// NewDefaultRig builds the three lights the viewer starts with: a dim ambient fill,
// a shadow-flagged white spot light above and behind the model, and a weak
// directional light from below. Every light aims at the origin.
//
// Returns:
//   - []Light: ambient, spot and directional lights in that order
func NewDefaultRig() []Light {
	return []Light{
		NewLight(LightTypeAmbient, WithHexColor(DefaultAmbientColor)),
		NewLight(LightTypeSpot,
			WithHexColor(DefaultSpotColor),
			WithPosition(DefaultSpotPosition),
			WithCastsShadows(true),
		),
		NewLight(LightTypeDirectional,
			WithHexColor(DefaultDirectionalColor),
			WithIntensity(DefaultDirectionalPower),
			WithPosition(DefaultDirectionalPosition),
		),
	}
}
