package common

import "image/color"

// HexColor converts a 0xRRGGBB value to an opaque color.RGBA.
func HexColor(hex uint32) color.RGBA {
	return color.RGBA{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xff,
	}
}

// HexToLinear converts a 0xRRGGBB value to normalized [0, 1] RGB components.
func HexToLinear(hex uint32) [3]float32 {
	c := HexColor(hex)
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}
