package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// AxisY is the world-space vertical axis.
var AxisY = mgl32.Vec3{0, 1, 0}

// OrbitY rotates point p about the vertical axis passing through pivot.
// The point is translated so the pivot sits at the origin, rotated with an
// axis-angle quaternion, then translated back.
//
// Parameters:
//   - p: the point to rotate
//   - pivot: a point on the rotation axis
//   - theta: rotation angle in radians (counter-clockwise when looking down -Y)
//
// Returns:
//   - mgl32.Vec3: the rotated point
func OrbitY(p, pivot mgl32.Vec3, theta float32) mgl32.Vec3 {
	offset := p.Sub(pivot)
	offset = mgl32.QuatRotate(theta, AxisY).Rotate(offset)
	return offset.Add(pivot)
}

// ScaleAbout scales the offset of p from pivot by s and returns pivot + scaled offset.
//
// Parameters:
//   - p: the point to move
//   - pivot: the fixed point of the scaling
//   - s: the scale factor applied to the offset
//
// Returns:
//   - mgl32.Vec3: the scaled point
func ScaleAbout(p, pivot mgl32.Vec3, s float32) mgl32.Vec3 {
	return p.Sub(pivot).Mul(s).Add(pivot)
}

// Sign returns -1, 0 or 1 according to the sign of v. NaN maps to 0.
func Sign(v float32) float32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// QuatFromEulerXYZ builds a rotation from Euler angles applied in X, Y, Z order
// (intrinsic), matching the usual scene-graph "XYZ" rotation order.
//
// Parameters:
//   - x, y, z: rotation angles in radians around each axis
//
// Returns:
//   - mgl32.Quat: the combined rotation
func QuatFromEulerXYZ(x, y, z float32) mgl32.Quat {
	qx := mgl32.QuatRotate(x, mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(y, AxisY)
	qz := mgl32.QuatRotate(z, mgl32.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz)
}

// ComposeTRS constructs a model matrix T * R * S from a translation, rotation and scale.
//
// Parameters:
//   - pos: translation in parent space
//   - rot: orientation
//   - scale: per-axis scale factors
//
// Returns:
//   - mgl32.Mat4: the composed column-major matrix
func ComposeTRS(pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(pos[0], pos[1], pos[2])
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(rot.Normalize().Mat4()).Mul4(s)
}

// NormalMatrix returns the inverse-transpose of the upper 3x3 of m, used to
// carry normals into world space under non-uniform scale.
func NormalMatrix(m mgl32.Mat4) mgl32.Mat3 {
	return m.Mat3().Inv().Transpose()
}

// Finite reports whether every component of v is a finite number.
func Finite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
