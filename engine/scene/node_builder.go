package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node.
// Use the With* functions to create options.
type NodeBuilderOption func(n *nodeImpl)

// WithName sets the node's identifier.
//
// Parameters:
//   - name: the identifier
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithName(name string) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.name = name
	}
}

// WithPosition sets the node's local translation.
//
// Parameters:
//   - p: the translation
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithPosition(p mgl32.Vec3) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.position = p
	}
}

// WithRotation sets the node's local rotation.
//
// Parameters:
//   - q: the rotation quaternion
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithRotation(q mgl32.Quat) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.SetRotation(q)
	}
}

// WithScale sets the node's local scale.
//
// Parameters:
//   - s: per-axis scale factors
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithScale(s mgl32.Vec3) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.scale = s
	}
}

// WithMatrix decomposes a T·R·S matrix into the node's local transform. Shear is
// discarded.
//
// Parameters:
//   - m: the local matrix
//
// Returns:
//   - NodeBuilderOption: option function to apply
func WithMatrix(m mgl32.Mat4) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.position = m.Col(3).Vec3()
		sx := m.Col(0).Vec3().Len()
		sy := m.Col(1).Vec3().Len()
		sz := m.Col(2).Vec3().Len()
		n.scale = mgl32.Vec3{sx, sy, sz}
		if sx == 0 || sy == 0 || sz == 0 {
			n.rotation = mgl32.QuatIdent()
			return
		}
		rot := mgl32.Mat3FromCols(
			m.Col(0).Vec3().Mul(1/sx),
			m.Col(1).Vec3().Mul(1/sy),
			m.Col(2).Vec3().Mul(1/sz),
		)
		n.rotation = mgl32.Mat4ToQuat(rot.Mat4()).Normalize()
	}
}

// WithMesh sets the node's mesh payload.
func WithMesh(m *model.Mesh) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.mesh = m
	}
}

// WithLight sets the node's light payload.
func WithLight(l light.Light) NodeBuilderOption {
	return func(n *nodeImpl) {
		n.light = l
	}
}

// WithChildren attaches the given nodes as children.
func WithChildren(children ...Node) NodeBuilderOption {
	return func(n *nodeImpl) {
		for _, c := range children {
			n.Add(c)
		}
	}
}
