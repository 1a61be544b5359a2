package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Node is an element of the scene graph. It carries a local transform (translation,
// rotation, scale applied in T·R·S order), an optional payload (a mesh or a light),
// and any number of children whose transforms are relative to it.
//
// Lights are placed by their own world-space position and target. The node holding
// a light controls only its visibility.
type Node interface {
	// Name returns the node's identifier.
	Name() string

	// SetName sets the node's identifier.
	SetName(name string)

	// Position returns the local translation.
	Position() mgl32.Vec3

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - p: the translation
	SetPosition(p mgl32.Vec3)

	// Rotation returns the local rotation.
	Rotation() mgl32.Quat

	// SetRotation sets the local rotation. The quaternion is normalized.
	//
	// Parameters:
	//   - q: the rotation
	SetRotation(q mgl32.Quat)

	// SetRotationEuler sets the local rotation from XYZ-order Euler angles in radians.
	//
	// Parameters:
	//   - x, y, z: rotation about each axis
	SetRotationEuler(x, y, z float32)

	// Scale returns the local scale.
	Scale() mgl32.Vec3

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - s: per-axis scale factors
	SetScale(s mgl32.Vec3)

	// Visible returns whether the node and its subtree are drawn.
	Visible() bool

	// SetVisible shows or hides the node and its subtree.
	SetVisible(visible bool)

	// Mesh returns the mesh payload, or nil.
	Mesh() *model.Mesh

	// SetMesh sets the mesh payload.
	SetMesh(m *model.Mesh)

	// Light returns the light payload, or nil.
	Light() light.Light

	// SetLight sets the light payload.
	SetLight(l light.Light)

	// Parent returns the parent node, or nil for a detached node or a root.
	Parent() Node

	// Children returns the direct children in insertion order.
	// The returned slice must not be modified.
	Children() []Node

	// Add attaches child to this node, detaching it from any previous parent first.
	// Adding a node to itself or to one of its descendants is ignored.
	//
	// Parameters:
	//   - child: the node to attach
	Add(child Node)

	// Remove detaches child from this node.
	//
	// Parameters:
	//   - child: the node to detach
	//
	// Returns:
	//   - bool: true if child was a direct child of this node
	Remove(child Node) bool

	// LocalMatrix returns T·R·S of the local transform.
	LocalMatrix() mgl32.Mat4

	// WorldMatrix returns the product of every ancestor's local matrix and this node's.
	WorldMatrix() mgl32.Mat4

	// Traverse calls fn for this node and then depth-first for its descendants.
	// When fn returns false the node's subtree is skipped.
	//
	// Parameters:
	//   - fn: visitor function
	Traverse(fn func(Node) bool)

	impl() *nodeImpl
}

// nodeImpl is the implementation of the Node interface.
type nodeImpl struct {
	name     string
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
	visible  bool
	mesh     *model.Mesh
	light    light.Light
	parent   *nodeImpl
	children []Node
}

var _ Node = &nodeImpl{}

// NewNode creates a detached node with an identity transform and any provided
// options applied.
//
// Parameters:
//   - opts: variadic list of NodeBuilderOption functions to configure the node
//
// Returns:
//   - Node: a new Node instance
func NewNode(opts ...NodeBuilderOption) Node {
	n := &nodeImpl{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
		visible:  true,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *nodeImpl) impl() *nodeImpl {
	return n
}

func (n *nodeImpl) Name() string {
	return n.name
}

func (n *nodeImpl) SetName(name string) {
	n.name = name
}

func (n *nodeImpl) Position() mgl32.Vec3 {
	return n.position
}

func (n *nodeImpl) SetPosition(p mgl32.Vec3) {
	n.position = p
}

func (n *nodeImpl) Rotation() mgl32.Quat {
	return n.rotation
}

func (n *nodeImpl) SetRotation(q mgl32.Quat) {
	if q.Len() == 0 {
		q = mgl32.QuatIdent()
	}
	n.rotation = q.Normalize()
}

func (n *nodeImpl) SetRotationEuler(x, y, z float32) {
	n.rotation = common.QuatFromEulerXYZ(x, y, z)
}

func (n *nodeImpl) Scale() mgl32.Vec3 {
	return n.scale
}

func (n *nodeImpl) SetScale(s mgl32.Vec3) {
	n.scale = s
}

func (n *nodeImpl) Visible() bool {
	return n.visible
}

func (n *nodeImpl) SetVisible(visible bool) {
	n.visible = visible
}

func (n *nodeImpl) Mesh() *model.Mesh {
	return n.mesh
}

func (n *nodeImpl) SetMesh(m *model.Mesh) {
	n.mesh = m
}

func (n *nodeImpl) Light() light.Light {
	return n.light
}

func (n *nodeImpl) SetLight(l light.Light) {
	n.light = l
}

func (n *nodeImpl) Parent() Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *nodeImpl) Children() []Node {
	return n.children
}

func (n *nodeImpl) Add(child Node) {
	if child == nil {
		return
	}
	c := child.impl()
	for p := n; p != nil; p = p.parent {
		if p == c {
			return
		}
	}
	if c.parent != nil {
		c.parent.Remove(c)
	}
	c.parent = n
	n.children = append(n.children, c)
}

func (n *nodeImpl) Remove(child Node) bool {
	if child == nil {
		return false
	}
	c := child.impl()
	for i, existing := range n.children {
		if existing.impl() == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

func (n *nodeImpl) LocalMatrix() mgl32.Mat4 {
	return common.ComposeTRS(n.position, n.rotation, n.scale)
}

func (n *nodeImpl) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *nodeImpl) Traverse(fn func(Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Traverse(fn)
	}
}
