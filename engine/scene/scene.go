package scene

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// Scene owns the root of a node tree and answers the questions a renderer asks each
// frame: which lights are on and which meshes are drawn with what world matrix.
//
// A Scene is not safe for concurrent mutation. All changes happen on the engine loop;
// the renderer only reads while a frame is being drawn.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is rendered.
	Active() bool

	// SetActive sets whether this scene is rendered.
	SetActive(active bool)

	// Root returns the root node. Its transform applies to the whole scene.
	Root() Node

	// Add attaches nodes to the root.
	//
	// Parameters:
	//   - nodes: the nodes to attach
	Add(nodes ...Node)

	// AddLight wraps l in a node named after its type and attaches it to the root.
	//
	// Parameters:
	//   - l: the light to add
	//
	// Returns:
	//   - Node: the node holding the light
	AddLight(l light.Light) Node

	// Remove detaches a direct child of the root.
	//
	// Parameters:
	//   - n: the node to detach
	//
	// Returns:
	//   - bool: true if n was attached to the root
	Remove(n Node) bool

	// Count returns the number of nodes under the root, excluding the root itself.
	//
	// Returns:
	//   - int: node count
	Count() int

	// Lights returns every enabled light held by a visible node.
	//
	// Returns:
	//   - []light.Light: the active lights in traversal order
	Lights() []light.Light

	// VisitMeshes calls fn with every mesh held by a visible node and the world matrix
	// of that node, in depth-first order.
	//
	// Parameters:
	//   - fn: visitor function
	VisitMeshes(fn func(mesh *model.Mesh, world mgl32.Mat4))
}

// scene is the implementation of the Scene interface.
type scene struct {
	name   string
	active bool
	root   Node
}

var _ Scene = &scene{}

// NewScene creates an empty active scene with any provided options applied.
//
// Parameters:
//   - opts: variadic list of SceneBuilderOption functions to configure the scene
//
// Returns:
//   - Scene: a new Scene instance
func NewScene(opts ...SceneBuilderOption) Scene {
	s := &scene{
		active: true,
		root:   NewNode(WithName("root")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	return s.name
}

func (s *scene) SetName(name string) {
	s.name = name
}

func (s *scene) Active() bool {
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.active = active
}

func (s *scene) Root() Node {
	return s.root
}

func (s *scene) Add(nodes ...Node) {
	for _, n := range nodes {
		s.root.Add(n)
	}
}

func (s *scene) AddLight(l light.Light) Node {
	n := NewNode(WithName(l.Type().String()+"-light"), WithLight(l))
	s.root.Add(n)
	return n
}

func (s *scene) Remove(n Node) bool {
	return s.root.Remove(n)
}

func (s *scene) Count() int {
	count := -1
	s.root.Traverse(func(Node) bool {
		count++
		return true
	})
	return count
}

func (s *scene) Lights() []light.Light {
	var lights []light.Light
	s.root.Traverse(func(n Node) bool {
		if !n.Visible() {
			return false
		}
		if l := n.Light(); l != nil && l.Enabled() {
			lights = append(lights, l)
		}
		return true
	})
	return lights
}

func (s *scene) VisitMeshes(fn func(mesh *model.Mesh, world mgl32.Mat4)) {
	visitMeshes(s.root, mgl32.Ident4(), fn)
}

// visitMeshes accumulates world matrices down the tree so each node's local matrix
// is computed once per visit.
func visitMeshes(n Node, parent mgl32.Mat4, fn func(*model.Mesh, mgl32.Mat4)) {
	if !n.Visible() {
		return
	}
	world := parent.Mul4(n.LocalMatrix())
	if m := n.Mesh(); m != nil && m.Geometry != nil {
		fn(m, world)
	}
	for _, c := range n.Children() {
		visitMeshes(c, world, fn)
	}
}
