package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecInDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d: want %v got %v", i, want, got)
	}
}

func TestNodeDefaults(t *testing.T) {
	n := NewNode()
	assert.True(t, n.Visible())
	assert.Nil(t, n.Parent())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, n.Scale())
	assert.True(t, n.LocalMatrix().ApproxEqual(mgl32.Ident4()))
}

func TestModelPlacementTransform(t *testing.T) {
	n := NewNode(
		WithScale(mgl32.Vec3{33, 33, 33}),
		WithPosition(mgl32.Vec3{0, -33, 0}),
	)
	n.SetRotationEuler(0, mgl32.DegToRad(90), 0)

	got := mgl32.TransformCoordinate(mgl32.Vec3{1, 0, 0}, n.WorldMatrix())
	assertVecInDelta(t, mgl32.Vec3{0, -33, -33}, got, 1e-4)
}

func TestWorldMatrixComposesAncestors(t *testing.T) {
	child := NewNode(WithPosition(mgl32.Vec3{1, 0, 0}))
	parent := NewNode(WithPosition(mgl32.Vec3{0, 5, 0}), WithScale(mgl32.Vec3{2, 2, 2}), WithChildren(child))
	root := NewNode(WithChildren(parent))
	root.SetPosition(mgl32.Vec3{0, 0, 10})

	got := mgl32.TransformCoordinate(mgl32.Vec3{}, child.WorldMatrix())
	assertVecInDelta(t, mgl32.Vec3{2, 5, 10}, got, 1e-5)
}

func TestWithMatrixRoundTrip(t *testing.T) {
	src := NewNode(
		WithPosition(mgl32.Vec3{3, -2, 7}),
		WithScale(mgl32.Vec3{2, 3, 4}),
	)
	src.SetRotationEuler(0.3, -0.8, 1.1)

	dst := NewNode(WithMatrix(src.LocalMatrix()))
	assertVecInDelta(t, src.Position(), dst.Position(), 1e-5)
	assertVecInDelta(t, src.Scale(), dst.Scale(), 1e-4)
	assert.True(t, dst.LocalMatrix().ApproxEqualThreshold(src.LocalMatrix(), 1e-4))
}

func TestAddReparentsAndRejectsCycles(t *testing.T) {
	a, b, c := NewNode(WithName("a")), NewNode(WithName("b")), NewNode(WithName("c"))
	a.Add(c)
	b.Add(c)

	assert.Empty(t, a.Children())
	require.Len(t, b.Children(), 1)
	assert.Same(t, b, c.Parent())

	c.Add(b)
	assert.Empty(t, c.Children())
	b.Add(b)
	assert.Len(t, b.Children(), 1)
}

func TestRemove(t *testing.T) {
	parent, child := NewNode(), NewNode()
	parent.Add(child)

	assert.True(t, parent.Remove(child))
	assert.Nil(t, child.Parent())
	assert.False(t, parent.Remove(child))
}

func TestTraverseSkipsSubtree(t *testing.T) {
	leaf := NewNode(WithName("leaf"))
	hidden := NewNode(WithName("hidden"), WithChildren(leaf))
	root := NewNode(WithName("root"), WithChildren(hidden, NewNode(WithName("other"))))

	var names []string
	root.Traverse(func(n Node) bool {
		names = append(names, n.Name())
		return n.Name() != "hidden"
	})
	assert.Equal(t, []string{"root", "hidden", "other"}, names)
}

func TestSceneLightsAndMeshes(t *testing.T) {
	s := NewScene(WithLights(light.NewDefaultRig()...))
	assert.Len(t, s.Lights(), 3)

	mesh := &model.Mesh{Name: "tri", Geometry: &model.Geometry{}}
	holder := NewNode(WithMesh(mesh), WithPosition(mgl32.Vec3{0, 1, 0}))
	group := NewNode(WithChildren(holder), WithPosition(mgl32.Vec3{2, 0, 0}))
	s.Add(group)
	assert.Equal(t, 5, s.Count())

	visits := 0
	s.VisitMeshes(func(m *model.Mesh, world mgl32.Mat4) {
		visits++
		assert.Same(t, mesh, m)
		assertVecInDelta(t, mgl32.Vec3{2, 1, 0}, mgl32.TransformCoordinate(mgl32.Vec3{}, world), 1e-6)
	})
	assert.Equal(t, 1, visits)

	group.SetVisible(false)
	s.VisitMeshes(func(*model.Mesh, mgl32.Mat4) { visits++ })
	assert.Equal(t, 1, visits)

	assert.True(t, s.Remove(group))
	assert.Equal(t, 3, s.Count())
}

func TestSceneLightsSkipsDisabled(t *testing.T) {
	s := NewScene()
	s.AddLight(light.NewLight(light.LightTypeAmbient))
	n := s.AddLight(light.NewLight(light.LightTypePoint, light.WithEnabled(false)))
	assert.Equal(t, "point-light", n.Name())
	assert.Len(t, s.Lights(), 1)
}

func TestSetRotationNormalizes(t *testing.T) {
	n := NewNode()
	n.SetRotation(mgl32.Quat{W: 2})
	assert.InDelta(t, 1.0, n.Rotation().Len(), 1e-6)

	n.SetRotation(mgl32.Quat{})
	assert.Equal(t, mgl32.QuatIdent(), n.Rotation())
}
