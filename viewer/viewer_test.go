package viewer

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/model"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type element struct {
	id            string
	width, height int
}

func (e element) ID() string  { return e.id }
func (e element) Width() int  { return e.width }
func (e element) Height() int { return e.height }

type host struct {
	elements []element
}

func (h host) Element(id string) (window.Element, bool) {
	for _, e := range h.elements {
		if e.id == id {
			return e, true
		}
	}
	return nil, false
}

type fixture struct {
	eng    engine.Engine
	rend   renderer.Renderer
	target renderer.ImageTarget
	logs   *bytes.Buffer
	viewer Viewer
}

func avatar() scene.Node {
	g := &model.Geometry{
		Positions: []mgl32.Vec3{{-0.5, 0, 0}, {0.5, 0, 0}, {0, 1, 0}},
		Indices:   []uint32{0, 1, 2},
	}
	g.ComputeNormals()
	mesh := &model.Mesh{Name: "body", Geometry: g, Material: model.DefaultMaterial()}
	return scene.NewNode(scene.WithName("avatar"), scene.WithMesh(mesh))
}

// newFixture builds a viewer whose loader either serves a cached avatar at modelPath
// or, when cached is nil, fails from disk.
func newFixture(t *testing.T, kind camera.ControllerKind, modelPath string, cached scene.Node, h Host) *fixture {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, nil))

	eng := engine.NewEngine(engine.WithLogger(logger))
	rend := renderer.NewRenderer(renderer.WithSize(80, 60), renderer.WithWorkers(2))
	target := renderer.NewImageTarget()

	loaderOpts := []loader.LoaderBuilderOption{loader.WithPoster(eng.Post), loader.WithLogger(logger)}
	if cached != nil {
		loaderOpts = append(loaderOpts, loader.WithModel(modelPath, cached))
	}
	ld := loader.NewLoader(loader.BackendTypeGLTF, loaderOpts...)

	ctrl, err := camera.NewController(kind)
	require.NoError(t, err)

	start := mgl32.Vec3{-30, 40, 30}
	if kind == camera.ControllerKindManual {
		start = mgl32.Vec3{-30, 30, 30}
	}
	cam := camera.NewCamera(camera.WithPosition(start.X(), start.Y(), start.Z()), camera.WithLookAt(0, 0, 0))

	v := New(eng, rend, ld, ctrl,
		WithCamera(cam),
		WithModelPath(modelPath),
		WithMount(h, window.DefaultElementID, target),
		WithLogger(logger),
	)
	return &fixture{eng: eng, rend: rend, target: target, logs: logs, viewer: v}
}

// stepUntil steps the engine until cond holds or a deadline passes.
func stepUntil(t *testing.T, eng engine.Engine, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached before deadline")
		}
		eng.Step()
		time.Sleep(time.Millisecond)
	}
}

func defaultHost(width, height int) Host {
	return host{elements: []element{{id: window.DefaultElementID, width: width, height: height}}}
}

func TestStartRunsOnce(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), defaultHost(80, 60))

	f.viewer.Start()
	f.viewer.Start()
	stepUntil(t, f.eng, func() bool { return f.viewer.Model() != nil })
	f.eng.Step()

	assert.True(t, f.viewer.Started())
	assert.Len(t, f.viewer.Scene().Lights(), 3)
	assert.Equal(t, common.HexColor(0xeeeeee), f.rend.ClearColor())
	assert.Same(t, f.viewer.Camera(), f.viewer.Controller().Camera())

	models := 0
	f.viewer.Scene().Root().Traverse(func(n scene.Node) bool {
		if n.Name() == "avatar" {
			models++
		}
		return true
	})
	assert.Equal(t, 1, models)
}

func TestModelPlacement(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), defaultHost(80, 60))
	f.viewer.Start()
	stepUntil(t, f.eng, func() bool { return f.viewer.Model() != nil })

	root := f.viewer.Model()
	assert.Equal(t, mgl32.Vec3{33, 33, 33}, root.Scale())
	assert.Equal(t, mgl32.Vec3{0, -33, 0}, root.Position())

	p := root.WorldMatrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.InDelta(t, 0, p.X(), 1e-3)
	assert.InDelta(t, -33, p.Y(), 1e-3)
	assert.InDelta(t, -33, p.Z(), 1e-3)
	assert.Contains(t, f.logs.String(), "model added to scene")
}

func TestLoadFailureKeepsRendering(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "AliciaSolid.vrm")
	f := newFixture(t, camera.ControllerKindManual, missing, nil, defaultHost(80, 60))
	f.viewer.Start()

	stepUntil(t, f.eng, func() bool {
		return bytes.Contains(f.logs.Bytes(), []byte("failed to load model"))
	})
	assert.Contains(t, f.logs.String(), "level=ERROR")
	assert.Contains(t, f.logs.String(), missing)
	assert.Nil(t, f.viewer.Model())

	before := f.rend.Frames()
	f.eng.Step()
	f.eng.Step()
	assert.Equal(t, before+2, f.rend.Frames())
	assert.Equal(t, 3, f.viewer.Scene().Count(), "only the lights are in the scene")
}

func TestMountPresentsFrames(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), defaultHost(120, 90))
	f.viewer.Start()
	f.eng.Step()

	require.True(t, f.viewer.Mounted())
	assert.Same(t, f.target, f.rend.Target())
	assert.Equal(t, 1, f.target.Presents())

	w, h := f.target.Size()
	assert.Equal(t, 120, w)
	assert.Equal(t, 90, h)
	assert.InDelta(t, 120.0/90.0, f.viewer.Camera().Aspect(), 1e-6)

	last := f.target.Last()
	require.NotNil(t, last)
	assert.Equal(t, common.HexColor(0xeeeeee), last.RGBAAt(0, 0))
}

func TestMissingElementSkipsMount(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), host{})
	f.viewer.Start()
	f.eng.Step()

	assert.False(t, f.viewer.Mounted())
	assert.Nil(t, f.rend.Target())
	assert.Zero(t, f.target.Presents())
	assert.EqualValues(t, 1, f.rend.Frames())
	assert.NotContains(t, f.logs.String(), "level=ERROR")
}

func TestHandleResize(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), defaultHost(800, 600))
	f.viewer.Start()

	cam := f.viewer.Camera()
	assert.InDelta(t, 800.0/600.0, cam.Aspect(), 1e-6)

	f.viewer.HandleResize(1600, 900)
	assert.InDelta(t, 1600.0/900.0, cam.Aspect(), 1e-6)
	assert.Equal(t, mgl32.Perspective(cam.Fov(), 1600.0/900.0, cam.Near(), cam.Far()), cam.ProjectionMatrix())

	w, h := f.rend.Size()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 900, h)
	tw, th := f.target.Size()
	assert.Equal(t, 1600, tw)
	assert.Equal(t, 900, th)

	f.eng.Step()
	assert.Equal(t, 1600, f.target.Last().Bounds().Dx())
}

func TestHandleResizeIgnoresZeroSize(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), defaultHost(800, 600))
	f.viewer.Start()

	f.viewer.HandleResize(0, 600)
	f.viewer.HandleResize(800, 0)

	assert.InDelta(t, 800.0/600.0, f.viewer.Camera().Aspect(), 1e-6)
	w, h := f.rend.Size()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)
}

func TestStopHaltsRenderLoop(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), defaultHost(80, 60))
	f.viewer.Stop()

	f.viewer.Start()
	f.eng.Step()
	f.eng.Step()
	assert.EqualValues(t, 2, f.viewer.FrameTask().Frames())

	f.viewer.Stop()
	f.eng.Step()
	assert.EqualValues(t, 2, f.viewer.FrameTask().Frames())
	assert.EqualValues(t, 2, f.rend.Frames())
}

func TestManualInputDispatch(t *testing.T) {
	f := newFixture(t, camera.ControllerKindManual, "avatar.vrm", avatar(), defaultHost(80, 60))
	f.viewer.Start()
	cam := f.viewer.Camera()
	start := cam.Position()

	f.viewer.PointerDown(common.PointerEvent{X: 10, Y: 10})
	f.viewer.PointerMove(common.PointerEvent{X: 190, Y: 50})
	f.viewer.PointerUp(common.PointerEvent{X: 190, Y: 50})

	// 180 px at half a degree per pixel is a quarter turn about +Y.
	want := mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 1, 0}).Rotate(start)
	assert.InDelta(t, want.X(), cam.Position().X(), 1e-3)
	assert.InDelta(t, want.Y(), cam.Position().Y(), 1e-3)
	assert.InDelta(t, want.Z(), cam.Position().Z(), 1e-3)

	before := cam.Position().Len()
	f.viewer.Wheel(common.WheelEvent{DeltaY: -100})
	assert.InDelta(t, before*1.1, cam.Position().Len(), 1e-3)
}

func TestOrbitKeyDispatch(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), defaultHost(80, 60))
	f.viewer.Start()
	cam := f.viewer.Camera()
	start := cam.Position()

	f.viewer.KeyDown(common.KeyLeft)
	assert.NotEqual(t, start, cam.Position())
	assert.InDelta(t, start.Len(), cam.Position().Len(), 1e-3)
}

func TestCustomLights(t *testing.T) {
	f := newFixture(t, camera.ControllerKindOrbit, "avatar.vrm", avatar(), defaultHost(80, 60))
	v := New(f.eng, f.rend, loader.NewLoader(loader.BackendTypeGLTF), camera.NewManualController(),
		WithLights(light.NewLight(light.LightTypeAmbient)),
		WithModelPath("nothing.vrm"),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	)
	v.Start()
	assert.Len(t, v.Scene().Lights(), 1)
}

func TestNewPanicsWithoutCollaborators(t *testing.T) {
	assert.Panics(t, func() {
		New(nil, renderer.NewRenderer(), loader.NewLoader(loader.BackendTypeGLTF), camera.NewOrbitController())
	})
}
