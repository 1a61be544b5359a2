package viewer

import (
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

// Host is where the viewer looks up the element its output is mounted on.
// window.Window satisfies it.
type Host interface {
	Element(id string) (window.Element, bool)
}

// Placement is the transform applied to the model root once it has loaded.
type Placement struct {
	Scale           float32
	Position        mgl32.Vec3
	RotationDegrees mgl32.Vec3
}

// DefaultPlacement stands the avatar on the floor below the origin, facing the camera.
var DefaultPlacement = Placement{
	Scale:           33,
	Position:        mgl32.Vec3{0, -33, 0},
	RotationDegrees: mgl32.Vec3{0, 90, 0},
}

// viewer implements the Viewer interface.
type viewer struct {
	eng        engine.Engine
	renderer   renderer.Renderer
	loader     loader.Loader
	controller camera.CameraController
	camera     camera.Camera
	scene      scene.Scene
	logger     *slog.Logger

	host      Host
	target    renderer.Target
	elementID string

	modelPath  string
	placement  Placement
	clearColor uint32
	lights     []light.Light

	startOnce sync.Once
	started   bool
	mounted   bool
	model     scene.Node
	task      engine.FrameTask
	renderErr string
}

// Viewer shows one model with a camera controller. Every method must be called on
// the engine loop goroutine.
type Viewer interface {
	// Start builds the lights, begins loading the model, mounts the output, attaches
	// the controller and starts the render loop. Only the first call has any effect.
	Start()

	// Started reports whether Start has run.
	Started() bool

	// Stop halts the render loop.
	Stop()

	// HandleResize updates the camera aspect, the renderer size and the controller
	// viewport. Zero or negative sizes are ignored.
	//
	// Parameters:
	//   - width, height: new viewport size in pixels
	HandleResize(width, height int)

	// PointerDown forwards a button press to the controller.
	PointerDown(e common.PointerEvent)

	// PointerMove forwards pointer motion to the controller.
	PointerMove(e common.PointerEvent)

	// PointerUp forwards a button release to the controller.
	PointerUp(e common.PointerEvent)

	// Wheel forwards a scroll event to the controller.
	Wheel(e common.WheelEvent)

	// KeyDown forwards a key press to the controller.
	KeyDown(keyCode uint32)

	// Bind routes the window's input and resize callbacks to this viewer.
	//
	// Parameters:
	//   - w: the window delivering events
	Bind(w window.Window)

	// Scene returns the scene being rendered.
	Scene() scene.Scene

	// Camera returns the viewer camera.
	Camera() camera.Camera

	// Controller returns the camera controller.
	Controller() camera.CameraController

	// Renderer returns the renderer.
	Renderer() renderer.Renderer

	// Model returns the loaded model root, or nil until loading succeeds.
	Model() scene.Node

	// Mounted reports whether the renderer output was mounted on the host element.
	Mounted() bool

	// FrameTask returns the render loop task, or nil before Start.
	FrameTask() engine.FrameTask
}

var _ Viewer = &viewer{}

// New creates a Viewer around its collaborators. Options configure the scene,
// camera, model and mounting; see the With* functions.
// Panics if any collaborator is nil.
//
// Parameters:
//   - eng: the engine whose frames drive rendering
//   - rend: the renderer
//   - ld: the model loader; its callbacks must be posted to eng
//   - ctrl: the camera controller
//   - options: functional options for viewer configuration
//
// Returns:
//   - Viewer: the new viewer
func New(eng engine.Engine, rend renderer.Renderer, ld loader.Loader, ctrl camera.CameraController, options ...ViewerBuilderOption) Viewer {
	if eng == nil || rend == nil || ld == nil || ctrl == nil {
		panic("viewer: New requires an engine, renderer, loader and controller")
	}
	v := &viewer{
		eng:        eng,
		renderer:   rend,
		loader:     ld,
		controller: ctrl,
		logger:     slog.Default(),
		elementID:  window.DefaultElementID,
		modelPath:  "assets/models/vrm/AliciaSolid.vrm",
		placement:  DefaultPlacement,
		clearColor: 0xeeeeee,
	}
	for _, opt := range options {
		opt(v)
	}
	if v.scene == nil {
		v.scene = scene.NewScene(scene.WithSceneName("viewer"))
	}
	if v.camera == nil {
		v.camera = camera.NewCamera()
	}
	if v.lights == nil {
		v.lights = light.NewDefaultRig()
	}
	return v
}

func (v *viewer) Start() {
	v.startOnce.Do(v.start)
}

func (v *viewer) start() {
	v.started = true
	v.renderer.SetClearColor(common.HexColor(v.clearColor))

	for _, l := range v.lights {
		v.scene.AddLight(l)
	}

	path := v.modelPath
	v.loader.LoadAsync(path, v.onModelLoaded, func(err error) {
		v.logger.Error("failed to load model", "path", path, "error", err)
	})

	v.mount()
	v.controller.Attach(v.camera)

	width, height := v.renderer.Size()
	v.HandleResize(width, height)

	v.task = engine.NewFrameTask(v.eng, v.draw)
	v.logger.Info("viewer started",
		"controller", v.controller.Kind().String(),
		"model", path,
		"mounted", v.mounted,
	)
}

// mount attaches the target when the host has the configured element.
// The element size becomes the render size.
func (v *viewer) mount() {
	if v.host == nil || v.target == nil {
		return
	}
	el, ok := v.host.Element(v.elementID)
	if !ok {
		return
	}
	v.renderer.Mount(v.target)
	v.mounted = true
	if err := v.renderer.SetSize(el.Width(), el.Height()); err != nil {
		v.logger.Warn("element has no drawable area", "element", v.elementID, "error", err)
	}
}

func (v *viewer) onModelLoaded(root scene.Node) {
	p := v.placement
	root.SetScale(mgl32.Vec3{p.Scale, p.Scale, p.Scale})
	root.SetPosition(p.Position)
	root.SetRotationEuler(
		mgl32.DegToRad(p.RotationDegrees.X()),
		mgl32.DegToRad(p.RotationDegrees.Y()),
		mgl32.DegToRad(p.RotationDegrees.Z()),
	)
	v.scene.Add(root)
	v.model = root
	v.logger.Info("model added to scene", "path", v.modelPath, "nodes", v.scene.Count())
}

// draw renders one frame. Repeated identical errors are logged once.
func (v *viewer) draw(_ float32) {
	err := v.renderer.Render(v.scene, v.camera)
	if err == nil {
		v.renderErr = ""
		return
	}
	if msg := err.Error(); msg != v.renderErr {
		v.renderErr = msg
		v.logger.Error("render failed", "error", err)
	}
}

func (v *viewer) Started() bool {
	return v.started
}

func (v *viewer) Stop() {
	if v.task != nil {
		v.task.Stop()
	}
}

func (v *viewer) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.camera.SetAspect(float32(width) / float32(height))
	v.camera.UpdateProjectionMatrix()
	if err := v.renderer.SetSize(width, height); err != nil {
		v.logger.Warn("resize failed", "width", width, "height", height, "error", err)
		return
	}
	v.controller.SetViewport(width, height)
}

func (v *viewer) PointerDown(e common.PointerEvent) {
	v.controller.PointerDown(e)
}

func (v *viewer) PointerMove(e common.PointerEvent) {
	v.controller.PointerMove(e)
}

func (v *viewer) PointerUp(e common.PointerEvent) {
	v.controller.PointerUp(e)
}

func (v *viewer) Wheel(e common.WheelEvent) {
	v.controller.Wheel(e)
}

func (v *viewer) KeyDown(keyCode uint32) {
	v.controller.KeyDown(keyCode)
}

func (v *viewer) Bind(w window.Window) {
	w.SetResizeCallback(v.HandleResize)
	w.SetPointerDownCallback(v.PointerDown)
	w.SetPointerMoveCallback(v.PointerMove)
	w.SetPointerUpCallback(v.PointerUp)
	w.SetWheelCallback(v.Wheel)
	w.SetKeyDownCallback(v.KeyDown)
}

func (v *viewer) Scene() scene.Scene {
	return v.scene
}

func (v *viewer) Camera() camera.Camera {
	return v.camera
}

func (v *viewer) Controller() camera.CameraController {
	return v.controller
}

func (v *viewer) Renderer() renderer.Renderer {
	return v.renderer
}

func (v *viewer) Model() scene.Node {
	return v.model
}

func (v *viewer) Mounted() bool {
	return v.mounted
}

func (v *viewer) FrameTask() engine.FrameTask {
	return v.task
}
