// Command viewer shows a glTF/VRM avatar in a window with an orbit or drag camera.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/config"
	"github.com/Carmen-Shannon/oxy-viewer/engine"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/loader"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/Carmen-Shannon/oxy-viewer/viewer"
	"github.com/go-gl/mathgl/mgl32"
)

// GLFW and the WebGPU surface must stay on the main OS thread.
func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		slog.Error("viewer exited", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("viewer", flag.ContinueOnError)
	configPath := fs.String("config", "viewer.toml", "path to the TOML config file")
	controller := fs.String("controller", "", "camera controller: orbit or manual")
	modelPath := fs.String("model", "", "model file to load (.vrm, .glb, .gltf)")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *controller != "" {
		cfg.Controller = *controller
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := common.ParseLogLevel(cfg.Log.Level)
	logger := common.NewLogger(os.Stderr, level, cfg.Log.Format)
	slog.SetDefault(logger)

	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithMinWidth(cfg.Window.MinWidth),
		window.WithMinHeight(cfg.Window.MinHeight),
		window.WithMaxWidth(cfg.Window.MaxWidth),
		window.WithMaxHeight(cfg.Window.MaxHeight),
		window.WithElementID(cfg.Window.ElementID),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := win.Close(); err != nil {
			logger.Warn("failed to close window", "error", err)
		}
	}()

	mode := renderer.PresentModeVSync
	if strings.EqualFold(cfg.Render.PresentMode, "uncapped") {
		mode = renderer.PresentModeUncapped
	}
	presenter, err := renderer.NewWGPUPresenter(win.SurfaceDescriptor(),
		renderer.WithPresentMode(mode),
		renderer.WithPresenterLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("failed to create presenter: %w", err)
	}
	defer presenter.Release()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithLogger(logger),
		engine.WithProfiling(cfg.Render.Profiling),
		engine.WithFrameRate(cfg.Render.FrameRate),
	)

	rendOpts := []renderer.RendererBuilderOption{renderer.WithSize(win.Width(), win.Height())}
	if cfg.Render.Workers > 0 {
		rendOpts = append(rendOpts, renderer.WithWorkers(cfg.Render.Workers))
	}
	if cfg.Render.Bands > 0 {
		rendOpts = append(rendOpts, renderer.WithBands(cfg.Render.Bands))
	}
	rend := renderer.NewRenderer(rendOpts...)

	ld := loader.NewLoader(loader.BackendTypeGLTF,
		loader.WithPoster(eng.Post),
		loader.WithLogger(logger),
	)

	ctrl, err := camera.NewController(cfg.ControllerKind())
	if err != nil {
		return err
	}
	pos := cfg.CameraPosition()
	cam := camera.NewCamera(
		camera.WithPosition(pos.X(), pos.Y(), pos.Z()),
		camera.WithLookAt(0, 0, 0),
		camera.WithFov(mgl32.DegToRad(cfg.Camera.FovDegrees)),
		camera.WithNear(cfg.Camera.Near),
		camera.WithFar(cfg.Camera.Far),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
	)

	v := viewer.New(eng, rend, ld, ctrl,
		viewer.WithCamera(cam),
		viewer.WithModelPath(cfg.Model.Path),
		viewer.WithPlacement(viewer.Placement{
			Scale:           cfg.Model.Scale,
			Position:        mgl32.Vec3(cfg.Model.Position),
			RotationDegrees: mgl32.Vec3(cfg.Model.RotationDegrees),
		}),
		viewer.WithClearColor(cfg.Render.ClearColor),
		viewer.WithMount(win, cfg.Window.ElementID, presenter),
		viewer.WithLogger(logger),
	)
	v.Bind(win)

	// The first loop pass is the window-ready signal.
	eng.Post(v.Start)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = eng.Run(ctx)
	v.Stop()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
