package viewer

import (
	"log/slog"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewer)

// WithScene sets the scene the viewer renders into. Defaults to a new empty scene.
//
// Parameters:
//   - s: the scene
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithScene(s scene.Scene) ViewerBuilderOption {
	return func(v *viewer) {
		v.scene = s
	}
}

// WithCamera sets the camera the controller drives. Defaults to camera.NewCamera().
//
// Parameters:
//   - c: the camera
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithCamera(c camera.Camera) ViewerBuilderOption {
	return func(v *viewer) {
		v.camera = c
	}
}

// WithMount sets where Start mounts the renderer output: the host is asked for the
// element with the given id, and target is mounted only if the element exists.
//
// Parameters:
//   - host: the element lookup
//   - elementID: the element id
//   - target: the presentation target
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithMount(host Host, elementID string, target renderer.Target) ViewerBuilderOption {
	return func(v *viewer) {
		v.host = host
		v.target = target
		if elementID != "" {
			v.elementID = elementID
		}
	}
}

// WithModelPath sets the asset Start loads.
func WithModelPath(path string) ViewerBuilderOption {
	return func(v *viewer) {
		v.modelPath = path
	}
}

// WithPlacement sets the transform applied to the model root after loading.
func WithPlacement(p Placement) ViewerBuilderOption {
	return func(v *viewer) {
		v.placement = p
	}
}

// WithClearColor sets the 24-bit background colour.
func WithClearColor(hex uint32) ViewerBuilderOption {
	return func(v *viewer) {
		v.clearColor = hex
	}
}

// WithLights replaces the default lighting rig.
//
// Parameters:
//   - lights: the lights Start adds to the scene
//
// Returns:
//   - ViewerBuilderOption: option function to apply
func WithLights(lights ...light.Light) ViewerBuilderOption {
	return func(v *viewer) {
		v.lights = append([]light.Light{}, lights...)
	}
}

// WithLogger sets the viewer logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ViewerBuilderOption {
	return func(v *viewer) {
		if logger != nil {
			v.logger = logger
		}
	}
}
