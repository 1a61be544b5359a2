package renderer

import "image/color"

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithSize sets the initial framebuffer size. Non-positive values keep the default.
//
// Parameters:
//   - width: framebuffer width in pixels
//   - height: framebuffer height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		if width > 0 && height > 0 {
			r.width, r.height = width, height
		}
	}
}

// WithClearColor sets the color the framebuffer is cleared to before each frame.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(c color.RGBA) RendererBuilderOption {
	return func(r *renderer) {
		r.clearColor = c
	}
}

// WithWorkers sets the number of rasterizer worker goroutines. Defaults to runtime.NumCPU().
//
// Parameters:
//   - n: the number of workers (minimum 1)
//
// Returns:
//   - RendererBuilderOption: a function that applies the workers option to a renderer
func WithWorkers(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.workers = n
	}
}

// WithBands sets how many horizontal bands each frame is split into.
// Defaults to twice the worker count. A value of 1 rasterizes on the calling goroutine.
//
// Parameters:
//   - n: the number of bands
//
// Returns:
//   - RendererBuilderOption: a function that applies the bands option to a renderer
func WithBands(n int) RendererBuilderOption {
	return func(r *renderer) {
		r.bands = n
	}
}

// WithTarget mounts t as the output Target.
//
// Parameters:
//   - t: the Target that receives each frame
//
// Returns:
//   - RendererBuilderOption: a function that applies the target option to a renderer
func WithTarget(t Target) RendererBuilderOption {
	return func(r *renderer) {
		r.target = t
	}
}
