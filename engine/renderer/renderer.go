package renderer

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/scene"
)

// ErrInvalidSize is returned by SetSize for non-positive dimensions.
var ErrInvalidSize = errors.New("renderer: width and height must be positive")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	width, height int
	clearColor    color.RGBA

	color *image.RGBA
	depth []float32

	workers int
	bands   int
	pool    worker.DynamicWorkerPool

	target Target
	frames uint64

	// scratch is reused across frames to avoid reallocating the triangle list.
	scratch []triangle
}

// Renderer draws a scene from a camera's point of view into a CPU framebuffer and
// hands each finished frame to the mounted Target.
//
// Rasterization is split into horizontal bands that run on a worker pool. Render
// blocks until every band is done, so callers on the engine loop can treat it as
// synchronous. A Renderer is not safe for concurrent use.
type Renderer interface {
	// SetClearColor sets the color the framebuffer is cleared to before each frame.
	//
	// Parameters:
	//   - c: the clear color
	SetClearColor(c color.RGBA)

	// ClearColor returns the current clear color.
	ClearColor() color.RGBA

	// SetSize resizes the framebuffer and the mounted Target.
	//
	// Parameters:
	//   - width: framebuffer width in pixels
	//   - height: framebuffer height in pixels
	//
	// Returns:
	//   - error: ErrInvalidSize for non-positive dimensions
	SetSize(width, height int) error

	// Size returns the framebuffer dimensions in pixels.
	Size() (width, height int)

	// Render clears the framebuffer, draws every visible mesh of s as seen by cam,
	// and presents the result. An inactive scene produces a cleared frame.
	//
	// Parameters:
	//   - s: the scene to draw
	//   - cam: the viewing camera
	//
	// Returns:
	//   - error: an error if the mounted Target fails to present
	Render(s scene.Scene, cam camera.Camera) error

	// Frame returns the framebuffer of the last rendered frame. The image is reused
	// by the next Render or SetSize call.
	Frame() *image.RGBA

	// Mount attaches the output Target. A nil Target detaches the current one.
	// The Target is resized to the framebuffer immediately.
	//
	// Parameters:
	//   - t: the Target that receives each frame
	Mount(t Target)

	// Target returns the mounted Target, or nil.
	Target() Target

	// Frames returns the number of frames rendered so far.
	Frames() uint64
}

var _ Renderer = &renderer{}

// NewRenderer creates a software Renderer with any provided options applied.
// Defaults: 300x150 framebuffer, black clear color, one worker per CPU.
//
// Parameters:
//   - opts: variadic list of RendererBuilderOption functions to configure the renderer
//
// Returns:
//   - Renderer: a new Renderer instance
func NewRenderer(opts ...RendererBuilderOption) Renderer {
	r := &renderer{
		width:      300,
		height:     150,
		clearColor: color.RGBA{A: 0xff},
		workers:    runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers < 1 {
		r.workers = 1
	}
	if r.bands < 1 {
		r.bands = r.workers * 2
	}
	r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	r.allocate()
	if r.target != nil {
		r.target.Resize(r.width, r.height)
	}
	return r
}

func (r *renderer) allocate() {
	r.color = image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	r.depth = make([]float32, r.width*r.height)
}

func (r *renderer) SetClearColor(c color.RGBA) {
	r.clearColor = c
}

func (r *renderer) ClearColor() color.RGBA {
	return r.clearColor
}

func (r *renderer) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	if width != r.width || height != r.height {
		r.width, r.height = width, height
		r.allocate()
	}
	if r.target != nil {
		r.target.Resize(width, height)
	}
	return nil
}

func (r *renderer) Size() (width, height int) {
	return r.width, r.height
}

func (r *renderer) Frame() *image.RGBA {
	return r.color
}

func (r *renderer) Mount(t Target) {
	r.target = t
	if t != nil {
		t.Resize(r.width, r.height)
	}
}

func (r *renderer) Target() Target {
	return r.target
}

func (r *renderer) Frames() uint64 {
	return r.frames
}

func (r *renderer) Render(s scene.Scene, cam camera.Camera) error {
	var tris []triangle
	var env shadingEnv
	if s != nil && s.Active() && cam != nil {
		tris = r.setup(s, cam)
		env = shadingEnv{lights: s.Lights()}
	}

	r.rasterize(tris, &env)
	r.frames++

	if r.target == nil {
		return nil
	}
	if err := r.target.Present(r.color); err != nil {
		return fmt.Errorf("present frame %d: %w", r.frames, err)
	}
	return nil
}

// rasterize clears and fills every band. Bands own disjoint row ranges of the
// color and depth buffers.
func (r *renderer) rasterize(tris []triangle, env *shadingEnv) {
	bands := min(r.bands, r.height)
	rowsPerBand := int(math.Ceil(float64(r.height) / float64(bands)))
	if bands <= 1 {
		r.drawBand(0, r.height, tris, env)
		return
	}

	var wg sync.WaitGroup
	for id := range bands {
		y0 := id * rowsPerBand
		y1 := min(y0+rowsPerBand, r.height)
		if y0 >= y1 {
			break
		}
		wg.Add(1)
		r.pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				r.drawBand(y0, y1, tris, env)
				return nil, nil
			},
		})
	}
	wg.Wait()
}
