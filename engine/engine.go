package engine

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// FrameID identifies a pending frame request.
type FrameID uint64

// engine implements the Engine interface.
// Everything except Post runs on the goroutine that calls Run or Step.
type engine struct {
	window window.Window
	logger *slog.Logger
	now    func() time.Time

	postMu sync.Mutex
	posts  []func()
	wake   chan struct{}

	frames      map[FrameID]func(deltaTime float32)
	inflight    map[FrameID]func(deltaTime float32)
	nextFrameID FrameID
	lastFrame   time.Time
	steps       uint64

	frameInterval time.Duration // headless pacing; windowed runs follow the message loop

	profiler         *profiler.Profiler
	profilingEnabled bool

	quitChannel chan struct{}
	quitOnce    sync.Once
}

// Engine is the single-threaded event loop that drives the viewer.
// Posted tasks and frame callbacks run one at a time on the loop goroutine, so
// state they touch needs no locking.
type Engine interface {
	// Window returns the underlying window, or nil for a headless engine.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Logger returns the engine logger.
	Logger() *slog.Logger

	// Post queues fn to run on the loop goroutine at the start of the next Step.
	// Post is safe to call from any goroutine.
	//
	// Parameters:
	//   - fn: the task to run
	Post(fn func())

	// RequestFrame schedules callback to run once during the next frame.
	// Callbacks requested while a frame is running are deferred to the following frame.
	//
	// Parameters:
	//   - callback: function receiving the seconds elapsed since the previous frame
	//
	// Returns:
	//   - FrameID: handle for CancelFrame
	RequestFrame(callback func(deltaTime float32)) FrameID

	// CancelFrame drops a pending frame request. Unknown ids are ignored.
	//
	// Parameters:
	//   - id: the handle returned by RequestFrame
	CancelFrame(id FrameID)

	// Step runs every queued task, then one frame.
	Step()

	// Steps returns how many times Step has completed.
	Steps() uint64

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameRate sets the headless frame rate in frames per second.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetFrameRate(fps float64)

	// Run drives Step until the window closes, Quit is called or ctx is cancelled.
	// With a window, Step runs once per message loop iteration; without one, a
	// ticker paces the frames.
	//
	// Parameters:
	//   - ctx: cancels the loop
	//
	// Returns:
	//   - error: ctx.Err() if the context ended the loop, nil otherwise
	Run(ctx context.Context) error

	// Quit stops Run after the current iteration.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (window, profiling, frame rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:        slog.Default(),
		now:           time.Now,
		wake:          make(chan struct{}, 1),
		frames:        make(map[FrameID]func(float32)),
		frameInterval: time.Second / 60,
		quitChannel:   make(chan struct{}),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Logger() *slog.Logger {
	return e.logger
}

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.postMu.Lock()
	e.posts = append(e.posts, fn)
	e.postMu.Unlock()

	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *engine) RequestFrame(callback func(deltaTime float32)) FrameID {
	e.nextFrameID++
	e.frames[e.nextFrameID] = callback
	return e.nextFrameID
}

func (e *engine) CancelFrame(id FrameID) {
	delete(e.frames, id)
	delete(e.inflight, id)
}

func (e *engine) Step() {
	e.drainPosts()
	e.runFrame()
	e.steps++
}

func (e *engine) Steps() uint64 {
	return e.steps
}

// drainPosts runs queued tasks, including tasks posted by tasks in this batch.
func (e *engine) drainPosts() {
	for {
		e.postMu.Lock()
		batch := e.posts
		e.posts = nil
		e.postMu.Unlock()

		if len(batch) == 0 {
			return
		}
		for _, fn := range batch {
			fn()
		}
	}
}

// runFrame invokes the callbacks pending at frame start in request order.
func (e *engine) runFrame() {
	now := e.now()
	var dt float32
	if !e.lastFrame.IsZero() {
		dt = float32(now.Sub(e.lastFrame).Seconds())
	}
	e.lastFrame = now

	if len(e.frames) > 0 {
		ids := make([]FrameID, 0, len(e.frames))
		for id := range e.frames {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		e.inflight = e.frames
		e.frames = make(map[FrameID]func(float32), len(e.inflight))
		for _, id := range ids {
			// A callback earlier in this frame may have cancelled a later one.
			cb, ok := e.inflight[id]
			if !ok {
				continue
			}
			cb(dt)
		}
		e.inflight = nil
	}

	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick()
	}
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	e.frameInterval = time.Duration(float64(time.Second) / fps)
}

func (e *engine) Run(ctx context.Context) error {
	if e.window != nil {
		return e.runWindowed(ctx)
	}
	return e.runHeadless(ctx)
}

// runWindowed steps once per window message loop iteration.
func (e *engine) runWindowed(ctx context.Context) error {
	e.window.SetUpdateCallback(func() {
		if ctx.Err() != nil || e.quitting() {
			e.window.RequestClose()
			return
		}
		e.Step()
	})
	e.window.ProcessMessages()
	e.window.SetUpdateCallback(nil)
	return ctx.Err()
}

// runHeadless paces frames with a ticker and runs posted tasks as they arrive.
func (e *engine) runHeadless(ctx context.Context) error {
	ticker := time.NewTicker(e.frameInterval)
	defer ticker.Stop()

	for !e.quitting() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.quitChannel:
			return nil
		case <-e.wake:
			e.drainPosts()
		case <-ticker.C:
			e.Step()
		}
	}
	return nil
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

func (e *engine) quitting() bool {
	select {
	case <-e.quitChannel:
		return true
	default:
		return false
	}
}
