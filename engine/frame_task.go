package engine

// FrameTask re-runs a draw function once per engine frame until stopped.
type FrameTask interface {
	// Stop cancels the task. No frame runs the draw function after Stop returns.
	Stop()

	// Stopped reports whether Stop has been called.
	Stopped() bool

	// Frames returns how many frames the task has drawn.
	Frames() uint64
}

type frameTask struct {
	eng     Engine
	fn      func(deltaTime float32)
	pending FrameID
	stopped bool
	frames  uint64
}

var _ FrameTask = &frameTask{}

// NewFrameTask requests a frame on eng that calls fn and then requests the next one.
// Must be called from the loop goroutine.
//
// Parameters:
//   - eng: the engine that schedules frames
//   - fn: the draw function, called exactly once per frame
//
// Returns:
//   - FrameTask: handle for stopping the task
func NewFrameTask(eng Engine, fn func(deltaTime float32)) FrameTask {
	t := &frameTask{eng: eng, fn: fn}
	t.pending = eng.RequestFrame(t.frame)
	return t
}

func (t *frameTask) frame(dt float32) {
	if t.stopped {
		return
	}
	t.frames++
	t.fn(dt)
	if !t.stopped {
		t.pending = t.eng.RequestFrame(t.frame)
	}
}

func (t *frameTask) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.eng.CancelFrame(t.pending)
}

func (t *frameTask) Stopped() bool {
	return t.stopped
}

func (t *frameTask) Frames() uint64 {
	return t.frames
}
