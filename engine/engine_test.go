package engine

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestStepRunsPostsBeforeFrame(t *testing.T) {
	e := NewEngine()
	var order []string

	e.RequestFrame(func(float32) { order = append(order, "frame") })
	e.Post(func() {
		order = append(order, "post")
		e.Post(func() { order = append(order, "nested") })
	})

	e.Step()
	assert.Equal(t, []string{"post", "nested", "frame"}, order)
	assert.EqualValues(t, 1, e.Steps())
}

func TestPostFromGoroutines(t *testing.T) {
	e := NewEngine()
	count := 0

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Post(func() { count++ })
		}()
	}
	wg.Wait()

	e.Step()
	assert.Equal(t, 16, count)
}

func TestRequestFrameRunsOnce(t *testing.T) {
	e := NewEngine()
	calls := 0
	e.RequestFrame(func(float32) { calls++ })

	e.Step()
	e.Step()
	assert.Equal(t, 1, calls)
}

func TestCancelFrame(t *testing.T) {
	e := NewEngine()
	calls := 0
	id := e.RequestFrame(func(float32) { calls++ })
	e.CancelFrame(id)
	e.CancelFrame(FrameID(999))

	e.Step()
	assert.Zero(t, calls)
}

func TestCancelFrameDuringFrame(t *testing.T) {
	e := NewEngine()
	calls := 0
	var later FrameID
	e.RequestFrame(func(float32) { e.CancelFrame(later) })
	later = e.RequestFrame(func(float32) { calls++ })

	e.Step()
	assert.Zero(t, calls)
}

func TestFrameDeltaTime(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	e := NewEngine(WithClock(clock.now))
	var got []float32
	NewFrameTask(e, func(dt float32) { got = append(got, dt) })

	e.Step()
	clock.advance(250 * time.Millisecond)
	e.Step()

	require.Len(t, got, 2)
	assert.Zero(t, got[0])
	assert.InDelta(t, 0.25, got[1], 1e-6)
}

func TestFrameTaskRunsEveryStepUntilStopped(t *testing.T) {
	e := NewEngine()
	task := NewFrameTask(e, func(float32) {})

	for i := 0; i < 3; i++ {
		e.Step()
	}
	assert.EqualValues(t, 3, task.Frames())
	assert.False(t, task.Stopped())

	task.Stop()
	task.Stop()
	e.Step()
	e.Step()
	assert.EqualValues(t, 3, task.Frames())
	assert.True(t, task.Stopped())
}

func TestFrameTaskStoppedFromDrawFunction(t *testing.T) {
	e := NewEngine()
	var task FrameTask
	task = NewFrameTask(e, func(float32) {
		if task.Frames() == 2 {
			task.Stop()
		}
	})

	for i := 0; i < 5; i++ {
		e.Step()
	}
	assert.EqualValues(t, 2, task.Frames())
}

func TestFrameTaskStoppedByEarlierCallback(t *testing.T) {
	e := NewEngine()
	var task FrameTask
	e.RequestFrame(func(float32) { task.Stop() })
	task = NewFrameTask(e, func(float32) {})

	e.Step()
	assert.Zero(t, task.Frames())
}

func TestRunHeadlessStopsOnQuit(t *testing.T) {
	e := NewEngine(WithFrameRate(1000))
	var task FrameTask
	e.Post(func() {
		task = NewFrameTask(e, func(float32) {
			if task.Frames() == 3 {
				e.Quit()
			}
		})
	})

	done := make(chan error, 1)
	go func() { done <- e.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.EqualValues(t, 3, task.Frames())
	assert.NotPanics(t, e.Quit)
}

func TestRunHeadlessStopsOnCancel(t *testing.T) {
	e := NewEngine(WithFrameRate(1000))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestProfilerTicksWhenEnabled(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := profiler.NewProfiler(profiler.WithLogger(logger), profiler.WithClock(clock.now))

	e := NewEngine(WithProfiler(p), WithProfiling(true))
	clock.advance(2 * time.Second)
	e.Step()
	assert.Contains(t, buf.String(), "fps")

	buf.Reset()
	e.DisableProfiler()
	clock.advance(2 * time.Second)
	e.Step()
	assert.Empty(t, buf.String())
}
