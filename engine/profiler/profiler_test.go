package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTickSamplesOncePerInterval(t *testing.T) {
	clock := &fakeClock{t: time.Unix(0, 0)}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewProfiler(WithClock(clock.now), WithLogger(logger), WithInterval(time.Second))

	for range 29 {
		clock.t = clock.t.Add(time.Second / 60)
		_, ok := p.Tick()
		require.False(t, ok)
	}
	clock.t = clock.t.Add(time.Second/2 + 20*time.Millisecond)
	s, ok := p.Tick()
	require.True(t, ok)
	assert.InDelta(t, 30.0, s.FPS, 0.5)
	assert.Contains(t, buf.String(), "fps=")

	clock.t = clock.t.Add(time.Millisecond)
	_, ok = p.Tick()
	assert.False(t, ok, "counter restarts after a sample")
}
