package window

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWheelEventUsesBrowserSign(t *testing.T) {
	// Rolling away from the user is a positive GLFW offset and a negative browser delta.
	assert.Equal(t, common.WheelEvent{DeltaY: -100}, wheelEvent(1))
	assert.Equal(t, common.WheelEvent{DeltaY: 250}, wheelEvent(-2.5))
}

func TestElementLookup(t *testing.T) {
	w := newEngineWindow(WithWidth(800), WithHeight(600))

	el, ok := w.Element(DefaultElementID)
	require.True(t, ok)
	assert.Equal(t, DefaultElementID, el.ID())
	assert.Equal(t, 800, el.Width())
	assert.Equal(t, 600, el.Height())

	_, ok = w.Element("missing")
	assert.False(t, ok)

	custom := newEngineWindow(WithElementID("viewport"))
	_, ok = custom.Element(DefaultElementID)
	assert.False(t, ok)
	_, ok = custom.Element("viewport")
	assert.True(t, ok)
}

func TestResizeNotifiesCallback(t *testing.T) {
	w := newEngineWindow()
	var gotW, gotH int
	w.SetResizeCallback(func(width, height int) { gotW, gotH = width, height })

	w.resize(1600, 900)
	assert.Equal(t, 1600, gotW)
	assert.Equal(t, 900, gotH)
	assert.Equal(t, 1600, w.Width())
	assert.Equal(t, 900, w.Height())
}

func TestUninitializedWindow(t *testing.T) {
	w := newEngineWindow()
	assert.False(t, w.IsRunning())
	assert.Nil(t, w.SurfaceDescriptor())
	assert.Error(t, w.Close())
	assert.NotPanics(t, w.RequestClose)
}

func TestSizeLimitOptions(t *testing.T) {
	w := newEngineWindow(WithMinWidth(640), WithMinHeight(480), WithMaxWidth(1920), WithMaxHeight(1080))
	assert.Equal(t, 640, w.minWidth)
	assert.Equal(t, 480, w.minHeight)
	assert.Equal(t, 1920, w.maxWidth)
	assert.Equal(t, 1080, w.maxHeight)

	defaults := newEngineWindow()
	assert.Equal(t, 320, defaults.minWidth)
	assert.Equal(t, 3840, defaults.maxWidth)
}
