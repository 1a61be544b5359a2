package renderer

import (
	"image"
	"image/draw"
)

// Target receives finished frames from a Renderer. It is the attach point a
// renderer's output is mounted on.
type Target interface {
	// Present displays or stores frame. The frame is owned by the renderer and is
	// overwritten by the next Render, so implementations that keep it must copy it.
	//
	// Parameters:
	//   - frame: the rendered image
	//
	// Returns:
	//   - error: an error if the frame could not be presented
	Present(frame *image.RGBA) error

	// Resize reconfigures the target for frames of the given size.
	//
	// Parameters:
	//   - width, height: frame dimensions in pixels
	Resize(width, height int)
}

// ImageTarget is a Target that keeps a copy of the last presented frame in memory.
// It backs headless runs and tests.
type ImageTarget interface {
	Target

	// Last returns a copy of the most recent frame, or nil before the first Present.
	Last() *image.RGBA

	// Presents returns the number of frames presented.
	Presents() int

	// Size returns the size set by the last Resize.
	Size() (width, height int)
}

type imageTargetImpl struct {
	last          *image.RGBA
	presents      int
	width, height int
}

var _ ImageTarget = &imageTargetImpl{}

// NewImageTarget creates an empty in-memory Target.
//
// Returns:
//   - ImageTarget: a new ImageTarget instance
func NewImageTarget() ImageTarget {
	return &imageTargetImpl{}
}

func (t *imageTargetImpl) Present(frame *image.RGBA) error {
	if t.last == nil || t.last.Rect != frame.Rect {
		t.last = image.NewRGBA(frame.Rect)
	}
	draw.Draw(t.last, t.last.Rect, frame, frame.Rect.Min, draw.Src)
	t.presents++
	return nil
}

func (t *imageTargetImpl) Resize(width, height int) {
	t.width, t.height = width, height
}

func (t *imageTargetImpl) Last() *image.RGBA {
	if t.last == nil {
		return nil
	}
	out := image.NewRGBA(t.last.Rect)
	copy(out.Pix, t.last.Pix)
	return out
}

func (t *imageTargetImpl) Presents() int {
	return t.presents
}

func (t *imageTargetImpl) Size() (width, height int) {
	return t.width, t.height
}
