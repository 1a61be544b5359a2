package renderer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"slices"

	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how presented frames are synchronized with the display.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// ErrNoSurfaceFormat is returned when the surface reports no usable texture format.
var ErrNoSurfaceFormat = errors.New("renderer: surface has no supported format")

// Presenter is a Target backed by GPU resources that must be released.
type Presenter interface {
	Target

	// Release frees the surface, device, adapter and instance.
	Release()
}

// wgpuPresenterImpl copies CPU frames into the swapchain texture of a WebGPU surface.
type wgpuPresenterImpl struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	format      wgpu.TextureFormat
	alphaMode   wgpu.CompositeAlphaMode
	presentMode wgpu.PresentMode
	swizzle     bool

	width, height int
	configured    bool
	staging       []byte

	forceFallbackAdapter bool
	logger               *slog.Logger
}

var _ Presenter = &wgpuPresenterImpl{}

// NewWGPUPresenter creates a WebGPU instance, surface, adapter and device for the
// window described by surfaceDescriptor. The surface is configured on the first Resize.
// Must be called on the thread that owns the window.
//
// Parameters:
//   - surfaceDescriptor: platform surface descriptor, usually from window.SurfaceDescriptor
//   - opts: variadic list of PresenterBuilderOption functions
//
// Returns:
//   - Presenter: the presenter
//   - error: an error if no adapter or device could be acquired
func NewWGPUPresenter(surfaceDescriptor *wgpu.SurfaceDescriptor, opts ...PresenterBuilderOption) (Presenter, error) {
	p := &wgpuPresenterImpl{
		presentMode: wgpu.PresentModeFifo,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.instance = wgpu.CreateInstance(nil)
	p.surface = p.instance.CreateSurface(surfaceDescriptor)

	a, err := p.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: p.forceFallbackAdapter,
		CompatibleSurface:    p.surface,
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	p.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Viewer Device",
	})
	if err != nil {
		p.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	p.device = d
	p.queue = d.GetQueue()

	capabilities := p.surface.GetCapabilities(p.adapter)
	if len(capabilities.Formats) == 0 {
		p.Release()
		return nil, ErrNoSurfaceFormat
	}
	p.format = pickFormat(capabilities.Formats)
	p.swizzle = p.format == wgpu.TextureFormatBGRA8Unorm || p.format == wgpu.TextureFormatBGRA8UnormSrgb
	if len(capabilities.AlphaModes) > 0 {
		p.alphaMode = capabilities.AlphaModes[0]
	}

	p.logger.Debug("webgpu presenter ready", "format", p.format, "swizzle", p.swizzle)
	return p, nil
}

// pickFormat prefers an 8-bit unorm format so frame bytes can be written unchanged.
func pickFormat(formats []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, want := range []wgpu.TextureFormat{
		wgpu.TextureFormatRGBA8Unorm,
		wgpu.TextureFormatBGRA8Unorm,
		wgpu.TextureFormatRGBA8UnormSrgb,
		wgpu.TextureFormatBGRA8UnormSrgb,
	} {
		if slices.Contains(formats, want) {
			return want
		}
	}
	return formats[0]
}

func (p *wgpuPresenterImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 || p.surface == nil {
		return
	}
	p.width, p.height = width, height
	p.surface.Configure(p.adapter, p.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopyDst,
		Format:      p.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: p.presentMode,
		AlphaMode:   p.alphaMode,
	})
	p.configured = true
}

func (p *wgpuPresenterImpl) Present(frame *image.RGBA) error {
	if !p.configured {
		return nil
	}
	w, h := frame.Rect.Dx(), frame.Rect.Dy()
	if w != p.width || h != p.height {
		// A resize is in flight; the next frame will match.
		return nil
	}

	surfaceTexture, err := p.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	defer surfaceTexture.Release()

	pixels := frame.Pix
	if p.swizzle {
		p.staging = growBytes(p.staging, len(pixels))
		for i := 0; i+3 < len(pixels); i += 4 {
			p.staging[i] = pixels[i+2]
			p.staging[i+1] = pixels[i+1]
			p.staging[i+2] = pixels[i]
			p.staging[i+3] = pixels[i+3]
		}
		pixels = p.staging
	}

	p.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  surfaceTexture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(frame.Stride),
			RowsPerImage: uint32(h),
		},
		&wgpu.Extent3D{
			Width:              uint32(w),
			Height:             uint32(h),
			DepthOrArrayLayers: 1,
		},
	)
	p.surface.Present()
	return nil
}

func (p *wgpuPresenterImpl) Release() {
	if p.queue != nil {
		p.queue.Release()
		p.queue = nil
	}
	if p.device != nil {
		p.device.Release()
		p.device = nil
	}
	if p.adapter != nil {
		p.adapter.Release()
		p.adapter = nil
	}
	if p.surface != nil {
		p.surface.Release()
		p.surface = nil
	}
	if p.instance != nil {
		p.instance.Release()
		p.instance = nil
	}
	p.configured = false
}

func growBytes(b []byte, n int) []byte {
	if cap(b) < n {
		return make([]byte, n)
	}
	return b[:n]
}

// PresenterBuilderOption is a functional option applied to a presenter during construction via NewWGPUPresenter.
type PresenterBuilderOption func(*wgpuPresenterImpl)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - PresenterBuilderOption: a function that applies the present mode option to a presenter
func WithPresentMode(mode PresentMode) PresenterBuilderOption {
	return func(p *wgpuPresenterImpl) {
		switch mode {
		case PresentModeVSync:
			p.presentMode = wgpu.PresentModeFifo
		case PresentModeUncapped:
			p.presentMode = wgpu.PresentModeImmediate
		}
	}
}

// WithForceFallbackAdapter forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe).
//
// Parameters:
//   - force: true to force the software fallback adapter
//
// Returns:
//   - PresenterBuilderOption: a function that applies the option to a presenter
func WithForceFallbackAdapter(force bool) PresenterBuilderOption {
	return func(p *wgpuPresenterImpl) {
		p.forceFallbackAdapter = force
	}
}

// WithPresenterLogger sets the logger used for presenter diagnostics.
func WithPresenterLogger(logger *slog.Logger) PresenterBuilderOption {
	return func(p *wgpuPresenterImpl) {
		if logger != nil {
			p.logger = logger
		}
	}
}
