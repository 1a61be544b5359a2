package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strings"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// DefaultModelPath is the avatar loaded when no model is configured.
const DefaultModelPath = "assets/models/vrm/AliciaSolid.vrm"

// Config is the viewer configuration, decoded from TOML.
type Config struct {
	// Controller selects the camera control scheme: "orbit" or "manual".
	Controller string `toml:"controller"`

	Window WindowConfig `toml:"window"`
	Camera CameraConfig `toml:"camera"`
	Model  ModelConfig  `toml:"model"`
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

// WindowConfig describes the host window. The min and max sizes bound user resizing.
type WindowConfig struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`
	Height    int    `toml:"height"`
	MinWidth  int    `toml:"min_width"`
	MinHeight int    `toml:"min_height"`
	MaxWidth  int    `toml:"max_width"`
	MaxHeight int    `toml:"max_height"`
	ElementID string `toml:"element_id"`
}

// CameraConfig describes the perspective camera. Position overrides the per-controller default.
type CameraConfig struct {
	FovDegrees float32     `toml:"fov"`
	Near       float32     `toml:"near"`
	Far        float32     `toml:"far"`
	Position   *[3]float32 `toml:"position,omitempty"`
}

// ModelConfig describes the avatar asset and its placement in the scene.
type ModelConfig struct {
	Path            string     `toml:"path"`
	Scale           float32    `toml:"scale"`
	Position        [3]float32 `toml:"position"`
	RotationDegrees [3]float32 `toml:"rotation"`
}

// RenderConfig tunes the software renderer and the presentation surface.
type RenderConfig struct {
	ClearColor  uint32  `toml:"clear_color"`
	Workers     int     `toml:"workers"`
	Bands       int     `toml:"bands"`
	PresentMode string  `toml:"present_mode"`
	FrameRate   float64 `toml:"frame_rate"`
	Profiling   bool    `toml:"profiling"`
}

// LogConfig selects the diagnostic log level and handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration the viewer runs with when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	return Config{
		Controller: camera.ControllerKindOrbit.String(),
		Window: WindowConfig{
			Title:     "oxy-viewer",
			Width:     1280,
			Height:    720,
			MinWidth:  320,
			MinHeight: 200,
			MaxWidth:  3840,
			MaxHeight: 2160,
			ElementID: "WebGL-output",
		},
		Camera: CameraConfig{
			FovDegrees: 45,
			Near:       0.1,
			Far:        1000,
		},
		Model: ModelConfig{
			Path:            DefaultModelPath,
			Scale:           33,
			Position:        [3]float32{0, -33, 0},
			RotationDegrees: [3]float32{0, 90, 0},
		},
		Render: RenderConfig{
			ClearColor:  0xeeeeee,
			PresentMode: "vsync",
			FrameRate:   60,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the TOML file at path on top of Default and validates the result.
// An empty path or a missing file yields the defaults.
//
// Parameters:
//   - path: the config file path
//
// Returns:
//   - Config: the loaded configuration
//   - error: error if the file cannot be read, decoded or validated
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r on top of Default and validates the result.
// Unknown keys are rejected.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - Config: the decoded configuration
//   - error: error if decoding or validation fails
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("failed to decode config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
//
// Parameters:
//   - w: the destination
//
// Returns:
//   - error: error if encoding fails
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks every field that has a restricted range.
//
// Returns:
//   - error: an error wrapping ErrInvalid naming the first bad field
func (c Config) Validate() error {
	if _, err := camera.ParseControllerKind(c.Controller); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d must be positive", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if err := c.Window.validateLimits(); err != nil {
		return err
	}
	if c.Camera.FovDegrees <= 0 || c.Camera.FovDegrees >= 180 {
		return fmt.Errorf("%w: camera fov %g must be in (0, 180)", ErrInvalid, c.Camera.FovDegrees)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera clip planes near=%g far=%g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("%w: model path is empty", ErrInvalid)
	}
	if s := float64(c.Model.Scale); s <= 0 || math.IsInf(s, 0) || math.IsNaN(s) {
		return fmt.Errorf("%w: model scale %g must be positive", ErrInvalid, c.Model.Scale)
	}
	if c.Render.ClearColor > 0xffffff {
		return fmt.Errorf("%w: clear color %#x is not a 24-bit colour", ErrInvalid, c.Render.ClearColor)
	}
	if c.Render.Workers < 0 || c.Render.Bands < 0 {
		return fmt.Errorf("%w: render workers and bands must not be negative", ErrInvalid)
	}
	switch strings.ToLower(c.Render.PresentMode) {
	case "vsync", "uncapped":
	default:
		return fmt.Errorf("%w: unknown present mode %q", ErrInvalid, c.Render.PresentMode)
	}
	if _, err := common.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// validateLimits requires positive limits with min <= size <= max on each axis.
func (w WindowConfig) validateLimits() error {
	if w.MinWidth <= 0 || w.MinHeight <= 0 {
		return fmt.Errorf("%w: window minimum %dx%d must be positive", ErrInvalid, w.MinWidth, w.MinHeight)
	}
	if w.Width < w.MinWidth || w.Width > w.MaxWidth {
		return fmt.Errorf("%w: window width %d outside [%d, %d]", ErrInvalid, w.Width, w.MinWidth, w.MaxWidth)
	}
	if w.Height < w.MinHeight || w.Height > w.MaxHeight {
		return fmt.Errorf("%w: window height %d outside [%d, %d]", ErrInvalid, w.Height, w.MinHeight, w.MaxHeight)
	}
	return nil
}

// ControllerKind returns the parsed controller kind. Call Validate first.
func (c Config) ControllerKind() camera.ControllerKind {
	kind, _ := camera.ParseControllerKind(c.Controller)
	return kind
}

// CameraPosition returns the initial camera position for the configured controller.
// The orbit view starts higher (y = 40) than the manual view (y = 30).
//
// Returns:
//   - mgl32.Vec3: the world-space camera position
func (c Config) CameraPosition() mgl32.Vec3 {
	if c.Camera.Position != nil {
		return mgl32.Vec3(*c.Camera.Position)
	}
	if c.ControllerKind() == camera.ControllerKindManual {
		return mgl32.Vec3{-30, 30, 30}
	}
	return mgl32.Vec3{-30, 40, 30}
}
