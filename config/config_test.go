package config

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, camera.ControllerKindOrbit, cfg.ControllerKind())
	assert.Equal(t, DefaultModelPath, cfg.Model.Path)
	assert.Equal(t, uint32(0xeeeeee), cfg.Render.ClearColor)
	assert.Equal(t, "WebGL-output", cfg.Window.ElementID)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	src := `
controller = "manual"

[window]
width = 800
height = 600

[model]
path = "other.glb"

[log]
level = "debug"
format = "json"
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, camera.ControllerKindManual, cfg.ControllerKind())
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "other.glb", cfg.Model.Path)
	assert.Equal(t, float32(33), cfg.Model.Scale, "unset keys keep their defaults")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "oxy-viewer", cfg.Window.Title)
}

func TestLoadWindowLimits(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[window]
width = 1024
height = 768
min_width = 640
min_height = 480
max_width = 1920
max_height = 1080
`))
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Window.MinWidth)
	assert.Equal(t, 480, cfg.Window.MinHeight)
	assert.Equal(t, 1920, cfg.Window.MaxWidth)
	assert.Equal(t, 1080, cfg.Window.MaxHeight)

	_, err = Decode(strings.NewReader("[window]\nmax_width = 800\n"))
	assert.ErrorIs(t, err, ErrInvalid, "default width 1280 exceeds the configured maximum")
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("colour = 1\n"))
	assert.Error(t, err)
}

func TestDecodeRejectsNaNScale(t *testing.T) {
	_, err := Decode(strings.NewReader("[model]\nscale = nan\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestDecodeRejectsMalformedTOML(t *testing.T) {
	_, err := Decode(strings.NewReader("controller = \n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"controller":    func(c *Config) { c.Controller = "fly" },
		"width":         func(c *Config) { c.Window.Width = 0 },
		"height":        func(c *Config) { c.Window.Height = -1 },
		"min width":     func(c *Config) { c.Window.MinWidth = 0 },
		"below min":     func(c *Config) { c.Window.Width = 100 },
		"above max":     func(c *Config) { c.Window.Height = 4000 },
		"max below min": func(c *Config) { c.Window.MaxWidth = 300 },
		"fov":           func(c *Config) { c.Camera.FovDegrees = 180 },
		"near":          func(c *Config) { c.Camera.Near = 0 },
		"far":           func(c *Config) { c.Camera.Far = 0.05 },
		"model path":    func(c *Config) { c.Model.Path = "" },
		"scale":         func(c *Config) { c.Model.Scale = 0 },
		"scale nan":     func(c *Config) { c.Model.Scale = float32(math.NaN()) },
		"clear color":   func(c *Config) { c.Render.ClearColor = 0x1000000 },
		"workers":       func(c *Config) { c.Render.Workers = -2 },
		"present mode":  func(c *Config) { c.Render.PresentMode = "mailbox" },
		"log level":     func(c *Config) { c.Log.Level = "loud" },
		"log format":    func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestCameraPositionPerController(t *testing.T) {
	cfg := Default()
	assert.Equal(t, mgl32.Vec3{-30, 40, 30}, cfg.CameraPosition())

	cfg.Controller = "manual"
	assert.Equal(t, mgl32.Vec3{-30, 30, 30}, cfg.CameraPosition())

	cfg.Camera.Position = &[3]float32{1, 2, 3}
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, cfg.CameraPosition())
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Controller = "manual"

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestShippedConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "viewer.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
