// Package config loads viewer settings. Sources, lowest precedence first:
// built-in defaults, a TOML file, MANDEL_* environment variables, and finally
// command-line flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/mandelbrot/engine/assets"
	"github.com/hubastard/mandelbrot/engine/colors"
	"github.com/hubastard/mandelbrot/engine/fractal"
	"github.com/hubastard/mandelbrot/engine/scene"
	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Window WindowConfig `toml:"window"`
	View   ViewConfig   `toml:"view"`
	Render RenderConfig `toml:"render"`
	Input  InputConfig  `toml:"input"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	VSync  bool   `toml:"vsync"`
}

// ViewConfig is the starting (and reset) view.
type ViewConfig struct {
	CenterX float64 `toml:"center_x"`
	CenterY float64 `toml:"center_y"`
	Scale   float64 `toml:"scale"`
}

type RenderConfig struct {
	MaxIterations int    `toml:"max_iterations"`
	Adaptive      bool   `toml:"adaptive_iterations"`
	PaletteSize   int    `toml:"palette_size"`
	PaletteFile   string `toml:"palette_file"`
	Supersample   int    `toml:"supersample"` // CPU export only
}

type InputConfig struct {
	PanSpeed  float64 `toml:"pan_speed"`
	ZoomRate  float64 `toml:"zoom_rate"`
	WheelStep float64 `toml:"wheel_step"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{Title: "Mandelbrot", Width: 1280, Height: 720, VSync: true},
		View: ViewConfig{
			CenterX: scene.DefaultCenter.X(),
			CenterY: scene.DefaultCenter.Y(),
			Scale:   scene.DefaultScale,
		},
		Render: RenderConfig{
			MaxIterations: fractal.DefaultIterations,
			Adaptive:      true,
			PaletteSize:   colors.DefaultPaletteSize,
			Supersample:   2,
		},
		Input: InputConfig{PanSpeed: 1, ZoomRate: 1.8, WheelStep: 1.2},
	}
}

// Load returns defaults overlaid with the TOML file at path and then the
// environment. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile overlays the settings present in the TOML file onto c.
func (c *Config) LoadFile(path string) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("open config %q: %w", path, err)
	}
	defer f.Close()
	return c.decode(path, f)
}

func (c *Config) decode(path string, r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return &ValidationError{"window size", fmt.Sprintf("%dx%d must be positive", c.Window.Width, c.Window.Height)}
	case !(c.View.Scale > 0):
		return &ValidationError{"view.scale", "must be > 0"}
	case c.Render.MaxIterations < 1 || c.Render.MaxIterations > fractal.MaxIterationsLimit:
		return &ValidationError{"render.max_iterations", fmt.Sprintf("must be in [1, %d]", fractal.MaxIterationsLimit)}
	case c.Render.PaletteSize < 1:
		return &ValidationError{"render.palette_size", "must be >= 1"}
	case c.Render.Supersample < 1 || c.Render.Supersample > 8:
		return &ValidationError{"render.supersample", "must be in [1, 8]"}
	case !(c.Input.ZoomRate > 1):
		return &ValidationError{"input.zoom_rate", "must be > 1"}
	case !(c.Input.WheelStep > 1):
		return &ValidationError{"input.wheel_step", "must be > 1"}
	case c.Input.PanSpeed < 0:
		return &ValidationError{"input.pan_speed", "must be >= 0"}
	}
	return nil
}

// ViewState is the configured starting view.
func (c Config) ViewState() scene.ViewState {
	return scene.ViewState{Center: mgl64.Vec2{c.View.CenterX, c.View.CenterY}, Scale: c.View.Scale}
}

// Palette loads the palette file when set, otherwise builds the hue wheel.
func (c Config) Palette() (colors.Palette, error) {
	if c.Render.PaletteFile != "" {
		return assets.LoadPalettePNG(c.Render.PaletteFile)
	}
	return colors.Rainbow(c.Render.PaletteSize), nil
}
