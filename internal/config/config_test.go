package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubastard/mandelbrot/engine/scene"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mandelbrot.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.ViewState() != scene.DefaultState() {
		t.Errorf("default view = %+v, want %+v", cfg.ViewState(), scene.DefaultState())
	}
}

func TestLoadFileOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
[window]
width = 800

[view]
center_x = -0.75
center_y = 0.1
scale = 0.05

[render]
max_iterations = 1000
adaptive_iterations = false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 720 {
		t.Errorf("window = %dx%d, want 800x720", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.View.Scale != 0.05 || cfg.View.CenterX != -0.75 {
		t.Errorf("view = %+v", cfg.View)
	}
	if cfg.Render.MaxIterations != 1000 || cfg.Render.Adaptive {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Input.WheelStep != 1.2 {
		t.Errorf("input.wheel_step = %v, want default 1.2", cfg.Input.WheelStep)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("err = %v, want ErrFileNotFound", err)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeFile(t, "[window]\nwidth = \"wide\"\n")
	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("path = %q, want %q", perr.Path, path)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "[render]\nmax_iteration = 10\n")
	var perr *ParseError
	if _, err := Load(path); !errors.As(err, &perr) {
		t.Errorf("err = %v, want *ParseError for unknown key", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "[window]\nwidth = 800\n")
	t.Setenv("MANDEL_WIDTH", "1024")
	t.Setenv("MANDEL_ADAPTIVE", "false")
	t.Setenv("MANDEL_SCALE", "0.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Window.Width != 1024 {
		t.Errorf("width = %d, want 1024 from env", cfg.Window.Width)
	}
	if cfg.Render.Adaptive {
		t.Error("adaptive = true, want false from env")
	}
	if cfg.View.Scale != 0.5 {
		t.Errorf("scale = %v, want 0.5", cfg.View.Scale)
	}
}

func TestApplyEnvBadValue(t *testing.T) {
	cfg := Default()
	lookup := func(k string) (string, bool) {
		if k == "MANDEL_HEIGHT" {
			return "tall", true
		}
		return "", false
	}
	err := cfg.ApplyEnv(lookup)
	if err == nil || !strings.Contains(err.Error(), "MANDEL_HEIGHT") {
		t.Errorf("err = %v, want mention of MANDEL_HEIGHT", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }, "window size"},
		{"zero scale", func(c *Config) { c.View.Scale = 0 }, "view.scale"},
		{"too many iterations", func(c *Config) { c.Render.MaxIterations = 1 << 20 }, "render.max_iterations"},
		{"empty palette", func(c *Config) { c.Render.PaletteSize = 0 }, "render.palette_size"},
		{"supersample", func(c *Config) { c.Render.Supersample = 0 }, "render.supersample"},
		{"zoom rate", func(c *Config) { c.Input.ZoomRate = 1 }, "input.zoom_rate"},
		{"wheel step", func(c *Config) { c.Input.WheelStep = 0.5 }, "input.wheel_step"},
		{"pan speed", func(c *Config) { c.Input.PanSpeed = -1 }, "input.pan_speed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mod(&cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("err = %v, want ValidationError for %s", err, tt.field)
			}
			if !errors.Is(err, ErrValidationFailed) {
				t.Error("not wrapped as ErrValidationFailed")
			}
		})
	}
}

func TestPalette(t *testing.T) {
	cfg := Default()
	cfg.Render.PaletteSize = 5
	p, err := cfg.Palette()
	if err != nil || len(p) != 5 {
		t.Fatalf("Palette = %d entries, %v; want 5", len(p), err)
	}

	cfg.Render.PaletteFile = filepath.Join(t.TempDir(), "missing.png")
	if _, err := cfg.Palette(); err == nil {
		t.Error("expected error for missing palette file")
	}
}
