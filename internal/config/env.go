package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MANDEL_"

type envSetter func(c *Config, v string) error

func setInt(dst func(*Config) *int) envSetter {
	return func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*dst(c) = n
		return nil
	}
}

func setFloat(dst func(*Config) *float64) envSetter {
	return func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		*dst(c) = f
		return nil
	}
}

func setBool(dst func(*Config) *bool) envSetter {
	return func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		*dst(c) = b
		return nil
	}
}

func setString(dst func(*Config) *string) envSetter {
	return func(c *Config, v string) error {
		*dst(c) = v
		return nil
	}
}

// envMapping maps variable suffixes to settings.
var envMapping = map[string]envSetter{
	"TITLE":          setString(func(c *Config) *string { return &c.Window.Title }),
	"WIDTH":          setInt(func(c *Config) *int { return &c.Window.Width }),
	"HEIGHT":         setInt(func(c *Config) *int { return &c.Window.Height }),
	"VSYNC":          setBool(func(c *Config) *bool { return &c.Window.VSync }),
	"CENTER_X":       setFloat(func(c *Config) *float64 { return &c.View.CenterX }),
	"CENTER_Y":       setFloat(func(c *Config) *float64 { return &c.View.CenterY }),
	"SCALE":          setFloat(func(c *Config) *float64 { return &c.View.Scale }),
	"MAX_ITERATIONS": setInt(func(c *Config) *int { return &c.Render.MaxIterations }),
	"ADAPTIVE":       setBool(func(c *Config) *bool { return &c.Render.Adaptive }),
	"PALETTE_SIZE":   setInt(func(c *Config) *int { return &c.Render.PaletteSize }),
	"PALETTE_FILE":   setString(func(c *Config) *string { return &c.Render.PaletteFile }),
	"SUPERSAMPLE":    setInt(func(c *Config) *int { return &c.Render.Supersample }),
	"PAN_SPEED":      setFloat(func(c *Config) *float64 { return &c.Input.PanSpeed }),
	"ZOOM_RATE":      setFloat(func(c *Config) *float64 { return &c.Input.ZoomRate }),
	"WHEEL_STEP":     setFloat(func(c *Config) *float64 { return &c.Input.WheelStep }),
}

// ApplyEnv overlays MANDEL_* variables found through lookup (os.LookupEnv in
// production). Empty values are treated as set.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for suffix, set := range envMapping {
		name := EnvPrefix + suffix
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(c, v); err != nil {
			return fmt.Errorf("env %s=%q: %w", name, v, err)
		}
	}
	return nil
}
