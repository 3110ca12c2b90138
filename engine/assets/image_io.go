package assets

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hubastard/mandelbrot/engine/colors"
)

var ErrEmptyPalette = errors.New("palette image is empty")

// LoadPalettePNG reads a palette strip: the top row of the image, left to right.
func LoadPalettePNG(path string) (colors.Palette, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	p := colors.FromImage(img)
	if len(p) == 0 {
		return nil, fmt.Errorf("%q: %w", path, ErrEmptyPalette)
	}
	return p, nil
}

// SavePNG encodes img to path. The file is written next to the target and
// renamed into place so a failed export never leaves a truncated image.
func SavePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %q: %w", dir, err)
		}
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %q: %w", tmp, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("encode png %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
