package assets

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadShaderIsNullTerminated(t *testing.T) {
	for _, name := range []string{"mandelbrot.vert", "mandelbrot.frag"} {
		src, err := LoadShader(name)
		if err != nil {
			t.Fatalf("LoadShader(%q): %v", name, err)
		}
		if !strings.HasPrefix(src, "#version 330 core") {
			t.Errorf("%s: missing version header", name)
		}
		if src[len(src)-1] != 0 {
			t.Errorf("%s: not null-terminated", name)
		}
	}
}

func TestLoadKage(t *testing.T) {
	src, err := LoadKage("mandelbrot.kage")
	if err != nil {
		t.Fatalf("LoadKage: %v", err)
	}
	if !strings.Contains(string(src), "func Fragment(") {
		t.Error("kage source has no Fragment entry point")
	}
}

func TestLoadShaderMissing(t *testing.T) {
	if _, err := LoadShader("nope.frag"); err == nil {
		t.Error("expected error for missing shader")
	}
}

func TestSaveAndLoadPalettePNG(t *testing.T) {
	strip := image.NewRGBA(image.Rect(0, 0, 4, 1))
	want := []color.RGBA{{255, 0, 0, 255}, {0, 255, 0, 255}, {0, 0, 255, 255}, {10, 20, 30, 255}}
	for x, c := range want {
		strip.SetRGBA(x, 0, c)
	}

	path := filepath.Join(t.TempDir(), "nested", "palette.png")
	if err := SavePNG(path, strip); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}

	p, err := LoadPalettePNG(path)
	if err != nil {
		t.Fatalf("LoadPalettePNG: %v", err)
	}
	if len(p) != len(want) {
		t.Fatalf("len = %d, want %d", len(p), len(want))
	}
	for i, c := range want {
		if got := p[i].RGBA8(); got != c {
			t.Errorf("entry %d = %v, want %v", i, got, c)
		}
	}
}

func TestLoadPalettePNGMissing(t *testing.T) {
	_, err := LoadPalettePNG(filepath.Join(t.TempDir(), "missing.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}
