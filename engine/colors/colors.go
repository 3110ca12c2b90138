package colors

import (
	"image"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is linear RGBA in [0, 1].
type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Red      = Color{1, 0, 0, 1}
	Yellow   = Color{1, 1, 0, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// RGBA8 quantizes c to 8 bits per channel.
func (c Color) RGBA8() color.RGBA {
	return color.RGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: to8(c[3])}
}

// HSV builds an opaque colour from hue in [0, 1) and saturation/value in [0, 1].
func HSV(h, s, v float64) Color {
	c := colorful.Hsv(h*360, s, v).Clamped()
	return Color{float32(c.R), float32(c.G), float32(c.B), 1}
}

// FromRGBA converts any color.Color to a Color.
func FromRGBA(src color.Color) Color {
	r, g, b, a := src.RGBA()
	return Color{float32(r) / 0xffff, float32(g) / 0xffff, float32(b) / 0xffff, float32(a) / 0xffff}
}

func to8(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// Palette is the escape-time colour cycle; entry i colours orbits that
// escaped after i (mod len) iterations.
type Palette []Color

// DefaultPaletteSize matches the classic 12-step hue wheel.
const DefaultPaletteSize = 12

// Rainbow returns n fully saturated hues evenly spaced around the wheel,
// starting at red.
func Rainbow(n int) Palette {
	if n <= 0 {
		n = DefaultPaletteSize
	}
	p := make(Palette, n)
	for i := range p {
		p[i] = HSV(float64(i)/float64(n), 1, 1)
	}
	return p
}

// FromImage reads the top row of img left to right as a palette.
func FromImage(img image.Image) Palette {
	b := img.Bounds()
	p := make(Palette, 0, b.Dx())
	for x := b.Min.X; x < b.Max.X; x++ {
		p = append(p, FromRGBA(img.At(x, b.Min.Y)))
	}
	return p
}

// RGBA8 returns the palette packed as tightly laid out RGBA bytes, ready for a
// 1-row texture upload.
func (p Palette) RGBA8() []byte {
	out := make([]byte, 0, len(p)*4)
	for _, c := range p {
		q := c.RGBA8()
		out = append(out, q.R, q.G, q.B, q.A)
	}
	return out
}
