// Package kage renders the escape-time shader through ebiten so the same
// view runs on desktop, in browsers (js/wasm) and on mobile.
package kage

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hubastard/mandelbrot/engine/assets"
	"github.com/hubastard/mandelbrot/engine/colors"
	"github.com/hubastard/mandelbrot/engine/core"
)

type Renderer struct {
	shader *ebiten.Shader
	target *ebiten.Image
	colors int
}

// New compiles the Kage shader. The palette only contributes its size: the
// shader walks the same hue wheel as colors.Rainbow.
func New(cfg core.Config) (*Renderer, error) {
	src, err := assets.LoadKage("mandelbrot.kage")
	if err != nil {
		return nil, err
	}
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile kage shader: %w", err)
	}
	n := len(cfg.Palette)
	if n == 0 {
		n = colors.DefaultPaletteSize
	}
	return &Renderer{shader: sh, colors: n}, nil
}

// SetTarget points subsequent draws at img (the screen for this frame).
func (r *Renderer) SetTarget(img *ebiten.Image) { r.target = img }

func (r *Renderer) Resize(w, h int) {}

func (r *Renderer) Clear(rf, gf, bf, af float32) {
	if r.target == nil {
		return
	}
	r.target.Fill(colors.Color{rf, gf, bf, af}.RGBA8())
}

func (r *Renderer) DrawFractal(p core.FractalParams) {
	if r.target == nil {
		return
	}
	b := r.target.Bounds()
	w, h := b.Dx(), b.Dy()
	op := &ebiten.DrawRectShaderOptions{Uniforms: Uniforms(p, w, h, r.colors)}
	r.target.DrawRectShader(w, h, r.shader, op)
}

func (r *Renderer) Shutdown() {
	if r.shader != nil {
		r.shader.Deallocate()
		r.shader = nil
	}
}

// Uniforms maps a frame onto the shader's variables.
func Uniforms(p core.FractalParams, w, h, numColors int) map[string]any {
	return map[string]any{
		"Resolution": []float32{float32(w), float32(h)},
		"Center":     []float32{float32(p.CenterX), float32(p.CenterY)},
		"Scale":      float32(p.Scale),
		"MaxIter":    float32(p.MaxIterations),
		"NumColors":  float32(numColors),
	}
}

var _ core.Renderer = (*Renderer)(nil)
