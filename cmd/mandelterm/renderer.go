package main

import (
	"context"
	"image"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/mandelbrot/engine/colors"
	"github.com/hubastard/mandelbrot/engine/core"
	"github.com/hubastard/mandelbrot/engine/fractal"
	"github.com/hubastard/mandelbrot/engine/scene"
)

// halfBlock paints the upper pixel as foreground, the lower one as background.
const halfBlock = '▀'

// termRenderer implements core.Renderer with the CPU renderer and half-block
// cells. A frame is only recomputed when the view or the size changes.
type termRenderer struct {
	screen  tcell.Screen
	palette colors.Palette
	w, h    int
	last    core.FractalParams
	valid   bool
}

func newTermRenderer(s tcell.Screen, cfg core.Config) *termRenderer {
	w, h := s.Size()
	return &termRenderer{screen: s, palette: cfg.Palette, w: w, h: 2 * h}
}

func (r *termRenderer) Resize(w, h int) {
	r.w, r.h = w, h
	r.valid = false
	r.screen.Sync()
}

func (r *termRenderer) Clear(_, _, _, _ float32) {}

func (r *termRenderer) DrawFractal(p core.FractalParams) {
	if r.valid && p == r.last {
		return
	}
	img, err := fractal.Render(context.Background(), fractal.Params{
		Width:         r.w,
		Height:        r.h,
		View:          scene.ViewState{Center: mgl64.Vec2{p.CenterX, p.CenterY}, Scale: p.Scale},
		MaxIterations: p.MaxIterations,
		Palette:       r.palette,
	})
	if err != nil {
		log.Printf("render: %v", err)
		return
	}
	r.paint(img)
	r.last, r.valid = p, true
}

func (r *termRenderer) paint(img *image.RGBA) {
	for cy := 0; 2*cy < r.h; cy++ {
		for x := 0; x < r.w; x++ {
			top := img.RGBAAt(x, 2*cy)
			bot := img.RGBAAt(x, 2*cy+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			r.screen.SetContent(x, cy, halfBlock, nil, style)
		}
	}
}

func (r *termRenderer) Shutdown() {}
