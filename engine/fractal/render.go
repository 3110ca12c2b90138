package fractal

import (
	"context"
	"errors"
	"image"
	"runtime"

	"github.com/hubastard/mandelbrot/engine/colors"
	"github.com/hubastard/mandelbrot/engine/profiler"
	"github.com/hubastard/mandelbrot/engine/scene"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
)

var ErrEmptyImage = errors.New("fractal: image size must be positive")

// Params describes one frame.
type Params struct {
	Width, Height int
	View          scene.ViewState
	MaxIterations int
	Palette       colors.Palette
	Workers       int // 0 = GOMAXPROCS
}

// Render draws the frame row by row on a pool of workers. It stops early and
// returns ctx.Err() when ctx is cancelled.
func Render(ctx context.Context, p Params) (*image.RGBA, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, ErrEmptyImage
	}
	defer profiler.Start("fractal.Render")()

	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	view := scene.NewViewTransform(p.View)
	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultIterations
	}
	palette := p.Palette
	if len(palette) == 0 {
		palette = colors.Rainbow(colors.DefaultPaletteSize)
	}

	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < p.Height; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			row := img.Pix[y*img.Stride : y*img.Stride+p.Width*4]
			for x := 0; x < p.Width; x++ {
				// sample pixel centres
				nx, ny := scene.NormalizePixel(float64(x)+0.5, float64(y)+0.5, p.Width, p.Height)
				c := view.ScreenToComplex(nx, ny)
				col := Color(Escape(c.X(), c.Y(), maxIter), maxIter, palette)
				row[4*x], row[4*x+1], row[4*x+2], row[4*x+3] = col.R, col.G, col.B, col.A
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

// RenderSupersampled renders at factor times the requested size and filters
// the result down, smoothing the boundary.
func RenderSupersampled(ctx context.Context, p Params, factor int) (*image.RGBA, error) {
	if factor <= 1 {
		return Render(ctx, p)
	}
	big := p
	big.Width, big.Height = p.Width*factor, p.Height*factor
	src, err := Render(ctx, big)
	if err != nil {
		return nil, err
	}
	defer profiler.Start("fractal.Downsample")()
	dst := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}
