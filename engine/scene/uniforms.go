package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/mandelbrot/engine/core"
)

// Params packs a snapshot for the renderer.
func (s ViewState) Params(maxIter int) core.FractalParams {
	return core.FractalParams{
		CenterX:       s.Center.X(),
		CenterY:       s.Center.Y(),
		Scale:         s.Scale,
		MaxIterations: maxIter,
	}
}

// TransformMatrix is the normalized-screen to complex-plane mapping as a
// column-major shader matrix: translate(center) * scale(scale).
// Single precision limits GPU detail to scales around 1e-6.
func TransformMatrix(p core.FractalParams) mgl32.Mat3 {
	s := float32(p.Scale)
	return mgl32.Translate2D(float32(p.CenterX), float32(p.CenterY)).Mul3(mgl32.Scale2D(s, s))
}
