// Package fractal is the CPU reference for the escape-time shaders. It backs
// PNG export, the terminal viewer and tests.
package fractal

import (
	"image/color"
	"math"

	"github.com/hubastard/mandelbrot/engine/colors"
)

const (
	// DefaultIterations is the budget at the default scale.
	DefaultIterations = 500
	// MaxIterationsLimit is the hard cap; the Kage shader unrolls to it.
	MaxIterationsLimit = 2048
	// iterationsPerOctave is added for every halving of the scale.
	iterationsPerOctave = 40
	// baseScale is the scale at which the base budget applies.
	baseScale = 1.5
)

// Escape returns the number of iterations of z -> z² + c, starting at z = 0,
// before |z|² exceeds 4. It returns maxIter for points that never escape.
func Escape(cx, cy float64, maxIter int) int {
	var zx, zy float64
	for i := 0; i < maxIter; i++ {
		x2, y2 := zx*zx, zy*zy
		if x2+y2 > 4 {
			return i
		}
		zy = 2*zx*zy + cy
		zx = x2 - y2 + cx
	}
	return maxIter
}

// IterationsForScale grows the budget with zoom depth so detail keeps up
// as the view shrinks. Without adaptive iterations the base is returned.
func IterationsForScale(base int, scale float64, adaptive bool) int {
	if base <= 0 {
		base = DefaultIterations
	}
	n := base
	if adaptive && scale > 0 && scale < baseScale {
		n += int(iterationsPerOctave * math.Log2(baseScale/scale))
	}
	return min(n, MaxIterationsLimit)
}

// Color maps an escape count to its palette entry; points inside the set are black.
func Color(it, maxIter int, p colors.Palette) color.RGBA {
	if it >= maxIter || len(p) == 0 {
		return color.RGBA{A: 255}
	}
	return p[it%len(p)].RGBA8()
}
