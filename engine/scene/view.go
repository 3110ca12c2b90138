package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// MinScale is the smallest half-width the view may shrink to.
	MinScale = 1e-12
	// MaxScale keeps zoom-out bounded well past the whole set.
	MaxScale = 1e6
)

// Classic full-set view.
var (
	DefaultCenter = mgl64.Vec2{-0.5, 0}
	DefaultScale  = 1.5
)

// ViewState locates the visible region of the complex plane.
// Scale is the half-width along the longer screen axis and is always > 0.
type ViewState struct {
	Center mgl64.Vec2
	Scale  float64
}

// DefaultState returns the classic full-set view.
func DefaultState() ViewState {
	return ViewState{Center: DefaultCenter, Scale: DefaultScale}
}

// ViewTransform maps normalized screen space to the complex plane and is
// updated by pan/zoom input. Not safe for concurrent use; it belongs to the
// main loop.
type ViewTransform struct {
	state    ViewState
	home     ViewState
	revision uint64
}

// NewViewTransform starts at s, which also becomes the Reset target.
// An invalid scale falls back to the default.
func NewViewTransform(s ViewState) *ViewTransform {
	s = sanitize(s)
	return &ViewTransform{state: s, home: s}
}

// Pan moves the view by a normalized screen delta. Content follows the
// pointer: dragging right moves the center left in the plane.
func (v *ViewTransform) Pan(dx, dy float64) {
	if !finite(dx) || !finite(dy) || (dx == 0 && dy == 0) {
		return
	}
	v.state.Center = v.state.Center.Sub(mgl64.Vec2{dx, dy}.Mul(v.state.Scale))
	v.revision++
}

// Zoom scales the view by factor (< 1 zooms in) keeping the complex point
// under the normalized pivot (px, py) fixed. Non-positive or non-finite
// factors are ignored; the resulting scale is clamped to [MinScale, MaxScale].
func (v *ViewTransform) Zoom(factor, px, py float64) {
	if !finite(factor) || factor <= 0 || !finite(px) || !finite(py) {
		return
	}
	pivot := mgl64.Vec2{px, py}
	anchor := v.ScreenToComplex(px, py)

	v.state.Scale = clampScale(v.state.Scale * factor)
	v.state.Center = anchor.Sub(pivot.Mul(v.state.Scale))
	v.revision++
}

// ScreenToComplex maps normalized screen coordinates to the plane.
func (v *ViewTransform) ScreenToComplex(x, y float64) mgl64.Vec2 {
	return v.state.Center.Add(mgl64.Vec2{x, y}.Mul(v.state.Scale))
}

// ComplexToScreen is the inverse of ScreenToComplex.
func (v *ViewTransform) ComplexToScreen(c mgl64.Vec2) (x, y float64) {
	d := c.Sub(v.state.Center).Mul(1 / v.state.Scale)
	return d.X(), d.Y()
}

// Snapshot returns the current state for the renderer.
func (v *ViewTransform) Snapshot() ViewState { return v.state }

// SetState jumps to s (e.g. a landmark).
func (v *ViewTransform) SetState(s ViewState) {
	v.state = sanitize(s)
	v.revision++
}

// Reset returns to the starting view.
func (v *ViewTransform) Reset() { v.SetState(v.home) }

// Revision increases on every mutation; renderers that cache frames compare it.
func (v *ViewTransform) Revision() uint64 { return v.revision }

// Bounds returns the visible rectangle (min, max corners) for a screen of the
// given pixel size.
func (v *ViewTransform) Bounds(w, h int) (lo, hi mgl64.Vec2) {
	ax, ay := Extent(w, h)
	return v.ScreenToComplex(-ax, -ay), v.ScreenToComplex(ax, ay)
}

func clampScale(s float64) float64 {
	return math.Min(math.Max(s, MinScale), MaxScale)
}

func sanitize(s ViewState) ViewState {
	if !finite(s.Scale) || s.Scale <= 0 {
		s.Scale = DefaultScale
	}
	s.Scale = clampScale(s.Scale)
	if !finite(s.Center.X()) || !finite(s.Center.Y()) {
		s.Center = DefaultCenter
	}
	return s
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
