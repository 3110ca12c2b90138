package scene

// Normalized screen space: the longer axis spans [-1, 1], the shorter axis
// spans the matching fraction, y grows upward. Pixel space has its origin at
// the top-left corner.

// Extent returns the normalized half-extents of a w x h screen.
func Extent(w, h int) (ax, ay float64) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	l := float64(max(w, h))
	return float64(w) / l, float64(h) / l
}

// NormalizePixel maps a pixel position to normalized screen space.
func NormalizePixel(px, py float64, w, h int) (x, y float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	l := float64(max(w, h))
	return (2*px - float64(w)) / l, (float64(h) - 2*py) / l
}

// NormalizeDelta maps a pixel displacement to a normalized one.
func NormalizeDelta(dx, dy float64, w, h int) (x, y float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	l := float64(max(w, h))
	return 2 * dx / l, -2 * dy / l
}

// PixelFromNormalized is the inverse of NormalizePixel.
func PixelFromNormalized(x, y float64, w, h int) (px, py float64) {
	l := float64(max(w, h))
	return (x*l + float64(w)) / 2, (float64(h) - y*l) / 2
}
