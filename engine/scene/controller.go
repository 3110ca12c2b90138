package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/mandelbrot/engine/core"
)

// Controller drives a ViewTransform from input:
//
//	left drag / one finger   pan
//	wheel                    zoom at cursor
//	right hold               zoom in at cursor (shift: out)
//	pinch                    zoom at the fingers' midpoint
//	WASD / arrows            pan
//	Z / X                    zoom in / out at center
//	R                        reset
//	1..6                     landmarks
type Controller struct {
	View      *ViewTransform
	PanSpeed  float64 // normalized screen units per second
	ZoomRate  float64 // zoom factor per second while held, > 1
	WheelStep float64 // zoom factor per wheel notch, > 1

	w, h     int
	cursor   mgl64.Vec2 // pixels
	dragging bool
	hold     float64 // +1 zooming in, -1 zooming out, 0 idle
	touches  map[int]mgl64.Vec2
	pinch    float64 // last distance between two touches
}

func NewController(v *ViewTransform, w, h int) *Controller {
	return &Controller{
		View:      v,
		PanSpeed:  1,
		ZoomRate:  1.8,
		WheelStep: 1.2,
		w:         w,
		h:         h,
		touches:   map[int]mgl64.Vec2{},
	}
}

func (cc *Controller) SetViewport(w, h int) { cc.w, cc.h = w, h }

func (cc *Controller) Viewport() (int, int) { return cc.w, cc.h }

// Zooming reports whether a hold-to-zoom gesture is active.
func (cc *Controller) Zooming() bool { return cc.hold != 0 }

// Update applies continuous input: held keys and hold-to-zoom.
func (cc *Controller) Update(in *core.Input, dt float64) {
	if cc.hold != 0 {
		px, py := cc.normalized(cc.cursor)
		cc.View.Zoom(math.Pow(cc.ZoomRate, -cc.hold*dt), px, py)
	}
	if in == nil || in.Mods()&(core.ModCtrl|core.ModSuper) != 0 {
		return
	}

	speed := cc.PanSpeed * dt
	var dx, dy float64
	if in.IsKeyDown(core.KeyW) || in.IsKeyDown(core.KeyUp) {
		dy -= speed
	}
	if in.IsKeyDown(core.KeyS) || in.IsKeyDown(core.KeyDown) {
		dy += speed
	}
	if in.IsKeyDown(core.KeyA) || in.IsKeyDown(core.KeyLeft) {
		dx += speed
	}
	if in.IsKeyDown(core.KeyD) || in.IsKeyDown(core.KeyRight) {
		dx -= speed
	}
	cc.View.Pan(dx, dy)

	if in.IsKeyDown(core.KeyZ) {
		cc.View.Zoom(math.Pow(cc.ZoomRate, -dt), 0, 0)
	}
	if in.IsKeyDown(core.KeyX) {
		cc.View.Zoom(math.Pow(cc.ZoomRate, dt), 0, 0)
	}
}

// HandleEvent consumes discrete input. It returns true when the event was used.
func (cc *Controller) HandleEvent(ev core.Event) bool {
	switch v := ev.(type) {
	case core.EventResize:
		cc.SetViewport(v.W, v.H)
		return false

	case core.EventMouseMove:
		pos := mgl64.Vec2{v.X, v.Y}
		if cc.dragging {
			cc.panBy(pos.Sub(cc.cursor))
		}
		cc.cursor = pos
		return cc.dragging || cc.hold != 0

	case core.EventMouseButton:
		cc.cursor = mgl64.Vec2{v.X, v.Y}
		switch v.Button {
		case core.MouseLeft:
			cc.dragging = v.Down
		case core.MouseRight:
			cc.hold = 0
			if v.Down {
				cc.hold = 1
				if v.Mods&core.ModShift != 0 {
					cc.hold = -1
				}
			}
		default:
			return false
		}
		return true

	case core.EventScroll:
		if v.Yoff == 0 {
			return false
		}
		px, py := cc.normalized(cc.cursor)
		cc.View.Zoom(math.Pow(cc.WheelStep, -v.Yoff), px, py)
		return true

	case core.EventKey:
		if !v.Down || v.Mods&(core.ModCtrl|core.ModSuper) != 0 {
			return false
		}
		switch {
		case v.Key == core.KeyR:
			cc.View.Reset()
			return true
		case v.Key >= core.Key1 && v.Key <= core.Key6:
			if i := int(v.Key - core.Key1); i < len(Landmarks) {
				cc.View.SetState(Landmarks[i].State)
			}
			return true
		}

	case core.EventTouch:
		return cc.handleTouch(v)
	}
	return false
}

func (cc *Controller) handleTouch(t core.EventTouch) bool {
	pos := mgl64.Vec2{t.X, t.Y}
	switch t.Phase {
	case core.TouchStarted:
		cc.touches[t.ID] = pos
		cc.pinch = cc.touchSpan()
	case core.TouchMoved:
		prev, ok := cc.touches[t.ID]
		if !ok {
			return false
		}
		switch len(cc.touches) {
		case 1:
			cc.panBy(pos.Sub(prev))
			cc.touches[t.ID] = pos
		case 2:
			oldMid := cc.touchMid()
			cc.touches[t.ID] = pos
			mid := cc.touchMid()
			cc.panBy(mid.Sub(oldMid))
			if span := cc.touchSpan(); span > 0 && cc.pinch > 0 {
				px, py := cc.normalized(mid)
				cc.View.Zoom(cc.pinch/span, px, py)
				cc.pinch = span
			}
		default:
			cc.touches[t.ID] = pos
		}
	case core.TouchEnded, core.TouchCancelled:
		delete(cc.touches, t.ID)
		cc.pinch = cc.touchSpan()
	}
	return true
}

// touchSpan is the distance between the two active touches, or 0.
func (cc *Controller) touchSpan() float64 {
	if len(cc.touches) != 2 {
		return 0
	}
	var pts []mgl64.Vec2
	for _, p := range cc.touches {
		pts = append(pts, p)
	}
	return pts[0].Sub(pts[1]).Len()
}

func (cc *Controller) touchMid() mgl64.Vec2 {
	var sum mgl64.Vec2
	for _, p := range cc.touches {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(cc.touches)))
}

func (cc *Controller) panBy(d mgl64.Vec2) {
	dx, dy := NormalizeDelta(d.X(), d.Y(), cc.w, cc.h)
	cc.View.Pan(dx, dy)
}

func (cc *Controller) normalized(p mgl64.Vec2) (float64, float64) {
	return NormalizePixel(p.X(), p.Y(), cc.w, cc.h)
}
