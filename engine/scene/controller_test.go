package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hubastard/mandelbrot/engine/core"
)

func newTestController() (*Controller, *ViewTransform) {
	v := NewViewTransform(DefaultState())
	return NewController(v, 200, 100), v
}

func TestDragPansContentWithPointer(t *testing.T) {
	cc, v := newTestController()
	cc.HandleEvent(core.EventMouseMove{X: 100, Y: 50})
	grab := v.ScreenToComplex(NormalizePixel(100, 50, 200, 100))

	cc.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: true, X: 100, Y: 50})
	cc.HandleEvent(core.EventMouseMove{X: 140, Y: 70})
	cc.HandleEvent(core.EventMouseButton{Button: core.MouseLeft, Down: false, X: 140, Y: 70})

	if got := v.ScreenToComplex(NormalizePixel(140, 70, 200, 100)); !nearVec(got, grab, 1e-12) {
		t.Errorf("point under pointer = %v, want %v", got, grab)
	}
	if v.Snapshot().Scale != DefaultScale {
		t.Errorf("drag changed scale")
	}

	// moving without a button does nothing
	before := v.Snapshot()
	if cc.HandleEvent(core.EventMouseMove{X: 10, Y: 10}) {
		t.Errorf("plain move reported handled")
	}
	if v.Snapshot() != before {
		t.Errorf("plain move changed view")
	}
}

func TestWheelZoomsAtCursor(t *testing.T) {
	cc, v := newTestController()
	cc.HandleEvent(core.EventMouseMove{X: 30, Y: 80})
	under := v.ScreenToComplex(NormalizePixel(30, 80, 200, 100))

	if !cc.HandleEvent(core.EventScroll{Yoff: 2}) {
		t.Fatal("scroll not handled")
	}
	want := DefaultScale / (cc.WheelStep * cc.WheelStep)
	if s := v.Snapshot().Scale; !near(s, want, 1e-12) {
		t.Errorf("scale = %v, want %v", s, want)
	}
	if got := v.ScreenToComplex(NormalizePixel(30, 80, 200, 100)); !nearVec(got, under, 1e-12) {
		t.Errorf("point under cursor moved %v -> %v", under, got)
	}
}

func TestRightHoldZoomsContinuously(t *testing.T) {
	cc, v := newTestController()
	cc.HandleEvent(core.EventMouseButton{Button: core.MouseRight, Down: true, X: 150, Y: 20})
	if !cc.Zooming() {
		t.Fatal("expected hold zoom to be active")
	}
	in := core.NewInput()
	for i := 0; i < 60; i++ {
		cc.Update(in, 1.0/60)
	}
	want := DefaultScale / cc.ZoomRate
	if s := v.Snapshot().Scale; !near(s, want, 1e-9) {
		t.Errorf("scale after 1s = %v, want %v", s, want)
	}

	cc.HandleEvent(core.EventMouseButton{Button: core.MouseRight, Down: false, X: 150, Y: 20})
	before := v.Snapshot()
	cc.Update(in, 1.0/60)
	if v.Snapshot() != before {
		t.Error("view changed after release")
	}

	cc.HandleEvent(core.EventMouseButton{Button: core.MouseRight, Down: true, Mods: core.ModShift})
	cc.Update(in, 1)
	if s := v.Snapshot().Scale; !near(s, before.Scale*cc.ZoomRate, 1e-9) {
		t.Errorf("shift hold scale = %v, want %v", s, before.Scale*cc.ZoomRate)
	}
}

func TestKeysPanAndZoom(t *testing.T) {
	cc, v := newTestController()
	in := core.NewInput()
	in.Handle(core.EventKey{Key: core.KeyD, Down: true})
	cc.Update(in, 0.5)
	if got := v.Snapshot().Center.X(); !near(got, -0.5+0.5*DefaultScale, 1e-12) {
		t.Errorf("center.x = %v after D", got)
	}

	in.Handle(core.EventKey{Key: core.KeyD, Down: false})
	in.Handle(core.EventKey{Key: core.KeyZ, Down: true})
	cc.Update(in, 1)
	if s := v.Snapshot().Scale; !near(s, DefaultScale/cc.ZoomRate, 1e-12) {
		t.Errorf("scale = %v after Z", s)
	}

	// ctrl chords belong to the app, not to panning
	in.Handle(core.EventKey{Key: core.KeyZ, Down: false})
	in.Handle(core.EventKey{Key: core.KeyS, Down: true, Mods: core.ModCtrl})
	before := v.Snapshot()
	cc.Update(in, 1)
	if v.Snapshot() != before {
		t.Error("ctrl+S panned the view")
	}
}

func TestResetAndLandmarkKeys(t *testing.T) {
	cc, v := newTestController()
	if !cc.HandleEvent(core.EventKey{Key: core.Key2, Down: true}) {
		t.Fatal("landmark key not handled")
	}
	if v.Snapshot() != Landmarks[1].State {
		t.Errorf("state = %+v, want %s", v.Snapshot(), Landmarks[1].Name)
	}
	cc.HandleEvent(core.EventKey{Key: core.KeyR, Down: true})
	if v.Snapshot() != DefaultState() {
		t.Errorf("state after reset = %+v", v.Snapshot())
	}
	if cc.HandleEvent(core.EventKey{Key: core.KeyR, Down: false}) {
		t.Error("key release reported handled")
	}
}

func TestPinchZoomsAtMidpoint(t *testing.T) {
	cc, v := newTestController()
	cc.HandleEvent(core.EventTouch{ID: 1, Phase: core.TouchStarted, X: 80, Y: 50})
	cc.HandleEvent(core.EventTouch{ID: 2, Phase: core.TouchStarted, X: 120, Y: 50})
	mid := v.ScreenToComplex(NormalizePixel(100, 50, 200, 100))

	// spread symmetrically: span 40 -> 80
	cc.HandleEvent(core.EventTouch{ID: 1, Phase: core.TouchMoved, X: 60, Y: 50})
	cc.HandleEvent(core.EventTouch{ID: 2, Phase: core.TouchMoved, X: 140, Y: 50})

	if s := v.Snapshot().Scale; !near(s, DefaultScale/2, 1e-12) {
		t.Errorf("scale = %v, want %v", s, DefaultScale/2)
	}
	if got := v.ScreenToComplex(NormalizePixel(100, 50, 200, 100)); !nearVec(got, mid, 1e-12) {
		t.Errorf("midpoint moved %v -> %v", mid, got)
	}

	cc.HandleEvent(core.EventTouch{ID: 1, Phase: core.TouchEnded})
	cc.HandleEvent(core.EventTouch{ID: 2, Phase: core.TouchEnded})
	if len(cc.touches) != 0 || cc.pinch != 0 {
		t.Errorf("touch state not cleared: %v, %v", cc.touches, cc.pinch)
	}
}

func TestSingleTouchPans(t *testing.T) {
	cc, v := newTestController()
	cc.HandleEvent(core.EventTouch{ID: 7, Phase: core.TouchStarted, X: 100, Y: 50})
	cc.HandleEvent(core.EventTouch{ID: 7, Phase: core.TouchMoved, X: 120, Y: 50})
	want := DefaultCenter.Sub(mgl64.Vec2{0.2 * DefaultScale, 0})
	if got := v.Snapshot().Center; !nearVec(got, want, 1e-12) {
		t.Errorf("center = %v, want %v", got, want)
	}
	if math.Abs(v.Snapshot().Scale-DefaultScale) > 0 {
		t.Error("single touch changed scale")
	}
}
