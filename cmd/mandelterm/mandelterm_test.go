package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/mandelbrot/engine/colors"
	"github.com/hubastard/mandelbrot/engine/core"
	"github.com/hubastard/mandelbrot/engine/scene"
)

func testWindow(clock *time.Time) (*termWindow, *[]core.Event) {
	var got []core.Event
	w := &termWindow{
		held: map[core.Key]time.Time{},
		mx:   -1,
		my:   -1,
		now:  func() time.Time { return *clock },
	}
	w.SetEventCallback(func(ev core.Event) { got = append(got, ev) })
	return w, &got
}

func TestKeyHeldUntilRepeatsStop(t *testing.T) {
	clock := time.Unix(100, 0)
	w, got := testWindow(&clock)

	w.handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	clock = clock.Add(100 * time.Millisecond)
	w.handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)) // auto-repeat
	w.releaseExpired()
	if len(*got) != 1 {
		t.Fatalf("events = %v, want a single press", *got)
	}

	clock = clock.Add(holdFor + time.Millisecond)
	w.releaseExpired()
	want := []core.Event{
		core.EventKey{Key: core.KeyW, Down: true},
		core.EventKey{Key: core.KeyW, Down: false},
	}
	if len(*got) != 2 || (*got)[0] != want[0] || (*got)[1] != want[1] {
		t.Errorf("events = %v, want %v", *got, want)
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		key  core.Key
		mods core.Mod
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'z', tcell.ModNone), core.KeyZ, 0},
		{tcell.NewEventKey(tcell.KeyRune, 'R', tcell.ModNone), core.KeyR, core.ModShift},
		{tcell.NewEventKey(tcell.KeyRune, '3', tcell.ModNone), core.Key3, 0},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), core.KeyLeft, 0},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), core.KeyEscape, 0},
		{tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone), core.KeyUnknown, 0},
	}
	for _, tt := range tests {
		key, mods := translateKey(tt.ev)
		if key != tt.key || mods != tt.mods {
			t.Errorf("translateKey(%v) = %v, %v; want %v, %v", tt.ev.Name(), key, mods, tt.key, tt.mods)
		}
	}

	key, mods := translateKey(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl))
	if key != core.KeyS || mods&core.ModCtrl == 0 {
		t.Errorf("ctrl+s = %v, %v", key, mods)
	}
}

func TestQuitKeysClose(t *testing.T) {
	clock := time.Unix(0, 0)
	w, _ := testWindow(&clock)
	w.handle(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if !w.ShouldClose() {
		t.Error("q did not close")
	}
}

func TestMouseTransitions(t *testing.T) {
	clock := time.Unix(0, 0)
	w, got := testWindow(&clock)

	w.handle(tcell.NewEventMouse(4, 2, tcell.Button1, tcell.ModNone))
	w.handle(tcell.NewEventMouse(6, 2, tcell.Button1, tcell.ModNone))
	w.handle(tcell.NewEventMouse(6, 2, tcell.ButtonNone, tcell.ModNone))
	w.handle(tcell.NewEventMouse(6, 2, tcell.WheelUp, tcell.ModNone))

	want := []core.Event{
		core.EventMouseMove{X: 4.5, Y: 5},
		core.EventMouseButton{Button: core.MouseLeft, Down: true, X: 4.5, Y: 5},
		core.EventMouseMove{X: 6.5, Y: 5},
		core.EventMouseButton{Button: core.MouseLeft, Down: false, X: 6.5, Y: 5},
		core.EventScroll{Yoff: 1},
	}
	if len(*got) != len(want) {
		t.Fatalf("events = %v, want %v", *got, want)
	}
	for i := range want {
		if (*got)[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, (*got)[i], want[i])
		}
	}
}

func TestRendererPaintsHalfBlocks(t *testing.T) {
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	defer s.Fini()
	s.SetSize(8, 4)

	r := newTermRenderer(s, core.Config{Palette: colors.Rainbow(4)})
	r.Resize(8, 8)
	r.DrawFractal(scene.DefaultState().Params(100))

	// (-0.5, 0) is inside the set: the centre cells are black on black
	mainc, _, style, _ := s.GetContent(4, 2)
	if mainc != halfBlock {
		t.Fatalf("cell rune = %q, want %q", mainc, halfBlock)
	}
	fg, bg, _ := style.Decompose()
	black := tcell.NewRGBColor(0, 0, 0)
	if fg != black || bg != black {
		t.Errorf("centre colours = %v/%v, want black", fg, bg)
	}
	if !r.valid {
		t.Error("frame not cached")
	}
}
