package main

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/mandelbrot/engine/core"
)

const (
	// holdFor keeps a key down between terminal key repeats, which is the only
	// press information a terminal gives us.
	holdFor = 150 * time.Millisecond
	// frameTime caps the redraw rate.
	frameTime = time.Second / 30
)

// termWindow implements core.Window on a tcell screen. Each cell holds two
// pixels stacked vertically, so the framebuffer is cols x 2*rows.
type termWindow struct {
	screen  tcell.Screen
	events  chan tcell.Event
	onEv    func(core.Event)
	closing bool

	held    map[core.Key]time.Time // release deadlines
	buttons tcell.ButtonMask
	mx, my  int
	shown   time.Time
	now     func() time.Time
}

func newTermWindow(s tcell.Screen) *termWindow {
	w := &termWindow{
		screen: s,
		events: make(chan tcell.Event, 64),
		held:   map[core.Key]time.Time{},
		mx:     -1,
		my:     -1,
		now:    time.Now,
	}
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			w.events <- ev
		}
	}()
	return w
}

func (w *termWindow) emit(ev core.Event) {
	if w.onEv != nil {
		w.onEv(ev)
	}
}

func (w *termWindow) PollEvents() {
	for {
		select {
		case ev := <-w.events:
			w.handle(ev)
		default:
			w.releaseExpired()
			return
		}
	}
}

func (w *termWindow) handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		cols, rows := e.Size()
		w.emit(core.EventResize{W: cols, H: 2 * rows})
	case *tcell.EventKey:
		w.handleKey(e)
	case *tcell.EventMouse:
		w.handleMouse(e)
	}
}

func (w *termWindow) handleKey(e *tcell.EventKey) {
	if e.Key() == tcell.KeyCtrlC || (e.Key() == tcell.KeyRune && e.Rune() == 'q') {
		w.RequestClose()
		return
	}
	key, mods := translateKey(e)
	if key == core.KeyUnknown {
		return
	}
	if _, down := w.held[key]; !down {
		w.emit(core.EventKey{Key: key, Down: true, Mods: mods})
	}
	w.held[key] = w.now().Add(holdFor)
}

func (w *termWindow) releaseExpired() {
	now := w.now()
	for k, until := range w.held {
		if now.After(until) {
			delete(w.held, k)
			w.emit(core.EventKey{Key: k, Down: false})
		}
	}
}

// handleMouse turns tcell's button state snapshots into transitions.
func (w *termWindow) handleMouse(e *tcell.EventMouse) {
	cx, cy := e.Position()
	x, y := float64(cx)+0.5, float64(2*cy)+1
	mods := translateMods(e.Modifiers())

	if cx != w.mx || cy != w.my {
		w.mx, w.my = cx, cy
		w.emit(core.EventMouseMove{X: x, Y: y})
	}

	btns := e.Buttons()
	switch {
	case btns&tcell.WheelUp != 0:
		w.emit(core.EventScroll{Yoff: 1})
	case btns&tcell.WheelDown != 0:
		w.emit(core.EventScroll{Yoff: -1})
	}

	for _, b := range []struct {
		mask tcell.ButtonMask
		btn  core.MouseButton
	}{
		{tcell.Button1, core.MouseLeft},
		{tcell.Button2, core.MouseRight},
		{tcell.Button3, core.MouseMiddle},
	} {
		was, is := w.buttons&b.mask != 0, btns&b.mask != 0
		if was != is {
			w.emit(core.EventMouseButton{Button: b.btn, Down: is, X: x, Y: y, Mods: mods})
		}
	}
	w.buttons = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)
}

// SwapBuffers presents the frame and paces the loop.
func (w *termWindow) SwapBuffers() {
	w.screen.Show()
	if d := frameTime - w.now().Sub(w.shown); d > 0 {
		time.Sleep(d)
	}
	w.shown = w.now()
}

func (w *termWindow) ShouldClose() bool { return w.closing }
func (w *termWindow) RequestClose()     { w.closing = true }

func (w *termWindow) FramebufferSize() (int, int) {
	cols, rows := w.screen.Size()
	return cols, 2 * rows
}

func (w *termWindow) SetTitle(t string)                    { w.screen.SetTitle(t) }
func (w *termWindow) SetEventCallback(cb func(core.Event)) { w.onEv = cb }

var runeKeys = map[rune]core.Key{
	'w': core.KeyW, 'a': core.KeyA, 's': core.KeyS, 'd': core.KeyD,
	'z': core.KeyZ, 'x': core.KeyX, 'r': core.KeyR, 'p': core.KeyP,
	' ': core.KeySpace,
	'1': core.Key1, '2': core.Key2, '3': core.Key3,
	'4': core.Key4, '5': core.Key5, '6': core.Key6,
}

func translateKey(e *tcell.EventKey) (core.Key, core.Mod) {
	mods := translateMods(e.Modifiers())
	switch e.Key() {
	case tcell.KeyRune:
		r := e.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
			mods |= core.ModShift
		}
		return runeKeys[r], mods
	case tcell.KeyEscape:
		return core.KeyEscape, mods
	case tcell.KeyUp:
		return core.KeyUp, mods
	case tcell.KeyDown:
		return core.KeyDown, mods
	case tcell.KeyLeft:
		return core.KeyLeft, mods
	case tcell.KeyRight:
		return core.KeyRight, mods
	case tcell.KeyCtrlS:
		return core.KeyS, mods | core.ModCtrl
	case tcell.KeyCtrlP:
		return core.KeyP, mods | core.ModCtrl
	}
	return core.KeyUnknown, mods
}

func translateMods(m tcell.ModMask) core.Mod {
	var out core.Mod
	if m&tcell.ModShift != 0 {
		out |= core.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		out |= core.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		out |= core.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		out |= core.ModSuper
	}
	return out
}
