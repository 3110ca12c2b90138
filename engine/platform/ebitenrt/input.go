package ebitenrt

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hubastard/mandelbrot/engine/core"
)

var keyMap = map[ebiten.Key]core.Key{
	ebiten.KeyEscape:     core.KeyEscape,
	ebiten.KeySpace:      core.KeySpace,
	ebiten.KeyW:          core.KeyW,
	ebiten.KeyA:          core.KeyA,
	ebiten.KeyS:          core.KeyS,
	ebiten.KeyD:          core.KeyD,
	ebiten.KeyZ:          core.KeyZ,
	ebiten.KeyX:          core.KeyX,
	ebiten.KeyR:          core.KeyR,
	ebiten.KeyP:          core.KeyP,
	ebiten.KeyArrowUp:    core.KeyUp,
	ebiten.KeyArrowDown:  core.KeyDown,
	ebiten.KeyArrowLeft:  core.KeyLeft,
	ebiten.KeyArrowRight: core.KeyRight,
	ebiten.KeyDigit1:     core.Key1,
	ebiten.KeyDigit2:     core.Key2,
	ebiten.KeyDigit3:     core.Key3,
	ebiten.KeyDigit4:     core.Key4,
	ebiten.KeyDigit5:     core.Key5,
	ebiten.KeyDigit6:     core.Key6,
}

var buttonMap = []struct {
	eb   ebiten.MouseButton
	core core.MouseButton
}{
	{ebiten.MouseButtonLeft, core.MouseLeft},
	{ebiten.MouseButtonRight, core.MouseRight},
	{ebiten.MouseButtonMiddle, core.MouseMiddle},
}

type point struct{ x, y int }

// poller diffs ebiten's polled input state between ticks.
type poller struct {
	cursor  point
	touches map[ebiten.TouchID]point
	keys    []ebiten.Key
	ids     []ebiten.TouchID
}

func newPoller() poller {
	return poller{cursor: point{-1, -1}, touches: map[ebiten.TouchID]point{}}
}

func mods() core.Mod {
	var m core.Mod
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		m |= core.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		m |= core.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		m |= core.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		m |= core.ModSuper
	}
	return m
}

func (p *poller) poll(w *window) {
	if w.resized {
		w.resized = false
		w.emit(core.EventResize{W: w.w, H: w.h})
	}

	m := mods()
	p.keys = inpututil.AppendJustPressedKeys(p.keys[:0])
	for _, k := range p.keys {
		if ck, ok := keyMap[k]; ok {
			w.emit(core.EventKey{Key: ck, Down: true, Mods: m})
		}
	}
	p.keys = inpututil.AppendJustReleasedKeys(p.keys[:0])
	for _, k := range p.keys {
		if ck, ok := keyMap[k]; ok {
			w.emit(core.EventKey{Key: ck, Down: false, Mods: m})
		}
	}

	x, y := ebiten.CursorPosition()
	if cur := (point{x, y}); cur != p.cursor {
		p.cursor = cur
		w.emit(core.EventMouseMove{X: float64(x), Y: float64(y)})
	}
	for _, b := range buttonMap {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			w.emit(core.EventMouseButton{Button: b.core, Down: true, X: float64(x), Y: float64(y), Mods: m})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			w.emit(core.EventMouseButton{Button: b.core, Down: false, X: float64(x), Y: float64(y), Mods: m})
		}
	}
	if xoff, yoff := ebiten.Wheel(); xoff != 0 || yoff != 0 {
		w.emit(core.EventScroll{Xoff: xoff, Yoff: yoff})
	}

	p.pollTouches(w)
}

func (p *poller) pollTouches(w *window) {
	p.ids = inpututil.AppendJustReleasedTouchIDs(p.ids[:0])
	for _, id := range p.ids {
		x, y := inpututil.TouchPositionInPreviousTick(id)
		delete(p.touches, id)
		w.emit(core.EventTouch{ID: int(id), Phase: core.TouchEnded, X: float64(x), Y: float64(y)})
	}

	p.ids = ebiten.AppendTouchIDs(p.ids[:0])
	for _, id := range p.ids {
		x, y := ebiten.TouchPosition(id)
		cur := point{x, y}
		prev, known := p.touches[id]
		p.touches[id] = cur
		switch {
		case !known:
			w.emit(core.EventTouch{ID: int(id), Phase: core.TouchStarted, X: float64(x), Y: float64(y)})
		case prev != cur:
			w.emit(core.EventTouch{ID: int(id), Phase: core.TouchMoved, X: float64(x), Y: float64(y)})
		}
	}
}
