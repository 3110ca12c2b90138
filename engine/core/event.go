package core

// Event model. Pointer coordinates are framebuffer pixels, origin top-left.
type Event interface{ isEvent() }

type EventCloseRequested struct{}

func (EventCloseRequested) isEvent() {}

type EventResize struct{ W, H int }

func (EventResize) isEvent() {}

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) isEvent() {}

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X, Y   float64
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

// EventScroll carries wheel offsets; positive Yoff scrolls up (away from the user).
type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) isEvent() {}

type EventTouch struct {
	ID    int
	Phase TouchPhase
	X, Y  float64
}

func (EventTouch) isEvent() {}

type TouchPhase int

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyW
	KeyA
	KeyS
	KeyD
	KeyZ
	KeyX
	KeyR
	KeyP
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)
