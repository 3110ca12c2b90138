package core

import (
	"time"

	"github.com/hubastard/mandelbrot/engine/colors"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/renderer init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events not consumed by a layer
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window   Window
	Renderer Renderer
	Input    *Input
	Layers   LayerStack
	start    time.Time
}

func NewEngine(win Window, rend Renderer) *Engine {
	return &Engine{Window: win, Renderer: rend, Input: NewInput(), start: time.Now()}
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(Event))
}

// Renderer abstraction. A backend only needs to clear and draw the fractal
// for the current view.
type Renderer interface {
	Resize(w, h int)
	Clear(r, g, b, a float32)
	DrawFractal(p FractalParams)
	Shutdown()
}

// FractalParams is the per-frame uniform block handed to the renderer.
type FractalParams struct {
	CenterX, CenterY float64
	Scale            float64
	MaxIterations    int
}

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	ClearColor colors.Color
	Palette    colors.Palette
}
