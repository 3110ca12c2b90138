package core

import (
	"log"
	"runtime"
	"time"
)

const (
	// TickRate is the fixed update frequency.
	TickRate = 60
	// maxSteps bounds catch-up updates per frame (prevents the spiral of death).
	maxSteps = 10
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := NewEngine(win, rend)
	win.SetEventCallback(func(ev Event) {
		switch v := ev.(type) {
		case EventResize:
			if v.W < 1 || v.H < 1 {
				// minimized; keep the last viewport
				return
			}
			rend.Resize(v.W, v.H)
		case EventCloseRequested:
			win.RequestClose()
		}
		eng.Dispatch(app, ev)
	})

	app.OnStart(eng)

	loop := newFixedStep(time.Second / TickRate)
	clear := cfg.ClearColor
	for !win.ShouldClose() {
		// Poll OS events (platform emits via callbacks)
		win.PollEvents()

		steps, alpha := loop.advance(time.Now())
		for i := 0; i < steps; i++ {
			eng.Step(app, loop.dt())
		}

		rend.Clear(clear[0], clear[1], clear[2], clear[3])
		eng.Draw(app, alpha)

		win.SwapBuffers()
	}

	eng.Shutdown(app)
	log.Println("Engine exit")
	return nil
}

// fixedStep accumulates wall time into whole ticks plus an interpolation remainder.
type fixedStep struct {
	tick  time.Duration
	accum time.Duration
	prev  time.Time
}

func newFixedStep(tick time.Duration) *fixedStep { return &fixedStep{tick: tick} }

func (f *fixedStep) dt() float64 { return f.tick.Seconds() }

// advance returns how many updates to run for the time elapsed since the last
// call and the render alpha in [0, 1).
func (f *fixedStep) advance(now time.Time) (steps int, alpha float64) {
	if f.prev.IsZero() {
		f.prev = now
	}
	f.accum += now.Sub(f.prev)
	f.prev = now

	for f.accum >= f.tick && steps < maxSteps {
		f.accum -= f.tick
		steps++
	}
	if steps == maxSteps && f.accum >= f.tick {
		// drop the backlog instead of carrying it into the next frame
		f.accum = 0
	}
	return steps, float64(f.accum) / float64(f.tick)
}
