// Package ebitenrt drives a core.App from ebiten's game loop. ebiten owns the
// loop, so the runner polls its input each tick and turns it into core events.
package ebitenrt

import (
	"errors"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hubastard/mandelbrot/engine/core"
	"github.com/hubastard/mandelbrot/engine/gfx/kage"
)

// Game adapts a core.App to ebiten.Game.
type Game struct {
	app   core.App
	cfg   core.Config
	win   *window
	rend  *kage.Renderer
	eng   *core.Engine
	input poller
	done  bool
}

func NewGame(app core.App, cfg core.Config) *Game {
	return &Game{
		app:   app,
		cfg:   cfg,
		win:   &window{w: cfg.Width, h: cfg.Height},
		input: newPoller(),
	}
}

// Run opens the window (or canvas) and blocks until the app asks to close.
func Run(app core.App, cfg core.Config) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetTPS(core.TickRate)
	ebiten.SetWindowClosingHandled(true)

	err := ebiten.RunGame(NewGame(app, cfg))
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// start runs on the first tick: shaders must be created once the graphics
// driver is up.
func (g *Game) start() error {
	rend, err := kage.New(g.cfg)
	if err != nil {
		return fmt.Errorf("ebiten renderer: %w", err)
	}
	g.rend = rend
	g.eng = core.NewEngine(g.win, rend)
	g.win.SetEventCallback(func(ev core.Event) {
		if _, ok := ev.(core.EventCloseRequested); ok {
			g.win.RequestClose()
		}
		g.eng.Dispatch(g.app, ev)
	})
	g.app.OnStart(g.eng)
	log.Printf("ebiten runner started (%dx%d)", g.win.w, g.win.h)
	return nil
}

func (g *Game) Update() error {
	if g.done {
		return ebiten.Termination
	}
	if g.eng == nil {
		if err := g.start(); err != nil {
			return err
		}
	}

	if ebiten.IsWindowBeingClosed() {
		g.win.emit(core.EventCloseRequested{})
	}
	g.input.poll(g.win)

	g.eng.Step(g.app, 1/float64(core.TickRate))

	if g.win.ShouldClose() {
		g.eng.Shutdown(g.app)
		g.rend.Shutdown()
		g.done = true
		log.Println("Engine exit")
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.eng == nil || g.done {
		return
	}
	g.rend.SetTarget(screen)
	c := g.cfg.ClearColor
	g.rend.Clear(c[0], c[1], c[2], c[3])
	// ebiten ticks at a fixed rate; there is nothing to interpolate
	g.eng.Draw(g.app, 0)
	g.rend.SetTarget(nil)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.win.w || outsideHeight != g.win.h {
		g.win.w, g.win.h = outsideWidth, outsideHeight
		g.win.resized = true
	}
	return outsideWidth, outsideHeight
}

// window implements core.Window on top of ebiten's global window state.
type window struct {
	w, h    int
	resized bool
	closing bool
	onEv    func(core.Event)
}

func (w *window) emit(ev core.Event) {
	if w.onEv != nil {
		w.onEv(ev)
	}
}

func (w *window) PollEvents()                          {}
func (w *window) SwapBuffers()                         {}
func (w *window) ShouldClose() bool                    { return w.closing }
func (w *window) RequestClose()                        { w.closing = true }
func (w *window) FramebufferSize() (int, int)          { return w.w, w.h }
func (w *window) SetTitle(t string)                    { ebiten.SetWindowTitle(t) }
func (w *window) SetEventCallback(cb func(core.Event)) { w.onEv = cb }
