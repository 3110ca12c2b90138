package viewer

import (
	"fmt"
	"log"

	"github.com/hubastard/mandelbrot/engine/core"
	"github.com/hubastard/mandelbrot/engine/fractal"
	"github.com/hubastard/mandelbrot/engine/profiler"
	"github.com/hubastard/mandelbrot/engine/scene"
	"github.com/hubastard/mandelbrot/internal/config"
)

// FractalLayer owns the view and draws it every frame. The window title
// doubles as the HUD.
type FractalLayer struct {
	View *scene.ViewTransform
	Ctrl *scene.Controller

	title    string
	base     int
	adaptive bool
	verbose  bool
	shown    uint64
	fresh    bool
}

func NewFractalLayer(cfg config.Config, verbose bool) *FractalLayer {
	view := scene.NewViewTransform(cfg.ViewState())
	ctrl := scene.NewController(view, cfg.Window.Width, cfg.Window.Height)
	ctrl.PanSpeed = cfg.Input.PanSpeed
	ctrl.ZoomRate = cfg.Input.ZoomRate
	ctrl.WheelStep = cfg.Input.WheelStep
	return &FractalLayer{
		View:     view,
		Ctrl:     ctrl,
		title:    cfg.Window.Title,
		base:     cfg.Render.MaxIterations,
		adaptive: cfg.Render.Adaptive,
		verbose:  verbose,
	}
}

func (l *FractalLayer) OnAttach(e *core.Engine) {
	w, h := e.Window.FramebufferSize()
	l.Ctrl.SetViewport(w, h)
	l.fresh = true
}

func (l *FractalLayer) OnDetach(e *core.Engine) {}

func (l *FractalLayer) OnUpdate(e *core.Engine, dt float64) {
	l.Ctrl.Update(e.Input, dt)

	if rev := l.View.Revision(); l.fresh || rev != l.shown {
		l.shown, l.fresh = rev, false
		e.Window.SetTitle(l.Title())
		if l.verbose {
			s := l.View.Snapshot()
			log.Printf("view: center=(%.17g, %.17g) scale=%.6g iter=%d", s.Center.X(), s.Center.Y(), s.Scale, l.Iterations())
		}
	}
}

func (l *FractalLayer) OnRender(e *core.Engine, alpha float64) {
	defer profiler.Start("FractalLayer.OnRender")()
	e.Renderer.DrawFractal(l.View.Snapshot().Params(l.Iterations()))
}

func (l *FractalLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	return l.Ctrl.HandleEvent(ev)
}

// Iterations is the budget for the current scale.
func (l *FractalLayer) Iterations() int {
	return fractal.IterationsForScale(l.base, l.View.Snapshot().Scale, l.adaptive)
}

func (l *FractalLayer) Title() string {
	s := l.View.Snapshot()
	return fmt.Sprintf("%s | %.10g %+.10gi | scale %.3g | %d iter",
		l.title, s.Center.X(), s.Center.Y(), s.Scale, l.Iterations())
}
