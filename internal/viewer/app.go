// Package viewer is the interactive Mandelbrot application shared by every
// front end.
package viewer

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/hubastard/mandelbrot/engine/colors"
	"github.com/hubastard/mandelbrot/engine/core"
	"github.com/hubastard/mandelbrot/engine/fractal"
	"github.com/hubastard/mandelbrot/engine/profiler"
	"github.com/hubastard/mandelbrot/engine/scene"
	"github.com/hubastard/mandelbrot/internal/config"
)

type App struct {
	Config   config.Config
	Palette  colors.Palette
	Exporter Exporter // nil disables Ctrl+S
	Verbose  bool

	Layer *FractalLayer

	ctx     context.Context
	cancel  context.CancelFunc
	exports sync.WaitGroup
}

// New loads the palette named by cfg.
func New(cfg config.Config) (*App, error) {
	pal, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	return &App{Config: cfg, Palette: pal}, nil
}

// EngineConfig is the window and renderer setup for cfg.
func (a *App) EngineConfig() core.Config {
	return core.Config{
		Title:      a.Config.Window.Title,
		Width:      a.Config.Window.Width,
		Height:     a.Config.Window.Height,
		VSync:      a.Config.Window.VSync,
		ClearColor: colors.Black,
		Palette:    a.Palette,
	}
}

// FrameParams describes a CPU render of s at w x h.
func (a *App) FrameParams(w, h int, s scene.ViewState) fractal.Params {
	return fractal.Params{
		Width:         w,
		Height:        h,
		View:          s,
		MaxIterations: fractal.IterationsForScale(a.Config.Render.MaxIterations, s.Scale, a.Config.Render.Adaptive),
		Palette:       a.Palette,
	}
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 12)
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.Layer = NewFractalLayer(a.Config, a.Verbose)
	e.PushLayer(a.Layer)
	log.Printf("viewer: %d colors, %d base iterations", len(a.Palette), a.Config.Render.MaxIterations)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {}

func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return
	}
	chord := k.Mods&(core.ModCtrl|core.ModSuper) != 0
	switch {
	case k.Key == core.KeyEscape:
		e.Window.RequestClose()
	case chord && k.Key == core.KeyS:
		a.export(e)
	case chord && k.Key == core.KeyP:
		path, err := profiler.Dump()
		if err != nil {
			log.Printf("profiler: %v", err)
			return
		}
		log.Printf("profiler: wrote %s", path)
	}
}

func (a *App) OnShutdown(e *core.Engine) {
	if a.cancel != nil {
		a.cancel()
	}
	a.exports.Wait()
}

// export asks for a destination, then renders off the main loop from a
// snapshot so the view keeps responding.
func (a *App) export(e *core.Engine) {
	if a.Exporter == nil || a.Layer == nil {
		return
	}
	path, err := a.Exporter.Destination(SuggestedName(time.Now()))
	if errors.Is(err, ErrExportCanceled) {
		return
	}
	if err != nil {
		log.Printf("export: %v", err)
		return
	}

	w, h := e.Window.FramebufferSize()
	p := a.FrameParams(w, h, a.Layer.View.Snapshot())
	factor := a.Config.Render.Supersample
	a.exports.Add(1)
	go func() {
		defer a.exports.Done()
		if err := Export(a.ctx, path, p, factor); err != nil {
			log.Printf("export: %v", err)
			return
		}
		log.Printf("export: wrote %s (%dx%d)", path, w, h)
	}()
}
