package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hubastard/mandelbrot/engine/core"
	glbackend "github.com/hubastard/mandelbrot/engine/gfx/gl"
	"github.com/hubastard/mandelbrot/engine/platform"
	"github.com/hubastard/mandelbrot/internal/config"
	"github.com/hubastard/mandelbrot/internal/viewer"
	"github.com/ncruces/zenity"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file")
		width      = flag.Int("width", 0, "window (or export) width in pixels")
		height     = flag.Int("height", 0, "window (or export) height in pixels")
		iterations = flag.Int("iterations", 0, "base iteration budget")
		verbose    = flag.Bool("v", false, "log view changes")
		exportPath = flag.String("export", "", "render the configured view to this PNG and exit")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *configPath != "" {
		log.Printf("config: %s", *configPath)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "iterations":
			cfg.Render.MaxIterations = *iterations
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	app, err := viewer.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	app.Verbose = *verbose

	if *exportPath != "" {
		if err := exportHeadless(app, *exportPath); err != nil {
			log.Fatal(err)
		}
		return
	}

	app.Exporter = viewer.ExporterFunc(saveDialog)

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		win = w
		return w, err
	}
	newRenderer := func(w core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(w, cfg)
	}

	err = core.Run(app, app.EngineConfig(), newWindow, newRenderer)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		log.Fatal(err)
	}
}

func exportHeadless(app *viewer.App, path string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := app.Config
	p := app.FrameParams(cfg.Window.Width, cfg.Window.Height, cfg.ViewState())
	if err := viewer.Export(ctx, path, p, cfg.Render.Supersample); err != nil {
		return err
	}
	log.Printf("export: wrote %s (%dx%d, %d iter)", path, p.Width, p.Height, p.MaxIterations)
	return nil
}

func saveDialog(suggested string) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Export view"),
		zenity.Filename(suggested),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "PNG image",
			Patterns: []string{"*.png"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", viewer.ErrExportCanceled
	}
	return path, err
}
