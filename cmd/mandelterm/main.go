// Command mandelterm explores the Mandelbrot set in a true-colour terminal.
package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/hubastard/mandelbrot/engine/core"
	"github.com/hubastard/mandelbrot/internal/config"
	"github.com/hubastard/mandelbrot/internal/viewer"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	logPath := flag.String("log", "", "write logs to this file (the screen is busy)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	app, err := viewer.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	// no dialog in a terminal: export next to the working directory
	app.Exporter = viewer.ExporterFunc(func(name string) (string, error) { return name, nil })

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
	screen.EnableMouse()
	screen.HideCursor()

	newWindow := func(core.Config) (core.Window, error) {
		return newTermWindow(screen), nil
	}
	newRenderer := func(_ core.Window, cfg core.Config) (core.Renderer, error) {
		return newTermRenderer(screen, cfg), nil
	}

	err = core.Run(app, app.EngineConfig(), newWindow, newRenderer)
	screen.Fini()
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
