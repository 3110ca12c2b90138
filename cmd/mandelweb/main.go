// Command mandelweb runs the viewer on ebiten: a desktop window, or a canvas
// when built with GOOS=js GOARCH=wasm.
package main

import (
	"log"

	"github.com/hubastard/mandelbrot/engine/platform/ebitenrt"
	"github.com/hubastard/mandelbrot/internal/config"
	"github.com/hubastard/mandelbrot/internal/viewer"
)

func main() {
	// no file system in the browser; defaults and MANDEL_* only
	cfg, err := config.Load("")
	if err != nil {
		log.Fatal(err)
	}
	app, err := viewer.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := ebitenrt.Run(app, app.EngineConfig()); err != nil {
		log.Fatal(err)
	}
}
