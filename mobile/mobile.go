// Package mobile is the gomobile binding for Android and iOS:
//
//	ebitenmobile bind -target android -javapkg com.hubastard.mandelbrot ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"
	"github.com/hubastard/mandelbrot/engine/platform/ebitenrt"
	"github.com/hubastard/mandelbrot/internal/config"
	"github.com/hubastard/mandelbrot/internal/viewer"
)

func init() {
	app, err := viewer.New(config.Default())
	if err != nil {
		log.Fatal(err)
	}
	mobile.SetGame(ebitenrt.NewGame(app, app.EngineConfig()))
}

// Dummy is exported so gomobile emits a binding for this package.
func Dummy() {}
