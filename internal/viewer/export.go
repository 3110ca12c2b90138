package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hubastard/mandelbrot/engine/assets"
	"github.com/hubastard/mandelbrot/engine/fractal"
)

// ErrExportCanceled is returned by an Exporter when the user backs out.
var ErrExportCanceled = errors.New("export canceled")

// Exporter chooses where an exported frame goes.
type Exporter interface {
	Destination(suggested string) (string, error)
}

// ExporterFunc adapts a function to Exporter.
type ExporterFunc func(suggested string) (string, error)

func (f ExporterFunc) Destination(suggested string) (string, error) { return f(suggested) }

// SuggestedName is a timestamped default file name.
func SuggestedName(now time.Time) string {
	return "mandelbrot-" + now.Format("20060102-150405") + ".png"
}

// Export renders p on the CPU, supersampled by factor, and writes a PNG.
func Export(ctx context.Context, path string, p fractal.Params, factor int) error {
	img, err := fractal.RenderSupersampled(ctx, p, factor)
	if err != nil {
		return fmt.Errorf("render %dx%d: %w", p.Width, p.Height, err)
	}
	if err := assets.SavePNG(path, img); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
