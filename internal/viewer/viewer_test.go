package viewer

import (
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hubastard/mandelbrot/engine/core"
	"github.com/hubastard/mandelbrot/engine/scene"
	"github.com/hubastard/mandelbrot/internal/config"
)

type fakeWindow struct {
	w, h   int
	title  string
	closed bool
}

func (f *fakeWindow) PollEvents()                       {}
func (f *fakeWindow) SwapBuffers()                      {}
func (f *fakeWindow) ShouldClose() bool                 { return f.closed }
func (f *fakeWindow) RequestClose()                     { f.closed = true }
func (f *fakeWindow) FramebufferSize() (int, int)       { return f.w, f.h }
func (f *fakeWindow) SetTitle(t string)                 { f.title = t }
func (f *fakeWindow) SetEventCallback(func(core.Event)) {}

type fakeRenderer struct {
	frames []core.FractalParams
}

func (f *fakeRenderer) Resize(w, h int)                  {}
func (f *fakeRenderer) Clear(r, g, b, a float32)         {}
func (f *fakeRenderer) DrawFractal(p core.FractalParams) { f.frames = append(f.frames, p) }
func (f *fakeRenderer) Shutdown()                        {}

func startApp(t *testing.T, cfg config.Config) (*App, *core.Engine, *fakeWindow, *fakeRenderer) {
	t.Helper()
	app, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	win := &fakeWindow{w: 200, h: 100}
	rend := &fakeRenderer{}
	e := core.NewEngine(win, rend)
	app.OnStart(e)
	t.Cleanup(func() { e.Shutdown(app) })
	return app, e, win, rend
}

func TestRenderPassesSnapshot(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Adaptive = false
	_, e, _, rend := startApp(t, cfg)

	e.Draw(nopApp{}, 0)
	if len(rend.frames) != 1 {
		t.Fatalf("frames = %d, want 1", len(rend.frames))
	}
	got := rend.frames[0]
	want := scene.DefaultState().Params(cfg.Render.MaxIterations)
	if got != want {
		t.Errorf("params = %+v, want %+v", got, want)
	}
}

func TestDragThenWheelUpdatesViewAndTitle(t *testing.T) {
	app, e, win, rend := startApp(t, config.Default())

	// drag 20px right on a 200x100 framebuffer: 0.2 normalized units
	e.Dispatch(app, core.EventMouseButton{Button: core.MouseLeft, Down: true, X: 100, Y: 50})
	e.Dispatch(app, core.EventMouseMove{X: 120, Y: 50})
	e.Dispatch(app, core.EventMouseButton{Button: core.MouseLeft, Down: false, X: 120, Y: 50})
	e.Step(app, 1.0/60)

	s := app.Layer.View.Snapshot()
	if got := s.Center.X(); got < -0.8000001 || got > -0.7999999 {
		t.Errorf("center.x = %v, want -0.8", got)
	}
	if !strings.Contains(win.title, "-0.8") {
		t.Errorf("title %q does not show the new center", win.title)
	}

	e.Dispatch(app, core.EventScroll{Yoff: 1})
	e.Draw(app, 0)
	last := rend.frames[len(rend.frames)-1]
	if last.Scale >= s.Scale {
		t.Errorf("wheel up should zoom in: scale %v -> %v", s.Scale, last.Scale)
	}
}

func TestEscapeRequestsClose(t *testing.T) {
	app, e, win, _ := startApp(t, config.Default())
	e.Dispatch(app, core.EventKey{Key: core.KeyEscape, Down: true})
	if !win.closed {
		t.Error("escape did not request close")
	}
}

func TestCtrlSExports(t *testing.T) {
	cfg := config.Default()
	cfg.Render.Supersample = 1
	app, e, _, _ := startApp(t, cfg)

	path := filepath.Join(t.TempDir(), "shot.png")
	var suggested string
	app.Exporter = ExporterFunc(func(s string) (string, error) {
		suggested = s
		return path, nil
	})

	e.Dispatch(app, core.EventKey{Key: core.KeyS, Down: true, Mods: core.ModCtrl})
	app.exports.Wait()

	if !strings.HasSuffix(suggested, ".png") {
		t.Errorf("suggested name %q", suggested)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("export not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("export size = %v, want 200x100", b)
	}
}

func TestExportCanceled(t *testing.T) {
	app, e, _, _ := startApp(t, config.Default())
	app.Exporter = ExporterFunc(func(string) (string, error) { return "", ErrExportCanceled })
	e.Dispatch(app, core.EventKey{Key: core.KeyS, Down: true, Mods: core.ModCtrl})
	app.exports.Wait()
}

func TestExportCancelledContext(t *testing.T) {
	app, err := New(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := app.FrameParams(64, 64, scene.DefaultState())
	err = Export(ctx, filepath.Join(t.TempDir(), "x.png"), p, 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

// nopApp satisfies core.App for driving layers alone.
type nopApp struct{}

func (nopApp) OnStart(*core.Engine)             {}
func (nopApp) OnUpdate(*core.Engine, float64)   {}
func (nopApp) OnRender(*core.Engine, float64)   {}
func (nopApp) OnEvent(*core.Engine, core.Event) {}
func (nopApp) OnShutdown(*core.Engine)          {}
