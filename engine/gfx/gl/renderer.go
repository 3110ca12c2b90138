package glbackend

import (
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/mandelbrot/engine/assets"
	"github.com/hubastard/mandelbrot/engine/colors"
	"github.com/hubastard/mandelbrot/engine/core"
	"github.com/hubastard/mandelbrot/engine/scene"
)

// RendererGL draws the escape-time shader on a full-screen quad.
type RendererGL struct {
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	palette uint32
	colors  int32
	w, h    int

	uExtent    int32
	uTransform int32
	uMaxIter   int32
	uNumColors int32
	uPalette   int32
}

func NewRendererGL(_ core.Window, cfg core.Config) (*RendererGL, error) {
	r := &RendererGL{}
	if err := r.Init(cfg.Palette); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init(p colors.Palette) error {
	vs, err := assets.LoadShader("mandelbrot.vert")
	if err != nil {
		return err
	}
	fs, err := assets.LoadShader("mandelbrot.frag")
	if err != nil {
		return err
	}
	if r.program, err = makeProgram(vs, fs); err != nil {
		return err
	}
	r.uExtent = uniform(r.program, "uExtent")
	r.uTransform = uniform(r.program, "uTransform")
	r.uMaxIter = uniform(r.program, "uMaxIter")
	r.uNumColors = uniform(r.program, "uNumColors")
	r.uPalette = uniform(r.program, "uPalette")

	// Full-screen quad in clip space
	verts := []float32{
		-1, -1,
		1, -1,
		1, 1,
		-1, 1,
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*2, gl.Ptr(indices), gl.STATIC_DRAW)

	// layout(location = 0) in vec2 aPos;
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, unsafe.Pointer(uintptr(0)))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	r.SetPalette(p)

	log.Printf("GL renderer: %s / %s", gl.GoStr(gl.GetString(gl.VENDOR)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return nil
}

// SetPalette uploads p as an Nx1 nearest-filtered texture.
func (r *RendererGL) SetPalette(p colors.Palette) {
	if len(p) == 0 {
		p = colors.Rainbow(colors.DefaultPaletteSize)
	}
	if r.palette == 0 {
		gl.GenTextures(1, &r.palette)
	}
	pix := p.RGBA8()
	gl.BindTexture(gl.TEXTURE_2D, r.palette)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(len(p)), 1, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	r.colors = int32(len(p))
}

func (r *RendererGL) Shutdown() {
	if r.palette != 0 {
		gl.DeleteTextures(1, &r.palette)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
	*r = RendererGL{}
}

func (r *RendererGL) Resize(w, h int) {
	r.w, r.h = w, h
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(rf, gf, bf, af float32) {
	gl.ClearColor(rf, gf, bf, af)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (r *RendererGL) DrawFractal(p core.FractalParams) {
	ax, ay := scene.Extent(r.w, r.h)
	transform := scene.TransformMatrix(p)

	gl.UseProgram(r.program)
	gl.Uniform2f(r.uExtent, float32(ax), float32(ay))
	gl.UniformMatrix3fv(r.uTransform, 1, false, &transform[0])
	gl.Uniform1i(r.uMaxIter, int32(p.MaxIterations))
	gl.Uniform1i(r.uNumColors, r.colors)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.palette)
	gl.Uniform1i(r.uPalette, 0)

	gl.BindVertexArray(r.vao)
	gl.DrawElements(gl.TRIANGLES, 6, gl.UNSIGNED_SHORT, unsafe.Pointer(uintptr(0)))
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// --- Shader utilities ---

func uniform(prog uint32, name string) int32 {
	return gl.GetUniformLocation(prog, gl.Str(name+"\x00"))
}

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		msg := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(msg))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", strings.TrimRight(msg, "\x00"))
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		msg := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(msg))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", strings.TrimRight(msg, "\x00"))
	}
	return prog, nil
}
