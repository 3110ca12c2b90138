package assets

import (
	"embed"
	"fmt"
	"path"
)

//go:embed shaders
var shaderFS embed.FS

// LoadShader reads a GLSL file into a null-terminated string for OpenGL.
func LoadShader(name string) (string, error) {
	b, err := shaderFS.ReadFile(path.Join("shaders", name))
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", name, err)
	}
	// Ensure null termination for gl.Strs
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// LoadKage reads a Kage shader source.
func LoadKage(name string) ([]byte, error) {
	b, err := shaderFS.ReadFile(path.Join("shaders", name))
	if err != nil {
		return nil, fmt.Errorf("load kage shader %q: %w", name, err)
	}
	return b, nil
}
