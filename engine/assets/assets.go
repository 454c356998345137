// Package assets resolves the data directory layout and decodes the files
// found there.
package assets

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gobold"

	"github.com/hubastard/bastion/engine/mesh"
	"github.com/hubastard/bastion/engine/texture"
)

type Stage string

const (
	Vertex   Stage = "vertex"
	Fragment Stage = "fragment"
)

// Library locates assets below DataPath:
//
//	shaders/<name>.<stage>.glsl
//	data/textures/<name>.png
//	data/models/<name>.obj
//	data/fonts/<file>
type Library struct {
	DataPath string
}

func (l Library) ShaderPath(name string, stage Stage) string {
	return filepath.Join(l.DataPath, "shaders", name+"."+string(stage)+".glsl")
}

func (l Library) TexturePath(name string) string {
	return filepath.Join(l.DataPath, "data", "textures", filepath.FromSlash(name)+".png")
}

func (l Library) MeshPath(name string) string {
	return filepath.Join(l.DataPath, "data", "models", name+".obj")
}

func (l Library) FontPath(file string) string {
	return filepath.Join(l.DataPath, "data", "fonts", file)
}

// ShaderSource reads a GLSL file into a null-terminated string for OpenGL.
func (l Library) ShaderSource(name string, stage Stage) (string, error) {
	path := l.ShaderPath(name, stage)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load shader %q: %w", path, err)
	}
	if len(b) == 0 || b[len(b)-1] != 0 {
		b = append(b, 0)
	}
	return string(b), nil
}

// LoadTexture decodes data/textures/<name>.png into an RGBA texture, row 0
// at the top.
func (l Library) LoadTexture(name string) (*texture.Texture, error) {
	path := l.TexturePath(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode png %q: %w", path, err)
	}
	return texture.FromImage(img), nil
}

// LoadMesh parses data/models/<name>.obj.
func (l Library) LoadMesh(name string) (*mesh.Mesh, error) {
	path := l.MeshPath(name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	m, err := mesh.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return m, nil
}

// LoadFont returns the bytes of data/fonts/<file>. An empty file name
// selects the embedded Go Bold face.
func (l Library) LoadFont(file string) ([]byte, error) {
	if file == "" {
		return gobold.TTF, nil
	}
	path := l.FontPath(file)
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load font %q: %w", path, err)
	}
	return b, nil
}
