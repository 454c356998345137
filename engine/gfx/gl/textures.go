package glbackend

import (
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/hubastard/bastion/engine/texture"
)

// Texture returns the decoded data/textures/<name>.png, cached by name.
// Rows are flipped so row 0 is the bottom, as GL samples them.
func (g *Graphics) Texture(name string) (*texture.Texture, error) {
	if t, ok := g.textures[name]; ok {
		return t, nil
	}
	t, err := g.lib.LoadTexture(name)
	if err != nil {
		return nil, err
	}
	t.FlipVertical()
	g.textures[name] = t
	return t, nil
}

// TextureID returns the mipmapped GPU copy of a named texture.
func (g *Graphics) TextureID(name string) (uint32, error) {
	if id, ok := g.textureIDs[name]; ok {
		return id, nil
	}
	t, err := g.Texture(name)
	if err != nil {
		return 0, err
	}
	id := g.Upload(0, t, true)
	g.textureIDs[name] = id
	return id, nil
}

// Upload sends t to the GPU. A non-zero prev handle is deleted first and
// the new handle returned in its place.
func (g *Graphics) Upload(prev uint32, t *texture.Texture, mipmaps bool) uint32 {
	g.DeleteTexture(&prev)

	var id uint32
	gl.GenTextures(1, &id)
	g.BindTexture(0, id)

	format := uint32(gl.RGBA)
	if t.Format == texture.RGB {
		format = gl.RGB
	}
	var pix unsafe.Pointer
	if len(t.Pixels) > 0 {
		pix = gl.Ptr(t.Pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(t.Width), int32(t.Height), 0, format, gl.UNSIGNED_BYTE, pix)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	if mipmaps {
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	}
	return id
}

// DeleteTexture frees *id if set and zeroes it.
func (g *Graphics) DeleteTexture(id *uint32) {
	if *id == 0 {
		return
	}
	if g.bindings.Texture == *id {
		g.bindings.Texture = 0
	}
	gl.DeleteTextures(1, id)
	*id = 0
}

// UploadAtlas replaces the font atlas for size. Glyph texels are sampled
// without filtering so edges stay crisp.
func (g *Graphics) UploadAtlas(size int, atlas *texture.Texture) error {
	id := g.Upload(g.atlasIDs[size], atlas, false)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	g.atlasIDs[size] = id
	return nil
}

// AtlasID is the GPU handle of the font atlas for size, 0 before the first
// glyph at that size was built.
func (g *Graphics) AtlasID(size int) uint32 { return g.atlasIDs[size] }
