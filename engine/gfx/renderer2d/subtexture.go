package renderer2d

import "github.com/hubastard/bastion/engine/text"

// SubTexture describes a UV sub-rect of a full texture, V growing upwards.
type SubTexture struct {
	U0, V0 float32 // bottom-left
	U1, V1 float32 // top-right
}

// Full covers the whole texture.
var Full = SubTexture{0, 0, 1, 1}

// FromPixels builds a subtexture from pixel coordinates within an atlas.
func FromPixels(x, y, w, h, atlasW, atlasH int) SubTexture {
	return SubTexture{
		U0: float32(x) / float32(atlasW),
		V0: float32(y) / float32(atlasH),
		U1: float32(x+w) / float32(atlasW),
		V1: float32(y+h) / float32(atlasH),
	}
}

// FromGlyph is the atlas rectangle of a cached glyph.
func FromGlyph(g *text.Glyph) SubTexture {
	return SubTexture{U0: g.S0, V0: g.T0, U1: g.S1, V1: g.T1}
}
