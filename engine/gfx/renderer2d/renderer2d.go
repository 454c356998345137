// Package renderer2d batches screen-space quads sharing one texture and one
// transform into a single indexed draw.
package renderer2d

import (
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/texture"
)

// Vertex: pos2 + color4 + uv2 => 8 floats
const vStride = 8
const vertsPerQuad = 4
const indsPerQuad = 6

// Statistics captures the counts generated since the last Begin.
type Statistics struct {
	DrawCalls int
	QuadCount int
}

// TotalVertexCount reports vertices submitted.
func (s Statistics) TotalVertexCount() int { return s.QuadCount * vertsPerQuad }

// TotalIndexCount reports indices submitted.
func (s Statistics) TotalIndexCount() int { return s.QuadCount * indsPerQuad }

// Batch collects quads between Begin and End. A zero texture draws with a
// 1x1 white texel so untextured quads show their vertex colour.
type Batch struct {
	g     *glbackend.Graphics
	prog  *glbackend.Program
	buf   glbackend.Buffers
	white uint32

	uMVP, uTexture, uAlphaMask int32

	verts    []float32
	quads    int
	maxQuads int

	mvp       mgl32.Mat4
	tex       uint32
	alphaMask bool
	stats     Statistics
}

// New links the hudQuad program and allocates buffers for maxQuads quads.
func New(g *glbackend.Graphics, maxQuads int) (*Batch, error) {
	if maxQuads <= 0 {
		maxQuads = 1024
	}
	prog, err := g.Program("hudQuad")
	if err != nil {
		return nil, err
	}
	b := &Batch{
		g:          g,
		prog:       prog,
		maxQuads:   maxQuads,
		uMVP:       prog.Uniform("mvpMatrix"),
		uTexture:   prog.Uniform("texture0"),
		uAlphaMask: prog.Uniform("alphaMask"),
		verts:      make([]float32, 0, maxQuads*vertsPerQuad*vStride),
		mvp:        mgl32.Ident4(),
	}
	b.buf = g.NewBuffers(vStride,
		glbackend.Attr{Loc: prog.Attrib("position"), Size: 2, Offset: 0},
		glbackend.Attr{Loc: prog.Attrib("color"), Size: 4, Offset: 2},
		glbackend.Attr{Loc: prog.Attrib("texCoord"), Size: 2, Offset: 6},
	)
	g.Indices(&b.buf, glbackend.QuadIndices(maxQuads), gl.STATIC_DRAW)

	white := texture.New(1, 1, texture.RGBA)
	white.SetPixel(0, 0, 255, 255, 255, 255)
	b.white = g.Upload(0, white, false)
	return b, nil
}

// Begin starts a batch drawn with mvp and tex. With alphaMask the texture
// only contributes coverage (its alpha), as font atlases need.
func (b *Batch) Begin(mvp mgl32.Mat4, tex uint32, alphaMask bool) {
	b.mvp, b.tex, b.alphaMask = mvp, tex, alphaMask
	b.stats = Statistics{}
	b.verts = b.verts[:0]
	b.quads = 0
}

func (b *Batch) End() { b.flush() }

// Stats returns the counts since Begin.
func (b *Batch) Stats() Statistics { return b.stats }

// Quad draws a solid or textured rectangle centred at c, rotated by rot
// degrees counter-clockwise.
func (b *Batch) Quad(c, size mgl32.Vec2, rot float32, tint colors.Color, sub SubTexture) {
	b.ensureCapacity()
	b.verts = appendQuad(b.verts, c, size, rot, [4]colors.Color{tint, tint, tint, tint}, sub)
	b.quads++
	b.stats.QuadCount++
}

// Gradient draws an axis-aligned rectangle shaded from top to bottom.
func (b *Batch) Gradient(lo, hi mgl32.Vec2, top, bottom colors.Color) {
	b.ensureCapacity()
	c := lo.Add(hi).Mul(0.5)
	b.verts = appendQuad(b.verts, c, hi.Sub(lo), 0, [4]colors.Color{bottom, top, top, bottom}, Full)
	b.quads++
	b.stats.QuadCount++
}

// appendQuad writes the corners bottom-left, top-left, top-right,
// bottom-right; shade holds their colours in the same order.
func appendQuad(verts []float32, c, size mgl32.Vec2, rot float32, shade [4]colors.Color, sub SubTexture) []float32 {
	hw, hh := size.X()*0.5, size.Y()*0.5
	corners := [4][4]float32{
		{-hw, -hh, sub.U0, sub.V0},
		{-hw, hh, sub.U0, sub.V1},
		{hw, hh, sub.U1, sub.V1},
		{hw, -hh, sub.U1, sub.V0},
	}
	rad := float64(mgl32.DegToRad(rot))
	cs, sn := float32(math.Cos(rad)), float32(math.Sin(rad))
	for i, p := range corners {
		col := shade[i]
		verts = append(verts,
			p[0]*cs-p[1]*sn+c.X(), p[0]*sn+p[1]*cs+c.Y(),
			col[0], col[1], col[2], col[3],
			p[2], p[3],
		)
	}
	return verts
}

func (b *Batch) flush() {
	if b.quads == 0 {
		return
	}
	tex := b.tex
	if tex == 0 {
		tex = b.white
	}
	mask := int32(0)
	if b.alphaMask && b.tex != 0 {
		mask = 1
	}

	b.g.UseProgram(b.prog)
	glbackend.SetMat4(b.uMVP, b.mvp)
	glbackend.SetInt(b.uTexture, 0)
	glbackend.SetInt(b.uAlphaMask, mask)
	b.g.BindTexture(0, tex)
	b.g.Vertices(&b.buf, b.verts, gl.STREAM_DRAW)
	b.buf.Count = int32(b.quads * indsPerQuad)
	b.g.Draw(&b.buf)
	b.stats.DrawCalls++

	b.verts = b.verts[:0]
	b.quads = 0
}

func (b *Batch) ensureCapacity() {
	if b.quads >= b.maxQuads {
		b.flush()
	}
}

// Close frees the buffers and the white texel. The program belongs to the
// render context cache.
func (b *Batch) Close() error {
	b.g.DeleteBuffers(&b.buf)
	b.g.DeleteTexture(&b.white)
	return nil
}
