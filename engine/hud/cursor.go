package hud

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
)

type CursorParams struct {
	Position  mgl32.Vec2
	Size      float32 // pixels, full height
	Thickness float32 // pixels
	Color     colors.Color
}

// Cursor draws a crosshair.
type Cursor struct {
	g    *glbackend.Graphics
	prog *glbackend.Program
	buf  glbackend.Buffers

	uThickness, uColor int32
}

func NewCursor(g *glbackend.Graphics) (*Cursor, error) {
	prog, err := g.Program("cursor")
	if err != nil {
		return nil, err
	}
	c := &Cursor{
		g:          g,
		prog:       prog,
		uThickness: prog.Uniform("thickness"),
		uColor:     prog.Uniform("color"),
	}
	c.buf = g.NewBuffers(4,
		glbackend.Attr{Loc: prog.Attrib("position"), Size: 2, Offset: 0},
		glbackend.Attr{Loc: prog.Attrib("primCoord"), Size: 2, Offset: 2},
	)
	g.Indices(&c.buf, glbackend.QuadIndices(1), gl.STATIC_DRAW)
	return c, nil
}

// cursorQuad spans the crosshair; thickness comes back in primitive units
// where the quad runs from -1 to 1.
func cursorQuad(p *CursorParams, h int, aspect float32) (verts []float32, thickness float32) {
	half := pixelSize(p.Size, h, aspect).Mul(0.5)
	verts = make([]float32, 0, 16)
	for _, c := range quadCorners {
		verts = append(verts,
			p.Position.X()+c.X()*half.X(), p.Position.Y()+c.Y()*half.Y(),
			c.X(), c.Y(),
		)
	}
	if p.Size > 0 {
		thickness = p.Thickness / p.Size
	}
	return verts, thickness
}

func (c *Cursor) Execute(p *CursorParams) {
	verts, thickness := cursorQuad(p, c.g.Height(), c.g.Aspect())
	restore := c.g.Begin2D()
	defer restore()
	c.g.Vertices(&c.buf, verts, gl.STREAM_DRAW)
	c.g.UseProgram(c.prog)
	glbackend.SetFloat(c.uThickness, thickness)
	glbackend.SetColor(c.uColor, p.Color)
	c.g.Draw(&c.buf)
}

func (c *Cursor) Close() error {
	c.g.DeleteBuffers(&c.buf)
	return nil
}
