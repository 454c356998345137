package hud

import (
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
)

// Triangle vertices: position(2) edgeDist(3). edgeDist holds the pixel
// distance to each edge; distances to a line interpolate linearly, so the
// fragment stage gets exact values.
const triStride = 5

type TriangleParams struct {
	Position mgl32.Vec2 // centre of the bounding box
	Size     mgl32.Vec2 // base width and height
	Rotation float32    // degrees counter-clockwise; 0 points up
	Border   float32    // pixels
	SoftEdge float32    // pixels

	InsideColor  colors.Color
	BorderColor  colors.Color
	OutsideColor colors.Color
}

// triangleVertices returns the apex and base corners in NDC. Rotation is
// applied in pixel space so the shape keeps its proportions on screen.
func triangleVertices(p *TriangleParams, w, h int) [3]mgl32.Vec2 {
	sx, sy := float32(w)/2, float32(h)/2
	hw, hh := p.Size.X()*sx/2, p.Size.Y()*sy/2
	local := [3]mgl32.Vec2{{0, hh}, {-hw, -hh}, {hw, -hh}}
	rot := mgl32.Rotate2D(mgl32.DegToRad(p.Rotation))
	var out [3]mgl32.Vec2
	for i, v := range local {
		r := rot.Mul2x1(v)
		out[i] = mgl32.Vec2{p.Position.X() + r.X()/sx, p.Position.Y() + r.Y()/sy}
	}
	return out
}

// triangleGeometry builds the three vertices with their edge distances.
func triangleGeometry(p *TriangleParams, w, h int) []float32 {
	v := triangleVertices(p, w, h)
	sx, sy := float32(w)/2, float32(h)/2
	var px [3]mgl32.Vec2
	for i := range v {
		px[i] = mgl32.Vec2{v[i].X() * sx, v[i].Y() * sy}
	}
	e1, e2 := px[1].Sub(px[0]), px[2].Sub(px[0])
	area2 := float32(math.Abs(float64(e1.X()*e2.Y() - e1.Y()*e2.X())))

	out := make([]float32, 0, 3*triStride)
	for i := range px {
		opp := px[(i+2)%3].Sub(px[(i+1)%3]).Len()
		var alt float32
		if opp > 0 {
			alt = area2 / opp
		}
		var d [3]float32
		d[i] = alt
		out = append(out, v[i].X(), v[i].Y(), d[0], d[1], d[2])
	}
	return out
}

// RoundedTriangle draws an antialiased triangle with softened corners.
type RoundedTriangle struct {
	g    *glbackend.Graphics
	prog *glbackend.Program
	buf  glbackend.Buffers

	uInside, uBorder, uOutside, uBorderWidth, uSoftEdge, uRadius int32
}

func NewRoundedTriangle(g *glbackend.Graphics) (*RoundedTriangle, error) {
	prog, err := g.Program("roundedTriangle")
	if err != nil {
		return nil, err
	}
	t := &RoundedTriangle{
		g:            g,
		prog:         prog,
		uInside:      prog.Uniform("insideColor"),
		uBorder:      prog.Uniform("borderColor"),
		uOutside:     prog.Uniform("outsideColor"),
		uBorderWidth: prog.Uniform("border"),
		uSoftEdge:    prog.Uniform("softEdge"),
		uRadius:      prog.Uniform("radius"),
	}
	t.buf = g.NewBuffers(triStride,
		glbackend.Attr{Loc: prog.Attrib("position"), Size: 2, Offset: 0},
		glbackend.Attr{Loc: prog.Attrib("edgeDist"), Size: 3, Offset: 2},
	)
	g.Indices(&t.buf, []uint32{0, 1, 2}, gl.STATIC_DRAW)
	return t, nil
}

func (t *RoundedTriangle) Execute(p *TriangleParams) {
	restore := t.g.Begin2D()
	defer restore()

	t.g.Vertices(&t.buf, triangleGeometry(p, t.g.Width(), t.g.Height()), gl.STREAM_DRAW)
	t.g.UseProgram(t.prog)
	glbackend.SetColor(t.uInside, p.InsideColor)
	glbackend.SetColor(t.uBorder, p.BorderColor)
	glbackend.SetColor(t.uOutside, p.OutsideColor)
	glbackend.SetFloat(t.uBorderWidth, p.Border)
	glbackend.SetFloat(t.uSoftEdge, max(p.SoftEdge, 0.5))
	glbackend.SetFloat(t.uRadius, max(p.SoftEdge, 1))
	t.g.Draw(&t.buf)
}

func (t *RoundedTriangle) Close() error {
	t.g.DeleteBuffers(&t.buf)
	return nil
}
