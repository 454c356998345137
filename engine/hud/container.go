package hud

import (
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/drawstack"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
)

// Curve vertices: position(2) primCoord(2) curveOriginCoord(2)
// border1Dist(1) border2Dist(1). The fragment shader colours by the
// distance from primCoord to curveOriginCoord: inside below border1Dist,
// border up to border2Dist, outside beyond.
const curveStride = 8

// quadCorners are the primitive coordinates of a quad, in the order
// bottom-left, top-left, top-right, bottom-right.
var quadCorners = [4]mgl32.Vec2{{-1, -1}, {-1, 1}, {1, 1}, {1, -1}}

type curveQuads []float32

func (q curveQuads) quads() int { return len(q) / (curveStride * 4) }

func (q *curveQuads) push(pos, size mgl32.Vec2, prim [4]mgl32.Vec2, origin mgl32.Vec2, border1 float32) {
	for i, c := range quadCorners {
		*q = append(*q,
			pos.X()+c.X()*size.X()/2, pos.Y()+c.Y()*size.Y()/2,
			prim[i].X(), prim[i].Y(),
			origin.X(), origin.Y(),
			border1, 2,
		)
	}
}

// curve adds a quarter-circle whose centre sits at the corner opposite the
// rotation: rot 0 rounds the top-right, 90 top-left, 180 bottom-left and
// 270 bottom-right.
func (q *curveQuads) curve(pos, size mgl32.Vec2, rot, border1 float32) {
	a := float64(mgl32.DegToRad(rot + 45))
	origin := mgl32.Vec2{
		-math.Sqrt2 * float32(math.Cos(a)),
		-math.Sqrt2 * float32(math.Sin(a)),
	}
	q.push(pos, size, quadCorners, origin, border1)
}

// edge adds a straight border whose outside faces the rotation.
func (q *curveQuads) edge(pos, size mgl32.Vec2, rot, border1 float32) {
	a := float64(mgl32.DegToRad(rot))
	cs, sn := float32(math.Cos(a)), float32(math.Sin(a))
	origin := mgl32.Vec2{-cs, -sn}
	var prim [4]mgl32.Vec2
	ac, as := float32(math.Abs(float64(cs))), float32(math.Abs(float64(sn)))
	for i, c := range quadCorners {
		prim[i] = mgl32.Vec2{c.X() * ac, c.Y() * as}
	}
	q.push(pos, size, prim, origin, border1)
}

func (q *curveQuads) fill(pos, size mgl32.Vec2) {
	q.push(pos, size, [4]mgl32.Vec2{}, mgl32.Vec2{}, 2)
}

// borderDist is border1Dist for a border of borderPx on a curve of
// radiusPx.
func borderDist(borderPx, radiusPx float32) float32 {
	if radiusPx <= 0 {
		return 2
	}
	return 2 - borderPx*2/radiusPx
}

// containerQuads frames a rectangle of size centred at pos with corner
// curves of size pad: four corners, four borders and the filler.
func containerQuads(pos, size, pad mgl32.Vec2, border1 float32) curveQuads {
	q := make(curveQuads, 0, 9*4*curveStride)
	hx, hy := size.X()/2-pad.X()/2, size.Y()/2-pad.Y()/2

	q.curve(pos.Add(mgl32.Vec2{-hx, -hy}), pad, 180, border1)
	q.curve(pos.Add(mgl32.Vec2{-hx, hy}), pad, 90, border1)
	q.curve(pos.Add(mgl32.Vec2{hx, hy}), pad, 0, border1)
	q.curve(pos.Add(mgl32.Vec2{hx, -hy}), pad, 270, border1)

	vertical := mgl32.Vec2{pad.X(), size.Y() - pad.Y()*2}
	horizontal := mgl32.Vec2{size.X() - pad.X()*2, pad.Y()}
	q.edge(pos.Add(mgl32.Vec2{-hx, 0}), vertical, 180, border1)
	q.edge(pos.Add(mgl32.Vec2{0, hy}), horizontal, 90, border1)
	q.edge(pos.Add(mgl32.Vec2{hx, 0}), vertical, 0, border1)
	q.edge(pos.Add(mgl32.Vec2{0, -hy}), horizontal, 270, border1)

	q.fill(pos, size.Sub(pad.Mul(2)))
	return q
}

// circleQuads covers an ellipse of size centred at pos with four curves.
func circleQuads(pos, size mgl32.Vec2, border1 float32) curveQuads {
	q := make(curveQuads, 0, 4*4*curveStride)
	quarter := size.Mul(0.5)
	hx, hy := size.X()/4, size.Y()/4
	q.curve(pos.Add(mgl32.Vec2{-hx, -hy}), quarter, 180, border1)
	q.curve(pos.Add(mgl32.Vec2{-hx, hy}), quarter, 90, border1)
	q.curve(pos.Add(mgl32.Vec2{hx, hy}), quarter, 0, border1)
	q.curve(pos.Add(mgl32.Vec2{hx, -hy}), quarter, 270, border1)
	return q
}

// curveRenderer draws curveQuads with the hudContainer program.
type curveRenderer struct {
	g    *glbackend.Graphics
	prog *glbackend.Program
	buf  glbackend.Buffers

	uInside, uBorder, uOutside, uSoftEdge int32
}

func newCurveRenderer(g *glbackend.Graphics) (*curveRenderer, error) {
	prog, err := g.Program("hudContainer")
	if err != nil {
		return nil, err
	}
	r := &curveRenderer{
		g:         g,
		prog:      prog,
		uInside:   prog.Uniform("insideColor"),
		uBorder:   prog.Uniform("borderColor"),
		uOutside:  prog.Uniform("outsideColor"),
		uSoftEdge: prog.Uniform("softEdge"),
	}
	r.buf = g.NewBuffers(curveStride,
		glbackend.Attr{Loc: prog.Attrib("position"), Size: 2, Offset: 0},
		glbackend.Attr{Loc: prog.Attrib("primCoord"), Size: 2, Offset: 2},
		glbackend.Attr{Loc: prog.Attrib("curveOriginCoord"), Size: 2, Offset: 4},
		glbackend.Attr{Loc: prog.Attrib("border1Dist"), Size: 1, Offset: 6},
		glbackend.Attr{Loc: prog.Attrib("border2Dist"), Size: 1, Offset: 7},
	)
	return r, nil
}

// draw uploads q and renders it; softEdge is in primitive units.
func (r *curveRenderer) draw(q curveQuads, inside, border, outside colors.Color, softEdge float32) {
	restore := r.g.Begin2D()
	defer restore()

	r.g.Vertices(&r.buf, q, gl.STREAM_DRAW)
	r.g.Indices(&r.buf, glbackend.QuadIndices(q.quads()), gl.STREAM_DRAW)
	r.g.UseProgram(r.prog)
	glbackend.SetColor(r.uInside, inside)
	glbackend.SetColor(r.uBorder, border)
	glbackend.SetColor(r.uOutside, outside)
	glbackend.SetFloat(r.uSoftEdge, softEdge)
	r.g.Draw(&r.buf)
}

func (r *curveRenderer) Close() error {
	r.g.DeleteBuffers(&r.buf)
	return nil
}

// ContainerParams frames a rectangle of Size, or of the laid-out metrics
// size when Size is zero.
type ContainerParams struct {
	drawstack.Placement
	Size mgl32.Vec2
	Chrome
}

func (p *ContainerParams) size() mgl32.Vec2 {
	if p.Size == (mgl32.Vec2{}) {
		return p.Metrics.Size
	}
	return p.Size
}

// Container draws rounded HUD panel chrome.
type Container struct {
	g *glbackend.Graphics
	r *curveRenderer
}

func NewContainer(g *glbackend.Graphics) (*Container, error) {
	r, err := newCurveRenderer(g)
	if err != nil {
		return nil, err
	}
	return &Container{g: g, r: r}, nil
}

func (c *Container) Size(p *ContainerParams) mgl32.Vec2 { return p.Size }

func (c *Container) Execute(p *ContainerParams) {
	if p.Padding <= 0 {
		return
	}
	pad := c.g.PixelsToNDC(p.Padding, p.Padding)
	q := containerQuads(p.Metrics.Position, p.size(), pad, borderDist(p.Border, p.Padding))
	c.r.draw(q, p.InsideColor, p.BorderColor, p.OutsideColor, p.SoftEdge*2/p.Padding)
}

func (c *Container) Close() error { return c.r.Close() }
