package hud

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
)

type CircleParams struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2 // diameter along each axis
	Border   float32    // pixels
	SoftEdge float32    // pixels

	InsideColor  colors.Color
	BorderColor  colors.Color
	OutsideColor colors.Color
}

// Circle draws an antialiased disc with an optional ring border.
type Circle struct {
	g *glbackend.Graphics
	r *curveRenderer
}

func NewCircle(g *glbackend.Graphics) (*Circle, error) {
	r, err := newCurveRenderer(g)
	if err != nil {
		return nil, err
	}
	return &Circle{g: g, r: r}, nil
}

func (c *Circle) Execute(p *CircleParams) {
	radius := p.Size.Y() * float32(c.g.Height()) / 4
	if radius <= 0 {
		return
	}
	q := circleQuads(p.Position, p.Size, borderDist(p.Border, radius))
	c.r.draw(q, p.InsideColor, p.BorderColor, p.OutsideColor, p.SoftEdge*2/radius)
}

func (c *Circle) Close() error { return c.r.Close() }

// SpotParams is a borderless dot of Radius pixels.
type SpotParams struct {
	Position mgl32.Vec2
	Radius   float32
	SoftEdge float32
	Color    colors.Color
}

// Spot draws a screen-sized dot regardless of the viewport aspect.
type Spot struct {
	g *glbackend.Graphics
	r *curveRenderer
}

func NewSpot(g *glbackend.Graphics) (*Spot, error) {
	r, err := newCurveRenderer(g)
	if err != nil {
		return nil, err
	}
	return &Spot{g: g, r: r}, nil
}

func (s *Spot) Execute(p *SpotParams) {
	if p.Radius <= 0 {
		return
	}
	size := pixelSize(p.Radius*2, s.g.Height(), s.g.Aspect())
	fade := p.Color.WithAlpha(0)
	s.r.draw(circleQuads(p.Position, size, 2), p.Color, fade, fade, p.SoftEdge*2/p.Radius)
}

func (s *Spot) Close() error { return s.r.Close() }
