package hud

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
)

// indicatorPlacement places an edge marker for a point at clip-space
// coordinates clip. ok is false while the point is on screen. The marker
// sits marginPx inside the screen edge and its apex points at the target.
func indicatorPlacement(clip mgl32.Vec4, w, h int, marginPx float32) (pos mgl32.Vec2, rot float32, ok bool) {
	if clip.W() > 0 {
		x, y := clip.X()/clip.W(), clip.Y()/clip.W()
		if x >= -1 && x <= 1 && y >= -1 && y <= 1 {
			return pos, 0, false
		}
	}
	// behind the eye the division flips sides; the raw xy keeps them
	hw, hh := float32(w)/2, float32(h)/2
	dx, dy := clip.X()*hw, clip.Y()*hh
	if dx == 0 && dy == 0 {
		dy = -1
	}
	t := float32(math.Inf(1))
	if dx != 0 {
		t = (hw - marginPx) / float32(math.Abs(float64(dx)))
	}
	if dy != 0 {
		t = min(t, (hh-marginPx)/float32(math.Abs(float64(dy))))
	}
	pos = mgl32.Vec2{dx * t / hw, dy * t / hh}
	rot = float32(math.Atan2(float64(dy), float64(dx))*180/math.Pi) - 90
	return pos, rot, true
}

// IndicatorParams is empty; the node reads the game state and camera.
type IndicatorParams struct{}

// MissileIndicators points at live missiles outside the view with small
// triangles on the screen edge. It borrows the triangle node.
type MissileIndicators struct {
	g     *glbackend.Graphics
	state *game.State
	tri   *RoundedTriangle
	p     TriangleParams
}

func NewMissileIndicators(g *glbackend.Graphics, st *game.State, tri *RoundedTriangle) *MissileIndicators {
	return &MissileIndicators{g: g, state: st, tri: tri}
}

func (mi *MissileIndicators) Execute(*IndicatorParams) {
	s := mi.g.Settings()
	size := s.Float("hudMissileIndicatorSize")
	c := s.Color("hudMissileIndicatorColor")
	mi.p.Size = pixelSize(size, mi.g.Height(), mi.g.Aspect())
	mi.p.SoftEdge = s.Float("hudContainerSoftEdge")
	mi.p.InsideColor, mi.p.BorderColor, mi.p.OutsideColor = c, c, c.WithAlpha(0)

	vp := mi.g.Perspective(mi.state.Binoculars).Mul4(mi.g.View())
	for _, m := range mi.state.Missiles {
		if !m.Alive {
			continue
		}
		clip := vp.Mul4x1(m.Position.Vec4(1))
		pos, rot, ok := indicatorPlacement(clip, mi.g.Width(), mi.g.Height(), size)
		if !ok {
			continue
		}
		mi.p.Position, mi.p.Rotation = pos, rot
		mi.tri.Execute(&mi.p)
	}
}
