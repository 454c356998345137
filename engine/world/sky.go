package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/gfx/renderer2d"
	"github.com/hubastard/bastion/engine/settings"
)

type SkyParams struct {
	Top, Horizon colors.Color
}

func DefaultSky(s *settings.Store) SkyParams {
	return SkyParams{Top: s.Color("skyTopColor"), Horizon: s.Color("skyHorizonColor")}
}

// Sky fills the screen with a vertical gradient behind everything else.
type Sky struct {
	g     *glbackend.Graphics
	batch *renderer2d.Batch
}

func NewSky(g *glbackend.Graphics) (*Sky, error) {
	b, err := renderer2d.New(g, 1)
	if err != nil {
		return nil, err
	}
	return &Sky{g: g, batch: b}, nil
}

func (s *Sky) Execute(p *SkyParams) {
	restore := s.g.Begin2D()
	defer restore()
	s.batch.Begin(s.g.Identity(), 0, false)
	s.batch.Gradient(mgl32.Vec2{-1, -1}, mgl32.Vec2{1, 1}, p.Top, p.Horizon)
	s.batch.End()
}

func (s *Sky) Close() error { return s.batch.Close() }
