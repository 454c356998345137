package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
)

func structureTexture(group string) string { return "structure/" + group }

// shipMatrix places a ship model, bow along +X, at its position and heading.
func shipMatrix(s game.Ship) mgl32.Mat4 {
	return mgl32.Translate3D(s.Position.X(), s.Position.Y(), s.Position.Z()).Mul4(yaw(s.Rotation))
}

// missileMatrix also pitches the missile nose by its tilt.
func missileMatrix(m game.Missile) mgl32.Mat4 {
	return mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z()).
		Mul4(yaw(m.Rotation)).
		Mul4(pitch(m.Tilt))
}

// Ships draws every live ship.
type Ships struct {
	g     *glbackend.Graphics
	state *game.State
	model *model
}

func NewShips(g *glbackend.Graphics, st *game.State) (*Ships, error) {
	m, err := g.Library().LoadMesh("ship")
	if err != nil {
		return nil, err
	}
	md, err := newModel(g, m, drawable(m), structureTexture)
	if err != nil {
		return nil, err
	}
	return &Ships{g: g, state: st, model: md}, nil
}

func (s *Ships) Execute(*Params) {
	view := s.g.View()
	restore := s.model.begin(view, s.g.Perspective(s.state.Binoculars))
	defer restore()
	for _, sh := range s.state.Ships {
		if sh.Alive {
			s.model.drawAll(view.Mul4(shipMatrix(sh)))
		}
	}
}

func (s *Ships) Close() error { return s.model.Close() }

// Missiles draws every live missile.
type Missiles struct {
	g     *glbackend.Graphics
	state *game.State
	model *model
}

func NewMissiles(g *glbackend.Graphics, st *game.State) (*Missiles, error) {
	m, err := g.Library().LoadMesh("missile")
	if err != nil {
		return nil, err
	}
	md, err := newModel(g, m, drawable(m), structureTexture)
	if err != nil {
		return nil, err
	}
	return &Missiles{g: g, state: st, model: md}, nil
}

func (ms *Missiles) Execute(*Params) {
	view := ms.g.View()
	restore := ms.model.begin(view, ms.g.Perspective(ms.state.Binoculars))
	defer restore()
	for _, m := range ms.state.Missiles {
		if m.Alive {
			ms.model.drawAll(view.Mul4(missileMatrix(m)))
		}
	}
}

func (ms *Missiles) Close() error { return ms.model.Close() }
