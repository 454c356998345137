package hud

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/gfx/renderer2d"
)

var fullScreen = mgl32.Vec2{2, 2}

type GrayOutParams struct {
	Color colors.Color
}

// GrayOut dims everything drawn before it, as behind a pause menu.
type GrayOut struct {
	g     *glbackend.Graphics
	batch *renderer2d.Batch
}

func NewGrayOut(g *glbackend.Graphics) (*GrayOut, error) {
	b, err := renderer2d.New(g, 1)
	if err != nil {
		return nil, err
	}
	return &GrayOut{g: g, batch: b}, nil
}

func (o *GrayOut) Execute(p *GrayOutParams) {
	restore := o.g.Begin2D()
	defer restore()
	o.batch.Begin(o.g.Identity(), 0, false)
	o.batch.Quad(mgl32.Vec2{}, fullScreen, 0, p.Color, renderer2d.Full)
	o.batch.End()
}

func (o *GrayOut) Close() error { return o.batch.Close() }

// StrikeParams is empty; the effect reads the game clock.
type StrikeParams struct{}

// StrikeEffect flashes a random gray over the screen after a missile
// strike, fading out over hudStrikeEffectTime seconds.
type StrikeEffect struct {
	g        *glbackend.Graphics
	state    *game.State
	batch    *renderer2d.Batch
	rng      *rand.Rand
	duration float32 // ms
}

func NewStrikeEffect(g *glbackend.Graphics, st *game.State, seed uint64) (*StrikeEffect, error) {
	b, err := renderer2d.New(g, 1)
	if err != nil {
		return nil, err
	}
	return &StrikeEffect{
		g:        g,
		state:    st,
		batch:    b,
		rng:      rand.New(rand.NewPCG(seed, seed^0x5eed)),
		duration: g.Settings().Float("hudStrikeEffectTime") * 1000,
	}, nil
}

// strikeProgress is how far the effect has run, >= 1 when finished or when
// no strike happened yet.
func strikeProgress(now, last int64, durationMs float32) float32 {
	if last < 0 || durationMs <= 0 || now < last {
		return 1
	}
	return float32(now-last) / durationMs
}

func (e *StrikeEffect) Execute(*StrikeParams) {
	t := strikeProgress(e.state.Time, e.state.Fortress.LastStrike, e.duration)
	if t >= 1 {
		return
	}
	v := e.rng.Float32()
	restore := e.g.Begin2D()
	defer restore()
	e.batch.Begin(e.g.Identity(), 0, false)
	e.batch.Quad(mgl32.Vec2{}, fullScreen, 0, colors.Color{v, v, v, 1 - t}, renderer2d.Full)
	e.batch.End()
}

func (e *StrikeEffect) Close() error { return e.batch.Close() }
