package hud

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/drawstack"
	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/gfx/renderer2d"
	"github.com/hubastard/bastion/engine/settings"
)

type ProgressBarParams struct {
	drawstack.Placement
	SizePx      mgl32.Vec2
	Progression float32 // completion ratio, clamped to [0,1]

	// Color1 fills the completed part, Color2 the remainder.
	Color1Top, Color1Bottom colors.Color
	Color2Top, Color2Bottom colors.Color
}

// ProgressBar draws a two-section horizontal bar shaded top to bottom.
type ProgressBar struct {
	g     *glbackend.Graphics
	batch *renderer2d.Batch
}

func NewProgressBar(g *glbackend.Graphics) (*ProgressBar, error) {
	b, err := renderer2d.New(g, 2)
	if err != nil {
		return nil, err
	}
	return &ProgressBar{g: g, batch: b}, nil
}

func (b *ProgressBar) Size(p *ProgressBarParams) mgl32.Vec2 {
	return b.g.PixelsToNDC(p.SizePx.X(), p.SizePx.Y())
}

// barSections splits the rectangle at the completion ratio.
func barSections(center, size mgl32.Vec2, progression float32) (done, rest [2]mgl32.Vec2) {
	lo := center.Sub(size.Mul(0.5))
	hi := center.Add(size.Mul(0.5))
	split := lo.X() + size.X()*clamp01(progression)
	done = [2]mgl32.Vec2{lo, {split, hi.Y()}}
	rest = [2]mgl32.Vec2{{split, lo.Y()}, hi}
	return done, rest
}

func (b *ProgressBar) Execute(p *ProgressBarParams) {
	restore := b.g.Begin2D()
	defer restore()

	done, rest := barSections(p.Metrics.Position, b.Size(p), p.Progression)
	b.batch.Begin(b.g.Identity(), 0, false)
	if done[1].X() > done[0].X() {
		b.batch.Gradient(done[0], done[1], p.Color1Top, p.Color1Bottom)
	}
	if rest[1].X() > rest[0].X() {
		b.batch.Gradient(rest[0], rest[1], p.Color2Top, p.Color2Bottom)
	}
	b.batch.End()
}

func (b *ProgressBar) Close() error { return b.batch.Close() }

// GaugesParams lays out the fortress health, ammunition and shock panel.
type GaugesParams struct {
	drawstack.Placement
	Chrome
}

// Gauges draws the three fortress gauges inside a container. It borrows
// the container and bar nodes.
type Gauges struct {
	g         *glbackend.Graphics
	state     *game.State
	container *Container
	bar       *ProgressBar

	width, height, pad float32
	falloff            colors.Color
	background         colors.Color
	health, ammo       colors.Color
	charging, charged  colors.Color

	frame ContainerParams
	bars  [3]ProgressBarParams
}

func NewGauges(g *glbackend.Graphics, st *game.State, c *Container, bar *ProgressBar) *Gauges {
	s := g.Settings()
	return &Gauges{
		g:          g,
		state:      st,
		container:  c,
		bar:        bar,
		width:      s.Float("hudGaugeWidth"),
		height:     s.Float("hudGaugeHeight"),
		pad:        s.Float("hudGaugePadding"),
		falloff:    s.Color("hudGaugeColorFalloff"),
		background: s.Color("hudGaugeBackgroundColor"),
		health:     s.Color("hudGaugeHealthBarColor"),
		ammo:       s.Color("hudGaugeAmmoBarColor"),
		charging:   s.Color("hudGaugeShockChargingBarColor"),
		charged:    s.Color("hudGaugeShockChargedBarColor"),
	}
}

// DefaultGauges fills the chrome from the settings.
func DefaultGauges(s *settings.Store) GaugesParams {
	return GaugesParams{Chrome: DefaultChrome(s)}
}

func (gs *Gauges) Size(p *GaugesParams) mgl32.Vec2 {
	return gs.g.PixelsToNDC(gs.width+gs.pad*2, gs.height*3+gs.pad*4)
}

func multiply(a, b colors.Color) colors.Color {
	for i := range a {
		a[i] *= b[i]
	}
	return a
}

func (gs *Gauges) Execute(p *GaugesParams) {
	gs.frame.Chrome = p.Chrome
	gs.frame.Metrics = p.Metrics
	gs.frame.Size = gs.Size(p)
	gs.container.Execute(&gs.frame)

	f := gs.state.Fortress
	shock := gs.charging
	if f.Shock >= 1 {
		shock = gs.charged
	}
	values := [3]float32{f.Health, f.Ammo, f.Shock}
	tints := [3]colors.Color{gs.health, gs.ammo, shock}

	step := gs.g.PixelsToNDC(0, gs.height+gs.pad).Y()
	top := p.Metrics.Position.Y() + step
	for i := range gs.bars {
		b := &gs.bars[i]
		b.SizePx = mgl32.Vec2{gs.width, gs.height}
		b.Metrics.Position = mgl32.Vec2{p.Metrics.Position.X(), top - step*float32(i)}
		b.Progression = values[i]
		b.Color1Top, b.Color1Bottom = tints[i], multiply(tints[i], gs.falloff)
		b.Color2Top, b.Color2Bottom = gs.background, multiply(gs.background, gs.falloff)
		gs.bar.Execute(b)
	}
}
