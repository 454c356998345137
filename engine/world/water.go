package world

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/settings"
)

type WaterParams struct {
	Color     colors.Color
	WaveScale float32 // world units per noise repeat
	Period    float32 // seconds per drift of one repeat
}

func DefaultWater(s *settings.Store) WaterParams {
	return WaterParams{
		Color:     s.Color("waterColor"),
		WaveScale: s.Float("waterWaveScale"),
		Period:    s.Float("waterWavePeriod"),
	}
}

// waterQuad is the sea plane at y = 0, extent units around the eye. The
// corners wind counter-clockwise seen from above.
func waterQuad(eye mgl32.Vec3, extent float32) []float32 {
	x, z := eye.X(), eye.Z()
	return []float32{
		x - extent, 0, z - extent,
		x - extent, 0, z + extent,
		x + extent, 0, z + extent,
		x + extent, 0, z - extent,
	}
}

// waveOffset is the noise drift in texture repeats at game time t.
func waveOffset(t int64, period float32) float32 {
	if period <= 0 {
		return 0
	}
	ms := int64(period * 1000)
	return float32(t%ms) / float32(ms)
}

// Water draws the translucent sea, shaded by the noise texture.
type Water struct {
	g     *glbackend.Graphics
	state *game.State
	prog  *glbackend.Program
	buf   glbackend.Buffers

	uMVP, uColor, uNoise, uScale, uOffset int32
}

func NewWater(g *glbackend.Graphics, st *game.State) (*Water, error) {
	prog, err := g.Program("water")
	if err != nil {
		return nil, err
	}
	w := &Water{
		g:       g,
		state:   st,
		prog:    prog,
		uMVP:    prog.Uniform("mvpMatrix"),
		uColor:  prog.Uniform("color"),
		uNoise:  prog.Uniform("noise"),
		uScale:  prog.Uniform("waveScale"),
		uOffset: prog.Uniform("waveOffset"),
	}
	w.buf = g.NewBuffers(3, glbackend.Attr{Loc: prog.Attrib("position"), Size: 3, Offset: 0})
	g.Indices(&w.buf, glbackend.QuadIndices(1), gl.STATIC_DRAW)
	return w, nil
}

func (w *Water) Execute(p *WaterParams) {
	extent := w.g.Settings().Float("renderingPerspectiveFarClip")
	w.g.Vertices(&w.buf, waterQuad(w.g.CameraEye(), extent), gl.STREAM_DRAW)

	restore := w.g.Begin3D()
	defer restore()
	w.g.UseProgram(w.prog)
	glbackend.SetMat4(w.uMVP, w.g.Perspective(w.state.Binoculars).Mul4(w.g.View()))
	glbackend.SetColor(w.uColor, p.Color)
	glbackend.SetInt(w.uNoise, 0)
	glbackend.SetFloat(w.uScale, p.WaveScale)
	glbackend.SetFloat(w.uOffset, waveOffset(w.state.Time, p.Period))
	w.g.BindTexture(0, w.g.NoiseTextureID())
	w.g.Draw(&w.buf)
}

func (w *Water) Close() error {
	w.g.DeleteBuffers(&w.buf)
	return nil
}
