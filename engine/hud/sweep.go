package hud

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
)

// Blip is a missile as the radar last saw it.
type Blip struct {
	Position mgl32.Vec3
	Bearing  float32
}

// SweepAngle is the beam bearing in degrees at game time t for a beam
// turning once every periodMs.
func SweepAngle(t, periodMs int64) float32 {
	if periodMs <= 0 {
		return 0
	}
	return float32(t%periodMs) / float32(periodMs) * 360
}

// Crossed reports whether the beam passed bearing a while moving from last
// to cur, wrapping through 0. A bearing equal to last was already passed on
// the previous step.
func Crossed(a, last, cur float32) bool {
	return (a > last && a <= cur) || (cur < last && (a > last || a <= cur))
}

// Sweep is the radar decay cache: missiles are recorded where the beam
// finds them and forgotten when it passes their bearing again.
type Sweep struct {
	last  float32
	blips []Blip
}

// Advance moves the beam to cur. Cached blips whose bearing from the
// fortress's current position the beam crossed are evicted first, then
// every live missile within radius on a crossed bearing is recorded.
func (s *Sweep) Advance(cur float32, st *game.State, radius float32) {
	kept := s.blips[:0]
	for _, b := range s.blips {
		if !Crossed(st.Bearing(b.Position), s.last, cur) {
			kept = append(kept, b)
		}
	}
	s.blips = kept

	for _, m := range st.Missiles {
		if !m.Alive || st.FlatDistance(m.Position) >= radius {
			continue
		}
		if a := st.Bearing(m.Position); Crossed(a, s.last, cur) {
			s.blips = append(s.blips, Blip{Position: m.Position, Bearing: a})
		}
	}
	s.last = cur
}

// Blips returns the cached blips; the slice is reused by the next Advance.
func (s *Sweep) Blips() []Blip { return s.blips }

// Reset forgets every blip; the beam keeps its bearing.
func (s *Sweep) Reset() { s.blips = s.blips[:0] }
