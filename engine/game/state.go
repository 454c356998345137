// Package game describes the simulation state the renderer reads. Draw
// nodes never write to it.
package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/mesh"
)

// Scheme names an application mode; each selects one draw stack.
type Scheme string

const (
	SchemeMainMenu Scheme = "mainMenu"
	SchemeHelp     Scheme = "help"
	SchemePlaying  Scheme = "playing"
	SchemePaused   Scheme = "paused"
	SchemeGameOver Scheme = "gameOver"
)

type Fortress struct {
	Position mgl32.Vec3
	Rotation float32 // degrees, heading around +Y
	Tilt     float32 // degrees, turret elevation
	Health   float32 // 0..1
	Ammo     float32 // 0..1
	Shock    float32 // 0..1 charge of the EMP weapon

	// EMP falls from 1 to 0 while a fired wave expands; the wave radius is
	// (1-EMP) times stateEMPRange. 0 when idle.
	EMP float32

	// LastStrike is the game time in ms of the most recent missile hit, or
	// -1 when none happened yet.
	LastStrike int64
}

type Ship struct {
	Position mgl32.Vec3
	Rotation float32
	Alive    bool
}

type Missile struct {
	Position mgl32.Vec3
	Rotation float32
	Tilt     float32
	Alive    bool
}

type State struct {
	Time       int64 // game clock in ms
	Fortress   Fortress
	Ships      []Ship
	Missiles   []Missile
	Binoculars bool
	Score      int

	// Terrain is the island surface; TerrainVersion changes whenever it is
	// regenerated so renderers know to rebuild derived resources.
	Terrain        *mesh.Mesh
	TerrainVersion int
}

// Bearing returns the compass angle in degrees [0,360) from the fortress to
// p on the XZ plane, 0 along +X and growing towards +Z.
func (s *State) Bearing(p mgl32.Vec3) float32 {
	d := p.Sub(s.Fortress.Position)
	a := float32(math.Atan2(float64(d.Z()), float64(d.X())) * 180 / math.Pi)
	if a < 0 {
		a += 360
	}
	return a
}

// FlatDistance is the XZ distance from the fortress to p.
func (s *State) FlatDistance(p mgl32.Vec3) float32 {
	d := p.Sub(s.Fortress.Position)
	return float32(math.Hypot(float64(d.X()), float64(d.Z())))
}
