package main

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
	"github.com/hubastard/bastion/engine/logging"
	"github.com/hubastard/bastion/engine/settings"
	"github.com/hubastard/bastion/engine/terrain"
)

const (
	maxShips = 8

	// turret elevation limits in degrees
	minTilt = -10
	maxTilt = 60

	shellCost  = 0.1
	shellCone  = 10 // degrees either side of the turret heading
	ammoRegen  = 0.05
	shockRegen = 0.1

	// missiles aim this high above the fortress base
	aimHeight = 20
)

// Controls is the player input for one simulation step.
type Controls struct {
	Turn, Raise float32 // -1..1
	Shell       bool
	EMP         bool
	Binoculars  bool
}

// Sim is a small stand-in for the game logic: ships circle the island and
// fire missiles at the fortress, which can shoot them down with shells or
// clear the sky with an EMP wave.
type Sim struct {
	State  *game.State
	island terrain.IslandParams

	shipSpeed, orbitMargin, shipMargin float32
	missileSpeed, turnSpeed            float32
	regen, depletion                   float32
	empRange, empDuration              float32
	radarRadius                        float32
	shipEvery, fireEvery               int64 // ms

	nextShip int64
	orbits   []float32 // degrees, one per ship
	lastFire []int64
}

func NewSim(s *settings.Store) *Sim {
	return &Sim{
		State: &game.State{},
		island: terrain.IslandParams{
			Width:     s.Float("islandMaximumWidth"),
			MaxHeight: s.Float("islandMaximumHeight"),
			Depth:     s.Float("terrainDepth"),
			Density:   s.Int("islandTerrainBaseDensity"),
			Detail:    s.Int("islandTerrainDetail"),
			Roughness: s.Float("islandTerrainRoughness"),
			Sink:      s.Float("islandTerrainSink"),
			Seed:      uint64(s.Int("islandSeed")),
		},
		shipSpeed:    s.Float("stateShipSpeed"),
		orbitMargin:  s.Float("stateShipOrbitMargin"),
		shipMargin:   s.Float("stateShipMargin"),
		missileSpeed: s.Float("stateMissileSpeed"),
		turnSpeed:    s.Float("stateTurretTurnSpeed"),
		regen:        s.Float("stateHealthRegenerationRate"),
		depletion:    s.Float("stateMissileStrikeDepletion"),
		empRange:     s.Float("stateEMPRange"),
		empDuration:  s.Float("stateEMPDuration"),
		radarRadius:  s.Float("radarRadius"),
		shipEvery:    int64(s.Float("stateShipAddRate") * 1000),
		fireEvery:    int64(s.Float("stateMissileFiringRate") * 1000),
	}
}

// Reset starts a new round on a freshly generated island.
func (sm *Sim) Reset() {
	st := sm.State
	m := terrain.Island(sm.island)
	*st = game.State{
		Terrain:        m,
		TerrainVersion: st.TerrainVersion + 1,
		Fortress: game.Fortress{
			Position:   mgl32.Vec3{0, terrain.HeightAt(m, sm.island, 0, 0), 0},
			Health:     1,
			Ammo:       1,
			LastStrike: -1,
		},
	}
	sm.nextShip = 0
	sm.orbits = sm.orbits[:0]
	sm.lastFire = sm.lastFire[:0]
	sm.island.Seed++
	logging.Info("new round", slog.Int("terrainVersion", st.TerrainVersion))
}

// Over reports whether the fortress has fallen.
func (sm *Sim) Over() bool { return sm.State.Fortress.Health <= 0 }

// Step advances the simulation by dt seconds.
func (sm *Sim) Step(dt float32, in Controls) {
	st := sm.State
	if sm.Over() {
		return
	}
	st.Time += int64(dt * 1000)
	st.Binoculars = in.Binoculars

	f := &st.Fortress
	f.Rotation = wrap360(f.Rotation + in.Turn*sm.turnSpeed*dt)
	f.Tilt = mgl32.Clamp(f.Tilt+in.Raise*sm.turnSpeed*dt, minTilt, maxTilt)
	f.Health = min(1, f.Health+sm.regen*dt)
	f.Ammo = min(1, f.Ammo+ammoRegen*dt)

	sm.spawnShips()
	sm.moveShips(dt)
	sm.moveMissiles(dt)
	if in.Shell {
		sm.fireShell()
	}
	sm.updateEMP(dt, in.EMP)
}

func (sm *Sim) spawnShips() {
	st := sm.State
	if len(st.Ships) >= maxShips || st.Time < sm.nextShip {
		return
	}
	st.Ships = append(st.Ships, game.Ship{Alive: true})
	sm.orbits = append(sm.orbits, float32(len(st.Ships)-1)*137)
	sm.lastFire = append(sm.lastFire, st.Time)
	sm.nextShip = st.Time + sm.shipEvery
	logging.Verbose("ship added", slog.Int("ships", len(st.Ships)))
}

func (sm *Sim) orbitRadius(i int) float32 {
	return sm.island.Width/2 + sm.orbitMargin + float32(i)*sm.shipMargin
}

func (sm *Sim) moveShips(dt float32) {
	st := sm.State
	for i := range st.Ships {
		r := sm.orbitRadius(i)
		sm.orbits[i] = wrap360(sm.orbits[i] + mgl32.RadToDeg(sm.shipSpeed/r)*dt)
		a := float64(mgl32.DegToRad(sm.orbits[i]))
		s := &st.Ships[i]
		s.Position = mgl32.Vec3{r * float32(math.Cos(a)), 0, r * float32(math.Sin(a))}
		s.Rotation = wrap360(sm.orbits[i] + 90)

		if st.Time-sm.lastFire[i] >= sm.fireEvery {
			sm.lastFire[i] = st.Time
			sm.launch(s.Position.Add(mgl32.Vec3{0, 5, 0}))
		}
	}
}

// launch reuses a dead missile slot before growing the slice.
func (sm *Sim) launch(from mgl32.Vec3) {
	st := sm.State
	m := game.Missile{Position: from, Alive: true}
	for i := range st.Missiles {
		if !st.Missiles[i].Alive {
			st.Missiles[i] = m
			return
		}
	}
	st.Missiles = append(st.Missiles, m)
}

func (sm *Sim) moveMissiles(dt float32) {
	st := sm.State
	target := st.Fortress.Position.Add(mgl32.Vec3{0, aimHeight, 0})
	step := sm.missileSpeed * dt
	for i := range st.Missiles {
		m := &st.Missiles[i]
		if !m.Alive {
			continue
		}
		d := target.Sub(m.Position)
		dist := d.Len()
		if dist <= step {
			m.Alive = false
			sm.strike()
			continue
		}
		m.Position = m.Position.Add(d.Mul(step / dist))
		m.Rotation, m.Tilt = direction(d)
	}
}

func (sm *Sim) strike() {
	f := &sm.State.Fortress
	f.Health = max(0, f.Health-sm.depletion)
	f.LastStrike = sm.State.Time
	logging.Info("missile strike", slog.Float64("health", float64(f.Health)))
}

// fireShell destroys the nearest live missile inside the turret cone and
// radar range.
func (sm *Sim) fireShell() {
	st := sm.State
	f := &st.Fortress
	if f.Ammo < shellCost {
		return
	}
	f.Ammo -= shellCost
	best, bestDist := -1, sm.radarRadius
	for i, m := range st.Missiles {
		if !m.Alive {
			continue
		}
		off := math.Abs(float64(angleDiff(st.Bearing(m.Position), f.Rotation)))
		if d := st.FlatDistance(m.Position); off <= shellCone && d <= bestDist {
			best, bestDist = i, d
		}
	}
	if best >= 0 {
		st.Missiles[best].Alive = false
		st.Score++
	}
}

func (sm *Sim) updateEMP(dt float32, fire bool) {
	st := sm.State
	f := &st.Fortress
	if f.EMP == 0 {
		f.Shock = min(1, f.Shock+shockRegen*dt)
		if fire && f.Shock >= 1 {
			f.EMP, f.Shock = 1, 0
			logging.Info("emp fired")
		}
		return
	}
	f.EMP = max(0, f.EMP-dt/sm.empDuration)
	radius := (1 - f.EMP) * sm.empRange
	for i := range st.Missiles {
		m := &st.Missiles[i]
		if m.Alive && st.FlatDistance(m.Position) <= radius {
			m.Alive = false
			st.Score++
		}
	}
}

// direction is the compass heading and elevation of d in degrees.
func direction(d mgl32.Vec3) (rotation, tilt float32) {
	flat := math.Hypot(float64(d.X()), float64(d.Z()))
	rotation = wrap360(float32(math.Atan2(float64(d.Z()), float64(d.X())) * 180 / math.Pi))
	tilt = float32(math.Atan2(float64(d.Y()), flat) * 180 / math.Pi)
	return rotation, tilt
}

func wrap360(a float32) float32 {
	a = float32(math.Mod(float64(a), 360))
	if a < 0 {
		a += 360
	}
	return a
}

// angleDiff is a-b folded into [-180,180).
func angleDiff(a, b float32) float32 {
	return wrap360(a-b+180) - 180
}
