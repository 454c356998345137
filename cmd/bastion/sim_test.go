package main

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
	"github.com/hubastard/bastion/engine/settings"
)

func newTestSim(t *testing.T) *Sim {
	t.Helper()
	s := settings.New()
	if err := s.Set("islandTerrainDetail", 1); err != nil {
		t.Fatal(err)
	}
	sm := NewSim(s)
	sm.Reset()
	return sm
}

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-3 }

func TestReset(t *testing.T) {
	sm := newTestSim(t)
	st := sm.State
	if st.Terrain == nil || st.TerrainVersion != 1 {
		t.Fatalf("terrain = %v, version %d", st.Terrain != nil, st.TerrainVersion)
	}
	f := st.Fortress
	if f.Health != 1 || f.Ammo != 1 || f.LastStrike != -1 {
		t.Errorf("fortress = %+v", f)
	}
	sm.Reset()
	if st.TerrainVersion != 2 {
		t.Errorf("TerrainVersion = %d, want 2", st.TerrainVersion)
	}
}

func TestShipsOrbit(t *testing.T) {
	sm := newTestSim(t)
	sm.Step(0.1, Controls{})
	st := sm.State
	if len(st.Ships) != 1 {
		t.Fatalf("ships = %d, want 1", len(st.Ships))
	}
	s := st.Ships[0]
	if got, want := st.FlatDistance(s.Position), sm.orbitRadius(0); !near(got, want) {
		t.Errorf("orbit distance = %v, want %v", got, want)
	}
	if !near(s.Rotation, wrap360(sm.orbits[0]+90)) {
		t.Errorf("ship heading = %v, want tangent %v", s.Rotation, sm.orbits[0]+90)
	}

	// the next ship waits for the add interval
	sm.Step(1, Controls{})
	if len(st.Ships) != 1 {
		t.Errorf("ships after 1.1s = %d, want 1", len(st.Ships))
	}
}

func TestMissileStrike(t *testing.T) {
	sm := newTestSim(t)
	st := sm.State
	target := st.Fortress.Position.Add(mgl32.Vec3{0, aimHeight, 0})
	st.Missiles = []game.Missile{{Position: target.Add(mgl32.Vec3{1, 0, 0}), Alive: true}}

	sm.Step(0.1, Controls{})
	if st.Missiles[0].Alive {
		t.Fatal("missile survived reaching the fortress")
	}
	if !near(st.Fortress.Health, 0.75) {
		t.Errorf("Health = %v, want 0.75", st.Fortress.Health)
	}
	if st.Fortress.LastStrike != 100 {
		t.Errorf("LastStrike = %d, want 100", st.Fortress.LastStrike)
	}
}

func TestMissileHeadsForFortress(t *testing.T) {
	sm := newTestSim(t)
	st := sm.State
	y := st.Fortress.Position.Y() + aimHeight
	st.Missiles = []game.Missile{{Position: mgl32.Vec3{0, y, -800}, Alive: true}}
	sm.Step(1, Controls{})
	m := st.Missiles[0]
	if !near(m.Position.Z(), -700) || !near(m.Rotation, 90) || !near(m.Tilt, 0) {
		t.Errorf("missile = %+v, want z -700 heading 90 level", m)
	}
}

func TestEMPClearsMissiles(t *testing.T) {
	sm := newTestSim(t)
	st := sm.State
	st.Fortress.Shock = 1
	y := st.Fortress.Position.Y() + aimHeight
	st.Missiles = []game.Missile{
		{Position: mgl32.Vec3{400, y, 0}, Alive: true},
		{Position: mgl32.Vec3{0, y, 2000}, Alive: true},
	}

	sm.Step(0.1, Controls{EMP: true})
	if st.Fortress.EMP != 1 || st.Fortress.Shock != 0 {
		t.Fatalf("after firing EMP=%v Shock=%v, want 1 and 0", st.Fortress.EMP, st.Fortress.Shock)
	}
	sm.Step(1, Controls{})
	if !near(st.Fortress.EMP, 0.5) {
		t.Errorf("EMP = %v, want 0.5", st.Fortress.EMP)
	}
	if st.Missiles[0].Alive || !st.Missiles[1].Alive {
		t.Errorf("alive = %v %v, want false true", st.Missiles[0].Alive, st.Missiles[1].Alive)
	}
	if st.Score != 1 {
		t.Errorf("Score = %d, want 1", st.Score)
	}
}

func TestEMPNeedsFullCharge(t *testing.T) {
	sm := newTestSim(t)
	sm.State.Fortress.Shock = 0.5
	sm.Step(0.1, Controls{EMP: true})
	if sm.State.Fortress.EMP != 0 {
		t.Errorf("EMP fired at half charge")
	}
}

func TestFireShell(t *testing.T) {
	sm := newTestSim(t)
	st := sm.State
	y := st.Fortress.Position.Y()
	a := float64(mgl32.DegToRad(5))
	st.Missiles = []game.Missile{
		{Position: mgl32.Vec3{800, y, 0}, Alive: true},
		{Position: mgl32.Vec3{0, y, 300}, Alive: true},
		{Position: mgl32.Vec3{400 * float32(math.Cos(a)), y, 400 * float32(math.Sin(a))}, Alive: true},
	}
	sm.fireShell()
	alive := []bool{st.Missiles[0].Alive, st.Missiles[1].Alive, st.Missiles[2].Alive}
	if !alive[0] || !alive[1] || alive[2] {
		t.Errorf("alive = %v, want [true true false]", alive)
	}
	if !near(st.Fortress.Ammo, 1-shellCost) || st.Score != 1 {
		t.Errorf("Ammo = %v Score = %d", st.Fortress.Ammo, st.Score)
	}

	st.Fortress.Ammo = shellCost / 2
	sm.fireShell()
	if !st.Missiles[0].Alive {
		t.Error("shell fired without ammo")
	}
}

func TestTurretControls(t *testing.T) {
	sm := newTestSim(t)
	f := &sm.State.Fortress
	sm.Step(1, Controls{Turn: -1, Raise: 1})
	if !near(f.Rotation, 315) || !near(f.Tilt, 45) {
		t.Errorf("turret = (%v, %v), want (315, 45)", f.Rotation, f.Tilt)
	}
	sm.Step(1, Controls{Raise: 1, Binoculars: true})
	if f.Tilt != maxTilt {
		t.Errorf("Tilt = %v, want clamped to %v", f.Tilt, float32(maxTilt))
	}
	if !sm.State.Binoculars {
		t.Error("binoculars not applied")
	}
}

func TestLaunchReusesDeadSlot(t *testing.T) {
	sm := newTestSim(t)
	st := sm.State
	st.Missiles = []game.Missile{{Alive: true}, {Alive: false}}
	sm.launch(mgl32.Vec3{1, 2, 3})
	if len(st.Missiles) != 2 || st.Missiles[1].Position != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("missiles = %+v", st.Missiles)
	}
	sm.launch(mgl32.Vec3{})
	if len(st.Missiles) != 3 {
		t.Errorf("len = %d, want 3", len(st.Missiles))
	}
}

func TestStepStopsWhenOver(t *testing.T) {
	sm := newTestSim(t)
	sm.State.Fortress.Health = 0
	sm.Step(1, Controls{})
	if !sm.Over() || sm.State.Time != 0 {
		t.Errorf("Over = %v Time = %d", sm.Over(), sm.State.Time)
	}
}

func TestAngles(t *testing.T) {
	tests := []struct {
		a, b, want float32
	}{
		{10, 350, 20},
		{350, 10, -20},
		{180, 0, -180},
		{90, 90, 0},
	}
	for _, tt := range tests {
		if got := angleDiff(tt.a, tt.b); !near(got, tt.want) {
			t.Errorf("angleDiff(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
	if got := wrap360(-30); got != 330 {
		t.Errorf("wrap360(-30) = %v, want 330", got)
	}
	rot, tilt := direction(mgl32.Vec3{-1, 1, 0})
	if !near(rot, 180) || !near(tilt, 45) {
		t.Errorf("direction = (%v, %v), want (180, 45)", rot, tilt)
	}
}
