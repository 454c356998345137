package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/mesh"
)

// Marker groups locate mount points in the tower model; they are never drawn.
const (
	cameraMarker = "cameraorigin"
	turretMarker = "turretorigin"
	shellMarker  = "shellorigin"
)

func towerTexture(group string) string {
	switch group {
	case "spinner":
		return "structure/lightgrain"
	case "turret":
		return "structure/mediumgrain"
	}
	return "structure/" + group
}

// spinAngle is the spinner heading in degrees at game time t.
func spinAngle(t, periodMs int64) float32 {
	if periodMs <= 0 {
		return 0
	}
	return float32(t%periodMs) / float32(periodMs) * 360
}

// yaw turns a compass heading (0 along +X, growing towards +Z) into a
// rotation about +Y.
func yaw(deg float32) mgl32.Mat4 { return mgl32.HomogRotate3DY(mgl32.DegToRad(-deg)) }

// pitch raises +X towards +Y.
func pitch(deg float32) mgl32.Mat4 { return mgl32.HomogRotate3DZ(mgl32.DegToRad(deg)) }

// towerMatrices returns the model matrices of the static base, the spinner
// and the turret. The turret mesh is centred on its pivot, which sits at
// turretOrigin in the tower's frame.
func towerMatrices(f game.Fortress, turretOrigin mgl32.Vec3, spin float32) (base, spinner, turret mgl32.Mat4) {
	base = mgl32.Translate3D(f.Position.X(), f.Position.Y(), f.Position.Z())
	spinner = base.Mul4(yaw(spin))
	turret = base.Mul4(yaw(f.Rotation)).
		Mul4(mgl32.Translate3D(turretOrigin.X(), turretOrigin.Y(), turretOrigin.Z())).
		Mul4(pitch(f.Tilt))
	return base, spinner, turret
}

// Tower draws the fortress: a static base, a spinning radar dish and the
// turret, which follows the fortress heading and tilt.
type Tower struct {
	g     *glbackend.Graphics
	state *game.State
	model *model

	cameraOrigin mgl32.Vec3
	turretOrigin mgl32.Vec3
	spinPeriod   int64
}

func NewTower(g *glbackend.Graphics, st *game.State) (*Tower, error) {
	m, err := g.Library().LoadMesh("tower")
	if err != nil {
		return nil, err
	}
	return newTower(g, st, m)
}

func newTower(g *glbackend.Graphics, st *game.State, m *mesh.Mesh) (*Tower, error) {
	t, err := prepareTower(m)
	if err != nil {
		return nil, err
	}
	t.g, t.state = g, st
	t.spinPeriod = int64(g.Settings().Float("towerSpinnerPeriod") * 1000)
	t.model, err = newModel(g, m, drawable(m, cameraMarker, turretMarker, shellMarker), towerTexture)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// prepareTower reads the mount points and centres the turret on its pivot.
func prepareTower(m *mesh.Mesh) (*Tower, error) {
	cam, err := groupOrigin(m, cameraMarker)
	if err != nil {
		return nil, err
	}
	pivot, err := groupOrigin(m, turretMarker)
	if err != nil {
		return nil, err
	}
	centerGroup(m, "turret", pivot)
	return &Tower{cameraOrigin: cam, turretOrigin: pivot}, nil
}

// CameraOrigin is the camera mount relative to the fortress position.
func (t *Tower) CameraOrigin() mgl32.Vec3 { return t.cameraOrigin }

func (t *Tower) Execute(*Params) {
	st := t.state
	view := t.g.View()
	base, spinner, turret := towerMatrices(st.Fortress, t.turretOrigin, spinAngle(st.Time, t.spinPeriod))

	restore := t.model.begin(view, t.g.Perspective(st.Binoculars))
	defer restore()
	for _, p := range t.model.parts {
		m := base
		switch p.name {
		case "spinner":
			m = spinner
		case "turret":
			m = turret
		}
		t.model.draw(p, view.Mul4(m))
	}
}

func (t *Tower) Close() error { return t.model.Close() }
