package world

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
	"github.com/hubastard/bastion/engine/mesh"
)

func near3(a, b mgl32.Vec3) bool { return a.Sub(b).Len() < 1e-4 }

func apply(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 { return m.Mul4x1(p.Vec4(1)).Vec3() }

const towerOBJ = `
v 0 0 0
v 1 0 0
v 0 1 0
v 2 10 0
v 4 10 0
v 3 13 0
v 0 20 0
v 1 20 0
v 0 21 0
vt 0 0
vn 0 0 1
g base
f 1/1/1 2/1/1 3/1/1
g turret
f 4/1/1 5/1/1 6/1/1
f 4/1/1 6/1/1 5/1/1
g turretorigin
f 4 5 6
g cameraorigin
f 7 8 9
`

func parse(t *testing.T, src string) *mesh.Mesh {
	t.Helper()
	m, err := mesh.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestInterleave(t *testing.T) {
	m := parse(t, towerOBJ)
	verts, spans := interleave(m, []string{"base", "turret"})
	if got, want := len(verts), 3*3*modelStride; got != want {
		t.Fatalf("len(verts) = %d, want %d", got, want)
	}
	if spans["base"] != (span{0, 3}) || spans["turret"] != (span{3, 6}) {
		t.Errorf("spans = %v", spans)
	}
	// second corner of the base: position (1,0,0), normal +Z, uv (0,0)
	want := []float32{1, 0, 0, 0, 0, 1, 0, 0}
	if got := verts[modelStride : 2*modelStride]; !reflect.DeepEqual(got, want) {
		t.Errorf("corner = %v, want %v", got, want)
	}

	// marker faces carry no normals or texcoords
	verts, _ = interleave(m, []string{"cameraorigin"})
	for i := 3; i < modelStride; i++ {
		if verts[i] != 0 {
			t.Errorf("marker attribute %d = %v, want 0", i, verts[i])
		}
	}
}

func TestSequence(t *testing.T) {
	if got := sequence(4); !reflect.DeepEqual(got, []uint32{0, 1, 2, 3}) {
		t.Errorf("sequence(4) = %v", got)
	}
}

func TestPrepareTower(t *testing.T) {
	m := parse(t, towerOBJ)
	tw, err := prepareTower(m)
	if err != nil {
		t.Fatal(err)
	}
	if !near3(tw.CameraOrigin(), mgl32.Vec3{1.0 / 3, 61.0 / 3, 0}) {
		t.Errorf("camera origin = %v", tw.CameraOrigin())
	}
	if !near3(tw.turretOrigin, mgl32.Vec3{3, 11, 0}) {
		t.Errorf("turret origin = %v, want (3, 11, 0)", tw.turretOrigin)
	}
	// turret faces share their vertices; each must move exactly once
	if got := m.Vertices[3]; !near3(got, mgl32.Vec3{-1, -1, 0}) {
		t.Errorf("turret vertex = %v, want (-1, -1, 0)", got)
	}
	if got := m.Vertices[0]; got != (mgl32.Vec3{}) {
		t.Errorf("base vertex moved to %v", got)
	}
}

func TestPrepareTowerNeedsMarkers(t *testing.T) {
	m := parse(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\ng base\nf 1 2 3\n")
	if _, err := prepareTower(m); err == nil {
		t.Error("prepareTower without markers succeeded")
	}
}

func TestDrawable(t *testing.T) {
	m := parse(t, towerOBJ)
	got := drawable(m, cameraMarker, turretMarker, shellMarker)
	if want := []string{"base", "turret"}; !reflect.DeepEqual(got, want) {
		t.Errorf("drawable = %v, want %v", got, want)
	}
}

func TestTowerTexture(t *testing.T) {
	tests := map[string]string{
		"spinner": "structure/lightgrain",
		"turret":  "structure/mediumgrain",
		"base":    "structure/base",
	}
	for group, want := range tests {
		if got := towerTexture(group); got != want {
			t.Errorf("towerTexture(%q) = %q, want %q", group, got, want)
		}
	}
}

func TestYawFollowsCompass(t *testing.T) {
	tests := []struct {
		deg  float32
		want mgl32.Vec3
	}{
		{0, mgl32.Vec3{1, 0, 0}},
		{90, mgl32.Vec3{0, 0, 1}},
		{180, mgl32.Vec3{-1, 0, 0}},
	}
	for _, tt := range tests {
		if got := apply(yaw(tt.deg), mgl32.Vec3{1, 0, 0}); !near3(got, tt.want) {
			t.Errorf("yaw(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestTowerMatrices(t *testing.T) {
	f := game.Fortress{Position: mgl32.Vec3{100, 5, -20}, Rotation: 90, Tilt: 90}
	pivot := mgl32.Vec3{2, 10, 0}
	base, spinner, turret := towerMatrices(f, pivot, 180)

	if got := apply(base, mgl32.Vec3{1, 0, 0}); !near3(got, mgl32.Vec3{101, 5, -20}) {
		t.Errorf("base = %v", got)
	}
	if got := apply(spinner, mgl32.Vec3{1, 0, 0}); !near3(got, mgl32.Vec3{99, 5, -20}) {
		t.Errorf("spinner = %v", got)
	}
	// pivot rotated by the heading: (2,10,0) -> (0,10,2)
	if got := apply(turret, mgl32.Vec3{}); !near3(got, mgl32.Vec3{100, 15, -18}) {
		t.Errorf("turret pivot = %v, want (100, 15, -18)", got)
	}
	// a barrel along +X is raised straight up by a 90 degree tilt
	if got := apply(turret, mgl32.Vec3{1, 0, 0}); !near3(got, mgl32.Vec3{100, 16, -18}) {
		t.Errorf("turret barrel = %v, want (100, 16, -18)", got)
	}
}

func TestSpinAngle(t *testing.T) {
	tests := []struct {
		t, period int64
		want      float32
	}{
		{0, 8000, 0},
		{2000, 8000, 90},
		{10000, 8000, 90},
		{500, 0, 0},
	}
	for _, tt := range tests {
		if got := spinAngle(tt.t, tt.period); got != tt.want {
			t.Errorf("spinAngle(%d, %d) = %v, want %v", tt.t, tt.period, got, tt.want)
		}
	}
}

func TestShipAndMissileMatrices(t *testing.T) {
	s := game.Ship{Position: mgl32.Vec3{10, 0, 10}, Rotation: 90}
	if got := apply(shipMatrix(s), mgl32.Vec3{1, 0, 0}); !near3(got, mgl32.Vec3{10, 0, 11}) {
		t.Errorf("ship bow = %v, want (10, 0, 11)", got)
	}
	m := game.Missile{Position: mgl32.Vec3{0, 50, 0}, Rotation: 180, Tilt: -45}
	got := apply(missileMatrix(m), mgl32.Vec3{1, 0, 0})
	h := float32(math.Sqrt2 / 2)
	if !near3(got, mgl32.Vec3{-h, 50 - h, 0}) {
		t.Errorf("missile nose = %v, want (%v, %v, 0)", got, -h, 50-h)
	}
}

func TestEyeLight(t *testing.T) {
	got := eyeLight(mgl32.Ident4())
	if !near3(got, mgl32.Vec3{1, 1, -1}.Normalize()) {
		t.Errorf("eyeLight(identity) = %v", got)
	}
	// translation does not move a direction
	got = eyeLight(mgl32.Translate3D(5, 5, 5))
	if !near3(got, mgl32.Vec3{1, 1, -1}.Normalize()) {
		t.Errorf("eyeLight(translated) = %v", got)
	}
}

func TestWaterQuad(t *testing.T) {
	q := waterQuad(mgl32.Vec3{10, 40, -10}, 100)
	if len(q) != 12 {
		t.Fatalf("len = %d, want 12", len(q))
	}
	// shoelace over (x, -z): what the camera sees looking down
	var area float32
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		xi, yi := q[i*3], -q[i*3+2]
		xj, yj := q[j*3], -q[j*3+2]
		area += xi*yj - xj*yi
	}
	if area <= 0 {
		t.Errorf("winding area = %v, want counter-clockwise", area)
	}
	for i := 0; i < 4; i++ {
		if q[i*3+1] != 0 {
			t.Errorf("corner %d y = %v, want 0", i, q[i*3+1])
		}
	}
	if q[0] != -90 || q[2] != -110 {
		t.Errorf("first corner = (%v, %v), want (-90, -110)", q[0], q[2])
	}
}

func TestWaveOffset(t *testing.T) {
	if got := waveOffset(1500, 6); got != 0.25 {
		t.Errorf("waveOffset(1500, 6) = %v, want 0.25", got)
	}
	if got := waveOffset(1500, 0); got != 0 {
		t.Errorf("waveOffset(1500, 0) = %v, want 0", got)
	}
}

func TestGroupOriginMissing(t *testing.T) {
	if _, err := groupOrigin(mesh.New(), "cameraorigin"); err == nil {
		t.Error("groupOrigin on an empty mesh succeeded")
	}
}
