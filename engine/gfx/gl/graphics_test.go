package glbackend

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/assets"
	"github.com/hubastard/bastion/engine/settings"
)

func newTestGraphics() *Graphics {
	return New(nil, settings.New(), assets.Library{DataPath: "testdata"}, 1)
}

func TestCheckSystem(t *testing.T) {
	tests := []struct {
		version string
		units   int
		ok      bool
	}{
		{"3.3.0 NVIDIA 535.54", 32, true},
		{"4.6 (Core Profile) Mesa 23.1", 8, true},
		{"3.2.0", 32, false},
		{"2.1 Mesa", 32, false},
		{"4.1", 4, false},
		{"garbage", 32, false},
	}
	for _, tt := range tests {
		err := checkSystem(tt.version, tt.units, 8)
		if (err == nil) != tt.ok {
			t.Errorf("checkSystem(%q, %d) = %v, want ok=%v", tt.version, tt.units, err, tt.ok)
		}
	}
}

func TestDrainErrors(t *testing.T) {
	queue := []uint32{0x500, 0x502}
	next := func() uint32 {
		if len(queue) == 0 {
			return 0
		}
		c := queue[0]
		queue = queue[1:]
		return c
	}
	if n := drainErrors(next); n != 2 {
		t.Errorf("drained %d, want 2", n)
	}
	if n := drainErrors(next); n != 0 {
		t.Errorf("second drain = %d, want 0", n)
	}
}

func TestBuildErrorMessage(t *testing.T) {
	msg := (&BuildError{Source: "void main() {", Log: "0:1: syntax error"}).Error()
	for _, want := range []string{"SHADER SOURCE ON GPU", "void main() {", "ERROR LOG", "syntax error"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message lacks %q:\n%s", want, msg)
		}
	}
	if link := (&BuildError{Log: "x"}).Error(); strings.Contains(link, "SOURCE") {
		t.Errorf("link error mentions source: %s", link)
	}
}

func TestQuadIndices(t *testing.T) {
	got := QuadIndices(2)
	want := []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("idx[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestGraphicsGeometry(t *testing.T) {
	g := newTestGraphics()
	if g.Width() != 1024 || g.Height() != 768 {
		t.Fatalf("size = %dx%d", g.Width(), g.Height())
	}
	g.Resize(800, 400)
	if g.Aspect() != 2 {
		t.Errorf("Aspect() = %v, want 2", g.Aspect())
	}
	if o := g.Ortho(); o[0] != 0.5 {
		t.Errorf("Ortho x scale = %v, want 0.5", o[0])
	}
	if v := g.PixelsToNDC(40, 40); v != (mgl32.Vec2{0.1, 0.2}) {
		t.Errorf("PixelsToNDC = %v", v)
	}
	x, y, w, h := g.ScissorBox(mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1})
	if x != 200 || y != 100 || w != 400 || h != 200 {
		t.Errorf("ScissorBox = %d,%d %dx%d", x, y, w, h)
	}
	if g.Perspective(true) == g.Perspective(false) {
		t.Error("binocular projection equals normal projection")
	}
	if g.View() != mgl32.Ident4() {
		t.Error("View() without camera is not identity")
	}

	g.Resize(0, 0)
	if g.Width() != 800 {
		t.Error("zero resize was applied")
	}
}

func TestCloseWithoutContext(t *testing.T) {
	g := newTestGraphics()
	g.Close()
	g.Close()
	if g.Bindings() != (Bindings{}) {
		t.Errorf("Bindings() = %+v", g.Bindings())
	}
}

func TestNoiseTextures(t *testing.T) {
	s := settings.New()
	if err := s.Set("terrainNoiseTextureDensity", 16); err != nil {
		t.Fatal(err)
	}
	g := New(nil, s, assets.Library{}, 9)
	noise, four := g.noiseTextures()
	if noise.Width != 16 || four.Height != 16 {
		t.Fatalf("noise sizes %dx%d, %dx%d", noise.Width, noise.Height, four.Width, four.Height)
	}
	levels := map[uint8]bool{}
	for i := 0; i < len(four.Pixels); i += 3 {
		levels[four.Pixels[i]] = true
	}
	if len(levels) > 16 {
		t.Errorf("fourDepthNoise has %d levels, want <= 16", len(levels))
	}
}
