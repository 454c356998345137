package renderer2d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/text"
)

func approx(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-5 }

func TestAppendQuadCorners(t *testing.T) {
	shade := [4]colors.Color{colors.Red, colors.White, colors.White, colors.Red}
	v := appendQuad(nil, mgl32.Vec2{1, 2}, mgl32.Vec2{2, 4}, 0, shade, Full)
	if len(v) != 4*vStride {
		t.Fatalf("len = %d, want %d", len(v), 4*vStride)
	}
	want := [4][4]float32{
		{0, 0, 0, 0},
		{0, 4, 0, 1},
		{2, 4, 1, 1},
		{2, 0, 1, 0},
	}
	for i, w := range want {
		o := i * vStride
		got := [4]float32{v[o], v[o+1], v[o+6], v[o+7]}
		for k := range got {
			if !approx(got[k], w[k]) {
				t.Errorf("corner %d = %v, want %v", i, got, w)
				break
			}
		}
		if c := (colors.Color{v[o+2], v[o+3], v[o+4], v[o+5]}); c != shade[i] {
			t.Errorf("corner %d colour = %v, want %v", i, c, shade[i])
		}
	}
}

func TestAppendQuadRotation(t *testing.T) {
	var shade [4]colors.Color
	v := appendQuad(nil, mgl32.Vec2{}, mgl32.Vec2{2, 2}, 90, shade, Full)
	// bottom-left (-1,-1) turns to (1,-1)
	if !approx(v[0], 1) || !approx(v[1], -1) {
		t.Errorf("rotated corner = (%v, %v), want (1, -1)", v[0], v[1])
	}
}

func TestSubTextures(t *testing.T) {
	s := FromPixels(16, 0, 16, 32, 64, 64)
	if want := (SubTexture{0.25, 0, 0.5, 0.5}); s != want {
		t.Errorf("FromPixels = %v, want %v", s, want)
	}
	g := &text.Glyph{S0: 0.1, T0: 0.2, S1: 0.3, T1: 0.4}
	if got, want := FromGlyph(g), (SubTexture{0.1, 0.2, 0.3, 0.4}); got != want {
		t.Errorf("FromGlyph = %v, want %v", got, want)
	}
}

func TestStatistics(t *testing.T) {
	s := Statistics{QuadCount: 3}
	if s.TotalVertexCount() != 12 || s.TotalIndexCount() != 18 {
		t.Errorf("totals = %d/%d, want 12/18", s.TotalVertexCount(), s.TotalIndexCount())
	}
}
