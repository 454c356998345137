package text

import (
	"errors"
	"testing"

	"golang.org/x/image/font/gofont/gobold"

	"github.com/hubastard/bastion/engine/texture"
)

// fakeRaster draws a glyph whose width depends on the rune and whose top
// row is solid so flips are visible.
type fakeRaster struct{ calls int }

func (f *fakeRaster) Rasterize(r rune, size int) (Bitmap, error) {
	f.calls++
	switch r {
	case '☃':
		return Bitmap{}, ErrNoGlyph
	case ' ':
		return Bitmap{Advance: 5}, nil
	}
	w := 4 + int(r)%5
	pix := make([]uint8, w*size)
	for x := 0; x < w; x++ {
		pix[x] = 200
	}
	return Bitmap{W: w, H: size, Left: 1, Top: size - 2, Advance: w + 1, Pix: pix}, nil
}

type recordUpload struct {
	sizes []int
	err   error
}

func (u *recordUpload) UploadAtlas(size int, _ *texture.Texture) error {
	u.sizes = append(u.sizes, size)
	return u.err
}

func TestBuildCharIdempotent(t *testing.T) {
	fr := &fakeRaster{}
	fm := NewFontManager(fr, nil)
	if err := fm.BuildChar('A', 16); err != nil {
		t.Fatal(err)
	}
	a := fm.Atlas(16)
	w, h, rebuilds := a.Texture.Width, a.Texture.Height, fm.Rebuilds()

	if err := fm.BuildChar('A', 16); err != nil {
		t.Fatal(err)
	}
	if fr.calls != 1 {
		t.Errorf("rasterizer calls = %d, want 1", fr.calls)
	}
	if fm.Rebuilds() != rebuilds {
		t.Errorf("Rebuilds() = %d, want %d", fm.Rebuilds(), rebuilds)
	}
	if got := fm.Atlas(16).Texture; got.Width != w || got.Height != h {
		t.Errorf("atlas = %dx%d, want %dx%d", got.Width, got.Height, w, h)
	}
	if n := len(fm.CachedChars(16)); n != 1 {
		t.Errorf("cached = %d, want 1", n)
	}
}

func TestGlyphMetricsAndFlip(t *testing.T) {
	fm := NewFontManager(&fakeRaster{}, nil)
	if err := fm.BuildChar('B', 10); err != nil {
		t.Fatal(err)
	}
	g, ok := fm.Glyph('B', 10)
	if !ok {
		t.Fatal("glyph missing")
	}
	if g.BearingX != 1 || g.BearingY != -2 {
		t.Errorf("bearing = (%d,%d), want (1,-2)", g.BearingX, g.BearingY)
	}
	if g.AdvanceY != 14 {
		t.Errorf("AdvanceY = %d, want 14", g.AdvanceY)
	}
	top := g.H - 1
	if r, a := g.Bitmap.Red(0, top), g.Bitmap.Alpha(0, top); r != 200 || a != 200 {
		t.Errorf("flipped top texel = (%d,%d), want (200,200)", r, a)
	}
	if a := g.Bitmap.Alpha(0, 0); a != 0 {
		t.Errorf("bottom texel alpha = %d, want 0", a)
	}
}

func TestAtlasGrid(t *testing.T) {
	up := &recordUpload{}
	fm := NewFontManager(&fakeRaster{}, up)
	if err := fm.PopulateCommonChars(12); err != nil {
		t.Fatal(err)
	}
	chars := fm.CachedChars(12)
	if len(chars) != 94 {
		t.Fatalf("cached = %d, want 94", len(chars))
	}
	a := fm.Atlas(12)
	if a.Cells != 11 {
		t.Errorf("Cells = %d, want 11", a.Cells)
	}
	if a.Texture.Width != a.CellW*11 || a.Texture.Height != a.CellH*11 {
		t.Errorf("atlas = %dx%d for cell %dx%d", a.Texture.Width, a.Texture.Height, a.CellW, a.CellH)
	}
	if len(up.sizes) != 94 {
		t.Errorf("uploads = %d, want 94", len(up.sizes))
	}

	type rect struct{ s0, t0, s1, t1 float32 }
	var rects []rect
	for _, r := range chars {
		g, _ := fm.Glyph(r, 12)
		rc := rect{g.S0, g.T0, g.S1, g.T1}
		if rc.s0 < 0 || rc.t0 < 0 || rc.s1 > 1 || rc.t1 > 1 || rc.s0 > rc.s1 || rc.t0 > rc.t1 {
			t.Errorf("%q rect %v outside unit square", r, rc)
		}
		for _, o := range rects {
			if rc.s0 < o.s1 && o.s0 < rc.s1 && rc.t0 < o.t1 && o.t0 < rc.t1 {
				t.Errorf("%q rect %v overlaps %v", r, rc, o)
			}
		}
		rects = append(rects, rc)
	}
}

func TestRebuildAtlasEmpty(t *testing.T) {
	up := &recordUpload{}
	fm := NewFontManager(&fakeRaster{}, up)
	if err := fm.RebuildAtlas(20); err != nil {
		t.Fatal(err)
	}
	if fm.Atlas(20) != nil || len(up.sizes) != 0 {
		t.Error("empty size produced an atlas")
	}
}

func TestBuildCharErrors(t *testing.T) {
	fm := NewFontManager(&fakeRaster{}, nil)
	if err := fm.BuildChar('☃', 12); !errors.Is(err, ErrNoGlyph) {
		t.Errorf("BuildChar(snowman) = %v, want ErrNoGlyph", err)
	}
	if fm.IsCached('☃', 12) {
		t.Error("failed glyph was cached")
	}

	boom := errors.New("boom")
	fm = NewFontManager(&fakeRaster{}, &recordUpload{err: boom})
	if err := fm.BuildChar('x', 12); !errors.Is(err, boom) {
		t.Errorf("BuildChar with failing upload = %v", err)
	}
}

func TestLayout(t *testing.T) {
	fm := NewFontManager(&fakeRaster{}, nil)
	if err := fm.Ensure("ab cd\nef", 10); err != nil {
		t.Fatal(err)
	}
	adv := func(r rune) float32 { return fm.advance(r, 10) }

	w, h := fm.Measure("ab", 10)
	if want := adv('a') + adv('b'); w != want {
		t.Errorf("Measure width = %v, want %v", w, want)
	}
	if h != fm.LineHeight(10) {
		t.Errorf("Measure height = %v, want %v", h, fm.LineHeight(10))
	}

	b := fm.Layout("ab cd\nef", 10, 0, 0)
	if b.Lines != 2 || len(b.Quads) != 6 {
		t.Errorf("lines, quads = %d, %d; want 2, 6", b.Lines, len(b.Quads))
	}
	// first line sits above the second
	if b.Quads[0].Y0 <= b.Quads[5].Y0 {
		t.Errorf("line order: %v vs %v", b.Quads[0].Y0, b.Quads[5].Y0)
	}

	wrapped := fm.Layout("ab cd", 10, adv('a')+adv('b')+adv(' '), 0)
	if wrapped.Lines != 2 {
		t.Errorf("wrapped lines = %d, want 2", wrapped.Lines)
	}

	clipped := fm.Layout("ab\ncd\nef", 10, 0, fm.LineHeight(10)*2)
	if clipped.Lines != 2 || clipped.Quads[0].Glyph.Rune != 'c' {
		t.Errorf("clip kept %d lines starting %q", clipped.Lines, clipped.Quads[0].Glyph.Rune)
	}
}

func TestOpenTypeRasterizer(t *testing.T) {
	o, err := NewOpenTypeRasterizer(gobold.TTF)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Close()

	bm, err := o.Rasterize('A', 24)
	if err != nil {
		t.Fatal(err)
	}
	if bm.W <= 0 || bm.H <= 0 || bm.Advance <= 0 || len(bm.Pix) != bm.W*bm.H {
		t.Fatalf("bitmap = %dx%d adv %d pix %d", bm.W, bm.H, bm.Advance, len(bm.Pix))
	}
	var ink bool
	for _, v := range bm.Pix {
		ink = ink || v > 0
	}
	if !ink {
		t.Error("glyph has no coverage")
	}

	fm := NewFontManager(o, nil)
	if err := fm.PopulateCommonChars(16); err != nil {
		t.Fatal(err)
	}
	if _, ok := fm.Glyph(' ', 16); !ok {
		t.Error("space not cached")
	}
}

func TestOpenTypeRejectsGarbage(t *testing.T) {
	if _, err := NewOpenTypeRasterizer([]byte("not a font")); err == nil {
		t.Error("expected parse error")
	}
}
