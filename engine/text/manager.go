// Package text caches rasterized glyphs per (rune, size) and packs each
// size into a grid atlas for the HUD text nodes.
package text

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hubastard/bastion/engine/texture"
)

var ErrNoGlyph = errors.New("text: font has no glyph")

// advanceYFactor sets line spacing relative to glyph height.
const advanceYFactor = 1.40

// Bitmap is a rasterized coverage mask, top row first, one byte per pixel.
type Bitmap struct {
	W, H    int
	Left    int // pen to left edge
	Top     int // baseline to top edge, positive up
	Advance int
	Pix     []uint8
}

// Rasterizer renders one glyph at a point size.
type Rasterizer interface {
	Rasterize(r rune, size int) (Bitmap, error)
}

// AtlasUploader receives every rebuilt atlas. The GL backend replaces the
// texture for that size wholesale.
type AtlasUploader interface {
	UploadAtlas(size int, atlas *texture.Texture) error
}

// Glyph is one cached character. Bitmap rows run bottom to top so the
// texture lines up with +Y up. S/T are the normalized atlas rectangle.
type Glyph struct {
	Rune     rune
	W, H     int
	BearingX int
	BearingY int
	AdvanceX int
	AdvanceY int
	Bitmap   *texture.Texture

	S0, T0, S1, T1 float32
}

// Atlas is the packed texture for one size.
type Atlas struct {
	Size         int
	Cells        int // cells per side
	CellW, CellH int
	Texture      *texture.Texture
}

type glyphKey struct {
	r    rune
	size int
}

type FontManager struct {
	raster  Rasterizer
	upload  AtlasUploader
	glyphs  map[glyphKey]*Glyph
	atlases map[int]*Atlas

	rebuilds int
}

// NewFontManager caches glyphs from r. upload may be nil when no GPU copy
// is wanted.
func NewFontManager(r Rasterizer, upload AtlasUploader) *FontManager {
	return &FontManager{
		raster:  r,
		upload:  upload,
		glyphs:  map[glyphKey]*Glyph{},
		atlases: map[int]*Atlas{},
	}
}

func (fm *FontManager) IsCached(r rune, size int) bool {
	_, ok := fm.glyphs[glyphKey{r, size}]
	return ok
}

// BuildChar rasterizes r at size and rebuilds that size's atlas. Cached
// glyphs are left alone.
func (fm *FontManager) BuildChar(r rune, size int) error {
	if fm.IsCached(r, size) {
		return nil
	}
	bm, err := fm.raster.Rasterize(r, size)
	if err != nil {
		return fmt.Errorf("rasterize %q at %d: %w", r, size, err)
	}

	tex := texture.New(bm.W, bm.H, texture.RGBA)
	for y := 0; y < bm.H; y++ {
		src := (bm.H - y - 1) * bm.W
		for x := 0; x < bm.W; x++ {
			if v := bm.Pix[src+x]; v != 0 {
				tex.SetPixel(x, y, v, v, v, v)
			}
		}
	}
	fm.glyphs[glyphKey{r, size}] = &Glyph{
		Rune:     r,
		W:        bm.W,
		H:        bm.H,
		BearingX: bm.Left,
		BearingY: -(bm.H - bm.Top),
		AdvanceX: bm.Advance,
		AdvanceY: int(float64(bm.H) * advanceYFactor),
		Bitmap:   tex,
	}
	return fm.RebuildAtlas(size)
}

// RebuildAtlas lays every cached glyph of size into a square grid of
// ceil(sqrt(n))+1 cells per side, row-major in rune order, and uploads
// the result.
func (fm *FontManager) RebuildAtlas(size int) error {
	chars := fm.CachedChars(size)
	if len(chars) == 0 {
		return nil
	}
	cellW, cellH := 1, 1
	for _, r := range chars {
		g := fm.glyphs[glyphKey{r, size}]
		cellW = max(cellW, g.W)
		cellH = max(cellH, g.H)
	}
	cells := int(math.Ceil(math.Sqrt(float64(len(chars))))) + 1
	tex := texture.New(cellW*cells, cellH*cells, texture.RGBA)

	for i, r := range chars {
		g := fm.glyphs[glyphKey{r, size}]
		x, y := i%cells*cellW, i/cells*cellH
		if err := tex.Blit(g.Bitmap, x, y); err != nil {
			return fmt.Errorf("pack %q: %w", r, err)
		}
		g.S0 = float32(x) / float32(tex.Width)
		g.T0 = float32(y) / float32(tex.Height)
		g.S1 = float32(x+g.W) / float32(tex.Width)
		g.T1 = float32(y+g.H) / float32(tex.Height)
	}

	fm.atlases[size] = &Atlas{Size: size, Cells: cells, CellW: cellW, CellH: cellH, Texture: tex}
	fm.rebuilds++
	if fm.upload != nil {
		if err := fm.upload.UploadAtlas(size, tex); err != nil {
			return fmt.Errorf("upload atlas %d: %w", size, err)
		}
	}
	return nil
}

// PopulateCommonChars pre-warms the printable ASCII range.
func (fm *FontManager) PopulateCommonChars(size int) error {
	for r := ' '; r < '~'; r++ {
		if err := fm.BuildChar(r, size); err != nil {
			return err
		}
	}
	return nil
}

// CachedChars lists the runes cached at size in ascending order.
func (fm *FontManager) CachedChars(size int) []rune {
	var out []rune
	for k := range fm.glyphs {
		if k.size == size {
			out = append(out, k.r)
		}
	}
	slices.Sort(out)
	return out
}

// Glyph returns the cached glyph for r at size.
func (fm *FontManager) Glyph(r rune, size int) (*Glyph, bool) {
	g, ok := fm.glyphs[glyphKey{r, size}]
	return g, ok
}

func (fm *FontManager) Atlas(size int) *Atlas { return fm.atlases[size] }

// Rebuilds counts atlas rebuilds since construction.
func (fm *FontManager) Rebuilds() int { return fm.rebuilds }

// Ensure builds any rune of s missing at size.
func (fm *FontManager) Ensure(s string, size int) error {
	for _, r := range s {
		if r == '\n' {
			continue
		}
		if err := fm.BuildChar(r, size); err != nil {
			return err
		}
	}
	return nil
}
