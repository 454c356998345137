package text

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// OpenTypeRasterizer renders glyphs from a TrueType/OpenType font, keeping
// one face per point size.
type OpenTypeRasterizer struct {
	font  *opentype.Font
	faces map[int]font.Face
}

func NewOpenTypeRasterizer(data []byte) (*OpenTypeRasterizer, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &OpenTypeRasterizer{font: ft, faces: map[int]font.Face{}}, nil
}

func (o *OpenTypeRasterizer) face(size int) (font.Face, error) {
	if f, ok := o.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(o.font, &opentype.FaceOptions{
		Size: float64(size), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	o.faces[size] = f
	return f, nil
}

func (o *OpenTypeRasterizer) Rasterize(r rune, size int) (Bitmap, error) {
	face, err := o.face(size)
	if err != nil {
		return Bitmap{}, err
	}
	br, adv, ok := face.GlyphBounds(r)
	if !ok {
		return Bitmap{}, fmt.Errorf("%w %q", ErrNoGlyph, r)
	}
	minX, minY := br.Min.X.Floor(), br.Min.Y.Floor()
	w, h := br.Max.X.Ceil()-minX, br.Max.Y.Ceil()-minY
	bm := Bitmap{W: w, H: h, Left: minX, Top: -minY, Advance: adv.Round()}
	if w <= 0 || h <= 0 {
		bm.W, bm.H = 0, 0
		return bm, nil
	}

	dst := image.NewGray(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(-minX, -minY), // baseline inside the bitmap
	}
	d.DrawString(string(r))
	bm.Pix = dst.Pix
	return bm, nil
}

// Close releases every face.
func (o *OpenTypeRasterizer) Close() error {
	for size, f := range o.faces {
		if err := f.Close(); err != nil {
			return err
		}
		delete(o.faces, size)
	}
	return nil
}
