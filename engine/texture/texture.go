// Package texture holds CPU-side pixel buffers that draw nodes fill, edit
// and hand to the GPU.
package texture

import (
	"fmt"
	"image"
	"image/draw"
	"math"
)

type Format int

const (
	RGB Format = iota
	RGBA
)

// Channels is the number of bytes per pixel.
func (f Format) Channels() int {
	if f == RGB {
		return 3
	}
	return 4
}

func (f Format) String() string {
	if f == RGB {
		return "RGB"
	}
	return "RGBA"
}

// Texture is a tightly packed pixel buffer, row 0 first. Coordinates are
// (column, row); out-of-range coordinates panic like slice indexing does.
type Texture struct {
	Width  int
	Height int
	Format Format
	Pixels []byte
}

// New allocates a zeroed texture.
func New(w, h int, f Format) *Texture {
	return &Texture{Width: w, Height: h, Format: f, Pixels: make([]byte, w*h*f.Channels())}
}

// FromImage copies img into a new RGBA texture.
func FromImage(img image.Image) *Texture {
	b := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != b.Dx()*4 || b.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	t := New(b.Dx(), b.Dy(), RGBA)
	copy(t.Pixels, rgba.Pix)
	return t
}

func (t *Texture) offset(x, y int) int {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		panic(fmt.Sprintf("texture: pixel (%d,%d) outside %dx%d", x, y, t.Width, t.Height))
	}
	return (y*t.Width + x) * t.Format.Channels()
}

func (t *Texture) Red(x, y int) uint8   { return t.Pixels[t.offset(x, y)] }
func (t *Texture) Green(x, y int) uint8 { return t.Pixels[t.offset(x, y)+1] }
func (t *Texture) Blue(x, y int) uint8  { return t.Pixels[t.offset(x, y)+2] }

// Alpha reads 255 for RGB textures.
func (t *Texture) Alpha(x, y int) uint8 {
	if t.Format == RGB {
		return 255
	}
	return t.Pixels[t.offset(x, y)+3]
}

func (t *Texture) SetRed(x, y int, v uint8)   { t.Pixels[t.offset(x, y)] = v }
func (t *Texture) SetGreen(x, y int, v uint8) { t.Pixels[t.offset(x, y)+1] = v }
func (t *Texture) SetBlue(x, y int, v uint8)  { t.Pixels[t.offset(x, y)+2] = v }

// SetAlpha is ignored on RGB textures.
func (t *Texture) SetAlpha(x, y int, v uint8) {
	if t.Format == RGB {
		return
	}
	t.Pixels[t.offset(x, y)+3] = v
}

// SetPixel writes all channels at once; a is dropped for RGB textures.
func (t *Texture) SetPixel(x, y int, r, g, b, a uint8) {
	i := t.offset(x, y)
	t.Pixels[i], t.Pixels[i+1], t.Pixels[i+2] = r, g, b
	if t.Format == RGBA {
		t.Pixels[i+3] = a
	}
}

// SetDepth requantizes every channel to depth evenly spaced levels between
// 0 and 255. Depths below 2 or above 256 leave the texture untouched.
func (t *Texture) SetDepth(depth int) {
	if depth < 2 || depth > 256 {
		return
	}
	steps := float64(depth - 1)
	var lut [256]byte
	for v := range lut {
		lut[v] = byte(math.Round(math.Round(float64(v)/255*steps) / steps * 255))
	}
	for i, v := range t.Pixels {
		t.Pixels[i] = lut[v]
	}
}

// FlipVertical swaps rows in place; GL expects row 0 at the bottom.
func (t *Texture) FlipVertical() {
	stride := t.Width * t.Format.Channels()
	tmp := make([]byte, stride)
	for top, bottom := 0, t.Height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := t.Pixels[top*stride : (top+1)*stride]
		b := t.Pixels[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}

// Blit copies src into t with its top-left corner at (x, y). Both must share
// a format and src must fit.
func (t *Texture) Blit(src *Texture, x, y int) error {
	if src.Format != t.Format {
		return fmt.Errorf("texture: blit %v onto %v", src.Format, t.Format)
	}
	if x < 0 || y < 0 || x+src.Width > t.Width || y+src.Height > t.Height {
		return fmt.Errorf("texture: blit %dx%d at (%d,%d) outside %dx%d", src.Width, src.Height, x, y, t.Width, t.Height)
	}
	ch := t.Format.Channels()
	row := src.Width * ch
	for r := 0; r < src.Height; r++ {
		dst := ((y+r)*t.Width + x) * ch
		copy(t.Pixels[dst:dst+row], src.Pixels[r*row:(r+1)*row])
	}
	return nil
}

// Image wraps an RGBA texture as an image.RGBA sharing its pixels.
func (t *Texture) Image() (*image.RGBA, error) {
	if t.Format != RGBA {
		return nil, fmt.Errorf("texture: %v has no image.RGBA view", t.Format)
	}
	return &image.RGBA{Pix: t.Pixels, Stride: t.Width * 4, Rect: image.Rect(0, 0, t.Width, t.Height)}, nil
}
