package text

import "strings"

// Quad places one glyph inside a Block, in pixels with +Y up and the
// origin at the block's bottom-left.
type Quad struct {
	Glyph          *Glyph
	X0, Y0, X1, Y1 float32
}

// Block is laid-out text ready for drawing.
type Block struct {
	Width, Height float32
	Lines         int
	Quads         []Quad
}

// LineHeight is the tallest AdvanceY cached at size, or size itself when
// nothing is cached yet.
func (fm *FontManager) LineHeight(size int) float32 {
	h := 0
	for k, g := range fm.glyphs {
		if k.size == size {
			h = max(h, g.AdvanceY)
		}
	}
	if h == 0 {
		h = size
	}
	return float32(h)
}

func (fm *FontManager) advance(r rune, size int) float32 {
	if g, ok := fm.glyphs[glyphKey{r, size}]; ok {
		return float32(g.AdvanceX)
	}
	if sp, ok := fm.glyphs[glyphKey{' ', size}]; ok {
		return float32(sp.AdvanceX)
	}
	return 0
}

// wrap splits s into lines no wider than maxWidth pixels, breaking at
// spaces when possible. maxWidth <= 0 only splits on newlines.
func (fm *FontManager) wrap(s string, size int, maxWidth float32) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		if maxWidth <= 0 {
			lines = append(lines, para)
			continue
		}
		var line []rune
		var w float32
		lastSpace := -1
		for _, r := range para {
			adv := fm.advance(r, size)
			if w+adv > maxWidth && len(line) > 0 {
				cut := len(line)
				if lastSpace > 0 {
					cut = lastSpace
				}
				lines = append(lines, string(line[:cut]))
				rest := line[cut:]
				if lastSpace > 0 {
					rest = rest[1:]
				}
				line = append([]rune(nil), rest...)
				w = 0
				for _, rr := range line {
					w += fm.advance(rr, size)
				}
				lastSpace = -1
			}
			if r == ' ' {
				lastSpace = len(line)
			}
			line = append(line, r)
			w += adv
		}
		lines = append(lines, string(line))
	}
	return lines
}

// Layout places s at size. Lines wrap at maxWidth; when the text needs
// more than maxHeight the oldest (top) lines are dropped so the newest
// stay visible. Zero bounds mean unbounded. Runes not cached at size
// advance like a space and draw nothing.
func (fm *FontManager) Layout(s string, size int, maxWidth, maxHeight float32) Block {
	lineH := fm.LineHeight(size)
	lines := fm.wrap(s, size, maxWidth)
	if maxHeight > 0 {
		fit := max(int(maxHeight/lineH), 1)
		if len(lines) > fit {
			lines = lines[len(lines)-fit:]
		}
	}

	b := Block{Lines: len(lines), Height: float32(len(lines)) * lineH}
	descent := lineH * 0.25
	for i, line := range lines {
		baseline := float32(len(lines)-1-i)*lineH + descent
		var pen float32
		for _, r := range line {
			g, ok := fm.glyphs[glyphKey{r, size}]
			if ok && g.W > 0 && g.H > 0 {
				x0 := pen + float32(g.BearingX)
				y0 := baseline + float32(g.BearingY)
				b.Quads = append(b.Quads, Quad{
					Glyph: g,
					X0:    x0,
					Y0:    y0,
					X1:    x0 + float32(g.W),
					Y1:    y0 + float32(g.H),
				})
			}
			pen += fm.advance(r, size)
		}
		b.Width = max(b.Width, pen)
	}
	return b
}

// Measure returns the unwrapped pixel size of s.
func (fm *FontManager) Measure(s string, size int) (w, h float32) {
	b := fm.Layout(s, size, 0, 0)
	return b.Width, b.Height
}
