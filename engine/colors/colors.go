package colors

import (
	"fmt"
	"strconv"
)

type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{0, 0, 0, 0}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	Sky         = Color{174.0 / 255, 187.0 / 255, 224.0 / 255, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Lerp mixes c towards o by t in [0,1].
func (c Color) Lerp(o Color, t float32) Color {
	for i := range c {
		c[i] += (o[i] - c[i]) * t
	}
	return c
}

// ParseHex reads "rrggbbaa" (an optional leading '#' and a missing alpha pair are accepted).
func ParseHex(s string) (Color, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) == 6 {
		s += "ff"
	}
	if len(s) != 8 {
		return Color{}, fmt.Errorf("colors: %q is not rrggbbaa", s)
	}
	var c Color
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("colors: parse %q: %w", s, err)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}

// Hex formats c as "rrggbbaa".
func (c Color) Hex() string {
	var b [4]uint8
	for i, v := range c {
		b[i] = uint8(clamp01(v)*255 + 0.5)
	}
	return fmt.Sprintf("%02x%02x%02x%02x", b[0], b[1], b[2], b[3])
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
