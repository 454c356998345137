// Package terrain generates the procedural surfaces: tileable
// diamond-square noise and the island heightmap mesh.
package terrain

import (
	"math"
	"math/rand/v2"
)

// Noise is a square grid of values in [-1, 1], indexed [row][col].
type Noise [][]float32

// DiamondSquare fills a side×side tileable grid. Each subdivision scales
// the random displacement by roughness, so values near 0 give smooth
// fields and values near 1 give rough ones.
func DiamondSquare(side int, roughness float32, rng *rand.Rand) Noise {
	if side < 1 {
		return nil
	}
	n := 1
	for n < side {
		n <<= 1
	}
	g := make([][]float32, n)
	for i := range g {
		g[i] = make([]float32, n)
	}
	at := func(r, c int) float32 { return g[(r%n+n)%n][(c%n+n)%n] }
	jitter := func(scale float32) float32 { return (rng.Float32()*2 - 1) * scale }

	scale := float32(1)
	for step := n; step > 1; step /= 2 {
		half := step / 2
		// square: centre of each cell
		for r := 0; r < n; r += step {
			for c := 0; c < n; c += step {
				avg := (at(r, c) + at(r+step, c) + at(r, c+step) + at(r+step, c+step)) / 4
				g[r+half][c+half] = avg + jitter(scale)
			}
		}
		// diamond: edge midpoints
		for r := 0; r < n; r += half {
			for c := (r/half + 1) % 2 * half; c < n; c += step {
				avg := (at(r-half, c) + at(r+half, c) + at(r, c-half) + at(r, c+half)) / 4
				g[r][c] = avg + jitter(scale)
			}
		}
		scale *= roughness
	}

	var peak float32
	for _, row := range g {
		for _, v := range row {
			peak = float32(math.Max(float64(peak), math.Abs(float64(v))))
		}
	}
	out := make(Noise, side)
	for i := range out {
		out[i] = g[i][:side]
		if peak > 0 {
			for j := range out[i] {
				out[i][j] /= peak
			}
		}
	}
	return out
}

// Byte maps v in [-1, 1] to a texel intensity the way the noise textures
// expect: v·128 + 127, clamped.
func Byte(v float32) uint8 {
	f := v*128 + 127
	switch {
	case f < 0:
		return 0
	case f > 255:
		return 255
	}
	return uint8(f)
}
