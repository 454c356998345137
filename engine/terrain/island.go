package terrain

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/mesh"
)

// IslandParams mirrors the island* and terrainDepth settings.
type IslandParams struct {
	Width     float32 // edge length of the square the island fits in
	MaxHeight float32
	Depth     float32 // sea floor below water level
	Density   int     // vertices per side at detail level 1
	Detail    int     // each level doubles Density
	Roughness float32
	Sink      float32 // how strongly the coast is pulled below sea level
	Seed      uint64
}

// Side is the number of vertices along one edge of the island grid.
func Side(density, detail int) int {
	if detail < 1 {
		return density
	}
	return density << (detail - 1)
}

// Island builds a heightmap mesh centred on the origin. Vertices are laid
// out row-major (row along +Z, column along +X) in the default group; the
// centre rises towards MaxHeight and the rim sinks to -Depth.
func Island(p IslandParams) *mesh.Mesh {
	side := Side(p.Density, p.Detail)
	m := mesh.New()
	if side < 2 {
		return m
	}
	noise := DiamondSquare(side, p.Roughness, rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15)))
	half := p.Width / 2
	spacing := p.Width / float32(side-1)

	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			x := -half + float32(c)*spacing
			z := -half + float32(r)*spacing
			radius := float32(math.Hypot(float64(x), float64(z))) / half
			shape := mgl32.Clamp(1-radius, 0, 1)
			h := (noise[r][c]+1)/2*shape*(1+p.Sink) - p.Sink
			y := mgl32.Clamp(h*p.MaxHeight, -p.Depth, p.MaxHeight)
			m.AddVertex(mgl32.Vec3{x, y, z})
			m.AddTexCoord(mgl32.Vec2{float32(c) / float32(side-1), float32(r) / float32(side-1)})
		}
	}

	idx := func(r, c int) int { return r*side + c }
	for r := 0; r < side-1; r++ {
		for c := 0; c < side-1; c++ {
			a, b, cc, d := idx(r, c), idx(r+1, c), idx(r+1, c+1), idx(r, c+1)
			for _, tri := range [2][3]int{{a, b, cc}, {cc, d, a}} {
				f := mesh.Tri(tri[0], tri[1], tri[2])
				f.TexCoords = f.Vertices
				// indices come from the grid just built
				_ = m.AddFace(mesh.DefaultGroup, f)
			}
		}
	}
	m.AutoNormal()
	return m
}

// HeightAt samples the island surface under (x, z) from the nearest grid
// vertex. Points off the grid report -Depth.
func HeightAt(m *mesh.Mesh, p IslandParams, x, z float32) float32 {
	side := Side(p.Density, p.Detail)
	if side < 2 || len(m.Vertices) != side*side {
		return -p.Depth
	}
	spacing := p.Width / float32(side-1)
	c := int(math.Round(float64((x + p.Width/2) / spacing)))
	r := int(math.Round(float64((z + p.Width/2) / spacing)))
	if c < 0 || r < 0 || c >= side || r >= side {
		return -p.Depth
	}
	return m.Vertices[r*side+c].Y()
}
