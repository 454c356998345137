package terrain

import (
	"math/rand/v2"
	"testing"
)

func TestDiamondSquareRangeAndShape(t *testing.T) {
	for _, side := range []int{1, 5, 16, 33} {
		n := DiamondSquare(side, 0.6, rand.New(rand.NewPCG(1, 2)))
		if len(n) != side {
			t.Fatalf("side %d: rows = %d", side, len(n))
		}
		for r, row := range n {
			if len(row) != side {
				t.Fatalf("side %d: row %d has %d cols", side, r, len(row))
			}
			for _, v := range row {
				if v < -1 || v > 1 {
					t.Errorf("side %d: value %v out of [-1,1]", side, v)
				}
			}
		}
	}
}

func TestDiamondSquareDeterministic(t *testing.T) {
	a := DiamondSquare(16, 0.5, rand.New(rand.NewPCG(7, 7)))
	b := DiamondSquare(16, 0.5, rand.New(rand.NewPCG(7, 7)))
	for r := range a {
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				t.Fatalf("[%d][%d] = %v vs %v", r, c, a[r][c], b[r][c])
			}
		}
	}
}

func TestByte(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{{-1, 0}, {0, 127}, {1, 255}, {-2, 0}}
	for _, tt := range tests {
		if got := Byte(tt.in); got != tt.want {
			t.Errorf("Byte(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSide(t *testing.T) {
	tests := []struct{ density, detail, want int }{
		{32, 1, 32}, {32, 4, 256}, {8, 0, 8},
	}
	for _, tt := range tests {
		if got := Side(tt.density, tt.detail); got != tt.want {
			t.Errorf("Side(%d, %d) = %d, want %d", tt.density, tt.detail, got, tt.want)
		}
	}
}

func testParams() IslandParams {
	return IslandParams{
		Width: 1000, MaxHeight: 100, Depth: 10,
		Density: 8, Detail: 2, Roughness: 0.5, Sink: 0.5, Seed: 3,
	}
}

func TestIsland(t *testing.T) {
	p := testParams()
	m := Island(p)
	side := Side(p.Density, p.Detail)
	if len(m.Vertices) != side*side {
		t.Fatalf("vertices = %d, want %d", len(m.Vertices), side*side)
	}
	if got, want := m.FaceCount(), 2*(side-1)*(side-1); got != want {
		t.Errorf("FaceCount() = %d, want %d", got, want)
	}
	if err := m.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	for i, v := range m.Vertices {
		if v.Y() < -p.Depth || v.Y() > p.MaxHeight {
			t.Errorf("vertex %d height %v out of range", i, v.Y())
		}
	}
	// corners lie outside the island radius
	if y := m.Vertices[0].Y(); y != -p.Depth {
		t.Errorf("corner height = %v, want %v", y, -p.Depth)
	}
	for i, n := range m.Normals {
		if n.Y() < 0 {
			t.Errorf("normal %d = %v points down", i, n)
			break
		}
	}
}

func TestIslandSeeded(t *testing.T) {
	a, b := Island(testParams()), Island(testParams())
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs between equal seeds", i)
		}
	}
	p := testParams()
	p.Seed = 4
	c := Island(p)
	same := true
	for i := range a.Vertices {
		if a.Vertices[i] != c.Vertices[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical islands")
	}
}

func TestHeightAt(t *testing.T) {
	p := testParams()
	m := Island(p)
	side := Side(p.Density, p.Detail)
	centre := m.Vertices[(side/2)*side+side/2]
	if got := HeightAt(m, p, centre.X(), centre.Z()); got != centre.Y() {
		t.Errorf("HeightAt(centre) = %v, want %v", got, centre.Y())
	}
	if got := HeightAt(m, p, 5000, 0); got != -p.Depth {
		t.Errorf("HeightAt(off grid) = %v, want %v", got, -p.Depth)
	}
}
