package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Parse reads the Wavefront subset the game ships with: v, vt, vn, g and
// triangle or quad f lines in the v, v/vt, v//vn and v/vt/vn forms. Indices
// are 1-based in the file. Quads become (0,1,2) and (2,3,0). Any other
// directive is skipped.
func Parse(r io.Reader) (*Mesh, error) {
	m := New()
	group := DefaultGroup
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		var err error
		switch fields[0] {
		case "g":
			if len(fields) > 1 {
				group = strings.Join(fields[1:], " ")
			} else {
				group = DefaultGroup
			}
		case "v", "vn":
			var v []float32
			if v, err = floats(fields[1:], 3); err == nil {
				if fields[0] == "v" {
					m.AddVertex(mgl32.Vec3{v[0], v[1], v[2]})
				} else {
					m.AddNormal(mgl32.Vec3{v[0], v[1], v[2]})
				}
			}
		case "vt":
			var v []float32
			if v, err = floats(fields[1:], 2); err == nil {
				m.AddTexCoord(mgl32.Vec2{v[0], v[1]})
			}
		case "f":
			err = m.parseFace(group, fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

func floats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("%w: need %d components, got %d", ErrMalformed, n, len(fields))
	}
	out := make([]float32, n)
	for i := range out {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}

type corner struct{ v, vt, vn int }

func (m *Mesh) parseFace(group string, fields []string) error {
	if len(fields) != 3 && len(fields) != 4 {
		return fmt.Errorf("%w: face with %d corners", ErrMalformed, len(fields))
	}
	var cs [4]corner
	for i, f := range fields {
		c, err := parseCorner(f)
		if err != nil {
			return err
		}
		cs[i] = c
	}
	face := func(a, b, c int) Face {
		return Face{
			Vertices:  [3]int{cs[a].v, cs[b].v, cs[c].v},
			Normals:   [3]int{cs[a].vn, cs[b].vn, cs[c].vn},
			TexCoords: [3]int{cs[a].vt, cs[b].vt, cs[c].vt},
		}
	}
	if err := m.AddFace(group, face(0, 1, 2)); err != nil {
		return err
	}
	if len(fields) == 4 {
		return m.AddFace(group, face(2, 3, 0))
	}
	return nil
}

func parseCorner(s string) (corner, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return corner{}, fmt.Errorf("%w: face corner %q", ErrMalformed, s)
	}
	c := corner{v: None, vt: None, vn: None}
	dst := []*int{&c.v, &c.vt, &c.vn}
	for i, p := range parts {
		if p == "" {
			if i == 0 {
				return corner{}, fmt.Errorf("%w: face corner %q has no vertex", ErrMalformed, s)
			}
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return corner{}, fmt.Errorf("%w: face corner %q: %v", ErrMalformed, s, err)
		}
		if n < 1 {
			return corner{}, fmt.Errorf("%w: face corner %q", ErrIndexOutOfRange, s)
		}
		*dst[i] = n - 1
	}
	return c, nil
}
