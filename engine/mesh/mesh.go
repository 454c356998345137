// Package mesh holds face-grouped triangle meshes. Meshes are loaded once
// and handed to renderers as read-only input.
package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGroup receives faces declared before any group marker.
const DefaultGroup = "default"

// None marks a face attribute that has no index.
const None = -1

var (
	ErrIndexOutOfRange = errors.New("mesh: index out of range")
	ErrMalformed       = errors.New("mesh: malformed line")
)

// Face is one triangle. Normals and TexCoords hold None when the source did
// not specify them.
type Face struct {
	Vertices  [3]int
	Normals   [3]int
	TexCoords [3]int
}

// Tri is a face with only vertex indices.
func Tri(a, b, c int) Face {
	return Face{
		Vertices:  [3]int{a, b, c},
		Normals:   [3]int{None, None, None},
		TexCoords: [3]int{None, None, None},
	}
}

type Mesh struct {
	Vertices  []mgl32.Vec3
	Normals   []mgl32.Vec3
	TexCoords []mgl32.Vec2
	Groups    map[string][]Face
}

func New() *Mesh {
	return &Mesh{Groups: map[string][]Face{}}
}

func (m *Mesh) AddVertex(v mgl32.Vec3) int {
	m.Vertices = append(m.Vertices, v)
	return len(m.Vertices) - 1
}

func (m *Mesh) AddNormal(n mgl32.Vec3) int {
	m.Normals = append(m.Normals, n)
	return len(m.Normals) - 1
}

func (m *Mesh) AddTexCoord(t mgl32.Vec2) int {
	m.TexCoords = append(m.TexCoords, t)
	return len(m.TexCoords) - 1
}

// AddFace appends f to group after checking its indices.
func (m *Mesh) AddFace(group string, f Face) error {
	if err := m.checkFace(f); err != nil {
		return err
	}
	if m.Groups == nil {
		m.Groups = map[string][]Face{}
	}
	m.Groups[group] = append(m.Groups[group], f)
	return nil
}

func (m *Mesh) checkFace(f Face) error {
	for i := 0; i < 3; i++ {
		if err := checkIndex("vertex", f.Vertices[i], len(m.Vertices), false); err != nil {
			return err
		}
		if err := checkIndex("normal", f.Normals[i], len(m.Normals), true); err != nil {
			return err
		}
		if err := checkIndex("texcoord", f.TexCoords[i], len(m.TexCoords), true); err != nil {
			return err
		}
	}
	return nil
}

func checkIndex(kind string, idx, n int, optional bool) error {
	if optional && idx == None {
		return nil
	}
	if idx < 0 || idx >= n {
		return fmt.Errorf("%w: %s %d of %d", ErrIndexOutOfRange, kind, idx, n)
	}
	return nil
}

// Validate checks every face against the attribute arrays.
func (m *Mesh) Validate() error {
	for _, name := range m.GroupNames() {
		for i, f := range m.Groups[name] {
			if err := m.checkFace(f); err != nil {
				return fmt.Errorf("group %q face %d: %w", name, i, err)
			}
		}
	}
	return nil
}

// GroupNames returns group names in sorted order.
func (m *Mesh) GroupNames() []string {
	names := make([]string, 0, len(m.Groups))
	for name := range m.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FaceCount sums faces over all groups.
func (m *Mesh) FaceCount() int {
	n := 0
	for _, fs := range m.Groups {
		n += len(fs)
	}
	return n
}

// FaceCentroid averages the three vertices of a face.
func (m *Mesh) FaceCentroid(f Face) mgl32.Vec3 {
	return m.Vertices[f.Vertices[0]].
		Add(m.Vertices[f.Vertices[1]]).
		Add(m.Vertices[f.Vertices[2]]).
		Mul(1.0 / 3)
}

// AutoNormal replaces the normals with one smoothed normal per vertex, the
// average of the normals of every face using it. Face normal indices become
// the vertex indices.
func (m *Mesh) AutoNormal() {
	sums := make([]mgl32.Vec3, len(m.Vertices))
	for _, name := range m.GroupNames() {
		for _, f := range m.Groups[name] {
			v0, v1, v2 := m.Vertices[f.Vertices[0]], m.Vertices[f.Vertices[1]], m.Vertices[f.Vertices[2]]
			n := v1.Sub(v0).Cross(v2.Sub(v1))
			if l := n.Len(); l > 0 {
				n = n.Mul(1 / l)
			}
			for _, vi := range f.Vertices {
				sums[vi] = sums[vi].Add(n)
			}
		}
	}
	m.Normals = make([]mgl32.Vec3, len(sums))
	for i, s := range sums {
		if l := s.Len(); l > 0 {
			s = s.Mul(1 / l)
		}
		m.Normals[i] = s
	}
	for name, fs := range m.Groups {
		for i := range fs {
			fs[i].Normals = fs[i].Vertices
		}
		m.Groups[name] = fs
	}
}

// AutoTexCoord gives face i of group texture coordinates taken from the
// vertices' X and Y.
func (m *Mesh) AutoTexCoord(group string, i int) {
	f := &m.Groups[group][i]
	for k, vi := range f.Vertices {
		v := m.Vertices[vi]
		f.TexCoords[k] = m.AddTexCoord(mgl32.Vec2{v.X(), v.Y()})
	}
}

// AutoTexCoords fills texture coordinates for every face lacking them.
func (m *Mesh) AutoTexCoords() {
	for _, name := range m.GroupNames() {
		for i, f := range m.Groups[name] {
			if f.TexCoords[0] == None || f.TexCoords[1] == None || f.TexCoords[2] == None {
				m.AutoTexCoord(name, i)
			}
		}
	}
}

// Bounds returns the axis-aligned box around every vertex.
func (m *Mesh) Bounds() (min, max mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			if v[k] < min[k] {
				min[k] = v[k]
			}
			if v[k] > max[k] {
				max[k] = v[k]
			}
		}
	}
	return
}
