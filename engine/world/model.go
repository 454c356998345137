// Package world holds the 3D draw nodes. They read the game state and the
// active camera through Graphics and draw depth tested.
package world

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/mesh"
)

// Params is empty; the world nodes read everything from the game state.
type Params struct{}

// Model vertices: position(3) normal(3) texCoord(2).
const modelStride = 8

type span struct {
	first, count int32
}

// interleave flattens the listed groups into one vertex per face corner and
// returns the index span of each group. Missing normals or texture
// coordinates are written as zero.
func interleave(m *mesh.Mesh, groups []string) ([]float32, map[string]span) {
	verts := make([]float32, 0, m.FaceCount()*3*modelStride)
	spans := make(map[string]span, len(groups))
	var n int32
	for _, name := range groups {
		fs := m.Groups[name]
		spans[name] = span{first: n, count: int32(len(fs) * 3)}
		for _, f := range fs {
			for k := 0; k < 3; k++ {
				v := m.Vertices[f.Vertices[k]]
				var nrm mgl32.Vec3
				if f.Normals[k] != mesh.None {
					nrm = m.Normals[f.Normals[k]]
				}
				var uv mgl32.Vec2
				if f.TexCoords[k] != mesh.None {
					uv = m.TexCoords[f.TexCoords[k]]
				}
				verts = append(verts, v.X(), v.Y(), v.Z(), nrm.X(), nrm.Y(), nrm.Z(), uv.X(), uv.Y())
			}
		}
		n += int32(len(fs) * 3)
	}
	return verts, spans
}

// sequence returns the indices 0..n-1.
func sequence(n int) []uint32 {
	idx := make([]uint32, n)
	for i := range idx {
		idx[i] = uint32(i)
	}
	return idx
}

// groupOrigin is the centroid of the first face of a marker group.
func groupOrigin(m *mesh.Mesh, group string) (mgl32.Vec3, error) {
	fs := m.Groups[group]
	if len(fs) == 0 {
		return mgl32.Vec3{}, fmt.Errorf("mesh has no %q group", group)
	}
	return m.FaceCentroid(fs[0]), nil
}

// centerGroup moves every vertex used by group by -origin, each vertex once
// even when faces share it.
func centerGroup(m *mesh.Mesh, group string, origin mgl32.Vec3) {
	moved := make(map[int]bool)
	for _, f := range m.Groups[group] {
		for _, vi := range f.Vertices {
			if moved[vi] {
				continue
			}
			m.Vertices[vi] = m.Vertices[vi].Sub(origin)
			moved[vi] = true
		}
	}
}

// drawable lists the groups of m in sorted order, minus the skipped ones.
func drawable(m *mesh.Mesh, skip ...string) []string {
	var out []string
outer:
	for _, name := range m.GroupNames() {
		for _, s := range skip {
			if name == s {
				continue outer
			}
		}
		out = append(out, name)
	}
	return out
}

// sun is the light direction in world space, pointing towards the light.
var sun = mgl32.Vec4{1, 1, -1, 0}

// eyeLight is the sun direction in eye space for view.
func eyeLight(view mgl32.Mat4) mgl32.Vec3 {
	return view.Mul4x1(sun).Vec3().Normalize()
}

type material struct {
	ambient, diffuse, specular mgl32.Vec3
	shininess                  float32
}

var structure = material{
	ambient:   mgl32.Vec3{0.15, 0.15, 0.15},
	diffuse:   mgl32.Vec3{0.5, 0.5, 0.5},
	specular:  mgl32.Vec3{0.8, 0.8, 0.8},
	shininess: 10,
}

type part struct {
	name    string
	texture uint32
	span
}

// model draws the groups of a mesh with the colorTextureLighting program,
// one texture per group.
type model struct {
	g     *glbackend.Graphics
	prog  *glbackend.Program
	buf   glbackend.Buffers
	parts []part

	uMV, uP, uTexture, uLight             int32
	uAmbient, uDiffuse, uSpecular, uShine int32
}

// newModel uploads the listed groups of m. texture maps a group to the
// name of its texture. Normals and texture coordinates are generated when
// the mesh lacks them.
func newModel(g *glbackend.Graphics, m *mesh.Mesh, groups []string, texture func(group string) string) (*model, error) {
	prog, err := g.Program("colorTextureLighting")
	if err != nil {
		return nil, err
	}
	if len(m.Normals) == 0 {
		m.AutoNormal()
	}
	m.AutoTexCoords()

	md := &model{
		g:         g,
		prog:      prog,
		uMV:       prog.Uniform("mvMatrix"),
		uP:        prog.Uniform("pMatrix"),
		uTexture:  prog.Uniform("texture0"),
		uLight:    prog.Uniform("lightPosition"),
		uAmbient:  prog.Uniform("ambientColor"),
		uDiffuse:  prog.Uniform("diffuseColor"),
		uSpecular: prog.Uniform("specularColor"),
		uShine:    prog.Uniform("shininess"),
	}
	verts, spans := interleave(m, groups)
	for _, name := range groups {
		id, err := g.TextureID(texture(name))
		if err != nil {
			return nil, fmt.Errorf("group %q: %w", name, err)
		}
		md.parts = append(md.parts, part{name: name, texture: id, span: spans[name]})
	}

	md.buf = g.NewBuffers(modelStride,
		glbackend.Attr{Loc: prog.Attrib("position"), Size: 3, Offset: 0},
		glbackend.Attr{Loc: prog.Attrib("normal"), Size: 3, Offset: 3},
		glbackend.Attr{Loc: prog.Attrib("texCoord"), Size: 2, Offset: 6},
	)
	g.Vertices(&md.buf, verts, gl.STATIC_DRAW)
	g.Indices(&md.buf, sequence(len(verts)/modelStride), gl.STATIC_DRAW)
	return md, nil
}

// begin switches to 3D state and sets the per-frame uniforms.
func (md *model) begin(view, proj mgl32.Mat4) (restore func()) {
	restore = md.g.Begin3D()
	md.g.UseProgram(md.prog)
	glbackend.SetMat4(md.uP, proj)
	glbackend.SetInt(md.uTexture, 0)
	glbackend.SetVec3(md.uLight, eyeLight(view))
	glbackend.SetVec3(md.uAmbient, structure.ambient)
	glbackend.SetVec3(md.uDiffuse, structure.diffuse)
	glbackend.SetVec3(md.uSpecular, structure.specular)
	glbackend.SetFloat(md.uShine, structure.shininess)
	return restore
}

func (md *model) draw(p part, mv mgl32.Mat4) {
	glbackend.SetMat4(md.uMV, mv)
	md.g.BindTexture(0, p.texture)
	md.g.DrawRange(&md.buf, p.first, p.count)
}

// drawAll draws every part with the same model-view matrix.
func (md *model) drawAll(mv mgl32.Mat4) {
	for _, p := range md.parts {
		md.draw(p, mv)
	}
}

// Close frees the buffers; textures belong to Graphics.
func (md *model) Close() error {
	md.g.DeleteBuffers(&md.buf)
	return nil
}
