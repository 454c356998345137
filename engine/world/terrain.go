package world

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
	glbackend "github.com/hubastard/bastion/engine/gfx/gl"
	"github.com/hubastard/bastion/engine/mesh"
)

// terrainTextures are blended by height: grass on the slopes, rock at the
// top and soil by the water. The noise texture breaks up the transitions.
var terrainTextures = [3]string{"terrain/green", "terrain/gray", "terrain/brown"}

var sunColor = mgl32.Vec3{1, 0.97, 0.9}

// Terrain draws the island surface. Buffers are rebuilt whenever the game
// state carries a new terrain version.
type Terrain struct {
	g     *glbackend.Graphics
	state *game.State
	prog  *glbackend.Program
	buf   glbackend.Buffers

	textures [3]uint32
	loaded   bool
	version  int

	uMVP, uTextures, uLight, uLightColor int32
	uDepth, uHeight, uRepeat             int32
}

func NewTerrain(g *glbackend.Graphics, st *game.State) (*Terrain, error) {
	prog, err := g.Program("terrain")
	if err != nil {
		return nil, err
	}
	t := &Terrain{
		g:           g,
		state:       st,
		prog:        prog,
		uMVP:        prog.Uniform("mvpMatrix"),
		uTextures:   prog.Uniform("textures"),
		uLight:      prog.Uniform("lightPosition"),
		uLightColor: prog.Uniform("lightColor"),
		uDepth:      prog.Uniform("depth"),
		uHeight:     prog.Uniform("height"),
		uRepeat:     prog.Uniform("repeat"),
	}
	for i, name := range terrainTextures {
		if t.textures[i], err = g.TextureID(name); err != nil {
			return nil, err
		}
	}
	t.buf = g.NewBuffers(modelStride,
		glbackend.Attr{Loc: prog.Attrib("position"), Size: 3, Offset: 0},
		glbackend.Attr{Loc: prog.Attrib("normal"), Size: 3, Offset: 3},
		glbackend.Attr{Loc: prog.Attrib("texCoord"), Size: 2, Offset: 6},
	)
	return t, nil
}

// ReloadState uploads the island mesh.
func (t *Terrain) ReloadState(island *mesh.Mesh) {
	verts, _ := interleave(island, island.GroupNames())
	t.g.Vertices(&t.buf, verts, gl.STATIC_DRAW)
	t.g.Indices(&t.buf, sequence(len(verts)/modelStride), gl.STATIC_DRAW)
	t.loaded = true
}

func (t *Terrain) Execute(*Params) {
	st := t.state
	if st.Terrain == nil {
		return
	}
	if !t.loaded || st.TerrainVersion != t.version {
		t.ReloadState(st.Terrain)
		t.version = st.TerrainVersion
	}
	s := t.g.Settings()

	restore := t.g.Begin3D()
	defer restore()
	t.g.UseProgram(t.prog)
	glbackend.SetMat4(t.uMVP, t.g.Perspective(st.Binoculars).Mul4(t.g.View()))
	glbackend.SetSamplers(t.uTextures, len(t.textures)+1)
	glbackend.SetVec3(t.uLight, sun.Vec3().Normalize())
	glbackend.SetVec3(t.uLightColor, sunColor)
	glbackend.SetFloat(t.uDepth, s.Float("terrainDepth"))
	glbackend.SetFloat(t.uHeight, s.Float("islandMaximumHeight"))
	glbackend.SetFloat(t.uRepeat, s.Float("terrainTextureRepeat"))

	for i, id := range t.textures {
		t.g.BindTexture(uint32(i), id)
	}
	t.g.BindTexture(uint32(len(t.textures)), t.g.FourDepthNoiseTextureID())
	t.g.Draw(&t.buf)
}

func (t *Terrain) Close() error {
	t.g.DeleteBuffers(&t.buf)
	return nil
}
