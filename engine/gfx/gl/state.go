package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
)

// Bindings mirrors the GL objects last bound through Graphics.
type Bindings struct {
	Program       uint32
	VertexArray   uint32
	ArrayBuffer   uint32
	ElementBuffer uint32
	TextureUnit   uint32
	Texture       uint32
}

func (g *Graphics) Bindings() Bindings { return g.bindings }

func (g *Graphics) UseProgram(p *Program) {
	g.bindings.Program = p.ID
	gl.UseProgram(p.ID)
}

func (g *Graphics) BindVertexArray(id uint32) {
	g.bindings.VertexArray = id
	gl.BindVertexArray(id)
}

func (g *Graphics) BindArrayBuffer(id uint32) {
	g.bindings.ArrayBuffer = id
	gl.BindBuffer(gl.ARRAY_BUFFER, id)
}

func (g *Graphics) BindElementBuffer(id uint32) {
	g.bindings.ElementBuffer = id
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, id)
}

// BindTexture binds a 2D texture to texture unit n.
func (g *Graphics) BindTexture(unit, id uint32) {
	g.bindings.TextureUnit, g.bindings.Texture = unit, id
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

var toggled = [...]uint32{gl.BLEND, gl.DEPTH_TEST, gl.CULL_FACE, gl.SCISSOR_TEST, gl.MULTISAMPLE}

// saveCaps records the toggled capabilities and returns their restorer.
func saveCaps() func() {
	var on [len(toggled)]bool
	for i, c := range toggled {
		on[i] = gl.IsEnabled(c)
	}
	return func() {
		for i, c := range toggled {
			if on[i] {
				gl.Enable(c)
			} else {
				gl.Disable(c)
			}
		}
	}
}

// Begin2D switches to overlay state: alpha blending, no depth test, no
// culling, no multisampling. Call the returned func to restore.
func (g *Graphics) Begin2D() (restore func()) {
	restore = saveCaps()
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	if g.multisample {
		gl.Disable(gl.MULTISAMPLE)
	}
	return restore
}

// Begin3D switches to depth-tested, back-face culled drawing.
func (g *Graphics) Begin3D() (restore func()) {
	restore = saveCaps()
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if g.multisample {
		gl.Enable(gl.MULTISAMPLE)
	}
	return restore
}

// Scissor limits drawing to an NDC rectangle given by its centre and size.
func (g *Graphics) Scissor(center, size mgl32.Vec2) {
	x, y, w, h := g.ScissorBox(center, size)
	gl.Enable(gl.SCISSOR_TEST)
	gl.Scissor(x, y, w, h)
}

// ScissorBox converts an NDC rectangle to window pixels.
func (g *Graphics) ScissorBox(center, size mgl32.Vec2) (x, y, w, h int32) {
	fw, fh := float32(g.width), float32(g.height)
	x = int32((center.X() - size.X()/2 + 1) / 2 * fw)
	y = int32((center.Y() - size.Y()/2 + 1) / 2 * fh)
	w = int32(size.X() / 2 * fw)
	h = int32(size.Y() / 2 * fh)
	return
}

func SetMat4(loc int32, m mgl32.Mat4)    { gl.UniformMatrix4fv(loc, 1, false, &m[0]) }
func SetColor(loc int32, c colors.Color) { gl.Uniform4f(loc, c[0], c[1], c[2], c[3]) }
func SetVec2(loc int32, v mgl32.Vec2)    { gl.Uniform2f(loc, v[0], v[1]) }
func SetVec3(loc int32, v mgl32.Vec3)    { gl.Uniform3f(loc, v[0], v[1], v[2]) }
func SetFloat(loc int32, f float32)      { gl.Uniform1f(loc, f) }
func SetInt(loc int32, i int32)          { gl.Uniform1i(loc, i) }

// SetSamplers points consecutive sampler array elements at texture units
// 0..n-1.
func SetSamplers(loc int32, n int) {
	units := make([]int32, n)
	for i := range units {
		units[i] = int32(i)
	}
	gl.Uniform1iv(loc, int32(n), &units[0])
}
