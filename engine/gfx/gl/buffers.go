package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Buffers is one vertex array with its vertex and element buffers.
type Buffers struct {
	VAO, VBO, EBO uint32
	Count         int32 // indices uploaded
}

// Attr describes one float attribute inside an interleaved vertex.
type Attr struct {
	Loc    int32
	Size   int32
	Offset int // floats from the vertex start
}

// NewBuffers allocates the GL objects and sets the attribute layout. Attrs
// whose location is negative (optimised out by the linker) are skipped.
func (g *Graphics) NewBuffers(stride int, attrs ...Attr) Buffers {
	var b Buffers
	gl.GenVertexArrays(1, &b.VAO)
	gl.GenBuffers(1, &b.VBO)
	gl.GenBuffers(1, &b.EBO)

	g.BindVertexArray(b.VAO)
	g.BindArrayBuffer(b.VBO)
	g.BindElementBuffer(b.EBO)
	for _, a := range attrs {
		if a.Loc < 0 {
			continue
		}
		gl.EnableVertexAttribArray(uint32(a.Loc))
		gl.VertexAttribPointer(uint32(a.Loc), a.Size, gl.FLOAT, false, int32(stride*4), gl.PtrOffset(a.Offset*4))
	}
	g.BindVertexArray(0)
	return b
}

// Vertices replaces the vertex data; usage is gl.STATIC_DRAW or
// gl.STREAM_DRAW.
func (g *Graphics) Vertices(b *Buffers, data []float32, usage uint32) {
	if len(data) == 0 {
		return
	}
	g.BindArrayBuffer(b.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), usage)
}

// Indices replaces the element data.
func (g *Graphics) Indices(b *Buffers, idx []uint32, usage uint32) {
	b.Count = int32(len(idx))
	if len(idx) == 0 {
		return
	}
	g.BindVertexArray(b.VAO)
	g.BindElementBuffer(b.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(idx)*4, gl.Ptr(idx), usage)
	g.BindVertexArray(0)
}

// Draw issues the indexed triangles.
func (g *Graphics) Draw(b *Buffers) {
	if b.Count == 0 {
		return
	}
	g.BindVertexArray(b.VAO)
	gl.DrawElements(gl.TRIANGLES, b.Count, gl.UNSIGNED_INT, nil)
	g.BindVertexArray(0)
}

// DeleteBuffers frees the GL objects and zeroes b.
func (g *Graphics) DeleteBuffers(b *Buffers) {
	if b.EBO != 0 {
		gl.DeleteBuffers(1, &b.EBO)
	}
	if b.VBO != 0 {
		gl.DeleteBuffers(1, &b.VBO)
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
	*b = Buffers{}
}

// QuadIndices returns the triangle indices for n quads whose corners are
// stored consecutively in order around the quad.
func QuadIndices(n int) []uint32 {
	idx := make([]uint32, 0, n*6)
	for q := 0; q < n; q++ {
		o := uint32(q * 4)
		idx = append(idx, o, o+1, o+2, o+2, o+3, o)
	}
	return idx
}

// DrawRange issues count indices starting at first.
func (g *Graphics) DrawRange(b *Buffers, first, count int32) {
	if count <= 0 {
		return
	}
	g.BindVertexArray(b.VAO)
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(int(first)*4))
	g.BindVertexArray(0)
}
