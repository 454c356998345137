package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Projection holds the tunables behind the global projection matrices.
type Projection struct {
	FOV           float32 // horizontal half-angle in degrees
	BinocularsFOV float32
	Near, Far     float32
}

// Matrices are rebuilt on every resize.
type Matrices struct {
	Identity    mgl32.Mat4
	Ortho       mgl32.Mat4 // UI space: x scaled by height/width
	Perspective mgl32.Mat4
	Binoculars  mgl32.Mat4
}

func (p Projection) Matrices(w, h int) Matrices {
	aspect := float32(1)
	if h > 0 {
		aspect = float32(w) / float32(h)
	}
	return Matrices{
		Identity:    mgl32.Ident4(),
		Ortho:       UIOrtho(w, h),
		Perspective: Perspective(p.FOV, aspect, p.Near, p.Far),
		Binoculars:  Perspective(p.BinocularsFOV, aspect, p.Near, p.Far),
	}
}

// Perspective builds a projection whose x scale is 1/tan(fov) and y scale
// aspect/tan(fov), so fov spans the horizontal half-angle. The camera looks
// down -Z; -near maps to NDC -1 and -far to +1.
func Perspective(fovDeg, aspect, near, far float32) mgl32.Mat4 {
	t := float32(math.Tan(float64(mgl32.DegToRad(fovDeg))))
	var m mgl32.Mat4
	m[0] = 1 / t
	m[5] = aspect / t
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -2 * far * near / (far - near)
	return m
}

// UIOrtho squeezes x by h/w so a unit in x and y covers the same pixels.
func UIOrtho(w, h int) mgl32.Mat4 {
	m := mgl32.Ident4()
	if w > 0 {
		m[0] = float32(h) / float32(w)
	}
	return m
}
