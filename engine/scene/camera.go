package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/game"
)

var up = mgl32.Vec3{0, 1, 0}

// Camera produces a view matrix from the game state.
type Camera interface {
	Update(s *game.State, dt float32)
	View() mgl32.Mat4
	Eye() mgl32.Vec3
}

// heading turns a compass angle and elevation (degrees) into a unit vector;
// 0° points along +X and 90° along +Z.
func heading(rotation, tilt float32) mgl32.Vec3 {
	r := float64(mgl32.DegToRad(rotation))
	t := float64(mgl32.DegToRad(tilt))
	return mgl32.Vec3{
		float32(math.Cos(t) * math.Cos(r)),
		float32(math.Sin(t)),
		float32(math.Cos(t) * math.Sin(r)),
	}
}

// TowerCamera looks out of the fortress turret.
type TowerCamera struct {
	// Origin is the camera mount relative to the fortress position.
	Origin mgl32.Vec3
	eye    mgl32.Vec3
	view   mgl32.Mat4
}

func (c *TowerCamera) Update(s *game.State, _ float32) {
	c.eye = s.Fortress.Position.Add(c.Origin)
	dir := heading(s.Fortress.Rotation, s.Fortress.Tilt)
	c.view = mgl32.LookAtV(c.eye, c.eye.Add(dir), up)
}

func (c *TowerCamera) View() mgl32.Mat4 { return c.view }
func (c *TowerCamera) Eye() mgl32.Vec3  { return c.eye }

// OrbitCamera circles the fortress at Distance. Yaw and Pitch are degrees.
type OrbitCamera struct {
	Yaw, Pitch float32
	Distance   float32
	MinDist    float32
	MaxDist    float32
	eye        mgl32.Vec3
	view       mgl32.Mat4
}

func NewOrbitCamera(distance float32) *OrbitCamera {
	return &OrbitCamera{Pitch: 20, Distance: distance, MinDist: 50, MaxDist: distance * 4}
}

func (c *OrbitCamera) Update(s *game.State, _ float32) {
	c.Pitch = mgl32.Clamp(c.Pitch, -5, 85)
	c.Distance = mgl32.Clamp(c.Distance, c.MinDist, c.MaxDist)
	target := s.Fortress.Position
	c.eye = target.Add(heading(c.Yaw, c.Pitch).Mul(c.Distance))
	c.view = mgl32.LookAtV(c.eye, target, up)
}

func (c *OrbitCamera) View() mgl32.Mat4 { return c.view }
func (c *OrbitCamera) Eye() mgl32.Vec3  { return c.eye }

// WorldViewCamera slowly circles the whole island from high above.
type WorldViewCamera struct {
	Radius, Height float32
	Speed          float32 // degrees per second
	angle          float32
	eye            mgl32.Vec3
	view           mgl32.Mat4
}

func (c *WorldViewCamera) Update(_ *game.State, dt float32) {
	c.angle = float32(math.Mod(float64(c.angle+c.Speed*dt), 360))
	h := heading(c.angle, 0)
	c.eye = mgl32.Vec3{h.X() * c.Radius, c.Height, h.Z() * c.Radius}
	c.view = mgl32.LookAtV(c.eye, mgl32.Vec3{}, up)
}

func (c *WorldViewCamera) View() mgl32.Mat4 { return c.view }
func (c *WorldViewCamera) Eye() mgl32.Vec3  { return c.eye }
