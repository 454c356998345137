package scene

import "github.com/hubastard/bastion/engine/core"

// OrbitController: A/D yaw, W/S pitch, arrows zoom.
type OrbitController struct {
	TurnSpeed float32 // degrees per second
	ZoomSpeed float32 // world units per second
	Camera    *OrbitCamera
}

func NewOrbitController(cam *OrbitCamera) *OrbitController {
	return &OrbitController{
		TurnSpeed: 60,
		ZoomSpeed: 400,
		Camera:    cam,
	}
}

func (cc *OrbitController) Update(in *core.Input, dt float32) {
	turn := cc.TurnSpeed * dt
	zoom := cc.ZoomSpeed * dt

	if in.IsKeyDown(core.KeyA) {
		cc.Camera.Yaw -= turn
	}
	if in.IsKeyDown(core.KeyD) {
		cc.Camera.Yaw += turn
	}
	if in.IsKeyDown(core.KeyW) {
		cc.Camera.Pitch += turn
	}
	if in.IsKeyDown(core.KeyS) {
		cc.Camera.Pitch -= turn
	}
	if in.IsKeyDown(core.KeyUp) {
		cc.Camera.Distance -= zoom
	}
	if in.IsKeyDown(core.KeyDown) {
		cc.Camera.Distance += zoom
	}
}

// Scroll zooms by whole wheel notches.
func (cc *OrbitController) Scroll(yoff float64) {
	cc.Camera.Distance -= float32(yoff) * cc.ZoomSpeed * 0.1
}
