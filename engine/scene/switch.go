package scene

import "github.com/hubastard/bastion/engine/game"

type Mode int

const (
	ModeTower Mode = iota
	ModeFirstPerson
	ModeWorldView
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeTower:
		return "tower"
	case ModeFirstPerson:
		return "first-person"
	case ModeWorldView:
		return "world-view"
	}
	return "unknown"
}

// Trigger fires once per fresh key press.
type Trigger interface{ NewPress() bool }

// CameraSwitch cycles tower -> first-person -> world-view -> tower each
// time its trigger fires.
type CameraSwitch struct {
	mode    Mode
	cameras [modeCount]Camera
	trigger Trigger
}

func NewCameraSwitch(tower, firstPerson, worldView Camera, trigger Trigger) *CameraSwitch {
	return &CameraSwitch{
		cameras: [modeCount]Camera{tower, firstPerson, worldView},
		trigger: trigger,
	}
}

// Poll advances the mode on a fresh press and reports whether it did.
func (s *CameraSwitch) Poll() bool {
	if s.trigger == nil || !s.trigger.NewPress() {
		return false
	}
	s.Next()
	return true
}

func (s *CameraSwitch) Next()          { s.mode = (s.mode + 1) % modeCount }
func (s *CameraSwitch) Mode() Mode     { return s.mode }
func (s *CameraSwitch) Active() Camera { return s.cameras[s.mode] }

// Update refreshes every camera so switching never shows a stale view.
func (s *CameraSwitch) Update(st *game.State, dt float32) {
	for _, c := range s.cameras {
		if c != nil {
			c.Update(st, dt)
		}
	}
}
