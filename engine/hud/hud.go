// Package hud holds the screen-space draw nodes: container chrome, circles,
// gauges, text, the cursor and the radar. Positions and sizes are in NDC
// unless a field name says pixels.
package hud

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/hubastard/bastion/engine/colors"
	"github.com/hubastard/bastion/engine/settings"
)

// Chrome is the rounded frame shared by every container-backed element.
type Chrome struct {
	Padding  float32 // pixels, also the corner radius
	Border   float32 // pixels
	SoftEdge float32 // pixels

	InsideColor  colors.Color
	BorderColor  colors.Color
	OutsideColor colors.Color
}

// DefaultChrome reads the hudContainer* and hudGaugePadding settings.
func DefaultChrome(s *settings.Store) Chrome {
	return Chrome{
		Padding:      s.Float("hudGaugePadding"),
		Border:       s.Float("hudContainerBorder"),
		SoftEdge:     s.Float("hudContainerSoftEdge"),
		InsideColor:  s.Color("hudContainerInsideColor"),
		BorderColor:  s.Color("hudContainerBorderColor"),
		OutsideColor: s.Color("hudContainerOutsideColor"),
	}
}

// pixelSize converts a square extent of px vertical pixels into NDC,
// keeping it square on screen.
func pixelSize(px float32, h int, aspect float32) mgl32.Vec2 {
	if h == 0 {
		return mgl32.Vec2{}
	}
	y := px * 2 / float32(h)
	return mgl32.Vec2{y / aspect, y}
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
