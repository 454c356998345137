// Package drawstack composes draw nodes into ordered, scheme-selected
// stacks and lays out their screen-space elements.
package drawstack

import "github.com/go-gl/mathgl/mgl32"

// UIMetrics is an element's centre and extent in NDC.
type UIMetrics struct {
	Position mgl32.Vec2
	Size     mgl32.Vec2
}

// Node draws from a typed parameter value it borrows for the call.
type Node[P any] interface {
	Execute(p *P)
}

// Element is a Node that reserves screen space. Size must not touch GPU
// state.
type Element[P any] interface {
	Node[P]
	Size(p *P) mgl32.Vec2
}

// Placement is embedded by parameter structs of laid-out elements; the
// layout pass writes into it before Execute.
type Placement struct {
	Metrics UIMetrics
}

func (pl *Placement) SetMetrics(m UIMetrics) { pl.Metrics = m }

// Placed is the pointer constraint for laid-out parameter structs.
type Placed[P any] interface {
	*P
	SetMetrics(UIMetrics)
}
