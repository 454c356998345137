package drawstack

import "github.com/go-gl/mathgl/mgl32"

// Anchor picks the screen edge or corner an element hugs.
type Anchor int

const (
	Center Anchor = iota
	Top
	Bottom
	Left
	Right
	TopLeft
	TopRight
	BottomLeft
	BottomRight
)

// Entry is one slot of a scheme's stack.
type Entry interface {
	Name() string
	Execute()
}

// element is an Entry the layout pass must place.
type element interface {
	Entry
	anchor() Anchor
	size() mgl32.Vec2
	place(UIMetrics)
}

type bound[P any] struct {
	name   string
	node   Node[P]
	params *P
}

// Bind attaches a node to a params value owned by the scheme.
func Bind[P any](name string, n Node[P], p *P) Entry {
	return &bound[P]{name: name, node: n, params: p}
}

func (b *bound[P]) Name() string { return b.name }
func (b *bound[P]) Execute()     { b.node.Execute(b.params) }

type placed[P any, PP Placed[P]] struct {
	name   string
	el     Element[P]
	params PP
	at     Anchor
}

// Place attaches an element whose metrics the layout pass computes from
// its anchor and Size.
func Place[P any, PP Placed[P]](name string, el Element[P], p PP, at Anchor) Entry {
	return &placed[P, PP]{name: name, el: el, params: p, at: at}
}

func (e *placed[P, PP]) Name() string      { return e.name }
func (e *placed[P, PP]) Execute()          { e.el.Execute(e.params) }
func (e *placed[P, PP]) anchor() Anchor    { return e.at }
func (e *placed[P, PP]) size() mgl32.Vec2  { return e.el.Size(e.params) }
func (e *placed[P, PP]) place(m UIMetrics) { e.params.SetMetrics(m) }
