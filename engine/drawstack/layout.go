package drawstack

import "github.com/go-gl/mathgl/mgl32"

// layout is the layout authority: it places every element of one stack
// for a w×h pixel viewport. Elements sharing an edge anchor stack inwards
// in stack order, separated by marginPx; Center elements form a column
// centred on the screen.
func layout(elems []element, w, h int, marginPx float32) {
	if w < 1 || h < 1 {
		return
	}
	mx, my := marginPx*2/float32(w), marginPx*2/float32(h)
	used := map[Anchor]float32{}

	var column []element
	var sizes []mgl32.Vec2
	var columnH float32

	for _, e := range elems {
		s := e.size()
		at := e.anchor()
		u := used[at]
		var pos mgl32.Vec2
		switch at {
		case Center:
			if len(column) > 0 {
				columnH += my
			}
			column = append(column, e)
			sizes = append(sizes, s)
			columnH += s.Y()
			continue
		case Top:
			pos = mgl32.Vec2{0, 1 - my - u - s.Y()/2}
		case Bottom:
			pos = mgl32.Vec2{0, -1 + my + u + s.Y()/2}
		case Left:
			pos = mgl32.Vec2{-1 + mx + u + s.X()/2, 0}
		case Right:
			pos = mgl32.Vec2{1 - mx - u - s.X()/2, 0}
		case TopLeft:
			pos = mgl32.Vec2{-1 + mx + s.X()/2, 1 - my - u - s.Y()/2}
		case TopRight:
			pos = mgl32.Vec2{1 - mx - s.X()/2, 1 - my - u - s.Y()/2}
		case BottomLeft:
			pos = mgl32.Vec2{-1 + mx + s.X()/2, -1 + my + u + s.Y()/2}
		case BottomRight:
			pos = mgl32.Vec2{1 - mx - s.X()/2, -1 + my + u + s.Y()/2}
		}
		if at == Left || at == Right {
			used[at] = u + s.X() + mx
		} else {
			used[at] = u + s.Y() + my
		}
		e.place(UIMetrics{Position: pos, Size: s})
	}

	top := columnH / 2
	for i, e := range column {
		s := sizes[i]
		e.place(UIMetrics{Position: mgl32.Vec2{0, top - s.Y()/2}, Size: s})
		top -= s.Y() + my
	}
}
