package core

import "testing"

func TestKeyTrapRisingEdge(t *testing.T) {
	in := NewInput()
	trap := in.Trap(KeyC)

	if trap.NewPress() {
		t.Fatal("NewPress() before any key event = true")
	}

	in.Handle(EventKey{Key: KeyC, Down: true})
	if !trap.NewPress() {
		t.Error("first poll after press = false, want true")
	}
	// Held key and OS repeats keep Down true.
	for i := 0; i < 5; i++ {
		in.Handle(EventKey{Key: KeyC, Down: true})
		if trap.NewPress() {
			t.Errorf("poll %d while held = true, want false", i)
		}
	}

	in.Handle(EventKey{Key: KeyC, Down: false})
	if trap.NewPress() {
		t.Error("poll after release = true")
	}
	in.Handle(EventKey{Key: KeyC, Down: true})
	if !trap.NewPress() {
		t.Error("second press = false, want true")
	}
}

func TestKeyTrapsAreIndependent(t *testing.T) {
	in := NewInput()
	a, b := in.Trap(KeyB), in.Trap(KeyB)
	in.Handle(EventKey{Key: KeyB, Down: true})
	if !a.NewPress() || !b.NewPress() {
		t.Error("each trap should see the press once")
	}
}

func TestInputMouse(t *testing.T) {
	in := NewInput()
	in.Handle(EventMouseMove{X: 3, Y: 4})
	if x, y := in.Mouse(); x != 3 || y != 4 {
		t.Errorf("Mouse() = %v,%v, want 3,4", x, y)
	}
}

type recLayer struct {
	name    string
	consume bool
	got     *[]string
}

func (l recLayer) OnAttach(*Engine)          {}
func (l recLayer) OnDetach(*Engine)          {}
func (l recLayer) OnUpdate(*Engine, float64) {}
func (l recLayer) OnEvent(_ *Engine, _ Event) bool {
	*l.got = append(*l.got, l.name)
	return l.consume
}

func TestLayerStackEventOrder(t *testing.T) {
	var got []string
	var ls LayerStack
	ls.Push(recLayer{name: "bottom", got: &got})
	ls.Push(recLayer{name: "middle", consume: true, got: &got})
	ls.Push(recLayer{name: "top", got: &got})

	handled := ls.ForEachReverse(func(l Layer) bool { return l.OnEvent(nil, EventCloseRequested{}) })
	if !handled {
		t.Error("ForEachReverse() = false, want true")
	}
	if len(got) != 2 || got[0] != "top" || got[1] != "middle" {
		t.Errorf("visit order = %v, want [top middle]", got)
	}
	if l, ok := ls.Pop(); !ok || l.(recLayer).name != "top" {
		t.Errorf("Pop() = %v, %v", l, ok)
	}
	if ls.Len() != 2 {
		t.Errorf("Len() = %d, want 2", ls.Len())
	}
}
