package core

type Input struct {
	keys           map[Key]bool
	mouseX, mouseY float64
}

func NewInput() *Input { return &Input{keys: map[Key]bool{}} }

func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.keys[e.Key] = e.Down
	case EventMouseMove:
		in.mouseX, in.mouseY = e.X, e.Y
	}
}

func (in *Input) IsKeyDown(k Key) bool      { return in.keys[k] }
func (in *Input) Mouse() (float64, float64) { return in.mouseX, in.mouseY }

// Trap returns a KeyTrap watching k.
func (in *Input) Trap(k Key) *KeyTrap { return &KeyTrap{in: in, key: k} }

// KeyTrap fires once per physical press: NewPress is true only on the first
// poll that sees the key down after it was up. Held keys and OS repeats do
// not fire again.
type KeyTrap struct {
	in   *Input
	key  Key
	held bool
}

func (t *KeyTrap) NewPress() bool {
	down := t.in.IsKeyDown(t.key)
	fresh := down && !t.held
	t.held = down
	return fresh
}
