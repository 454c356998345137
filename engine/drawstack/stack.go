package drawstack

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hubastard/bastion/engine/logging"
	"github.com/hubastard/bastion/engine/profiler"
)

var ErrUnknownScheme = errors.New("drawstack: unknown scheme")

// Scheme is a named, ordered list of entries drawn front to back.
type Scheme struct {
	Name    string
	Entries []Entry
}

// Stack holds every scheme and walks the active one each frame.
type Stack struct {
	schemes  map[string]*Scheme
	active   *Scheme
	marginPx float32
}

func NewStack(marginPx float32) *Stack {
	return &Stack{schemes: map[string]*Scheme{}, marginPx: marginPx}
}

// Add registers sc, replacing any scheme of the same name.
func (s *Stack) Add(sc *Scheme) {
	s.schemes[sc.Name] = sc
	if s.active != nil && s.active.Name == sc.Name {
		s.active = sc
	}
}

// Activate swaps the whole active stack for the named scheme.
func (s *Stack) Activate(name string) error {
	sc, ok := s.schemes[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownScheme, name)
	}
	if s.active != sc {
		logging.Verbose("scheme activated", slog.String("scheme", name))
	}
	s.active = sc
	return nil
}

// Active names the current scheme, "" before the first Activate.
func (s *Stack) Active() string {
	if s.active == nil {
		return ""
	}
	return s.active.Name
}

// Layout computes metrics for every placed element of the active scheme.
func (s *Stack) Layout(w, h int) {
	if s.active == nil {
		return
	}
	var elems []element
	for _, e := range s.active.Entries {
		if el, ok := e.(element); ok {
			elems = append(elems, el)
		}
	}
	layout(elems, w, h, s.marginPx)
}

// Draw executes the active entries in order.
func (s *Stack) Draw() {
	defer profiler.Start("DrawStack.Draw")()
	if s.active == nil {
		return
	}
	for _, e := range s.active.Entries {
		end := profiler.Start(e.Name())
		e.Execute()
		end()
	}
}

// Frame lays out then draws the active scheme.
func (s *Stack) Frame(w, h int) {
	s.Layout(w, h)
	s.Draw()
}
