//go:build profile

package profiler

import "testing"

func TestSpeedscopeBalancesScopes(t *testing.T) {
	evs := []event{
		{at: 0, scope: 1}, // close whose open fell off the ring
		{at: 1000, scope: 0, open: true},
		{at: 2000, scope: 1, open: true},
		{at: 5000, scope: 1},
		{at: 9000, scope: 1, open: true},
	}
	doc, err := speedscope(evs, []string{"Frame", "DrawStack.Draw"})
	if err != nil {
		t.Fatal(err)
	}
	got := doc.Profiles[0].Events
	want := []ssEvent{
		{"O", 1, 0},
		{"O", 2, 1},
		{"C", 5, 1},
		{"O", 9, 1},
		{"C", 9, 1},
		{"C", 9, 0},
	}
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], want[i])
		}
	}
	if doc.Profiles[0].EndValue != 9 {
		t.Errorf("EndValue = %d, want 9", doc.Profiles[0].EndValue)
	}
	if len(doc.Shared.Frames) != 2 || doc.Shared.Frames[1].Name != "DrawStack.Draw" {
		t.Errorf("frames = %v", doc.Shared.Frames)
	}
}

func TestSpeedscopeEmpty(t *testing.T) {
	if _, err := speedscope(nil, nil); err == nil {
		t.Error("speedscope(nil) succeeded")
	}
}

func TestRingKeepsNewest(t *testing.T) {
	var r ring
	r.init(3)
	for i := range 5 {
		r.push(event{at: int64(i)})
	}
	got := r.snapshot()
	if len(got) != 3 || got[0].at != 2 || got[2].at != 4 {
		t.Errorf("snapshot = %v, want ats 2..4", got)
	}
}

func TestIntern(t *testing.T) {
	var in interner
	a, b := in.intern("Frame"), in.intern("radar")
	if in.intern("Frame") != a || a == b {
		t.Errorf("ids = %d %d", a, b)
	}
	if got := in.snapshot(); len(got) != 2 || got[b] != "radar" {
		t.Errorf("snapshot = %v", got)
	}
}
