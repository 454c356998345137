package scratch

import "testing"

func TestBuilder(t *testing.T) {
	Init(64)
	Reset()
	got := F().S("score ").I(42).C(' ').F64(3.14159, 2).View()
	if want := "score 42 3.14"; got != want {
		t.Errorf("View() = %q, want %q", got, want)
	}

	second := F().Pad(3, '-').String()
	if second != "---" {
		t.Errorf("String() = %q, want %q", second, "---")
	}
	// an earlier view stays intact while capacity suffices
	if got != "score 42 3.14" {
		t.Errorf("first view changed to %q", got)
	}
	if Len() != len("score 42 3.14---") {
		t.Errorf("Len() = %d", Len())
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{9500, "0:09"},
		{61000, "1:01"},
		{600000, "10:00"},
	}
	Init(32)
	for _, tt := range tests {
		Reset()
		if got := F().Clock(tt.ms).String(); got != tt.want {
			t.Errorf("Clock(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}

func TestResetKeepsCapacity(t *testing.T) {
	Init(16)
	F().S("0123456789")
	Reset()
	if Len() != 0 || Cap() != 16 {
		t.Errorf("after Reset len=%d cap=%d, want 0 and 16", Len(), Cap())
	}
	if got := ViewFrom(Mark()); got != "" {
		t.Errorf("empty view = %q", got)
	}
}
