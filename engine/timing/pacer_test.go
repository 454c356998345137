package timing

import (
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestPacerInitialEstimate(t *testing.T) {
	c := &fakeClock{t: time.Unix(0, 0)}
	p := NewPacer(c.now)
	if got := p.Estimate(); got != time.Microsecond {
		t.Errorf("Estimate() = %v, want 1µs", got)
	}
}

func TestPacerZeroGapResetsToIdeal(t *testing.T) {
	c := &fakeClock{t: time.Unix(0, 0)}
	p := NewPacer(c.now)
	if got := p.SleepTime(10 * time.Millisecond); got != 10*time.Millisecond {
		t.Errorf("SleepTime() = %v, want 10ms", got)
	}
}

func TestPacerSequence(t *testing.T) {
	const ideal = 10 * time.Millisecond
	c := &fakeClock{t: time.Unix(0, 0)}
	p := NewPacer(c.now)
	p.SleepTime(ideal) // zero gap: estimate = ideal

	steps := []struct {
		gap  time.Duration
		want time.Duration
	}{
		// Late by 2x halves the estimate.
		{20 * time.Millisecond, 5 * time.Millisecond},
		// Early by more than half keeps it.
		{4 * time.Millisecond, 5 * time.Millisecond},
		// Exactly half the ideal is rescaled: 5ms * 10/5.
		{5 * time.Millisecond, 10 * time.Millisecond},
		// On time keeps the value through a rescale by 1.
		{10 * time.Millisecond, 10 * time.Millisecond},
		// Slightly early, still rescaled: 10ms * 10/8.
		{8 * time.Millisecond, 12500 * time.Microsecond},
	}
	for i, s := range steps {
		c.advance(s.gap)
		if got := p.SleepTime(ideal); got != s.want {
			t.Errorf("step %d: SleepTime() after %v = %v, want %v", i, s.gap, got, s.want)
		}
	}
}

func TestPacerEarlyGapUpdatesLast(t *testing.T) {
	const ideal = 10 * time.Millisecond
	c := &fakeClock{t: time.Unix(0, 0)}
	p := NewPacer(c.now)
	p.SleepTime(ideal)

	c.advance(2 * time.Millisecond)
	p.SleepTime(ideal)
	// The next gap is measured from the early call, not the one before it.
	c.advance(20 * time.Millisecond)
	if got := p.SleepTime(ideal); got != 5*time.Millisecond {
		t.Errorf("SleepTime() = %v, want 5ms", got)
	}
}
