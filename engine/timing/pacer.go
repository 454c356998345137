// Package timing paces the main loop with an adaptive sleep estimate.
package timing

import "time"

// Pacer corrects a running sleep estimate towards an ideal tick interval.
// It is advisory: callers sleep for whatever SleepTime returns.
type Pacer struct {
	now   func() time.Time
	last  time.Time
	sleep float64 // microseconds
}

// NewPacer starts the clock now. A nil clock uses time.Now.
func NewPacer(clock func() time.Time) *Pacer {
	if clock == nil {
		clock = time.Now
	}
	return &Pacer{now: clock, last: clock(), sleep: 1}
}

// SleepTime measures the gap since the previous call and returns the
// corrected sleep duration. A gap shorter than half the ideal keeps the
// previous estimate; otherwise the estimate is scaled by ideal/gap.
func (p *Pacer) SleepTime(ideal time.Duration) time.Duration {
	now := p.now()
	diff := now.Sub(p.last).Microseconds()
	idealUS := ideal.Microseconds()

	switch {
	case diff == 0:
		p.sleep = float64(idealUS)
	case diff < idealUS/2:
		p.last = now
		return p.Estimate()
	default:
		p.sleep *= float64(idealUS) / float64(diff)
	}
	p.last = now
	return p.Estimate()
}

// Estimate is the current sleep estimate without measuring.
func (p *Pacer) Estimate() time.Duration {
	return time.Duration(p.sleep) * time.Microsecond
}
