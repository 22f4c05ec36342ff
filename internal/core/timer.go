package core

import "time"

// Throttle rate-limits periodic work such as progress reporting.
type Throttle struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
}

// NewThrottle constructs a Throttle that fires at most once per interval.
// A non-positive interval defaults to one second.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = time.Second
	}
	return &Throttle{interval: interval, now: time.Now}
}

// Interval returns the configured interval.
func (t *Throttle) Interval() time.Duration { return t.interval }

// Ready reports whether the interval has elapsed since the last time Ready
// returned true. The first call always fires.
func (t *Throttle) Ready() bool {
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
