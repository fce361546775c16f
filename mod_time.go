package gerkit

import (
	"time"
)

// Time is the frame clock, advanced once per tick.
type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

func (t *Time) advance(now time.Time) {
	if !t.Time.IsZero() {
		t.Dt = now.Sub(t.Time)
	}
	t.Time = now
	t.Frame++
}
