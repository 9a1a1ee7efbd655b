package clock

import "time"

// FixedClock always reports the same instant. Intended for tests that
// need deterministic trial and due-date arithmetic.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At.UTC()
}
