package clock

import "time"

// Clock reports the current time.
//
// The engine never reads time directly; callers inject a Clock so that
// countdowns can be tested deterministically.
type Clock interface {
	Now() time.Time
}

// Real is a Clock backed by time.Now.
type Real struct{}

// Now returns the current wall-clock time.
func (Real) Now() time.Time {
	return time.Now()
}
