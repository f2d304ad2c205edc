package stopwatch

import "time"

// Clock supplies the current time to a Timer.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now. The monotonic reading it carries keeps
// interval arithmetic correct across wall-clock adjustments.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
