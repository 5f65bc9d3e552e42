package timer

import "time"

// Clock supplies the engine's notion of "now". Values returned by the
// system clock carry Go's monotonic reading, so durations computed with
// time.Sub are immune to wall-clock adjustment.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real monotonic clock.
func SystemClock() Clock { return systemClock{} }
