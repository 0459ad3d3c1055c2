package sqlite

import "time"

// SetClock pins the repository clock and returns a restore func.
func SetClock(f func() time.Time) func() {
	prev := clock
	clock = f
	return func() { clock = prev }
}
