package vm

import "time"

// Clock abstracts wall-clock time so tests can supply a deterministic
// source instead of depending on real elapsed time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real-time clock used by default.
func SystemClock() Clock { return systemClock{} }
