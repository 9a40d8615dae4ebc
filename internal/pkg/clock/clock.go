// Package clock abstracts wall-clock time so that due-date arithmetic
// stays deterministic in tests.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns a Clock backed by time.Now.
func System() Clock { return systemClock{} }

// Fixed is a Clock pinned to a single instant. The zero value reports
// the zero time; set T before use.
type Fixed struct {
	T time.Time
}

func (f Fixed) Now() time.Time { return f.T }
