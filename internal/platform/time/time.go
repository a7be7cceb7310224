// Package time contains clock helpers
package time

import "time"

// Clock returns the current time, injectable in tests
type Clock func() time.Time

// System is the wall clock
func System() time.Time { return time.Now() }

// Or returns c, or System when c is nil
func (c Clock) Or() Clock {
	if c == nil {
		return System
	}
	return c
}

// UnixSince returns the Unix second that lies d before now
func UnixSince(now time.Time, d time.Duration) int64 {
	return now.Add(-d).Unix()
}
