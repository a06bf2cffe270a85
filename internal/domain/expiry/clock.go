// Package expiry answers "has this deadline passed" and runs cancellable
// countdowns that announce the moment it does.
package expiry

import "time"

// IsExpired reports whether now is at or after the deadline. A zero deadline
// never expires.
func IsExpired(deadline, now time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	return !now.Before(deadline)
}

// Remaining is the time left until the deadline, never negative.
func Remaining(deadline, now time.Time) time.Duration {
	if deadline.IsZero() {
		return 0
	}
	d := deadline.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
