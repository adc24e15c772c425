// Package system provides the wall-clock archive.Clock used outside tests.
package system

import "time"

// Clock reports the real time in UTC.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current UTC time.
func (Clock) Now() time.Time {
	return time.Now().UTC()
}
