package api

import "time"

// SetNow fixes the current time for the handlers and returns a function
// restoring it.
func SetNow(t time.Time) func() {
	now = func() time.Time { return t }
	return func() { now = time.Now }
}
