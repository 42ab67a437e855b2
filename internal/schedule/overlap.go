// Package schedule decides whether two exam time windows conflict.
package schedule

import "time"

// End returns start plus duration minutes.
func End(start time.Time, durationMinutes int) time.Time {
	return start.Add(time.Duration(durationMinutes) * time.Minute)
}

// Overlaps reports whether [startA, startA+durationA) and [startB, startB+durationB)
// share any instant. Windows that only touch at an endpoint do not overlap.
func Overlaps(startA time.Time, durationA int, startB time.Time, durationB int) bool {
	return startA.Before(End(startB, durationB)) && startB.Before(End(startA, durationA))
}
