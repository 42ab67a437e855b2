package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	nine := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		startA    time.Time
		durationA int
		startB    time.Time
		durationB int
		want      bool
	}{
		{"identical windows", nine, 60, nine, 60, true},
		{"b starts inside a", nine, 60, nine.Add(30 * time.Minute), 60, true},
		{"a starts inside b", nine.Add(30 * time.Minute), 60, nine, 60, true},
		{"b contained in a", nine, 180, nine.Add(time.Hour), 30, true},
		{"b starts when a ends", nine, 60, nine.Add(time.Hour), 60, false},
		{"a starts when b ends", nine.Add(time.Hour), 60, nine, 60, false},
		{"disjoint", nine, 60, nine.Add(3 * time.Hour), 60, false},
		{"one minute of overlap", nine, 61, nine.Add(time.Hour), 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.startA, tt.durationA, tt.startB, tt.durationB))
			assert.Equal(t, tt.want, Overlaps(tt.startB, tt.durationB, tt.startA, tt.durationA), "overlap must be symmetric")
		})
	}
}

func TestEnd(t *testing.T) {
	start := time.Date(2026, 6, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 6, 2, 1, 0, 0, 0, time.UTC), End(start, 90))
}
