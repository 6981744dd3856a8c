package domain

import (
	"math"
	"time"
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share at least one instant.
// Touching intervals (aEnd == bStart or bEnd == aStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// HoursToDuration converts a (possibly fractional) number of hours to a
// duration truncated to whole seconds.
func HoursToDuration(hours float64) time.Duration {
	seconds := math.Round(hours * 3600)
	return time.Duration(seconds) * time.Second
}

// EndAt returns start + hours.
func EndAt(start time.Time, hours float64) time.Time {
	return start.Add(HoursToDuration(hours))
}
