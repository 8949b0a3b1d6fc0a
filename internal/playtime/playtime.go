// Package playtime totals how long the library has been listened to.
package playtime

import (
	"fmt"
	"math"

	"amutils/internal/library"
)

// Stats summarises a library.
type Stats struct {
	Tracks int
	// Seconds is the sum of duration times play count over every track.
	Seconds float64
}

// Compute totals listened time over tracks.
func Compute(tracks []library.Track) Stats {
	stats := Stats{Tracks: len(tracks)}
	for _, t := range tracks {
		if t.PlayCount <= 0 || t.Duration <= 0 || math.IsNaN(t.Duration) || math.IsInf(t.Duration, 0) {
			continue
		}
		stats.Seconds += t.Duration * float64(t.PlayCount)
	}
	return stats
}

// Breakdown splits a number of seconds into calendar units.
type Breakdown struct {
	Days    int64
	Hours   int64
	Minutes int64
	Seconds int64
	// TotalMinutes is the whole duration expressed in minutes.
	TotalMinutes int64
}

// Split floors seconds and breaks it into days, hours, minutes and seconds.
func Split(seconds float64) Breakdown {
	if seconds <= 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return Breakdown{}
	}
	total := int64(math.Floor(seconds))
	b := Breakdown{TotalMinutes: total / 60}
	b.Days = total / 86400
	total %= 86400
	b.Hours = total / 3600
	total %= 3600
	b.Minutes = total / 60
	b.Seconds = total % 60
	return b
}

// String renders "D days, H hrs, M mins, S seconds (N minutes)".
func (b Breakdown) String() string {
	return fmt.Sprintf("%d days, %d hrs, %d mins, %d seconds (%d minutes)",
		b.Days, b.Hours, b.Minutes, b.Seconds, b.TotalMinutes)
}
