// Package estimation projects how long a recycling point has left before it is full.
package estimation

import (
	"fmt"
	"math"
	"time"
)

// FullThreshold is the fill percentage at which a point counts as full.
const FullThreshold = 90

const secondsPerDay = 86400

// Sentinel results returned instead of a projected duration.
const (
	JustEmptied   = "just emptied"
	AlreadyFull   = "already full"
	Calculating   = "calculating…"
	Indeterminate = "indeterminate"
)

// Estimate extrapolates the observed fill rate since the last emptying and renders the time left until
// the point reaches FullThreshold.
func Estimate(fillLevel int, lastEmptiedAt, now time.Time) string {
	if fillLevel == 0 {
		return JustEmptied
	}
	if fillLevel >= FullThreshold {
		return AlreadyFull
	}

	elapsedDays := now.Sub(lastEmptiedAt).Seconds() / secondsPerDay

	// Too little elapsed time to derive a meaningful rate.
	if elapsedDays < 0.001 {
		return Calculating
	}

	dailyRate := float64(fillLevel) / elapsedDays
	remaining := float64(FullThreshold - fillLevel)

	if dailyRate <= 0 {
		return Indeterminate
	}

	daysLeft := remaining / dailyRate
	if daysLeft < 1 {
		return plural(int(math.Floor(daysLeft*24)), "hour")
	}
	return plural(int(math.Ceil(daysLeft)), "day")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
