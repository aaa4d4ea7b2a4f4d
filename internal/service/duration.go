package service

import (
	"fmt"
	"time"
)

// Accumulate adds the claim/close interval to the prior session duration.
// A close stamped before its claim (clock skew between hosts) adds nothing,
// so the total never shrinks.
func Accumulate(claimed, closed time.Time, prior *time.Duration) time.Duration {
	delta := closed.Sub(claimed)
	if delta < 0 {
		delta = 0
	}
	if prior != nil && *prior > 0 {
		delta += *prior
	}
	return delta
}

// legacyEpoch is the date the old tool anchored its time-of-day arithmetic on.
var legacyEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// AccumulateTimeOfDay reproduces how the previous help desk stored session
// time: the total is added to a fixed midnight and only the clock reading is
// kept. Totals of 24h or more wrap to the start of the day. Use it only to
// reconcile rows imported from that tool.
func AccumulateTimeOfDay(claimed, closed time.Time, prior *time.Duration) time.Duration {
	at := legacyEpoch.Add(Accumulate(claimed, closed, prior))
	midnight := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	return at.Sub(midnight)
}

// FormatDuration renders d as HH:MM:SS. Hours are not capped at 24.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
