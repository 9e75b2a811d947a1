package progress

import (
	"fmt"
	"time"
)

// RefillDeadline converts the msUntilNextEnergyRefill snapshot to an
// absolute deadline. The countdown is a local clock counting down from
// the last-fetched snapshot; it drifts from server truth until the next
// explicit stats refresh.
func RefillDeadline(statsAt time.Time, msUntilRefill int64) time.Time {
	return statsAt.Add(time.Duration(msUntilRefill) * time.Millisecond)
}

// EnergyRemaining returns the time left until the deadline, floored at
// zero.
func EnergyRemaining(deadline, now time.Time) time.Duration {
	remaining := deadline.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CountdownActive reports whether the refill countdown should tick.
// Full hearts or an elapsed deadline render the "full hearts" state
// instead.
func CountdownActive(energy, energyMax int, remaining time.Duration) bool {
	return energy < energyMax && remaining > 0
}

// FormatCountdown renders a duration as "{h}h {mm}m {ss}s", omitting the
// hour segment when zero.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	return fmt.Sprintf("%02dm %02ds", m, s)
}
