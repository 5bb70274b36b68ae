package state

import (
	"time"

	"innkeeper/pkg/model"
)

// HourSnapshot holds the hour-of-day components of a booking's dates.
// A transition that rewrites check-in or check-out as a bare date would
// otherwise reset these to midnight.
type HourSnapshot struct {
	CheckInHour    int
	CheckInMinute  int
	CheckOutHour   int
	CheckOutMinute int
}

// Overrides are caller-supplied hour components that win over the
// values stored on the booking.
type Overrides struct {
	CheckInHour    *int
	CheckInMinute  *int
	CheckOutHour   *int
	CheckOutMinute *int
}

// CaptureHours snapshots the hour components before a transition.
// Overrides win over stored values; a zero time falls back to the
// property defaults.
func CaptureHours(b *model.Booking, overrides Overrides, defaultInHour, defaultOutHour int) HourSnapshot {
	snap := HourSnapshot{
		CheckInHour:  defaultInHour,
		CheckOutHour: defaultOutHour,
	}

	if !b.CheckIn.IsZero() {
		snap.CheckInHour = b.CheckIn.Hour()
		snap.CheckInMinute = b.CheckIn.Minute()
	}
	if !b.CheckOut.IsZero() {
		snap.CheckOutHour = b.CheckOut.Hour()
		snap.CheckOutMinute = b.CheckOut.Minute()
	}

	if overrides.CheckInHour != nil {
		snap.CheckInHour = *overrides.CheckInHour
	}
	if overrides.CheckInMinute != nil {
		snap.CheckInMinute = *overrides.CheckInMinute
	}
	if overrides.CheckOutHour != nil {
		snap.CheckOutHour = *overrides.CheckOutHour
	}
	if overrides.CheckOutMinute != nil {
		snap.CheckOutMinute = *overrides.CheckOutMinute
	}

	return snap
}

// RestoreHours rewrites the booking's dates as date + captured time.
// Run after every transition that may have rewritten the dates.
func RestoreHours(b *model.Booking, snap HourSnapshot) {
	if !b.CheckIn.IsZero() {
		b.CheckIn = atHour(b.CheckIn, snap.CheckInHour, snap.CheckInMinute)
	}
	if !b.CheckOut.IsZero() {
		b.CheckOut = atHour(b.CheckOut, snap.CheckOutHour, snap.CheckOutMinute)
	}
}

func atHour(t time.Time, hour, minute int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, minute, 0, 0, t.Location())
}
