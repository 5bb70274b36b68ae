package model

import (
	"time"
)

// MinBookingDays is the shortest billable stay in fractional days.
// Day-use bookings with identical check-in and check-out still bill
// this much.
const MinBookingDays = 0.01

// StayRange is the half-open [CheckIn, CheckOut) interval a booking
// occupies.
type StayRange struct {
	CheckIn  time.Time `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut time.Time `json:"check_out" bson:"check_out" validate:"required"`
}

// Days returns the stay length in fractional days, floored at
// MinBookingDays.
func (r StayRange) Days() float64 {
	days := r.CheckOut.Sub(r.CheckIn).Seconds() / 86400
	if days < MinBookingDays {
		return MinBookingDays
	}
	return days
}

// Valid reports whether check-out is not before check-in.
func (r StayRange) Valid() bool {
	return !r.CheckOut.Before(r.CheckIn)
}

// Overlaps reports whether two ranges share any time. Touching
// endpoints do not overlap.
func (r StayRange) Overlaps(other StayRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// LongerThan reports whether the stay exceeds maxDays whole days.
func (r StayRange) LongerThan(maxDays int) bool {
	return r.CheckOut.Sub(r.CheckIn) > time.Duration(maxDays)*24*time.Hour
}
