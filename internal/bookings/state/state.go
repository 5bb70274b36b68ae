// Package state owns the booking lifecycle: which statuses exist,
// which moves between them are legal, and the guards a move must pass.
package state

import (
	"fmt"
	"time"

	bookingserrors "innkeeper/internal/bookings/errors"
	"innkeeper/pkg/model"
)

// Meta describes a lifecycle status.
type Meta struct {
	Label        string
	Description  string
	Terminal     bool
	RequiresRoom bool
}

var statusMeta = map[model.Status]Meta{
	model.StatusInitial: {
		Label:       "Draft",
		Description: "Booking captured, nothing guaranteed yet",
	},
	model.StatusConfirmed: {
		Label:       "Confirmed",
		Description: "Guest committed, sale order issued",
	},
	model.StatusCheckIn: {
		Label:        "Checked In",
		Description:  "Guest is on premises",
		RequiresRoom: true,
	},
	model.StatusCheckOut: {
		Label:        "Checked Out",
		Description:  "Guest has left, room not yet serviced",
		RequiresRoom: true,
	},
	model.StatusCleaningNeeded: {
		Label:        "Cleaning Needed",
		Description:  "Room awaiting housekeeping",
		RequiresRoom: true,
	},
	model.StatusRoomReady: {
		Label:        "Room Ready",
		Description:  "Room serviced and sellable again",
		RequiresRoom: true,
	},
	model.StatusCancelled: {
		Label:       "Cancelled",
		Description: "Booking voided before completion",
		Terminal:    true,
	},
	model.StatusNoShow: {
		Label:       "No Show",
		Description: "Guest never arrived",
		Terminal:    true,
	},
}

// transitions is the full lifecycle table. Terminal states keep a
// single escape hatch back to initial for reactivation.
var transitions = map[model.Status][]model.Status{
	model.StatusInitial:        {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed:      {model.StatusCheckIn, model.StatusCancelled, model.StatusNoShow},
	model.StatusCheckIn:        {model.StatusCheckOut, model.StatusCancelled},
	model.StatusCheckOut:       {model.StatusCleaningNeeded},
	model.StatusCleaningNeeded: {model.StatusRoomReady},
	model.StatusRoomReady:      {model.StatusConfirmed},
	model.StatusCancelled:      {model.StatusInitial},
	model.StatusNoShow:         {model.StatusInitial},
}

// Canonical maps accepted spellings onto the canonical status values.
// Unknown inputs pass through unchanged so validation can reject them.
func Canonical(raw string) model.Status {
	switch raw {
	case "check_in", "checkin":
		return model.StatusCheckIn
	case "check_out", "checkout":
		return model.StatusCheckOut
	case "confirm", "confirmed":
		return model.StatusConfirmed
	default:
		return model.Status(raw)
	}
}

// Known reports whether s is a recognized status.
func Known(s model.Status) bool {
	_, ok := statusMeta[s]
	return ok
}

// MetaFor returns the metadata of a status.
func MetaFor(s model.Status) (Meta, bool) {
	m, ok := statusMeta[s]
	return m, ok
}

// IsTerminal reports whether s is a terminal status.
func IsTerminal(s model.Status) bool {
	return statusMeta[s].Terminal
}

// CanTransition is a pure table lookup.
func CanTransition(from, to model.Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Event records a completed transition for audit logging.
type Event struct {
	BookingID string
	From      model.Status
	To        model.Status
	At        time.Time
}

// Options tune the guards Apply runs before mutating the booking.
type Options struct {
	// Now anchors the premature check-in guard. Zero means time.Now.
	Now time.Time

	// SkipRoomValidation bypasses the room-assignment guard. Only
	// internal chain-split operations set this.
	SkipRoomValidation bool
}

// Apply moves the booking to target after running every guard. The
// booking is untouched when any guard fails. Side effects such as sale
// order creation belong to the service layer, not here.
func Apply(b *model.Booking, target model.Status, opts Options) (Event, error) {
	target = Canonical(string(target))

	if !Known(target) {
		return Event{}, fmt.Errorf("%w: unknown status %q", bookingserrors.ErrInvalidTransition, target)
	}

	if !CanTransition(b.Status, target) {
		return Event{}, fmt.Errorf("%w: %s -> %s", bookingserrors.ErrInvalidTransition, b.Status, target)
	}

	meta := statusMeta[target]
	if meta.RequiresRoom && !opts.SkipRoomValidation && len(b.Lines) == 0 {
		return Event{}, fmt.Errorf("%w: status %s requires a room", bookingserrors.ErrMissingRoomAssignment, target)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	if target == model.StatusCheckIn {
		checkInDay := b.CheckIn.Truncate(24 * time.Hour)
		today := now.Truncate(24 * time.Hour)
		if checkInDay.After(today) {
			return Event{}, fmt.Errorf("%w: check-in is %s", bookingserrors.ErrPrematureCheckIn, b.CheckIn.Format("2006-01-02"))
		}
	}

	if target == model.StatusCheckOut && b.CheckOut.IsZero() {
		return Event{}, bookingserrors.ErrMissingCheckOutDate
	}

	event := Event{
		BookingID: b.ID,
		From:      b.Status,
		To:        target,
		At:        now,
	}
	b.Status = target

	return event, nil
}
