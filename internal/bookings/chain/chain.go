// Package chain reconstructs room-change chains. A chain is never
// stored as a list; it is rebuilt on read from the split/connected
// pointers on each booking.
package chain

import (
	"context"
	"errors"
	"fmt"

	bookingserrors "innkeeper/internal/bookings/errors"
	"innkeeper/pkg/model"
)

// Lookup is the read capability the tracker walks the chain with.
// The booking repository satisfies it.
type Lookup interface {
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	FindBySplitFrom(ctx context.Context, bookingID string) ([]*model.Booking, error)
}

// Result is a fully resolved chain, oldest segment first.
type Result struct {
	Chain           []*model.Booking
	Original        *model.Booking
	CurrentPosition int
	TotalChanges    int
}

// Tracker resolves chains through an injected lookup, bounded by a
// maximum walk depth for malformed data.
type Tracker struct {
	lookup   Lookup
	maxDepth int
}

func NewTracker(lookup Lookup, maxDepth int) *Tracker {
	if maxDepth <= 0 {
		maxDepth = 50
	}
	return &Tracker{lookup: lookup, maxDepth: maxDepth}
}

// Resolve rebuilds the chain containing booking. The backward walk
// follows split_from_booking_id to the origin, the forward walk
// queries for successors of the tail. A visited set terminates both
// walks on cyclic data; the depth cap bounds them on runaway chains.
func (t *Tracker) Resolve(ctx context.Context, booking *model.Booking) (*Result, error) {
	if booking == nil {
		return nil, fmt.Errorf("chain: booking is nil")
	}
	if booking.SplitFromBookingID == booking.ID && booking.ID != "" {
		return nil, fmt.Errorf("%w: booking %s points at itself", bookingserrors.ErrChainCycle, booking.ID)
	}

	visited := map[string]struct{}{booking.ID: {}}
	chainList := []*model.Booking{booking}

	// Backward to the origin.
	current := booking
	for depth := 0; current.SplitFromBookingID != "" && depth < t.maxDepth; depth++ {
		if _, seen := visited[current.SplitFromBookingID]; seen {
			break
		}

		prev, err := t.lookup.FindByID(ctx, current.SplitFromBookingID)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				// Dangling pointer; treat the walk as complete.
				break
			}
			return nil, fmt.Errorf("chain: backward walk: %w", err)
		}

		visited[prev.ID] = struct{}{}
		chainList = append([]*model.Booking{prev}, chainList...)
		current = prev
	}

	// Forward from the tail.
	current = chainList[len(chainList)-1]
	for depth := 0; depth < t.maxDepth; depth++ {
		successors, err := t.lookup.FindBySplitFrom(ctx, current.ID)
		if err != nil {
			return nil, fmt.Errorf("chain: forward walk: %w", err)
		}

		var next *model.Booking
		for _, s := range successors {
			if _, seen := visited[s.ID]; !seen {
				next = s
				break
			}
		}
		if next == nil {
			break
		}

		visited[next.ID] = struct{}{}
		chainList = append(chainList, next)
		current = next
	}

	result := &Result{
		Chain:           chainList,
		Original:        chainList[0],
		CurrentPosition: -1,
	}

	for i, b := range chainList {
		if b.ID == booking.ID {
			result.CurrentPosition = i
			break
		}
	}

	if len(chainList) > 1 {
		result.TotalChanges = len(chainList) - 1
	}

	return result, nil
}

// PositionFlags describe a booking's role within its chain.
type PositionFlags struct {
	IsOrigin      bool
	IsDestination bool
	IsLast        bool
}

// Flags returns the role of position i in a chain of length n. Every
// non-origin segment counts as a destination, not only the tail. That
// matches how downstream reporting has always consumed these flags,
// so it is kept as a deliberate policy.
func Flags(i, n int) PositionFlags {
	return PositionFlags{
		IsOrigin:      i == 0,
		IsDestination: i > 0,
		IsLast:        i == n-1,
	}
}

// OriginalRoom returns the room position i moved out of: the first
// room of the predecessor segment, or empty for the origin.
func OriginalRoom(chainList []*model.Booking, i int) string {
	if i <= 0 || i >= len(chainList) {
		return ""
	}
	return chainList[i-1].FirstRoomID()
}

// NewRoom returns the room position i occupies, falling back to the
// successor's first room when the segment itself has no lines.
func NewRoom(chainList []*model.Booking, i int) string {
	if i < 0 || i >= len(chainList) {
		return ""
	}
	if room := chainList[i].FirstRoomID(); room != "" {
		return room
	}
	if i+1 < len(chainList) {
		return chainList[i+1].FirstRoomID()
	}
	return ""
}

// Entry is the serializable view of one chain position.
type Entry struct {
	BookingID     string       `json:"booking_id"`
	Status        model.Status `json:"status"`
	CheckIn       string       `json:"check_in"`
	CheckOut      string       `json:"check_out"`
	IsOrigin      bool         `json:"is_origin"`
	IsDestination bool         `json:"is_destination"`
	IsLast        bool         `json:"is_last"`
	OriginalRoom  string       `json:"original_room,omitempty"`
	NewRoom       string       `json:"new_room,omitempty"`
}

// Info is the serializable view of a resolved chain.
type Info struct {
	Entries         []Entry `json:"entries"`
	CurrentPosition int     `json:"current_position"`
	TotalChanges    int     `json:"total_changes"`
	HasRoomChange   bool    `json:"has_room_change"`
}

const dateTimeLayout = "2006-01-02 15:04:05"

// Describe flattens a Result into its serializable view.
func Describe(result *Result) Info {
	info := Info{
		Entries:         make([]Entry, 0, len(result.Chain)),
		CurrentPosition: result.CurrentPosition,
		TotalChanges:    result.TotalChanges,
		HasRoomChange:   result.TotalChanges > 0,
	}

	for i, b := range result.Chain {
		flags := Flags(i, len(result.Chain))
		entry := Entry{
			BookingID:     b.ID,
			Status:        b.Status,
			IsOrigin:      flags.IsOrigin,
			IsDestination: flags.IsDestination,
			IsLast:        flags.IsLast,
			OriginalRoom:  OriginalRoom(result.Chain, i),
			NewRoom:       NewRoom(result.Chain, i),
		}
		if !b.CheckIn.IsZero() {
			entry.CheckIn = b.CheckIn.Format(dateTimeLayout)
		}
		if !b.CheckOut.IsZero() {
			entry.CheckOut = b.CheckOut.Format(dateTimeLayout)
		}
		info.Entries = append(info.Entries, entry)
	}

	return info
}
