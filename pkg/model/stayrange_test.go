package model

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestStayRange_Days(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		out  time.Time
		want float64
	}{
		{
			name: "two full days",
			in:   date(2026, 3, 1, 15),
			out:  date(2026, 3, 3, 15),
			want: 2.0,
		},
		{
			name: "fractional stay",
			in:   date(2026, 3, 1, 15),
			out:  date(2026, 3, 3, 11),
			want: 2.0 - 4.0/24.0,
		},
		{
			name: "zero length floors at minimum",
			in:   date(2026, 3, 1, 15),
			out:  date(2026, 3, 1, 15),
			want: MinBookingDays,
		},
		{
			name: "inverted range floors at minimum",
			in:   date(2026, 3, 2, 15),
			out:  date(2026, 3, 1, 15),
			want: MinBookingDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := StayRange{CheckIn: tt.in, CheckOut: tt.out}
			got := r.Days()
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Days() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStayRange_Overlaps(t *testing.T) {
	base := StayRange{CheckIn: date(2026, 3, 10, 15), CheckOut: date(2026, 3, 12, 12)}

	tests := []struct {
		name  string
		other StayRange
		want  bool
	}{
		{
			name:  "fully inside",
			other: StayRange{CheckIn: date(2026, 3, 10, 18), CheckOut: date(2026, 3, 11, 12)},
			want:  true,
		},
		{
			name:  "partial overlap at start",
			other: StayRange{CheckIn: date(2026, 3, 9, 15), CheckOut: date(2026, 3, 10, 18)},
			want:  true,
		},
		{
			name:  "touching endpoints do not overlap",
			other: StayRange{CheckIn: date(2026, 3, 12, 12), CheckOut: date(2026, 3, 14, 12)},
			want:  false,
		},
		{
			name:  "disjoint",
			other: StayRange{CheckIn: date(2026, 3, 20, 15), CheckOut: date(2026, 3, 22, 12)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Overlaps(tt.other); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.other.Overlaps(base); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStayRange_LongerThan(t *testing.T) {
	r := StayRange{CheckIn: date(2026, 1, 1, 15), CheckOut: date(2027, 1, 2, 15)}
	if !r.LongerThan(365) {
		t.Errorf("LongerThan(365) = false for a 366-day stay")
	}

	r = StayRange{CheckIn: date(2026, 1, 1, 15), CheckOut: date(2026, 1, 31, 15)}
	if r.LongerThan(365) {
		t.Errorf("LongerThan(365) = true for a 30-day stay")
	}
}

func TestBooking_FirstRoomID(t *testing.T) {
	b := &Booking{}
	if got := b.FirstRoomID(); got != "" {
		t.Errorf("FirstRoomID() on empty booking = %q, want empty", got)
	}

	b.Lines = []BookingLine{{RoomID: "room-101"}, {RoomID: "room-102"}}
	if got := b.FirstRoomID(); got != "room-101" {
		t.Errorf("FirstRoomID() = %q, want room-101", got)
	}
}

func TestBooking_HasRoom(t *testing.T) {
	b := &Booking{Lines: []BookingLine{{}}}
	if b.HasRoom() {
		t.Errorf("HasRoom() = true for line without room")
	}

	b.Lines = append(b.Lines, BookingLine{RoomID: "room-101"})
	if !b.HasRoom() {
		t.Errorf("HasRoom() = false with assigned room")
	}
}
