package state

import (
	"testing"
	"time"

	"innkeeper/pkg/model"
)

func intPtr(v int) *int { return &v }

func TestCaptureHours_StoredValues(t *testing.T) {
	b := &model.Booking{
		StayRange: model.StayRange{
			CheckIn:  time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
			CheckOut: time.Date(2026, 3, 3, 10, 15, 0, 0, time.UTC),
		},
	}

	snap := CaptureHours(b, Overrides{}, 15, 12)

	if snap.CheckInHour != 14 || snap.CheckInMinute != 30 {
		t.Errorf("check-in snapshot = %d:%d, want 14:30", snap.CheckInHour, snap.CheckInMinute)
	}
	if snap.CheckOutHour != 10 || snap.CheckOutMinute != 15 {
		t.Errorf("check-out snapshot = %d:%d, want 10:15", snap.CheckOutHour, snap.CheckOutMinute)
	}
}

func TestCaptureHours_OverridesWin(t *testing.T) {
	b := &model.Booking{
		StayRange: model.StayRange{
			CheckIn:  time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
			CheckOut: time.Date(2026, 3, 3, 10, 15, 0, 0, time.UTC),
		},
	}

	snap := CaptureHours(b, Overrides{
		CheckInHour:   intPtr(18),
		CheckInMinute: intPtr(0),
	}, 15, 12)

	if snap.CheckInHour != 18 || snap.CheckInMinute != 0 {
		t.Errorf("check-in snapshot = %d:%d, want 18:00", snap.CheckInHour, snap.CheckInMinute)
	}
	// Untouched components keep their stored values.
	if snap.CheckOutHour != 10 || snap.CheckOutMinute != 15 {
		t.Errorf("check-out snapshot = %d:%d, want 10:15", snap.CheckOutHour, snap.CheckOutMinute)
	}
}

func TestCaptureHours_DefaultsForZeroDates(t *testing.T) {
	b := &model.Booking{}

	snap := CaptureHours(b, Overrides{}, 15, 12)

	if snap.CheckInHour != 15 || snap.CheckInMinute != 0 {
		t.Errorf("check-in snapshot = %d:%d, want 15:00", snap.CheckInHour, snap.CheckInMinute)
	}
	if snap.CheckOutHour != 12 || snap.CheckOutMinute != 0 {
		t.Errorf("check-out snapshot = %d:%d, want 12:00", snap.CheckOutHour, snap.CheckOutMinute)
	}
}

func TestRestoreHours_RepairsMidnightReset(t *testing.T) {
	b := &model.Booking{
		StayRange: model.StayRange{
			CheckIn:  time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
			CheckOut: time.Date(2026, 3, 3, 10, 15, 0, 0, time.UTC),
		},
	}

	snap := CaptureHours(b, Overrides{}, 15, 12)

	// Simulate a date-only rewrite flattening both times to midnight.
	b.CheckIn = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	b.CheckOut = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)

	RestoreHours(b, snap)

	wantIn := time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC)
	wantOut := time.Date(2026, 3, 3, 10, 15, 0, 0, time.UTC)

	if !b.CheckIn.Equal(wantIn) {
		t.Errorf("CheckIn = %v, want %v", b.CheckIn, wantIn)
	}
	if !b.CheckOut.Equal(wantOut) {
		t.Errorf("CheckOut = %v, want %v", b.CheckOut, wantOut)
	}
}

func TestRestoreHours_LeavesZeroDatesAlone(t *testing.T) {
	b := &model.Booking{}
	RestoreHours(b, HourSnapshot{CheckInHour: 15, CheckOutHour: 12})

	if !b.CheckIn.IsZero() || !b.CheckOut.IsZero() {
		t.Errorf("RestoreHours touched zero dates: %v, %v", b.CheckIn, b.CheckOut)
	}
}
