package validator

import (
	"strings"
	"testing"
	"time"

	"innkeeper/pkg/logger"
	"innkeeper/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "error",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validBooking() *model.Booking {
	return &model.Booking{
		PartnerID: "507f1f77bcf86cd799439011",
		Status:    model.StatusInitial,
		StayRange: model.StayRange{
			CheckIn:  time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC),
			CheckOut: time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC),
		},
		Lines: []model.BookingLine{
			{
				RoomID: "room-101",
				Price:  120,
				Guests: []model.Guest{
					{Name: "Dana Levi", Age: 34, Gender: model.GenderFemale},
				},
			},
		},
	}
}

func TestValidate(t *testing.T) {
	validator := NewBookingValidator(testLogger(), 365, 18)

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantError bool
	}{
		{
			name:      "valid booking",
			mutate:    func(b *model.Booking) {},
			wantError: false,
		},
		{
			name:      "missing partner",
			mutate:    func(b *model.Booking) { b.PartnerID = "" },
			wantError: true,
		},
		{
			name:      "unknown status",
			mutate:    func(b *model.Booking) { b.Status = "parked" },
			wantError: true,
		},
		{
			name:      "line without room",
			mutate:    func(b *model.Booking) { b.Lines[0].RoomID = "" },
			wantError: true,
		},
		{
			name:      "negative price",
			mutate:    func(b *model.Booking) { b.Lines[0].Price = -10 },
			wantError: true,
		},
		{
			name:      "discount above 100",
			mutate:    func(b *model.Booking) { b.Lines[0].Discount = 150 },
			wantError: true,
		},
		{
			name:      "guest age out of range",
			mutate:    func(b *model.Booking) { b.Lines[0].Guests[0].Age = 140 },
			wantError: true,
		},
		{
			name:      "invalid gender",
			mutate:    func(b *model.Booking) { b.Lines[0].Guests[0].Gender = "unknown" },
			wantError: true,
		},
		{
			name: "guest with partner reference only",
			mutate: func(b *model.Booking) {
				b.Lines[0].Guests[0] = model.Guest{PartnerID: "guest-partner-1", Age: 40}
			},
			wantError: false,
		},
		{
			name: "guest with neither name nor partner",
			mutate: func(b *model.Booking) {
				b.Lines[0].Guests[0] = model.Guest{Age: 40}
			},
			wantError: true,
		},
		{
			name: "checkout before checkin",
			mutate: func(b *model.Booking) {
				b.CheckOut = b.CheckIn.AddDate(0, 0, -1)
			},
			wantError: true,
		},
		{
			name: "stay longer than maximum",
			mutate: func(b *model.Booking) {
				b.CheckOut = b.CheckIn.AddDate(0, 0, 400)
			},
			wantError: true,
		},
		{
			name: "manual service without description",
			mutate: func(b *model.Booking) {
				b.ManualServices = []model.ManualService{{Amount: 25}}
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(b)
			err := validator.Validate(b)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateMaxStayMessage(t *testing.T) {
	validator := NewBookingValidator(testLogger(), 30, 18)

	b := validBooking()
	b.CheckOut = b.CheckIn.AddDate(0, 0, 45)

	err := validator.Validate(b)
	if err == nil {
		t.Fatal("expected stay-length error")
	}
	if !strings.Contains(err.Error(), "maximum of 30 days") {
		t.Errorf("expected stay-length message, got %q", err.Error())
	}
}

func TestValidateOccupancy(t *testing.T) {
	validator := NewBookingValidator(testLogger(), 365, 18)

	tests := []struct {
		name      string
		guests    []model.Guest
		wantError bool
	}{
		{
			name: "adult present",
			guests: []model.Guest{
				{Name: "Dana Levi", Age: 34},
				{Name: "Noa Levi", Age: 6},
			},
			wantError: false,
		},
		{
			name: "only minors",
			guests: []model.Guest{
				{Name: "Noa Levi", Age: 6},
				{Name: "Omer Levi", Age: 12},
			},
			wantError: true,
		},
		{
			name:      "exactly at threshold",
			guests:    []model.Guest{{Name: "Omer Levi", Age: 18}},
			wantError: false,
		},
		{
			name:      "no guests recorded",
			guests:    nil,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			b.Lines[0].Guests = tt.guests
			err := validator.ValidateOccupancy(b)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateOccupancy() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateOccupancyRejectsRoomWithoutGuests(t *testing.T) {
	validator := NewBookingValidator(testLogger(), 365, 18)

	b := validBooking()
	b.Lines[0].Guests = nil

	err := validator.ValidateOccupancy(b)
	if err == nil {
		t.Fatal("expected a room without guests to fail occupancy validation")
	}
	if !strings.Contains(err.Error(), "at least one guest") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidateOccupancyRejectsDuplicateGuests(t *testing.T) {
	validator := NewBookingValidator(testLogger(), 365, 18)

	b := validBooking()
	b.Lines[0].Guests = []model.Guest{
		{Name: "Dana Levi", Age: 34},
		{Name: "  dana   levi ", Age: 30},
	}

	err := validator.ValidateOccupancy(b)
	if err == nil {
		t.Fatal("expected duplicate guest names to fail occupancy validation")
	}
	if !strings.Contains(err.Error(), "listed more than once") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidateOccupancyReportsEveryRoom(t *testing.T) {
	validator := NewBookingValidator(testLogger(), 365, 18)

	b := validBooking()
	b.Lines = append(b.Lines, model.BookingLine{
		RoomID: "room-202",
		Guests: []model.Guest{{Name: "Noa Levi", Age: 6}},
	})
	b.Lines[0].Guests = []model.Guest{{Name: "Omer Levi", Age: 10}}

	err := validator.ValidateOccupancy(b)
	if err == nil {
		t.Fatal("expected occupancy errors")
	}

	var verrs ValidationErrors
	ok := false
	if v, isVErrs := err.(ValidationErrors); isVErrs {
		verrs = v
		ok = true
	}
	if !ok || len(verrs) != 2 {
		t.Fatalf("expected 2 validation errors, got %v", err)
	}
}
