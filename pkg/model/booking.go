package model

import (
	"time"
)

// Status is a booking lifecycle state. The allowed moves between
// statuses live in internal/bookings/state.
type Status string

const (
	StatusInitial        Status = "initial"
	StatusConfirmed      Status = "confirmed"
	StatusCheckIn        Status = "checkin"
	StatusCheckOut       Status = "checkout"
	StatusCleaningNeeded Status = "cleaning_needed"
	StatusRoomReady      Status = "room_ready"
	StatusCancelled      Status = "cancelled"
	StatusNoShow         Status = "no_show"
)

func (s Status) String() string {
	return string(s)
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Booking struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Sequence  string    `json:"sequence,omitempty" bson:"sequence,omitempty"`
	PartnerID string    `json:"partner_id" bson:"partner_id" validate:"required"`
	StayRange `bson:",inline"`
	Status    Status        `json:"status" bson:"status" validate:"required,oneof=initial confirmed checkin checkout cleaning_needed room_ready cancelled no_show"`
	Lines     []BookingLine `json:"lines" bson:"lines" validate:"omitempty,dive"`

	// Room-change chain links. SplitFromBookingID points at the
	// booking this one was split out of; ConnectedBookingID points
	// the other way.
	SplitFromBookingID string `json:"split_from_booking_id,omitempty" bson:"split_from_booking_id,omitempty" validate:"omitempty,mongodb"`
	ConnectedBookingID string `json:"connected_booking_id,omitempty" bson:"connected_booking_id,omitempty" validate:"omitempty,mongodb"`

	IsRoomChangeOrigin      bool `json:"is_room_change_origin" bson:"is_room_change_origin"`
	IsRoomChangeDestination bool `json:"is_room_change_destination" bson:"is_room_change_destination"`

	EarlyCheckInCharge  float64         `json:"early_checkin_charge" bson:"early_checkin_charge" validate:"gte=0"`
	LateCheckOutCharge  float64         `json:"late_checkout_charge" bson:"late_checkout_charge" validate:"gte=0"`
	ManualServices      []ManualService `json:"manual_services,omitempty" bson:"manual_services,omitempty" validate:"omitempty,dive"`
	CancellationReason  string          `json:"cancellation_reason,omitempty" bson:"cancellation_reason,omitempty"`
	TravelReason        string          `json:"travel_reason,omitempty" bson:"travel_reason,omitempty"`

	// Computed pricing snapshot, refreshed on every totals pass.
	BookingDays    float64 `json:"booking_days" bson:"booking_days"`
	AmountUntaxed  float64 `json:"amount_untaxed" bson:"amount_untaxed"`
	TaxAmount      float64 `json:"tax_amount" bson:"tax_amount"`
	TotalAmount    float64 `json:"total_amount" bson:"total_amount"`
	OriginalPrice  float64 `json:"original_price" bson:"original_price"`
	DiscountAmount float64 `json:"discount_amount" bson:"discount_amount"`

	// OrderRef is set once the billing service issues a sale order.
	OrderRef string `json:"order_ref,omitempty" bson:"order_ref,omitempty"`

	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	WriteDate time.Time `json:"write_date" bson:"write_date" validate:"omitempty"`
}

type BookingLine struct {
	ID        string    `json:"id,omitempty" bson:"id,omitempty"`
	RoomID    string    `json:"room_id" bson:"room_id" validate:"required"`
	Price     float64   `json:"price" bson:"price" validate:"gte=0"`
	Discount  float64   `json:"discount" bson:"discount" validate:"gte=0,lte=100"`
	ListPrice float64   `json:"list_price" bson:"list_price" validate:"gte=0"`
	TaxRates  []float64 `json:"tax_rates,omitempty" bson:"tax_rates,omitempty" validate:"omitempty,dive,gte=0"`
	Guests    []Guest   `json:"guests" bson:"guests" validate:"omitempty,dive"`

	// Per-line pricing snapshot.
	BookingDays   float64 `json:"booking_days" bson:"booking_days"`
	SubtotalPrice float64 `json:"subtotal_price" bson:"subtotal_price"`
	TaxedPrice    float64 `json:"taxed_price" bson:"taxed_price"`

	// Links to the sibling lines this one was split from or into.
	PreviousLineID string `json:"previous_line_id,omitempty" bson:"previous_line_id,omitempty"`
	NextLineID     string `json:"next_line_id,omitempty" bson:"next_line_id,omitempty"`
}

type Guest struct {
	Name      string `json:"name,omitempty" bson:"name,omitempty" validate:"required_without=PartnerID,omitempty,min=1,max=120"`
	Age       int    `json:"age" bson:"age" validate:"required,min=1,max=120"`
	Gender    Gender `json:"gender,omitempty" bson:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	PartnerID string `json:"partner_id,omitempty" bson:"partner_id,omitempty" validate:"required_without=Name"`
}

// ManualService is an ad-hoc charge added to a booking, such as
// minibar or laundry.
type ManualService struct {
	Description string  `json:"description" bson:"description" validate:"required,min=1,max=200"`
	Amount      float64 `json:"amount" bson:"amount" validate:"gte=0"`
}

// FirstRoomID returns the room of the first line, or empty when the
// booking has no lines yet.
func (b *Booking) FirstRoomID() string {
	if len(b.Lines) == 0 {
		return ""
	}
	return b.Lines[0].RoomID
}

// HasRoom reports whether any line carries a room assignment.
func (b *Booking) HasRoom() bool {
	for _, line := range b.Lines {
		if line.RoomID != "" {
			return true
		}
	}
	return false
}
