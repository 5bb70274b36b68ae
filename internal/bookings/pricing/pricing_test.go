package pricing

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"innkeeper/pkg/model"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func stay(checkIn, checkOut time.Time) model.StayRange {
	return model.StayRange{CheckIn: checkIn, CheckOut: checkOut}
}

func TestBookingDays(t *testing.T) {
	base := time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rng  model.StayRange
		want float64
	}{
		{
			name: "two full days",
			rng:  stay(base, base.AddDate(0, 0, 2)),
			want: 2.0,
		},
		{
			name: "fractional stay",
			rng:  stay(base, time.Date(2024, 1, 17, 10, 0, 0, 0, time.UTC)),
			want: 2.0 - 4.0/24.0,
		},
		{
			name: "zero duration floors at minimum",
			rng:  stay(base, base),
			want: model.MinBookingDays,
		},
		{
			name: "inverted range floors at minimum",
			rng:  stay(base, base.AddDate(0, 0, -1)),
			want: model.MinBookingDays,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BookingDays(tc.rng); !almostEqual(got, tc.want) {
				t.Errorf("expected %v days, got %v", tc.want, got)
			}
		})
	}
}

func TestComputeLine(t *testing.T) {
	line := model.BookingLine{RoomID: "room-101", Price: 100}

	amounts, err := ComputeLine(context.Background(), FlatRate{Rate: 0.10}, line, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(amounts.Subtotal, 200) {
		t.Errorf("expected subtotal 200, got %v", amounts.Subtotal)
	}
	if !almostEqual(amounts.Taxed, 220) {
		t.Errorf("expected taxed 220, got %v", amounts.Taxed)
	}
}

func TestComputeLineNilCalculator(t *testing.T) {
	line := model.BookingLine{RoomID: "room-101", Price: 80}

	amounts, err := ComputeLine(context.Background(), nil, line, 1.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(amounts.Subtotal, 120) || !almostEqual(amounts.Taxed, 120) {
		t.Errorf("expected untaxed amounts 120, got %+v", amounts)
	}
}

type failingCalc struct{}

func (failingCalc) EffectiveRate(context.Context, string, float64) (float64, error) {
	return 0, errors.New("tax service unavailable")
}

func TestComputePropagatesCalculatorError(t *testing.T) {
	b := &model.Booking{
		StayRange: stay(
			time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 17, 14, 0, 0, 0, time.UTC),
		),
		Lines: []model.BookingLine{{RoomID: "room-101", Price: 100}},
	}

	if _, err := Compute(context.Background(), failingCalc{}, b); err == nil {
		t.Fatal("expected calculator error to propagate")
	}
}

func TestComputeTotalsWithSurcharges(t *testing.T) {
	b := &model.Booking{
		StayRange: stay(
			time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 17, 14, 0, 0, 0, time.UTC),
		),
		Lines:              []model.BookingLine{{RoomID: "room-101", Price: 100}},
		EarlyCheckInCharge: 20,
	}

	totals, err := Compute(context.Background(), FlatRate{}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Untaxed room total: 100 * 2 days. Surcharges sit outside tax.
	if !almostEqual(totals.AmountUntaxed, 220) {
		t.Errorf("expected amount untaxed 220, got %v", totals.AmountUntaxed)
	}
	if !almostEqual(totals.TotalAmount, 220) {
		t.Errorf("expected total 220, got %v", totals.TotalAmount)
	}
	if !almostEqual(totals.TaxAmount, 0) {
		t.Errorf("expected zero tax, got %v", totals.TaxAmount)
	}
	if !almostEqual(totals.Surcharges, 20) {
		t.Errorf("expected surcharges 20, got %v", totals.Surcharges)
	}
}

func TestComputeTaxedTotals(t *testing.T) {
	b := &model.Booking{
		StayRange: stay(
			time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 17, 14, 0, 0, 0, time.UTC),
		),
		Lines: []model.BookingLine{
			{RoomID: "room-101", Price: 100},
			{RoomID: "room-202", Price: 50},
		},
		LateCheckOutCharge: 15,
		ManualServices: []model.ManualService{
			{Description: "airport pickup", Amount: 35},
		},
	}

	totals, err := Compute(context.Background(), FlatRate{Rate: 0.10}, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Rooms: (100+50)*2 = 300 untaxed, 330 taxed. Surcharges: 50.
	if !almostEqual(totals.AmountUntaxed, 350) {
		t.Errorf("expected amount untaxed 350, got %v", totals.AmountUntaxed)
	}
	if !almostEqual(totals.TaxAmount, 30) {
		t.Errorf("expected tax 30, got %v", totals.TaxAmount)
	}
	if !almostEqual(totals.TotalAmount, 380) {
		t.Errorf("expected total 380, got %v", totals.TotalAmount)
	}

	// The per-line breakdown is written back onto the lines.
	if !almostEqual(b.Lines[0].SubtotalPrice, 200) || !almostEqual(b.Lines[0].TaxedPrice, 220) {
		t.Errorf("unexpected first line amounts: %+v", b.Lines[0])
	}
	if !almostEqual(b.Lines[1].BookingDays, 2) {
		t.Errorf("expected line booking days 2, got %v", b.Lines[1].BookingDays)
	}
}

func TestRatesFromLines(t *testing.T) {
	lines := []model.BookingLine{
		{RoomID: "room-101", TaxRates: []float64{10, 7}},
		{RoomID: "room-202"},
	}

	table := RatesFromLines(lines)

	rate, err := table.EffectiveRate(context.Background(), "room-101", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(rate, 0.17) {
		t.Errorf("expected compounded rate 0.17, got %v", rate)
	}

	rate, _ = table.EffectiveRate(context.Background(), "room-202", 100)
	if !almostEqual(rate, 0) {
		t.Errorf("expected untaxed room, got %v", rate)
	}

	rate, _ = table.EffectiveRate(context.Background(), "room-999", 100)
	if !almostEqual(rate, 0) {
		t.Errorf("expected unknown room untaxed, got %v", rate)
	}
}

func TestDiscounts(t *testing.T) {
	lines := []model.BookingLine{
		{RoomID: "room-101", Price: 80, ListPrice: 100},
		{RoomID: "room-202", Price: 120, ListPrice: 100}, // priced above list
		{RoomID: "room-303", Price: 60},                  // no list price recorded
	}

	originalPrice, discountAmount := Discounts(lines)
	if !almostEqual(originalPrice, 260) {
		t.Errorf("expected original price 260, got %v", originalPrice)
	}
	if !almostEqual(discountAmount, 20) {
		t.Errorf("expected discount 20, got %v", discountAmount)
	}
}

func TestDiscountsIgnoreStayLength(t *testing.T) {
	lines := []model.BookingLine{{RoomID: "room-101", Price: 80, ListPrice: 100}}

	originalPrice, discountAmount := Discounts(lines)
	if !almostEqual(originalPrice, 100) {
		t.Errorf("expected original price 100, got %v", originalPrice)
	}
	if !almostEqual(discountAmount, 20) {
		t.Errorf("expected discount 20, got %v", discountAmount)
	}
}

func TestApplyWritesTotals(t *testing.T) {
	b := &model.Booking{
		StayRange: stay(
			time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 17, 14, 0, 0, 0, time.UTC),
		),
		Lines: []model.BookingLine{{RoomID: "room-101", Price: 100, ListPrice: 110}},
	}

	if err := Apply(context.Background(), FlatRate{Rate: 0.21}, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !almostEqual(b.BookingDays, 2) {
		t.Errorf("expected booking days 2, got %v", b.BookingDays)
	}
	if !almostEqual(b.AmountUntaxed, 200) {
		t.Errorf("expected amount untaxed 200, got %v", b.AmountUntaxed)
	}
	if !almostEqual(b.TaxAmount, 42) {
		t.Errorf("expected tax 42, got %v", b.TaxAmount)
	}
	if !almostEqual(b.TotalAmount, 242) {
		t.Errorf("expected total 242, got %v", b.TotalAmount)
	}
	if !almostEqual(b.OriginalPrice, 110) || !almostEqual(b.DiscountAmount, 10) {
		t.Errorf("unexpected discount fields: original=%v discount=%v", b.OriginalPrice, b.DiscountAmount)
	}
}
