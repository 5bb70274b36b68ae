// Package pricing computes stay durations and booking amounts. All
// amounts are computed from the persisted lines; nothing here touches
// storage.
package pricing

import (
	"context"
	"math"

	"innkeeper/pkg/model"
)

// TaxCalculator resolves the effective tax rate for one room at one
// unit price. Implementations may call out to a tax service; the rate
// is expressed as a fraction (0.10 for 10%).
type TaxCalculator interface {
	EffectiveRate(ctx context.Context, roomID string, unitPrice float64) (float64, error)
}

// FlatRate is a TaxCalculator applying the same rate to every line.
type FlatRate struct {
	Rate float64
}

func (f FlatRate) EffectiveRate(_ context.Context, _ string, _ float64) (float64, error) {
	return f.Rate, nil
}

// RateTable is a TaxCalculator backed by a fixed room-to-rate map.
// Rooms missing from the table are untaxed.
type RateTable map[string]float64

func (rt RateTable) EffectiveRate(_ context.Context, roomID string, _ float64) (float64, error) {
	return rt[roomID], nil
}

// RatesFromLines builds a RateTable from the tax percentages stored on
// the lines themselves. Multiple rates on one line compound additively.
func RatesFromLines(lines []model.BookingLine) RateTable {
	table := make(RateTable, len(lines))
	for _, line := range lines {
		var rate float64
		for _, pct := range line.TaxRates {
			rate += pct / 100
		}
		table[line.RoomID] = rate
	}
	return table
}

// BookingDays converts a stay range into fractional days, floored at
// the minimum billable duration so a degenerate range never produces
// a zero or negative amount.
func BookingDays(rng model.StayRange) float64 {
	return rng.Days()
}

// LineAmounts holds the per-line results of a pricing pass.
type LineAmounts struct {
	Subtotal float64
	Taxed    float64
}

// ComputeLine prices a single line over the given number of days. The
// tax rate is resolved once per unit price and scaled by duration.
func ComputeLine(ctx context.Context, calc TaxCalculator, line model.BookingLine, days float64) (LineAmounts, error) {
	subtotal := line.Price * days

	rate := 0.0
	if calc != nil {
		r, err := calc.EffectiveRate(ctx, line.RoomID, line.Price)
		if err != nil {
			return LineAmounts{}, err
		}
		rate = r
	}

	return LineAmounts{
		Subtotal: subtotal,
		Taxed:    line.Price * (1 + rate) * days,
	}, nil
}

// Totals is the aggregated amount view of a booking.
type Totals struct {
	BookingDays    float64 `json:"booking_days"`
	AmountUntaxed  float64 `json:"amount_untaxed"`
	TaxAmount      float64 `json:"tax_amount"`
	TotalAmount    float64 `json:"total_amount"`
	Surcharges     float64 `json:"surcharges"`
	OriginalPrice  float64 `json:"original_price"`
	DiscountAmount float64 `json:"discount_amount"`
}

// Compute prices all lines of a booking and aggregates surcharges.
// Line subtotals and taxed amounts are written back onto the lines so
// the stored document carries the breakdown.
func Compute(ctx context.Context, calc TaxCalculator, b *model.Booking) (Totals, error) {
	days := BookingDays(b.StayRange)

	var sumSubtotal, sumTaxed float64
	for i := range b.Lines {
		amounts, err := ComputeLine(ctx, calc, b.Lines[i], days)
		if err != nil {
			return Totals{}, err
		}
		b.Lines[i].BookingDays = days
		b.Lines[i].SubtotalPrice = amounts.Subtotal
		b.Lines[i].TaxedPrice = amounts.Taxed
		sumSubtotal += amounts.Subtotal
		sumTaxed += amounts.Taxed
	}

	surcharges := b.EarlyCheckInCharge + b.LateCheckOutCharge
	for _, svc := range b.ManualServices {
		surcharges += svc.Amount
	}

	originalPrice, discountAmount := Discounts(b.Lines)

	return Totals{
		BookingDays:    days,
		AmountUntaxed:  sumSubtotal + surcharges,
		TaxAmount:      sumTaxed - sumSubtotal,
		TotalAmount:    sumTaxed + surcharges,
		Surcharges:     surcharges,
		OriginalPrice:  originalPrice,
		DiscountAmount: discountAmount,
	}, nil
}

// Discounts reports the undiscounted list total and the amount saved
// against it, summed over unit prices without duration scaling. Lines
// priced above list never produce negative savings.
func Discounts(lines []model.BookingLine) (originalPrice, discountAmount float64) {
	for _, line := range lines {
		list := line.ListPrice
		if list == 0 {
			list = line.Price
		}
		originalPrice += list
		discountAmount += math.Max(0, list-line.Price)
	}
	return originalPrice, discountAmount
}

// Apply recomputes a booking's stored totals in place.
func Apply(ctx context.Context, calc TaxCalculator, b *model.Booking) error {
	totals, err := Compute(ctx, calc, b)
	if err != nil {
		return err
	}
	b.BookingDays = totals.BookingDays
	b.AmountUntaxed = totals.AmountUntaxed
	b.TaxAmount = totals.TaxAmount
	b.TotalAmount = totals.TotalAmount
	b.OriginalPrice = totals.OriginalPrice
	b.DiscountAmount = totals.DiscountAmount
	return nil
}
