package sanitizer

import "math"

const (
	MinDiscountPercent = 0
	MaxDiscountPercent = 100
)

// ClampDiscount keeps a discount percentage inside [0, 100].
func ClampDiscount(discount float64) float64 {
	if discount < MinDiscountPercent {
		return MinDiscountPercent
	}
	if discount > MaxDiscountPercent {
		return MaxDiscountPercent
	}
	return discount
}

// NormalizeCharge floors negative surcharge amounts at zero.
func NormalizeCharge(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return amount
}

// RoundMoney rounds a monetary amount to two decimal places.
func RoundMoney(amount float64) float64 {
	return math.Round(amount*100) / 100
}
