package pricing

import (
	"math"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

// Pricing is the price annotation attached to product responses. Field names
// are part of the public API contract.
type Pricing struct {
	OriginalPrice      float64 `json:"original_price"`
	FinalPrice         float64 `json:"final_price"`
	DiscountAmount     float64 `json:"discount_amount"`
	DiscountPercentage float64 `json:"discount_percentage"`
	HasDiscount        bool    `json:"has_discount"`
}

// Apply computes the final price for a resolved discount. A nil discount
// leaves the price untouched. Final prices never go below zero and stored
// discount values are clamped at zero rather than trusted blindly.
func Apply(originalPrice float64, d *discount.Discount) Pricing {
	final := originalPrice
	if d != nil {
		value := math.Max(0, d.DiscountValue)
		switch d.DiscountType {
		case discount.TypePercentage:
			final = originalPrice - originalPrice*value/100
		case discount.TypeFixedAmount:
			final = originalPrice - value
		}
		if final < 0 {
			final = 0
		}
	}

	final = round2(final)
	amount := round2(originalPrice - final)

	var pct float64
	if originalPrice > 0 {
		pct = round2(amount / originalPrice * 100)
	}

	return Pricing{
		OriginalPrice:      originalPrice,
		FinalPrice:         final,
		DiscountAmount:     amount,
		DiscountPercentage: pct,
		HasDiscount:        d != nil && amount > 0,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
