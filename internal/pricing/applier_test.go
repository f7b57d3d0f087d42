package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

func pctDiscount(value float64) *discount.Discount {
	return &discount.Discount{ID: 1, DiscountType: discount.TypePercentage, DiscountValue: value}
}

func fixedDiscount(value float64) *discount.Discount {
	return &discount.Discount{ID: 1, DiscountType: discount.TypeFixedAmount, DiscountValue: value}
}

func TestApply(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		discount *discount.Discount
		want     Pricing
	}{
		{
			name:     "no discount keeps original price",
			price:    99.99,
			discount: nil,
			want:     Pricing{OriginalPrice: 99.99, FinalPrice: 99.99},
		},
		{
			name:     "percentage",
			price:    200,
			discount: pctDiscount(25),
			want:     Pricing{OriginalPrice: 200, FinalPrice: 150, DiscountAmount: 50, DiscountPercentage: 25, HasDiscount: true},
		},
		{
			name:     "fixed amount",
			price:    100,
			discount: fixedDiscount(30),
			want:     Pricing{OriginalPrice: 100, FinalPrice: 70, DiscountAmount: 30, DiscountPercentage: 30, HasDiscount: true},
		},
		{
			name:     "fixed amount larger than price floors at zero",
			price:    100,
			discount: fixedDiscount(150),
			want:     Pricing{OriginalPrice: 100, FinalPrice: 0, DiscountAmount: 100, DiscountPercentage: 100, HasDiscount: true},
		},
		{
			name:     "hundred percent",
			price:    80,
			discount: pctDiscount(100),
			want:     Pricing{OriginalPrice: 80, FinalPrice: 0, DiscountAmount: 80, DiscountPercentage: 100, HasDiscount: true},
		},
		{
			name:     "zero percent is not a discount",
			price:    80,
			discount: pctDiscount(0),
			want:     Pricing{OriginalPrice: 80, FinalPrice: 80},
		},
		{
			name:     "negative stored value is clamped",
			price:    50,
			discount: fixedDiscount(-10),
			want:     Pricing{OriginalPrice: 50, FinalPrice: 50},
		},
		{
			name:     "zero original price",
			price:    0,
			discount: pctDiscount(25),
			want:     Pricing{OriginalPrice: 0, FinalPrice: 0},
		},
		{
			name:     "amounts round to currency precision",
			price:    19.99,
			discount: pctDiscount(10),
			want:     Pricing{OriginalPrice: 19.99, FinalPrice: 17.99, DiscountAmount: 2, DiscountPercentage: 10.01, HasDiscount: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Apply(tc.price, tc.discount))
		})
	}
}
