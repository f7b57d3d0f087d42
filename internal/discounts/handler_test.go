package discounts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

func strPtr(s string) *string       { return &s }
func f64Ptr(f float64) *float64     { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func fixedDiscount() discount.Discount {
	return discount.Discount{
		ID:            1,
		Name:          "Camera body sale",
		DiscountType:  discount.TypeFixedAmount,
		DiscountValue: 150,
		TargetType:    discount.TargetProduct,
		TargetID:      10,
		StartDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
}

func TestValidateUpdate(t *testing.T) {
	t.Run("type flip revalidates stored value", func(t *testing.T) {
		// fixed_amount 150 cannot become percentage 150
		msg := validateUpdate(fixedDiscount(), UpdateDiscountReq{
			DiscountType: strPtr("percentage"),
		})
		assert.Equal(t, "percentage discount must be between 0 and 100", msg)
	})

	t.Run("type flip with compatible value passes", func(t *testing.T) {
		msg := validateUpdate(fixedDiscount(), UpdateDiscountReq{
			DiscountType:  strPtr("percentage"),
			DiscountValue: f64Ptr(25),
		})
		assert.Empty(t, msg)
	})

	t.Run("value alone checked against stored type", func(t *testing.T) {
		d := fixedDiscount()
		d.DiscountType = discount.TypePercentage
		d.DiscountValue = 10
		msg := validateUpdate(d, UpdateDiscountReq{DiscountValue: f64Ptr(120)})
		assert.Equal(t, "percentage discount must be between 0 and 100", msg)
	})

	t.Run("non positive value rejected", func(t *testing.T) {
		msg := validateUpdate(fixedDiscount(), UpdateDiscountReq{DiscountValue: f64Ptr(0)})
		assert.Equal(t, "discount_value must be greater than 0", msg)
	})

	t.Run("unknown enums rejected", func(t *testing.T) {
		assert.NotEmpty(t, validateUpdate(fixedDiscount(), UpdateDiscountReq{DiscountType: strPtr("bogo")}))
		assert.NotEmpty(t, validateUpdate(fixedDiscount(), UpdateDiscountReq{TargetType: strPtr("brand")}))
	})

	t.Run("end date before stored start rejected", func(t *testing.T) {
		d := fixedDiscount()
		msg := validateUpdate(d, UpdateDiscountReq{
			EndDate: timePtr(d.StartDate.Add(-time.Hour)),
		})
		assert.Equal(t, "end_date cannot be before start_date", msg)
	})

	t.Run("start moved past stored end rejected", func(t *testing.T) {
		d := fixedDiscount()
		end := d.StartDate.Add(48 * time.Hour)
		d.EndDate = &end
		msg := validateUpdate(d, UpdateDiscountReq{
			StartDate: timePtr(end.Add(time.Hour)),
		})
		assert.Equal(t, "end_date cannot be before start_date", msg)
	})

	t.Run("consistent window passes", func(t *testing.T) {
		d := fixedDiscount()
		msg := validateUpdate(d, UpdateDiscountReq{
			StartDate: timePtr(d.StartDate.Add(time.Hour)),
			EndDate:   timePtr(d.StartDate.Add(72 * time.Hour)),
		})
		assert.Empty(t, msg)
	})

	t.Run("untouched fields stay valid", func(t *testing.T) {
		assert.Empty(t, validateUpdate(fixedDiscount(), UpdateDiscountReq{Name: strPtr("Renamed")}))
	})
}
