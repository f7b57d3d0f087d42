package discount

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)
	end := now.Add(24 * time.Hour)

	t.Run("inactive never valid", func(t *testing.T) {
		d := Discount{IsActive: false, StartDate: start}
		assert.False(t, d.IsValidAt(now))
	})

	t.Run("open ended", func(t *testing.T) {
		d := Discount{IsActive: true, StartDate: start}
		assert.True(t, d.IsValidAt(now))
	})

	t.Run("window bounds are inclusive", func(t *testing.T) {
		d := Discount{IsActive: true, StartDate: start, EndDate: &end}
		assert.True(t, d.IsValidAt(start))
		assert.True(t, d.IsValidAt(end))
		assert.False(t, d.IsValidAt(start.Add(-time.Second)))
		assert.False(t, d.IsValidAt(end.Add(time.Second)))
	})
}

func TestTargetTypeRank(t *testing.T) {
	assert.Greater(t, TargetProduct.Rank(), TargetSubcategory.Rank())
	assert.Greater(t, TargetSubcategory.Rank(), TargetCategory.Rank())
}

func TestTypeValid(t *testing.T) {
	assert.True(t, TypePercentage.Valid())
	assert.True(t, TypeFixedAmount.Valid())
	assert.False(t, Type("bogus").Valid())
}
