package pricing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

func TestService_QuoteOne(t *testing.T) {
	d := makeDiscount(1, discount.TargetSubcategory, 20, 3, 25)
	svc := NewService(&fakeStore{discounts: []discount.Discount{d}})

	q, err := svc.QuoteOne(context.Background(), Item{
		Ref:   ProductRef{ProductID: 10, SubcategoryID: i64(20)},
		Price: 400,
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, 300.0, q.Pricing.FinalPrice)
	assert.Equal(t, 100.0, q.Pricing.DiscountAmount)
	require.NotNil(t, q.Discount)
	assert.Equal(t, int64(1), q.Discount.ID)
	assert.Equal(t, "subcategory", q.Discount.InheritanceLevel)
}

func TestService_QuoteAll(t *testing.T) {
	// One discount per product so every result is distinguishable.
	var discounts []discount.Discount
	var items []Item
	for i := int64(1); i <= 25; i++ {
		d := makeDiscount(i, discount.TargetProduct, i, 0, float64(i))
		discounts = append(discounts, d)
		items = append(items, Item{Ref: ProductRef{ProductID: i}, Price: 100})
	}
	svc := NewService(&fakeStore{discounts: discounts})

	quotes, err := svc.QuoteAll(context.Background(), items, testNow)
	require.NoError(t, err)
	require.Len(t, quotes, len(items))

	for i, q := range quotes {
		require.NotNil(t, q.Discount, fmt.Sprintf("item %d", i))
		assert.Equal(t, int64(i+1), q.Discount.ID, "results must keep input order")
	}

	// Same batch again: per-product ranking is independent of scheduling.
	again, err := svc.QuoteAll(context.Background(), items, testNow)
	require.NoError(t, err)
	assert.Equal(t, quotes, again)
}

func TestService_QuoteAllEmpty(t *testing.T) {
	svc := NewService(&fakeStore{})
	quotes, err := svc.QuoteAll(context.Background(), nil, time.Now())
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestService_QuoteAllStoreError(t *testing.T) {
	svc := NewService(errStore{})
	_, err := svc.QuoteAll(context.Background(), []Item{{Ref: ProductRef{ProductID: 1}, Price: 10}}, time.Now())
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	assert.Nil(t, Info(nil))

	d := makeDiscount(9, discount.TargetProduct, 10, 2, 15)
	info := Info(&d)
	require.NotNil(t, info)
	assert.Equal(t, "direct", info.InheritanceLevel)
	assert.Equal(t, discount.TypePercentage, info.Type)
	assert.Equal(t, 15.0, info.Value)
}
