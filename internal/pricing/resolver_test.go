package pricing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

type fakeStore struct {
	discounts []discount.Discount

	mu    sync.Mutex
	calls int
}

func (f *fakeStore) DiscountsValidAt(_ context.Context, now time.Time, productID int64, subcategoryID, categoryID *int64) ([]discount.Discount, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	var out []discount.Discount
	for _, d := range f.discounts {
		if !d.IsValidAt(now) {
			continue
		}
		switch d.TargetType {
		case discount.TargetProduct:
			if d.TargetID == productID {
				out = append(out, d)
			}
		case discount.TargetSubcategory:
			if subcategoryID != nil && d.TargetID == *subcategoryID {
				out = append(out, d)
			}
		case discount.TargetCategory:
			if categoryID != nil && d.TargetID == *categoryID {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

type errStore struct{}

func (errStore) DiscountsValidAt(context.Context, time.Time, int64, *int64, *int64) ([]discount.Discount, error) {
	return nil, errors.New("store unavailable")
}

func i64(v int64) *int64 { return &v }

func makeDiscount(id int64, target discount.TargetType, targetID int64, priority int, value float64) discount.Discount {
	return discount.Discount{
		ID:            id,
		Name:          "d",
		DiscountType:  discount.TypePercentage,
		DiscountValue: value,
		TargetType:    target,
		TargetID:      targetID,
		StartDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
		Priority:      priority,
	}
}

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func TestResolver_Resolve(t *testing.T) {
	ref := ProductRef{ProductID: 10, SubcategoryID: i64(20), CategoryID: i64(30)}

	t.Run("no matching discount returns nil", func(t *testing.T) {
		r := NewResolver(&fakeStore{})
		d, err := r.Resolve(context.Background(), ref, testNow)
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("product level beats category level regardless of value", func(t *testing.T) {
		r := NewResolver(&fakeStore{discounts: []discount.Discount{
			makeDiscount(1, discount.TargetCategory, 30, 99, 50),
			makeDiscount(2, discount.TargetProduct, 10, 0, 10),
		}})
		d, err := r.Resolve(context.Background(), ref, testNow)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, int64(2), d.ID)
	})

	t.Run("subcategory level beats category level", func(t *testing.T) {
		r := NewResolver(&fakeStore{discounts: []discount.Discount{
			makeDiscount(1, discount.TargetCategory, 30, 5, 40),
			makeDiscount(2, discount.TargetSubcategory, 20, 1, 15),
		}})
		d, err := r.Resolve(context.Background(), ref, testNow)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, int64(2), d.ID)
	})

	t.Run("priority breaks ties within a level", func(t *testing.T) {
		r := NewResolver(&fakeStore{discounts: []discount.Discount{
			makeDiscount(1, discount.TargetSubcategory, 20, 1, 30),
			makeDiscount(2, discount.TargetSubcategory, 20, 5, 10),
		}})
		d, err := r.Resolve(context.Background(), ref, testNow)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, int64(2), d.ID)
	})

	t.Run("value breaks ties when level and priority match", func(t *testing.T) {
		r := NewResolver(&fakeStore{discounts: []discount.Discount{
			makeDiscount(1, discount.TargetCategory, 30, 2, 20),
			makeDiscount(2, discount.TargetCategory, 30, 2, 30),
		}})
		d, err := r.Resolve(context.Background(), ref, testNow)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, int64(2), d.ID)
	})

	t.Run("lowest id wins on a full tie", func(t *testing.T) {
		r := NewResolver(&fakeStore{discounts: []discount.Discount{
			makeDiscount(7, discount.TargetCategory, 30, 2, 20),
			makeDiscount(4, discount.TargetCategory, 30, 2, 20),
		}})
		d, err := r.Resolve(context.Background(), ref, testNow)
		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, int64(4), d.ID)
	})

	t.Run("nil category excludes category discounts", func(t *testing.T) {
		r := NewResolver(&fakeStore{discounts: []discount.Discount{
			makeDiscount(1, discount.TargetCategory, 30, 9, 50),
		}})
		d, err := r.Resolve(context.Background(), ProductRef{ProductID: 10, SubcategoryID: i64(20)}, testNow)
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("nil subcategory excludes subcategory discounts", func(t *testing.T) {
		r := NewResolver(&fakeStore{discounts: []discount.Discount{
			makeDiscount(1, discount.TargetSubcategory, 20, 9, 50),
		}})
		d, err := r.Resolve(context.Background(), ProductRef{ProductID: 10, CategoryID: i64(30)}, testNow)
		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("non-positive product id short-circuits without a store call", func(t *testing.T) {
		store := &fakeStore{discounts: []discount.Discount{makeDiscount(1, discount.TargetProduct, 0, 0, 10)}}
		r := NewResolver(store)
		d, err := r.Resolve(context.Background(), ProductRef{ProductID: 0}, testNow)
		require.NoError(t, err)
		assert.Nil(t, d)
		assert.Zero(t, store.calls)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		r := NewResolver(errStore{})
		_, err := r.Resolve(context.Background(), ref, testNow)
		assert.Error(t, err)
	})

	t.Run("identical inputs resolve to the identical discount", func(t *testing.T) {
		r := NewResolver(&fakeStore{discounts: []discount.Discount{
			makeDiscount(1, discount.TargetProduct, 10, 3, 10),
			makeDiscount(2, discount.TargetProduct, 10, 3, 10),
			makeDiscount(3, discount.TargetCategory, 30, 8, 60),
		}})
		first, err := r.Resolve(context.Background(), ref, testNow)
		require.NoError(t, err)
		second, err := r.Resolve(context.Background(), ref, testNow)
		require.NoError(t, err)
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, first.ID, second.ID)
	})
}

func TestResolver_DateWindow(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	d := makeDiscount(1, discount.TargetProduct, 10, 0, 10)
	d.StartDate = start
	d.EndDate = &end

	r := NewResolver(&fakeStore{discounts: []discount.Discount{d}})
	ref := ProductRef{ProductID: 10}

	cases := []struct {
		name    string
		now     time.Time
		matches bool
	}{
		{"before start", start.Add(-time.Second), false},
		{"exactly at start", start, true},
		{"inside window", start.Add(72 * time.Hour), true},
		{"exactly at end", end, true},
		{"after end", end.Add(time.Second), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.Resolve(context.Background(), ref, tc.now)
			require.NoError(t, err)
			if tc.matches {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestResolver_InactiveExcluded(t *testing.T) {
	d := makeDiscount(1, discount.TargetProduct, 10, 0, 10)
	d.IsActive = false

	r := NewResolver(&fakeStore{discounts: []discount.Discount{d}})
	got, err := r.Resolve(context.Background(), ProductRef{ProductID: 10}, testNow)
	require.NoError(t, err)
	assert.Nil(t, got)
}
