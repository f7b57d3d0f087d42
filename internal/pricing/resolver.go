package pricing

import (
	"context"
	"sort"
	"time"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

// CandidateStore returns discounts that are active, inside their date window
// at now, and target the given product, its subcategory, or its category.
// A nil subcategory/category id must match nothing at that level.
type CandidateStore interface {
	DiscountsValidAt(ctx context.Context, now time.Time, productID int64, subcategoryID, categoryID *int64) ([]discount.Discount, error)
}

// ProductRef identifies a product in the category hierarchy for resolution.
// SubcategoryID and CategoryID are nil when the product has no reference at
// that level; CategoryID is the effective category (own, else inherited
// through the subcategory).
type ProductRef struct {
	ProductID     int64
	SubcategoryID *int64
	CategoryID    *int64
}

type Resolver struct {
	store CandidateStore
}

func NewResolver(store CandidateStore) *Resolver {
	return &Resolver{store: store}
}

// Resolve picks the single discount that applies to the product at now, or
// nil when no valid discount targets it. Ranking: target level (product >
// subcategory > category), then priority, then discount value, all
// descending, with the discount id as the final ascending tie-break so the
// result is stable for identical inputs.
func (r *Resolver) Resolve(ctx context.Context, ref ProductRef, now time.Time) (*discount.Discount, error) {
	if ref.ProductID <= 0 {
		return nil, nil
	}

	candidates, err := r.store.DiscountsValidAt(ctx, now, ref.ProductID, ref.SubcategoryID, ref.CategoryID)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return Less(candidates[i], candidates[j])
	})

	best := candidates[0]
	return &best, nil
}

// Less reports whether a outranks b under the resolution ordering.
func Less(a, b discount.Discount) bool {
	if ar, br := a.TargetType.Rank(), b.TargetType.Rank(); ar != br {
		return ar > br
	}
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if a.DiscountValue != b.DiscountValue {
		return a.DiscountValue > b.DiscountValue
	}
	return a.ID < b.ID
}
