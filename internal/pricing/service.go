package pricing

import (
	"context"
	"sync"
	"time"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

// DiscountInfo is the applied-discount payload embedded next to Pricing in
// product responses. Field names are part of the public API contract.
type DiscountInfo struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description,omitempty"`
	Type             discount.Type       `json:"type"`
	Value            float64             `json:"value"`
	TargetType       discount.TargetType `json:"target_type"`
	TargetID         int64               `json:"target_id"`
	Priority         int                 `json:"priority"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          *time.Time          `json:"end_date,omitempty"`
	InheritanceLevel string              `json:"inheritance_level"`
}

// Info converts a resolved discount into its response payload. Returns nil
// for a nil discount so handlers can embed it directly.
func Info(d *discount.Discount) *DiscountInfo {
	if d == nil {
		return nil
	}
	level := "category"
	switch d.TargetType {
	case discount.TargetProduct:
		level = "direct"
	case discount.TargetSubcategory:
		level = "subcategory"
	}
	return &DiscountInfo{
		ID:               d.ID,
		Name:             d.Name,
		Description:      d.Description,
		Type:             d.DiscountType,
		Value:            d.DiscountValue,
		TargetType:       d.TargetType,
		TargetID:         d.TargetID,
		Priority:         d.Priority,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		InheritanceLevel: level,
	}
}

type Quote struct {
	Pricing  Pricing       `json:"pricing"`
	Discount *DiscountInfo `json:"discount"`
}

type Item struct {
	Ref   ProductRef
	Price float64
}

type Service struct {
	resolver *Resolver
}

func NewService(store CandidateStore) *Service {
	return &Service{resolver: NewResolver(store)}
}

// QuoteOne resolves and applies the discount for a single product.
func (s *Service) QuoteOne(ctx context.Context, item Item, now time.Time) (Quote, error) {
	d, err := s.resolver.Resolve(ctx, item.Ref, now)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Pricing: Apply(item.Price, d), Discount: Info(d)}, nil
}

const maxQuoteWorkers = 4

// QuoteAll prices a batch of products. Each product is independent, so the
// work fans out over a small goroutine pool; results are written by index,
// keeping output order identical to input order.
func (s *Service) QuoteAll(ctx context.Context, items []Item, now time.Time) ([]Quote, error) {
	quotes := make([]Quote, len(items))
	if len(items) == 0 {
		return quotes, nil
	}

	workers := maxQuoteWorkers
	if len(items) < workers {
		workers = len(items)
	}

	errs := make([]error, len(items))
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				q, err := s.QuoteOne(ctx, items[i], now)
				if err != nil {
					errs[i] = err
					continue
				}
				quotes[i] = q
			}
		}()
	}

	for i := range items {
		idx <- i
	}
	close(idx)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return quotes, nil
}
