package discount

import "time"

type Type string

const (
	TypePercentage  Type = "percentage"
	TypeFixedAmount Type = "fixed_amount"
)

func (t Type) Valid() bool {
	return t == TypePercentage || t == TypeFixedAmount
}

// TargetType is the hierarchy level a discount attaches to.
type TargetType string

const (
	TargetProduct     TargetType = "product"
	TargetCategory    TargetType = "category"
	TargetSubcategory TargetType = "subcategory"
)

func (t TargetType) Valid() bool {
	return t == TargetProduct || t == TargetCategory || t == TargetSubcategory
}

// Rank orders target levels by specificity: product > subcategory > category.
func (t TargetType) Rank() int {
	switch t {
	case TargetProduct:
		return 3
	case TargetSubcategory:
		return 2
	case TargetCategory:
		return 1
	}
	return 0
}

type Discount struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	DiscountType   Type       `json:"discount_type"`
	DiscountValue  float64    `json:"discount_value"`
	TargetType     TargetType `json:"target_type"`
	TargetID       int64      `json:"target_id"`
	TargetName     string     `json:"target_name,omitempty"`
	StartDate      time.Time  `json:"start_date"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	IsActive       bool       `json:"is_active"`
	Priority       int        `json:"priority"`
	MaxUses        *int       `json:"max_uses,omitempty"`
	MinOrderAmount *float64   `json:"min_order_amount,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// IsValidAt reports whether the discount window covers now.
// Both bounds are inclusive; a nil end date means open-ended.
func (d Discount) IsValidAt(now time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate.After(now) {
		return false
	}
	if d.EndDate != nil && d.EndDate.Before(now) {
		return false
	}
	return true
}
