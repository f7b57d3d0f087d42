package subcategory

import "time"

// Type mirrors the shooting discipline a subcategory serves.
const (
	TypeVideography = "videography"
	TypePhotography = "photography"
	TypeBoth        = "both"
)

func ValidType(t string) bool {
	return t == TypeVideography || t == TypePhotography || t == TypeBoth
}

type Subcategory struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Type         string    `json:"type"`
	ImageURL     *string   `json:"image_url,omitempty"`
	IsActive     bool      `json:"is_active"`
	ProductCount int64     `json:"product_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
