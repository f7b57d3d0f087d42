package product

import (
	"time"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/tag"
)

// Type mirrors the shooting discipline a product serves.
const (
	TypeVideography = "videography"
	TypePhotography = "photography"
	TypeBoth        = "both"
)

func ValidType(t string) bool {
	return t == TypeVideography || t == TypePhotography || t == TypeBoth
}

type Product struct {
	ID               int64   `json:"id"`
	SubcategoryID    *int64  `json:"subcategory_id"`
	CategoryID       *int64  `json:"category_id,omitempty"`
	SubcategoryName  string  `json:"subcategory_name,omitempty"`
	CategoryName     string  `json:"category_name,omitempty"`
	Name             string  `json:"name"`
	Model            *string `json:"model,omitempty"`
	Slug             string  `json:"slug"`
	SKU              *string `json:"sku,omitempty"`
	Description      *string `json:"description,omitempty"`
	ShortDescription *string `json:"short_description,omitempty"`
	Price            float64 `json:"price"`
	DiscountPrice    *float64 `json:"discount_price,omitempty"`
	Type             string  `json:"type"`
	Brand            *string `json:"brand,omitempty"`
	IsFeatured       bool    `json:"is_featured"`
	IsActive         bool    `json:"is_active"`
	MetaTitle        *string `json:"meta_title,omitempty"`
	MetaDescription  *string `json:"meta_description,omitempty"`
	PrimaryImageURL  *string `json:"primary_image_url,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Images         []Image         `json:"images,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
	Tags           []tag.Tag       `json:"tags,omitempty"`
}

type Image struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	ImageURL     string    `json:"image_url"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

type Specification struct {
	ID           int64     `json:"id"`
	ProductID    int64     `json:"product_id"`
	SpecName     string    `json:"spec_name"`
	SpecValue    string    `json:"spec_value"`
	SpecGroup    *string   `json:"spec_group,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}
