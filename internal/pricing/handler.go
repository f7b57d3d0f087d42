package pricing

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// ProductInfo is the slice of a product the pricing endpoints need.
// CategoryID is the effective category (own, else inherited through the
// subcategory).
type ProductInfo struct {
	ID              int64
	Name            string
	Price           float64
	SubcategoryID   *int64
	CategoryID      *int64
	SubcategoryName *string
	CategoryName    *string
}

// ProductSource loads active products by id. Unknown ids are simply absent
// from the result.
type ProductSource interface {
	ForPricing(ctx context.Context, ids []int64) ([]ProductInfo, error)
}

type Handler struct {
	svc      *Service
	products ProductSource
}

func NewHandler(svc *Service, products ProductSource) *Handler {
	return &Handler{svc: svc, products: products}
}

// Calculate serves GET /pricing/calculate with either product_id or a
// comma-separated product_ids parameter.
func (h *Handler) Calculate(c *gin.Context) {
	now := time.Now()

	if v := c.Query("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_id"})
			return
		}
		h.calculateOne(c, id, now)
		return
	}

	if v := c.Query("product_ids"); v != "" {
		ids := parseIDs(v)
		if len(ids) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product_ids"})
			return
		}
		h.calculateBulk(c, ids, now)
		return
	}

	c.JSON(http.StatusBadRequest, gin.H{"error": "product_id or product_ids is required"})
}

func (h *Handler) calculateOne(c *gin.Context, id int64, now time.Time) {
	infos, err := h.products.ForPricing(c.Request.Context(), []int64{id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}
	if len(infos) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	p := infos[0]

	q, err := h.svc.QuoteOne(c.Request.Context(), Item{
		Ref:   ProductRef{ProductID: p.ID, SubcategoryID: p.SubcategoryID, CategoryID: p.CategoryID},
		Price: p.Price,
	}, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate discount"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": gin.H{
			"id":               p.ID,
			"name":             p.Name,
			"category_name":    p.CategoryName,
			"subcategory_name": p.SubcategoryName,
		},
		"pricing":  q.Pricing,
		"discount": q.Discount,
	})
}

func (h *Handler) calculateBulk(c *gin.Context, ids []int64, now time.Time) {
	infos, err := h.products.ForPricing(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}

	items := make([]Item, len(infos))
	for i, p := range infos {
		items[i] = Item{
			Ref:   ProductRef{ProductID: p.ID, SubcategoryID: p.SubcategoryID, CategoryID: p.CategoryID},
			Price: p.Price,
		}
	}

	quotes, err := h.svc.QuoteAll(c.Request.Context(), items, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate discounts"})
		return
	}

	results := make([]gin.H, len(infos))
	for i, p := range infos {
		results[i] = gin.H{
			"product_id":   p.ID,
			"product_name": p.Name,
			"pricing":      quotes[i].Pricing,
			"discount":     quotes[i].Discount,
		}
	}
	c.JSON(http.StatusOK, gin.H{"items": results})
}

func parseIDs(csv string) []int64 {
	var ids []int64
	for _, part := range strings.Split(csv, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
