package products

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mzorab57/camera-sotre-backend/internal/discounts"
	"github.com/mzorab57/camera-sotre-backend/internal/domain/product"
	"github.com/mzorab57/camera-sotre-backend/internal/pricing"
	"github.com/mzorab57/camera-sotre-backend/internal/util"
)

type Handler struct {
	repo      *Repo
	quotes    *pricing.Service
	discounts *discounts.Repo
}

func NewHandler(repo *Repo, quotes *pricing.Service, discounts *discounts.Repo) *Handler {
	return &Handler{repo: repo, quotes: quotes, discounts: discounts}
}

// pricedProduct is a catalog row annotated with resolved pricing.
type pricedProduct struct {
	product.Product
	Pricing  pricing.Pricing       `json:"pricing"`
	Discount *pricing.DiscountInfo `json:"discount"`
}

// visibleTotal is the pagination total: the full match count normally, the
// filtered row count when only discounted rows are returned. Discounts are
// resolved per page, so a cross-page discounted total is not available.
func visibleTotal(total int64, filtered int, discountedOnly bool) int64 {
	if discountedOnly {
		return int64(filtered)
	}
	return total
}

func pageCount(total int64, limit int) int64 {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return pages
}

// Public: list products with filters, pagination, and per-row pricing.
func (h *Handler) ListPublic(c *gin.Context) {
	active := true
	f := ListFilter{
		IsActive: &active,
		Brand:    c.Query("brand"),
		Search:   c.Query("search"),
		Page:     1,
		Limit:    20,
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		f.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		if v > 100 {
			v = 100
		}
		f.Limit = v
	}
	if v, err := strconv.ParseInt(c.Query("category_id"), 10, 64); err == nil {
		f.CategoryID = &v
	}
	if v, err := strconv.ParseInt(c.Query("subcategory_id"), 10, 64); err == nil {
		f.SubcategoryID = &v
	}
	if v := c.Query("type"); product.ValidType(v) {
		f.Type = v
	}
	if v := c.Query("is_featured"); v != "" {
		featured := v == "1" || v == "true"
		f.IsFeatured = &featured
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}
	discountedOnly := c.Query("discounted_only") == "1" || c.Query("discounted_only") == "true"

	items, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list products"})
		return
	}

	now := time.Now()
	quoteItems := make([]pricing.Item, len(items))
	for i, p := range items {
		quoteItems[i] = pricing.Item{
			Ref:   pricing.ProductRef{ProductID: p.ID, SubcategoryID: p.SubcategoryID, CategoryID: p.CategoryID},
			Price: p.Price,
		}
	}
	quotes, err := h.quotes.QuoteAll(c.Request.Context(), quoteItems, now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate discounts"})
		return
	}

	priced := make([]pricedProduct, 0, len(items))
	discounted := 0
	for i, p := range items {
		q := quotes[i]
		if q.Pricing.HasDiscount {
			discounted++
		}
		if discountedOnly && !q.Pricing.HasDiscount {
			continue
		}
		priced = append(priced, pricedProduct{Product: p, Pricing: q.Pricing, Discount: q.Discount})
	}

	levels, err := h.discounts.CountActiveByLevel(c.Request.Context(), now)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load discount statistics"})
		return
	}

	coverage := 0.0
	if len(items) > 0 {
		coverage = math.Round(float64(discounted)/float64(len(items))*10000) / 100
	}

	total = visibleTotal(total, len(priced), discountedOnly)
	c.JSON(http.StatusOK, gin.H{
		"items": priced,
		"pagination": gin.H{
			"page":  f.Page,
			"limit": f.Limit,
			"total": total,
			"pages": pageCount(total, f.Limit),
		},
		"statistics": gin.H{
			"total_products":      len(items),
			"discounted_products": discounted,
			"discount_coverage":   coverage,
			"active_discounts":    levels,
		},
	})
}

// Public: product details (numeric id or slug) with images, specifications,
// tags, and resolved pricing.
func (h *Handler) GetPublic(c *gin.Context) {
	key := c.Param("id")

	var (
		p   product.Product
		err error
	)
	if id, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
		p, err = h.repo.ByID(c.Request.Context(), id)
	} else {
		p, err = h.repo.BySlug(c.Request.Context(), key)
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}
	if !p.IsActive {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	q, err := h.quotes.QuoteOne(c.Request.Context(), pricing.Item{
		Ref:   pricing.ProductRef{ProductID: p.ID, SubcategoryID: p.SubcategoryID, CategoryID: p.CategoryID},
		Price: p.Price,
	}, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to calculate discount"})
		return
	}

	c.JSON(http.StatusOK, pricedProduct{Product: p, Pricing: q.Pricing, Discount: q.Discount})
}

type CreateProductReq struct {
	SubcategoryID    int64    `json:"subcategory_id" binding:"required"`
	CategoryID       *int64   `json:"category_id"`
	Name             string   `json:"name" binding:"required"`
	Model            *string  `json:"model"`
	Slug             string   `json:"slug"`
	SKU              *string  `json:"sku"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"short_description"`
	Price            *float64 `json:"price" binding:"required"`
	DiscountPrice    *float64 `json:"discount_price"`
	Type             string   `json:"type" binding:"required"`
	Brand            *string  `json:"brand"`
	IsFeatured       bool     `json:"is_featured"`
	IsActive         *bool    `json:"is_active"`
	MetaTitle        *string  `json:"meta_title"`
	MetaDescription  *string  `json:"meta_description"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !product.ValidType(req.Type) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "type must be videography, photography or both"})
		return
	}
	if *req.Price < 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "price cannot be negative"})
		return
	}
	if req.DiscountPrice != nil && *req.DiscountPrice > *req.Price {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "discount_price cannot be greater than price"})
		return
	}

	ok, err := h.repo.SubcategoryExists(c.Request.Context(), req.SubcategoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "subcategory_id not found"})
		return
	}

	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	p, err := h.repo.Create(c.Request.Context(), CreateInput{
		SubcategoryID:    req.SubcategoryID,
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Model:            req.Model,
		Slug:             slug,
		SKU:              req.SKU,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            *req.Price,
		DiscountPrice:    req.DiscountPrice,
		Type:             req.Type,
		Brand:            req.Brand,
		IsFeatured:       req.IsFeatured,
		IsActive:         isActive,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate slug or sku"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, p)
}

type UpdateProductReq struct {
	SubcategoryID    *int64   `json:"subcategory_id"`
	CategoryID       *int64   `json:"category_id"`
	Name             *string  `json:"name"`
	Model            *string  `json:"model"`
	Slug             *string  `json:"slug"`
	SKU              *string  `json:"sku"`
	Description      *string  `json:"description"`
	ShortDescription *string  `json:"short_description"`
	Price            *float64 `json:"price"`
	DiscountPrice    *float64 `json:"discount_price"`
	Type             *string  `json:"type"`
	Brand            *string  `json:"brand"`
	IsFeatured       *bool    `json:"is_featured"`
	IsActive         *bool    `json:"is_active"`
	MetaTitle        *string  `json:"meta_title"`
	MetaDescription  *string  `json:"meta_description"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type != nil && !product.ValidType(*req.Type) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "type must be videography, photography or both"})
		return
	}
	if req.SubcategoryID != nil {
		ok, err := h.repo.SubcategoryExists(c.Request.Context(), *req.SubcategoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
			return
		}
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "subcategory_id not found"})
			return
		}
	}

	p, err := h.repo.Update(c.Request.Context(), id, UpdateInput{
		SubcategoryID:    req.SubcategoryID,
		CategoryID:       req.CategoryID,
		Name:             req.Name,
		Model:            req.Model,
		Slug:             req.Slug,
		SKU:              req.SKU,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		DiscountPrice:    req.DiscountPrice,
		Type:             req.Type,
		Brand:            req.Brand,
		IsFeatured:       req.IsFeatured,
		IsActive:         req.IsActive,
		MetaTitle:        req.MetaTitle,
		MetaDescription:  req.MetaDescription,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			c.JSON(http.StatusConflict, gin.H{"error": "duplicate slug or sku"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update product"})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
