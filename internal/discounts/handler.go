package discounts

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/discount"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

type CreateDiscountReq struct {
	Name           string     `json:"name" binding:"required"`
	Description    *string    `json:"description"`
	DiscountType   string     `json:"discount_type" binding:"required"`
	DiscountValue  float64    `json:"discount_value" binding:"required"`
	TargetType     string     `json:"target_type" binding:"required"`
	TargetID       int64      `json:"target_id" binding:"required"`
	StartDate      time.Time  `json:"start_date" binding:"required"`
	EndDate        *time.Time `json:"end_date"`
	IsActive       *bool      `json:"is_active"`
	Priority       int        `json:"priority"`
	MaxUses        *int       `json:"max_uses"`
	MinOrderAmount *float64   `json:"min_order_amount"`
}

func validateValue(dt discount.Type, value float64) string {
	if value <= 0 {
		return "discount_value must be greater than 0"
	}
	if dt == discount.TypePercentage && value > 100 {
		return "percentage discount must be between 0 and 100"
	}
	return ""
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateDiscountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dt := discount.Type(req.DiscountType)
	if !dt.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "discount_type must be percentage or fixed_amount"})
		return
	}
	tt := discount.TargetType(req.TargetType)
	if !tt.Valid() {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "target_type must be product, category or subcategory"})
		return
	}
	if msg := validateValue(dt, req.DiscountValue); msg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
		return
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "end_date cannot be before start_date"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	d, err := h.repo.Create(c.Request.Context(), CreateInput{
		Name:           req.Name,
		Description:    req.Description,
		DiscountType:   dt,
		DiscountValue:  req.DiscountValue,
		TargetType:     tt,
		TargetID:       req.TargetID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       isActive,
		Priority:       req.Priority,
		MaxUses:        req.MaxUses,
		MinOrderAmount: req.MinOrderAmount,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to create discount"})
		return
	}
	c.JSON(http.StatusCreated, d)
}

type UpdateDiscountReq struct {
	Name           *string    `json:"name"`
	Description    *string    `json:"description"`
	DiscountType   *string    `json:"discount_type"`
	DiscountValue  *float64   `json:"discount_value"`
	TargetType     *string    `json:"target_type"`
	TargetID       *int64     `json:"target_id"`
	StartDate      *time.Time `json:"start_date"`
	EndDate        *time.Time `json:"end_date"`
	IsActive       *bool      `json:"is_active"`
	Priority       *int       `json:"priority"`
	MaxUses        *int       `json:"max_uses"`
	MinOrderAmount *float64   `json:"min_order_amount"`
}

// validateUpdate checks the discount that would result from applying req on
// top of existing, so partial updates cannot sneak past the type/value and
// date-window rules (e.g. flipping a fixed_amount 150 to percentage, or
// moving end_date before the stored start_date).
func validateUpdate(existing discount.Discount, req UpdateDiscountReq) string {
	dt := existing.DiscountType
	if req.DiscountType != nil {
		dt = discount.Type(*req.DiscountType)
		if !dt.Valid() {
			return "discount_type must be percentage or fixed_amount"
		}
	}
	if req.TargetType != nil && !discount.TargetType(*req.TargetType).Valid() {
		return "target_type must be product, category or subcategory"
	}

	value := existing.DiscountValue
	if req.DiscountValue != nil {
		value = *req.DiscountValue
	}
	if msg := validateValue(dt, value); msg != "" {
		return msg
	}

	start := existing.StartDate
	if req.StartDate != nil {
		start = *req.StartDate
	}
	end := existing.EndDate
	if req.EndDate != nil {
		end = req.EndDate
	}
	if end != nil && end.Before(start) {
		return "end_date cannot be before start_date"
	}
	return ""
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateDiscountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.repo.ByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
		return
	}

	if msg := validateUpdate(existing, req); msg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": msg})
		return
	}

	in := UpdateInput{
		Name:           req.Name,
		Description:    req.Description,
		DiscountValue:  req.DiscountValue,
		TargetID:       req.TargetID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		IsActive:       req.IsActive,
		Priority:       req.Priority,
		MaxUses:        req.MaxUses,
		MinOrderAmount: req.MinOrderAmount,
	}
	if req.DiscountType != nil {
		dt := discount.Type(*req.DiscountType)
		in.DiscountType = &dt
	}
	if req.TargetType != nil {
		tt := discount.TargetType(*req.TargetType)
		in.TargetType = &tt
	}

	updated, err := h.repo.Update(c.Request.Context(), id, in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update discount"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AdminGet(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	d, err := h.repo.ByID(c.Request.Context(), id)
	if err != nil {
		if err == pgx.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load discount"})
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *Handler) AdminList(c *gin.Context) {
	f := ListFilter{
		Page:  1,
		Limit: 20,
		Query: c.Query("q"),
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
	if v := c.Query("target_type"); v != "" {
		tt := discount.TargetType(v)
		if !tt.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_type filter"})
			return
		}
		f.TargetType = &tt
	}
	if v := c.Query("is_active"); v != "" {
		active := v == "1" || v == "true"
		f.IsActive = &active
	}

	items, total, err := h.repo.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list discounts"})
		return
	}

	pages := total / int64(f.Limit)
	if total%int64(f.Limit) != 0 {
		pages++
	}
	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"pagination": gin.H{
			"page":  f.Page,
			"limit": f.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete discount"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "discount not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Public: discounts currently in their validity window, with target names.
func (h *Handler) ListActive(c *gin.Context) {
	items, err := h.repo.ActiveNow(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list discounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
