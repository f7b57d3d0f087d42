package subcategories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/mzorab57/camera-sotre-backend/internal/domain/subcategory"
	"github.com/mzorab57/camera-sotre-backend/internal/util"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListPublic(c *gin.Context) {
	var categoryID *int64
	if v, err := strconv.ParseInt(c.Query("category_id"), 10, 64); err == nil {
		categoryID = &v
	}
	items, err := h.repo.List(c.Request.Context(), categoryID, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subcategories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) GetPublic(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	s, err := h.repo.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subcategory not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load subcategory"})
		return
	}
	c.JSON(http.StatusOK, s)
}

// Public: a subcategory with a short product showcase.
func (h *Handler) WithProducts(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	limit := 6
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		if v > 24 {
			v = 24
		}
		limit = v
	}

	s, err := h.repo.ByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subcategory not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load subcategory"})
		return
	}

	items, err := h.repo.Products(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subcategory": s, "products": items})
}

func (h *Handler) AdminList(c *gin.Context) {
	var categoryID *int64
	if v, err := strconv.ParseInt(c.Query("category_id"), 10, 64); err == nil {
		categoryID = &v
	}
	items, err := h.repo.List(c.Request.Context(), categoryID, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list subcategories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type CreateSubcategoryReq struct {
	CategoryID int64   `json:"category_id" binding:"required"`
	Name       string  `json:"name" binding:"required"`
	Slug       string  `json:"slug"`
	Type       string  `json:"type" binding:"required"`
	ImageURL   *string `json:"image_url"`
	IsActive   *bool   `json:"is_active"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateSubcategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !subcategory.ValidType(req.Type) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "type must be videography, photography or both"})
		return
	}

	ok, err := h.repo.CategoryExists(c.Request.Context(), req.CategoryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create subcategory"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "category_id not found"})
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

	s, err := h.repo.Create(c.Request.Context(), CreateInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Slug:       slug,
		Type:       req.Type,
		ImageURL:   req.ImageURL,
		IsActive:   isActive,
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to create (slug may be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, s)
}

type UpdateSubcategoryReq struct {
	CategoryID *int64  `json:"category_id"`
	Name       *string `json:"name"`
	Slug       *string `json:"slug"`
	Type       *string `json:"type"`
	ImageURL   *string `json:"image_url"`
	IsActive   *bool   `json:"is_active"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateSubcategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type != nil && !subcategory.ValidType(*req.Type) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "type must be videography, photography or both"})
		return
	}
	if req.CategoryID != nil {
		ok, err := h.repo.CategoryExists(c.Request.Context(), *req.CategoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update subcategory"})
			return
		}
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "category_id not found"})
			return
		}
	}

	s, err := h.repo.Update(c.Request.Context(), id, UpdateInput{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Slug:       req.Slug,
		Type:       req.Type,
		ImageURL:   req.ImageURL,
		IsActive:   req.IsActive,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "subcategory not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete subcategory"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "subcategory not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
