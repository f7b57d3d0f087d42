package categories

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/mzorab57/camera-sotre-backend/internal/util"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListPublic(c *gin.Context) {
	items, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Public: category with its active subcategories and product counts.
// Accepts a numeric id or a slug.
func (h *Handler) GetPublic(c *gin.Context) {
	key := c.Param("id")

	var (
		cat any
		id  int64
		err error
	)
	if n, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
		got, e := h.repo.ByID(c.Request.Context(), n)
		cat, id, err = got, got.ID, e
	} else {
		got, e := h.repo.BySlug(c.Request.Context(), key)
		cat, id, err = got, got.ID, e
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load category"})
		return
	}

	subs, err := h.repo.Subcategories(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load subcategories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": cat, "subcategories": subs})
}

func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.repo.AdminListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list categories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type CreateCategoryReq struct {
	Name     string  `json:"name" binding:"required"`
	Slug     string  `json:"slug"`
	ImageURL *string `json:"image_url"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}
	created, err := h.repo.Create(c.Request.Context(), req.Name, slug, req.ImageURL)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to create (slug may be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

type UpdateCategoryReq struct {
	Name     *string `json:"name"`
	Slug     *string `json:"slug"`
	ImageURL *string `json:"image_url"`
	IsActive *bool   `json:"is_active"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Keep slug synced with name unless the caller set one explicitly.
	slug := req.Slug
	if slug == nil && req.Name != nil {
		s := util.Slugify(*req.Name)
		slug = &s
	}

	updated, err := h.repo.Update(c.Request.Context(), id, req.Name, slug, req.ImageURL, req.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete category"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
