package brands

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
	items, err := h.repo.List(c.Request.Context(), true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AdminList(c *gin.Context) {
	items, err := h.repo.List(c.Request.Context(), false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type CreateBrandReq struct {
	Name        string  `json:"name" binding:"required"`
	Slug        string  `json:"slug"`
	LogoURL     *string `json:"logo_url"`
	Description *string `json:"description"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateBrandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}
	b, err := h.repo.Create(c.Request.Context(), req.Name, slug, req.LogoURL, req.Description)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to create (slug may be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, b)
}

type UpdateBrandReq struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	LogoURL     *string `json:"logo_url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateBrandReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.repo.Update(c.Request.Context(), id, req.Name, req.Slug, req.LogoURL, req.Description, req.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "brand not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update"})
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete brand"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "brand not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
