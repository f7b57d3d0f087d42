package tags

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
	items, err := h.repo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tags"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type CreateTagReq struct {
	Name string `json:"name" binding:"required"`
	Slug string `json:"slug"`
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req CreateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Name)
	}
	t, err := h.repo.Create(c.Request.Context(), req.Name, slug)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "failed to create (slug may be duplicate)"})
		return
	}
	c.JSON(http.StatusCreated, t)
}

type UpdateTagReq struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateTagReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.repo.Update(c.Request.Context(), id, req.Name, req.Slug)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update"})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete tag"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type AttachTagsReq struct {
	Tags []string `json:"tags" binding:"required,min=1"`
}

// Admin: attach tags by name to a product, creating missing tags.
func (h *Handler) AdminAttach(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req AttachTagsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.repo.ProductExists(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach tags"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product_id not found"})
		return
	}

	items, err := h.repo.Attach(c.Request.Context(), productID, req.Tags)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach tags"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) AdminDetach(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	tagID, _ := strconv.ParseInt(c.Param("tagId"), 10, 64)

	ok, err := h.repo.Detach(c.Request.Context(), productID, tagID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to detach tag"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not attached"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
