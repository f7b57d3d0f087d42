package images

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"

	"github.com/mzorab57/camera-sotre-backend/internal/upload"
)

type Handler struct {
	repo  *Repo
	saver *upload.Saver
}

func NewHandler(repo *Repo, saver *upload.Saver) *Handler {
	return &Handler{repo: repo, saver: saver}
}

func (h *Handler) ListForProduct(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	items, err := h.repo.ForProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list images"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Admin: add an image to a product. Accepts either an uploaded file
// ("image" form field) or a JSON body carrying an external image_url.
func (h *Handler) AdminCreate(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	ok, err := h.repo.ProductExists(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add image"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product_id not found"})
		return
	}

	var imageURL string
	isPrimary := false

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		imageURL, err = h.saver.SaveImage(fh, "products")
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		isPrimary = c.PostForm("is_primary") == "true"
	} else {
		var req struct {
			ImageURL  string `json:"image_url" binding:"required"`
			IsPrimary bool   `json:"is_primary"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		imageURL = req.ImageURL
		isPrimary = req.IsPrimary
	}

	img, err := h.repo.Create(c.Request.Context(), productID, imageURL, isPrimary)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add image"})
		return
	}
	c.JSON(http.StatusCreated, img)
}

type UpdateImageReq struct {
	ImageURL     *string `json:"image_url"`
	IsPrimary    *bool   `json:"is_primary"`
	DisplayOrder *int    `json:"display_order"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	img, err := h.repo.Update(c.Request.Context(), id, UpdateInput{
		ImageURL:     req.ImageURL,
		IsPrimary:    req.IsPrimary,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to update"})
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *Handler) AdminSetPrimary(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	img, err := h.repo.SetPrimary(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set primary"})
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ok, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete image"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
