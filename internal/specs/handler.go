package specs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) ListForProduct(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	items, err := h.repo.ForProduct(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list specifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type SpecRow struct {
	SpecName     string  `json:"spec_name" binding:"required"`
	SpecValue    string  `json:"spec_value" binding:"required"`
	SpecGroup    *string `json:"spec_group"`
	DisplayOrder int     `json:"display_order"`
}

type CreateSpecsReq struct {
	Specifications []SpecRow `json:"specifications" binding:"required,min=1,dive"`
}

// Admin: add one or many specification rows to a product.
func (h *Handler) AdminCreate(c *gin.Context) {
	productID, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req CreateSpecsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ok, err := h.repo.ProductExists(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add specifications"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product_id not found"})
		return
	}

	ins := make([]CreateInput, 0, len(req.Specifications))
	for _, row := range req.Specifications {
		ins = append(ins, CreateInput{
			SpecName:     row.SpecName,
			SpecValue:    row.SpecValue,
			SpecGroup:    row.SpecGroup,
			DisplayOrder: row.DisplayOrder,
		})
	}

	items, err := h.repo.CreateBulk(c.Request.Context(), productID, ins)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add specifications"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"items": items})
}

type UpdateSpecReq struct {
	SpecName     *string `json:"spec_name"`
	SpecValue    *string `json:"spec_value"`
	SpecGroup    *string `json:"spec_group"`
	DisplayOrder *int    `json:"display_order"`
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)

	var req UpdateSpecReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s, err := h.repo.Update(c.Request.Context(), id, UpdateInput{
		SpecName:     req.SpecName,
		SpecValue:    req.SpecValue,
		SpecGroup:    req.SpecGroup,
		DisplayOrder: req.DisplayOrder,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "specification not found"})
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
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete specification"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "specification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
