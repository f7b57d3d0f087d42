package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mzorab57/camera-sotre-backend/internal/discounts"
)

type Handler struct {
	repo      *Repo
	discounts *discounts.Repo
}

func NewHandler(repo *Repo, discounts *discounts.Repo) *Handler {
	return &Handler{repo: repo, discounts: discounts}
}

// Dashboard aggregates catalog counts, the latest products and the active
// discount breakdown into one payload for the admin landing page.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	counts, err := h.repo.Counts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	recent, err := h.repo.RecentProducts(ctx, 10)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	levels, err := h.discounts.CountActiveByLevel(ctx, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts":           counts,
		"recent_products":  recent,
		"active_discounts": levels,
	})
}
