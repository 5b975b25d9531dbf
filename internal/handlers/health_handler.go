package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/cache"
)

type HealthHandler struct {
	store cache.Store
}

func NewHealthHandler(store cache.Store) *HealthHandler {
	return &HealthHandler{store: store}
}

// GET /healthz
func (h *HealthHandler) Health(c *gin.Context) {
	n, err := h.store.Size(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": "page store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "pages_cached": n})
}
