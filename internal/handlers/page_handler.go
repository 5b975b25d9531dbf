package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/apperr"
	"ignite-shop/internal/middleware"
	"ignite-shop/internal/pages"
)

// PageHandler serves the pages the hosted checkout sends shoppers back to.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// GET /
func (h *PageHandler) Home(c *gin.Context) {
	body, err := pages.RenderHome()
	if err != nil {
		middleware.Fail(c, apperr.Internal(err))
		return
	}
	c.Data(http.StatusOK, contentTypeHTML, body)
}

// GET /success?session_id=...
func (h *PageHandler) Success(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	body, err := pages.RenderSuccess(sessionID)
	if err != nil {
		middleware.Fail(c, apperr.Internal(err))
		return
	}
	c.Header("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, contentTypeHTML, body)
}
