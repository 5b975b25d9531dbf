package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/apperr"
	"ignite-shop/internal/cache"
	"ignite-shop/internal/catalog"
	"ignite-shop/internal/middleware"
	"ignite-shop/internal/pages"
	"ignite-shop/internal/repository"
)

const (
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

type ProductHandler struct {
	pages        *pages.Generator
	cacheControl string
}

func NewProductHandler(gen *pages.Generator) *ProductHandler {
	return &ProductHandler{
		pages:        gen,
		cacheControl: fmt.Sprintf("s-maxage=%d, stale-while-revalidate", int(gen.Revalidate().Seconds())),
	}
}

// GET /product/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	res, err := h.pages.Page(c.Request.Context(), productID)
	if err != nil {
		middleware.Fail(c, apperr.Internal(err))
		return
	}

	if res.Fallback {
		body, err := pages.RenderFallback(productID)
		if err != nil {
			middleware.Fail(c, apperr.Internal(err))
			return
		}
		c.Header("Cache-Control", "private, no-cache, no-store, max-age=0, must-revalidate")
		c.Data(http.StatusOK, contentTypeHTML, body)
		return
	}

	h.serve(c, res.Page, res.Page.HTML, contentTypeHTML)
}

// GET /_data/product/:id
func (h *ProductHandler) GetProductData(c *gin.Context) {
	page, err := h.pages.Data(c.Request.Context(), c.Param("id"))
	if err != nil {
		middleware.Fail(c, resolveError(err))
		return
	}

	h.serve(c, page, page.Props, contentTypeJSON)
}

type revalidateRequest struct {
	ID string `json:"id" binding:"required"`
}

// POST /api/revalidate
func (h *ProductHandler) Revalidate(c *gin.Context) {
	var req revalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.New(apperr.KindInvalid, "id is required", nil))
		return
	}

	page, err := h.pages.Regenerate(c.Request.Context(), req.ID)
	if err != nil {
		middleware.Fail(c, resolveError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"revalidated": true,
		"etag":        page.ETag,
	})
}

func (h *ProductHandler) serve(c *gin.Context, page *cache.Page, body []byte, contentType string) {
	etag := page.ETag
	if contentType == contentTypeJSON {
		etag = pages.ETag(body)
	}

	c.Header("ETag", etag)
	c.Header("Cache-Control", h.cacheControl)

	if match := c.GetHeader("If-None-Match"); match != "" && etagMatches(match, etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.Data(http.StatusOK, contentType, body)
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}

// resolveError maps a failed generation pass to the response it produces.
func resolveError(err error) error {
	switch {
	case errors.Is(err, repository.ErrProductNotFound):
		return apperr.New(apperr.KindNotFound, "Produto não encontrado.", err)
	case errors.Is(err, catalog.ErrMalformedProduct):
		return apperr.New(apperr.KindUpstream, "Produto indisponível.", err)
	default:
		return apperr.New(apperr.KindUpstream, "Não foi possível carregar o produto.", err)
	}
}
