package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/apperr"
	"ignite-shop/internal/checkout"
	"ignite-shop/internal/middleware"
	"ignite-shop/internal/models"
)

type CheckoutHandler struct {
	svc *checkout.Service
}

func NewCheckoutHandler(svc *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{svc: svc}
}

// POST /checkout
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.Fail(c, apperr.New(apperr.KindInvalid, "Price not found.", nil))
		return
	}

	url, err := h.svc.CreateSession(c.Request.Context(), req.PriceID, c.GetHeader(checkout.IdempotencyHeader))
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrMissingPriceID):
			middleware.Fail(c, apperr.New(apperr.KindInvalid, "Price not found.", nil))
			return
		case errors.Is(err, checkout.ErrInvalidIdempotencyKey):
			middleware.Fail(c, apperr.New(apperr.KindInvalid, "Idempotency-Key must be at most 255 characters.", nil))
			return
		}
		middleware.Fail(c, apperr.New(apperr.KindUpstream, "Falha ao criar sessão de checkout.", err))
		return
	}

	c.JSON(http.StatusCreated, models.CheckoutResponse{CheckoutURL: url})
}
