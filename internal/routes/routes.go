package routes

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"ignite-shop/internal/handlers"
	"ignite-shop/internal/middleware"
)

type Handlers struct {
	Pages    *handlers.PageHandler
	Product  *handlers.ProductHandler
	Checkout *handlers.CheckoutHandler
	Health   *handlers.HealthHandler

	// RevalidateSecret enables POST /api/revalidate when set.
	RevalidateSecret string
}

func NewRouter(l *slog.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(
		middleware.RequestID(),
		middleware.Logger(l),
		middleware.ErrorHandler(l),
		middleware.Recovery(l),
	)
	RegisterRoutes(router, h)
	return router
}

func RegisterRoutes(router *gin.Engine, h Handlers) {
	router.GET("/healthz", h.Health.Health)

	router.GET("/", h.Pages.Home)
	router.GET("/success", h.Pages.Success)

	router.GET("/product/:id", h.Product.GetProduct)
	router.GET("/_data/product/:id", h.Product.GetProductData)
	router.POST("/checkout", h.Checkout.CreateSession)

	if h.RevalidateSecret != "" {
		api := router.Group("/api", middleware.RequireSecret("X-Revalidate-Secret", h.RevalidateSecret))
		{
			api.POST("/revalidate", h.Product.Revalidate)
		}
	}
}
