package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"checkout/internal/handler"
	"checkout/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	PromoHandler    *handler.PromoHandler
	CheckoutHandler *handler.CheckoutHandler
	CallbackHandler *handler.CallbackHandler
	PricingHandler  *handler.PricingHandler
	RedisClient     *redis.Client
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Promo code routes. Management endpoints are the operator surface;
		// redeem is called by the settlement authority after payment success.
		promos := v1.Group("/promos")
		{
			promos.POST("", deps.PromoHandler.Create)
			promos.GET("", deps.PromoHandler.List)
			promos.POST("/validate", deps.PromoHandler.Validate)
			promos.POST("/:id/activate", deps.PromoHandler.Activate)
			promos.POST("/:id/deactivate", deps.PromoHandler.Deactivate)
			promos.POST("/:id/redeem", deps.PromoHandler.Redeem)
			promos.DELETE("/:id", deps.PromoHandler.Delete)
		}

		// Credit package catalog.
		v1.GET("/packages", deps.PricingHandler.ListPackages)

		// Checkout session routes.
		sessions := v1.Group("/checkout/sessions")
		{
			sessions.POST("", deps.CheckoutHandler.StartSession)
			sessions.GET("/:id", deps.CheckoutHandler.GetSession)
			sessions.POST("/:id/promo", deps.CheckoutHandler.ApplyPromo)
			sessions.DELETE("/:id/promo", deps.CheckoutHandler.RemovePromo)
			sessions.POST("/:id/confirm", deps.CheckoutHandler.Confirm)
			sessions.DELETE("/:id", deps.CheckoutHandler.CancelSession)
		}

		// Payment callback verification.
		v1.GET("/payments/callback", deps.CallbackHandler.HandleCallback)
	}

	return router
}
