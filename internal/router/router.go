package router

import (
	"fmt"
	"strings"

	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter initializes the HTTP routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	redisClient := cache.Client()
	reviewRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:review", redisPrefix),
		WindowSeconds: cfg.Security.ReviewRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ReviewRateLimit.MaxRequests,
		Message:       "too many review submissions",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		response.Success(c, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// Catalog: open to everyone; a valid token additionally feeds
		// browsing history on detail views.
		catalog := apiV1.Group("")
		catalog.Use(OptionalIdentityMiddleware(cfg.Identity))
		{
			catalog.GET("/categories", handler.ListCategories)
			catalog.GET("/products", handler.ListProducts)
			catalog.GET("/products/:slug", handler.GetProduct)
			catalog.GET("/products/:slug/related", handler.ListRelatedProducts)
			catalog.GET("/reviews/:product_id", handler.ListReviews)
		}

		// Cart: tolerates anonymous callers, which see an empty cart on
		// reads and get a not-authenticated error on writes.
		cart := apiV1.Group("")
		cart.Use(OptionalIdentityMiddleware(cfg.Identity))
		{
			cart.GET("/cart", handler.GetCart)
			cart.POST("/cart/items", handler.AddCartItem)
			cart.PUT("/cart/items/:item_id", handler.UpdateCartItem)
			cart.DELETE("/cart/items/:item_id", handler.DeleteCartItem)
			cart.DELETE("/cart", handler.ClearCart)
		}

		// Account: requires a valid token and an existing profile row.
		account := apiV1.Group("")
		account.Use(IdentityMiddleware(cfg.Identity))
		account.Use(ProfileMiddleware(c.ProfileService))
		{
			account.GET("/me", handler.GetProfile)
			account.PUT("/me/profile", handler.UpdateProfile)

			account.GET("/me/addresses", handler.ListAddresses)
			account.POST("/me/addresses", handler.CreateAddress)
			account.PUT("/me/addresses/:address_id", handler.UpdateAddress)
			account.DELETE("/me/addresses/:address_id", handler.DeleteAddress)

			account.POST("/orders", handler.PlaceOrder)
			account.GET("/orders", handler.ListOrders)
			account.GET("/orders/:order_id", handler.GetOrder)
			account.POST("/orders/:order_id/payment", handler.ConfirmPayment)

			account.GET("/me/wishlist", handler.ListWishlist)
			account.POST("/me/wishlist/:product_id", handler.AddWishlistItem)
			account.DELETE("/me/wishlist/:product_id", handler.RemoveWishlistItem)

			account.GET("/me/history", handler.ListHistory)
			account.DELETE("/me/history", handler.ClearHistory)
			account.GET("/me/recommendations", handler.ListRecommendations)

			account.POST("/reviews/:product_id",
				RateLimitMiddleware(redisClient, reviewRule, KeyByUser),
				handler.SubmitReview)
			account.DELETE("/reviews/:product_id", handler.DeleteReview)
		}
	}

	return r
}
